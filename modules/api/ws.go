package api

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/ANUSHKA-GUPTA30/rebook-platform/modules/relay"
	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// WSEnvelope is the frame shape exchanged with websocket clients.
type WSEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// JoinRoomPayload is the payload for joining a book's chat room.
type JoinRoomPayload struct {
	Room     string `json:"room"`
	Username string `json:"username"`
}

// SendMessagePayload is the payload for sending a chat message.
type SendMessagePayload struct {
	Room    string `json:"room"`
	Author  string `json:"author"`
	Message string `json:"message"`
	Time    string `json:"time"`
}

// WSHandlers handles websocket connections against the relay hub.
type WSHandlers struct {
	hub    *relay.Hub
	logger *slog.Logger
}

// NewWSHandlers creates a new WSHandlers instance.
func NewWSHandlers(hub *relay.Hub) *WSHandlers {
	return &WSHandlers{
		hub:    hub,
		logger: slog.Default(),
	}
}

// HandleWebSocket runs the read loop for one connection.
func (h *WSHandlers) HandleWebSocket(c *websocket.Conn) {
	clientID := uuid.New().String()
	client := &relay.Client{ID: clientID, Conn: c}
	h.hub.Register(client)

	defer func() {
		h.hub.Unregister(client)
		c.Close()
	}()

	h.logger.Info("websocket connected", "client", clientID)

	for {
		_, msgBytes, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Error("websocket error", "client", clientID, "error", err)
			}
			break
		}

		var msg WSEnvelope
		if err := json.Unmarshal(msgBytes, &msg); err != nil {
			h.sendError(c, "Invalid message format")
			continue
		}

		switch msg.Type {
		case "join_room":
			h.handleJoinRoom(c, client, msg.Payload)
		case "send_message":
			h.handleSendMessage(c, client, msg.Payload)
		default:
			h.sendError(c, "Unknown message type: "+msg.Type)
		}
	}

	h.logger.Info("websocket disconnected", "client", clientID)
}

func (h *WSHandlers) handleJoinRoom(c *websocket.Conn, client *relay.Client, payload json.RawMessage) {
	var req JoinRoomPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		h.sendError(c, "Invalid join_room payload")
		return
	}
	if req.Room == "" {
		h.sendError(c, "room is required")
		return
	}

	client.Username = req.Username
	h.hub.JoinRoom(client.ID, req.Room)
	h.sendFrame(c, "joined", map[string]string{"room": req.Room})
}

// handleSendMessage relays a chat message to the other room members, frame
// fields carried through as sent. The sender never receives its own message
// back.
func (h *WSHandlers) handleSendMessage(c *websocket.Conn, client *relay.Client, payload json.RawMessage) {
	var req SendMessagePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		h.sendError(c, "Invalid send_message payload")
		return
	}
	if req.Room == "" || req.Message == "" {
		h.sendError(c, "room and message are required")
		return
	}
	if req.Author == "" {
		req.Author = client.Username
	}
	if req.Time == "" {
		req.Time = time.Now().UTC().Format(time.RFC3339)
	}

	h.hub.SendExcept(req.Room, client.ID, "receive_message", relay.ChatMessagePayload{
		Room:    req.Room,
		Author:  req.Author,
		Message: req.Message,
		Time:    req.Time,
	})
}

func (h *WSHandlers) sendFrame(c *websocket.Conn, frameType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to marshal frame payload", "error", err)
		return
	}
	msg := WSEnvelope{Type: frameType, Payload: data}
	out, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := c.WriteMessage(websocket.TextMessage, out); err != nil {
		h.logger.Warn("failed to write frame", "error", err)
	}
}

func (h *WSHandlers) sendError(c *websocket.Conn, message string) {
	out, err := json.Marshal(WSEnvelope{Type: "error", Error: message})
	if err != nil {
		return
	}
	if err := c.WriteMessage(websocket.TextMessage, out); err != nil {
		h.logger.Warn("failed to write error frame", "error", err)
	}
}
