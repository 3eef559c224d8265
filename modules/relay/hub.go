package relay

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// Conn is the write side of a client connection. *websocket.Conn satisfies it.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client represents a connected chat participant. Each client sits in at most
// one room at a time; the room id is the book id under discussion.
type Client struct {
	ID       string
	Username string
	Room     string
	Conn     Conn
}

// frame is the wire envelope pushed to clients.
type frame struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// roomMessage is an internal fan-out request. Exclude, when set, names a
// client id that must not receive the frame.
type roomMessage struct {
	Room    string
	Exclude string
	Type    string
	Payload any
}

// Hub manages websocket clients and room fan-out.
type Hub struct {
	clients    map[string]*Client
	rooms      map[string]map[string]bool // room -> set of client ids
	register   chan *Client
	unregister chan *Client
	send       chan *roomMessage
	done       chan struct{}
	mu         sync.RWMutex
	logger     *slog.Logger
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		rooms:      make(map[string]map[string]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		send:       make(chan *roomMessage, 256),
		done:       make(chan struct{}),
		logger:     slog.Default(),
	}
}

// Run starts the hub's main loop. It accepts a context for graceful shutdown.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.logger.Info("relay hub shutting down")
			h.closeAllClients()
			close(h.done)
			return
		case client := <-h.register:
			h.handleRegister(client)
		case client := <-h.unregister:
			h.handleUnregister(client)
		case msg := <-h.send:
			h.handleSend(msg)
		}
	}
}

// Wait blocks until the hub has stopped.
func (h *Hub) Wait() {
	<-h.done
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		_ = client.Conn.Close()
	}
	h.clients = make(map[string]*Client)
	h.rooms = make(map[string]map[string]bool)
}

func (h *Hub) handleRegister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client
	if client.Room != "" {
		h.addToRoom(client.ID, client.Room)
	}
	h.logger.Info("client registered", "client", client.ID, "username", client.Username)
}

func (h *Hub) handleUnregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}
	delete(h.clients, client.ID)
	h.dropFromRoom(client.ID, client.Room)
	h.logger.Info("client unregistered", "client", client.ID, "username", client.Username)
}

func (h *Hub) handleSend(msg *roomMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	data, err := json.Marshal(frame{Type: msg.Type, Payload: msg.Payload})
	if err != nil {
		h.logger.Error("failed to marshal frame", "error", err)
		return
	}

	ids, ok := h.rooms[msg.Room]
	if !ok {
		return
	}
	for id := range ids {
		if id == msg.Exclude {
			continue
		}
		client, ok := h.clients[id]
		if !ok {
			continue
		}
		if err := client.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.logger.Warn("failed to write to client", "client", id, "error", err)
		}
	}
}

// addToRoom and dropFromRoom assume h.mu is held.
func (h *Hub) addToRoom(clientID, room string) {
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[string]bool)
	}
	h.rooms[room][clientID] = true
}

func (h *Hub) dropFromRoom(clientID, room string) {
	if room == "" || h.rooms[room] == nil {
		return
	}
	delete(h.rooms[room], clientID)
	if len(h.rooms[room]) == 0 {
		delete(h.rooms, room)
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// JoinRoom moves a client into a room, leaving the previous one if any.
func (h *Hub) JoinRoom(clientID, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client, ok := h.clients[clientID]
	if !ok {
		return
	}
	h.dropFromRoom(clientID, client.Room)
	client.Room = room
	h.addToRoom(clientID, room)
	h.logger.Info("client joined room", "client", clientID, "room", room)
}

// Send delivers a frame to every client in the room.
func (h *Hub) Send(room, frameType string, payload any) {
	h.send <- &roomMessage{Room: room, Type: frameType, Payload: payload}
}

// SendExcept delivers a frame to every client in the room except the named
// one. Chat messages use this so senders do not hear their own words echoed
// back.
func (h *Hub) SendExcept(room, excludeClientID, frameType string, payload any) {
	h.send <- &roomMessage{Room: room, Exclude: excludeClientID, Type: frameType, Payload: payload}
}

// ClientCount returns the total number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// RoomCount returns the number of active rooms.
func (h *Hub) RoomCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms)
}
