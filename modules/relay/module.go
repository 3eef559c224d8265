package relay

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ANUSHKA-GUPTA30/rebook-platform/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// Module runs the websocket hub and pushes exchange lifecycle updates into
// each book's chat room.
type Module struct {
	hub       *Hub
	cancelHub context.CancelFunc
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.EventConsumerModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new relay Module.
func NewModule() *Module {
	return &Module{
		hub: NewHub(),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "relay"
}

// Start launches the hub loop.
func (m *Module) Start(_ context.Context) error {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelHub = cancel
	go m.hub.Run(ctx)
	log.Println("[relay] Module started - websocket hub running")
	return nil
}

// Stop shuts down the hub and waits for it to drain.
func (m *Module) Stop(_ context.Context) error {
	clientCount := m.hub.ClientCount()
	if m.cancelHub != nil {
		m.cancelHub()
		m.hub.Wait()
	}
	log.Printf("[relay] Module stopped - %d clients were connected", clientCount)
	return nil
}

// Health returns the health status.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"connected_clients": m.hub.ClientCount(),
			"active_rooms":      m.hub.RoomCount(),
		},
	}
}

// RegisterEventConsumers subscribes to the exchange lifecycle events.
func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(
		registry, events.ExchangeRequestedV1, m.handleRequested, m,
	); err != nil {
		return fmt.Errorf("failed to register ExchangeRequested consumer: %w", err)
	}

	if err := helper.RegisterTypedEventConsumer(
		registry, events.ExchangeAcceptedV1, m.handleAccepted, m,
	); err != nil {
		return fmt.Errorf("failed to register ExchangeAccepted consumer: %w", err)
	}

	if err := helper.RegisterTypedEventConsumer(
		registry, events.ExchangeCancelledV1, m.handleCancelled, m,
	); err != nil {
		return fmt.Errorf("failed to register ExchangeCancelled consumer: %w", err)
	}

	if err := helper.RegisterTypedEventConsumer(
		registry, events.BookDeletedV1, m.handleDeleted, m,
	); err != nil {
		return fmt.Errorf("failed to register BookDeleted consumer: %w", err)
	}

	log.Println("[relay] Registered event consumers: ExchangeRequested, ExchangeAccepted, ExchangeCancelled, BookDeleted")
	return nil
}

func (m *Module) handleRequested(_ context.Context, event events.ExchangeRequestedEvent, _ *mono.Msg) error {
	m.pushUpdate(event.BookID, ExchangeUpdatePayload{
		BookID:    event.BookID,
		Title:     event.Title,
		Action:    "requested",
		Owner:     event.Owner,
		Requester: event.Requester,
		Timestamp: event.Timestamp,
	})
	return nil
}

func (m *Module) handleAccepted(_ context.Context, event events.ExchangeAcceptedEvent, _ *mono.Msg) error {
	m.pushUpdate(event.BookID, ExchangeUpdatePayload{
		BookID:    event.BookID,
		Title:     event.Title,
		Action:    "accepted",
		Owner:     event.Owner,
		Requester: event.Requester,
		Timestamp: event.Timestamp,
	})
	return nil
}

func (m *Module) handleCancelled(_ context.Context, event events.ExchangeCancelledEvent, _ *mono.Msg) error {
	m.pushUpdate(event.BookID, ExchangeUpdatePayload{
		BookID:    event.BookID,
		Title:     event.Title,
		Action:    "cancelled",
		Owner:     event.Owner,
		Requester: event.Requester,
		Timestamp: event.Timestamp,
	})
	return nil
}

func (m *Module) handleDeleted(_ context.Context, event events.BookDeletedEvent, _ *mono.Msg) error {
	m.pushUpdate(event.BookID, ExchangeUpdatePayload{
		BookID:    event.BookID,
		Action:    "deleted",
		Owner:     event.Owner,
		Timestamp: event.Timestamp,
	})
	return nil
}

func (m *Module) pushUpdate(bookID string, payload ExchangeUpdatePayload) {
	log.Printf("[relay] Pushing %s update for book %s", payload.Action, bookID)
	m.hub.Send(bookID, "exchange_update", payload)
}

// GetHub returns the hub for the API module's websocket endpoint.
func (m *Module) GetHub() *Hub {
	return m.hub
}

// ExchangeUpdatePayload is pushed to a book's room when its lifecycle moves.
type ExchangeUpdatePayload struct {
	BookID    string    `json:"bookId"`
	Title     string    `json:"title,omitempty"`
	Action    string    `json:"action"`
	Owner     string    `json:"owner,omitempty"`
	Requester string    `json:"requester,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatMessagePayload is relayed between room members exactly as the sender
// framed it, client-supplied time included. Messages are transient; nothing
// is persisted.
type ChatMessagePayload struct {
	Room    string `json:"room"`
	Author  string `json:"author"`
	Message string `json:"message"`
	Time    string `json:"time"`
}
