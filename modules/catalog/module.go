package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/ANUSHKA-GUPTA30/rebook-platform/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	nanoid "github.com/jaevor/go-nanoid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// bookIDLength is the length of store-assigned book identifiers.
const bookIDLength = 21

// Module provides the book catalog and exchange lifecycle services.
type Module struct {
	db         *gorm.DB
	repo       *Repository
	service    *Service
	cache      CacheService
	pendingBus mono.EventBus
	dbPath     string
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.EventBusAwareModule   = (*Module)(nil)
	_ mono.EventEmitterModule    = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a new catalog Module.
func NewModule() *Module {
	dbPath := os.Getenv("REBOOK_BOOKS_DB_PATH")
	if dbPath == "" {
		dbPath = "rebook_books.db"
	}
	return &Module{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "catalog"
}

// SetCache wires the shared cache. Optional; without it reads go straight to
// the store.
func (m *Module) SetCache(c CacheService) {
	m.cache = c
	if m.service != nil {
		m.service.cache = c
	}
}

// SetEventBus receives the event bus from the framework.
func (m *Module) SetEventBus(bus mono.EventBus) {
	if m.service != nil {
		m.service.SetEventBus(bus)
		return
	}
	// Start has not run yet; Start hands it to the service.
	m.pendingBus = bus
}

// EmitEvents declares the events this module can emit.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.ExchangeRequestedV1.ToBase(),
		events.ExchangeAcceptedV1.ToBase(),
		events.ExchangeCancelledV1.ToBase(),
		events.BookDeletedV1.ToBase(),
	}
}

// Start opens the database, migrates and builds the service.
func (m *Module) Start(_ context.Context) error {
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "true" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db
	m.repo = NewRepository(db)

	if err := m.repo.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	newID, err := nanoid.Standard(bookIDLength)
	if err != nil {
		return fmt.Errorf("failed to build id generator: %w", err)
	}

	m.service = NewService(m.repo, m.cache, newID)
	if m.pendingBus != nil {
		m.service.SetEventBus(m.pendingBus)
		m.pendingBus = nil
	}

	log.Printf("[catalog] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop closes the database connection.
func (m *Module) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[catalog] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.dbPath,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	services := map[string]func() error{
		"list": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "list", json.Unmarshal, json.Marshal, m.handleList)
		},
		"get": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "get", json.Unmarshal, json.Marshal, m.handleGet)
		},
		"create": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "create", json.Unmarshal, json.Marshal, m.handleCreate)
		},
		"transition": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "transition", json.Unmarshal, json.Marshal, m.handleTransition)
		},
		"edit": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "edit", json.Unmarshal, json.Marshal, m.handleEdit)
		},
		"delete": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "delete", json.Unmarshal, json.Marshal, m.handleDelete)
		},
	}

	for name, register := range services {
		if err := register(); err != nil {
			return fmt.Errorf("failed to register %s service: %w", name, err)
		}
	}

	log.Printf("[catalog] Registered services: list, get, create, transition, edit, delete")
	return nil
}

func (m *Module) handleList(ctx context.Context, _ ListBooksRequest, _ *mono.Msg) (ListBooksResponse, error) {
	books, err := m.service.List(ctx)
	if err != nil {
		return ListBooksResponse{}, err
	}

	resp := ListBooksResponse{
		Books: make([]BookResponse, 0, len(books)),
		Total: len(books),
	}
	for i := range books {
		resp.Books = append(resp.Books, toBookResponse(&books[i]))
	}
	return resp, nil
}

func (m *Module) handleGet(ctx context.Context, req GetBookRequest, _ *mono.Msg) (BookResponse, error) {
	b, err := m.service.Get(ctx, req.ID)
	if err != nil {
		return BookResponse{}, err
	}
	return toBookResponse(b), nil
}

func (m *Module) handleCreate(ctx context.Context, req CreateBookRequest, _ *mono.Msg) (BookResponse, error) {
	b, err := m.service.Create(ctx, req.Owner, req.Fields)
	if err != nil {
		return BookResponse{}, err
	}
	return toBookResponse(b), nil
}

func (m *Module) handleTransition(ctx context.Context, req TransitionRequest, _ *mono.Msg) (BookResponse, error) {
	b, err := m.service.Transition(ctx, req.ID, req.Caller, req.Status)
	if err != nil {
		return BookResponse{}, err
	}
	return toBookResponse(b), nil
}

func (m *Module) handleEdit(ctx context.Context, req EditBookRequest, _ *mono.Msg) (BookResponse, error) {
	b, err := m.service.Edit(ctx, req.ID, req.Caller, req.Fields)
	if err != nil {
		return BookResponse{}, err
	}
	return toBookResponse(b), nil
}

func (m *Module) handleDelete(ctx context.Context, req DeleteBookRequest, _ *mono.Msg) (DeleteBookResponse, error) {
	if err := m.service.Delete(ctx, req.ID, req.Caller); err != nil {
		return DeleteBookResponse{Deleted: false, ID: req.ID}, err
	}
	return DeleteBookResponse{Deleted: true, ID: req.ID}, nil
}
