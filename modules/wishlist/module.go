package wishlist

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Module provides the wishlist services.
type Module struct {
	db      *gorm.DB
	service *Service
	dbPath  string
}

var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a new wishlist Module.
func NewModule() *Module {
	dbPath := os.Getenv("REBOOK_WISHLIST_DB_PATH")
	if dbPath == "" {
		dbPath = "rebook_wishlist.db"
	}
	return &Module{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "wishlist"
}

// Start opens the database and runs migrations.
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

	repo := NewRepository(db)
	if err := repo.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	m.service = NewService(repo)

	log.Printf("[wishlist] Module started (database: %s)", m.dbPath)
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
	log.Println("[wishlist] Module stopped")
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
	if err := helper.RegisterTypedRequestReplyService(
		container, "toggle", json.Unmarshal, json.Marshal, m.handleToggle); err != nil {
		return fmt.Errorf("failed to register toggle service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "saved-books", json.Unmarshal, json.Marshal, m.handleSavedBooks); err != nil {
		return fmt.Errorf("failed to register saved-books service: %w", err)
	}

	log.Printf("[wishlist] Registered services: toggle, saved-books")
	return nil
}

func (m *Module) handleToggle(ctx context.Context, req ToggleRequest, _ *mono.Msg) (ToggleResponse, error) {
	ids, message, err := m.service.Toggle(ctx, req.Username, req.BookID)
	if err != nil {
		return ToggleResponse{}, err
	}
	return ToggleResponse{SavedBooks: ids, Message: message}, nil
}

func (m *Module) handleSavedBooks(ctx context.Context, req SavedBooksRequest, _ *mono.Msg) (SavedBooksResponse, error) {
	ids, err := m.service.SavedBooks(ctx, req.Username)
	if err != nil {
		return SavedBooksResponse{}, err
	}
	return SavedBooksResponse{Username: req.Username, SavedBooks: ids}, nil
}
