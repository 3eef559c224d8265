package api

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ANUSHKA-GUPTA30/rebook-platform/modules/auth"
	"github.com/ANUSHKA-GUPTA30/rebook-platform/modules/catalog"
	"github.com/ANUSHKA-GUPTA30/rebook-platform/modules/relay"
	"github.com/ANUSHKA-GUPTA30/rebook-platform/modules/wishlist"
	"github.com/go-monolith/mono"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Module is the HTTP and websocket surface of the platform.
type Module struct {
	app  *fiber.App
	addr string

	authContainer     mono.ServiceContainer
	catalogContainer  mono.ServiceContainer
	wishlistContainer mono.ServiceContainer

	authAdapter  auth.Port
	catalogPort  catalog.Port
	wishlistPort wishlist.Port

	hub           *relay.Hub
	healthSources map[string]mono.HealthCheckableModule
	cacheStats    func() any
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.DependentModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new api Module.
func NewModule(hub *relay.Hub) *Module {
	addr := os.Getenv("REBOOK_HTTP_ADDR")
	if addr == "" {
		addr = ":5000"
	}
	return &Module{
		addr:          addr,
		hub:           hub,
		healthSources: make(map[string]mono.HealthCheckableModule),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *Module) Dependencies() []string {
	return []string{"auth", "catalog", "wishlist"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.authContainer = container
		m.authAdapter = auth.NewAdapter(container)
	case "catalog":
		m.catalogContainer = container
		m.catalogPort = catalog.NewAdapter(container)
	case "wishlist":
		m.wishlistContainer = container
		m.wishlistPort = wishlist.NewAdapter(container)
	}
}

// AddHealthSource lets main register modules for the /health rollup.
func (m *Module) AddHealthSource(module mono.HealthCheckableModule) {
	if named, ok := module.(mono.Module); ok {
		m.healthSources[named.Name()] = module
	}
}

// SetCacheStats wires the cache statistics endpoint. Optional.
func (m *Module) SetCacheStats(fn func() any) {
	m.cacheStats = fn
}

// Start initializes the Fiber server.
func (m *Module) Start(_ context.Context) error {
	if m.authContainer == nil || m.catalogContainer == nil || m.wishlistContainer == nil {
		return fmt.Errorf("module dependencies not set")
	}

	m.app = fiber.New(fiber.Config{
		AppName:               "ReBook",
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	m.app.Use(recover.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:5173"
	}
	m.app.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Content-Type,Authorization",
	}))

	m.setupRoutes()

	errCh := make(chan error, 1)
	go func() {
		if err := m.app.Listen(m.addr); err != nil {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed to start: %w", err)
	case <-time.After(100 * time.Millisecond):
	}

	log.Printf("[api] HTTP server started on %s", m.addr)
	return nil
}

// Stop gracefully shuts down the server.
func (m *Module) Stop(ctx context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.ShutdownWithContext(ctx)
}

// Health returns the health status of the module.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"addr": m.addr,
		},
	}
}

// setupRoutes configures all routes.
func (m *Module) setupRoutes() {
	handlers := NewHandlers(m.authContainer, m.authAdapter, m.catalogPort, m.wishlistPort)
	wsHandlers := NewWSHandlers(m.hub)

	m.app.Get("/health", m.handleHealth)

	api := m.app.Group("/api")

	// Public routes
	api.Post("/register", handlers.Register)
	api.Post("/login", handlers.Login)
	api.Get("/books", handlers.ListBooks)
	api.Get("/books/:id", handlers.GetBook)
	api.Get("/users/:username", handlers.GetUserProfile)
	api.Get("/cache/stats", m.handleCacheStats)

	// Protected routes
	protected := api.Group("")
	protected.Use(AuthMiddleware(m.authAdapter))
	protected.Post("/books", handlers.CreateBook)
	protected.Put("/books/:id", handlers.UpdateBook)
	protected.Delete("/books/:id", handlers.DeleteBook)
	protected.Put("/users/wishlist/:bookId", handlers.ToggleWishlist)

	// Websocket upgrade + endpoint
	m.app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	m.app.Get("/ws", websocket.New(wsHandlers.HandleWebSocket))
}

// handleHealth rolls up the health of every registered module.
func (m *Module) handleHealth(c *fiber.Ctx) error {
	modules := make(map[string]mono.HealthStatus, len(m.healthSources)+1)
	healthy := true

	modules["api"] = m.Health(c.UserContext())
	for name, source := range m.healthSources {
		status := source.Health(c.UserContext())
		modules[name] = status
		if !status.Healthy {
			healthy = false
		}
	}

	status := "healthy"
	code := fiber.StatusOK
	if !healthy {
		status = "degraded"
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":  status,
		"modules": modules,
	})
}

// handleCacheStats serves cache counters. The stats source is wired after
// app start, so the route exists from the beginning and reports unavailable
// until then (or forever, when caching is disabled).
func (m *Module) handleCacheStats(c *fiber.Ctx) error {
	if m.cacheStats == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Error:   "unavailable",
			Message: "Cache statistics are not available",
		})
	}
	return c.Status(fiber.StatusOK).JSON(m.cacheStats())
}

// customErrorHandler handles Fiber errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}
