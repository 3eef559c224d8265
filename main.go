package main

import (
	"context"
	"log"
	"os"
	"time"

	apimod "github.com/ANUSHKA-GUPTA30/rebook-platform/modules/api"
	authmod "github.com/ANUSHKA-GUPTA30/rebook-platform/modules/auth"
	cachemod "github.com/ANUSHKA-GUPTA30/rebook-platform/modules/cache"
	catalogmod "github.com/ANUSHKA-GUPTA30/rebook-platform/modules/catalog"
	relaymod "github.com/ANUSHKA-GUPTA30/rebook-platform/modules/relay"
	wishlistmod "github.com/ANUSHKA-GUPTA30/rebook-platform/modules/wishlist"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	cacheTTL := getEnvDuration("CACHE_TTL", 5*time.Minute)
	cachePrefix := getEnv("CACHE_PREFIX", "rebook:")

	log.Println("=== ReBook ===")
	log.Printf("Redis: %s", redisAddr)
	log.Printf("Cache TTL: %s", cacheTTL)

	// Create modules
	cacheModule := cachemod.NewModule(redisAddr, cachePrefix, cacheTTL)
	authModule := authmod.NewModule()
	catalogModule := catalogmod.NewModule()
	wishlistModule := wishlistmod.NewModule()
	relayModule := relaymod.NewModule()
	apiModule := apimod.NewModule(relayModule.GetHub())

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create mono application: %v", err)
	}

	app.Register(cacheModule)
	app.Register(authModule)
	app.Register(catalogModule)
	app.Register(wishlistModule)
	app.Register(relayModule)
	app.Register(apiModule)

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}

	// Wire up dependencies after start. The cache is optional; the catalog
	// falls back to uncached reads when Redis is unreachable.
	if cacheModule.GetCache() != nil {
		catalogModule.SetCache(cacheModule.GetCache())
		apiModule.SetCacheStats(func() any {
			return cacheModule.GetCache().Stats()
		})
	}

	apiModule.AddHealthSource(cacheModule)
	apiModule.AddHealthSource(authModule)
	apiModule.AddHealthSource(catalogModule)
	apiModule.AddHealthSource(wishlistModule)
	apiModule.AddHealthSource(relayModule)

	log.Println("=== Application Started ===")
	log.Println("Endpoints:")
	log.Println("  POST   /api/register             - Create an account")
	log.Println("  POST   /api/login                - Sign in")
	log.Println("  GET    /api/books                - List books (cached)")
	log.Println("  GET    /api/books/:id            - Get a book (cached)")
	log.Println("  POST   /api/books                - List a book for exchange")
	log.Println("  PUT    /api/books/:id            - Edit a listing or move its status")
	log.Println("  DELETE /api/books/:id            - Remove a listing")
	log.Println("  GET    /api/users/:username      - Public profile + wishlist")
	log.Println("  PUT    /api/users/wishlist/:id   - Toggle wishlist")
	log.Println("  GET    /api/cache/stats          - Cache statistics")
	log.Println("  GET    /health                   - Module health rollup")
	log.Println("  WS     /ws                       - Book chat relay")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown")

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration returns environment variable as duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}
