// Package main is the entry point for the wedding theme recommendation
// server. It loads configuration, connects to services, seeds an empty rule
// store, sets up routing, and starts the HTTP server with graceful shutdown
// support.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"weddingplanner/internal/cache"
	"weddingplanner/internal/config"
	"weddingplanner/internal/database"
	"weddingplanner/internal/engine"
	"weddingplanner/internal/handlers"
	"weddingplanner/internal/middleware"
	"weddingplanner/internal/router"
	"weddingplanner/internal/store"
)

func main() {
	checkSeed := flag.String("check-seed", "", "validate a seed fixture (\"-\" for the embedded one), build a snapshot from it and exit")
	flag.Parse()

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON everywhere else.
	var handler slog.Handler
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))

	if *checkSeed != "" {
		if err := runSeedCheck(*checkSeed); err != nil {
			slog.Error("seed check failed", "error", err)
			os.Exit(1)
		}
		return
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"admin_api", cfg.AdminEnabled(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to PostgreSQL.
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	db, err := database.Connect(connectCtx, cfg.DSN())
	cancel()
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed the rule tables (no-op if any wedding type exists).
	fixture, err := database.LoadFixture(cfg.SeedFile)
	if err != nil {
		slog.Error("failed to load seed fixture", "file", cfg.SeedFile, "error", err)
		os.Exit(1)
	}
	if err := database.Seed(ctx, db, fixture); err != nil {
		slog.Error("failed to seed database", "error", err)
		os.Exit(1)
	}

	// Initialize data stores and the engine reading from them.
	themes := store.NewThemeSource(db)
	cacheLogStore := store.NewCacheLogStore(db)
	eng := engine.New(themes.Source())

	// Build the first snapshot eagerly so a broken rule store fails fast.
	if _, err := eng.Rebuild(ctx); err != nil {
		slog.Error("failed to build theme snapshot", "error", err)
		os.Exit(1)
	}

	// Connect to Valkey (optional: suggestions are then computed on every
	// request and other instances are not notified of admin writes).
	var (
		suggestions *cache.SuggestionCache
		broadcaster *cache.Broadcaster
	)
	valkeyClient, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword, cfg.ValkeyDB)
	if err != nil {
		slog.Warn("valkey not reachable, running without suggestion cache and invalidation broadcast", "error", err)
	} else {
		defer valkeyClient.Close()
		if cfg.SuggestCacheEnabled() {
			suggestions = cache.NewSuggestionCache(valkeyClient, cfg.SuggestCacheTTL)
		} else {
			slog.Info("suggestion cache disabled", "ttl", cfg.SuggestCacheTTL)
		}
		broadcaster = cache.NewBroadcaster(valkeyClient)
		go listenForInvalidations(ctx, broadcaster, eng)
	}

	limiter := middleware.NewRateLimiter(cfg.SuggestRateLimit, time.Minute)
	defer limiter.Stop()

	// Create handler groups with their dependencies.
	themeHandlers := handlers.NewTheme(eng, suggestions)
	var adminHandlers *handlers.Admin
	if cfg.AdminEnabled() {
		adminHandlers = handlers.NewAdmin(eng, themes, cacheLogStore, suggestions, broadcaster)
	} else {
		slog.Warn("ADMIN_TOKEN not set, admin API disabled")
	}

	r := router.New(themeHandlers, adminHandlers, router.Options{
		AdminToken:     cfg.AdminToken,
		SuggestLimiter: limiter,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	<-ctx.Done()
	slog.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// listenForInvalidations keeps this instance's snapshot in step with
// admin writes made on other instances.
func listenForInvalidations(ctx context.Context, b *cache.Broadcaster, eng *engine.Engine) {
	err := b.Listen(ctx, nil, func(ctx context.Context, inv cache.Invalidation) {
		if inv.Fingerprint != "" && inv.Fingerprint == eng.Info().Fingerprint {
			return
		}
		eng.Invalidate()
		if _, err := eng.Rebuild(ctx); err != nil {
			// The snapshot stays stale; the next request retries.
			slog.Error("rebuild after remote invalidation failed",
				"origin", inv.Origin,
				"entity_type", inv.EntityType,
				"entity_key", inv.EntityKey,
				"error", err,
			)
		}
	})
	if err != nil && err != redis.ErrClosed {
		slog.Error("invalidation listener stopped", "error", err)
	}
}

// runSeedCheck parses a fixture and builds a snapshot from it without
// touching the database.
func runSeedCheck(path string) error {
	if path == "-" {
		path = ""
	}
	fixture, err := database.LoadFixture(path)
	if err != nil {
		return err
	}
	eng := engine.New(fixture.Source())
	if _, err := eng.Rebuild(context.Background()); err != nil {
		return err
	}
	info := eng.Info()
	if info.SkippedRules > 0 || info.DuplicateRules > 0 {
		return fmt.Errorf("fixture has %d skipped and %d duplicate rules", info.SkippedRules, info.DuplicateRules)
	}
	slog.Info("seed fixture ok",
		"wedding_types", info.WeddingTypes,
		"rules", info.Rules,
		"fingerprint", info.Fingerprint,
	)
	return nil
}
