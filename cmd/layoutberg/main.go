// Package main is the entry point for the LayoutBerg server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"layoutberg/internal/ai"
	"layoutberg/internal/blocks"
	"layoutberg/internal/cache"
	"layoutberg/internal/config"
	"layoutberg/internal/database"
	"layoutberg/internal/generator"
	"layoutberg/internal/handlers"
	"layoutberg/internal/middleware"
	"layoutberg/internal/router"
	"layoutberg/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"model", cfg.DefaultModel,
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
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

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Assemble the layout cache. Valkey and the file tier are both
	// optional; the in-memory tier is always present.
	cacheOpts := []cache.Option{}
	if cfg.HasValkey() {
		valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		cacheOpts = append(cacheOpts, cache.WithValkey(valkeyClient))
	} else {
		slog.Warn("valkey not configured, cache is memory and file only")
	}
	if cfg.FileCacheDir != "" {
		cacheOpts = append(cacheOpts, cache.WithFileDir(cfg.FileCacheDir))
	}
	layoutCache := cache.NewManager(cfg.CacheTTL, cacheOpts...)
	slog.Info("cache assembled", "tiers", layoutCache.String(), "ttl", cfg.CacheTTL)

	// Initialize data stores.
	generationStore := store.NewGenerationStore(db)
	usageStore := store.NewUsageStore(db)
	templateStore := store.NewTemplateStore(db)

	// The tracker records generation history and daily usage after every
	// provider call, success or failure.
	tracker := store.NewTracker(generationStore, usageStore)

	// Initialize the LLM client.
	client := ai.NewClient(ai.Config{
		OpenAIKey:    cfg.OpenAIKey,
		ClaudeKey:    cfg.ClaudeKey,
		DefaultModel: cfg.DefaultModel,
		Temperature:  cfg.Temperature,
	}, ai.WithTracker(tracker))

	// The generator drives the full pipeline: cache, client, parse,
	// filter, serialize.
	gen := generator.New(client, layoutCache, blocks.DefaultAllowList())

	api := handlers.New(gen, client, templateStore, generationStore, usageStore, layoutCache)

	// Generation calls fan out to paid APIs; keep the per-user rate modest.
	limiter := middleware.NewRateLimiter(10, time.Minute)
	defer limiter.Stop()

	r := router.New(api, cfg.AdminTokenHash, limiter)

	// Create the HTTP server with sensible timeouts.
	// WriteTimeout must accommodate generation requests that wait on LLM
	// responses (typically 10-30s, up to 60s for complex prompts).
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
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
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
