// Package main is the entry point for the Linkshelf server. It loads
// configuration, connects to services, sets up routing, and starts the
// HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"linkshelf/internal/cache"
	"linkshelf/internal/config"
	"linkshelf/internal/database"
	"linkshelf/internal/directory"
	"linkshelf/internal/handlers"
	"linkshelf/internal/render"
	"linkshelf/internal/router"
	"linkshelf/internal/search"
	"linkshelf/internal/session"
	"linkshelf/internal/storage"
	"linkshelf/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development fixtures (no-op once data exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (sessions + suggestion cache).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// In non-development environments, session cookies are HTTPS-only.
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	renderer, err := render.New(cfg.IsDev())
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Data stores and the domain layers over them.
	categoryStore := store.NewCategoryStore(db)
	pageStore := store.NewPageStore(db)
	userStore := store.NewUserStore(db)
	dir := directory.New(categoryStore)
	ranker := directory.NewRanker(pageStore)

	// S3-compatible object storage (optional — profile pictures disabled
	// without it).
	var storageClient *storage.Client
	if cfg.S3Endpoint != "" && cfg.S3AccessKey != "" {
		storageClient, err = storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured — picture uploads disabled")
	}

	// Web search collaborator (optional — category search disabled without it).
	searcher := search.New(search.Config{APIKey: cfg.SearchAPIKey, BaseURL: cfg.SearchBaseURL})
	if searcher == nil {
		slog.Warn("search api not configured — category web search disabled")
	}

	suggestCache := cache.NewSuggestCache(valkeyClient, cache.DefaultSuggestTTL)

	// Handler groups.
	publicHandlers := handlers.NewPublic(renderer, sessionStore, dir, ranker, searcher, suggestCache)
	authHandlers := handlers.NewAuth(renderer, sessionStore, userStore, storageClient)
	memberHandlers := handlers.NewMember(renderer, dir, ranker, categoryStore, pageStore, userStore, storageClient, suggestCache)

	r, limiter := router.New(sessionStore, publicHandlers, authHandlers, memberHandlers)
	defer limiter.Stop()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
