// Package main is the entry point for the 2nd Chance Recovery site server.
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

	"github.com/joho/godotenv"

	"secondchance/internal/backend"
	"secondchance/internal/cache"
	"secondchance/internal/config"
	"secondchance/internal/confirm"
	"secondchance/internal/dashboard"
	"secondchance/internal/handlers"
	"secondchance/internal/inbox"
	"secondchance/internal/render"
	"secondchance/internal/router"
	"secondchance/internal/session"
)

func main() {
	// Optional .env file for local development; real deployments set the
	// environment directly.
	godotenv.Load()

	// Structured logger — text output, debug level.
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
		"api", cfg.APIBaseURL,
	)

	// Connect to Valkey (Redis-compatible cache + session store).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Initialize session store backed by Valkey.
	// In non-development environments, mark session cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	// Initialize the HTML template renderer.
	renderer, err := render.New(cfg.IsDev())
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// HTTP client for the content and lead-management backend API.
	api := backend.New(cfg.APIBaseURL, cfg.APIToken)

	// Initialize the full-page cache for the public site.
	pageCache := cache.NewPageCache(valkeyClient, cache.DefaultPageTTL)

	// The admin editing session and submissions inbox. Both warm up from the
	// backend at startup; fetch failures degrade to defaults.
	dash := dashboard.NewSession(api)
	ibx := inbox.New(api, cfg.UseSampleData)
	defer dash.Close()
	defer ibx.Close()

	warmupCtx, cancelWarmup := context.WithTimeout(context.Background(), 30*time.Second)
	dash.Load(warmupCtx)
	ibx.Load(warmupCtx)
	cancelWarmup()

	// Deletion confirmation workflow: records an intent first, performs the
	// actual delete only after explicit confirmation.
	confirms := confirm.New(map[confirm.Kind]confirm.Deleter{
		confirm.KindProgram: func(ctx context.Context, id string) error {
			return dash.DeleteProgram(ctx, id)
		},
		confirm.KindContact: func(ctx context.Context, id string) error {
			return ibx.DeleteContactByStringID(ctx, id)
		},
		confirm.KindNewsletter: func(ctx context.Context, id string) error {
			return ibx.DeleteNewsletterByStringID(ctx, id)
		},
	})

	// Create handler groups with their dependencies.
	adminHandlers := handlers.NewAdmin(renderer, dash, ibx, confirms, pageCache)
	authHandlers := handlers.NewAuth(renderer, sessionStore, cfg)
	publicHandlers := handlers.NewPublic(renderer, api, pageCache)
	leadHandlers := handlers.NewLeads(api)

	// Set up the Chi router with all middleware and routes.
	r, limiter := router.New(sessionStore, adminHandlers, authHandlers, publicHandlers, leadHandlers)
	defer limiter.Stop()

	// Create the HTTP server with sensible timeouts. WriteTimeout covers
	// handlers that proxy to the backend API (30s client timeout).
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
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
