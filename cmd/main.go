// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/elizabeth-johnson8888/petsitting-backend/internal/airtable"
	"github.com/elizabeth-johnson8888/petsitting-backend/internal/config"
	"github.com/elizabeth-johnson8888/petsitting-backend/internal/gcal"
	"github.com/elizabeth-johnson8888/petsitting-backend/internal/handler"
	"github.com/elizabeth-johnson8888/petsitting-backend/internal/repository"
	"github.com/elizabeth-johnson8888/petsitting-backend/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)})).With(
		slog.String("service", "petsitting-backend"),
	)
	slog.SetDefault(log)

	// ── 1. Connect upstreams ──────────────────────────────────────────────
	calendarClient, err := gcal.NewClient(ctx, cfg.CalendarID, cfg.CredentialsFile)
	if err != nil {
		log.Error("calendar client failed", slog.Any("err", err))
		os.Exit(1)
	}
	reviewsTable := airtable.NewClient(cfg.Reviews.BaseID, cfg.Reviews.Table, cfg.Reviews.Token)
	codesTable := airtable.NewClient(cfg.Codes.BaseID, cfg.Codes.Table, cfg.Codes.Token)

	// ── 2. Wire up layers ────────────────────────────────────────────────
	reviewRepo := repository.NewReviewRepository(reviewsTable)
	codeRepo := repository.NewCodeRepository(codesTable)
	availabilitySvc := service.NewAvailabilityService(calendarClient)
	reviewSvc := service.NewReviewService(reviewRepo, codeRepo)
	h := handler.New(availabilitySvc, reviewSvc)

	// ── 3. Build the router ───────────────────────────────────────────────
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(handler.Logger)          // structured access log
	r.Use(cors.AllowAll().Handler) // any origin may call this API

	// Health
	r.Get("/health", handler.HealthCheck)

	// API routes
	r.Get("/busy-dates", h.BusyDates)
	r.Get("/reviews", h.ListReviews)
	r.Post("/submit-review", h.SubmitReview)

	// ── 4. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Run in background goroutine so we can listen for shutdown signal.
	go func() {
		log.Info("server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("server stopped")
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
