// main is the entry point of the student registration service.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Connect to (and set up) the SQLite database
//  4. Build the form registry and register all HTTP routes
//  5. Start the HTTP server in a separate goroutine
//  6. Block until an OS signal (Ctrl+C / kill) arrives
//  7. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/student-registration --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/student-registration
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanand-mishra/student-registration/internal/config"
	"github.com/aanand-mishra/student-registration/internal/form"
	"github.com/aanand-mishra/student-registration/internal/http/handlers/registration"
	"github.com/aanand-mishra/student-registration/internal/http/middleware"
	"github.com/aanand-mishra/student-registration/internal/storage/sqlite"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting student-registration",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Initialise Storage (Database) ──────────────────────────────────
	storage, err := sqlite.New(cfg)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer storage.Close()

	log.Info("storage initialised",
		slog.String("path", cfg.StoragePath))

	// ── 4. Forms and Routes ───────────────────────────────────────────────
	// Every form instance shares one submitter and notifier but owns its
	// own values and state.
	submitter := form.NewStorageSubmitter(storage, cfg.Form.SubmitDelay)
	notifier := form.LogNotifier{Logger: log}
	newForm := func() *form.Controller {
		return form.New(submitter, notifier, form.WithLogger(log))
	}
	forms := form.NewRegistry(newForm)

	router := registration.Routes(forms, storage, newForm)

	// ── 5. Create the HTTP Server ─────────────────────────────────────────
	server := &http.Server{
		Addr: cfg.HTTPServer.Addr,
		Handler: middleware.Chain(router,
			middleware.Logger(log),
			middleware.CORS(cfg.HTTPServer.AllowedOrigins),
		),

		// A submit holds its request open for the submit delay, so the
		// write timeout has to outlast it.
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10*time.Second + cfg.Form.SubmitDelay,
		IdleTimeout:  60 * time.Second,
	}

	// ── 6. Start Server in a Goroutine ────────────────────────────────────
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		if err := server.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 7. Wait for Shutdown Signal ───────────────────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	// Pending submits get the usual 5 seconds plus one submit delay.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second+cfg.Form.SubmitDelay)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully",
		slog.Int("open_forms", forms.Len()))
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
