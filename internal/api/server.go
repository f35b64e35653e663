package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/matemagica/matemagica/internal/config"
	"github.com/matemagica/matemagica/internal/exercise"
)

// maxBodyBytes bounds the JSON request body.
const maxBodyBytes = 64 << 10

// BatchGenerator is the part of exercise.Generator the API needs.
type BatchGenerator interface {
	GenerateBatch(ctx context.Context, op exercise.Operation, tier exercise.Tier, count int, source exercise.Source) (*exercise.Batch, error)
}

// Server holds the HTTP handlers.
type Server struct {
	gen      BatchGenerator
	maxCount int
	logger   *slog.Logger
	validate *validator.Validate
}

// NewServer returns a Server that rejects counts above maxCount.
func NewServer(gen BatchGenerator, maxCount int, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		gen:      gen,
		maxCount: maxCount,
		logger:   logger,
		validate: validator.New(),
	}
}

// Routes builds the chi router with the standard middleware stack.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.healthz)
	r.Route("/v1/batches", func(r chi.Router) {
		r.Post("/", s.createBatch)
		r.Get("/worksheet.pdf", s.worksheetPDF)
		r.Get("/worksheet.csv", s.worksheetCSV)
	})

	return r
}

// ListenAndServe serves h on cfg.Addr until ctx is cancelled, then shuts
// down gracefully.
func ListenAndServe(ctx context.Context, cfg config.ServerConfig, h http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen on %s: %w", cfg.Addr, err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info("server shutdown completed")
	return nil
}
