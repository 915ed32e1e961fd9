// Package health serves the liveness and readiness probes.
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"targetonchain/internal/transport/httputil"
)

// Pinger checks a dependency. Satisfied by database.Pool.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// Handler answers probe requests. A nil database means the service runs on
// in-memory stores and readiness has nothing to check.
type Handler struct {
	db     Pinger
	logger *slog.Logger
}

// Option configures the Handler.
type Option func(*Handler)

// WithDatabase adds the database to the readiness check.
func WithDatabase(db Pinger) Option {
	return func(h *Handler) {
		h.db = db
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = l
	}
}

// NewHandler creates the probe handler.
func NewHandler(opts ...Option) *Handler {
	h := &Handler{logger: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the probe routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/healthz", h.handleLive)
	r.Get("/readyz", h.handleReady)
}

func (h *Handler) handleLive(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.HealthCheck(r.Context()); err != nil {
			h.logger.Warn("readiness check failed", "error", err)
			httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
