// Package router assembles the HTTP route table.
package router

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"targetonchain/internal/composer"
	framehandler "targetonchain/internal/frame/handler"
	"targetonchain/internal/media"
	"targetonchain/internal/platform/health"
	"targetonchain/internal/platform/middleware"
	"targetonchain/internal/storefront"
)

// Deps holds the handlers the router mounts.
type Deps struct {
	Logger     *slog.Logger
	Timeout    time.Duration
	Frames     *framehandler.Handler
	Composer   *composer.Handler
	Storefront *storefront.Handler
	Media      *media.Handler
	Health     *health.Handler
}

// New builds the router with the standard middleware stack and every route
// the service serves.
func New(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.Logger))
	if deps.Timeout > 0 {
		r.Use(middleware.Timeout(deps.Timeout))
	}

	deps.Frames.Register(r)
	deps.Composer.Register(r)
	deps.Storefront.Register(r)
	deps.Media.Register(r)
	deps.Health.Register(r)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
