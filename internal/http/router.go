// Package httpapi is the thin HTTP layer. It delegates to domain services
// without embedding business logic so transport concerns remain isolated.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fairgate/internal/decision/handler"
	"fairgate/internal/platform/middleware"
	"fairgate/pkg/platform/httputil"
)

// HealthChecker reports readiness of one optional backend.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// RouterConfig carries everything the router needs from main.
type RouterConfig struct {
	Decisions *handler.Handler
	Auth      middleware.JWTValidator
	Logger    *slog.Logger

	// Health targets; nil entries are skipped.
	Checks map[string]HealthChecker
}

// NewRouter wires all public endpoints with middleware. Decision endpoints
// require authentication; health and metrics stay open for probes and
// scrapers.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.ContentTypeJSON)

	r.Get("/health", handleHealth(cfg.Checks))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(cfg.Auth, cfg.Logger))
		cfg.Decisions.Register(r)
	})

	return r
}

func handleHealth(checks map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		body := map[string]string{"status": "ok"}
		for name, check := range checks {
			if check == nil {
				continue
			}
			if err := check.Health(ctx); err != nil {
				status = http.StatusServiceUnavailable
				body["status"] = "degraded"
				body[name] = err.Error()
			} else {
				body[name] = "ok"
			}
		}
		httputil.WriteJSON(w, status, body)
	}
}
