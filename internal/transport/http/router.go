// Package httptransport assembles the public HTTP surface: the global
// middleware chain, the service endpoints and each module's routes.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nurture/internal/platform/metrics"
	"nurture/internal/platform/middleware"
	"nurture/pkg/platform/httputil"
	"nurture/pkg/platform/middleware/metadata"
	"nurture/pkg/platform/middleware/requesttime"
)

// ServiceName is reported by GET /.
const ServiceName = "nurture"

// Registrar mounts a module's routes.
type Registrar interface {
	Register(r chi.Router)
}

// HealthChecker reports whether an optional backing service is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Config carries everything the router needs. Nil modules are skipped.
type Config struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	AllowedOrigins []string

	Evaluation Registrar
	Chat       Registrar
	// ChatLimit wraps the chat routes, typically ratelimit middleware.
	ChatLimit func(http.Handler) http.Handler
	// Redis is checked by GET /health when configured.
	Redis HealthChecker
}

// NewRouter builds the chi router with the shared middleware chain.
func NewRouter(cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(cfg.Metrics.Middleware)

	r.Get("/", handleInfo)
	r.Get("/health", healthHandler(cfg.Redis))
	r.Handle("/metrics", promhttp.Handler())

	if cfg.Evaluation != nil {
		cfg.Evaluation.Register(r)
	}
	if cfg.Chat != nil {
		r.Group(func(r chi.Router) {
			if cfg.ChatLimit != nil {
				r.Use(cfg.ChatLimit)
			}
			cfg.Chat.Register(r)
		})
	}
	return r
}

// InfoResponse is returned by GET /.
type InfoResponse struct {
	Service   string   `json:"service"`
	Status    string   `json:"status"`
	Endpoints []string `json:"endpoints"`
}

func handleInfo(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, InfoResponse{
		Service: ServiceName,
		Status:  "running",
		Endpoints: []string{
			"POST /api/chat",
			"POST /evaluate",
			"GET /milestones",
			"GET /health",
			"GET /metrics",
		},
	})
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Redis  string `json:"redis,omitempty"`
}

// healthHandler stays 200 when Redis is down because the rate limiter falls
// back to memory; the degraded state is only reported.
func healthHandler(redis HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{Status: "healthy"}
		if redis != nil {
			resp.Redis = "ok"
			if err := redis.Health(r.Context()); err != nil {
				resp.Status = "degraded"
				resp.Redis = "unreachable"
			}
		}
		httputil.WriteJSON(w, http.StatusOK, resp)
	}
}
