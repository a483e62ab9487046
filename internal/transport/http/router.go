// Package httptransport assembles the process router.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"talentnet/internal/platform/metrics"
	"talentnet/pkg/platform/httputil"
	"talentnet/pkg/platform/middleware/auth"
	"talentnet/pkg/platform/middleware/metadata"
	"talentnet/pkg/platform/middleware/privacy"
	request "talentnet/pkg/platform/middleware/request"
	"talentnet/pkg/platform/middleware/requesttime"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck reports whether a backing dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Registrar mounts a module's routes.
type Registrar interface {
	Register(r chi.Router)
}

// Dependencies are the collaborators the router needs.
type Dependencies struct {
	Logger   *slog.Logger
	Tokens   auth.TokenValidator
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Checks   map[string]HealthCheck
	Modules  []Registrar

	// TrustedProxies may report the client address in forwarding headers.
	TrustedProxies *metadata.TrustedProxies
	// CacheMaxAge is advertised on module responses, including auth failures.
	CacheMaxAge time.Duration
}

// NewRouter applies the shared middleware chain and mounts every module.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}
	r.Use(metadata.ClientMetadata(deps.TrustedProxies))
	r.Use(requesttime.Middleware)

	r.Get("/healthz", healthz(deps.Logger, deps.Checks))
	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(privacy.NoShare(deps.CacheMaxAge))
		r.Use(auth.Authenticate(deps.Tokens, deps.Logger))
		for _, m := range deps.Modules {
			m.Register(r)
		}
	})
	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthz(logger *slog.Logger, checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(checks))}
		status := http.StatusOK
		for name, check := range checks {
			if err := check(ctx); err != nil {
				logger.WarnContext(ctx, "health check failed",
					"check", name,
					"request_id", request.GetRequestID(ctx),
					"error", err,
				)
				resp.Checks[name] = "unavailable"
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		httputil.WriteJSON(w, status, resp)
	}
}
