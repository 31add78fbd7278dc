package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"creditstudio/internal/platform/health"
	"creditstudio/internal/platform/middleware"
)

// NewRouter wires all operator endpoints with the middleware chain.
func NewRouter(h *Handler, healthHandler *health.Handler, logger *slog.Logger, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(requestTimeout))

	healthHandler.Register(r)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)

		r.Post("/agents/register", h.handleAgentRegister)
		r.Post("/agents/token", h.handleAgentToken)
		r.Post("/applications/evaluate", h.handleEvaluate)

		// A full run stakes and spends studio funds, so it requires a
		// session token.
		r.Group(func(r chi.Router) {
			r.Use(h.requireSession)
			r.Post("/workflow/run", h.handleWorkflowRun)
		})
	})

	return r
}
