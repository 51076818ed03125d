package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ryus-backoffice/ryus-backoffice/internal/auth"
	"github.com/ryus-backoffice/ryus-backoffice/internal/finance"
	"github.com/ryus-backoffice/ryus-backoffice/internal/observability"
	"github.com/ryus-backoffice/ryus-backoffice/internal/orders"
	"github.com/ryus-backoffice/ryus-backoffice/internal/shared"
	"github.com/ryus-backoffice/ryus-backoffice/internal/stock"
	"github.com/ryus-backoffice/ryus-backoffice/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	AuthHandler    *auth.Handler
	OrdersHandler  *orders.Handler
	StockHandler   *stock.Handler
	FinanceHandler *finance.Handler
	JobHandler     *jobs.Handler
	Metrics        *observability.Metrics
}

// NewRouter constructs the chi.Router with back office defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		params.AuthHandler.MountRoutes(r)
		params.OrdersHandler.MountRoutes(r)
		params.StockHandler.MountRoutes(r)
		params.FinanceHandler.MountRoutes(r)
	})

	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
