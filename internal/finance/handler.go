package finance

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/ryus-backoffice/ryus-backoffice/internal/platform/httpx"
	"github.com/ryus-backoffice/ryus-backoffice/internal/shared"
	"github.com/ryus-backoffice/ryus-backoffice/internal/stock"
)

// ServicePort is the finance service contract used by the handler.
type ServicePort interface {
	Summary(ctx context.Context, period Period, scope ViewScope) (FinancialMetrics, error)
}

// InventoryPort supplies the stock rollup for the combined dashboard.
type InventoryPort interface {
	Stats(ctx context.Context) (stock.InventoryStats, error)
}

// Handler serves the finance endpoints.
type Handler struct {
	logger    *slog.Logger
	service   ServicePort
	inventory InventoryPort
}

// NewHandler constructs the handler.
func NewHandler(logger *slog.Logger, service ServicePort, inventory InventoryPort) *Handler {
	return &Handler{logger: logger, service: service, inventory: inventory}
}

// MountRoutes attaches finance routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/finance/summary", h.handleSummary)
	r.Get("/finance/dashboard", h.handleDashboard)
}

func scopeFromSession(sess *shared.Session, r *http.Request) ViewScope {
	return ViewScope{
		EmployeeID:      sess.EmployeeID(),
		CanViewAll:      sess.CanViewAll(),
		ExcludeSelfDues: r.URL.Query().Get("exclude_self_dues") == "true",
	}
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess.EmployeeID() == "" {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}

	period := Period(r.URL.Query().Get("period"))
	metrics, err := h.service.Summary(r.Context(), period, scopeFromSession(sess, r))
	if err != nil {
		if errors.Is(err, ErrUnknownPeriod) {
			httpx.RespondError(w, httpx.ErrValidation)
			return
		}
		h.logger.Error("finance summary", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, metrics)
}

type dashboardResponse struct {
	Period    string               `json:"period"`
	Finance   FinancialMetrics     `json:"finance"`
	Inventory stock.InventoryStats `json:"inventory"`
}

// handleDashboard loads the financial and inventory rollups concurrently and
// returns them as one payload.
func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess.EmployeeID() == "" {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}

	period := Period(r.URL.Query().Get("period"))
	if period == "" {
		period = PeriodAll
	}
	scope := scopeFromSession(sess, r)

	var resp dashboardResponse
	resp.Period = string(period)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		m, err := h.service.Summary(ctx, period, scope)
		if err != nil {
			return err
		}
		resp.Finance = m
		return nil
	})
	g.Go(func() error {
		stats, err := h.inventory.Stats(ctx)
		if err != nil {
			return err
		}
		resp.Inventory = stats
		return nil
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, ErrUnknownPeriod) {
			httpx.RespondError(w, httpx.ErrValidation)
			return
		}
		h.logger.Error("dashboard", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, resp)
}
