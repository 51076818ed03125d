package stock

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ryus-backoffice/ryus-backoffice/internal/platform/httpx"
	"github.com/ryus-backoffice/ryus-backoffice/internal/shared"
)

// ServicePort is the stats service contract used by the handler.
type ServicePort interface {
	Stats(ctx context.Context) (InventoryStats, error)
	VariantAvailability(ctx context.Context, variantID string) (VariantStats, error)
}

// Handler serves the inventory endpoints.
type Handler struct {
	logger  *slog.Logger
	service ServicePort
}

// NewHandler constructs the handler.
func NewHandler(logger *slog.Logger, service ServicePort) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes attaches inventory routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/inventory/stats", h.handleStats)
	r.Get("/inventory/variants/{variantID}", h.handleVariant)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess.EmployeeID() == "" {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}

	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.logger.Error("inventory stats", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}

func (h *Handler) handleVariant(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess.EmployeeID() == "" {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}

	vs, err := h.service.VariantAvailability(r.Context(), chi.URLParam(r, "variantID"))
	if err != nil {
		if errors.Is(err, ErrVariantNotFound) {
			httpx.RespondError(w, httpx.ErrNotFound)
			return
		}
		h.logger.Error("variant availability", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, vs)
}
