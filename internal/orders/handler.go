package orders

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ryus-backoffice/ryus-backoffice/internal/platform/httpx"
	"github.com/ryus-backoffice/ryus-backoffice/internal/shared"
)

// ServicePort is the order service contract used by the handler.
type ServicePort interface {
	Snapshot(ctx context.Context) ([]Order, error)
	Get(ctx context.Context, id string) (Order, error)
	ConfirmReceipt(ctx context.Context, orderID, actorID string) (Order, error)
}

// Handler serves the order endpoints.
type Handler struct {
	logger  *slog.Logger
	service ServicePort
}

// NewHandler constructs the handler.
func NewHandler(logger *slog.Logger, service ServicePort) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes attaches order routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/orders", h.handleList)
	r.Get("/orders/{orderID}", h.handleGet)
	r.Post("/orders/{orderID}/receipt", h.handleConfirmReceipt)
}

type itemResponse struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	VariantID string  `json:"variant_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Direction string  `json:"item_direction"`
}

type orderResponse struct {
	ID              string         `json:"id"`
	Status          string         `json:"status"`
	OrderType       string         `json:"order_type"`
	ReceiptReceived bool           `json:"receipt_received"`
	TotalAmount     float64        `json:"total_amount"`
	DeliveryFee     float64        `json:"delivery_fee"`
	FinalAmount     float64        `json:"final_amount"`
	CreatedBy       string         `json:"created_by"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	Items           []itemResponse `json:"items"`
}

func toResponse(o Order) orderResponse {
	resp := orderResponse{
		ID:              o.ID,
		Status:          string(o.Status),
		OrderType:       string(o.Type),
		ReceiptReceived: o.ReceiptReceived,
		TotalAmount:     o.TotalAmount,
		DeliveryFee:     o.DeliveryFee,
		FinalAmount:     o.FinalAmount,
		CreatedBy:       o.CreatedBy,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Items:           make([]itemResponse, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		direction := it.Direction
		if direction == "" {
			direction = DirectionOutgoing
		}
		resp.Items = append(resp.Items, itemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Direction: string(direction),
		})
	}
	return resp
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess.EmployeeID() == "" {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}

	snapshot, err := h.service.Snapshot(r.Context())
	if err != nil {
		h.logger.Error("list orders", slog.Any("error", err))
		respondOrderError(w, err)
		return
	}

	out := make([]orderResponse, 0, len(snapshot))
	for _, o := range snapshot {
		if !sess.CanViewAll() && o.CreatedBy != sess.EmployeeID() {
			continue
		}
		out = append(out, toResponse(o))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"orders": out})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess.EmployeeID() == "" {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}

	o, err := h.service.Get(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		respondOrderError(w, err)
		return
	}
	if !sess.CanViewAll() && o.CreatedBy != sess.EmployeeID() {
		respondOrderError(w, ErrOrderNotFound)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(o))
}

func (h *Handler) handleConfirmReceipt(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess.EmployeeID() == "" {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}

	o, err := h.service.ConfirmReceipt(r.Context(), chi.URLParam(r, "orderID"), sess.EmployeeID())
	if err != nil {
		if !errors.Is(err, ErrReceiptAlreadyConfirmed) && !errors.Is(err, ErrReceiptNotDeliverable) && !errors.Is(err, ErrOrderNotFound) {
			h.logger.Error("confirm receipt", slog.Any("error", err))
		}
		respondOrderError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(o))
}

func respondOrderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrOrderNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrReceiptAlreadyConfirmed):
		httpx.Problem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, ErrReceiptNotDeliverable):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		httpx.RespondError(w, err)
	}
}
