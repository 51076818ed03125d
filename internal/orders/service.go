package orders

import (
	"context"
	"errors"
	"time"

	"github.com/ryus-backoffice/ryus-backoffice/internal/shared"
)

// RepositoryPort abstracts persistence for the service.
type RepositoryPort interface {
	ListOrders(ctx context.Context) ([]Order, error)
	GetOrder(ctx context.Context, id string) (Order, error)
	ConfirmReceipt(ctx context.Context, orderID, actorID string, at time.Time) error
}

// AuditPort abstracts audit logging.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// CacheInvalidator bumps the derived-metrics cache after mutations.
type CacheInvalidator interface {
	Bump(ctx context.Context) error
}

// Service coordinates order snapshot access and the receipt workflow.
type Service struct {
	repo  RepositoryPort
	audit AuditPort
	cache CacheInvalidator
	now   func() time.Time
}

// NewService builds Service.
func NewService(repo RepositoryPort, audit AuditPort, cache CacheInvalidator) *Service {
	return &Service{repo: repo, audit: audit, cache: cache, now: time.Now}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// Snapshot returns the current order set for the aggregation layer.
func (s *Service) Snapshot(ctx context.Context) ([]Order, error) {
	return s.repo.ListOrders(ctx)
}

// Get fetches one order.
func (s *Service) Get(ctx context.Context, id string) (Order, error) {
	if id == "" {
		return Order{}, errors.New("orders: id required")
	}
	return s.repo.GetOrder(ctx, id)
}

// ConfirmReceipt marks the delivery partner's settlement for an order as
// received, gating it into revenue recognition. Delivered or completed
// orders only; repeat confirmations conflict.
func (s *Service) ConfirmReceipt(ctx context.Context, orderID, actorID string) (Order, error) {
	if orderID == "" {
		return Order{}, errors.New("orders: id required")
	}
	if actorID == "" {
		return Order{}, errors.New("orders: actor required")
	}
	o, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	if !o.Status.Delivered() {
		return Order{}, ErrReceiptNotDeliverable
	}
	if o.ReceiptReceived {
		return Order{}, ErrReceiptAlreadyConfirmed
	}

	at := s.now().UTC()
	if err := s.repo.ConfirmReceipt(ctx, orderID, actorID, at); err != nil {
		return Order{}, err
	}
	o.ReceiptReceived = true
	o.UpdatedAt = at

	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			ActorID:  actorID,
			Action:   "orders.receipt_confirmed",
			Entity:   "order",
			EntityID: orderID,
			Meta:     map[string]any{"status": string(o.Status), "final_amount": o.FinalAmount},
			At:       at,
		})
	}
	if s.cache != nil {
		if err := s.cache.Bump(ctx); err != nil {
			return o, err
		}
	}
	return o, nil
}
