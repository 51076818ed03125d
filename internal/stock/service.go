package stock

import (
	"context"

	"github.com/ryus-backoffice/ryus-backoffice/internal/cache"
	"github.com/ryus-backoffice/ryus-backoffice/internal/orders"
)

// RepositoryPort abstracts catalogue loading.
type RepositoryPort interface {
	ListProducts(ctx context.Context) ([]Product, error)
}

// OrdersPort supplies the order snapshot reservations derive from.
type OrdersPort interface {
	Snapshot(ctx context.Context) ([]orders.Order, error)
}

// Service resolves inventory statistics with cache-aware lookups.
type Service struct {
	repo   RepositoryPort
	orders OrdersPort
	cache  *cache.Cache
}

// NewService wires the repository and order snapshot source with the cache.
func NewService(repo RepositoryPort, ordersPort OrdersPort, c *cache.Cache) *Service {
	return &Service{repo: repo, orders: ordersPort, cache: c}
}

// Stats computes (or returns the cached) inventory rollup.
func (s *Service) Stats(ctx context.Context) (InventoryStats, error) {
	loader := func(ctx context.Context) (any, error) {
		products, err := s.repo.ListProducts(ctx)
		if err != nil {
			return nil, err
		}
		snapshot, err := s.orders.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		return ComputeStats(products, snapshot), nil
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return InventoryStats{}, err
		}
		return value.(InventoryStats), nil
	}

	key, err := s.cache.Key(ctx, "stock", "stats")
	if err != nil {
		return InventoryStats{}, err
	}
	var stats InventoryStats
	if err := s.cache.FetchJSON(ctx, key, &stats, loader); err != nil {
		return InventoryStats{}, err
	}
	return stats, nil
}

// VariantAvailability resolves the derived view of a single variant, used
// by product pages and to block over-selling at order creation.
func (s *Service) VariantAvailability(ctx context.Context, variantID string) (VariantStats, error) {
	if variantID == "" {
		return VariantStats{}, ErrVariantNotFound
	}
	stats, err := s.Stats(ctx)
	if err != nil {
		return VariantStats{}, err
	}
	for _, vs := range stats.Variants {
		if vs.VariantID == variantID {
			return vs, nil
		}
	}
	return VariantStats{}, ErrVariantNotFound
}

// LowStock returns the variants needing replenishment attention, the
// out-of-stock bucket included.
func (s *Service) LowStock(ctx context.Context) ([]VariantStats, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}
	var low []VariantStats
	for _, vs := range stats.Variants {
		if vs.Level == LevelOutOfStock || vs.Level == LevelLow {
			low = append(low, vs)
		}
	}
	return low, nil
}
