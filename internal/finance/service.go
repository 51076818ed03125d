package finance

import (
	"context"
	"time"

	"github.com/ryus-backoffice/ryus-backoffice/internal/cache"
	"github.com/ryus-backoffice/ryus-backoffice/internal/orders"
)

// RepositoryPort abstracts the finance snapshot tables.
type RepositoryPort interface {
	ListExpenses(ctx context.Context) ([]Expense, error)
	ListProfitRecords(ctx context.Context) ([]ProfitRecord, error)
}

// OrdersPort supplies the order snapshot revenue derives from.
type OrdersPort interface {
	Snapshot(ctx context.Context) ([]orders.Order, error)
}

// Service resolves financial metrics with cache-aware lookups. Cached
// entries are keyed by period and viewer scope, so one employee's
// restricted view never leaks into another's.
type Service struct {
	repo   RepositoryPort
	orders OrdersPort
	cache  *cache.Cache
	now    func() time.Time
}

// NewService wires the repository and order snapshot source with the cache.
func NewService(repo RepositoryPort, ordersPort OrdersPort, c *cache.Cache) *Service {
	return &Service{repo: repo, orders: ordersPort, cache: c, now: time.Now}
}

// WithNow overrides the clock, for tests.
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}

// Summary aggregates the financial dashboard record for the given period
// and viewer scope.
func (s *Service) Summary(ctx context.Context, period Period, scope ViewScope) (FinancialMetrics, error) {
	dr, err := ResolvePeriod(period, s.now())
	if err != nil {
		return FinancialMetrics{}, err
	}

	loader := func(ctx context.Context) (any, error) {
		snapshot, err := s.orders.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		expenses, err := s.repo.ListExpenses(ctx)
		if err != nil {
			return nil, err
		}
		profits, err := s.repo.ListProfitRecords(ctx)
		if err != nil {
			return nil, err
		}
		return ComputeMetrics(snapshot, expenses, profits, dr, scope), nil
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return FinancialMetrics{}, err
		}
		return value.(FinancialMetrics), nil
	}

	key, err := s.cache.Key(ctx, "finance", "summary", scopeKey(period, scope))
	if err != nil {
		return FinancialMetrics{}, err
	}
	var m FinancialMetrics
	if err := s.cache.FetchJSON(ctx, key, &m, loader); err != nil {
		return FinancialMetrics{}, err
	}
	return m, nil
}

func scopeKey(period Period, scope ViewScope) string {
	p := string(period)
	if p == "" {
		p = string(PeriodAll)
	}
	viewer := scope.EmployeeID
	if scope.CanViewAll {
		viewer = "all"
	}
	key := p + ":" + viewer
	if scope.ExcludeSelfDues {
		// The excluded dues are the viewer's own, so the entry cannot be
		// shared across managers even though they see the same records.
		key += ":excl-" + scope.EmployeeID
	}
	return key
}
