package finance

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/ryus-backoffice/ryus-backoffice/internal/cache"
	"github.com/ryus-backoffice/ryus-backoffice/internal/orders"
)

type stubFinanceRepo struct {
	expenses []Expense
	profits  []ProfitRecord
	calls    int
}

func (s *stubFinanceRepo) ListExpenses(context.Context) ([]Expense, error) {
	s.calls++
	return s.expenses, nil
}

func (s *stubFinanceRepo) ListProfitRecords(context.Context) ([]ProfitRecord, error) {
	return s.profits, nil
}

type stubOrderSource struct {
	snapshot []orders.Order
}

func (s *stubOrderSource) Snapshot(context.Context) ([]orders.Order, error) {
	return s.snapshot, nil
}

func newServiceCache(t *testing.T) *cache.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.New(client, time.Minute)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestSummaryFiltersByPeriod(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	inside := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	outside := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	src := &stubOrderSource{snapshot: []orders.Order{
		{ID: "o1", Status: orders.StatusDelivered, ReceiptReceived: true, FinalAmount: 100, UpdatedAt: inside},
		{ID: "o2", Status: orders.StatusDelivered, ReceiptReceived: true, FinalAmount: 40, UpdatedAt: outside},
	}}
	svc := NewService(&stubFinanceRepo{}, src, nil).WithNow(fixedClock(now))

	scope := ViewScope{CanViewAll: true}
	today, err := svc.Summary(context.Background(), PeriodToday, scope)
	require.NoError(t, err)
	require.Equal(t, 100.0, today.TotalRevenue)
	require.Equal(t, 1, today.DeliveredOrders)

	all, err := svc.Summary(context.Background(), PeriodAll, scope)
	require.NoError(t, err)
	require.Equal(t, 140.0, all.TotalRevenue)
	require.Equal(t, 2, all.DeliveredOrders)
}

func TestSummaryRejectsUnknownPeriod(t *testing.T) {
	svc := NewService(&stubFinanceRepo{}, &stubOrderSource{}, nil)
	_, err := svc.Summary(context.Background(), Period("quarter"), ViewScope{CanViewAll: true})
	require.ErrorIs(t, err, ErrUnknownPeriod)
}

func TestSummaryCachesPerScope(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	repo := &stubFinanceRepo{}
	src := &stubOrderSource{snapshot: []orders.Order{
		{ID: "o1", Status: orders.StatusDelivered, ReceiptReceived: true, FinalAmount: 100, CreatedBy: "emp-1", UpdatedAt: now},
	}}
	svc := NewService(repo, src, newServiceCache(t)).WithNow(fixedClock(now))

	manager := ViewScope{EmployeeID: "mgr", CanViewAll: true}
	employee := ViewScope{EmployeeID: "emp-2"}

	m1, err := svc.Summary(context.Background(), PeriodAll, manager)
	require.NoError(t, err)
	require.Equal(t, 100.0, m1.TotalRevenue)

	// A different scope must not be served the manager's cached record.
	m2, err := svc.Summary(context.Background(), PeriodAll, employee)
	require.NoError(t, err)
	require.Equal(t, 0.0, m2.TotalRevenue)

	// Same scope again comes from cache.
	calls := repo.calls
	m3, err := svc.Summary(context.Background(), PeriodAll, manager)
	require.NoError(t, err)
	require.Equal(t, m1, m3)
	require.Equal(t, calls, repo.calls)
}

func TestSummaryCacheIsolatesSelfDuesExclusion(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	src := &stubOrderSource{snapshot: []orders.Order{
		{ID: "o1", Status: orders.StatusDelivered, ReceiptReceived: true, UpdatedAt: now},
		{ID: "o2", Status: orders.StatusDelivered, ReceiptReceived: true, UpdatedAt: now},
	}}
	repo := &stubFinanceRepo{profits: []ProfitRecord{
		{ID: "p1", OrderID: "o1", EmployeeID: "mgr-a", EmployeeProfit: 20, Status: ProfitPending},
		{ID: "p2", OrderID: "o2", EmployeeID: "mgr-b", EmployeeProfit: 10, Status: ProfitPending},
	}}
	svc := NewService(repo, src, newServiceCache(t)).WithNow(fixedClock(now))

	a, err := svc.Summary(context.Background(), PeriodAll, ViewScope{EmployeeID: "mgr-a", CanViewAll: true, ExcludeSelfDues: true})
	require.NoError(t, err)
	require.Equal(t, 10.0, a.EmployeePendingDues)

	// The second manager excludes their own dues, not the first manager's,
	// so the cached record above must not be reused.
	b, err := svc.Summary(context.Background(), PeriodAll, ViewScope{EmployeeID: "mgr-b", CanViewAll: true, ExcludeSelfDues: true})
	require.NoError(t, err)
	require.Equal(t, 20.0, b.EmployeePendingDues)
}
