package finance

import (
	"reflect"
	"testing"
	"time"

	"github.com/ryus-backoffice/ryus-backoffice/internal/orders"
)

var (
	rangeFrom = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	rangeTo   = time.Date(2025, 6, 30, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
	inRange   = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
)

func juneRange() DateRange {
	from, to := rangeFrom, rangeTo
	return DateRange{From: &from, To: &to}
}

func adminScope() ViewScope {
	return ViewScope{EmployeeID: "admin", CanViewAll: true}
}

func deliveredOrder(id string, final, fee float64, items ...orders.OrderItem) orders.Order {
	return orders.Order{
		ID:              id,
		Status:          orders.StatusDelivered,
		Type:            orders.TypeNormal,
		ReceiptReceived: true,
		UpdatedAt:       inRange,
		FinalAmount:     final,
		DeliveryFee:     fee,
		CreatedBy:       "emp1",
		Items:           items,
	}
}

func TestRevenueDerivation(t *testing.T) {
	o := deliveredOrder("o1", 120000, 20000)
	m := ComputeMetrics([]orders.Order{o}, nil, nil, juneRange(), adminScope())
	if m.TotalRevenue != 100000 {
		t.Fatalf("expected revenue 100000, got %v", m.TotalRevenue)
	}
}

func TestPrecomputedSalesAmountTakesPriority(t *testing.T) {
	o := deliveredOrder("o1", 120000, 20000)
	sales := 95000.0
	o.SalesAmount = &sales
	m := ComputeMetrics([]orders.Order{o}, nil, nil, juneRange(), adminScope())
	if m.TotalRevenue != 95000 {
		t.Fatalf("expected precomputed sales 95000, got %v", m.TotalRevenue)
	}
}

func TestReceiptGating(t *testing.T) {
	o := deliveredOrder("o1", 120000, 20000, orders.OrderItem{Quantity: 2, CostPrice: 10000})
	o.ReceiptReceived = false
	m := ComputeMetrics([]orders.Order{o}, nil, nil, juneRange(), adminScope())
	if m.TotalRevenue != 0 || m.COGS != 0 || m.DeliveredOrders != 0 {
		t.Fatalf("unreceipted order must contribute nothing, got %+v", m)
	}
}

func TestDateRangeBoundaryInclusive(t *testing.T) {
	onBoundary := deliveredOrder("o1", 1000, 0)
	onBoundary.UpdatedAt = rangeTo

	dayAfter := deliveredOrder("o2", 1000, 0)
	dayAfter.UpdatedAt = rangeTo.AddDate(0, 0, 1)

	m := ComputeMetrics([]orders.Order{onBoundary, dayAfter}, nil, nil, juneRange(), adminScope())
	if m.DeliveredOrders != 1 || m.TotalRevenue != 1000 {
		t.Fatalf("expected only the boundary order, got %+v", m)
	}
}

func TestEffectiveDateFallsBackToCreatedAt(t *testing.T) {
	o := deliveredOrder("o1", 1000, 0)
	o.UpdatedAt = time.Time{}
	o.CreatedAt = inRange
	m := ComputeMetrics([]orders.Order{o}, nil, nil, juneRange(), adminScope())
	if m.DeliveredOrders != 1 {
		t.Fatalf("expected created_at fallback to be used, got %+v", m)
	}

	// No usable date at all fails closed when the range is bounded.
	o.CreatedAt = time.Time{}
	m = ComputeMetrics([]orders.Order{o}, nil, nil, juneRange(), adminScope())
	if m.DeliveredOrders != 0 {
		t.Fatalf("dateless order must be excluded, got %+v", m)
	}
}

func TestCOGSPrefersVariantCost(t *testing.T) {
	o := deliveredOrder("o1", 100000, 0,
		orders.OrderItem{Quantity: 2, CostPrice: 15000, ProductCost: 12000},
		orders.OrderItem{Quantity: 1, ProductCost: 8000},
		orders.OrderItem{Quantity: 5, CostPrice: 3000, Direction: orders.DirectionIncoming},
	)
	m := ComputeMetrics([]orders.Order{o}, nil, nil, juneRange(), adminScope())
	if m.COGS != 38000 {
		t.Fatalf("expected COGS 38000 (variant cost preferred, incoming excluded), got %v", m.COGS)
	}
	if m.GrossProfit != 62000 {
		t.Fatalf("expected gross profit 62000, got %v", m.GrossProfit)
	}
}

func TestExpensePartitioning(t *testing.T) {
	expenses := []Expense{
		{ID: "e1", Amount: 50000, Category: "مستحقات الموظفين", TransactionDate: inRange, Type: ExpenseTypeGeneral},
		{ID: "e2", Amount: 30000, Category: "ايجار", TransactionDate: inRange, Type: ExpenseTypeGeneral},
		{ID: "e3", Amount: 70000, RelatedCategory: "شراء بضاعة", TransactionDate: inRange, Type: ExpenseTypeGeneral},
		{ID: "e4", Amount: 10000, Category: "نظام", TransactionDate: inRange, Type: ExpenseTypeSystem},
		{ID: "e5", Amount: 9000, Category: "ايجار", TransactionDate: rangeTo.AddDate(0, 1, 0), Type: ExpenseTypeGeneral},
	}
	m := ComputeMetrics(nil, expenses, nil, juneRange(), adminScope())
	if m.GeneralExpenses != 30000 {
		t.Fatalf("expected general expenses 30000, got %v", m.GeneralExpenses)
	}
	if m.EmployeeSettledDues != 50000 {
		t.Fatalf("expected settled dues 50000, got %v", m.EmployeeSettledDues)
	}
}

func TestPendingDuesRequireRecognizedOrder(t *testing.T) {
	o := deliveredOrder("o1", 100000, 0)
	profits := []ProfitRecord{
		{ID: "p1", OrderID: "o1", EmployeeID: "emp1", EmployeeProfit: 12000, Status: ProfitPending},
		{ID: "p2", OrderID: "o2", EmployeeID: "emp1", EmployeeProfit: 5000, Status: ProfitPending},
		{ID: "p3", OrderID: "o1", EmployeeID: "emp1", EmployeeProfit: 4000, Status: ProfitSettled},
	}
	m := ComputeMetrics([]orders.Order{o}, nil, profits, juneRange(), adminScope())
	if m.EmployeePendingDues != 12000 {
		t.Fatalf("expected pending dues 12000, got %v", m.EmployeePendingDues)
	}
}

func TestExcludeSelfDues(t *testing.T) {
	o := deliveredOrder("o1", 100000, 0)
	o.CreatedBy = "emp1"
	profits := []ProfitRecord{
		{ID: "p1", OrderID: "o1", EmployeeID: "emp1", EmployeeProfit: 12000, Status: ProfitPending},
	}
	scope := ViewScope{EmployeeID: "emp1", CanViewAll: false, ExcludeSelfDues: true}
	m := ComputeMetrics([]orders.Order{o}, nil, profits, juneRange(), scope)
	if m.EmployeePendingDues != 0 {
		t.Fatalf("viewer's own pending dues must be excluded, got %v", m.EmployeePendingDues)
	}
}

func TestEmployeeScopeFiltersOwnership(t *testing.T) {
	mine := deliveredOrder("o1", 50000, 0)
	mine.CreatedBy = "emp1"
	theirs := deliveredOrder("o2", 70000, 0)
	theirs.CreatedBy = "emp2"
	expenses := []Expense{
		{ID: "e1", Amount: 1000, Category: "ايجار", TransactionDate: inRange, CreatedBy: "emp1"},
		{ID: "e2", Amount: 2000, Category: "ايجار", TransactionDate: inRange, CreatedBy: "emp2"},
	}
	scope := ViewScope{EmployeeID: "emp1", CanViewAll: false}
	m := ComputeMetrics([]orders.Order{mine, theirs}, expenses, nil, juneRange(), scope)
	if m.TotalRevenue != 50000 {
		t.Fatalf("expected only own revenue, got %v", m.TotalRevenue)
	}
	if m.GeneralExpenses != 1000 {
		t.Fatalf("expected only own expenses, got %v", m.GeneralExpenses)
	}
}

func TestNetProfitExcludesDuesFromSubtraction(t *testing.T) {
	o := deliveredOrder("o1", 100000, 0, orders.OrderItem{Quantity: 1, CostPrice: 40000})
	expenses := []Expense{
		{ID: "e1", Amount: 10000, Category: "ايجار", TransactionDate: inRange},
		{ID: "e2", Amount: 25000, Category: "مستحقات الموظفين", TransactionDate: inRange},
	}
	m := ComputeMetrics([]orders.Order{o}, expenses, nil, juneRange(), adminScope())
	// net = (100000 - 40000) - 10000; the 25000 settlement is reported
	// separately, not subtracted again.
	if m.NetProfit != 50000 {
		t.Fatalf("expected net profit 50000, got %v", m.NetProfit)
	}
	if m.EmployeeSettledDues != 25000 {
		t.Fatalf("expected settled dues 25000, got %v", m.EmployeeSettledDues)
	}
}

func TestEmptyOrderStillCounted(t *testing.T) {
	o := deliveredOrder("o1", 0, 0)
	m := ComputeMetrics([]orders.Order{o}, nil, nil, juneRange(), adminScope())
	if m.DeliveredOrders != 1 {
		t.Fatalf("empty delivered order must still count, got %d", m.DeliveredOrders)
	}
	if m.TotalRevenue != 0 || m.COGS != 0 {
		t.Fatalf("empty order contributes zero amounts, got %+v", m)
	}
}

func TestIdempotence(t *testing.T) {
	snapshot := []orders.Order{
		deliveredOrder("o1", 120000, 20000, orders.OrderItem{Quantity: 3, CostPrice: 11000}),
	}
	expenses := []Expense{{ID: "e1", Amount: 5000, Category: "ايجار", TransactionDate: inRange}}
	profits := []ProfitRecord{{ID: "p1", OrderID: "o1", EmployeeID: "emp1", EmployeeProfit: 7000, Status: ProfitPending}}

	first := ComputeMetrics(snapshot, expenses, profits, juneRange(), adminScope())
	second := ComputeMetrics(snapshot, expenses, profits, juneRange(), adminScope())
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical output, got %+v vs %+v", first, second)
	}
}

func TestNilCollectionsYieldZeroMetrics(t *testing.T) {
	m := ComputeMetrics(nil, nil, nil, DateRange{}, adminScope())
	if m != (FinancialMetrics{}) {
		t.Fatalf("expected zero metrics, got %+v", m)
	}
}
