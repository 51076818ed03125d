package finance

import (
	"errors"
	"time"
)

// ExpenseType separates operator-entered expenses from system-generated rows.
type ExpenseType string

const (
	// ExpenseTypeGeneral is a regular operating expense.
	ExpenseTypeGeneral ExpenseType = "general"
	// ExpenseTypeSystem marks rows written by automated workflows; they are
	// excluded from general expense totals.
	ExpenseTypeSystem ExpenseType = "system"
)

// Expense is a financial outflow record.
type Expense struct {
	ID              string
	Amount          float64
	TransactionDate time.Time
	Category        string
	RelatedCategory string
	Type            ExpenseType
	CreatedBy       string
}

// ProfitStatus tracks whether an employee's share has been paid out.
type ProfitStatus string

const (
	// ProfitPending means the employee share has not been settled.
	ProfitPending ProfitStatus = "pending"
	// ProfitSettled means the share was paid via an expense record.
	ProfitSettled ProfitStatus = "settled"
)

// ProfitRecord is the per-order profit split, at most one row per order.
type ProfitRecord struct {
	ID             string
	OrderID        string
	EmployeeID     string
	ProfitAmount   float64
	EmployeeProfit float64
	Status         ProfitStatus
	CreatedAt      time.Time
}

// DateRange bounds an aggregation window. A nil bound is unbounded; a range
// with both bounds nil is a pass-through.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Unbounded reports whether the range applies no filtering.
func (r DateRange) Unbounded() bool {
	return r.From == nil && r.To == nil
}

// Contains reports whether t falls inside the range, bounds inclusive.
// Records without a usable date fail closed when any bound is set.
func (r DateRange) Contains(t time.Time) bool {
	if r.Unbounded() {
		return true
	}
	if t.IsZero() {
		return false
	}
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

// ViewScope restricts aggregation to the data a viewer may see.
type ViewScope struct {
	EmployeeID string
	CanViewAll bool
	// ExcludeSelfDues drops the viewer's own pending dues from the
	// pending-dues total, used when managers review payouts they owe others.
	ExcludeSelfDues bool
}

// Owns reports whether a record owned by the given employee is visible.
func (s ViewScope) Owns(employeeID string) bool {
	if s.CanViewAll {
		return true
	}
	return employeeID != "" && employeeID == s.EmployeeID
}

// FinancialMetrics is the dashboard record produced by ComputeMetrics.
type FinancialMetrics struct {
	TotalRevenue float64 `json:"total_revenue"`
	COGS         float64 `json:"cogs"`
	GrossProfit  float64 `json:"gross_profit"`
	// GeneralExpenses excludes system rows, employee-dues settlements and
	// goods purchases.
	GeneralExpenses     float64 `json:"general_expenses"`
	EmployeeSettledDues float64 `json:"employee_settled_dues"`
	EmployeePendingDues float64 `json:"employee_pending_dues"`
	// NetProfit is gross profit minus general expenses. Employee dues are
	// reported separately and never subtracted a second time: settlement
	// expense rows are already carved out of GeneralExpenses above.
	NetProfit       float64 `json:"net_profit"`
	DeliveredOrders int     `json:"delivered_orders"`
}

// ErrUnknownPeriod occurs when a period keyword is not recognised.
var ErrUnknownPeriod = errors.New("finance: unknown period")
