package finance

import (
	"math"

	"github.com/ryus-backoffice/ryus-backoffice/internal/orders"
)

// ComputeMetrics aggregates the financial dashboard record from a relational
// snapshot. Pure and deterministic: identical inputs yield identical output,
// malformed records are excluded or zero-substituted, never raised.
//
// The steps run in a fixed order: visibility scope, the delivered-and-
// receipted date filter, revenue, COGS, gross profit, expense partitioning,
// pending dues, net profit.
func ComputeMetrics(snapshot []orders.Order, expenses []Expense, profits []ProfitRecord, dr DateRange, scope ViewScope) FinancialMetrics {
	var m FinancialMetrics

	// Orders retained for revenue recognition, indexed for the dues pass.
	recognized := make(map[string]struct{})
	for _, o := range snapshot {
		if !scope.Owns(o.CreatedBy) {
			continue
		}
		if !o.RevenueRecognized() || !dr.Contains(o.EffectiveDate()) {
			continue
		}
		recognized[o.ID] = struct{}{}
		m.DeliveredOrders++
		m.TotalRevenue += o.Sales()
		m.COGS += o.COGS()
	}
	m.GrossProfit = m.TotalRevenue - m.COGS

	for _, e := range expenses {
		if !scope.Owns(e.CreatedBy) {
			continue
		}
		if !dr.Contains(e.TransactionDate) {
			continue
		}
		switch {
		case IsEmployeeDues(e):
			m.EmployeeSettledDues += e.Amount
		case IsGeneral(e):
			m.GeneralExpenses += e.Amount
		}
	}

	for _, p := range profits {
		if p.Status != ProfitPending {
			continue
		}
		if !scope.Owns(p.EmployeeID) {
			continue
		}
		if scope.ExcludeSelfDues && p.EmployeeID == scope.EmployeeID {
			continue
		}
		if _, ok := recognized[p.OrderID]; !ok {
			continue
		}
		m.EmployeePendingDues += p.EmployeeProfit
	}

	m.NetProfit = m.GrossProfit - m.GeneralExpenses

	m.TotalRevenue = round2(m.TotalRevenue)
	m.COGS = round2(m.COGS)
	m.GrossProfit = round2(m.GrossProfit)
	m.GeneralExpenses = round2(m.GeneralExpenses)
	m.EmployeeSettledDues = round2(m.EmployeeSettledDues)
	m.EmployeePendingDues = round2(m.EmployeePendingDues)
	m.NetProfit = round2(m.NetProfit)
	return m
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
