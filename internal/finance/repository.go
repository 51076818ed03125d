package finance

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository loads the finance snapshot tables.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListExpenses returns every expense row. Filtering happens in the
// aggregator so cached snapshots stay reusable across periods.
func (r *Repository) ListExpenses(ctx context.Context) ([]Expense, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, amount, transaction_date, category, COALESCE(related_category, ''), COALESCE(expense_type, 'general'), COALESCE(created_by, '')
		FROM expenses
		ORDER BY transaction_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Expense
	for rows.Next() {
		var e Expense
		var txDate *time.Time
		if err := rows.Scan(&e.ID, &e.Amount, &txDate, &e.Category, &e.RelatedCategory, &e.Type, &e.CreatedBy); err != nil {
			return nil, err
		}
		if txDate != nil {
			e.TransactionDate = *txDate
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListProfitRecords returns the per-order profit splits.
func (r *Repository) ListProfitRecords(ctx context.Context) ([]ProfitRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, order_id, COALESCE(employee_id, ''), profit_amount, employee_profit, status, created_at
		FROM profit_records
		ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProfitRecord
	for rows.Next() {
		var p ProfitRecord
		if err := rows.Scan(&p.ID, &p.OrderID, &p.EmployeeID, &p.ProfitAmount, &p.EmployeeProfit, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
