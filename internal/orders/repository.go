package orders

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository loads the order snapshot and applies receipt mutations.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const orderColumns = `id, status, order_type, receipt_received, created_at, updated_at, total_amount, delivery_fee, final_amount, sales_amount, created_by`

// ListOrders returns every order with its items embedded. The snapshot is
// what the pure aggregators consume; consistency across the two queries is
// eventual, which the aggregation layer tolerates.
func (r *Repository) ListOrders(ctx context.Context) ([]Order, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Order
	index := make(map[string]int)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		index[o.ID] = len(result)
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := r.pool.Query(ctx, `SELECT id, order_id, product_id, variant_id, quantity, unit_price, cost_price, product_cost, item_direction FROM order_items`)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var it OrderItem
		var direction *string
		if err := itemRows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.VariantID, &it.Quantity, &it.UnitPrice, &it.CostPrice, &it.ProductCost, &direction); err != nil {
			return nil, err
		}
		if direction != nil {
			it.Direction = ItemDirection(*direction)
		}
		if i, ok := index[it.OrderID]; ok {
			result[i].Items = append(result[i].Items, it)
		}
	}
	return result, itemRows.Err()
}

// GetOrder fetches a single order with items.
func (r *Repository) GetOrder(ctx context.Context, id string) (Order, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, ErrOrderNotFound
		}
		return Order{}, err
	}

	rows, err := r.pool.Query(ctx, `SELECT id, order_id, product_id, variant_id, quantity, unit_price, cost_price, product_cost, item_direction FROM order_items WHERE order_id = $1`, id)
	if err != nil {
		return Order{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var it OrderItem
		var direction *string
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.VariantID, &it.Quantity, &it.UnitPrice, &it.CostPrice, &it.ProductCost, &direction); err != nil {
			return Order{}, err
		}
		if direction != nil {
			it.Direction = ItemDirection(*direction)
		}
		o.Items = append(o.Items, it)
	}
	return o, rows.Err()
}

// ConfirmReceipt records the settlement event and flips the order flag in
// one transaction. The receipt_events unique constraint makes confirmation
// idempotent under concurrent requests.
func (r *Repository) ConfirmReceipt(ctx context.Context, orderID, actorID string, at time.Time) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `INSERT INTO receipt_events (order_id, confirmed_by, confirmed_at) VALUES ($1, $2, $3)`, orderID, actorID, at)
	if err != nil {
		return mapReceiptInsertErr(err)
	}

	tag, err := tx.Exec(ctx, `UPDATE orders SET receipt_received = TRUE, updated_at = $2 WHERE id = $1`, orderID, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return tx.Commit(ctx)
}

// mapReceiptInsertErr translates the unique-constraint violation on
// receipt_events into the confirmation conflict error.
func mapReceiptInsertErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrReceiptAlreadyConfirmed
	}
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (Order, error) {
	var o Order
	var status, orderType *string
	var createdAt, updatedAt *time.Time
	var total, fee, final *float64
	err := row.Scan(&o.ID, &status, &orderType, &o.ReceiptReceived, &createdAt, &updatedAt, &total, &fee, &final, &o.SalesAmount, &o.CreatedBy)
	if err != nil {
		return Order{}, err
	}
	if status != nil {
		o.Status = Status(*status)
	}
	if orderType != nil {
		o.Type = Type(*orderType)
	}
	if createdAt != nil {
		o.CreatedAt = *createdAt
	}
	if updatedAt != nil {
		o.UpdatedAt = *updatedAt
	}
	if total != nil {
		o.TotalAmount = *total
	}
	if fee != nil {
		o.DeliveryFee = *fee
	}
	if final != nil {
		o.FinalAmount = *final
	}
	return o, nil
}
