package stock

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository loads the catalogue snapshot.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListProducts returns every product with its variants embedded.
func (r *Repository) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM products ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	index := make(map[string]int)
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		index[p.ID] = len(products)
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	variantRows, err := r.pool.Query(ctx, `SELECT id, product_id, color, size, quantity, cost_price, sale_price FROM product_variants`)
	if err != nil {
		return nil, err
	}
	defer variantRows.Close()
	for variantRows.Next() {
		var v ProductVariant
		if err := variantRows.Scan(&v.ID, &v.ProductID, &v.Color, &v.Size, &v.Quantity, &v.CostPrice, &v.SalePrice); err != nil {
			return nil, err
		}
		if i, ok := index[v.ProductID]; ok {
			products[i].Variants = append(products[i].Variants, v)
		}
	}
	return products, variantRows.Err()
}
