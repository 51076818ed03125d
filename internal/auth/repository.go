package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ryus-backoffice/ryus-backoffice/internal/shared"
)

// Repository loads employee accounts.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const employeeColumns = `id, username, name, password_hash, can_view_all, active`

// FindByUsername resolves an employee by login name.
func (r *Repository) FindByUsername(ctx context.Context, username string) (Employee, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE username = $1`, username)
	return scanEmployee(row)
}

// FindByID resolves an employee by id.
func (r *Repository) FindByID(ctx context.Context, id string) (Employee, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	return scanEmployee(row)
}

func scanEmployee(row pgx.Row) (Employee, error) {
	var e Employee
	err := row.Scan(&e.ID, &e.Username, &e.Name, &e.PasswordHash, &e.CanViewAll, &e.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, shared.ErrNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	return e, nil
}
