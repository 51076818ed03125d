package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ryus-backoffice/ryus-backoffice/internal/shared"
)

type memoryRepo struct {
	employees map[string]Employee
}

func (m *memoryRepo) FindByUsername(_ context.Context, username string) (Employee, error) {
	for _, e := range m.employees {
		if e.Username == username {
			return e, nil
		}
	}
	return Employee{}, shared.ErrNotFound
}

func (m *memoryRepo) FindByID(_ context.Context, id string) (Employee, error) {
	e, ok := m.employees[id]
	if !ok {
		return Employee{}, shared.ErrNotFound
	}
	return e, nil
}

func seedRepo(t *testing.T) *memoryRepo {
	t.Helper()
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	return &memoryRepo{employees: map[string]Employee{
		"emp-1": {ID: "emp-1", Username: "sara", Name: "Sara", PasswordHash: hash, CanViewAll: true, Active: true},
		"emp-2": {ID: "emp-2", Username: "omar", Name: "Omar", PasswordHash: hash, Active: false},
	}}
}

func TestAuthenticate(t *testing.T) {
	svc := NewService(seedRepo(t))

	emp, err := svc.Authenticate(context.Background(), "sara", "s3cret-pass")
	require.NoError(t, err)
	require.Equal(t, "emp-1", emp.ID)
	require.True(t, emp.CanViewAll)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc := NewService(seedRepo(t))

	_, err := svc.Authenticate(context.Background(), "sara", "wrong-pass")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	svc := NewService(seedRepo(t))

	_, err := svc.Authenticate(context.Background(), "ghost", "s3cret-pass")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticateInactiveAccount(t *testing.T) {
	svc := NewService(seedRepo(t))

	_, err := svc.Authenticate(context.Background(), "omar", "s3cret-pass")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}
