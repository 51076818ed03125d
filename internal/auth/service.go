package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/ryus-backoffice/ryus-backoffice/internal/shared"
)

// RepositoryPort abstracts employee lookups.
type RepositoryPort interface {
	FindByUsername(ctx context.Context, username string) (Employee, error)
	FindByID(ctx context.Context, id string) (Employee, error)
}

// Service authenticates employees.
type Service struct {
	repo RepositoryPort
}

// NewService constructs Service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Authenticate verifies credentials and returns the matching employee.
// Unknown usernames and bad passwords both collapse to
// shared.ErrInvalidCredentials so login responses stay uniform.
func (s *Service) Authenticate(ctx context.Context, username, password string) (Employee, error) {
	emp, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return Employee{}, shared.ErrInvalidCredentials
		}
		return Employee{}, err
	}
	if !emp.Active {
		return Employee{}, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(password)); err != nil {
		return Employee{}, shared.ErrInvalidCredentials
	}
	return emp, nil
}

// Get resolves an employee by id.
func (s *Service) Get(ctx context.Context, id string) (Employee, error) {
	return s.repo.FindByID(ctx, id)
}

// HashPassword produces a bcrypt hash for seeding and account management.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
