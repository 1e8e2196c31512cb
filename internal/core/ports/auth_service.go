package ports

import (
	"context"

	"github.com/taskhub/task-management-api/internal/core/domain"
)

// RegisterInput carries the data needed to create a new account.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Role     string // optional, defaults to domain.RoleUser
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login verifies credentials and returns a signed session token plus the
	// public user record.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// TokenVerifier turns a bearer token into a principal, failing closed on any
// structural corruption, signature mismatch, or expiry.
type TokenVerifier interface {
	Verify(token string) (domain.Principal, error)
}
