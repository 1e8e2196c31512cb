package ports

import (
	"context"

	"github.com/taskhub/task-management-api/internal/core/domain"
)

// UpdateUserInput is a field-level patch; nil fields are left untouched.
type UpdateUserInput struct {
	FullName *string
	Role     *string
	IsActive *bool
}

// UserService defines admin user management plus the self-profile lookup.
// Every operation except Profile requires the admin role.
type UserService interface {
	List(ctx context.Context, p domain.Principal) ([]*domain.User, error)
	Get(ctx context.Context, p domain.Principal, id string) (*domain.User, error)
	Update(ctx context.Context, p domain.Principal, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, p domain.Principal, id string) error
	Profile(ctx context.Context, p domain.Principal) (*domain.User, error)
}
