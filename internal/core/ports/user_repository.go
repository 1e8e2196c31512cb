package ports

import (
	"context"

	"github.com/taskhub/task-management-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Create must enforce email uniqueness and surface domain.ErrUserExists on
// a duplicate.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}
