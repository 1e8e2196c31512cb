package ports

import (
	"context"

	"github.com/taskhub/task-management-api/internal/core/domain"
)

// TaskFilter carries all query parameters for listing tasks.
// OwnerID is enforced by the service layer: empty means cross-owner access
// and the caller must already be authorized for it.
type TaskFilter struct {
	OwnerID  string // empty = no owner filter (admin); non-empty = scoped to owner
	Status   string // optional: filter by task status
	Priority string // optional: filter by task priority
	Page     int    // 1-based
	Limit    int    // max rows per page (capped at 100 by service)
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	// CreateMany persists all given tasks as a single batch write,
	// preserving input order in the returned slice.
	CreateMany(ctx context.Context, tasks []*domain.Task) ([]*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// List returns a page of tasks matching filter and the total count.
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, int64, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}
