package ports

import (
	"context"
	"time"

	"github.com/taskhub/task-management-api/internal/core/domain"
)

// CreateTaskInput carries all data needed to create a task. Status and
// Priority default to pending/medium when empty.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	DueDate     *time.Time
}

// UpdateTaskInput is a field-level patch; nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	Priority    *domain.TaskPriority
	DueDate     *time.Time
}

// ListTasksInput carries all parameters for the list endpoint.
type ListTasksInput struct {
	Status   string
	Priority string
	Page     int
	Limit    int
}

// ListTasksResult is a single page of tasks plus pagination metadata.
type ListTasksResult struct {
	Items      []*domain.Task
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// TaskService defines use-case operations for tasks. Ownership and role
// checks happen here, before any repository call that returns data to the
// caller.
type TaskService interface {
	Create(ctx context.Context, p domain.Principal, input CreateTaskInput) (*domain.Task, error)
	List(ctx context.Context, p domain.Principal, input ListTasksInput) (*ListTasksResult, error)
	Get(ctx context.Context, p domain.Principal, id string) (*domain.Task, error)
	Update(ctx context.Context, p domain.Principal, id string, input UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, p domain.Principal, id string) error
}
