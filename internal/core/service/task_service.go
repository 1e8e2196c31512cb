package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhub/task-management-api/internal/core/domain"
	"github.com/taskhub/task-management-api/internal/core/ports"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// TaskService implements task CRUD with per-request ownership checks.
type TaskService struct {
	repo   ports.TaskRepository
	authz  Authorizer
	logger zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, authz Authorizer, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, authz: authz, logger: logger}
}

// Create persists a new task owned by the calling principal.
func (s *TaskService) Create(ctx context.Context, p domain.Principal, input ports.CreateTaskInput) (*domain.Task, error) {
	status := input.Status
	if status == "" {
		status = domain.StatusPending
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	now := time.Now().UTC()
	task := &domain.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     input.DueDate,
		OwnerID:     p.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().Str("task_id", created.ID).Str("owner_id", p.ID).Msg("task created")
	return created, nil
}

// List returns a page of tasks. Admins see every owner's tasks; regular
// users are always scoped to their own.
func (s *TaskService) List(ctx context.Context, p domain.Principal, input ports.ListTasksInput) (*ports.ListTasksResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	filter := ports.TaskFilter{
		Status:   input.Status,
		Priority: input.Priority,
		Page:     page,
		Limit:    limit,
	}
	if !p.IsAdmin() {
		filter.OwnerID = p.ID
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListTasksResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// Get retrieves a task by id. A task that exists but belongs to someone else
// yields ErrForbidden, not ErrTaskNotFound: existence is resolved first and
// only the payload is withheld from unauthorized callers.
func (s *TaskService) Get(ctx context.Context, p domain.Principal, id string) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.RequireOwnerOrAdmin(p, task.OwnerID); err != nil {
		return nil, err
	}
	return task, nil
}

// Update applies a field-level patch after the ownership check.
func (s *TaskService) Update(ctx context.Context, p domain.Principal, id string, input ports.UpdateTaskInput) (*domain.Task, error) {
	task, err := s.Get(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	task.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info().Str("task_id", task.ID).Msg("task updated")
	return task, nil
}

// Delete removes a task after the ownership check.
func (s *TaskService) Delete(ctx context.Context, p domain.Principal, id string) error {
	task, err := s.Get(ctx, p, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, task.ID); err != nil {
		return err
	}
	s.logger.Info().Str("task_id", task.ID).Msg("task deleted")
	return nil
}
