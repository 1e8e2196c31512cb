package handler

import "github.com/taskhub/task-management-api/internal/core/domain"

type createTaskRequest struct {
	Title       string `json:"title"       validate:"required,max=255"`
	Description string `json:"description"`
	Status      string `json:"status"      validate:"omitempty,oneof=pending in_progress done"`
	Priority    string `json:"priority"    validate:"omitempty,oneof=low medium high"`
	DueDate     string `json:"due_date"    validate:"omitempty"`
}

// updateTaskRequest is a field-level patch: absent fields stay untouched.
type updateTaskRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Status      *string `json:"status"      validate:"omitempty,oneof=pending in_progress done"`
	Priority    *string `json:"priority"    validate:"omitempty,oneof=low medium high"`
	DueDate     *string `json:"due_date"`
}

type listTasksRequest struct {
	Status   string `query:"status"   validate:"omitempty,oneof=pending in_progress done"`
	Priority string `query:"priority" validate:"omitempty,oneof=low medium high"`
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listTasksResponse struct {
	Data       []*domain.Task     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
