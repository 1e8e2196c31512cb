package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/task-management-api/internal/api/metrics"
	"github.com/taskhub/task-management-api/internal/core/domain"
	"github.com/taskhub/task-management-api/internal/core/ports"
)

const invalidDueDateMsg = "due_date must be a valid ISO 8601 date (e.g. 2026-03-01)"

// TaskHandler handles HTTP requests for task operations, including the CSV
// bulk upload.
type TaskHandler struct {
	tasks ports.TaskService
	bulk  ports.BulkUploadService
}

func NewTaskHandler(tasks ports.TaskService, bulk ports.BulkUploadService) *TaskHandler {
	return &TaskHandler{tasks: tasks, bulk: bulk}
}

func parseOptionalDueDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := domain.ParseDueDate(s)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, invalidDueDateMsg)
	}
	return &t, nil
}

// Create handles POST /v1/tasks.
//
// @Summary      Create a new task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  domain.Task
// @Failure      400   {object}  map[string]any
// @Router       /v1/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	due, err := parseOptionalDueDate(req.DueDate)
	if err != nil {
		return err
	}

	task, err := h.tasks.Create(c.Request().Context(), p, ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		Priority:    domain.TaskPriority(req.Priority),
		DueDate:     due,
	})
	if err != nil {
		return err
	}

	metrics.TasksCreatedTotal.WithLabelValues("api").Inc()
	return c.JSON(http.StatusCreated, task)
}

// BulkUpload handles POST /v1/tasks/bulk-upload. The multipart field name is
// "file"; the size upper bound is enforced upstream by the body-limit
// middleware.
//
// @Summary      Bulk create tasks from a CSV file
// @Tags         tasks
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "CSV document"
// @Success      201   {object}  ports.BulkUploadReport
// @Failure      400   {object}  map[string]any
// @Router       /v1/tasks/bulk-upload [post]
func (h *TaskHandler) BulkUpload(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return domain.ErrNoFile
	}
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return err
	}

	start := time.Now()
	report, err := h.bulk.Process(c.Request().Context(), p, ports.UploadInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		return err
	}

	metrics.BulkUploadDuration.Observe(time.Since(start).Seconds())
	metrics.BulkRowsTotal.WithLabelValues("accepted").Add(float64(report.SuccessCount))
	metrics.BulkRowsTotal.WithLabelValues("rejected").Add(float64(report.FailureCount))
	metrics.TasksCreatedTotal.WithLabelValues("bulk").Add(float64(report.SuccessCount))

	return c.JSON(http.StatusCreated, report)
}

// List handles GET /v1/tasks. Admins see every owner's tasks; regular users
// only their own.
//
// @Summary      List tasks with pagination and filters
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        status    query     string  false  "Filter by status"
// @Param        priority  query     string  false  "Filter by priority"
// @Param        page      query     int     false  "1-based page"
// @Param        limit     query     int     false  "Page size"
// @Success      200       {object}  listTasksResponse
// @Router       /v1/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req listTasksRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.tasks.List(c.Request().Context(), p, ports.ListTasksInput{
		Status:   req.Status,
		Priority: req.Priority,
		Page:     req.Page,
		Limit:    req.Limit,
	})
	if err != nil {
		return err
	}

	items := result.Items
	if items == nil {
		items = []*domain.Task{}
	}
	return c.JSON(http.StatusOK, listTasksResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Get handles GET /v1/tasks/:id.
//
// @Summary      Get a task by id
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  domain.Task
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /v1/tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	task, err := h.tasks.Get(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Update handles PATCH /v1/tasks/:id.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to patch"
// @Success      200   {object}  domain.Task
// @Failure      403   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /v1/tasks/{id} [patch]
func (h *TaskHandler) Update(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := ports.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		input.Status = &status
	}
	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		input.Priority = &priority
	}
	if req.DueDate != nil {
		due, err := parseOptionalDueDate(*req.DueDate)
		if err != nil {
			return err
		}
		input.DueDate = due
	}

	task, err := h.tasks.Update(c.Request().Context(), p, c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Delete handles DELETE /v1/tasks/:id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Security     BearerAuth
// @Param        id  path  string  true  "Task id"
// @Success      204
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /v1/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.tasks.Delete(c.Request().Context(), p, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
