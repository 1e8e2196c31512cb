package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/task-management-api/internal/api/middleware"
	"github.com/taskhub/task-management-api/internal/core/domain"
	"github.com/taskhub/task-management-api/internal/core/ports"
)

type stubTaskService struct {
	createFn func(ctx context.Context, p domain.Principal, input ports.CreateTaskInput) (*domain.Task, error)
	listFn   func(ctx context.Context, p domain.Principal, input ports.ListTasksInput) (*ports.ListTasksResult, error)
	getFn    func(ctx context.Context, p domain.Principal, id string) (*domain.Task, error)
	updateFn func(ctx context.Context, p domain.Principal, id string, input ports.UpdateTaskInput) (*domain.Task, error)
	deleteFn func(ctx context.Context, p domain.Principal, id string) error
}

func (s *stubTaskService) Create(ctx context.Context, p domain.Principal, input ports.CreateTaskInput) (*domain.Task, error) {
	return s.createFn(ctx, p, input)
}

func (s *stubTaskService) List(ctx context.Context, p domain.Principal, input ports.ListTasksInput) (*ports.ListTasksResult, error) {
	return s.listFn(ctx, p, input)
}

func (s *stubTaskService) Get(ctx context.Context, p domain.Principal, id string) (*domain.Task, error) {
	return s.getFn(ctx, p, id)
}

func (s *stubTaskService) Update(ctx context.Context, p domain.Principal, id string, input ports.UpdateTaskInput) (*domain.Task, error) {
	return s.updateFn(ctx, p, id, input)
}

func (s *stubTaskService) Delete(ctx context.Context, p domain.Principal, id string) error {
	return s.deleteFn(ctx, p, id)
}

type stubBulkService struct {
	processFn func(ctx context.Context, p domain.Principal, input ports.UploadInput) (*ports.BulkUploadReport, error)
}

func (s *stubBulkService) Process(ctx context.Context, p domain.Principal, input ports.UploadInput) (*ports.BulkUploadReport, error) {
	return s.processFn(ctx, p, input)
}

func withPrincipal(c echo.Context, p domain.Principal) echo.Context {
	c.Set(middleware.PrincipalKey, p)
	return c
}

var testPrincipal = domain.Principal{ID: "u1", Role: domain.RoleUser}

func TestTaskHandler_Create_Success(t *testing.T) {
	tasks := &stubTaskService{
		createFn: func(ctx context.Context, p domain.Principal, input ports.CreateTaskInput) (*domain.Task, error) {
			if p.ID != "u1" {
				t.Fatalf("unexpected principal: %+v", p)
			}
			if input.Title != "Write report" || input.Priority != domain.PriorityHigh {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Task{ID: "t1", Title: input.Title, Status: domain.StatusPending, Priority: input.Priority, OwnerID: p.ID}, nil
		},
	}
	handler := NewTaskHandler(tasks, nil)

	c, rec := newTestContext(t, http.MethodPost, "/v1/tasks",
		`{"title":"Write report","priority":"high"}`)
	withPrincipal(c, testPrincipal)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestTaskHandler_Create_MissingPrincipal(t *testing.T) {
	handler := NewTaskHandler(&stubTaskService{}, nil)

	c, _ := newTestContext(t, http.MethodPost, "/v1/tasks", `{"title":"x"}`)

	err := handler.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestTaskHandler_Create_BadDueDate(t *testing.T) {
	handler := NewTaskHandler(&stubTaskService{}, nil)

	c, _ := newTestContext(t, http.MethodPost, "/v1/tasks",
		`{"title":"x","due_date":"03/01/2026"}`)
	withPrincipal(c, testPrincipal)

	err := handler.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if msg, _ := he.Message.(string); !strings.Contains(msg, "ISO 8601") {
		t.Fatalf("expected due date message, got %v", he.Message)
	}
}

func TestTaskHandler_Create_InvalidStatus(t *testing.T) {
	handler := NewTaskHandler(&stubTaskService{}, nil)

	c, _ := newTestContext(t, http.MethodPost, "/v1/tasks",
		`{"title":"x","status":"started"}`)
	withPrincipal(c, testPrincipal)

	err := handler.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestTaskHandler_List_EmptyPageIsNotNull(t *testing.T) {
	tasks := &stubTaskService{
		listFn: func(ctx context.Context, p domain.Principal, input ports.ListTasksInput) (*ports.ListTasksResult, error) {
			return &ports.ListTasksResult{Items: nil, Total: 0, Page: 1, Limit: 10, TotalPages: 0}, nil
		},
	}
	handler := NewTaskHandler(tasks, nil)

	c, rec := newTestContext(t, http.MethodGet, "/v1/tasks", "")
	withPrincipal(c, testPrincipal)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if string(resp["data"]) != "[]" {
		t.Fatalf("expected empty array for data, got %s", resp["data"])
	}
}

func TestTaskHandler_List_PassesFilters(t *testing.T) {
	var got ports.ListTasksInput
	tasks := &stubTaskService{
		listFn: func(ctx context.Context, p domain.Principal, input ports.ListTasksInput) (*ports.ListTasksResult, error) {
			got = input
			return &ports.ListTasksResult{Page: 2, Limit: 5}, nil
		},
	}
	handler := NewTaskHandler(tasks, nil)

	c, _ := newTestContext(t, http.MethodGet, "/v1/tasks?status=done&priority=low&page=2&limit=5", "")
	withPrincipal(c, testPrincipal)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.Status != "done" || got.Priority != "low" || got.Page != 2 || got.Limit != 5 {
		t.Fatalf("filters not forwarded: %+v", got)
	}
}

func TestTaskHandler_Get_NotFound(t *testing.T) {
	tasks := &stubTaskService{
		getFn: func(ctx context.Context, p domain.Principal, id string) (*domain.Task, error) {
			return nil, domain.ErrTaskNotFound
		},
	}
	handler := NewTaskHandler(tasks, nil)

	c, _ := newTestContext(t, http.MethodGet, "/v1/tasks/t404", "")
	withPrincipal(c, testPrincipal)
	c.SetParamNames("id")
	c.SetParamValues("t404")

	if err := handler.Get(c); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskHandler_Update_PatchSemantics(t *testing.T) {
	var got ports.UpdateTaskInput
	tasks := &stubTaskService{
		updateFn: func(ctx context.Context, p domain.Principal, id string, input ports.UpdateTaskInput) (*domain.Task, error) {
			got = input
			return &domain.Task{ID: id}, nil
		},
	}
	handler := NewTaskHandler(tasks, nil)

	c, rec := newTestContext(t, http.MethodPatch, "/v1/tasks/t1", `{"status":"done"}`)
	withPrincipal(c, testPrincipal)
	c.SetParamNames("id")
	c.SetParamValues("t1")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.Status == nil || *got.Status != domain.StatusDone {
		t.Fatalf("expected status patch, got %+v", got)
	}
	if got.Title != nil || got.Priority != nil || got.DueDate != nil {
		t.Fatalf("unset fields must stay nil: %+v", got)
	}
}

func TestTaskHandler_Delete_NoContent(t *testing.T) {
	tasks := &stubTaskService{
		deleteFn: func(ctx context.Context, p domain.Principal, id string) error {
			if id != "t1" {
				t.Fatalf("unexpected id: %s", id)
			}
			return nil
		},
	}
	handler := NewTaskHandler(tasks, nil)

	c, rec := newTestContext(t, http.MethodDelete, "/v1/tasks/t1", "")
	withPrincipal(c, testPrincipal)
	c.SetParamNames("id")
	c.SetParamValues("t1")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func newMultipartContext(t *testing.T, fieldName, filename, content string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(fieldName, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/v1/tasks/bulk-upload", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestTaskHandler_BulkUpload_Success(t *testing.T) {
	csv := "title,description,status,priority,dueDate\nBuy milk,,pending,low,\n"
	bulk := &stubBulkService{
		processFn: func(ctx context.Context, p domain.Principal, input ports.UploadInput) (*ports.BulkUploadReport, error) {
			if p.ID != "u1" {
				t.Fatalf("unexpected principal: %+v", p)
			}
			if input.Filename != "tasks.csv" {
				t.Fatalf("unexpected filename: %s", input.Filename)
			}
			if string(input.Data) != csv {
				t.Fatalf("file bytes not forwarded intact")
			}
			return &ports.BulkUploadReport{TotalRows: 1, SuccessCount: 1, Errors: []ports.RowError{}, FileKey: "uploads/abc-tasks.csv"}, nil
		},
	}
	handler := NewTaskHandler(&stubTaskService{}, bulk)

	c, rec := newMultipartContext(t, "file", "tasks.csv", csv)
	withPrincipal(c, testPrincipal)

	if err := handler.BulkUpload(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var report ports.BulkUploadReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if report.TotalRows != 1 || report.SuccessCount != 1 || report.FileKey == "" {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestTaskHandler_BulkUpload_MissingFile(t *testing.T) {
	handler := NewTaskHandler(&stubTaskService{}, &stubBulkService{
		processFn: func(ctx context.Context, p domain.Principal, input ports.UploadInput) (*ports.BulkUploadReport, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	})

	c, _ := newMultipartContext(t, "document", "tasks.csv", "title\nx\n")
	withPrincipal(c, testPrincipal)

	if err := handler.BulkUpload(c); !errors.Is(err, domain.ErrNoFile) {
		t.Fatalf("expected ErrNoFile, got %v", err)
	}
}

func TestTaskHandler_BulkUpload_NotCSV(t *testing.T) {
	handler := NewTaskHandler(&stubTaskService{}, &stubBulkService{
		processFn: func(ctx context.Context, p domain.Principal, input ports.UploadInput) (*ports.BulkUploadReport, error) {
			return nil, domain.ErrNotCSV
		},
	})

	c, _ := newMultipartContext(t, "file", "tasks.pdf", "%PDF-1.4")
	withPrincipal(c, testPrincipal)

	if err := handler.BulkUpload(c); !errors.Is(err, domain.ErrNotCSV) {
		t.Fatalf("expected ErrNotCSV, got %v", err)
	}
}
