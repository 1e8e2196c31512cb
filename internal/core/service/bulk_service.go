package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskhub/task-management-api/internal/core/domain"
	"github.com/taskhub/task-management-api/internal/core/ports"
)

const (
	// rowWorkers bounds the concurrency of per-row validation. Rows have no
	// ordering dependency between them; report order is restored by index.
	rowWorkers = 4

	archivePrefix      = "uploads/"
	defaultContentType = "text/csv"
)

// BulkUploadService ingests one CSV upload into many task creations:
// admission, archive, parse, per-row validation, batch persist, report.
type BulkUploadService struct {
	tasks    ports.TaskRepository
	archive  ports.ObjectStore
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewBulkUploadService(tasks ports.TaskRepository, archive ports.ObjectStore, logger zerolog.Logger) *BulkUploadService {
	return &BulkUploadService{
		tasks:    tasks,
		archive:  archive,
		validate: validator.New(),
		logger:   logger,
	}
}

// csvRecord is one parsed data row, fields already trimmed.
type csvRecord struct {
	title       string
	description string
	status      string
	priority    string
	dueDate     string
}

// taskRow carries the constraints shared with direct task creation.
type taskRow struct {
	Title    string `validate:"required,max=255"`
	Status   string `validate:"omitempty,oneof=pending in_progress done"`
	Priority string `validate:"omitempty,oneof=low medium high"`
}

type rowResult struct {
	task *domain.Task
	errs []string
}

// Process runs the full pipeline for one upload. Admission failures and an
// unparsable document reject the request before persistence; the archive
// write happens right after admission so the raw submission is retained even
// when every row fails validation. Row-level failures are report data, never
// an error return.
func (s *BulkUploadService) Process(ctx context.Context, p domain.Principal, input ports.UploadInput) (*ports.BulkUploadReport, error) {
	if input.Filename == "" || len(input.Data) == 0 {
		return nil, domain.ErrNoFile
	}
	if !strings.HasSuffix(strings.ToLower(input.Filename), ".csv") {
		return nil, domain.ErrNotCSV
	}

	contentType := input.ContentType
	if contentType == "" {
		contentType = defaultContentType
	}
	fileKey := archivePrefix + uuid.NewString() + "-" + input.Filename
	if err := s.archive.Upload(ctx, fileKey, contentType, bytes.NewReader(input.Data)); err != nil {
		s.logger.Error().Err(err).Str("file_key", fileKey).Msg("failed to archive upload")
		return nil, fmt.Errorf("archive upload: %w", err)
	}

	rows, err := parseRows(input.Data)
	if err != nil {
		return nil, err
	}

	results := s.validateRows(rows)

	valid := make([]*domain.Task, 0, len(rows))
	rowErrors := make([]ports.RowError, 0)
	for i, r := range results {
		if len(r.errs) > 0 {
			// +2: display rows are 1-based and the header occupies row 1.
			rowErrors = append(rowErrors, ports.RowError{Row: i + 2, Errors: r.errs})
			continue
		}
		valid = append(valid, r.task)
	}

	if len(valid) > 0 {
		now := time.Now().UTC()
		for _, t := range valid {
			t.OwnerID = p.ID
			t.CreatedAt = now
			t.UpdatedAt = now
		}
		if _, err := s.tasks.CreateMany(ctx, valid); err != nil {
			s.logger.Error().Err(err).Int("rows", len(valid)).Msg("failed to persist bulk tasks")
			return nil, fmt.Errorf("persist bulk tasks: %w", err)
		}
	}

	s.logger.Info().
		Str("owner_id", p.ID).
		Str("file_key", fileKey).
		Int("success", len(valid)).
		Int("failures", len(rowErrors)).
		Msg("bulk upload completed")

	return &ports.BulkUploadReport{
		TotalRows:    len(rows),
		SuccessCount: len(valid),
		FailureCount: len(rowErrors),
		Errors:       rowErrors,
		FileKey:      fileKey,
	}, nil
}

// validateRows fans row validation out over a bounded worker pool. Results
// are written by index so the report reflects document order regardless of
// evaluation order.
func (s *BulkUploadService) validateRows(rows []csvRecord) []rowResult {
	results := make([]rowResult, len(rows))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < rowWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = s.validateRow(rows[i])
			}
		}()
	}
	for i := range rows {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// validateRow checks one row against the same constraints as direct task
// creation, collecting every violation rather than stopping at the first.
func (s *BulkUploadService) validateRow(rec csvRecord) rowResult {
	var msgs []string

	payload := taskRow{Title: rec.title, Status: rec.status, Priority: rec.priority}
	if err := s.validate.Struct(payload); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			for _, fe := range ve {
				msgs = append(msgs, rowFieldMessage(fe))
			}
		} else {
			msgs = append(msgs, err.Error())
		}
	}

	var due *time.Time
	if rec.dueDate != "" {
		t, err := domain.ParseDueDate(rec.dueDate)
		if err != nil {
			msgs = append(msgs, "dueDate must be a valid ISO 8601 date (e.g. 2026-03-01)")
		} else {
			due = &t
		}
	}

	if len(msgs) > 0 {
		return rowResult{errs: msgs}
	}

	status := domain.TaskStatus(rec.status)
	if status == "" {
		status = domain.StatusPending
	}
	priority := domain.TaskPriority(rec.priority)
	if priority == "" {
		priority = domain.PriorityMedium
	}

	return rowResult{task: &domain.Task{
		Title:       rec.title,
		Description: rec.description,
		Status:      status,
		Priority:    priority,
		DueDate:     due,
	}}
}

// rowFieldMessage converts a single validation error into the human-readable
// message recorded in the report.
func rowFieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

// parseRows tokenizes the document into ordered data rows. The first record
// names the columns; blank lines are skipped by the reader and never consume
// a row number. A document that cannot be tokenized at all aborts the whole
// request.
func parseRows(data []byte) ([]csvRecord, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.TrimLeadingSpace = true
	// Short rows surface as per-field validation errors, not a rejected
	// document.
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, domain.ErrMalformedCSV
	}
	if len(records) == 0 {
		return nil, nil
	}

	idx := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}

	rows := make([]csvRecord, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, csvRecord{
			title:       field(rec, idx, "title"),
			description: field(rec, idx, "description"),
			status:      field(rec, idx, "status"),
			priority:    field(rec, idx, "priority"),
			dueDate:     field(rec, idx, "duedate"),
		})
	}
	return rows, nil
}

func field(rec []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
