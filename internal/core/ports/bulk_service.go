package ports

import (
	"context"

	"github.com/taskhub/task-management-api/internal/core/domain"
)

// UploadInput is one raw multipart upload as received from the transport
// layer. Data holds the unmodified file bytes.
type UploadInput struct {
	Filename    string
	ContentType string
	Data        []byte
}

// RowError records every constraint violated by a single CSV row.
// Row is the display row number: parse position + 2, accounting for the
// header occupying row 1 of the document.
type RowError struct {
	Row    int      `json:"row"`
	Errors []string `json:"errors"`
}

// BulkUploadReport is the per-upload result. It is returned once and never
// persisted. Errors are ordered by row number.
type BulkUploadReport struct {
	TotalRows    int        `json:"total_rows"`
	SuccessCount int        `json:"success_count"`
	FailureCount int        `json:"failure_count"`
	Errors       []RowError `json:"errors"`
	FileKey      string     `json:"file_key"`
}

// BulkUploadService ingests one tabular upload into many task creations.
// Row-level validation failures are data in the report, never an error.
type BulkUploadService interface {
	Process(ctx context.Context, p domain.Principal, input UploadInput) (*BulkUploadReport, error)
}
