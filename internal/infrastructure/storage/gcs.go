// Package storage provides the Google Cloud Storage implementation of the
// upload archive. Objects are write-once: the pipeline never reads them back,
// they exist as an audit trail of what was submitted.
package storage

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// NewClient creates a GCS client. When credsPath is empty, application
// default credentials are used.
func NewClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

// Archive writes upload blobs into a single bucket.
type Archive struct {
	client *storage.Client
	bucket string
}

func NewArchive(client *storage.Client, bucket string) *Archive {
	return &Archive{client: client, bucket: bucket}
}

// Upload streams r into bucket/key with the given content type.
func (a *Archive) Upload(ctx context.Context, key, contentType string, r io.Reader) error {
	wc := a.client.Bucket(a.bucket).Object(key).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // uploads are small, skip chunking

	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return fmt.Errorf("archive write: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("archive close: %w", err)
	}
	return nil
}
