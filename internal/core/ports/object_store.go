package ports

import (
	"context"
	"io"
)

// ObjectStore is the durable blob archive for raw uploads. The stored bytes
// are opaque; the key is the only handle callers get back.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, r io.Reader) error
}
