package exports

import (
	"context"
	"io"
	"time"
)

// StorageDriver defines how generated export artifacts are stored
type StorageDriver interface {
	// Save writes the artifact content under the given key
	Save(ctx context.Context, key string, body io.Reader, contentType string) error

	// Get returns a ReadCloser to stream the artifact back and its content type
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)

	// Delete removes the artifact
	Delete(ctx context.Context, key string) error

	// GenerateURL returns a public-facing URL for the artifact
	GenerateURL(ctx context.Context, key string, expires time.Duration) (string, error)
}
