// Package store persists the pipeline's output artifacts. The pipeline
// only depends on the Store interface; whether the backend is SQLite or
// Postgres is a configuration concern.
package store

import (
	"context"

	"github.com/sells-group/market-research-cli/internal/model"
)

// Store defines the artifact persistence interface.
type Store interface {
	// SaveFile persists an artifact and returns its descriptor.
	SaveFile(ctx context.Context, name string, content []byte, contentType string, metadata map[string]string) (*model.GeneratedFile, error)

	// ListFiles returns artifact descriptors newest first, content omitted.
	ListFiles(ctx context.Context) ([]model.GeneratedFile, error)

	// GetFile returns the most recently saved artifact with the given name,
	// including its content.
	GetFile(ctx context.Context, name string) (*model.File, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
