package ports

import (
	"context"

	"github.com/opsbench/opsctl/internal/core/domain/kubeconfig"
)

// DocumentStore defines the interface for persisting a kubeconfig document
type DocumentStore interface {
	// Load reads the document, returning an empty one when the backing file
	// is missing, empty or unreadable as a mapping
	Load(ctx context.Context) (*kubeconfig.Document, error)

	// Save replaces the backing file with the full document
	Save(ctx context.Context, doc *kubeconfig.Document) error

	// Path returns the location of the backing file
	Path() string
}
