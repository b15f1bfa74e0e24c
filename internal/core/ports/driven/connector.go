package driven

import (
	"context"

	"github.com/custodia-labs/similar/internal/core/domain"
)

// Connector lists the files of a corpus directory.
type Connector interface {
	// Root returns the directory being scanned.
	Root() string

	// Validate checks the root exists and is a directory.
	Validate(ctx context.Context) error

	// FullSync emits every regular file directly inside the root, in name order.
	// Both channels are closed when the walk ends. A per-file error is sent
	// on the error channel and the walk continues.
	FullSync(ctx context.Context) (<-chan domain.RawDocument, <-chan error)

	// Watch emits change events for the root until ctx is cancelled.
	Watch(ctx context.Context) (<-chan domain.RawDocumentChange, error)

	// Close releases resources.
	Close() error
}

// ConnectorFactory creates a connector for a directory.
type ConnectorFactory interface {
	Create(ctx context.Context, root string) (Connector, error)
}

// ConnectorFactoryFunc adapts a function to ConnectorFactory.
type ConnectorFactoryFunc func(ctx context.Context, root string) (Connector, error)

// Create calls f.
func (f ConnectorFactoryFunc) Create(ctx context.Context, root string) (Connector, error) {
	return f(ctx, root)
}
