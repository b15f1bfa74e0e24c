package driven

import (
	"context"

	"github.com/custodia-labs/similar/internal/core/domain"
)

// Index is a full-text index built for one run.
// Documents receive contiguous ids starting at 1 in the order they are added.
type Index interface {
	RelevanceQuery

	// Add indexes a document's text under the given label.
	Add(ctx context.Context, label, content string) (domain.DocumentID, error)

	// Commit makes added documents visible to queries.
	Commit(ctx context.Context) error

	// Documents returns every committed document in ascending id order.
	Documents(ctx context.Context) ([]domain.Document, error)

	// Close releases the index. Temporary indexes remove their storage.
	Close() error
}

// IndexFactory creates the temporary index used by one run.
// The caller owns the returned index and must Close it.
type IndexFactory interface {
	Create(ctx context.Context, dir string) (Index, error)
}

// IndexFactoryFunc adapts a function to IndexFactory.
type IndexFactoryFunc func(ctx context.Context, dir string) (Index, error)

// Create calls f.
func (f IndexFactoryFunc) Create(ctx context.Context, dir string) (Index, error) {
	return f(ctx, dir)
}
