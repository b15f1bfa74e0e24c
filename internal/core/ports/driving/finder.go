package driving

import (
	"context"

	"github.com/custodia-labs/similar/internal/core/domain"
)

// FindRequest describes one run over a directory.
type FindRequest struct {
	// Dir is the directory whose files are compared.
	Dir string

	// Threshold is the relevance cut-off in [0, 100].
	Threshold int

	// Progress receives indexing and query progress. Optional.
	Progress domain.ProgressFunc
}

// Finder indexes a directory and reports its clusters of similar files.
type Finder interface {
	Find(ctx context.Context, req FindRequest) (*domain.ClusterReport, error)
}
