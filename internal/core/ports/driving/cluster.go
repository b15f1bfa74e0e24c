package driving

import (
	"context"

	"github.com/custodia-labs/similar/internal/core/domain"
	"github.com/custodia-labs/similar/internal/core/ports/driven"
)

// ClusterService groups documents whose relevance forms a cycle above a threshold.
type ClusterService interface {
	// Run builds the similarity graph of docs using provider and returns its
	// non-trivial strongly-connected components. An invalid threshold fails
	// before any query; a failing query only degrades that document.
	Run(ctx context.Context, docs []domain.Document, provider driven.RelevanceQuery, threshold int) (*domain.ClusterReport, error)
}
