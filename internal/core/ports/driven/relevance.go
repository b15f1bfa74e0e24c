package driven

import (
	"context"

	"github.com/custodia-labs/similar/internal/core/domain"
)

// RelevanceQuery finds the documents related to a query document.
//
// Find returns all and only documents whose relevance to id is at least
// threshold, ordered by descending score. The result may include id
// itself and may span the whole corpus. Scores are only comparable in the
// sense that ">= threshold" means "similar enough to link".
type RelevanceQuery interface {
	Find(ctx context.Context, id domain.DocumentID, threshold int) ([]domain.Match, error)
}
