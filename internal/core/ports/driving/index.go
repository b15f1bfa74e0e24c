package driving

import (
	"context"

	"github.com/custodia-labs/similar/internal/core/domain"
	"github.com/custodia-labs/similar/internal/core/ports/driven"
)

// IndexStats summarises an indexing pass.
type IndexStats struct {
	// Indexed is the number of files added to the index.
	Indexed int

	// Skipped is the number of files that could not be read or normalised.
	Skipped int
}

// IndexService feeds the files of a connector into an index.
type IndexService interface {
	IndexDirectory(ctx context.Context, connector driven.Connector, index driven.Index, progress domain.ProgressFunc) (IndexStats, error)
}
