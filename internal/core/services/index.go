package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/similar/internal/core/domain"
	"github.com/custodia-labs/similar/internal/core/ports/driven"
	"github.com/custodia-labs/similar/internal/core/ports/driving"
	"github.com/custodia-labs/similar/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// IndexService feeds connector output through the normalisers into an index.
type IndexService struct {
	registry driven.NormaliserRegistry
}

// NewIndexService creates an index service using registry to extract text.
func NewIndexService(registry driven.NormaliserRegistry) *IndexService {
	return &IndexService{registry: registry}
}

// IndexDirectory indexes every file the connector emits and commits once.
// A file that cannot be read or normalised is logged and skipped.
func (s *IndexService) IndexDirectory(
	ctx context.Context,
	connector driven.Connector,
	index driven.Index,
	progress domain.ProgressFunc,
) (driving.IndexStats, error) {
	logger.Section("Indexing")
	logger.Debug("Root: %s", connector.Root())

	var stats driving.IndexStats
	report := func(phase domain.Phase) {
		if progress != nil {
			progress(domain.Progress{Phase: phase, Done: stats.Indexed})
		}
	}

	docsCh, errsCh := connector.FullSync(ctx)
	for docsCh != nil || errsCh != nil {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()

		case err, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			stats.Skipped++
			logger.Warn("skipping file: %v", err)

		case raw, ok := <-docsCh:
			if !ok {
				docsCh = nil
				continue
			}
			if err := s.indexOne(ctx, index, &raw); err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return stats, ctxErr
				}
				if errors.Is(err, domain.ErrIndexClosed) {
					return stats, err
				}
				stats.Skipped++
				logger.Warn("skipping %s: %v", raw.URI, err)
				continue
			}
			stats.Indexed++
			report(domain.PhaseIndexing)
		}
	}

	if err := ctx.Err(); err != nil {
		return stats, err
	}
	if err := index.Commit(ctx); err != nil {
		return stats, fmt.Errorf("commit index: %w", err)
	}
	report(domain.PhaseIndexed)

	logger.Info("Indexed %d files, skipped %d", stats.Indexed, stats.Skipped)
	return stats, nil
}

func (s *IndexService) indexOne(ctx context.Context, index driven.Index, raw *domain.RawDocument) error {
	result, err := s.registry.Normalise(ctx, raw)
	if err != nil {
		return fmt.Errorf("normalise: %w", err)
	}
	id, err := index.Add(ctx, result.Label, result.Content)
	if err != nil {
		return fmt.Errorf("add to index: %w", err)
	}
	logger.Debug("Indexed %s as document %d (%s)", raw.URI, id, result.Format)
	return nil
}
