package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/similar/internal/core/domain"
	"github.com/custodia-labs/similar/internal/core/ports/driven"
	"github.com/custodia-labs/similar/internal/core/ports/driving"
	"github.com/custodia-labs/similar/internal/logger"
)

// Ensure Finder implements the interface.
var _ driving.Finder = (*Finder)(nil)

// Finder runs the whole pipeline for one directory: a temporary index is
// created inside it, filled, queried and removed again.
type Finder struct {
	connectors   driven.ConnectorFactory
	indexes      driven.IndexFactory
	indexer      driving.IndexService
	cluster      *ClusterService
	indexDirName string
}

// NewFinder creates a finder. indexDirName is the temporary index
// directory created inside each scanned directory.
func NewFinder(
	connectors driven.ConnectorFactory,
	indexes driven.IndexFactory,
	indexer driving.IndexService,
	cluster *ClusterService,
	indexDirName string,
) *Finder {
	if indexDirName == "" {
		indexDirName = domain.DefaultIndexDirName
	}
	return &Finder{
		connectors:   connectors,
		indexes:      indexes,
		indexer:      indexer,
		cluster:      cluster,
		indexDirName: indexDirName,
	}
}

// Find indexes req.Dir and clusters its files at req.Threshold.
// The threshold is checked before anything touches the filesystem.
func (f *Finder) Find(ctx context.Context, req driving.FindRequest) (report *domain.ClusterReport, err error) {
	if err := domain.ValidateThreshold(req.Threshold); err != nil {
		return nil, err
	}

	connector, err := f.connectors.Create(ctx, req.Dir)
	if err != nil {
		return nil, fmt.Errorf("create connector: %w", err)
	}
	defer connector.Close()

	if err := connector.Validate(ctx); err != nil {
		return nil, err
	}

	index, err := f.indexes.Create(ctx, filepath.Join(req.Dir, f.indexDirName))
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}
	defer func() {
		if closeErr := index.Close(); closeErr != nil {
			logger.Warn("removing index: %v", closeErr)
			if err == nil {
				err = fmt.Errorf("close index: %w", closeErr)
			}
		}
	}()

	stats, err := f.indexer.IndexDirectory(ctx, connector, index, req.Progress)
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", req.Dir, err)
	}

	docs, err := index.Documents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	logger.Debug("Corpus: %d documents (%d skipped)", len(docs), stats.Skipped)

	report, err = f.cluster.run(ctx, docs, index, req.Threshold, req.Progress)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// IsFatal reports whether err from Find should abort a watch loop rather
// than wait for the next change.
func IsFatal(err error) bool {
	return errors.Is(err, domain.ErrInvalidThreshold) ||
		errors.Is(err, domain.ErrNotADirectory) ||
		errors.Is(err, domain.ErrIndexExists) ||
		errors.Is(err, context.Canceled)
}
