package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/similar/internal/core/domain"
	"github.com/custodia-labs/similar/internal/core/ports/driven"
	"github.com/custodia-labs/similar/internal/core/ports/driving"
	"github.com/custodia-labs/similar/internal/core/similarity"
	"github.com/custodia-labs/similar/internal/logger"
)

// Ensure ClusterService implements the interface.
var _ driving.ClusterService = (*ClusterService)(nil)

// ClusterService wires the graph builder, component extractor and reporter.
type ClusterService struct {
	workers int
}

// NewClusterService creates a cluster service running up to workers
// relevance queries at once. Values below 2 query sequentially.
func NewClusterService(workers int) *ClusterService {
	return &ClusterService{workers: workers}
}

// Run clusters docs at the given threshold.
func (s *ClusterService) Run(
	ctx context.Context,
	docs []domain.Document,
	provider driven.RelevanceQuery,
	threshold int,
) (*domain.ClusterReport, error) {
	return s.run(ctx, docs, provider, threshold, nil)
}

func (s *ClusterService) run(
	ctx context.Context,
	docs []domain.Document,
	provider driven.RelevanceQuery,
	threshold int,
	progress domain.ProgressFunc,
) (*domain.ClusterReport, error) {
	if err := domain.ValidateThreshold(threshold); err != nil {
		return nil, err
	}

	report := &domain.ClusterReport{
		RunID:     uuid.NewString(),
		Threshold: threshold,
		Documents: len(docs),
		Clusters:  []domain.Cluster{},
	}

	logger.Section("Clustering")
	logger.Debug("Run %s: %d documents, threshold %d", report.RunID, len(docs), threshold)

	if len(docs) == 0 {
		return report, nil
	}
	if provider == nil {
		return nil, fmt.Errorf("%w: nil relevance provider", domain.ErrInvalidInput)
	}

	opts := []similarity.BuildOption{similarity.WithWorkers(s.workers)}
	if progress != nil {
		opts = append(opts, similarity.WithProgress(progress))
	}
	g, failures, err := similarity.Build(ctx, docs, provider, threshold, opts...)
	if err != nil {
		return nil, fmt.Errorf("build similarity graph: %w", err)
	}
	for _, f := range failures {
		logger.Warn("%v", f)
	}

	labels := make(map[domain.DocumentID]string, len(docs))
	for _, d := range docs {
		labels[d.ID] = d.Label
	}

	comps := similarity.StronglyConnectedComponents(g)
	if clusters := similarity.Report(g, comps, func(id domain.DocumentID) string { return labels[id] }); clusters != nil {
		report.Clusters = clusters
	}
	report.Edges = g.Size()
	report.Failures = failures

	logger.Debug("Run %s: %d edges, %d components, %d clusters",
		report.RunID, report.Edges, comps.Count, len(report.Clusters))
	return report, nil
}
