package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/similar/internal/core/domain"
)

func TestServer_handleFindSimilar(t *testing.T) {
	ctx := context.Background()

	t.Run("returns clusters", func(t *testing.T) {
		finder := &mockFinder{report: &domain.ClusterReport{
			RunID:     "run-1",
			Threshold: 60,
			Documents: 4,
			Edges:     5,
			Failures: []domain.QueryFailure{
				{Document: domain.Document{ID: 4, Label: "/docs/d.txt"}, Err: errors.New("boom")},
			},
			Clusters: []domain.Cluster{{
				Component: 1,
				Documents: []domain.Document{{ID: 1, Label: "/docs/a.txt"}, {ID: 3, Label: "/docs/c.txt"}},
			}},
		}}
		server, err := NewServer(&Ports{Finder: finder}, "dev")
		require.NoError(t, err)

		_, output, err := server.handleFindSimilar(ctx, nil, FindSimilarInput{Path: "/docs", Threshold: intPtr(60)})

		require.NoError(t, err)
		require.Len(t, finder.calls, 1)
		assert.Equal(t, "/docs", finder.calls[0].Dir)
		assert.Equal(t, 60, finder.calls[0].Threshold)
		assert.Equal(t, "run-1", output.RunID)
		assert.Equal(t, 4, output.Documents)
		assert.Equal(t, 5, output.Edges)
		assert.Equal(t, []string{"query /docs/d.txt: boom"}, output.Failures)
		require.Len(t, output.Clusters, 1)
		assert.Equal(t, 1, output.Clusters[0].Component)
		assert.Equal(t, []string{"/docs/a.txt", "/docs/c.txt"}, output.Clusters[0].Files)
	})

	t.Run("no clusters is an empty list", func(t *testing.T) {
		finder := &mockFinder{report: &domain.ClusterReport{Clusters: []domain.Cluster{}}}
		server, err := NewServer(&Ports{Finder: finder}, "dev")
		require.NoError(t, err)

		_, output, err := server.handleFindSimilar(ctx, nil, FindSimilarInput{Path: "/docs", Threshold: intPtr(0)})

		require.NoError(t, err)
		assert.NotNil(t, output.Clusters)
		assert.Empty(t, output.Clusters)
	})

	t.Run("threshold falls back to settings", func(t *testing.T) {
		finder := &mockFinder{report: &domain.ClusterReport{}}
		server, err := NewServer(&Ports{Finder: finder, Settings: withThreshold(75)}, "dev")
		require.NoError(t, err)

		_, _, err = server.handleFindSimilar(ctx, nil, FindSimilarInput{Path: "/docs"})

		require.NoError(t, err)
		require.Len(t, finder.calls, 1)
		assert.Equal(t, 75, finder.calls[0].Threshold)
	})

	t.Run("missing threshold without settings", func(t *testing.T) {
		finder := &mockFinder{}
		server, err := NewServer(&Ports{Finder: finder}, "dev")
		require.NoError(t, err)

		_, _, err = server.handleFindSimilar(ctx, nil, FindSimilarInput{Path: "/docs"})

		assert.ErrorIs(t, err, ErrNoThreshold)
		assert.Empty(t, finder.calls)
	})

	t.Run("missing threshold with unset setting", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Finder:   &mockFinder{},
			Settings: &mockSettings{settings: domain.DefaultSettings()},
		}, "dev")
		require.NoError(t, err)

		_, _, err = server.handleFindSimilar(ctx, nil, FindSimilarInput{Path: "/docs"})

		assert.ErrorIs(t, err, ErrNoThreshold)
	})

	t.Run("missing path", func(t *testing.T) {
		finder := &mockFinder{}
		server, err := NewServer(&Ports{Finder: finder}, "dev")
		require.NoError(t, err)

		_, _, err = server.handleFindSimilar(ctx, nil, FindSimilarInput{Threshold: intPtr(50)})

		assert.ErrorContains(t, err, "path is required")
		assert.Empty(t, finder.calls)
	})

	t.Run("finder error is returned", func(t *testing.T) {
		finder := &mockFinder{err: domain.ErrNotADirectory}
		server, err := NewServer(&Ports{Finder: finder}, "dev")
		require.NoError(t, err)

		_, _, err = server.handleFindSimilar(ctx, nil, FindSimilarInput{Path: "/nope", Threshold: intPtr(50)})

		assert.ErrorIs(t, err, domain.ErrNotADirectory)
	})
}
