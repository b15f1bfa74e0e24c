package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/similar/internal/adapters/driven/relevance/memory"
	"github.com/custodia-labs/similar/internal/core/domain"
	"github.com/custodia-labs/similar/internal/core/ports/driven"
	"github.com/custodia-labs/similar/internal/core/ports/driving"
)

// finderFixture wires a Finder to in-memory collaborators.
type finderFixture struct {
	connector *mockConnector
	index     *trackingIndex
	createErr error
	finder    *Finder
}

func newFinderFixture(docs ...domain.RawDocument) *finderFixture {
	f := &finderFixture{connector: &mockConnector{docs: docs}}
	indexes := driven.IndexFactoryFunc(func(_ context.Context, dir string) (driven.Index, error) {
		if f.createErr != nil {
			return nil, f.createErr
		}
		f.index = &trackingIndex{Index: memory.NewIndex(), dir: dir}
		return f.index, nil
	})
	f.finder = NewFinder(
		f.connector.factory(),
		indexes,
		NewIndexService(textRegistry()),
		NewClusterService(1),
		"",
	)
	return f
}

func TestFinder_Find(t *testing.T) {
	f := newFinderFixture(
		rawText("/corpus/a.txt", "the cat sat on the mat"),
		rawText("/corpus/b.txt", "the cat sat on a mat"),
		rawText("/corpus/c.txt", "quarterly revenue figures"),
	)

	report, err := f.finder.Find(context.Background(), driving.FindRequest{Dir: "/corpus", Threshold: 70})

	require.NoError(t, err)
	assert.Equal(t, 3, report.Documents)
	require.Len(t, report.Clusters, 1)
	assert.Equal(t, []string{"/corpus/a.txt", "/corpus/b.txt"}, report.Clusters[0].Labels())
	assert.Equal(t, "/corpus", f.connector.root)
	assert.Equal(t, filepath.Join("/corpus", domain.DefaultIndexDirName), f.index.dir)
	assert.True(t, f.index.closed)
	assert.True(t, f.connector.closed)
}

func TestFinder_Find_ReportsProgress(t *testing.T) {
	f := newFinderFixture(rawText("a", "x y"), rawText("b", "x y"))
	phases := map[domain.Phase]int{}

	_, err := f.finder.Find(context.Background(), driving.FindRequest{
		Dir:       "/corpus",
		Threshold: 50,
		Progress:  func(p domain.Progress) { phases[p.Phase]++ },
	})

	require.NoError(t, err)
	assert.Equal(t, 2, phases[domain.PhaseIndexing])
	assert.Equal(t, 1, phases[domain.PhaseIndexed])
	assert.Equal(t, 2, phases[domain.PhaseQuerying])
}

func TestFinder_Find_InvalidThresholdTouchesNothing(t *testing.T) {
	f := newFinderFixture(rawText("a", "x"))

	_, err := f.finder.Find(context.Background(), driving.FindRequest{Dir: "/corpus", Threshold: 150})

	assert.ErrorIs(t, err, domain.ErrInvalidThreshold)
	assert.Nil(t, f.index)
	assert.Empty(t, f.connector.root)
}

func TestFinder_Find_NotADirectory(t *testing.T) {
	f := newFinderFixture()
	f.connector.validateErr = domain.ErrNotADirectory

	_, err := f.finder.Find(context.Background(), driving.FindRequest{Dir: "/missing", Threshold: 50})

	assert.ErrorIs(t, err, domain.ErrNotADirectory)
	assert.Nil(t, f.index)
}

func TestFinder_Find_IndexExists(t *testing.T) {
	f := newFinderFixture(rawText("a", "x"))
	f.createErr = domain.ErrIndexExists

	_, err := f.finder.Find(context.Background(), driving.FindRequest{Dir: "/corpus", Threshold: 50})

	assert.ErrorIs(t, err, domain.ErrIndexExists)
	assert.True(t, IsFatal(err))
}

func TestFinder_Find_ClosesIndexOnFailure(t *testing.T) {
	f := newFinderFixture(rawText("a", "x"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.finder.Find(ctx, driving.FindRequest{Dir: "/corpus", Threshold: 50})

	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, f.index)
	assert.True(t, f.index.closed)
}

func TestFinder_Find_EmptyDirectory(t *testing.T) {
	f := newFinderFixture()

	report, err := f.finder.Find(context.Background(), driving.FindRequest{Dir: "/corpus", Threshold: 50})

	require.NoError(t, err)
	assert.True(t, report.IsEmpty())
	assert.Equal(t, 0, report.Documents)
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{domain.ErrInvalidThreshold, true},
		{domain.ErrNotADirectory, true},
		{domain.ErrIndexExists, true},
		{context.Canceled, true},
		{errors.New("transient"), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsFatal(tt.err), "%v", tt.err)
	}
}
