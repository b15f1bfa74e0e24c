package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/similar/internal/adapters/driven/relevance/memory"
	"github.com/custodia-labs/similar/internal/core/domain"
	"github.com/custodia-labs/similar/internal/logger"
)

func TestIndexService_IndexDirectory(t *testing.T) {
	connector := &mockConnector{
		root: "/corpus",
		docs: []domain.RawDocument{
			rawText("/corpus/a.txt", "apples and pears"),
			rawText("/corpus/b.txt", "apples and plums"),
		},
	}
	index := memory.NewIndex()
	var updates []domain.Progress

	stats, err := NewIndexService(textRegistry()).IndexDirectory(context.Background(), connector, index,
		func(p domain.Progress) { updates = append(updates, p) })

	require.NoError(t, err)
	assert.Equal(t, 2, stats.Indexed)
	assert.Equal(t, 0, stats.Skipped)

	docs, err := index.Documents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Document{
		{ID: 1, Label: "/corpus/a.txt"},
		{ID: 2, Label: "/corpus/b.txt"},
	}, docs)

	assert.Equal(t, []domain.Progress{
		{Phase: domain.PhaseIndexing, Done: 1},
		{Phase: domain.PhaseIndexing, Done: 2},
		{Phase: domain.PhaseIndexed, Done: 2},
	}, updates)
}

func TestIndexService_SkipsBadFiles(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(nil) })

	connector := &mockConnector{
		docs: []domain.RawDocument{
			rawText("good.txt", "fine"),
			rawText("broken.txt", "!garbled"),
		},
		errs: []error{errors.New("open locked.txt: permission denied")},
	}
	index := memory.NewIndex()

	stats, err := NewIndexService(textRegistry()).IndexDirectory(context.Background(), connector, index, nil)

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Indexed)
	assert.Equal(t, 2, stats.Skipped)
	assert.Contains(t, buf.String(), "skipping broken.txt")
	assert.Contains(t, buf.String(), "permission denied")
}

func TestIndexService_EmptyDirectory(t *testing.T) {
	index := memory.NewIndex()

	stats, err := NewIndexService(textRegistry()).IndexDirectory(context.Background(), &mockConnector{}, index, nil)

	require.NoError(t, err)
	assert.Equal(t, 0, stats.Indexed)
	docs, err := index.Documents(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestIndexService_CommitFailure(t *testing.T) {
	index := &trackingIndex{Index: memory.NewIndex(), commitErr: errors.New("disk full")}
	connector := &mockConnector{docs: []domain.RawDocument{rawText("a", "x")}}

	_, err := NewIndexService(textRegistry()).IndexDirectory(context.Background(), connector, index, nil)

	assert.ErrorContains(t, err, "disk full")
}

func TestIndexService_ClosedIndex(t *testing.T) {
	index := memory.NewIndex()
	require.NoError(t, index.Close())
	connector := &mockConnector{docs: []domain.RawDocument{rawText("a", "x")}}

	_, err := NewIndexService(textRegistry()).IndexDirectory(context.Background(), connector, index, nil)

	assert.ErrorIs(t, err, domain.ErrIndexClosed)
}

func TestIndexService_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	connector := &mockConnector{docs: []domain.RawDocument{rawText("a", "x"), rawText("b", "y")}}

	_, err := NewIndexService(textRegistry()).IndexDirectory(ctx, connector, memory.NewIndex(), nil)

	assert.ErrorIs(t, err, context.Canceled)
}
