package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/similar/internal/core/domain"
	"github.com/custodia-labs/similar/internal/core/ports/driven"
)

// Ensure Table implements the interface.
var _ driven.RelevanceQuery = (*Table)(nil)

// Table is a RelevanceQuery answering from a fixed score table.
// Raw scores are stored; Find applies the threshold and ordering.
type Table struct {
	mu     sync.RWMutex
	scores map[domain.DocumentID][]domain.Match
	errs   map[domain.DocumentID]error
	calls  int
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		scores: make(map[domain.DocumentID][]domain.Match),
		errs:   make(map[domain.DocumentID]error),
	}
}

// Set records the score of to relative to from, replacing any earlier score.
func (t *Table) Set(from, to domain.DocumentID, score int) *Table {
	t.mu.Lock()
	defer t.mu.Unlock()

	matches := t.scores[from]
	for i := range matches {
		if matches[i].Document == to {
			matches[i].Score = score
			return t
		}
	}
	t.scores[from] = append(matches, domain.Match{Document: to, Score: score})
	return t
}

// Link sets a symmetric score between a and b.
func (t *Table) Link(a, b domain.DocumentID, score int) *Table {
	return t.Set(a, b, score).Set(b, a, score)
}

// Fail makes every query for id return err.
func (t *Table) Fail(id domain.DocumentID, err error) *Table {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.errs[id] = err
	return t
}

// Calls returns the number of Find calls served.
func (t *Table) Calls() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.calls
}

// Find returns the stored matches of id scoring at least threshold,
// highest score first, ties by id.
func (t *Table) Find(ctx context.Context, id domain.DocumentID, threshold int) ([]domain.Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.mu.Lock()
	t.calls++
	err := t.errs[id]
	stored := t.scores[id]
	t.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return filter(stored, threshold), nil
}

// filter keeps matches at or above threshold in result order.
func filter(matches []domain.Match, threshold int) []domain.Match {
	out := make([]domain.Match, 0, len(matches))
	for _, m := range matches {
		if m.Score >= threshold {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Document < out[j].Document
	})
	return out
}
