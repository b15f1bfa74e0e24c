package memory

import (
	"context"
	"strings"
	"sync"
	"unicode"

	"github.com/custodia-labs/similar/internal/core/domain"
	"github.com/custodia-labs/similar/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.Index = (*Index)(nil)

type entry struct {
	doc   domain.Document
	words map[string]struct{}
}

// Index is an in-memory driven.Index. The relevance of B to A is the
// share of A's distinct words that also occur in B, as a percentage.
type Index struct {
	mu        sync.RWMutex
	entries   []entry
	committed int
	closed    bool
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{}
}

// Factory returns an IndexFactory handing out fresh in-memory indexes.
func Factory() driven.IndexFactory {
	return driven.IndexFactoryFunc(func(context.Context, string) (driven.Index, error) {
		return NewIndex(), nil
	})
}

// Add stores a document and assigns the next id.
func (x *Index) Add(_ context.Context, label, content string) (domain.DocumentID, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.closed {
		return 0, domain.ErrIndexClosed
	}

	id := domain.DocumentID(len(x.entries) + 1)
	x.entries = append(x.entries, entry{
		doc:   domain.Document{ID: id, Label: label},
		words: words(content),
	})
	return id, nil
}

// Commit makes every added document visible.
func (x *Index) Commit(context.Context) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.closed {
		return domain.ErrIndexClosed
	}
	x.committed = len(x.entries)
	return nil
}

// Documents returns the committed documents by id.
func (x *Index) Documents(context.Context) ([]domain.Document, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	if x.closed {
		return nil, domain.ErrIndexClosed
	}

	docs := make([]domain.Document, x.committed)
	for i := range docs {
		docs[i] = x.entries[i].doc
	}
	return docs, nil
}

// Find scores every committed document against id.
func (x *Index) Find(ctx context.Context, id domain.DocumentID, threshold int) ([]domain.Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	x.mu.RLock()
	defer x.mu.RUnlock()
	if x.closed {
		return nil, domain.ErrIndexClosed
	}
	if id < 1 || int(id) > x.committed {
		return nil, domain.ErrNotFound
	}

	query := x.entries[id-1].words
	if len(query) == 0 {
		return []domain.Match{}, nil
	}

	var matches []domain.Match
	for _, e := range x.entries[:x.committed] {
		shared := 0
		for w := range query {
			if _, ok := e.words[w]; ok {
				shared++
			}
		}
		if shared == 0 {
			continue
		}
		matches = append(matches, domain.Match{Document: e.doc.ID, Score: shared * 100 / len(query)})
	}
	return filter(matches, threshold), nil
}

// Close discards the index.
func (x *Index) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.closed = true
	x.entries = nil
	return nil
}

func words(content string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.FieldsFunc(strings.ToLower(content), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		set[w] = struct{}{}
	}
	return set
}
