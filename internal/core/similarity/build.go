package similarity

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/similar/internal/core/domain"
	"github.com/custodia-labs/similar/internal/core/ports/driven"
)

// ErrUnknownDocument is recorded when a provider returns a match outside the corpus.
var ErrUnknownDocument = errors.New("match refers to unknown document")

type buildConfig struct {
	workers  int
	progress domain.ProgressFunc
}

// BuildOption configures Build.
type BuildOption func(*buildConfig)

// WithWorkers runs up to n relevance queries concurrently.
// Values below 2 keep the sequential path.
func WithWorkers(n int) BuildOption {
	return func(c *buildConfig) {
		c.workers = n
	}
}

// WithProgress reports one PhaseQuerying update per finished query.
// Calls are serialised.
func WithProgress(fn domain.ProgressFunc) BuildOption {
	return func(c *buildConfig) {
		c.progress = fn
	}
}

// Build queries provider once per document and returns the similarity graph.
//
// Every match other than the document itself becomes an edge; scores are
// not re-filtered since the provider already applied threshold. A failing
// query is recorded in the returned failures and the document is left
// without outgoing edges. The returned error is non-nil only when ctx is
// done.
//
// Edges are inserted in ascending document order whatever the number of
// workers, so the graph does not depend on query scheduling.
func Build(
	ctx context.Context,
	docs []domain.Document,
	provider driven.RelevanceQuery,
	threshold int,
	opts ...BuildOption,
) (*Graph, []domain.QueryFailure, error) {
	cfg := buildConfig{workers: 1}
	for _, opt := range opts {
		opt(&cfg)
	}

	ordered := make([]domain.Document, len(docs))
	copy(ordered, docs)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	results := make([][]domain.Match, len(ordered))
	errs := make([]error, len(ordered))

	report := newProgressReporter(cfg.progress, len(ordered))

	if cfg.workers < 2 {
		for i := range ordered {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
			results[i], errs[i] = provider.Find(ctx, ordered[i].ID, threshold)
			report.step()
		}
	} else {
		eg, egCtx := errgroup.WithContext(ctx)
		eg.SetLimit(cfg.workers)
		for i := range ordered {
			eg.Go(func() error {
				if err := egCtx.Err(); err != nil {
					return err
				}
				results[i], errs[i] = provider.Find(egCtx, ordered[i].ID, threshold)
				report.step()
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	g := NewGraph(vertexCount(ordered))
	var failures []domain.QueryFailure
	for i, doc := range ordered {
		if errs[i] != nil {
			failures = append(failures, domain.QueryFailure{Document: doc, Err: errs[i]})
			continue
		}
		var unknown []domain.DocumentID
		for _, m := range results[i] {
			if m.Document == doc.ID {
				continue
			}
			if !g.AddEdge(doc.ID, m.Document) {
				unknown = append(unknown, m.Document)
			}
		}
		if len(unknown) > 0 {
			failures = append(failures, domain.QueryFailure{
				Document: doc,
				Err:      fmt.Errorf("%w: %v", ErrUnknownDocument, unknown),
			})
		}
	}

	return g, failures, nil
}

// vertexCount sizes the graph to hold every document id.
func vertexCount(docs []domain.Document) int {
	n := len(docs)
	for _, d := range docs {
		if int(d.ID) > n {
			n = int(d.ID)
		}
	}
	return n
}

// progressReporter serialises progress callbacks from query workers.
type progressReporter struct {
	mu    sync.Mutex
	fn    domain.ProgressFunc
	done  int
	total int
}

func newProgressReporter(fn domain.ProgressFunc, total int) *progressReporter {
	return &progressReporter{fn: fn, total: total}
}

func (r *progressReporter) step() {
	if r.fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.done++
	r.fn(domain.Progress{Phase: domain.PhaseQuerying, Done: r.done, Total: r.total})
}
