package similarity

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/custodia-labs/similar/internal/core/domain"
)

// scoreTable is a fake relevance provider holding raw scores.
// Find applies the threshold and ordering contract of driven.RelevanceQuery.
type scoreTable struct {
	mu     sync.Mutex
	scores map[domain.DocumentID][]domain.Match
	errs   map[domain.DocumentID]error
	calls  []domain.DocumentID
}

func newScoreTable() *scoreTable {
	return &scoreTable{
		scores: make(map[domain.DocumentID][]domain.Match),
		errs:   make(map[domain.DocumentID]error),
	}
}

func (s *scoreTable) set(from domain.DocumentID, matches ...domain.Match) *scoreTable {
	s.scores[from] = matches
	return s
}

func (s *scoreTable) fail(id domain.DocumentID, err error) *scoreTable {
	s.errs[id] = err
	return s
}

func (s *scoreTable) Find(_ context.Context, id domain.DocumentID, threshold int) ([]domain.Match, error) {
	s.mu.Lock()
	s.calls = append(s.calls, id)
	s.mu.Unlock()

	if err := s.errs[id]; err != nil {
		return nil, err
	}
	var out []domain.Match
	for _, m := range s.scores[id] {
		if m.Score >= threshold {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

func match(id domain.DocumentID, score int) domain.Match {
	return domain.Match{Document: id, Score: score}
}

func corpus(n int) []domain.Document {
	docs := make([]domain.Document, n)
	for i := range docs {
		id := domain.DocumentID(i + 1)
		docs[i] = domain.Document{ID: id, Label: labelFor(id)}
	}
	return docs
}

func labelFor(id domain.DocumentID) string {
	return "doc" + strconv.Itoa(int(id))
}

// graphFromEdges builds a graph with n vertices and the given edges.
func graphFromEdges(n int, edges ...[2]int) *Graph {
	g := NewGraph(n)
	for _, e := range edges {
		g.AddEdge(domain.DocumentID(e[0]), domain.DocumentID(e[1]))
	}
	return g
}

// reachable returns the set of vertices reachable from start.
func reachable(g *Graph, start domain.DocumentID) map[domain.DocumentID]bool {
	seen := map[domain.DocumentID]bool{start: true}
	queue := []domain.DocumentID{start}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, w := range g.Successors(v) {
			if !seen[w] {
				seen[w] = true
				queue = append(queue, w)
			}
		}
	}
	return seen
}
