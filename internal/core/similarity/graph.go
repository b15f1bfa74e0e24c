package similarity

import "github.com/custodia-labs/similar/internal/core/domain"

// Graph is a directed graph over document ids, stored as a vertex-indexed
// adjacency list. Vertex 0 is unused so ids index the slice directly.
// A Graph never holds a self-loop.
type Graph struct {
	adj   [][]domain.DocumentID
	edges int
}

// NewGraph returns a graph with vertices 1..n and no edges.
func NewGraph(n int) *Graph {
	if n < 0 {
		n = 0
	}
	return &Graph{adj: make([][]domain.DocumentID, n+1)}
}

// Order returns the number of vertices, excluding the unused vertex 0.
func (g *Graph) Order() int {
	return len(g.adj) - 1
}

// Size returns the number of edges.
func (g *Graph) Size() int {
	return g.edges
}

// Contains reports whether v is a vertex of g.
func (g *Graph) Contains(v domain.DocumentID) bool {
	return v >= 1 && int(v) < len(g.adj)
}

// AddEdge inserts from->to and reports whether it was added. Self-loops
// and edges touching unknown vertices are refused. Parallel edges are
// kept; multiplicity does not affect components.
func (g *Graph) AddEdge(from, to domain.DocumentID) bool {
	if from == to || !g.Contains(from) || !g.Contains(to) {
		return false
	}
	g.adj[from] = append(g.adj[from], to)
	g.edges++
	return true
}

// HasEdge reports whether from->to exists.
func (g *Graph) HasEdge(from, to domain.DocumentID) bool {
	if !g.Contains(from) {
		return false
	}
	for _, v := range g.adj[from] {
		if v == to {
			return true
		}
	}
	return false
}

// Successors returns the targets of from's edges in insertion order.
// The slice must not be modified.
func (g *Graph) Successors(from domain.DocumentID) []domain.DocumentID {
	if !g.Contains(from) {
		return nil
	}
	return g.adj[from]
}

// Edge is a directed edge.
type Edge struct {
	From, To domain.DocumentID
}

// Edges returns every edge, ordered by source then insertion order.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.edges)
	for from := 1; from < len(g.adj); from++ {
		for _, to := range g.adj[from] {
			edges = append(edges, Edge{From: domain.DocumentID(from), To: to})
		}
	}
	return edges
}
