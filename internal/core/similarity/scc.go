package similarity

import "github.com/custodia-labs/similar/internal/core/domain"

// Components is a partition of a graph's vertices into strongly-connected
// components.
type Components struct {
	// Of maps each vertex to its component id. Of[0] is -1.
	Of []int

	// Count is the number of components.
	Count int
}

// Component returns the component id of v, or -1 if v is not a vertex.
func (c Components) Component(v domain.DocumentID) int {
	if v < 1 || int(v) >= len(c.Of) {
		return -1
	}
	return c.Of[v]
}

// Members returns the vertices of each component, indexed by component id,
// each list in ascending vertex order.
func (c Components) Members() [][]domain.DocumentID {
	members := make([][]domain.DocumentID, c.Count)
	for v := 1; v < len(c.Of); v++ {
		if id := c.Of[v]; id >= 0 {
			members[id] = append(members[id], domain.DocumentID(v))
		}
	}
	return members
}

// tarjanFrame is one suspended visit of the explicit DFS stack.
type tarjanFrame struct {
	v    domain.DocumentID
	next int
}

// StronglyConnectedComponents partitions g with Tarjan's algorithm.
//
// The depth-first search keeps its own call stack, so long chains of
// similar files cannot exhaust the goroutine stack. Each vertex is pushed
// onto and popped from the component stack exactly once, giving O(V+E)
// time and O(V) extra space. Component ids are assigned in completion
// order starting at 0. Roots are visited in ascending id order and
// successors in insertion order, so the result is deterministic.
func StronglyConnectedComponents(g *Graph) Components {
	n := len(g.adj)
	comps := Components{Of: make([]int, n)}
	for i := range comps.Of {
		comps.Of[i] = -1
	}
	if n <= 1 {
		return comps
	}

	// index holds 1-based discovery times; 0 means unvisited.
	index := make([]int, n)
	low := make([]int, n)
	onStack := make([]bool, n)
	stack := make([]domain.DocumentID, 0, n)
	var calls []tarjanFrame
	counter := 0

	discover := func(v domain.DocumentID) {
		counter++
		index[v] = counter
		low[v] = counter
		stack = append(stack, v)
		onStack[v] = true
		calls = append(calls, tarjanFrame{v: v})
	}

	for root := domain.DocumentID(1); int(root) < n; root++ {
		if index[root] != 0 {
			continue
		}
		discover(root)

		for len(calls) > 0 {
			top := &calls[len(calls)-1]
			v := top.v

			if succ := g.adj[v]; top.next < len(succ) {
				w := succ[top.next]
				top.next++
				if index[w] == 0 {
					discover(w)
				} else if onStack[w] && index[w] < low[v] {
					low[v] = index[w]
				}
				continue
			}

			if low[v] == index[v] {
				for {
					w := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[w] = false
					comps.Of[w] = comps.Count
					if w == v {
						break
					}
				}
				comps.Count++
			}

			calls = calls[:len(calls)-1]
			if len(calls) > 0 {
				if parent := calls[len(calls)-1].v; low[v] < low[parent] {
					low[parent] = low[v]
				}
			}
		}
	}

	return comps
}
