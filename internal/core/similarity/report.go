package similarity

import "github.com/custodia-labs/similar/internal/core/domain"

// Report groups the vertices of g by component and keeps groups of two or
// more as clusters. A file similar only to itself is not a cluster.
// Clusters come in ascending component id, members in ascending id.
func Report(g *Graph, comps Components, labelOf func(domain.DocumentID) string) []domain.Cluster {
	groups := make([][]domain.DocumentID, comps.Count)
	for v := domain.DocumentID(1); int(v) <= g.Order(); v++ {
		if id := comps.Component(v); id >= 0 {
			groups[id] = append(groups[id], v)
		}
	}

	var clusters []domain.Cluster
	for id, members := range groups {
		if len(members) < 2 {
			continue
		}
		docs := make([]domain.Document, len(members))
		for i, v := range members {
			docs[i] = domain.Document{ID: v, Label: labelOf(v)}
		}
		clusters = append(clusters, domain.Cluster{Component: id, Documents: docs})
	}
	return clusters
}
