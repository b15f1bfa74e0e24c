package similarity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/similar/internal/core/domain"
)

// cluster runs the whole pipeline against a provider.
func cluster(t *testing.T, n int, provider *scoreTable, threshold int) []domain.Cluster {
	t.Helper()
	g, _, err := Build(context.Background(), corpus(n), provider, threshold)
	require.NoError(t, err)
	return Report(g, StronglyConnectedComponents(g), labelFor)
}

func TestReport_MutualPairWithIsolatedDocument(t *testing.T) {
	provider := newScoreTable().
		set(1, match(2, 90)).
		set(2, match(1, 90))

	clusters := cluster(t, 3, provider, 80)

	require.Len(t, clusters, 1)
	assert.Equal(t, []string{"doc1", "doc2"}, clusters[0].Labels())
}

func TestReport_OneSidedLinkIsNotACluster(t *testing.T) {
	provider := newScoreTable().
		set(1, match(2, 95)).
		set(2, match(1, 10))

	g, _, err := Build(context.Background(), corpus(2), provider, 50)
	require.NoError(t, err)

	assert.False(t, g.HasEdge(2, 1))
	assert.Empty(t, Report(g, StronglyConnectedComponents(g), labelFor))
}

func TestReport_EmptyCorpus(t *testing.T) {
	clusters := cluster(t, 0, newScoreTable(), 50)

	assert.Empty(t, clusters)
}

func TestReport_SelfMatchOnly(t *testing.T) {
	provider := newScoreTable().set(1, match(1, 100))

	g, _, err := Build(context.Background(), corpus(1), provider, 50)
	require.NoError(t, err)
	comps := StronglyConnectedComponents(g)

	assert.Equal(t, 1, comps.Count)
	assert.Empty(t, Report(g, comps, labelFor))
}

func TestReport_OrdersClustersAndMembers(t *testing.T) {
	// Components complete in the order {4,5} then {1,3}.
	g := graphFromEdges(5,
		[2]int{1, 4}, [2]int{4, 5}, [2]int{5, 4},
		[2]int{1, 3}, [2]int{3, 1},
	)
	comps := StronglyConnectedComponents(g)

	clusters := Report(g, comps, labelFor)

	require.Len(t, clusters, 2)
	assert.Less(t, clusters[0].Component, clusters[1].Component)
	assert.Equal(t, []string{"doc4", "doc5"}, clusters[0].Labels())
	assert.Equal(t, []string{"doc1", "doc3"}, clusters[1].Labels())
}

func TestReport_ClustersAreMutuallyReachable(t *testing.T) {
	provider := newScoreTable().
		set(1, match(2, 70)).
		set(2, match(3, 70)).
		set(3, match(1, 70), match(4, 70)).
		set(4, match(5, 90)).
		set(5, match(4, 90))

	g, _, err := Build(context.Background(), corpus(5), provider, 50)
	require.NoError(t, err)
	clusters := Report(g, StronglyConnectedComponents(g), labelFor)

	require.Len(t, clusters, 2)
	for _, c := range clusters {
		assert.GreaterOrEqual(t, len(c.Documents), 2)
		for _, a := range c.Documents {
			reach := reachable(g, a.ID)
			for _, b := range c.Documents {
				assert.True(t, reach[b.ID], "%s cannot reach %s", a.Label, b.Label)
			}
		}
	}
}
