package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/similar/internal/core/domain"
)

func TestNewGraph(t *testing.T) {
	t.Run("sizes vertex set", func(t *testing.T) {
		g := NewGraph(3)

		assert.Equal(t, 3, g.Order())
		assert.Equal(t, 0, g.Size())
		assert.True(t, g.Contains(1))
		assert.True(t, g.Contains(3))
		assert.False(t, g.Contains(0))
		assert.False(t, g.Contains(4))
	})

	t.Run("negative size is empty", func(t *testing.T) {
		g := NewGraph(-2)

		assert.Equal(t, 0, g.Order())
	})
}

func TestGraph_AddEdge(t *testing.T) {
	g := NewGraph(3)

	assert.True(t, g.AddEdge(1, 2))
	assert.True(t, g.HasEdge(1, 2))
	assert.False(t, g.HasEdge(2, 1))
	assert.Equal(t, 1, g.Size())

	t.Run("refuses self-loop", func(t *testing.T) {
		assert.False(t, g.AddEdge(3, 3))
		assert.False(t, g.HasEdge(3, 3))
	})

	t.Run("refuses unknown vertices", func(t *testing.T) {
		assert.False(t, g.AddEdge(1, 9))
		assert.False(t, g.AddEdge(0, 1))
	})

	assert.Equal(t, 1, g.Size())
}

func TestGraph_Edges(t *testing.T) {
	g := graphFromEdges(3, [2]int{2, 1}, [2]int{1, 3}, [2]int{1, 2})

	assert.Equal(t, []Edge{{1, 3}, {1, 2}, {2, 1}}, g.Edges())
	assert.Equal(t, []domain.DocumentID{3, 2}, g.Successors(1))
	assert.Nil(t, g.Successors(7))
}
