package resolve

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forgekit/forge/model"
)

func TestGraph_SortOrdersDependenciesFirst(t *testing.T) {
	g := newGraph()
	a, b, c := model.AssetKey("a"), model.AssetKey("b"), model.AssetKey("c")

	// c depends on b, b depends on a.
	g.addDependency(b, a)
	g.addDependency(c, b)

	sorted, ok := g.sort([]model.AssetKey{a, b, c})
	require.True(t, ok)
	require.Equal(t, []model.AssetKey{a, b, c}, sorted)
}

func TestGraph_SortDetectsCycle(t *testing.T) {
	g := newGraph()
	a, b := model.AssetKey("a"), model.AssetKey("b")

	g.addDependency(a, b)
	g.addDependency(b, a)

	_, ok := g.sort([]model.AssetKey{a, b})
	require.False(t, ok)
}

func TestGraph_DuplicateEdgeDoesNotInflateIndegree(t *testing.T) {
	g := newGraph()
	a, b := model.AssetKey("a"), model.AssetKey("b")

	g.addDependency(b, a)
	g.addDependency(b, a)

	sorted, ok := g.sort([]model.AssetKey{a, b})
	require.True(t, ok)
	require.Equal(t, []model.AssetKey{a, b}, sorted)
}

func TestGraph_IndependentNodesKeepDiscoveryOrder(t *testing.T) {
	g := newGraph()
	a, b, c := model.AssetKey("a"), model.AssetKey("b"), model.AssetKey("c")
	g.addNode(a)
	g.addNode(b)
	g.addNode(c)

	sorted, ok := g.sort([]model.AssetKey{a, b, c})
	require.True(t, ok)
	require.Equal(t, []model.AssetKey{a, b, c}, sorted)
}
