package resolve

import "github.com/forgekit/forge/model"

// graph tracks "depends on" edges discovered during reference expansion.
// Edges are deduplicated so re-encountering the same reference from two
// different documents doesn't distort the in-degree count.
type graph struct {
	dependents map[model.AssetKey][]model.AssetKey
	edgeSeen   map[[2]model.AssetKey]struct{}
	indegree   map[model.AssetKey]int
}

func newGraph() *graph {
	return &graph{
		dependents: make(map[model.AssetKey][]model.AssetKey),
		edgeSeen:   make(map[[2]model.AssetKey]struct{}),
		indegree:   make(map[model.AssetKey]int),
	}
}

// addNode registers key with zero in-degree if it hasn't been seen yet; it
// is a no-op for a key already present.
func (g *graph) addNode(key model.AssetKey) {
	if _, ok := g.indegree[key]; !ok {
		g.indegree[key] = 0
	}
}

// addDependency records that item cannot be emitted before dependsOn.
func (g *graph) addDependency(item, dependsOn model.AssetKey) {
	g.addNode(item)
	g.addNode(dependsOn)

	edge := [2]model.AssetKey{dependsOn, item}
	if _, dup := g.edgeSeen[edge]; dup {
		return
	}
	g.edgeSeen[edge] = struct{}{}

	g.dependents[dependsOn] = append(g.dependents[dependsOn], item)
	g.indegree[item]++
}

// sort returns the nodes in order (keyed by the discovery order given in
// order) topologically: a dependency before every node that depends on it.
// It returns false if the graph contains a cycle, the same (list, ok)
// contract google-wuffs's cgen package uses for its struct dependency sort.
func (g *graph) sort(order []model.AssetKey) ([]model.AssetKey, bool) {
	indegree := make(map[model.AssetKey]int, len(g.indegree))
	for k, v := range g.indegree {
		indegree[k] = v
	}

	queue := make([]model.AssetKey, 0, len(order))
	for _, key := range order {
		if indegree[key] == 0 {
			queue = append(queue, key)
		}
	}

	sorted := make([]model.AssetKey, 0, len(order))
	for len(queue) > 0 {
		key := queue[0]
		queue = queue[1:]
		sorted = append(sorted, key)

		for _, dependent := range g.dependents[key] {
			indegree[dependent]--
			if indegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	return sorted, len(sorted) == len(order)
}
