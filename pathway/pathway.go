// Package pathway implements pathway synthesis (§4.7, `form_pathways`):
// the union of every test's emitted edges is treated as one undirected
// graph, and each connected component becomes a "pathway" label. This is
// a structural grouping, not a biological pathway annotation.
package pathway

import (
	"sort"

	"github.com/macaw-go/macaw/model"
	"github.com/macaw-go/macaw/verdict"
)

// Result is pathway synthesis's output: a pathway label per reaction
// (0 for reactions absent from the union graph) and the combined,
// deduplicated edge list it labeled from (§4.7, §6).
type Result struct {
	Labels map[string]int
	Edges  verdict.EdgeSet
}

// FormPathways builds the union graph from edgeSets (one per test that
// emits edges) and labels its connected components. Every reaction ID in
// m receives an entry in Labels, defaulting to 0 when it never appears in
// any edge (§4.7 "Component labeling").
func FormPathways(m *model.Model, edgeSets ...verdict.EdgeSet) *Result {
	union := verdict.NewEdgeSet()
	for _, es := range edgeSets {
		union.Union(es)
	}

	adj := buildAdjacency(union)

	labels := make(map[string]int, len(m.Reactions()))
	for _, r := range m.Reactions() {
		labels[r.ID] = 0
	}

	nodes := make([]verdict.Node, 0, len(adj))
	for n := range adj {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Kind != nodes[j].Kind {
			return nodes[i].Kind < nodes[j].Kind
		}

		return nodes[i].ID < nodes[j].ID
	})

	visited := make(map[verdict.Node]bool, len(adj))
	label := 0
	for _, start := range nodes {
		if visited[start] {
			continue
		}
		label++

		queue := []verdict.Node{start}
		visited[start] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			if cur.Kind == verdict.NodeReaction {
				labels[cur.ID] = label
			}
			for _, next := range adj[cur] {
				if !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}
	}

	return &Result{Labels: labels, Edges: union}
}

// buildAdjacency turns an EdgeSet into an undirected adjacency list over
// Nodes (§4.7 step 1-2: nodes are every ID mentioned in any edge).
func buildAdjacency(edges verdict.EdgeSet) map[verdict.Node][]verdict.Node {
	adj := make(map[verdict.Node][]verdict.Node)
	for e := range edges {
		adj[e.A] = append(adj[e.A], e.B)
		adj[e.B] = append(adj[e.B], e.A)
	}

	return adj
}
