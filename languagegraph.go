package g2p

import "sort"

// LanguageGraph is a directed graph of inventory names; an edge u->v
// means a Mapping exists that converts u's notation into v's.
// Grounded on apis.go's GetSupportedEngines (the teacher's one place
// that enumerated available engines as a flat lookup) generalized into
// a real graph with path queries, since a single mapping registry can
// chain through several intermediate inventories.
type LanguageGraph struct {
	edges map[string]map[string]bool
	nodes map[string]bool
}

// NewLanguageGraph returns an empty graph.
func NewLanguageGraph() *LanguageGraph {
	return &LanguageGraph{
		edges: make(map[string]map[string]bool),
		nodes: make(map[string]bool),
	}
}

// AddEdge records that a mapping from u to v exists. At most one
// direct mapping per (u, v) is representable; calling AddEdge again
// for the same pair is a no-op.
func (g *LanguageGraph) AddEdge(u, v string) {
	g.nodes[u] = true
	g.nodes[v] = true
	if g.edges[u] == nil {
		g.edges[u] = make(map[string]bool)
	}
	g.edges[u][v] = true
}

// HasNode reports whether name is a known inventory.
func (g *LanguageGraph) HasNode(name string) bool { return g.nodes[name] }

// Nodes returns every inventory name, sorted.
func (g *LanguageGraph) Nodes() []string {
	out := make([]string, 0, len(g.nodes))
	for n := range g.nodes {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Descendants returns every node reachable from u, sorted, not
// including u itself.
func (g *LanguageGraph) Descendants(u string) ([]string, error) {
	if !g.nodes[u] {
		return nil, invalidLanguageCode(u)
	}
	seen := map[string]bool{u: true}
	queue := []string{u}
	var out []string
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		next := sortedKeys(g.edges[cur])
		for _, v := range next {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
				queue = append(queue, v)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

// Ancestors returns every node that can reach v, sorted, not including
// v itself.
func (g *LanguageGraph) Ancestors(v string) ([]string, error) {
	if !g.nodes[v] {
		return nil, invalidLanguageCode(v)
	}
	reverse := make(map[string]map[string]bool)
	for u, vs := range g.edges {
		for w := range vs {
			if reverse[w] == nil {
				reverse[w] = make(map[string]bool)
			}
			reverse[w][u] = true
		}
	}
	seen := map[string]bool{v: true}
	queue := []string{v}
	var out []string
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		prev := sortedKeys(reverse[cur])
		for _, u := range prev {
			if !seen[u] {
				seen[u] = true
				out = append(out, u)
				queue = append(queue, u)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

// ShortestPath breadth-first searches from u to v and returns the node
// sequence [u, ..., v]. Among equal-length paths it prefers the
// lexicographically smallest node sequence, by always visiting a
// node's out-edges in sorted order (the first BFS path found to any
// node is therefore also the lexicographically smallest one of
// minimum length).
func (g *LanguageGraph) ShortestPath(u, v string) ([]string, error) {
	if !g.nodes[u] {
		return nil, invalidLanguageCode(u)
	}
	if !g.nodes[v] {
		return nil, invalidLanguageCode(v)
	}
	if u == v {
		return []string{u}, nil
	}

	prev := map[string]string{u: ""}
	queue := []string{u}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == v {
			return reconstructPath(prev, u, v), nil
		}
		for _, next := range sortedKeys(g.edges[cur]) {
			if _, visited := prev[next]; !visited {
				prev[next] = cur
				queue = append(queue, next)
			}
		}
	}
	return nil, &NoPathError{From: u, To: v}
}

func reconstructPath(prev map[string]string, u, v string) []string {
	var path []string
	for n := v; ; n = prev[n] {
		path = append([]string{n}, path...)
		if n == u {
			break
		}
	}
	return path
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func invalidLanguageCode(code string) error {
	return &InvalidLanguageCodeError{Code: code}
}
