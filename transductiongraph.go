package g2p

import "sort"

// TransductionGraph is the multi-step alignment produced by a
// CompositeTransducer: an ordered list of tiers where tier k's
// OutputString equals tier k+1's InputString.
type TransductionGraph struct {
	Tiers []TransductionTier
}

// InputString is tier[0]'s InputString, or "" for an empty graph.
func (g TransductionGraph) InputString() string {
	if len(g.Tiers) == 0 {
		return ""
	}
	return g.Tiers[0].InputString
}

// OutputString is the last tier's OutputString, or "" for an empty graph.
func (g TransductionGraph) OutputString() string {
	if len(g.Tiers) == 0 {
		return ""
	}
	return g.Tiers[len(g.Tiers)-1].OutputString
}

// Compose folds ComposeEdges left to right across every tier,
// producing the single edge set from the original input to the final
// output (spec.md §4.5). It is associative: composing tiers
// (1,2),3 or 1,(2,3) yields the same canonicalized result, since
// ComposeEdges itself only depends on adjacent edge sets.
func (g TransductionGraph) Compose() []Edge {
	if len(g.Tiers) == 0 {
		return nil
	}
	acc := g.Tiers[0].Edges
	for _, t := range g.Tiers[1:] {
		acc = ComposeEdges(acc, t.Edges)
	}
	return canonicalizeEdges(acc)
}

// ComposedTier collapses the whole graph into a single tier carrying
// the original input, the final output, and the composed edge set —
// the "single-step view" spec.md §4.5 describes as the pipeline's
// contract with downstream consumers.
func (g TransductionGraph) ComposedTier() TransductionTier {
	return TransductionTier{
		InputString:  g.InputString(),
		OutputString: g.OutputString(),
		Edges:        g.Compose(),
	}
}

// ComposeEdges computes E1∘E2 = {(a,c) | ∃b. (a,b)∈E1 ∧ (b,c)∈E2},
// propagating NullIndex through deletions (an E1 edge with Out==null
// stays a deletion in the composed set) and insertions (an E2 edge
// with In==null stays an insertion), per spec.md §4.5.
func ComposeEdges(e1, e2 []Edge) []Edge {
	byIn2 := make(map[int][]Edge, len(e2))
	for _, e := range e2 {
		if e.In == NullIndex {
			continue
		}
		byIn2[e.In] = append(byIn2[e.In], e)
	}

	out := make([]Edge, 0, len(e1)+len(e2))
	for _, a := range e1 {
		if a.Out == NullIndex {
			out = append(out, Edge{In: a.In, Out: NullIndex})
			continue
		}
		matches := byIn2[a.Out]
		if len(matches) == 0 {
			out = append(out, Edge{In: a.In, Out: NullIndex})
			continue
		}
		for _, b := range matches {
			out = append(out, Edge{In: a.In, Out: b.Out})
		}
	}
	for _, b := range e2 {
		if b.In == NullIndex {
			out = append(out, Edge{In: NullIndex, Out: b.Out})
		}
	}
	return canonicalizeEdges(out)
}

// canonicalizeEdges sorts edges lexicographically by (In, Out) and
// drops duplicates, the tie-break rule spec.md §4.5 mandates for
// composition.
func canonicalizeEdges(edges []Edge) []Edge {
	if len(edges) == 0 {
		return edges
	}
	sort.Slice(edges, func(a, b int) bool {
		if edges[a].In != edges[b].In {
			return edges[a].In < edges[b].In
		}
		return edges[a].Out < edges[b].Out
	})
	out := edges[:1]
	for _, e := range edges[1:] {
		if e != out[len(out)-1] {
			out = append(out, e)
		}
	}
	return out
}
