package g2p

import "sort"

// TransductionTier is one hop's alignment: the strings at the tier's
// boundary plus the many-to-many edge set between them. Edges are
// kept as a flat, sorted slice (spec.md §9's redesign away from the
// source's nested mutable index maps) rather than a map keyed by
// index, so reductions can be derived on demand instead of maintained
// incrementally.
type TransductionTier struct {
	InputString  string
	OutputString string
	Edges        []Edge
}

// NewTier stores a copy of edges sorted by (i, j), per spec.md §3.
// It does not check that indices are in range.
func NewTier(input, output string, edges []Edge) TransductionTier {
	cp := make([]Edge, len(edges))
	copy(cp, edges)
	sortEdges(cp)
	return TransductionTier{InputString: input, OutputString: output, Edges: cp}
}

// InputLen and OutputLen report the tier's strings length in runes,
// the unit every index in Edges is expressed in.
func (t TransductionTier) InputLen() int  { return runeLen(t.InputString) }
func (t TransductionTier) OutputLen() int { return runeLen(t.OutputString) }

// EdgeComplete checks spec.md §8's edge-completeness invariant: every
// non-deleted input index and every non-inserted output index
// appears in at least one edge.
func (t TransductionTier) EdgeComplete() bool {
	seenIn := make(map[int]bool, t.InputLen())
	seenOut := make(map[int]bool, t.OutputLen())
	for _, e := range t.Edges {
		if e.In != NullIndex {
			seenIn[e.In] = true
		}
		if e.Out != NullIndex {
			seenOut[e.Out] = true
		}
	}
	for i := 0; i < t.InputLen(); i++ {
		if !seenIn[i] {
			return false
		}
	}
	for j := 0; j < t.OutputLen(); j++ {
		if !seenOut[j] {
			return false
		}
	}
	return true
}

// ReducedEdge is one row of a Reduce()'d tier: input index i paired
// with the largest output index any edge aligns it to.
type ReducedEdge struct {
	In  int
	Out int
}

// Reduce collapses Edges to one representative row per unique,
// non-null input index, keeping the maximum aligned output index —
// the "reduced alignment" of the GLOSSARY, suitable for display or
// for consumers that need a one-to-one correspondence. The result is
// sorted by In and is non-decreasing in Out too whenever the tier was
// produced by a single left-to-right Transducer pass (spec.md §8's
// monotonicity-after-reduction property) with no rule that reorders
// characters through explicit {N} markers; such a rule, e.g.
// e{1}s{2} -> s{2}e{1}, yields decreasing Out values.
func (t TransductionTier) Reduce() []ReducedEdge {
	best := make(map[int]int)
	order := make([]int, 0)
	for _, e := range t.Edges {
		if e.In == NullIndex {
			continue
		}
		out := e.Out
		if cur, ok := best[e.In]; !ok {
			best[e.In] = out
			order = append(order, e.In)
		} else if out > cur {
			best[e.In] = out
		}
	}
	sort.Ints(order)
	reduced := make([]ReducedEdge, len(order))
	for i, in := range order {
		reduced[i] = ReducedEdge{In: in, Out: best[in]}
	}
	return reduced
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
