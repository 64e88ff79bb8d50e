package g2p

import (
	"sort"
	"unicode/utf8"
)

// NullIndex marks the absent side of an epenthesis or deletion edge.
const NullIndex = -1

// Edge is one alignment pair: input character index In aligns with
// output character index Out. Either side may be NullIndex (an
// inserted or deleted character has no counterpart).
type Edge struct {
	In  int
	Out int
}

func sortEdges(edges []Edge) {
	sort.Slice(edges, func(a, b int) bool {
		if edges[a].In != edges[b].In {
			return edges[a].In < edges[b].In
		}
		return edges[a].Out < edges[b].Out
	})
}

// segOffset is an indexSegment resolved to a rune offset/length
// relative to the start of its rule field's matched text.
type segOffset struct {
	Label  int
	Offset int
	Length int
}

func segmentOffsets(segments []indexSegment) []segOffset {
	out := make([]segOffset, 0, len(segments))
	offset := 0
	for _, s := range segments {
		l := utf8.RuneCountInString(s.Text)
		out = append(out, segOffset{Label: s.Label, Offset: offset, Length: l})
		offset += l
	}
	return out
}

// AlignRule produces the many-to-many edge set for one application of
// rule r, matched at input rune position p (consuming m runes) and
// emitting output starting at rune position q (producing n runes).
// m and n are the rune lengths of the rule's stripped input/output
// templates; the caller is responsible for locating p and q in the
// surrounding strings. Implements spec.md §4.3.
func AlignRule(r *Rule, p, q, m, n int) []Edge {
	if hasLabels(r.inSegments) && hasLabels(r.outSegments) {
		return alignLabeled(r, p, q)
	}
	return alignBasic(p, q, m, n)
}

func hasLabels(segs []indexSegment) bool {
	for _, s := range segs {
		if s.Label != 0 {
			return true
		}
	}
	return false
}

// alignBasic implements the four unlabeled cases from spec.md §4.3.
func alignBasic(p, q, m, n int) []Edge {
	switch {
	case m <= 1 && n <= 1:
		switch {
		case m == 0 && n == 0:
			return nil
		case m == 0:
			return []Edge{{In: NullIndex, Out: q}}
		case n == 0:
			return []Edge{{In: p, Out: NullIndex}}
		default:
			return []Edge{{In: p, Out: q}}
		}
	case m <= 1 && n > 1:
		edges := make([]Edge, 0, n)
		for k := 0; k < n; k++ {
			edges = append(edges, Edge{In: p, Out: q + k})
		}
		return edges
	case m > 1 && n <= 1:
		edges := make([]Edge, 0, m)
		for k := 0; k < m; k++ {
			edges = append(edges, Edge{In: p + k, Out: q})
		}
		return edges
	default: // m > 1 && n > 1, no explicit indices: positional with overflow to last
		inIdx := make([]int, m)
		for k := range inIdx {
			inIdx[k] = p + k
		}
		outIdx := make([]int, n)
		for k := range outIdx {
			outIdx[k] = q + k
		}
		return pairPositional(inIdx, outIdx)
	}
}

// pairPositional pairs inIdx[k] with outIdx[k] for k < min(len), then
// attaches any surplus on the longer side to the last element of the
// shorter side, preserving surjectivity in both directions (spec.md
// §4.3's default many<->many rule).
func pairPositional(inIdx, outIdx []int) []Edge {
	m, n := len(inIdx), len(outIdx)
	if m == 0 && n == 0 {
		return nil
	}
	if m == 0 {
		edges := make([]Edge, 0, n)
		for _, j := range outIdx {
			edges = append(edges, Edge{In: NullIndex, Out: j})
		}
		return edges
	}
	if n == 0 {
		edges := make([]Edge, 0, m)
		for _, i := range inIdx {
			edges = append(edges, Edge{In: i, Out: NullIndex})
		}
		return edges
	}
	k := m
	if n < k {
		k = n
	}
	edges := make([]Edge, 0, m+n)
	for i := 0; i < k; i++ {
		edges = append(edges, Edge{In: inIdx[i], Out: outIdx[i]})
	}
	if m > n {
		last := outIdx[n-1]
		for i := n; i < m; i++ {
			edges = append(edges, Edge{In: inIdx[i], Out: last})
		}
	} else if n > m {
		last := inIdx[m-1]
		for i := m; i < n; i++ {
			edges = append(edges, Edge{In: last, Out: outIdx[i]})
		}
	}
	return edges
}

// alignLabeled implements the explicit-index branch of spec.md §4.3:
// partition both sides by marker value, align each partition with the
// basic rules at partition-relative offsets, and pair any unlabeled
// (marker-less) runs on each side positionally among themselves.
// Edges are returned sorted by marker value first, then by position.
func alignLabeled(r *Rule, p, q int) []Edge {
	inOffsets := segmentOffsets(r.inSegments)
	outOffsets := segmentOffsets(r.outSegments)

	inByLabel := map[int][]segOffset{}
	outByLabel := map[int][]segOffset{}
	labelSet := map[int]struct{}{}
	for _, so := range inOffsets {
		inByLabel[so.Label] = append(inByLabel[so.Label], so)
		labelSet[so.Label] = struct{}{}
	}
	for _, so := range outOffsets {
		outByLabel[so.Label] = append(outByLabel[so.Label], so)
		labelSet[so.Label] = struct{}{}
	}
	labels := make([]int, 0, len(labelSet))
	for l := range labelSet {
		labels = append(labels, l)
	}
	sort.Ints(labels)

	var edges []Edge
	for _, label := range labels {
		if label == 0 {
			edges = append(edges, alignUnlabeledRuns(inByLabel[0], outByLabel[0], p, q)...)
			continue
		}
		inSegs := inByLabel[label]
		outSegs := outByLabel[label]
		inStart, inLen := partitionSpan(inSegs, p)
		outStart, outLen := partitionSpan(outSegs, q)
		group := alignBasic(inStart, outStart, inLen, outLen)
		sortEdges(group)
		edges = append(edges, group...)
	}
	return edges
}

func partitionSpan(segs []segOffset, base int) (start, length int) {
	if len(segs) == 0 {
		return base, 0
	}
	start = base + segs[0].Offset
	for _, s := range segs {
		length += s.Length
	}
	return start, length
}

func alignUnlabeledRuns(inSegs, outSegs []segOffset, p, q int) []Edge {
	inIdx := flattenOffsets(inSegs, p)
	outIdx := flattenOffsets(outSegs, q)
	edges := pairPositional(inIdx, outIdx)
	sortEdges(edges)
	return edges
}

func flattenOffsets(segs []segOffset, base int) []int {
	var out []int
	for _, s := range segs {
		for k := 0; k < s.Length; k++ {
			out = append(out, base+s.Offset+k)
		}
	}
	return out
}
