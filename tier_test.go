package g2p

import "testing"

func TestTierEdgeCompleteTrue(t *testing.T) {
	tier := NewTier("ab", "xy", []Edge{{0, 0}, {1, 1}})
	if !tier.EdgeComplete() {
		t.Error("expected tier to be edge-complete")
	}
}

func TestTierEdgeCompleteFalse(t *testing.T) {
	tier := NewTier("ab", "xy", []Edge{{0, 0}})
	if tier.EdgeComplete() {
		t.Error("expected tier to be incomplete: input index 1 and output index 1 are unaligned")
	}
}

func TestTierEdgeCompleteWithNull(t *testing.T) {
	// "a" deleted, "x" inserted: both endpoints still count as covered.
	tier := NewTier("a", "x", []Edge{{0, NullIndex}, {NullIndex, 0}})
	if !tier.EdgeComplete() {
		t.Error("expected deletion+insertion edges to satisfy completeness")
	}
}

func TestTierReduceKeepsMaxOutput(t *testing.T) {
	tier := NewTier("a", "xyz", []Edge{{0, 0}, {0, 1}, {0, 2}})
	reduced := tier.Reduce()
	want := []ReducedEdge{{In: 0, Out: 2}}
	if len(reduced) != 1 || reduced[0] != want[0] {
		t.Errorf("got %v, want %v", reduced, want)
	}
}

func TestTierReduceSkipsNullInput(t *testing.T) {
	tier := NewTier("a", "xy", []Edge{{0, 0}, {NullIndex, 1}})
	reduced := tier.Reduce()
	if len(reduced) != 1 || reduced[0].In != 0 {
		t.Errorf("expected null-input edges to be excluded from Reduce, got %v", reduced)
	}
}

func TestTierReduceMonotonic(t *testing.T) {
	tier := NewTier("abc", "xyz", []Edge{{0, 0}, {1, 1}, {2, 2}})
	reduced := tier.Reduce()
	for i := 1; i < len(reduced); i++ {
		if reduced[i].Out < reduced[i-1].Out {
			t.Errorf("reduced output is not monotonic: %v", reduced)
		}
	}
}
