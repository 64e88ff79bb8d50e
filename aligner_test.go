package g2p

import (
	"reflect"
	"testing"
)

func TestAlignBasicOneToOne(t *testing.T) {
	edges := alignBasic(2, 5, 1, 1)
	want := []Edge{{2, 5}}
	if !reflect.DeepEqual(edges, want) {
		t.Errorf("got %v, want %v", edges, want)
	}
}

func TestAlignBasicEpenthesis(t *testing.T) {
	edges := alignBasic(2, 5, 0, 1)
	want := []Edge{{NullIndex, 5}}
	if !reflect.DeepEqual(edges, want) {
		t.Errorf("got %v, want %v", edges, want)
	}
}

func TestAlignBasicDeletion(t *testing.T) {
	edges := alignBasic(2, 5, 1, 0)
	want := []Edge{{2, NullIndex}}
	if !reflect.DeepEqual(edges, want) {
		t.Errorf("got %v, want %v", edges, want)
	}
}

func TestAlignBasicOneToMany(t *testing.T) {
	edges := alignBasic(0, 0, 1, 2)
	want := []Edge{{0, 0}, {0, 1}}
	if !reflect.DeepEqual(edges, want) {
		t.Errorf("got %v, want %v", edges, want)
	}
}

func TestAlignBasicManyToOne(t *testing.T) {
	edges := alignBasic(1, 0, 2, 1)
	want := []Edge{{1, 0}, {2, 0}}
	if !reflect.DeepEqual(edges, want) {
		t.Errorf("got %v, want %v", edges, want)
	}
}

func TestAlignBasicManyToManyDefault(t *testing.T) {
	// m=3, n=2: pair positionally up to min, overflow to last output.
	edges := alignBasic(0, 0, 3, 2)
	want := []Edge{{0, 0}, {1, 1}, {2, 1}}
	if !reflect.DeepEqual(edges, want) {
		t.Errorf("got %v, want %v", edges, want)
	}
}

// TestAlignLabeledScenario4 reproduces spec.md §8 scenario 4:
// rule e{1}s{2} -> s{2}e{1}, input "test" -> output "tset",
// edges [(0,0),(1,2),(2,1),(3,3)].
func TestAlignLabeledScenario4(t *testing.T) {
	r := &Rule{Input: "e{1}s{2}", Output: "s{2}e{1}"}
	_, inSegs := stripIndexMarkers(r.Input)
	_, outSegs := stripIndexMarkers(r.Output)
	r.inSegments = inSegs
	r.outSegments = outSegs

	// rule matches at input position 1 ("es" within "test"), producing
	// output starting at position 1 ("se" within "tset").
	edges := AlignRule(r, 1, 1, 2, 2)
	sortEdges(edges)
	want := []Edge{{1, 2}, {2, 1}}
	if !reflect.DeepEqual(edges, want) {
		t.Errorf("got %v, want %v", edges, want)
	}
}

func TestPairPositionalSurjective(t *testing.T) {
	edges := pairPositional([]int{0, 1, 2, 3}, []int{10})
	want := []Edge{{0, 10}, {1, 10}, {2, 10}, {3, 10}}
	if !reflect.DeepEqual(edges, want) {
		t.Errorf("got %v, want %v", edges, want)
	}

	edges = pairPositional([]int{0}, []int{10, 11, 12})
	want = []Edge{{0, 10}, {0, 11}, {0, 12}}
	if !reflect.DeepEqual(edges, want) {
		t.Errorf("got %v, want %v", edges, want)
	}
}
