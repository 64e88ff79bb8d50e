package g2p

import "testing"

func TestTokenizeFrenchSentence(t *testing.T) {
	m := mustCompile(t, NewMapping("fra", "fra-ipa", []Rule{
		{Input: "on", Output: "ɔ̃"},
		{Input: "ou", Output: "u"},
	}))
	tok, err := NewTokenizer(m)
	if err != nil {
		t.Fatalf("NewTokenizer: %v", err)
	}

	segs := tok.Tokenize("ceci était 'un' test.")
	if len(segs) != 8 {
		t.Fatalf("got %d segments, want 8: %+v", len(segs), segs)
	}
	if !segs[0].IsWord || segs[0].Text != "ceci" {
		t.Errorf("first segment = %+v, want word %q", segs[0], "ceci")
	}
	wantWords := []string{"ceci", "était", "un", "test"}
	gotWords := []string{}
	for _, s := range segs {
		if s.IsWord {
			gotWords = append(gotWords, s.Text)
		}
	}
	if len(gotWords) != len(wantWords) {
		t.Fatalf("got words %v, want %v", gotWords, wantWords)
	}
	for i := range wantWords {
		if gotWords[i] != wantWords[i] {
			t.Errorf("word[%d] = %q, want %q", i, gotWords[i], wantWords[i])
		}
	}
}

func TestTokenizerLiteralDigraphWins(t *testing.T) {
	m := mustCompile(t, NewMapping("fra", "fra-ipa", []Rule{
		{Input: "on", Output: "ɔ̃"},
	}))
	tok, err := NewTokenizer(m)
	if err != nil {
		t.Fatalf("NewTokenizer: %v", err)
	}
	segs := tok.Tokenize("on")
	if len(segs) != 1 || segs[0].Text != "on" || !segs[0].IsWord {
		t.Errorf("expected a single word segment %q, got %+v", "on", segs)
	}
}

func TestTokenizerTwoHopRule(t *testing.T) {
	// hop 1 ends at an orthographic node (fra-norm), so its input
	// inventory plus hop 2's input inventory both count toward
	// tokenization; hop 2 ends at an IPA node, so a third hop would not
	// be pulled in.
	hop1 := mustCompile(t, NewMapping("fra", "fra-norm", []Rule{{Input: "on", Output: "ɔ̃"}}))
	hop2 := mustCompile(t, NewMapping("fra-norm", "fra-ipa", []Rule{{Input: "ɔ̃", Output: "ɔ̃"}}))
	tok, err := NewTokenizer(hop1, hop2)
	if err != nil {
		t.Fatalf("NewTokenizer: %v", err)
	}
	if !tok.literal["on"] || !tok.literal["ɔ̃"] {
		t.Errorf("expected both hops' literal inventories to be unioned, got %v", tok.literal)
	}
}

func TestTokenizerStopsAfterIPAHop(t *testing.T) {
	hop1 := mustCompile(t, NewMapping("fra-ipa", "eng-ipa", []Rule{{Input: "ɔ̃", Output: "ɑn"}}))
	hop2 := mustCompile(t, NewMapping("eng-ipa", "eng-arpabet", []Rule{{Input: "ɑn", Output: "AAN"}}))
	tok, err := NewTokenizer(hop1, hop2)
	if err != nil {
		t.Fatalf("NewTokenizer: %v", err)
	}
	if tok.literal["ɑn"] {
		t.Errorf("hop1's output is already IPA: hop2's inventory should not be pulled in, got %v", tok.literal)
	}
}

func TestTokenizerWordCharBeforeWordOverride(t *testing.T) {
	m := mustCompile(t, NewMapping("fra", "fra-ipa", []Rule{
		{Input: "a", Output: "a"},
	}).Apply(WithWordCharBeforeWord("'")))
	tok, err := NewTokenizer(m)
	if err != nil {
		t.Fatalf("NewTokenizer: %v", err)
	}
	segs := tok.Tokenize("l'ami")
	// "'" counts as a word char only when immediately followed by
	// another word char, so "l'ami" merges into one word segment.
	if len(segs) != 1 || !segs[0].IsWord {
		t.Errorf("expected a single merged word segment, got %+v", segs)
	}
}
