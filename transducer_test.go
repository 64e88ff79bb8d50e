package g2p

import "testing"

func mustCompile(t *testing.T, m *Mapping) *Mapping {
	t.Helper()
	if err := m.Compile(); err != nil {
		t.Fatalf("compile: %v", err)
	}
	return m
}

func TestTransducerScenario1SimpleSubstitution(t *testing.T) {
	m := mustCompile(t, NewMapping("a", "b", []Rule{{Input: "a", Output: "b"}}))
	tier, err := NewTransducer(m).Apply("aa")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if tier.OutputString != "bb" {
		t.Errorf("output = %q, want %q", tier.OutputString, "bb")
	}
}

func TestTransducerScenario2ContextAfter(t *testing.T) {
	m := mustCompile(t, NewMapping("eng", "eng-ipa", []Rule{
		{Input: "t", Output: "ch", ContextAfter: "e"},
	}))
	tier, err := NewTransducer(m).Apply("test")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if tier.OutputString != "chest" {
		t.Errorf("output = %q, want %q", tier.OutputString, "chest")
	}
}

func TestTransducerScenario3ManyToOne(t *testing.T) {
	m := mustCompile(t, NewMapping("eng", "eng-ipa", []Rule{
		{Input: "te", Output: "p"},
	}))
	tier, err := NewTransducer(m).Apply("test")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if tier.OutputString != "pst" {
		t.Errorf("output = %q, want %q", tier.OutputString, "pst")
	}
}

func TestTransducerLongestMatchWins(t *testing.T) {
	m := mustCompile(t, NewMapping("a", "b", []Rule{
		{Input: "a", Output: "1"},
		{Input: "aa", Output: "2"},
	}))
	tier, err := NewTransducer(m).Apply("aa")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if tier.OutputString != "2" {
		t.Errorf("output = %q, want %q (longer rule should win)", tier.OutputString, "2")
	}
}

func TestTransducerAsIsPreservesAuthoredPriority(t *testing.T) {
	m := mustCompile(t, NewMapping("a", "b", []Rule{
		{Input: "a", Output: "1"},
		{Input: "aa", Output: "2"},
	}).Apply(WithAsIs(true)))
	tier, err := NewTransducer(m).Apply("aa")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if tier.OutputString != "11" {
		t.Errorf("output = %q, want %q (as_is keeps authored order: short rule fires first)", tier.OutputString, "11")
	}
}

func TestTransducerPreventFeeding(t *testing.T) {
	// Without prevent_feeding, a rule producing "a" could be re-matched
	// by another rule scanning the same output; prevent_feeding instead
	// marks consumed input positions so a single pass never re-fires
	// over input already rewritten.
	m := mustCompile(t, NewMapping("a", "b", []Rule{
		{Input: "ab", Output: "x"},
		{Input: "a", Output: "ab"},
	}).Apply(WithPreventFeeding(true)))
	tier, err := NewTransducer(m).Apply("a")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if tier.OutputString != "ab" {
		t.Errorf("output = %q, want %q", tier.OutputString, "ab")
	}
}

func TestTransducerEpenthesis(t *testing.T) {
	m := mustCompile(t, NewMapping("a", "b", []Rule{
		// "x" carries a label with no input counterpart, so it is inserted.
		{Input: "a{1}", Output: "a{1}x{2}"},
	}))
	tier, err := NewTransducer(m).Apply("a")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	foundNull := false
	for _, e := range tier.Edges {
		if e.In == NullIndex {
			foundNull = true
		}
	}
	if !foundNull {
		t.Errorf("expected an epenthesis edge (null input) in %v", tier.Edges)
	}
}

func TestTransducerOutDelimiterStripsTrailing(t *testing.T) {
	m := mustCompile(t, NewMapping("a", "b", []Rule{
		{Input: "a", Output: "x"},
	}).Apply(WithOutDelimiter(" ")))
	tier, err := NewTransducer(m).Apply("aa")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	want := "x x"
	if tier.OutputString != want {
		t.Errorf("output = %q, want %q (delimiter between rule firings, none trailing)", tier.OutputString, want)
	}
}

func TestTransducerCaseInsensitive(t *testing.T) {
	m := mustCompile(t, NewMapping("a", "b", []Rule{
		{Input: "a", Output: "x"},
	}).Apply(WithCaseSensitive(false)))
	tier, err := NewTransducer(m).Apply("A")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if tier.OutputString != "x" {
		t.Errorf("output = %q, want %q", tier.OutputString, "x")
	}
}
