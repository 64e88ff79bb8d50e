package g2p

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/rangetable"
)

// wordCategories merges Letter, Number, and Mark into the single
// range table spec.md §4.8 names as the Tokenizer's Unicode-category
// fallback, instead of three separate unicode.IsX checks per rune.
var wordCategories = rangetable.Merge(unicode.Letter, unicode.Number, unicode.Mark)

// Segment is one run of a Tokenizer's output: either a word segment
// (eligible for conversion) or a non-word segment (punctuation,
// whitespace, passed through verbatim).
type Segment struct {
	Text   string
	IsWord bool
}

// Tokenizer splits text into word/non-word Segments using a mapping's
// input inventory plus a Unicode category fallback (spec.md §4.8).
// Grounded on tokenize.go's TokenizeWithOptions, reworked from a
// remote-engine dispatch into a local inventory-driven scanner — the
// one piece of that file worth keeping is the package-level
// convenience wrapper pattern, reused here via NewTokenizer.
type Tokenizer struct {
	matcher      *regexp.Regexp
	literal      map[string]bool
	inDelimiters map[string]bool
	override     map[rune]bool
}

// NewTokenizer builds a Tokenizer from one or two pipeline hops. Only
// the first hop's input inventory is always included; the second
// hop's is unioned in only when the first hop's output notation is
// not already IPA/X-SAMPA-like, implementing the two-hop tokenization
// rule of spec.md §4.8 ("stopping at the first IPA-like node").
func NewTokenizer(hops ...*Mapping) (*Tokenizer, error) {
	if len(hops) == 0 {
		return nil, fmt.Errorf("g2p: tokenizer requires at least one mapping")
	}
	use := hops[:1]
	if len(hops) > 1 && hops[0].InventoryKind() == KindOrthography {
		use = hops[:2]
	}

	literal := make(map[string]bool)
	var order []string
	inDelims := make(map[string]bool)
	override := make(map[rune]bool)
	for _, m := range use {
		if err := m.Compile(); err != nil {
			return nil, err
		}
		for _, tok := range literalInventory(m) {
			if !literal[tok] {
				literal[tok] = true
				order = append(order, tok)
			}
		}
		if m.InDelimiter != "" {
			inDelims[m.InDelimiter] = true
			if !literal[m.InDelimiter] {
				literal[m.InDelimiter] = true
				order = append(order, m.InDelimiter)
			}
		}
		for _, r := range m.WordCharBeforeWord {
			override[r] = true
		}
	}

	sort.SliceStable(order, func(a, b int) bool {
		return utf8.RuneCountInString(order[a]) > utf8.RuneCountInString(order[b])
	})

	var alts []string
	for _, tok := range order {
		alts = append(alts, regexp.QuoteMeta(tok))
	}
	alts = append(alts, ".")
	re, err := regexp.Compile("(?s)" + strings.Join(alts, "|"))
	if err != nil {
		return nil, fmt.Errorf("g2p: failed to compile tokenizer pattern: %w", err)
	}

	return &Tokenizer{matcher: re, literal: literal, inDelimiters: inDelims, override: override}, nil
}

// Tokenize splits s into merged word/non-word segments.
func (tk *Tokenizer) Tokenize(s string) []Segment {
	locs := tk.matcher.FindAllStringIndex(s, -1)
	raw := make([]Segment, 0, len(locs))
	for _, loc := range locs {
		text := s[loc[0]:loc[1]]
		raw = append(raw, Segment{Text: text, IsWord: tk.isWord(text, s[loc[1]:])})
	}
	return mergeSegments(raw)
}

// isWord decides a single matched segment's word status: a hit
// against the inventory (or the input delimiter) is always a word
// character; otherwise fall back to Unicode category, or to the
// mapping-declared override when the rune immediately following is
// itself a word character.
func (tk *Tokenizer) isWord(text, rest string) bool {
	if tk.literal[text] {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text)
	if isWordRune(r) {
		return true
	}
	if tk.override[r] {
		next, _ := utf8.DecodeRuneInString(rest)
		if next != utf8.RuneError && isWordRune(next) {
			return true
		}
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.Is(wordCategories, r)
}

func mergeSegments(raw []Segment) []Segment {
	if len(raw) == 0 {
		return nil
	}
	merged := []Segment{raw[0]}
	for _, seg := range raw[1:] {
		last := &merged[len(merged)-1]
		if last.IsWord == seg.IsWord {
			last.Text += seg.Text
		} else {
			merged = append(merged, seg)
		}
	}
	return merged
}

// literalInventory returns the distinct literal (non-regex) input
// patterns of a compiled mapping's rules, the grapheme inventory the
// Tokenizer treats as known multi-character word tokens.
func literalInventory(m *Mapping) []string {
	seen := make(map[string]bool)
	var out []string
	for i := range m.Rules {
		s := m.Rules[i].strippedIn
		if s == "" || !isLiteralPattern(s) || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func isLiteralPattern(s string) bool {
	return !strings.ContainsAny(s, `\.+*?()|[]^$`)
}
