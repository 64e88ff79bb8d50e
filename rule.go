package g2p

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// indexSegment is a maximal run of characters in a rule's input or
// output pattern carrying the same explicit {N} label. Label 0 means
// "unlabeled": such runs are paired positionally with the other
// side's unlabeled runs rather than by label, per spec.md §4.3.
type indexSegment struct {
	Text  string
	Label int
}

// Rule is a single rewrite: (context_before, input, context_after) ->
// output, optionally carrying explicit {N} index labels on either
// side. Rules are owned by exactly one Mapping and are immutable
// once Mapping.Compile has run.
type Rule struct {
	Input         string
	Output        string
	ContextBefore string
	ContextAfter  string

	inSegments  []indexSegment
	outSegments []indexSegment
	strippedIn  string
	strippedOut string

	matcher *regexp2.Regexp
}

var indexMarkerRe = regexp.MustCompile(`\{(\d+)\}`)

// stripIndexMarkers removes every {N} token from s, returning the
// text with markers gone and the ordered list of (text, label) runs
// the markers delimited. Characters adjacent to a marker stay put;
// only the marker token itself is removed.
func stripIndexMarkers(s string) (stripped string, segments []indexSegment) {
	var b strings.Builder
	last := 0
	locs := indexMarkerRe.FindAllStringSubmatchIndex(s, -1)
	for _, loc := range locs {
		text := s[last:loc[0]]
		label, _ := strconv.Atoi(s[loc[2]:loc[3]])
		segments = append(segments, indexSegment{Text: text, Label: label})
		b.WriteString(text)
		last = loc[1]
	}
	if last < len(s) {
		text := s[last:]
		segments = append(segments, indexSegment{Text: text, Label: 0})
		b.WriteString(text)
	}
	return b.String(), segments
}

// hasExplicitIndices reports whether any {N} marker appears in s.
func hasExplicitIndices(s string) bool {
	return indexMarkerRe.MatchString(s)
}

// splitTopLevelAlternatives splits a pattern on '|' characters that
// are not nested inside a character class or a group, so that
// "a|b(c|d)" yields ["a", "b(c|d)"] rather than splitting the inner
// alternation too.
func splitTopLevelAlternatives(pattern string) []string {
	var parts []string
	depth := 0
	inClass := false
	start := 0
	for i, r := range pattern {
		switch r {
		case '[':
			if !inClass {
				inClass = true
			}
		case ']':
			if inClass {
				inClass = false
			}
		case '(':
			if !inClass {
				depth++
			}
		case ')':
			if !inClass && depth > 0 {
				depth--
			}
		case '|':
			if !inClass && depth == 0 {
				parts = append(parts, pattern[start:i])
				start = i + len(string(r))
			}
		}
	}
	parts = append(parts, pattern[start:])
	return parts
}

// buildLookbehind implements spec.md §4.2's fixed-width lookbehind
// construction: alternatives of context_before are grouped by rune
// length, one lookbehind assertion is emitted per length group, and
// the groups are combined with alternation so that the whole
// assertion is true iff the preceding text matches any alternative of
// any length.
func buildLookbehind(pattern string) string {
	if pattern == "" {
		return ""
	}
	alts := splitTopLevelAlternatives(pattern)
	byLen := make(map[int][]string)
	var lens []int
	for _, alt := range alts {
		l := utf8.RuneCountInString(alt)
		if _, ok := byLen[l]; !ok {
			lens = append(lens, l)
		}
		byLen[l] = append(byLen[l], alt)
	}
	sortInts(lens)
	groups := make([]string, 0, len(lens))
	for _, l := range lens {
		groups = append(groups, "(?<="+strings.Join(byLen[l], "|")+")")
	}
	if len(groups) == 1 {
		return groups[0]
	}
	return "(?:" + strings.Join(groups, "|") + ")"
}

func buildLookahead(pattern string) string {
	if pattern == "" {
		return ""
	}
	return "(?=" + pattern + ")"
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}

// compile builds the rule's matcher from its already-normalized,
// already-abbreviation-expanded fields. It must run after Mapping has
// applied every textual transform in its compile pipeline.
func (r *Rule) compile(inLang, outLang string, idx int) error {
	if r.Input == "" {
		return malformed(inLang, outLang, idx, "empty input field")
	}
	stripped, inSegs := stripIndexMarkers(r.Input)
	r.strippedIn = stripped
	r.inSegments = inSegs

	strippedOut, outSegs := stripIndexMarkers(r.Output)
	r.strippedOut = strippedOut
	r.outSegments = outSegs

	if hasExplicitIndices(r.Input) != hasExplicitIndices(r.Output) {
		return malformedCanonical(inLang, outLang, idx, "explicit index markers must appear on both sides or neither")
	}

	// stripped is already escaped/expanded by Mapping.Compile's pipeline
	// (escape_special and abbreviation expansion both run before compile);
	// it is used verbatim so that abbreviation-inserted alternation like
	// "(a|e|i|o|u)" still behaves as regex alternation here.
	pattern := buildLookbehind(r.ContextBefore) + stripped + buildLookahead(r.ContextAfter)
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return malformedCanonical(inLang, outLang, idx, "failed to compile pattern: "+err.Error())
	}
	r.matcher = re
	return nil
}

// findAt reports whether the rule matches starting exactly at rune
// index pos within runes, returning the match length in runes when it
// does. Operating on []rune (rather than a string's byte offsets)
// keeps every index in this package in the same "character index"
// unit the spec's alignment model requires.
func (r *Rule) findAt(runes []rune, pos int) (matched bool, length int) {
	m, err := r.matcher.FindRunesMatchStartingAt(runes, pos)
	if err != nil || m == nil {
		return false, 0
	}
	if m.Index != pos {
		return false, 0
	}
	return true, m.Length
}
