package g2p

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// InventoryKind classifies the notation a Mapping's nodes use. It
// drives the Tokenizer's two-hop stopping rule (spec.md §4.8) and is
// carried over from the original g2p/mappings/utils.py's
// is_ipa/is_xsampa/is_dotted_pipe helpers (see SPEC_FULL.md §C).
type InventoryKind int

const (
	KindOrthography InventoryKind = iota
	KindIPA
	KindXSAMPA
)

// inventoryKindOf guesses a node's kind from its name, following the
// "-ipa"/"-xsampa" suffix convention the original mapping corpus uses
// (e.g. "fra-ipa", "eng-arpabet" is NOT ipa despite being phonetic,
// since ARPABET is its own ASCII notation rather than IPA or X-SAMPA).
func inventoryKindOf(name string) InventoryKind {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, "-ipa") || lower == "ipa":
		return KindIPA
	case strings.HasSuffix(lower, "-xsampa") || lower == "xsampa" || lower == "x-sampa":
		return KindXSAMPA
	default:
		return KindOrthography
	}
}

// Abbreviation maps a token, e.g. "VOWEL", to its alternation
// expansion, e.g. "a|e|i|o|u".
type Abbreviation struct {
	Token      string
	Expansion  string
}

// Mapping is an ordered list of Rules plus the configuration that
// governs how they are compiled. Mappings are immutable once Compile
// has returned successfully.
type Mapping struct {
	InLang, OutLang string

	Rules         []Rule
	CaseSensitive bool
	EscapeSpecial bool
	NormForm      NormForm
	AsIs          bool
	OutDelimiter  string
	Reverse       bool
	Abbreviations []Abbreviation
	PreventFeeding bool

	// InDelimiter marks a separator the Tokenizer should treat as a
	// word character for this mapping's input notation, mirroring
	// OutDelimiter on the output side (e.g. the space between ARPABET
	// phones, when ARPABET is itself the input of a later hop).
	InDelimiter string

	// WordCharBeforeWord lists characters that count as word
	// characters only when immediately followed by another word
	// character (spec.md §4.8's language-specific override), declared
	// per mapping rather than hard-coded in the Tokenizer.
	WordCharBeforeWord string

	compiled bool
}

// NewMapping builds a Mapping with spec.md §3's defaults:
// case_sensitive=true, escape_special=false, norm_form=NFC,
// as_is=false, reverse=false, prevent_feeding=false.
func NewMapping(inLang, outLang string, rules []Rule) *Mapping {
	return &Mapping{
		InLang:        inLang,
		OutLang:       outLang,
		Rules:         rules,
		CaseSensitive: true,
		NormForm:      NormNFC,
	}
}

// MappingOption configures a Mapping before Compile runs.
type MappingOption func(*Mapping)

func WithCaseSensitive(v bool) MappingOption { return func(m *Mapping) { m.CaseSensitive = v } }
func WithEscapeSpecial(v bool) MappingOption { return func(m *Mapping) { m.EscapeSpecial = v } }
func WithNormForm(f NormForm) MappingOption  { return func(m *Mapping) { m.NormForm = f } }
func WithAsIs(v bool) MappingOption          { return func(m *Mapping) { m.AsIs = v } }
func WithOutDelimiter(d string) MappingOption {
	return func(m *Mapping) { m.OutDelimiter = d }
}
func WithReverse(v bool) MappingOption         { return func(m *Mapping) { m.Reverse = v } }
func WithPreventFeeding(v bool) MappingOption  { return func(m *Mapping) { m.PreventFeeding = v } }
func WithAbbreviations(abbrs ...Abbreviation) MappingOption {
	return func(m *Mapping) { m.Abbreviations = append(m.Abbreviations, abbrs...) }
}
func WithInDelimiter(d string) MappingOption { return func(m *Mapping) { m.InDelimiter = d } }
func WithWordCharBeforeWord(chars string) MappingOption {
	return func(m *Mapping) { m.WordCharBeforeWord = chars }
}

// Apply applies options and returns the mapping for chaining.
func (m *Mapping) Apply(opts ...MappingOption) *Mapping {
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// InventoryKind reports the notation kind of the mapping's output
// inventory (the node the Tokenizer cares about when walking forward
// through a pipeline).
func (m *Mapping) InventoryKind() InventoryKind { return inventoryKindOf(m.OutLang) }

// Compile runs the compile pipeline from spec.md §4.2, in the
// documented, test-relied-upon order:
//  1. apply Reverse
//  2. apply EscapeSpecial
//  3. apply NormForm
//  4. expand abbreviations
//  5. apply CaseSensitive=false (lowercase)
//  6. sort by descending input length (unless AsIs)
//  7. compile each rule's matcher
func (m *Mapping) Compile() error {
	if m.compiled {
		return nil
	}

	// 1. reverse
	if m.Reverse {
		for i := range m.Rules {
			m.Rules[i].Input, m.Rules[i].Output = m.Rules[i].Output, m.Rules[i].Input
		}
	}

	// 2. escape_special
	if m.EscapeSpecial {
		for i := range m.Rules {
			r := &m.Rules[i]
			r.Input = escapeRegexMeta(r.Input)
			r.Output = escapeRegexMeta(r.Output)
			r.ContextBefore = escapeRegexMeta(r.ContextBefore)
			r.ContextAfter = escapeRegexMeta(r.ContextAfter)
		}
	}

	// 3. norm_form, rules and abbreviation expansions alike
	for i := range m.Rules {
		r := &m.Rules[i]
		var err error
		if r.Input, err = normalize(r.Input, m.NormForm); err != nil {
			return err
		}
		if r.Output, err = normalize(r.Output, m.NormForm); err != nil {
			return err
		}
		if r.ContextBefore, err = normalize(r.ContextBefore, m.NormForm); err != nil {
			return err
		}
		if r.ContextAfter, err = normalize(r.ContextAfter, m.NormForm); err != nil {
			return err
		}
	}
	for i := range m.Abbreviations {
		a := &m.Abbreviations[i]
		var err error
		if a.Expansion, err = normalize(a.Expansion, m.NormForm); err != nil {
			return err
		}
	}

	// 4. expand abbreviations textually into every field of every rule
	if len(m.Abbreviations) > 0 {
		for i := range m.Rules {
			r := &m.Rules[i]
			r.Input = expandAbbreviations(r.Input, m.Abbreviations)
			r.Output = expandAbbreviations(r.Output, m.Abbreviations)
			r.ContextBefore = expandAbbreviations(r.ContextBefore, m.Abbreviations)
			r.ContextAfter = expandAbbreviations(r.ContextAfter, m.Abbreviations)
		}
	}

	// 5. case_sensitive = false -> lowercase every field
	if !m.CaseSensitive {
		for i := range m.Rules {
			r := &m.Rules[i]
			r.Input = strings.ToLower(r.Input)
			r.Output = strings.ToLower(r.Output)
			r.ContextBefore = strings.ToLower(r.ContextBefore)
			r.ContextAfter = strings.ToLower(r.ContextAfter)
		}
	}

	// 6. sort by descending input length (stable), unless as_is
	if !m.AsIs {
		stripped := make([]string, len(m.Rules))
		for i := range m.Rules {
			s, _ := stripIndexMarkers(m.Rules[i].Input)
			stripped[i] = s
		}
		order := make([]int, len(m.Rules))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return utf8.RuneCountInString(stripped[order[a]]) > utf8.RuneCountInString(stripped[order[b]])
		})
		sorted := make([]Rule, len(m.Rules))
		for newPos, oldPos := range order {
			sorted[newPos] = m.Rules[oldPos]
		}
		m.Rules = sorted
	}

	// 7. compile each rule's matcher
	for i := range m.Rules {
		if err := m.Rules[i].compile(m.InLang, m.OutLang, i); err != nil {
			return err
		}
	}

	m.compiled = true
	return nil
}

// expandAbbreviations textually substitutes every literal occurrence
// of an abbreviation key in s with "(expansion)". Replacements run one
// abbreviation after another over the progressively rewritten string,
// so substitution order does not matter (spec.md §8's commutativity
// property) only while no key occurs inside another key or inside
// another abbreviation's expansion.
func expandAbbreviations(s string, abbrs []Abbreviation) string {
	for _, a := range abbrs {
		if a.Token == "" {
			continue
		}
		s = strings.ReplaceAll(s, a.Token, "("+a.Expansion+")")
	}
	return s
}

// Note: {} is deliberately excluded — it is reserved for this DSL's
// explicit index markers ({N}), never for regex repetition syntax.
var regexMetaChars = "\\.+*?()|[]^$"

// escapeRegexMeta backslash-escapes regex metacharacters, the
// escape_special transform from spec.md §3.
func escapeRegexMeta(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) * 2)
	for _, r := range s {
		if strings.ContainsRune(regexMetaChars, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
