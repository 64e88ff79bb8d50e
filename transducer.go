package g2p

import (
	"strings"
	"unicode/utf8"
)

// Transducer applies one compiled Mapping to a string, producing an
// output string and its many-to-many alignment to that string
// (spec.md §4.4).
type Transducer struct {
	Mapping *Mapping
}

// NewTransducer wraps a Mapping for repeated Apply calls. The Mapping
// is compiled lazily on first use.
func NewTransducer(m *Mapping) *Transducer {
	return &Transducer{Mapping: m}
}

// RuleApplication is one step of a Transducer's debug trace: which
// rule fired (or none, for a literal passthrough), at what input
// position, and the output it produced. Grounded on the per-character
// event records client.go's pythainlp teacher logs for its engine
// calls, narrowed here to one record per rewrite step instead of per
// remote-call retry.
type RuleApplication struct {
	RuleIndex int // -1 marks a literal passthrough
	InPos     int
	InLen     int
	OutPos    int
	OutLen    int
}

// Apply runs the rewrite loop end to end and returns the resulting
// tier. Apply has no observable side effects and is deterministic:
// the same string against the same compiled Mapping always produces
// the same tier.
func (t *Transducer) Apply(s string) (TransductionTier, error) {
	tier, _, err := t.apply(s, false)
	return tier, err
}

// ApplyTraced is Apply plus a RuleApplication trace, one entry per
// rewrite step, for the --debugger CLI flag.
func (t *Transducer) ApplyTraced(s string) (TransductionTier, []RuleApplication, error) {
	return t.apply(s, true)
}

func (t *Transducer) apply(s string, trace bool) (TransductionTier, []RuleApplication, error) {
	m := t.Mapping
	if err := m.Compile(); err != nil {
		return TransductionTier{}, nil, err
	}

	cur := s
	if !m.CaseSensitive {
		cur = strings.ToLower(cur)
	}
	cur, err := normalize(cur, m.NormForm)
	if err != nil {
		return TransductionTier{}, nil, err
	}
	runes := []rune(cur)
	n := len(runes)

	var out strings.Builder
	var edges []Edge
	var steps []RuleApplication

	delim := []rune(m.OutDelimiter)
	var covered map[int]bool
	if m.PreventFeeding {
		covered = make(map[int]bool)
	}

	j := 0
	trailingDelimRunes := 0
	trailingDelimEdges := 0

	appendDelimiter := func() {
		if len(delim) == 0 {
			trailingDelimRunes, trailingDelimEdges = 0, 0
			return
		}
		for k, r := range delim {
			out.WriteRune(r)
			edges = append(edges, Edge{In: NullIndex, Out: j + k})
		}
		trailingDelimRunes = len(delim)
		trailingDelimEdges = len(delim)
		j += len(delim)
	}

	for i := 0; i < n; {
		ruleIdx, matchLen := -1, 0
		for ri := range m.Rules {
			if m.PreventFeeding && covered[i] {
				continue
			}
			ok, l := m.Rules[ri].findAt(runes, i)
			if !ok {
				continue
			}
			ruleIdx, matchLen = ri, l
			break
		}

		if ruleIdx == -1 {
			out.WriteRune(runes[i])
			edges = append(edges, Edge{In: i, Out: j})
			if trace {
				steps = append(steps, RuleApplication{RuleIndex: -1, InPos: i, InLen: 1, OutPos: j, OutLen: 1})
			}
			i++
			j++
			trailingDelimRunes, trailingDelimEdges = 0, 0
			continue
		}

		r := &m.Rules[ruleIdx]
		outLen := utf8.RuneCountInString(r.strippedOut)
		q := j
		out.WriteString(r.strippedOut)
		edges = append(edges, AlignRule(r, i, q, matchLen, outLen)...)

		if m.PreventFeeding {
			for k := 0; k < matchLen; k++ {
				covered[i+k] = true
			}
		}
		if trace {
			steps = append(steps, RuleApplication{RuleIndex: ruleIdx, InPos: i, InLen: matchLen, OutPos: q, OutLen: outLen})
		}

		j += outLen
		if matchLen == 0 {
			// epenthesis at a zero-width match: advance one logical
			// position so the scan always terminates.
			i++
		} else {
			i += matchLen
		}
		appendDelimiter()
	}

	outStr := out.String()
	if trailingDelimRunes > 0 {
		outRunes := []rune(outStr)
		outStr = string(outRunes[:len(outRunes)-trailingDelimRunes])
		edges = edges[:len(edges)-trailingDelimEdges]
	}

	return NewTier(cur, outStr, edges), steps, nil
}
