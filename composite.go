package g2p

// CompositeTransducer chains Transducers in a fixed order, threading
// each one's output into the next one's input. Grounded on apis.go's
// AnalyzeWithOptions, the teacher's one call that sequenced several
// independent operations (tokenize, romanize, transliterate) and
// folded their results into a single combined value — generalized
// here into a real pipeline over an arbitrary number of hops instead
// of a fixed three-step combination.
type CompositeTransducer struct {
	Transducers []*Transducer
}

// NewCompositeTransducer builds a composite from an ordered list of
// transducers. An empty list is valid and represents the identity
// pipeline (see PipelineBuilder.Make for in_lang == out_lang).
func NewCompositeTransducer(transducers ...*Transducer) *CompositeTransducer {
	return &CompositeTransducer{Transducers: transducers}
}

// Apply runs every transducer in sequence and returns the resulting
// TransductionGraph: one tier per transducer, tier k's output feeding
// tier k+1's input. For an empty composite, Apply returns a single
// identity tier whose edges are {(i, i) | i < len(s)}.
func (c *CompositeTransducer) Apply(s string) (TransductionGraph, error) {
	if len(c.Transducers) == 0 {
		return TransductionGraph{Tiers: []TransductionTier{identityTier(s)}}, nil
	}

	tiers := make([]TransductionTier, 0, len(c.Transducers))
	cur := s
	for _, t := range c.Transducers {
		tier, err := t.Apply(cur)
		if err != nil {
			return TransductionGraph{}, err
		}
		tiers = append(tiers, tier)
		cur = tier.OutputString
	}
	return TransductionGraph{Tiers: tiers}, nil
}

// ApplyTraced is Apply plus one RuleApplication trace per tier, for
// the --debugger CLI flag.
func (c *CompositeTransducer) ApplyTraced(s string) (TransductionGraph, [][]RuleApplication, error) {
	if len(c.Transducers) == 0 {
		return TransductionGraph{Tiers: []TransductionTier{identityTier(s)}}, nil, nil
	}

	tiers := make([]TransductionTier, 0, len(c.Transducers))
	traces := make([][]RuleApplication, 0, len(c.Transducers))
	cur := s
	for _, t := range c.Transducers {
		tier, trace, err := t.ApplyTraced(cur)
		if err != nil {
			return TransductionGraph{}, nil, err
		}
		tiers = append(tiers, tier)
		traces = append(traces, trace)
		cur = tier.OutputString
	}
	return TransductionGraph{Tiers: tiers}, traces, nil
}

func identityTier(s string) TransductionTier {
	n := runeLen(s)
	edges := make([]Edge, n)
	for i := 0; i < n; i++ {
		edges[i] = Edge{In: i, Out: i}
	}
	return NewTier(s, s, edges)
}
