package g2p

// BuiltinMappings returns a small, hand-authored demonstration mapping
// set covering the fra -> fra-ipa -> eng-ipa -> eng-arpabet pipeline
// from spec.md §8 scenario 5. It exists so the package-level Convert
// convenience function and the CLI have something to run against
// without depending on an external mapping file loader, which is out
// of scope for this engine (mapping files are a collaborator concern;
// see config.go for the one narrow exception carved out for the CLI's
// --config flag).
func BuiltinMappings() ([]*Mapping, error) {
	fraToFraIPA := NewMapping("fra", "fra-ipa", []Rule{
		{Input: "on", Output: "ɔ̃"},
		{Input: "ou", Output: "u"},
		{Input: "j", Output: "ʒ"},
		{Input: "r", Output: "ʁ"},
		{Input: "b", Output: "b"},
	})

	fraIPAToEngIPA := NewMapping("fra-ipa", "eng-ipa", []Rule{
		{Input: "ɔ̃", Output: "ɑn"},
		{Input: "ʒ", Output: "ʒ"},
		{Input: "ʁ", Output: "r"},
		{Input: "u", Output: "u"},
		{Input: "b", Output: "b"},
	})

	engIPAToArpabet := NewMapping("eng-ipa", "eng-arpabet", []Rule{
		{Input: "ɑ", Output: "AA"},
		{Input: "n", Output: "N"},
		{Input: "ʒ", Output: "ZH"},
		{Input: "u", Output: "UW"},
		{Input: "r", Output: "R"},
		{Input: "b", Output: "B"},
	}).Apply(WithOutDelimiter(" "))

	mappings := []*Mapping{fraToFraIPA, fraIPAToEngIPA, engIPAToArpabet}
	for _, m := range mappings {
		if err := m.Compile(); err != nil {
			return nil, err
		}
	}
	return mappings, nil
}
