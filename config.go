package g2p

import (
	"encoding/json"
	"fmt"
	"os"
)

// jsonRule and jsonMapping mirror the on-disk shape accepted by
// LoadMappingConfig. They exist only for this one narrow loader, not
// as a general mapping file format: the full CSV/TSV/XLSX/YAML/JSON
// mapping-file ecosystem described in spec.md §6 is out of scope. This
// loader is carved out as a single exception so the CLI's --config
// flag has something concrete to inject, per spec.md §6's "inject a
// local mapping."
type jsonRule struct {
	Input         string `json:"in"`
	Output        string `json:"out"`
	ContextBefore string `json:"context_before,omitempty"`
	ContextAfter  string `json:"context_after,omitempty"`
}

type jsonMapping struct {
	InLang         string     `json:"in_lang"`
	OutLang        string     `json:"out_lang"`
	CaseSensitive  *bool      `json:"case_sensitive,omitempty"`
	EscapeSpecial  bool       `json:"escape_special,omitempty"`
	NormForm       string     `json:"norm_form,omitempty"`
	AsIs           bool       `json:"as_is,omitempty"`
	OutDelimiter   string     `json:"out_delimiter,omitempty"`
	Reverse        bool       `json:"reverse,omitempty"`
	PreventFeeding bool       `json:"prevent_feeding,omitempty"`
	Rules          []jsonRule `json:"rules"`
}

// LoadMappingConfig reads a single JSON document describing one or
// more Mappings and returns them compiled. It is intentionally the
// only file-format loader this package carries.
func LoadMappingConfig(path string) ([]*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("g2p: failed to read config %s: %w", path, err)
	}

	var raw []jsonMapping
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &IncorrectFileTypeError{Path: path}
	}

	mappings := make([]*Mapping, 0, len(raw))
	for _, jm := range raw {
		rules := make([]Rule, len(jm.Rules))
		for i, jr := range jm.Rules {
			rules[i] = Rule{
				Input:         jr.Input,
				Output:        jr.Output,
				ContextBefore: jr.ContextBefore,
				ContextAfter:  jr.ContextAfter,
			}
		}
		m := NewMapping(jm.InLang, jm.OutLang, rules)
		if jm.CaseSensitive != nil {
			m.Apply(WithCaseSensitive(*jm.CaseSensitive))
		}
		m.Apply(
			WithEscapeSpecial(jm.EscapeSpecial),
			WithAsIs(jm.AsIs),
			WithOutDelimiter(jm.OutDelimiter),
			WithReverse(jm.Reverse),
			WithPreventFeeding(jm.PreventFeeding),
		)
		if jm.NormForm != "" {
			form := NormForm(jm.NormForm)
			if !form.valid() {
				return nil, &InvalidNormalizationError{Form: jm.NormForm}
			}
			m.Apply(WithNormForm(form))
		}
		if err := m.Compile(); err != nil {
			return nil, err
		}
		mappings = append(mappings, m)
	}
	return mappings, nil
}
