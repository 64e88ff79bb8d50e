package g2p

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormForm selects a Unicode normalization form, or NormNone to skip
// normalization entirely.
type NormForm string

const (
	NormNFC  NormForm = "NFC"
	NormNFD  NormForm = "NFD"
	NormNFKC NormForm = "NFKC"
	NormNFKD NormForm = "NFKD"
	NormNone NormForm = "none"
)

func (f NormForm) valid() bool {
	switch f {
	case NormNFC, NormNFD, NormNFKC, NormNFKD, NormNone, "":
		return true
	}
	return false
}

func (f NormForm) form() norm.Form {
	switch f {
	case NormNFD:
		return norm.NFD
	case NormNFKC:
		return norm.NFKC
	case NormNFKD:
		return norm.NFKD
	default:
		return norm.NFC
	}
}

// normalize decodes \uXXXX / \UXXXXXX escapes and then applies the
// requested Unicode normalization form. Escape decoding always runs
// first; when form is NormNone, decoding is the only transformation
// applied. normalize is idempotent: normalizing an already-normalized
// string under the same form is a no-op.
func normalize(s string, form NormForm) (string, error) {
	if !form.valid() {
		return "", &InvalidNormalizationError{Form: string(form)}
	}
	decoded := decodeEscapes(s)
	if form == NormNone || form == "" {
		return decoded, nil
	}
	return form.form().String(decoded), nil
}

// decodeEscapes replaces \uXXXX (exactly 4 hex digits) and \UXXXXXX
// (6 to 8 hex digits, longest match wins) with the code point they
// denote. Any escape sequence that fails to parse is left verbatim.
func decodeEscapes(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '\\' || i+1 >= len(runes) {
			b.WriteRune(r)
			continue
		}
		switch runes[i+1] {
		case 'u':
			if i+6 <= len(runes) {
				if cp, ok := parseHexRunes(runes[i+2 : i+6]); ok {
					b.WriteRune(rune(cp))
					i += 5
					continue
				}
			}
			b.WriteRune(r)
		case 'U':
			matched := false
			for width := 8; width >= 6; width-- {
				if i+2+width > len(runes) {
					continue
				}
				if cp, ok := parseHexRunes(runes[i+2 : i+2+width]); ok {
					b.WriteRune(rune(cp))
					i += 1 + width
					matched = true
					break
				}
			}
			if !matched {
				b.WriteRune(r)
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func parseHexRunes(rs []rune) (int64, bool) {
	v, err := strconv.ParseInt(string(rs), 16, 32)
	if err != nil {
		return 0, false
	}
	return v, true
}
