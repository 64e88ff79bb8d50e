package g2p

import (
	"errors"
	"testing"
)

func TestDecodeEscapes(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"four-hex", "\\u00e9", "é"},
		{"eight-hex-U", "\\U0001F600", "😀"},
		{"literal-backslash-no-escape", "a\\qb", "a\\qb"},
		{"trailing-backslash", "a\\", "a\\"},
		{"mixed", "caf\\u00e9", "café"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := decodeEscapes(c.in)
			if got != c.want {
				t.Errorf("decodeEscapes(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestNormalizeIdempotence(t *testing.T) {
	forms := []NormForm{NormNFC, NormNFD, NormNFKC, NormNFKD, NormNone}
	input := "café" // e + combining acute
	for _, f := range forms {
		t.Run(string(f), func(t *testing.T) {
			once, err := normalize(input, f)
			if err != nil {
				t.Fatalf("normalize: %v", err)
			}
			twice, err := normalize(once, f)
			if err != nil {
				t.Fatalf("normalize twice: %v", err)
			}
			if once != twice {
				t.Errorf("not idempotent under %s: %q != %q", f, once, twice)
			}
		})
	}
}

func TestNormalizeInvalidForm(t *testing.T) {
	_, err := normalize("x", NormForm("bogus"))
	if err == nil {
		t.Fatal("expected an error for an invalid normalization form")
	}
	var invalid *InvalidNormalizationError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *InvalidNormalizationError, got %T", err)
	}
}
