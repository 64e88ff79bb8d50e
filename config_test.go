package g2p

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMappingConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mapping.json")
	doc := `[{"in_lang":"tst","out_lang":"tst-ipa","rules":[{"in":"a","out":"x"}]}]`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	mappings, err := LoadMappingConfig(path)
	if err != nil {
		t.Fatalf("LoadMappingConfig: %v", err)
	}
	if len(mappings) != 1 || mappings[0].InLang != "tst" || mappings[0].OutLang != "tst-ipa" {
		t.Fatalf("unexpected mappings: %+v", mappings)
	}

	tier, err := NewTransducer(mappings[0]).Apply("a")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if tier.OutputString != "x" {
		t.Errorf("output = %q, want %q", tier.OutputString, "x")
	}
}

func TestLoadMappingConfigNotJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mapping.txt")
	if err := os.WriteFile(path, []byte("not json at all"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := LoadMappingConfig(path)
	var bad *IncorrectFileTypeError
	if !errors.As(err, &bad) {
		t.Fatalf("expected *IncorrectFileTypeError, got %v (%T)", err, err)
	}
}

func TestLoadMappingConfigInvalidNormForm(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mapping.json")
	doc := `[{"in_lang":"tst","out_lang":"tst-ipa","norm_form":"bogus","rules":[{"in":"a","out":"x"}]}]`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := LoadMappingConfig(path)
	var invalid *InvalidNormalizationError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *InvalidNormalizationError, got %v (%T)", err, err)
	}
}
