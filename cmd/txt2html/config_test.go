package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	txt2html "github.com/alnah/go-txt2html"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "conf.yaml")
	content := `
output:
  xhtml: true
structure:
  makeTables: true
  shortLineLength: 30
links:
  dictionaries:
    - extra.dict
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	opts := txt2html.DefaultOptions()
	cfg.applyTo(&opts)

	if !opts.XHTML || !opts.MakeTables {
		t.Errorf("config bools not applied: %+v", opts)
	}
	if opts.ShortLineLength != 30 {
		t.Errorf("shortLineLength = %d", opts.ShortLineLength)
	}
	if len(opts.LinksDictionaries) != 1 || opts.LinksDictionaries[0] != "extra.dict" {
		t.Errorf("dictionaries = %v", opts.LinksDictionaries)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
		t.Errorf("empty name: %v", err)
	}
	if _, err := LoadConfig("./definitely-missing.yaml"); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("missing file: %v", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("unknownTopLevel: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); !errors.Is(err, ErrConfigParse) {
		t.Errorf("unknown field: %v", err)
	}
}

func TestConfigDefaultsPreserved(t *testing.T) {
	t.Parallel()

	// An empty config must not disturb defaulted-on options.
	var cfg Config
	opts := txt2html.DefaultOptions()
	cfg.applyTo(&opts)

	if !opts.MakeLinks || !opts.MakeAnchors || !opts.Unhyphenation || !opts.EscapeHTMLChars {
		t.Errorf("zero config cleared defaults: %+v", opts)
	}
	if opts.Doctype != txt2html.DefaultDoctype {
		t.Errorf("doctype changed: %q", opts.Doctype)
	}
}
