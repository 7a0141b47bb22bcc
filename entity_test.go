package txt2html

import (
	"strings"
	"testing"
)

func TestEscapeHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"a < b", "a &lt; b"},
		{"a > b", "a &gt; b"},
		{"a & b", "a &amp; b"},
		{"&lt;", "&amp;lt;"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		tt := tt
		if got := escapeHTML(tt.in); got != tt.want {
			t.Errorf("escapeHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTranslateEntities(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ascii untouched", "plain text", "plain text"},
		{"copyright", "© 2004", "&copy; 2004"},
		{"accented word", "café", "caf&eacute;"},
		{"inverted punctuation", "¿qué?", "&iquest;qu&eacute;?"},
		{"last table entry", "ÿ", "&yuml;"},
		{"first table entry", "¡hola!", "&iexcl;hola!"},
		{"soft hyphen untranslated", "co­operate", "co­operate"},
		{"beyond latin-1 untouched", "Œuvre", "Œuvre"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := translateEntities(tt.in); got != tt.want {
				t.Errorf("translateEntities(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEightBitCleanSkipsEntities(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, func(o *Options) { o.EightBitClean = true })
	got, err := conv.ConvertFragment("café culture is alive and well in this long line\n", true)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "&eacute;") {
		t.Errorf("eight_bit_clean must pass bytes through:\n%s", got)
	}
}

func TestEntityTranslationInFragment(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, nil)
	got, err := conv.ConvertFragment("café culture is alive and well in this long line\n", true)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "caf&eacute;") {
		t.Errorf("latin-1 characters become named entities:\n%s", got)
	}
}
