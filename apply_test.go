package txt2html

import (
	"strings"
	"testing"
)

func TestApply_AnchorWrap(t *testing.T) {
	t.Parallel()

	d := compileTestDict(t, `"RFC 2396" -> http://www.ietf.org/rfc/rfc2396.txt`+"\n")
	memo := newOnceMemo(d.Len())

	got := d.Apply("as defined in RFC 2396 today", memo, false)
	want := `as defined in <A HREF="http://www.ietf.org/rfc/rfc2396.txt">RFC 2396</A> today`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestApply_LowerCaseAnchor(t *testing.T) {
	t.Parallel()

	d := compileTestDict(t, `"spec" -> http://example.com/spec`+"\n")
	memo := newOnceMemo(d.Len())

	got := d.Apply("read the spec now", memo, true)
	if !strings.Contains(got, `<a href="http://example.com/spec">spec</a>`) {
		t.Errorf("lowercase anchors expected: %q", got)
	}
}

func TestApply_HTMLTemplateWithBackrefs(t *testing.T) {
	t.Parallel()

	d := compileTestDict(t, `/\*([a-z]+)\*/ -h-> <EM>$1</EM>`+"\n")
	memo := newOnceMemo(d.Len())

	got := d.Apply("this is *important* and *urgent*", memo, false)
	want := "this is <EM>important</EM> and <EM>urgent</EM>"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestApply_SkipsLinkContext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		dict  string
		input string
		want  string
	}{
		{
			name:  "inside existing anchor text",
			dict:  `"target" -> http://example.com/`,
			input: `see <A HREF="x">the target here</A> now`,
			want:  `see <A HREF="x">the target here</A> now`,
		},
		{
			name:  "inside a tag attribute",
			dict:  `"logo.png" -> http://example.com/`,
			input: `<IMG SRC="logo.png"> shows the logo`,
			want:  `<IMG SRC="logo.png"> shows the logo`,
		},
		{
			name:  "after a closed anchor matches again",
			dict:  `"twice" -> http://example.com/`,
			input: `<A HREF="x">twice</A> and twice more`,
			want:  `<A HREF="x">twice</A> and <A HREF="http://example.com/">twice</A> more`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := compileTestDict(t, tt.dict+"\n")
			memo := newOnceMemo(d.Len())
			got := d.Apply(tt.input, memo, false)
			if got != tt.want {
				t.Errorf("got %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestApply_MatchContainingAnchorTagSkipped(t *testing.T) {
	t.Parallel()

	d := compileTestDict(t, `/see.*here/ -h-> X`+"\n")
	memo := newOnceMemo(d.Len())

	input := `see <A HREF="y">it</A> here`
	if got := d.Apply(input, memo, false); got != input {
		t.Errorf("match spanning an anchor must be skipped: %q", got)
	}
}

func TestApply_OnceMemo(t *testing.T) {
	t.Parallel()

	d := compileTestDict(t, `"once" -ho-> [X]`+"\n")
	memo := newOnceMemo(d.Len())

	got := d.Apply("once and once again", memo, false)
	if strings.Count(got, "[X]") != 1 {
		t.Errorf("once rule fired more than once: %q", got)
	}

	// Later sections see the document-scope bit.
	memo.resetSection()
	got = d.Apply("once more", memo, false)
	if strings.Contains(got, "[X]") {
		t.Errorf("once rule must stay spent for the document: %q", got)
	}
}

func TestApply_SectionOnceMemo(t *testing.T) {
	t.Parallel()

	d := compileTestDict(t, `"sect" -hs-> [S]`+"\n")
	memo := newOnceMemo(d.Len())

	got := d.Apply("sect and sect", memo, false)
	if strings.Count(got, "[S]") != 1 {
		t.Errorf("section-once rule fired twice in one section: %q", got)
	}

	memo.resetSection()
	got = d.Apply("sect again", memo, false)
	if strings.Count(got, "[S]") != 1 {
		t.Errorf("section-once rule must rearm at the section boundary: %q", got)
	}
}

func TestApply_DeclarationOrder(t *testing.T) {
	t.Parallel()

	src := `"alpha beta" -h-> [FIRST]` + "\n" + `"beta" -h-> [SECOND]` + "\n"
	d := compileTestDict(t, src)
	memo := newOnceMemo(d.Len())

	got := d.Apply("alpha beta", memo, false)
	if got != "[FIRST]" {
		t.Errorf("earlier rule must win: %q", got)
	}
}

func TestInLinkContext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		before string
		match  string
		want   bool
	}{
		{"plain text", "hello ", "world", false},
		{"open anchor before", `x <A HREF="u">y `, "match", true},
		{"closed anchor before", `x <A HREF="u">y</A> `, "match", false},
		{"inside tag", `x <IMG SRC="`, "match", true},
		{"match has anchor", "x ", `a <A HREF="u">b`, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := inLinkContext(tt.before, tt.match); got != tt.want {
				t.Errorf("inLinkContext(%q, %q) = %v, want %v", tt.before, tt.match, got, tt.want)
			}
		})
	}
}
