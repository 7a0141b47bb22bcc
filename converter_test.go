package txt2html

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func newTestConverter(t *testing.T, mutate func(*Options)) *Converter {
	t.Helper()
	opts := DefaultOptions()
	if mutate != nil {
		mutate(&opts)
	}
	conv, err := NewConverter(WithOptions(opts), WithDiagWriter(&strings.Builder{}))
	if err != nil {
		t.Fatalf("NewConverter: %v", err)
	}
	return conv
}

func TestConvertFragment_Verse(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, nil)
	got, err := conv.ConvertFragment(
		"Matty had a little truck\nhe drove it round and round\nand everywhere that Matty went\nthe truck was *always* found.\n",
		true)
	if err != nil {
		t.Fatalf("ConvertFragment: %v", err)
	}

	want := "<P>Matty had a little truck<BR>\n" +
		"he drove it round and round<BR>\n" +
		"and everywhere that Matty went<BR>\n" +
		"the truck was <EM>always</EM> found.\n"
	if got != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}
}

func TestConvertFragment_OrderedList(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, nil)
	got, err := conv.ConvertFragment("Here is my list:\n\n1. Spam\n2. Jam\n3. Ham\n4. Pickles\n", true)
	if err != nil {
		t.Fatalf("ConvertFragment: %v", err)
	}

	wantContains := []string{
		"<P>Here is my list:",
		"<OL>",
		"<LI>Spam",
		"<LI>Jam",
		"<LI>Ham",
		"<LI>Pickles",
		"</OL>\n",
	}
	for _, w := range wantContains {
		if !strings.Contains(got, w) {
			t.Errorf("output missing %q:\n%s", w, got)
		}
	}
	if !strings.HasSuffix(got, "</OL>\n") {
		t.Errorf("output should end with the list close and newline:\n%q", got)
	}
	if strings.Count(got, "<LI>") != 4 {
		t.Errorf("want 4 items, got %d:\n%s", strings.Count(got, "<LI>"), got)
	}
}

func TestConvertFragment_URL(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, nil)
	got, err := conv.ConvertFragment("I like to look at http://www.example.com a lot\n", true)
	if err != nil {
		t.Fatalf("ConvertFragment: %v", err)
	}

	want := `I like to look at <A HREF="http://www.example.com">http://www.example.com</A> a lot`
	if !strings.Contains(got, want) {
		t.Errorf("got %q, want it to contain %q", got, want)
	}
	if strings.Count(got, "<A HREF=") != 1 {
		t.Errorf("URL must be linked exactly once:\n%s", got)
	}
}

func TestConvertFragment_UnderlinedHeading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Options)
		want   string
	}{
		{
			name: "default style order gives H1",
			want: "<H1>",
		},
		{
			name:   "mosaic mode pins = to H2",
			mutate: func(o *Options) { o.UseMosaicHeader = true },
			want:   "<H2>",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			conv := newTestConverter(t, tt.mutate)
			got, err := conv.ConvertFragment("Introduction\n============\n\nHello.\n", true)
			if err != nil {
				t.Fatalf("ConvertFragment: %v", err)
			}
			if !strings.Contains(got, tt.want+"<A NAME=") {
				t.Errorf("want heading %s with anchor, got:\n%s", tt.want, got)
			}
			if !strings.Contains(got, "Introduction") {
				t.Errorf("heading text lost:\n%s", got)
			}
			if !strings.Contains(got, "<P>Hello.") {
				t.Errorf("following paragraph missing:\n%s", got)
			}
			if strings.Contains(got, "====") {
				t.Errorf("underline should be consumed:\n%s", got)
			}
		})
	}
}

func TestConvertDocument_OnceRuleFiresOnce(t *testing.T) {
	t.Parallel()

	dictPath := filepath.Join(t.TempDir(), "project.dict")
	entry := `"HTML::TextToHTML" -io-> http://example/` + "\n"
	if err := os.WriteFile(dictPath, []byte(entry), 0o600); err != nil {
		t.Fatal(err)
	}

	conv := newTestConverter(t, func(o *Options) {
		o.LinksDictionaries = []string{dictPath}
	})

	var out strings.Builder
	input := "See HTML::TextToHTML for details.\n\nHTML::TextToHTML is mentioned again.\n"
	if err := conv.ConvertDocument([]io.Reader{strings.NewReader(input)}, &out); err != nil {
		t.Fatalf("ConvertDocument: %v", err)
	}

	got := out.String()
	if n := strings.Count(got, `<A HREF="http://example/">`); n != 1 {
		t.Errorf("once rule fired %d times, want 1:\n%s", n, got)
	}
}

func TestConvertFragment_CarryOverContext(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, nil)

	first, err := conv.ConvertFragment("- one\n- two\n", false)
	if err != nil {
		t.Fatalf("first fragment: %v", err)
	}
	if !strings.Contains(first, "<UL>") || strings.Contains(first, "</UL>") {
		t.Errorf("list should stay open across calls:\n%s", first)
	}

	second, err := conv.ConvertFragment("- three\n", true)
	if err != nil {
		t.Fatalf("second fragment: %v", err)
	}
	if !strings.Contains(second, "<LI>three") || !strings.Contains(second, "</UL>") {
		t.Errorf("second call should continue and close the list:\n%s", second)
	}
	if strings.Contains(second, "<UL>") {
		t.Errorf("second call must not reopen the list:\n%s", second)
	}
}

func TestConvertDocument_XHTMLStructuralBalance(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, func(o *Options) {
		o.XHTML = true
		o.Title = "Balance"
		o.MakeTables = true
	})

	input := "Heading\n=======\n\nSome opening text that rambles on.\n\n" +
		"- first\n- second\n  1. nested\n\n" +
		"col one   col two\nval one   val two\n\n" +
		"closing words\n"

	var out strings.Builder
	if err := conv.ConvertDocument([]io.Reader{strings.NewReader(input)}, &out); err != nil {
		t.Fatalf("ConvertDocument: %v", err)
	}

	assertBalanced(t, out.String())
}

// assertBalanced tokenizes HTML and checks that structural tags nest and
// close properly.
func assertBalanced(t *testing.T, doc string) {
	t.Helper()
	structural := map[string]bool{
		"p": true, "ul": true, "ol": true, "li": true, "pre": true,
		"table": true, "tr": true, "td": true,
		"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
		"html": true, "head": true, "body": true,
	}

	var stack []string
	z := html.NewTokenizer(strings.NewReader(doc))
	for {
		tok := z.Next()
		switch tok {
		case html.ErrorToken:
			if len(stack) != 0 {
				t.Errorf("unclosed structural tags at EOF: %v", stack)
			}
			return
		case html.StartTagToken:
			name, _ := z.TagName()
			if structural[string(name)] {
				stack = append(stack, string(name))
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if !structural[string(name)] {
				continue
			}
			if len(stack) == 0 {
				t.Fatalf("close tag </%s> with empty stack", name)
			}
			top := stack[len(stack)-1]
			if top != string(name) {
				t.Fatalf("close tag </%s> does not match open <%s>", name, top)
			}
			stack = stack[:len(stack)-1]
		}
	}
}

func TestSetOptions_RevalidatesAndReloads(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, nil)

	bad := DefaultOptions()
	bad.TabWidth = 0
	if err := conv.SetOptions(bad); err == nil {
		t.Fatal("want error for zero tab width")
	}

	good := DefaultOptions()
	good.MakeLinks = false
	if err := conv.SetOptions(good); err != nil {
		t.Fatalf("SetOptions: %v", err)
	}
	got, err := conv.ConvertFragment("see http://example.com now\n", true)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "<A HREF") {
		t.Errorf("links disabled but anchor emitted:\n%s", got)
	}
}

func TestConvertDocument_ResetsBetweenDocuments(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, nil)
	for i := 0; i < 2; i++ {
		var out strings.Builder
		err := conv.ConvertDocument([]io.Reader{strings.NewReader("Heading\n=======\n\ntext\n")}, &out)
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		if !strings.Contains(out.String(), `<A NAME="section_1">`) {
			t.Errorf("run %d: heading counters not reset:\n%s", i, out.String())
		}
	}
}
