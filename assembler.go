package txt2html

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// generatorContent identifies this tool in the generator meta tag.
const generatorContent = "go-txt2html"

// xhtmlDoctype is forced when the xhtml option is on.
const xhtmlDoctype = `<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd">`

// errWriter latches the first write error so the conversion loop stays
// uncluttered; Flush reports it.
type errWriter struct {
	w   *bufio.Writer
	err error
}

func (e *errWriter) WriteString(s string) {
	if e.err != nil {
		return
	}
	if _, err := e.w.WriteString(s); err != nil {
		e.err = fmt.Errorf("%w: %v", ErrWrite, err)
	}
}

func (e *errWriter) Flush() error {
	if e.err != nil {
		return e.err
	}
	if err := e.w.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// ConvertDocument reads the inputs as one concatenated text stream and
// writes the full HTML document: envelope, converted paragraphs, splice
// files, and closing tags. Structural state is reset first, so one
// converter can process documents back to back.
func (c *Converter) ConvertDocument(inputs []io.Reader, out io.Writer) error {
	c.resetDocumentState()
	ew := &errWriter{w: bufio.NewWriter(out)}

	sc := bufio.NewScanner(io.MultiReader(inputs...))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	// titlefirst needs the first non-blank line before the head is
	// written; the peeked lines are replayed into the paragraph loop.
	var buffered []string
	title := c.opts.Title
	if c.opts.TitleFirst && !c.opts.Extract && title == "" {
		for sc.Scan() {
			line := sc.Text()
			buffered = append(buffered, line)
			if strings.TrimSpace(line) != "" {
				title = strings.TrimSpace(line)
				break
			}
		}
	}

	if !c.opts.Extract {
		c.writeHead(ew, title)
	}
	c.spliceFile(ew, &c.opts.PrependFile)

	var para []string
	flush := func() {
		if len(para) == 0 {
			return
		}
		ew.WriteString(c.processParagraph(para))
		para = para[:0]
	}
	handle := func(line string) {
		if strings.TrimSpace(line) == "" {
			flush()
			ew.WriteString("\n")
			return
		}
		para = append(para, line)
	}
	for _, line := range buffered {
		handle(line)
	}
	for sc.Scan() {
		handle(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrInputNotReadable, err)
	}
	flush()

	c.writeClosings(ew)
	c.spliceFile(ew, &c.opts.AppendFile)
	if !c.opts.Extract {
		ew.WriteString(c.ctag("BODY") + "\n" + c.ctag("HTML") + "\n")
	}
	return ew.Flush()
}

// ConvertFragment converts a piece of text (one or more paragraphs) and
// returns the HTML fragment. With closeOpenTags false the converter keeps
// its open structural context for the next call; with true the fragment
// is closed off and the context drained.
func (c *Converter) ConvertFragment(text string, closeOpenTags bool) (string, error) {
	var b strings.Builder
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	var para []string
	flush := func() {
		if len(para) == 0 {
			return
		}
		b.WriteString(c.processParagraph(para))
		para = para[:0]
	}
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			flush()
			b.WriteString("\n")
			continue
		}
		para = append(para, line)
	}
	flush()

	if closeOpenTags {
		ew := &fragmentCloser{b: &b}
		c.drainStructure(ew)
	}
	return b.String(), nil
}

// stringWriter is the small surface shared by errWriter and the fragment
// path for structural closes.
type stringWriter interface {
	WriteString(s string)
}

type fragmentCloser struct{ b *strings.Builder }

func (f *fragmentCloser) WriteString(s string) { f.b.WriteString(s) }

// writeClosings drains structure at end of document.
func (c *Converter) writeClosings(ew stringWriter) {
	c.drainStructure(ew)
}

// drainStructure closes open lists and preformatting. A trailing
// paragraph tag is closed only for xhtml output; the HTML 3.2 doctype the
// default output targets allows the end tag to be omitted.
func (c *Converter) drainStructure(w stringWriter) {
	w.WriteString(c.popListsTo(0))
	if c.mode.Pre {
		w.WriteString(c.ctag("PRE") + "\n")
		c.mode.Pre = false
		c.mode.PreExplicit = false
	}
	if c.opts.XHTML {
		w.WriteString(c.closePara())
	} else {
		c.pOpen = false
	}
}

// writeHead emits the document head: doctype, html and head opens, title,
// spliced head file, generator meta, optional stylesheet link, head close
// and body open.
func (c *Converter) writeHead(ew *errWriter, title string) {
	if c.opts.XHTML {
		ew.WriteString(xhtmlDoctype + "\n")
		ew.WriteString(`<html xmlns="http://www.w3.org/1999/xhtml">` + "\n")
	} else {
		ew.WriteString(`<!DOCTYPE HTML PUBLIC "` + c.opts.Doctype + `">` + "\n")
		ew.WriteString(c.tag("HTML") + "\n")
	}
	ew.WriteString(c.tag("HEAD") + "\n")
	if title != "" {
		ew.WriteString(c.tag("TITLE") + title + c.ctag("TITLE") + "\n")
	}
	c.spliceFile(ew, &c.opts.AppendHead)
	ew.WriteString(c.metaTag("generator", generatorContent) + "\n")
	if c.opts.StyleURL != "" {
		ew.WriteString(c.linkTag(c.opts.StyleURL) + "\n")
	}
	ew.WriteString(c.ctag("HEAD") + "\n")

	body := c.tagName("BODY")
	if c.opts.BodyDeco != "" {
		ew.WriteString("<" + body + " " + strings.TrimSpace(c.opts.BodyDeco) + ">\n")
	} else {
		ew.WriteString("<" + body + ">\n")
	}
}

func (c *Converter) metaTag(name, content string) string {
	if c.opts.XHTML {
		return `<meta name="` + name + `" content="` + content + `" />`
	}
	if c.opts.LowerCaseTags {
		return `<meta name="` + name + `" content="` + content + `">`
	}
	return `<META NAME="` + name + `" CONTENT="` + content + `">`
}

func (c *Converter) linkTag(href string) string {
	if c.opts.XHTML {
		return `<link rel="stylesheet" type="text/css" href="` + href + `" />`
	}
	if c.opts.LowerCaseTags {
		return `<link rel="stylesheet" type="text/css" href="` + href + `">`
	}
	return `<LINK REL="stylesheet" TYPE="text/css" HREF="` + href + `">`
}

// spliceFile writes a verbatim auxiliary file. A file that cannot be read
// is reported and its option cleared, and conversion continues.
func (c *Converter) spliceFile(ew stringWriter, path *string) {
	if *path == "" {
		return
	}
	data, err := os.ReadFile(*path) // #nosec G304 -- splice path is user-provided
	if err != nil {
		fmt.Fprintf(c.diag, "txt2html: %v: %v\n", ErrAuxFileNotReadable, err)
		*path = ""
		return
	}
	ew.WriteString(string(data))
}
