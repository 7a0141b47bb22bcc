package txt2html

import (
	"fmt"
	"regexp"
	"strings"
)

// processParagraph converts one paragraph (a run of non-blank lines) to
// HTML. Structural context carried from prior paragraphs is honored and
// updated; the returned text includes any closes the paragraph boundary
// forced (list frames left behind by out-dented text).
func (c *Converter) processParagraph(raw []string) string {
	lines := make([]*procLine, 0, len(raw))
	prevIndent := 0
	for _, r := range raw {
		ln := normalizeLine(r, c.opts.TabWidth, prevIndent)
		prevIndent = ln.Indent
		lines = append(lines, &ln)
	}
	if len(lines) == 0 {
		return ""
	}
	if c.opts.Debug != 0 {
		fmt.Fprintf(c.diag, "txt2html: paragraph of %d lines, mode %+v, %d list frames\n",
			len(lines), c.mode, len(c.listStack))
	}

	if c.opts.LinkOnly {
		return c.linkOnlyParagraph(lines)
	}

	var head strings.Builder

	// Out-dented paragraphs close the list frames they no longer belong to.
	if c.mode.List {
		if _, ok := parseListMarker(lines[0].Text); !ok {
			head.WriteString(c.popListsBelow(lines[0].Indent))
		}
	}

	c.mode.Table = false
	if c.opts.MakeTables && !c.mode.Pre && c.tablePass(lines) {
		c.mode.Table = true
	}

	if !c.mode.Table {
		// Whole-document preformatting.
		if c.opts.PreformatTriggerLines == 0 && !c.opts.UsePreformatMarker && !c.mode.Pre {
			lines[0].Prefix += c.closePara() + c.tag("PRE") + "\n"
			lines[0].Action.Pre = true
			c.mode.Pre = true
		}
		c.mailHeaderOpen = false
		for i := range lines {
			c.analyzeLine(lines, i)
		}
	}

	var b strings.Builder
	b.WriteString(head.String())
	for _, ln := range lines {
		b.WriteString(ln.Prefix)
		b.WriteString(ln.Text)
		b.WriteString(ln.Suffix)
		b.WriteByte('\n')
	}
	out := b.String()

	if c.opts.Unhyphenation && !c.mode.Pre && !c.mode.Table {
		out = unhyphenate(out)
	}
	if c.opts.MakeLinks && c.dict != nil {
		c.memo.resetSection()
		out = c.dict.Apply(out, c.memo, c.opts.LowerCaseTags)
	}
	if !c.opts.EightBitClean {
		out = translateEntities(out)
	}

	c.prevAction = lines[len(lines)-1].Action
	c.mode.Table = false
	return out
}

// linkOnlyParagraph skips all structural analysis: escape, link, entities.
func (c *Converter) linkOnlyParagraph(lines []*procLine) string {
	var b strings.Builder
	for _, ln := range lines {
		text := ln.Text
		if c.opts.EscapeHTMLChars {
			text = escapeHTML(text)
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	out := b.String()
	if c.opts.MakeLinks && c.dict != nil {
		c.memo.resetSection()
		out = c.dict.Apply(out, c.memo, c.opts.LowerCaseTags)
	}
	if !c.opts.EightBitClean {
		out = translateEntities(out)
	}
	return out
}

// analyzeLine runs the per-line passes in order. Each pass guards itself
// with the current mode and with actions recorded by earlier passes.
func (c *Converter) analyzeLine(lines []*procLine, i int) {
	ln := lines[i]
	if ln.Action.Header {
		// Consumed underline of a heading detected on the previous line.
		return
	}

	if c.opts.EscapeHTMLChars {
		ln.Text = escapeHTML(ln.Text)
	}
	if c.opts.MailMode {
		c.mailPass(lines, i)
	}
	if c.mode.Pre {
		c.endPreformatPass(lines, i)
	}
	if !c.mode.Pre && !ln.Action.MailQuote && !ln.Action.MailHeader {
		c.hrulePass(ln)
	}
	if !c.mode.Pre && !ln.Action.HRule && !ln.Action.MailQuote && !ln.Action.MailHeader {
		c.customHeadingPass(ln)
	}
	if !c.mode.Pre && !ln.Action.Header && !ln.Action.HRule &&
		!ln.Action.MailQuote && !ln.Action.MailHeader {
		c.listPass(lines, i)
	}
	if !c.mode.Pre && !ln.Action.Header && !ln.Action.HRule && !ln.Action.List {
		c.preformatPass(lines, i)
	}
	if !c.mode.Pre && !ln.Action.Header && !ln.Action.HRule &&
		!ln.Action.List && !ln.Action.MailQuote && !ln.Action.MailHeader {
		c.underlinePass(lines, i)
	}
	c.paragraphPass(lines, i)
	c.shortLinePass(lines, i)
	c.capsPass(lines, i)
}

// paragraphPass inserts a paragraph open before a line when the context
// calls for one: start of paragraph, after a closed block, or an indent
// jump beyond par_indent.
func (c *Converter) paragraphPass(lines []*procLine, i int) {
	ln := lines[i]
	if c.mode.Pre || c.mode.Table {
		return
	}
	if ln.Action.Par || ln.Action.MailHeader || ln.Action.blocksParagraphStart() {
		return
	}

	// Paragraphs are delimited by blank lines, so the first line always
	// has a blank predecessor.
	prevBlank := i == 0
	prevEnd := false
	indentJump := false
	if i > 0 {
		prevEnd = lines[i-1].Action.End
		indentJump = ln.Indent > lines[i-1].Indent+c.opts.ParIndent
	}
	if !prevBlank && !prevEnd && !indentJump {
		return
	}

	if indentJump && !prevBlank && !prevEnd && c.opts.IndentParBreak {
		// Indent-triggered break keeps the paragraph open.
		lines[i-1].Suffix += c.brTag()
		lines[i-1].Action.Break = true
		ln.Prefix += strings.Repeat("&nbsp;", ln.Indent)
		ln.Text = strings.TrimLeft(ln.Text, " ")
		ln.Action.IndBreak = true
		return
	}

	if c.opts.PreserveIndent {
		ln.Prefix += c.closePara() + c.openPara() + strings.Repeat("&nbsp;", ln.Indent)
		ln.Text = strings.TrimLeft(ln.Text, " ")
	} else {
		ln.Prefix += c.closePara() + c.openPara()
	}
	ln.Action.Par = true
}

// shortLinePass appends a break to a short previous line so intentional
// short lines (verse, addresses) keep their shape.
func (c *Converter) shortLinePass(lines []*procLine, i int) {
	if i == 0 || c.mode.Pre || c.mode.List || c.mode.Table {
		return
	}
	prev, cur := lines[i-1], lines[i]
	if prev.Length == 0 || prev.Length >= c.opts.ShortLineLength {
		return
	}
	if prev.Action.Break || prev.Action.structural() || cur.Action.structural() {
		return
	}
	prev.Suffix += c.brTag()
	prev.Action.Break = true
}

// capsPass wraps an all-caps line in the caps tag.
func (c *Converter) capsPass(lines []*procLine, i int) {
	ln := lines[i]
	if c.mode.Pre || c.mode.Table {
		return
	}
	a := ln.Action
	if a.Header || a.HRule || a.MailQuote || a.MailHeader || a.ListItem || a.Caps {
		return
	}
	// An explicit end marker has already been replaced by the close tag.
	if a.End && ln.Text == c.ctag("PRE") {
		return
	}
	trimmed := strings.TrimSpace(ln.Text)
	if trimmed == "" || !c.res.caps.MatchString(trimmed) {
		return
	}
	lead := ln.Text[:len(ln.Text)-len(strings.TrimLeft(ln.Text, " "))]
	name := c.tagName(c.opts.CapsTag)
	ln.Text = lead + "<" + name + ">" + trimmed + "</" + name + ">"
	ln.Action.Caps = true
}

// hyphenBreak matches a word broken across a line boundary with a hyphen.
var hyphenBreak = regexp.MustCompile(
	`([A-Za-zÀ-ÖØ-öø-ÿ]+)-\n([ \t]*)([A-Za-zÀ-ÖØ-öø-ÿ]+[.,;:!?'")\]]*)`)

// unhyphenate joins words broken by end-of-line hyphenation, keeping the
// continuation line's indentation on the following newline.
func unhyphenate(s string) string {
	return hyphenBreak.ReplaceAllString(s, "$1$3\n$2")
}
