package txt2html

import (
	"strconv"
	"strings"
)

// hrulePass turns a line of repeated rule characters into a horizontal
// rule. Embedded form feeds also render as rules.
func (c *Converter) hrulePass(ln *procLine) {
	if c.res.hrule.MatchString(ln.Text) {
		ln.Prefix += c.closePara()
		ln.Text = c.hrTag()
		ln.Action.HRule = true
		return
	}
	if strings.ContainsRune(ln.Text, '\f') {
		ln.Text = strings.ReplaceAll(ln.Text, "\f", c.hrTag())
	}
}

// customHeadingPass matches the user-supplied heading regexes in order.
// In explicit-headings mode the regex ordinal fixes the level; otherwise
// each regex gets the next unused style level on first encounter.
func (c *Converter) customHeadingPass(ln *procLine) {
	for idx, re := range c.res.custom {
		if !re.MatchString(ln.Text) {
			continue
		}
		var level int
		if c.opts.ExplicitHeadings {
			level = idx + 1
		} else {
			level = c.styleLevel("Cust" + strconv.Itoa(idx))
		}
		c.emitHeading(ln, level)
		return
	}
}

// underlineChars is the heading underline repertoire; mosaicChars is the
// subset honored when use_mosaic_header is on.
const (
	underlineChars = "=-*.~+"
	mosaicChars    = "*=-"
)

// mosaicLevel maps underline characters to the levels the old Mosaic
// convention assigned them.
var mosaicLevel = map[byte]int{'*': 1, '=': 2, '-': 3}

// underlinePass detects a heading by its underline decoration on the
// following line. The underline must be a run of one character from the
// repertoire, with length and offset within the configured tolerances of
// the heading text.
func (c *Converter) underlinePass(lines []*procLine, i int) {
	if i+1 >= len(lines) {
		return
	}
	ln, next := lines[i], lines[i+1]
	ul := strings.TrimSpace(next.Text)
	if ul == "" {
		return
	}
	ch := ul[0]
	chars := underlineChars
	if c.opts.UseMosaicHeader {
		chars = mosaicChars
	}
	if !strings.Contains(chars, string(ch)) {
		return
	}
	if strings.Count(ul, string(ch)) != len(ul) {
		return
	}

	textLen := ln.Length - ln.Indent
	if abs(len(ul)-textLen) > c.opts.UnderlineLengthTolerance {
		return
	}
	if abs(next.Indent-ln.Indent) > c.opts.UnderlineOffsetTolerance {
		return
	}

	var level int
	if c.opts.UseMosaicHeader {
		level = mosaicLevel[ch]
	} else {
		key := string(ch)
		if c.res.caps.MatchString(strings.TrimSpace(ln.Text)) {
			key += "C"
		}
		level = c.styleLevel(key)
	}
	c.emitHeading(ln, level)

	next.Text = " "
	next.Action.Header = true
}

// emitHeading wraps the line in a heading tag, closing any pending
// paragraph. Headings do not nest; each heading line is self-contained.
func (c *Converter) emitHeading(ln *procLine, level int) {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	text := strings.TrimSpace(ln.Text)
	if c.opts.MakeAnchors {
		text = c.anchor(c.sectionAnchor(level), text)
	}
	hn := "H" + strconv.Itoa(level)
	ln.Prefix += c.closePara()
	ln.Text = c.tag(hn) + text + c.ctag(hn)
	ln.Action.Header = true
}

// styleLevel assigns heading levels to styles in first-encounter order.
func (c *Converter) styleLevel(key string) int {
	if lv, ok := c.headingStyles[key]; ok {
		return lv
	}
	lv := len(c.headingStyles) + 1
	if lv > 6 {
		lv = 6
	}
	c.headingStyles[key] = lv
	return lv
}

// sectionAnchor synthesizes the next section_N[_M...] anchor name for a
// heading at the given level, updating the per-level counters.
func (c *Converter) sectionAnchor(level int) string {
	for len(c.headingCounters) < level {
		c.headingCounters = append(c.headingCounters, 0)
	}
	c.headingCounters = c.headingCounters[:level]
	c.headingCounters[level-1]++

	parts := make([]string, level)
	for i, n := range c.headingCounters {
		parts[i] = strconv.Itoa(n)
	}
	return "section_" + strings.Join(parts, "_")
}

// anchor wraps inner in a named anchor with the configured tag case.
func (c *Converter) anchor(name, inner string) string {
	if c.opts.LowerCaseTags {
		return `<a name="` + name + `">` + inner + `</a>`
	}
	return `<A NAME="` + name + `">` + inner + `</A>`
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
