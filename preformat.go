package txt2html

// preLooking reports whether a line looks preformatted: a run of at least
// preformat_whitespace_min spaces or dots followed by a non-space.
func (c *Converter) preLooking(text string) bool {
	return c.res.preRun.MatchString(text) || c.res.preDots.MatchString(text)
}

// preformatPass opens a preformatted block, either from a literal marker
// (use_preformat_marker) or from whitespace heuristics. Never entered from
// a mail-quoted line.
func (c *Converter) preformatPass(lines []*procLine, i int) {
	ln := lines[i]
	if ln.Action.MailQuote || ln.Action.MailHeader {
		return
	}

	if c.opts.UsePreformatMarker {
		if c.res.preStart.MatchString(ln.Text) {
			ln.Prefix += c.closePara()
			ln.Text = c.tag("PRE")
			ln.Action.Pre = true
			c.mode.Pre = true
			c.mode.PreExplicit = true
		}
		return
	}

	// Trigger 0 preformats the whole document; handled at the paragraph
	// level, not per line.
	if c.opts.PreformatTriggerLines == 0 {
		return
	}
	if !c.preLooking(ln.Text) {
		return
	}
	if c.opts.PreformatTriggerLines > 1 {
		if i+1 >= len(lines) || !c.preLooking(lines[i+1].Text) {
			return
		}
	}
	ln.Prefix += c.closePara() + c.tag("PRE") + "\n"
	ln.Action.Pre = true
	c.mode.Pre = true
}

// endPreformatPass closes an open preformatted block. Explicit blocks end
// only at their end marker; implicit blocks end when the text stops
// looking preformatted.
func (c *Converter) endPreformatPass(lines []*procLine, i int) {
	ln := lines[i]

	if c.mode.PreExplicit {
		if c.res.preEnd.MatchString(ln.Text) {
			ln.Text = c.ctag("PRE")
			ln.Action.End = true
			c.mode.Pre = false
			c.mode.PreExplicit = false
		}
		return
	}

	if c.opts.PreformatTriggerLines == 0 {
		return
	}
	if c.preLooking(ln.Text) {
		return
	}
	if i+1 < len(lines) && c.preLooking(lines[i+1].Text) &&
		c.opts.EndpreformatTriggerLines > 1 {
		return
	}
	ln.Prefix += c.ctag("PRE") + "\n"
	ln.Action.End = true
	c.mode.Pre = false
}
