package txt2html

import "strings"

// Column alignments, chosen by majority vote over the cells.
type colAlign int

const (
	alignLeft colAlign = iota
	alignCenter
	alignRight
)

// colSpan is a column's extent, measured on the shortest line.
type colSpan struct {
	start, end int
}

// tablePass renders the paragraph as a table when the lines share aligned
// columns: at least two rows with at least two columns separated by runs
// of two or more positions that are spaces in every row. Returns false and
// leaves the lines untouched otherwise.
func (c *Converter) tablePass(lines []*procLine) bool {
	if len(lines) < 2 {
		return false
	}

	shortest := len(lines[0].Text)
	for _, ln := range lines[1:] {
		if len(ln.Text) < shortest {
			shortest = len(ln.Text)
		}
	}
	if shortest == 0 {
		return false
	}

	// A position is blank iff it is a space in every row. OR-ing the bytes
	// makes that a single comparison: the result is a space only when
	// every input byte was one. A single blank position between words
	// stays inside its cell; two or more in a row separate columns.
	or := make([]byte, shortest)
	for _, ln := range lines {
		for j := 0; j < shortest; j++ {
			or[j] |= ln.Text[j]
		}
	}

	var cols []colSpan
	for j := 0; j < shortest; {
		if or[j] == ' ' {
			j++
			continue
		}
		start := j
		for j < shortest && (or[j] != ' ' || (j+1 < shortest && or[j+1] != ' ')) {
			j++
		}
		cols = append(cols, colSpan{start, j})
	}
	if len(cols) < 2 {
		return false
	}

	aligns := make([]colAlign, len(cols))
	for k, col := range cols {
		aligns[k] = c.voteAlignment(lines, col, k == len(cols)-1)
	}

	for _, ln := range lines {
		var row strings.Builder
		row.WriteString(c.tag("TR"))
		for k, col := range cols {
			row.WriteString(c.cellTag(aligns[k]))
			row.WriteString(escapeHTML(strings.TrimSpace(c.cellText(ln.Text, col, k == len(cols)-1))))
			row.WriteString(c.ctag("TD"))
		}
		row.WriteString(c.ctag("TR"))
		ln.Text = row.String()
	}
	lines[0].Prefix += c.closePara() + c.tag("TABLE") + "\n"
	lines[len(lines)-1].Suffix += "\n" + c.ctag("TABLE")
	return true
}

// cellText slices one cell out of a row. The last column extends to the
// end of the row, which may be longer than the shortest line.
func (c *Converter) cellText(row string, col colSpan, last bool) string {
	if col.start >= len(row) {
		return ""
	}
	end := col.end
	if last || end > len(row) {
		end = len(row)
	}
	return row[col.start:end]
}

// voteAlignment picks a column's alignment by majority among the cells
// that have space on one side within the column extent: both sides means
// centered, right only means left, left only means right. Ties and cells
// with no information fall back to left.
func (c *Converter) voteAlignment(lines []*procLine, col colSpan, last bool) colAlign {
	votes := [3]int{}
	for _, ln := range lines {
		cell := c.cellText(ln.Text, col, last)
		if strings.TrimSpace(cell) == "" {
			continue
		}
		leftSpace := strings.HasPrefix(cell, " ")
		rightSpace := strings.HasSuffix(cell, " ") || len(cell) < col.end-col.start
		switch {
		case leftSpace && rightSpace:
			votes[alignCenter]++
		case rightSpace:
			votes[alignLeft]++
		case leftSpace:
			votes[alignRight]++
		}
	}
	best := alignLeft
	if votes[alignCenter] > votes[best] {
		best = alignCenter
	}
	if votes[alignRight] > votes[best] {
		best = alignRight
	}
	return best
}

// cellTag renders a TD open tag with its alignment attribute; plain left
// alignment needs none.
func (c *Converter) cellTag(a colAlign) string {
	name := c.tagName("TD")
	switch a {
	case alignCenter:
		return "<" + name + " " + c.alignAttr("center") + ">"
	case alignRight:
		return "<" + name + " " + c.alignAttr("right") + ">"
	}
	return "<" + name + ">"
}

func (c *Converter) alignAttr(val string) string {
	if c.opts.LowerCaseTags {
		return `align="` + val + `"`
	}
	return `ALIGN="` + val + `"`
}
