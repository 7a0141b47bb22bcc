package txt2html

import "strings"

// procLine is one normalized input line plus the analyzer's working state
// for it. Text mutates as passes decorate the line; Length and Indent keep
// the values measured at normalization time, which is what the heuristics
// compare against.
type procLine struct {
	Text   string
	Prefix string // structural opens/closes emitted before the line
	Suffix string // trailing decoration, e.g. <BR>
	Indent int    // leading space count
	Length int    // length after normalization, before any decoration
	Blank  bool
	Action LineAction
}

// normalizeLine expands tabs to the next TabWidth stop, trims the
// trailing CR and trailing whitespace, and derives indent and length.
// prevIndent is propagated to blank lines, which keeps list continuation
// stable across blank lines inside an item.
func normalizeLine(raw string, tabWidth, prevIndent int) procLine {
	s := expandTabs(raw, tabWidth)
	s = strings.TrimRight(s, " \t\r\n")

	ln := procLine{Text: s, Length: len(s)}
	if strings.TrimSpace(s) == "" {
		ln.Blank = true
		ln.Indent = prevIndent
		return ln
	}
	for _, ch := range s {
		if ch != ' ' {
			break
		}
		ln.Indent++
	}
	return ln
}

// expandTabs replaces each horizontal tab with spaces up to the next
// multiple of width.
func expandTabs(s string, width int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + width)
	col := 0
	for _, ch := range s {
		if ch == '\t' {
			n := width - col%width
			for i := 0; i < n; i++ {
				b.WriteByte(' ')
			}
			col += n
			continue
		}
		b.WriteRune(ch)
		col++
	}
	return b.String()
}
