package txt2html

import (
	"regexp"
	"strings"
)

// listKind distinguishes bullet lists from numbered/lettered lists.
type listKind int

const (
	listUnordered listKind = iota
	listOrdered
)

func (k listKind) tagName() string {
	if k == listOrdered {
		return "OL"
	}
	return "UL"
}

// listFrame is one open list level. prefixWS is the literal leading
// whitespace of the marker that opened the frame; an item with the same
// leading whitespace belongs to this frame. contentIndent is the column
// where item text starts, used to decide whether a following paragraph
// continues the item.
type listFrame struct {
	prefixWS      string
	kind          listKind
	contentIndent int
	liOpen        bool
}

var (
	bulletMarker  = regexp.MustCompile(`^( *)([-*=o·])( +)(\S.*)$`)
	orderedMarker = regexp.MustCompile(`^( *)(\d+|[A-Za-z])([.)\]:])( +)(\S.*)$`)
)

// listMarker is a recognized item prefix.
type listMarker struct {
	ws            string
	rest          string
	kind          listKind
	startOK       bool // marker may open a new list frame
	contentIndent int  // column after the marker
}

// parseListMarker recognizes a bullet or ordered item prefix. The o
// bullet is deliberately conservative: a lone o only counts when it is
// indented or set off by two or more spaces.
func parseListMarker(text string) (listMarker, bool) {
	if m := bulletMarker.FindStringSubmatch(text); m != nil {
		ws, marker, gap, rest := m[1], m[2], m[3], m[4]
		if marker == "o" && len(ws) == 0 && len(gap) < 2 {
			return listMarker{}, false
		}
		return listMarker{
			ws:            ws,
			rest:          rest,
			kind:          listUnordered,
			startOK:       true,
			contentIndent: len(ws) + len(marker) + len(gap),
		}, true
	}
	if m := orderedMarker.FindStringSubmatch(text); m != nil {
		ws, num, punct, gap, rest := m[1], m[2], m[3], m[4], m[5]
		return listMarker{
			ws:            ws,
			rest:          rest,
			kind:          listOrdered,
			startOK:       num == "1" || num == "a" || num == "A",
			contentIndent: len(ws) + len(num) + len(punct) + len(gap),
		}, true
	}
	return listMarker{}, false
}

// listPass recognizes list items, opening, continuing, and popping list
// frames as the marker indentation dictates.
func (c *Converter) listPass(lines []*procLine, i int) {
	ln := lines[i]
	mk, ok := parseListMarker(ln.Text)
	if !ok {
		return
	}

	if len(c.listStack) == 0 {
		if !mk.startOK || !c.listOpenAllowed(lines, i, mk) {
			return
		}
		c.openListFrame(ln, mk)
		return
	}

	// An item whose leading whitespace matches an ancestor frame closes
	// the frames nested inside it.
	for k, f := range c.listStack {
		if f.prefixWS == mk.ws {
			ln.Prefix += c.popListsTo(k + 1)
			c.emitListItem(ln, mk)
			return
		}
	}

	top := &c.listStack[len(c.listStack)-1]
	if len(mk.ws) >= len(top.prefixWS)+c.opts.IndentWidth {
		// A full indent level deeper opens a nested frame.
		if !mk.startOK {
			return
		}
		c.openListFrame(ln, mk)
		return
	}
	if len(mk.ws) >= len(top.prefixWS) {
		// Ragged indentation within the level continues the frame.
		c.emitListItem(ln, mk)
		return
	}

	// Shallower than every open frame but matching none: close what no
	// longer fits, then continue or reopen at this level.
	ln.Prefix += c.popListsBelow(len(mk.ws))
	if len(c.listStack) > 0 {
		c.emitListItem(ln, mk)
		return
	}
	if mk.startOK {
		c.openListFrame(ln, mk)
	}
}

// listOpenAllowed applies the opening conditions: the item is indented,
// or starts the paragraph, or follows a broken/heading/caps line.
func (c *Converter) listOpenAllowed(lines []*procLine, i int, mk listMarker) bool {
	if len(mk.ws) > 0 || i == 0 {
		return true
	}
	a := lines[i-1].Action
	return a.Break || a.Header || a.Caps
}

func (c *Converter) openListFrame(ln *procLine, mk listMarker) {
	c.listStack = append(c.listStack, listFrame{
		prefixWS:      mk.ws,
		kind:          mk.kind,
		contentIndent: mk.contentIndent,
	})
	c.mode.List = true
	ln.Prefix += c.closePara() + c.tag(mk.kind.tagName()) + "\n"
	ln.Action.ListStart = true
	c.emitListItem(ln, mk)
}

func (c *Converter) emitListItem(ln *procLine, mk listMarker) {
	top := &c.listStack[len(c.listStack)-1]
	if c.opts.XHTML && top.liOpen {
		ln.Prefix += c.ctag("LI") + "\n"
	}
	ln.Prefix += c.closePara() + c.tag("LI")
	top.liOpen = true
	ln.Text = mk.rest
	ln.Action.List = true
	ln.Action.ListItem = true
}

// popListsTo closes frames until depth n remains, innermost first.
func (c *Converter) popListsTo(n int) string {
	var b strings.Builder
	for len(c.listStack) > n {
		f := c.listStack[len(c.listStack)-1]
		c.listStack = c.listStack[:len(c.listStack)-1]
		if c.opts.XHTML && f.liOpen {
			b.WriteString(c.ctag("LI") + "\n")
		}
		b.WriteString(c.ctag(f.kind.tagName()) + "\n")
	}
	c.mode.List = len(c.listStack) > 0
	return b.String()
}

// popListsBelow closes frames whose item text starts deeper than indent.
func (c *Converter) popListsBelow(indent int) string {
	var b strings.Builder
	for len(c.listStack) > 0 {
		top := c.listStack[len(c.listStack)-1]
		if top.contentIndent <= indent {
			break
		}
		b.WriteString(c.popListsTo(len(c.listStack) - 1))
	}
	c.mode.List = len(c.listStack) > 0
	return b.String()
}
