package txt2html

import (
	"regexp"
	"strings"
)

// onceMemo tracks rule firings. doc persists for the document; sect is
// cleared at each paragraph boundary. Both are indexed by rule position.
type onceMemo struct {
	doc  []bool
	sect []bool
}

func newOnceMemo(n int) *onceMemo {
	return &onceMemo{doc: make([]bool, n), sect: make([]bool, n)}
}

// resetSection clears the per-section bits. Called before each paragraph.
func (m *onceMemo) resetSection() {
	for i := range m.sect {
		m.sect[i] = false
	}
}

// anchorTag matches an anchor open or close tag.
var anchorTag = regexp.MustCompile(`(?i)</?a[\s>]`)

// anchorOpen and anchorClose locate existing anchors in preceding text.
var (
	anchorOpen  = regexp.MustCompile(`(?i)<a[\s>]`)
	anchorClose = regexp.MustCompile(`(?i)</a\s*>`)
)

// Apply walks the rules in declaration order over one paragraph, rewriting
// matches outside link context. lower selects lower-case anchor tags for
// synthesized wrappers.
func (d *LinkDict) Apply(s string, memo *onceMemo, lower bool) string {
	for i, rule := range d.rules {
		if rule.Once && memo.doc[i] {
			continue
		}
		if rule.SectOnce && memo.sect[i] {
			continue
		}
		fired := false
		s, fired = rule.apply(s, lower)
		if fired {
			if rule.Once {
				memo.doc[i] = true
			}
			if rule.SectOnce {
				memo.sect[i] = true
			}
		}
	}
	return s
}

// apply rewrites every eligible match of one rule, or just the first when
// the rule is once-limited. Returns the rewritten string and whether at
// least one rewrite happened.
func (r *LinkRule) apply(s string, lower bool) (string, bool) {
	from := 0
	fired := false
	for from <= len(s) {
		loc := r.re.FindStringSubmatchIndex(s[from:])
		if loc == nil {
			break
		}
		start, end := from+loc[0], from+loc[1]
		if end == start {
			// Zero-width match; step forward to guarantee progress.
			from = start + 1
			continue
		}
		if inLinkContext(s[:start], s[start:end]) {
			from = end
			continue
		}

		// Shift submatch indexes to absolute positions for expansion.
		abs := make([]int, len(loc))
		for j, v := range loc {
			if v < 0 {
				abs[j] = v
				continue
			}
			abs[j] = from + v
		}
		repl := r.expand(s, abs, lower)

		s = s[:start] + repl + s[end:]
		from = start + len(repl)
		fired = true
		if r.Once || r.SectOnce {
			break
		}
	}
	return s, fired
}

// expand produces the rewritten text for one match.
func (r *LinkRule) expand(s string, loc []int, lower bool) string {
	expanded := string(r.re.ExpandString(nil, r.Replacement, s, loc))
	if r.kind == ruleHTML {
		return expanded
	}
	match := s[loc[0]:loc[1]]
	if lower {
		return `<a href="` + expanded + `">` + match + `</a>`
	}
	return `<A HREF="` + expanded + `">` + match + `</A>`
}

// inLinkContext reports whether a match at this position must be skipped:
// the match itself contains an anchor tag, the preceding text has an
// unclosed anchor open, or the preceding text ends inside a partially
// open tag.
func inLinkContext(before, match string) bool {
	if anchorTag.MatchString(match) {
		return true
	}
	opens := anchorOpen.FindAllStringIndex(before, -1)
	if len(opens) > 0 {
		lastOpen := opens[len(opens)-1][0]
		closes := anchorClose.FindAllStringIndex(before, -1)
		lastClose := -1
		if len(closes) > 0 {
			lastClose = closes[len(closes)-1][0]
		}
		if lastOpen > lastClose {
			return true
		}
	}
	return strings.LastIndexByte(before, '<') > strings.LastIndexByte(before, '>')
}
