package txt2html

import "strings"

// escapeHTML rewrites the three HTML-significant characters. Ampersand
// goes first so the later rewrites are not double-escaped.
func escapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// latin1Entities maps U+00A1..U+00FF to HTML named entities. Indexed by
// codepoint minus 0xA1. Empty strings mark codepoints left untranslated
// (soft hyphen renders as itself in every relevant browser).
var latin1Entities = [0x5F]string{
	"iexcl", "cent", "pound", "curren", "yen", "brvbar", "sect", "uml",
	"copy", "ordf", "laquo", "not", "", "reg", "macr",
	"deg", "plusmn", "sup2", "sup3", "acute", "micro", "para", "middot",
	"cedil", "sup1", "ordm", "raquo", "frac14", "frac12", "frac34", "iquest",
	"Agrave", "Aacute", "Acirc", "Atilde", "Auml", "Aring", "AElig", "Ccedil",
	"Egrave", "Eacute", "Ecirc", "Euml", "Igrave", "Iacute", "Icirc", "Iuml",
	"ETH", "Ntilde", "Ograve", "Oacute", "Ocirc", "Otilde", "Ouml", "times",
	"Oslash", "Ugrave", "Uacute", "Ucirc", "Uuml", "Yacute", "THORN", "szlig",
	"agrave", "aacute", "acirc", "atilde", "auml", "aring", "aelig", "ccedil",
	"egrave", "eacute", "ecirc", "euml", "igrave", "iacute", "icirc", "iuml",
	"eth", "ntilde", "ograve", "oacute", "ocirc", "otilde", "ouml", "divide",
	"oslash", "ugrave", "uacute", "ucirc", "uuml", "yacute", "thorn", "yuml",
}

// translateEntities replaces Latin-1 supplement characters with their
// named entities. A no-op when the text is pure ASCII.
func translateEntities(s string) string {
	var b *strings.Builder
	for i, ch := range s {
		if ch < 0xA1 || ch > 0xFF {
			if b != nil {
				b.WriteRune(ch)
			}
			continue
		}
		name := latin1Entities[ch-0xA1]
		if name == "" {
			if b != nil {
				b.WriteRune(ch)
			}
			continue
		}
		if b == nil {
			b = &strings.Builder{}
			b.Grow(len(s) + 8)
			b.WriteString(s[:i])
		}
		b.WriteByte('&')
		b.WriteString(name)
		b.WriteByte(';')
	}
	if b == nil {
		return s
	}
	return b.String()
}
