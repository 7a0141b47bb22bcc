// Package txt2html converts plain text into structured HTML by inferring
// document structure from typographic conventions: blank-line-separated
// paragraphs, indentation, underline decorations, bullet and number
// prefixes, aligned columns, all-caps lines, mail-header patterns, and
// whitespace-based preformatting.
//
// A link dictionary rewrites matched spans into hyperlinks or inline
// markup. Dictionaries are compiled once and may be shared between
// converter instances; each instance keeps its own once-per-document and
// once-per-section firing state.
//
// Basic usage:
//
//	conv, err := txt2html.NewConverter()
//	if err != nil {
//		log.Fatal(err)
//	}
//	html, err := conv.ConvertFragment("Hello *world*\n", true)
//
// For full documents use ConvertDocument, which emits the HTML envelope
// (doctype, head, body) around the converted paragraphs.
package txt2html
