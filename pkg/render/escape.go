package render

import "strings"

var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)

	// attrEscaper also escapes whitespace that would break attribute parsing.
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
		"\n", "&#10;",
		"\r", "&#13;",
		"\t", "&#9;",
	)
)

// EscapeHTML escapes text for safe inclusion in HTML content.
func EscapeHTML(s string) string {
	return textEscaper.Replace(s)
}

// EscapeAttr escapes text for safe inclusion in a quoted attribute value.
func EscapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
