package render

import "strings"

// escaper rewrites markup-significant characters into named entities. A single
// left-to-right pass means an ampersand introduced by one replacement is never
// escaped again.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape converts arbitrary text into markup-safe text. Input is treated as
// opaque text, never as pre-escaped markup.
func Escape(text string) string {
	if text == "" {
		return ""
	}
	return escaper.Replace(text)
}
