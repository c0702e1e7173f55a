// internal/render/sanitize.go
package render

import "github.com/microcosm-cc/bluemonday"

// newPolicy builds the sanitizer applied to every custom-template body.
// Spreadsheet cells are untrusted input that ends up inside HTML, so this is
// a security boundary, not a formatting nicety: structural and formatting
// tags survive, everything else (script, iframe, event handlers) is stripped.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"html", "body", "div", "p", "span", "br", "hr",
		"strong", "b", "em", "i", "u", "small", "blockquote",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li",
		"table", "thead", "tbody", "tr", "td", "th",
		"a", "img",
	)

	p.AllowAttrs("style", "class").Globally()
	p.AllowAttrs("href", "title", "target").OnElements("a")
	p.AllowAttrs("src", "alt", "width", "height", "style").OnElements("img")

	// cid is what inline image references use.
	p.AllowURLSchemes("http", "https", "mailto", "cid")

	return p
}
