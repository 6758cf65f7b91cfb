// Package spec renders the per-kind specification table shown on product
// detail pages.
package spec

import (
	"html"
	"html/template"
	"strings"

	"techmart/internal/domain"
)

const (
	tableHead = "<table class=\"table\">\n<tbody>\n"
	tableTail = "</tbody>\n</table>\n"
)

// Render builds the two-column specification table for p. Values are
// HTML-escaped here, so callers may embed the result directly. Unknown kinds
// surface domain.ErrUnknownKind.
func Render(p domain.Priceable) (template.HTML, error) {
	info, err := domain.KindByName(string(p.ProductKind()))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(tableHead)
	for _, row := range info.SpecRows {
		b.WriteString("<tr><td>")
		b.WriteString(html.EscapeString(row.Label))
		b.WriteString("</td><td>")
		b.WriteString(html.EscapeString(row.Value(p)))
		b.WriteString("</td></tr>\n")
	}
	b.WriteString(tableTail)
	return template.HTML(b.String()), nil
}
