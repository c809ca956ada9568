// file: services/excerpt.go
package services

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Excerpt returns the visible text of an HTML (or plain) description,
// whitespace-collapsed and cut to max runes with an ellipsis.
func Excerpt(html string, max int) string {
	text := html
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		doc.Find("script, style").Remove()
		text = doc.Text()
	}
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if max <= 0 || len(runes) <= max {
		return text
	}
	return strings.TrimSpace(string(runes[:max])) + "…"
}
