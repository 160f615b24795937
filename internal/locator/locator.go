// Package locator finds the parts of a page that talk about the tracked team.
package locator

import (
	"strings"

	"gremio-dashboard/internal/document"

	"github.com/PuerkitoBio/goquery"
)

// Token derives the team token used for matching from a display name.
func Token(name string) string {
	return strings.TrimSpace(document.Normalize(name))
}

// Mentions reports whether text mentions the team, ignoring case and accents.
// An empty token never matches.
func Mentions(text, token string) bool {
	if token == "" {
		return false
	}
	return strings.Contains(document.Normalize(text), token)
}

// Row is a located row: the element (nil for the whole-document fallback)
// and its joined text.
type Row struct {
	Sel  *goquery.Selection
	Text string
}

// TeamRow returns the first row of a table that mentions the team.
func TeamRow(table *goquery.Selection, token string) (*goquery.Selection, bool) {
	var found *goquery.Selection
	table.Find("tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		if Mentions(document.Text(tr), token) {
			found = tr
			return false
		}
		return true
	})
	return found, found != nil
}

// TeamRows returns every table row in the document that mentions the team, in
// document order.
func TeamRows(doc *goquery.Document, token string) []Row {
	var rows []Row
	doc.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		text := document.Text(tr)
		if Mentions(text, token) {
			rows = append(rows, Row{Sel: tr, Text: text})
		}
	})
	return rows
}

// TeamRowsOrBody is TeamRows, except that when no row matches the whole
// document's text is returned as a single pseudo-row, since some pages are
// prose rather than tables.
func TeamRowsOrBody(doc *goquery.Document, token string) []Row {
	rows := TeamRows(doc, token)
	if len(rows) > 0 {
		return rows
	}
	return []Row{{Text: document.Text(doc.Selection)}}
}
