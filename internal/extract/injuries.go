package extract

import (
	"strings"

	"gremio-dashboard/internal/document"
	"gremio-dashboard/internal/snapshot"

	"github.com/PuerkitoBio/goquery"
)

// DefaultInjuryKeywords are accent-stripped stems that mark a sentence as
// being about an injury, an absence or a return from injury.
var DefaultInjuryKeywords = []string{
	"lesao",
	"lesoes",
	"lesion",
	"desfal",
	"retorno",
	"contus",
	"departamento medico",
	"problemas fisicos",
}

// Injuries keeps every paragraph or list item whose text contains one of the
// keywords, in document order, at most 20 of them. Only the sentence itself
// is kept, status and expected return are not parsed.
func Injuries(doc *goquery.Document, keywords []string) []snapshot.InjuryEntry {
	entries := []snapshot.InjuryEntry{}
	if doc == nil {
		return entries
	}

	normalized := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(document.Normalize(kw))
		if kw != "" {
			normalized = append(normalized, kw)
		}
	}

	doc.Find("p, li").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := document.Text(sel)
		if !containsAny(document.Normalize(text), normalized) {
			return true
		}
		entries = append(entries, snapshot.InjuryEntry{Description: text})
		return len(entries) < snapshot.MaxInjuries
	})
	return entries
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
