package extract

import (
	"fmt"
	"regexp"

	"gremio-dashboard/internal/document"
	"gremio-dashboard/internal/locator"
	"gremio-dashboard/internal/snapshot"

	"github.com/PuerkitoBio/goquery"
)

// selectors of the elements that may describe a single fixture.
const (
	FixtureSelectorESPN = "li, article, section"
	FixtureSelectorGE   = "a, article, li"
)

var (
	dateRegex  = regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{2,4})`)
	scoreRegex = regexp.MustCompile(`\b(\d+)[\s\p{Zs}]*x[\s\p{Zs}]*(\d+)\b`)
)

// MatchPage is a fixtures page and the selector of its candidate elements.
type MatchPage struct {
	Doc      *goquery.Document
	Selector string
}

// MatchText applies the fixture heuristic to the text of one element. A
// date is any D/M/Y shaped substring, a score is two integers around a
// lowercase "x" and is normalized to "N x N". ok is false when the team is
// not mentioned or nothing could be extracted.
func MatchText(text, token string) (match snapshot.Match, ok bool) {
	if !locator.Mentions(text, token) {
		return snapshot.Match{}, false
	}
	low := document.Normalize(text)

	if m := dateRegex.FindStringSubmatch(low); m != nil {
		date := m[1]
		match.DateTime = &date
	}
	if m := scoreRegex.FindStringSubmatch(low); m != nil {
		score := fmt.Sprintf("%s x %s", m[1], m[2])
		match.Score = &score
	}

	if match.Empty() {
		return snapshot.Match{}, false
	}
	return match, true
}

// Matches walks the candidate elements of every page in order and sorts the
// fixtures that mention the team into upcoming (no score) and completed
// (score present). Page order is trusted, the lists are only truncated.
func Matches(pages []MatchPage, token string) (upcoming, completed []snapshot.Match) {
	upcoming = []snapshot.Match{}
	completed = []snapshot.Match{}

	for _, page := range pages {
		if page.Doc == nil {
			continue
		}
		page.Doc.Find(page.Selector).Each(func(_ int, sel *goquery.Selection) {
			match, ok := MatchText(document.Text(sel), token)
			if !ok {
				return
			}
			if match.Score != nil {
				completed = append(completed, match)
				return
			}
			upcoming = append(upcoming, match)
		})
	}

	return truncate(upcoming, snapshot.MaxUpcoming), truncate(completed, snapshot.MaxCompleted)
}

// CountMentions counts the candidate elements of a page that mention the
// team, without extracting anything from them.
func CountMentions(page MatchPage, token string) int {
	if page.Doc == nil {
		return 0
	}
	n := 0
	page.Doc.Find(page.Selector).Each(func(_ int, sel *goquery.Selection) {
		if locator.Mentions(document.Text(sel), token) {
			n++
		}
	})
	return n
}

func truncate[T any](items []T, limit int) []T {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
