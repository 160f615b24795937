package extract

import (
	"regexp"
	"strconv"
	"strings"

	"gremio-dashboard/internal/document"
	"gremio-dashboard/internal/locator"
	"gremio-dashboard/internal/snapshot"

	"github.com/PuerkitoBio/goquery"
)

const maxPosition = 20

var nonDigitRegex = regexp.MustCompile(`\D`)

// cellInt keeps only the digits of a cell, "34 pts" reads as 34.
func cellInt(text string) *int {
	digits := nonDigitRegex.ReplaceAllString(text, "")
	if digits == "" {
		return nil
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return nil
	}
	return &n
}

// StandingsCells applies the standings heuristic to the texts of a row's
// cells: the last cell holding a number is the points, the first cell is the
// position when it is a number between 1 and 20. Nothing else is guessed.
func StandingsCells(cells []string) snapshot.StandingsRow {
	var row snapshot.StandingsRow
	if len(cells) == 0 {
		return row
	}

	for i := len(cells) - 1; i >= 0; i-- {
		if n := cellInt(cells[i]); n != nil {
			row.Points = n
			break
		}
	}

	if first := cellInt(cells[0]); first != nil && *first >= 1 && *first <= maxPosition {
		row.Position = first
	}
	return row
}

// StandingsRow applies the standings heuristic to a table row element.
func StandingsRow(tr *goquery.Selection) snapshot.StandingsRow {
	var cells []string
	tr.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
		cells = append(cells, strings.TrimSpace(document.Text(cell)))
	})
	return StandingsCells(cells)
}

// Standings reads the team's row from the first table of the document that
// has one. When no table mentions the team every field is absent.
func Standings(doc *goquery.Document, token string) (snapshot.StandingsRow, bool) {
	var (
		row   snapshot.StandingsRow
		found bool
	)
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		tr, ok := locator.TeamRow(table, token)
		if !ok {
			return true
		}
		row = StandingsRow(tr)
		found = true
		return false
	})
	return row, found
}
