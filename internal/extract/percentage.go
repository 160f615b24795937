// Package extract holds the heuristics that turn free page text into typed
// snapshot fields. Every function here is pure and never fails loudly: a
// value that cannot be determined is returned as nil.
package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"gremio-dashboard/internal/document"
)

var (
	percentSignRegex = regexp.MustCompile(`(\d{1,3}(?:[.,]\d{1,2})?)[\s\p{Zs}]*%`)
	bareNumberRegex  = regexp.MustCompile(`\b(\d{1,3}(?:[.,]\d{1,2})?)\b`)
)

func parseDecimal(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func percentage(v float64) *float64 {
	v = round2(v)
	if v < 0 || v > 100 {
		return nil
	}
	return &v
}

// Percentage finds a probability in text. A number followed by a percent
// sign wins, otherwise the first standalone number is used, read as a
// fraction when it is at most 1. Both "," and "." are accepted as the decimal
// separator. The result is rounded to 2 decimals and always in [0, 100].
func Percentage(text string) *float64 {
	text = document.Normalize(text)

	if m := percentSignRegex.FindStringSubmatch(text); m != nil {
		v, ok := parseDecimal(m[1])
		if !ok {
			return nil
		}
		return percentage(v)
	}

	m := bareNumberRegex.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v, ok := parseDecimal(m[1])
	if !ok {
		return nil
	}
	if v <= 1 {
		v *= 100
	}
	return percentage(v)
}
