package extract

import (
	"testing"

	"gremio-dashboard/internal/document"

	"github.com/PuerkitoBio/goquery"
)

func ptr[T any](v T) *T {
	return &v
}

func parse(t *testing.T, content string) *goquery.Document {
	t.Helper()
	doc, err := document.Parse(content)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}
