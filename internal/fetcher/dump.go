package fetcher

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gremio-dashboard/internal/components/telemetry"

	"github.com/go-resty/resty/v2"
)

const (
	report_fetcher_dump = "fetcher.dump"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-z0-9]+`)

// DumpName is the file a page fetched from url is saved under.
func DumpName(url string) string {
	name := strings.ToLower(url)
	name = strings.TrimPrefix(name, "https://")
	name = strings.TrimPrefix(name, "http://")
	name = strings.Trim(unsafeFilenameChars.ReplaceAllString(name, "_"), "_")
	if len(name) > 120 {
		name = name[:120]
	}
	return name + ".html"
}

// PageDump saves the body of every successful response to a directory so it
// can be fed back into the extractors offline.
type PageDump struct {
	directory string
	tel       telemetry.API
}

// NewPageDump creates the directory if needed, existing files are overwritten
// as pages are fetched again.
func NewPageDump(dir string, tel telemetry.API) (PageDump, error) {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return PageDump{}, fmt.Errorf("create dump directory %s: %w", dir, err)
	}
	return PageDump{directory: dir, tel: tel}, nil
}

func (d PageDump) Write(url, body string) {
	path := filepath.Join(d.directory, DumpName(url))
	err := os.WriteFile(path, []byte(body), 0o644)
	if err != nil {
		d.tel.ReportWarning(report_fetcher_dump, err, path)
	}
}

func (d PageDump) onAfterResponse(_ *resty.Client, res *resty.Response) error {
	if res.StatusCode() == 200 && len(res.Body()) > 0 {
		d.Write(res.Request.URL, res.String())
	}
	return nil
}
