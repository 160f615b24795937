// Package fetcher retrieves raw pages. It never returns an error to its
// callers: a page that cannot be fetched is reported and treated as absent.
package fetcher

import (
	"context"
	"net/http"
	"time"

	"gremio-dashboard/internal/components/assert"
	"gremio-dashboard/internal/components/telemetry"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	report_fetcher_fetch = "fetcher.fetch"
)

// Fetcher is the capability the aggregator depends on.
//
// note: fault injection point
type Fetcher interface {
	// Fetch returns the body of the page at url, ok is false on any transport
	// failure, non-200 status or empty body.
	Fetch(ctx context.Context, url string) (body string, ok bool)
}

type Options struct {
	Timeout        time.Duration
	UserAgent      string
	AcceptLanguage string
	// RequestsPerSecond spaces requests out across the whole client, 0
	// disables the limit.
	RequestsPerSecond float64
	// DumpDir, when set, receives a copy of every page fetched.
	DumpDir string
}

type Client struct {
	http *resty.Client
	tel  telemetry.API
}

func NewClient(opts Options, tel telemetry.API) (Client, error) {
	assert.NotNil(tel)
	tel = telemetry.NewScopedAPI("fetcher", tel)

	httpClient := resty.New()
	httpClient.SetTimeout(opts.Timeout)
	if opts.UserAgent != "" {
		httpClient.SetHeader("User-Agent", opts.UserAgent)
	}
	if opts.AcceptLanguage != "" {
		httpClient.SetHeader("Accept-Language", opts.AcceptLanguage)
	}

	if opts.RequestsPerSecond > 0 {
		burst := int(opts.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		rateLimiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
		httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return rateLimiter.Wait(req.Context())
		})
	}

	telemetry.InstrumentResty(httpClient, tel)

	if opts.DumpDir != "" {
		dump, err := NewPageDump(opts.DumpDir, tel)
		if err != nil {
			return Client{}, err
		}
		httpClient.OnAfterResponse(dump.onAfterResponse)
	}

	return Client{
		http: httpClient,
		tel:  tel,
	}, nil
}

func (c Client) Fetch(ctx context.Context, url string) (string, bool) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		c.tel.ReportWarning(report_fetcher_fetch, err, url)
		return "", false
	}
	if res.StatusCode() != http.StatusOK {
		c.tel.ReportWarning(report_fetcher_fetch, "unexpected status", res.Status(), url)
		return "", false
	}

	body := res.String()
	if body == "" {
		c.tel.ReportWarning(report_fetcher_fetch, "empty body", url)
		return "", false
	}
	return body, true
}
