// Package aggregator runs every extraction job of a snapshot against the
// configured sources and assembles the result. A job that fails leaves its
// own field absent and never affects the others.
package aggregator

import (
	"context"

	"gremio-dashboard/internal/components/assert"
	"gremio-dashboard/internal/components/chrono"
	"gremio-dashboard/internal/components/telemetry"
	"gremio-dashboard/internal/config"
	"gremio-dashboard/internal/document"
	"gremio-dashboard/internal/extract"
	"gremio-dashboard/internal/fetcher"
	"gremio-dashboard/internal/locator"
	"gremio-dashboard/internal/snapshot"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

var (
	tracer = otel.Tracer("gremio-dashboard/internal/aggregator")
	meter  = otel.Meter("gremio-dashboard/internal/aggregator")
)

const (
	report_aggregator_source             = "aggregator.source"
	report_aggregator_probability        = "aggregator.probability"
	report_aggregator_standings          = "aggregator.standings"
	report_aggregator_matches            = "aggregator.matches"
	report_aggregator_secondary_mentions = "aggregator.secondary-mentions"
	report_aggregator_injuries           = "aggregator.injuries"
	report_aggregator_fields_present     = "aggregator.fields-present"
	report_aggregator_gauge              = "aggregator.record-gauge"
)

type Aggregator struct {
	cfg     config.Config
	fetcher fetcher.Fetcher
	clock   chrono.API
	tel     telemetry.API
}

func New(cfg config.Config, f fetcher.Fetcher, clock chrono.API, tel telemetry.API) Aggregator {
	assert.NotNil(f)
	assert.NotNil(clock)
	assert.NotNil(tel)
	assert.NotEmptyStr(cfg.Team.Token)

	return Aggregator{
		cfg:     cfg,
		fetcher: f,
		clock:   clock,
		tel:     telemetry.NewScopedAPI("aggregator", tel),
	}
}

func failSpan(span trace.Span, msg string) {
	span.SetStatus(codes.Error, msg)
}

// document fetches and parses the page bound to a source key, ok is false
// when the key is not configured or the page could not be read.
func (a Aggregator) document(ctx context.Context, reportId, key string) (*goquery.Document, bool) {
	span := trace.SpanFromContext(ctx)

	url := a.cfg.Sources[key]
	if url == "" {
		a.tel.ReportWarning(report_aggregator_source, "source not configured", key)
		failSpan(span, "source not configured")
		return nil, false
	}
	span.SetAttributes(attribute.String("url", url))

	body, ok := a.fetcher.Fetch(ctx, url)
	if !ok {
		a.tel.ReportWarning(reportId, "page unavailable", key)
		failSpan(span, "page unavailable")
		return nil, false
	}
	doc, err := document.Parse(body)
	if err != nil {
		a.tel.ReportWarning(reportId, "parse page", key, err)
		span.RecordError(err)
		failSpan(span, err.Error())
		return nil, false
	}
	return doc, true
}

func (a Aggregator) probability(ctx context.Context, key string) *float64 {
	ctx, span := tracer.Start(ctx, "probability")
	defer span.End()
	span.SetAttributes(attribute.String("source", key))

	doc, ok := a.document(ctx, report_aggregator_probability, key)
	if !ok {
		return nil
	}
	rows := locator.TeamRowsOrBody(doc, a.cfg.Team.Token)
	value := extract.Percentage(rows[0].Text)
	if value == nil {
		a.tel.ReportWarning(report_aggregator_probability, "no percentage near team", key)
		failSpan(span, "no percentage near team")
	}
	return value
}

func (a Aggregator) standings(ctx context.Context) snapshot.StandingsRow {
	ctx, span := tracer.Start(ctx, "standings")
	defer span.End()

	doc, ok := a.document(ctx, report_aggregator_standings, config.SourceStandings)
	if !ok {
		return snapshot.StandingsRow{}
	}
	row, found := extract.Standings(doc, a.cfg.Team.Token)
	if !found {
		a.tel.ReportWarning(report_aggregator_standings, "team row not found", config.SourceStandings)
		failSpan(span, "team row not found")
	}
	return row
}

func (a Aggregator) fixtures(ctx context.Context, key string) *goquery.Document {
	ctx, span := tracer.Start(ctx, "fixtures")
	defer span.End()
	span.SetAttributes(attribute.String("source", key))

	doc, _ := a.document(ctx, report_aggregator_matches, key)
	return doc
}

func (a Aggregator) injuries(ctx context.Context) []snapshot.InjuryEntry {
	ctx, span := tracer.Start(ctx, "injuries")
	defer span.End()

	doc, ok := a.document(ctx, report_aggregator_injuries, config.SourceInjuriesReport)
	if !ok {
		return []snapshot.InjuryEntry{}
	}
	keywords := a.cfg.InjuryKeywords
	if len(keywords) == 0 {
		keywords = extract.DefaultInjuryKeywords
	}
	entries := extract.Injuries(doc, keywords)
	span.SetAttributes(attribute.Int("entries", len(entries)))
	return entries
}

// Run performs one snapshot. It always returns a snapshot, with every field
// that could not be obtained left absent.
func (a Aggregator) Run(ctx context.Context) snapshot.Snapshot {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	snap := snapshot.New(a.clock.Now(), a.cfg.Sources)

	probabilities := []struct {
		key  string
		dest **float64
	}{
		{key: config.SourceRelegation, dest: &snap.Data.Probabilities.Relegation},
		{key: config.SourceLibertadores, dest: &snap.Data.Probabilities.Libertadores},
		{key: config.SourceSulamericana, dest: &snap.Data.Probabilities.Sulamericana},
		{key: config.SourceChampion, dest: &snap.Data.Probabilities.Champion},
	}

	var espnDoc, geDoc *goquery.Document

	group := errgroup.Group{}
	group.SetLimit(a.cfg.WorkerCount())

	for _, p := range probabilities {
		group.Go(func() error {
			*p.dest = a.probability(ctx, p.key)
			return nil
		})
	}
	group.Go(func() error {
		snap.Data.Standings = a.standings(ctx)
		return nil
	})
	group.Go(func() error {
		espnDoc = a.fixtures(ctx, config.SourceFixturesESPN)
		return nil
	})
	group.Go(func() error {
		geDoc = a.fixtures(ctx, config.SourceFixturesGE)
		return nil
	})
	group.Go(func() error {
		snap.Data.Injuries = a.injuries(ctx)
		return nil
	})

	// jobs never return errors, every failure degrades its own slot
	_ = group.Wait()

	snap.Data.Upcoming, snap.Data.Completed = a.matches(espnDoc, geDoc)

	present := snap.Present()
	a.tel.ReportCount(report_aggregator_fields_present, int64(present))
	gauge, err := meter.Int64Gauge(
		"snapshot.fields_present",
		metric.WithDescription("number of snapshot fields that carry a value"),
	)
	if err != nil {
		a.tel.ReportBroken(report_aggregator_gauge, err)
	} else {
		gauge.Record(ctx, int64(present))
	}
	span.SetAttributes(attribute.Int("fields_present", present))

	return snap
}

func (a Aggregator) matches(espnDoc, geDoc *goquery.Document) (upcoming, completed []snapshot.Match) {
	token := a.cfg.Team.Token
	pages := []extract.MatchPage{
		{Doc: espnDoc, Selector: extract.FixtureSelectorESPN},
	}
	secondary := extract.MatchPage{Doc: geDoc, Selector: extract.FixtureSelectorGE}

	if geDoc != nil {
		a.tel.ReportCount(report_aggregator_secondary_mentions, int64(extract.CountMentions(secondary, token)))
	}
	if a.cfg.Matches.SecondaryContributes {
		pages = append(pages, secondary)
	}

	upcoming, completed = extract.Matches(pages, token)
	if espnDoc != nil && len(upcoming) == 0 && len(completed) == 0 {
		a.tel.ReportWarning(report_aggregator_matches, "no fixtures mention the team", config.SourceFixturesESPN)
	}
	return upcoming, completed
}
