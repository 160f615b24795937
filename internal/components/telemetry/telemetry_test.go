package telemetry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScopedAPIPrefixesIds(t *testing.T) {
	rec := NewRecorder()
	scoped := NewScopedAPI("aggregator", rec)

	scoped.ReportWarning("standings", "no team row")
	scoped.ReportBroken("probability", 1)
	scoped.ReportCount("matches", 3)

	warnings := rec.Reports("warning", "")
	require.Len(t, warnings, 1)
	require.Equal(t, "aggregator: standings", warnings[0].ID)
	require.Equal(t, []any{"no team row"}, warnings[0].Params)

	broken := rec.Reports("broken", "probability")
	require.Len(t, broken, 1)

	counts := rec.Reports("count", "aggregator: matches")
	require.Len(t, counts, 1)
	require.Equal(t, int64(3), counts[0].Count)
}

func TestNestedScopes(t *testing.T) {
	rec := NewRecorder()
	api := NewScopedAPI("outer", NewScopedAPI("inner", rec))
	api.ReportDebug("hello")

	debug := rec.Reports("debug", "")
	require.Len(t, debug, 1)
	require.Equal(t, "inner: outer: hello", debug[0].ID)
}
