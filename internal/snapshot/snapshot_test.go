package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func sample() Snapshot {
	s := New(
		time.Date(2025, time.October, 12, 18, 30, 0, 0, time.UTC),
		map[string]string{"cbf_tabela": "https://example.com/tabela?doc=a&b=c"},
	)
	s.Data.Probabilities.Relegation = ptr(12.5)
	s.Data.Probabilities.Champion = ptr(0.01)
	s.Data.Standings.Position = ptr(5)
	s.Data.Standings.Points = ptr(34)
	s.Data.Completed = append(s.Data.Completed, Match{
		DateTime: ptr("12/10/2025"),
		Score:    ptr("2 x 1"),
	})
	s.Data.Upcoming = append(s.Data.Upcoming, Match{DateTime: ptr("20/11/2025")})
	s.Data.Injuries = append(s.Data.Injuries, InjuryEntry{Description: "Lesão na coxa, volta em 2026 <3"})
	return s
}

func TestMarshalLayout(t *testing.T) {
	data, err := Marshal(New(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), nil))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Equal(t, "2025-01-02T03:04:05Z", raw["generated_at"])

	body := raw["data"].(map[string]any)
	for _, key := range []string{"proximos_jogos", "ultimos_jogos", "suspensos", "lesionados"} {
		require.Equal(t, []any{}, body[key], key)
	}
	tabela := body["tabela"].(map[string]any)
	require.Len(t, tabela, 10)
	for k, v := range tabela {
		require.Nil(t, v, k)
	}
	probs := body["probabilidades"].(map[string]any)
	require.Len(t, probs, 4)
}

func TestMarshalKeepsNonASCII(t *testing.T) {
	data, err := Marshal(sample())
	require.NoError(t, err)
	require.Contains(t, string(data), "Lesão na coxa, volta em 2026 <3")
	require.Contains(t, string(data), "doc=a&b=c")
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "public", "latest.json")
	original := sample()

	require.NoError(t, Write(path, original))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	decoded, err := Read(path)
	require.NoError(t, err)
	require.True(t, original.GeneratedAt.Equal(decoded.GeneratedAt))
	require.Equal(t, original.Sources, decoded.Sources)
	require.Equal(t, original.Data, decoded.Data)
}

func TestWriteOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latest.json")
	require.NoError(t, Write(path, New(time.Now(), nil)))
	require.NoError(t, Write(path, sample()))

	decoded, err := Read(path)
	require.NoError(t, err)
	require.Equal(t, 34, *decoded.Data.Standings.Points)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestPresent(t *testing.T) {
	require.Equal(t, 0, New(time.Now(), nil).Present())
	// 2 probabilities, position, points, 2 matches, 1 injury
	require.Equal(t, 7, sample().Present())
}

func TestMatchEmpty(t *testing.T) {
	require.True(t, Match{}.Empty())
	require.False(t, Match{Score: ptr("1 x 0")}.Empty())
}
