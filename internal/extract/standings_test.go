package extract

import (
	"testing"

	"gremio-dashboard/internal/snapshot"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestStandingsCells(t *testing.T) {
	cases := []struct {
		name     string
		cells    []string
		expected snapshot.StandingsRow
	}{
		{
			name:     "position and points",
			cells:    []string{"5", "Grêmio", "34 pts"},
			expected: snapshot.StandingsRow{Position: ptr(5), Points: ptr(34)},
		},
		{
			name:     "year in first cell is not a position",
			cells:    []string{"2025", "Grêmio", "12", "40"},
			expected: snapshot.StandingsRow{Points: ptr(40)},
		},
		{
			name:     "zero is not a position",
			cells:    []string{"0", "Grêmio", "3"},
			expected: snapshot.StandingsRow{Points: ptr(3)},
		},
		{
			name:     "trailing text cells are skipped for points",
			cells:    []string{"1º", "Grêmio", "61", "V V E", ""},
			expected: snapshot.StandingsRow{Position: ptr(1), Points: ptr(61)},
		},
		{
			name:     "only position",
			cells:    []string{"20", "Grêmio"},
			expected: snapshot.StandingsRow{Position: ptr(20), Points: ptr(20)},
		},
		{
			name:     "no numbers",
			cells:    []string{"Grêmio", "-"},
			expected: snapshot.StandingsRow{},
		},
		{
			name:     "no cells",
			cells:    nil,
			expected: snapshot.StandingsRow{},
		},
	}

	for _, test := range cases {
		result := StandingsCells(test.cells)
		if diff := cmp.Diff(test.expected, result); diff != "" {
			t.Fatalf("%s: unexpected row (-want +got):\n%s", test.name, diff)
		}
	}
}

const cbfTable = `<html><body>
<table class="tabela-nav"><tr><td>Rodada 28</td></tr></table>
<table>
	<thead><tr><th>Pos</th><th>Clube</th><th>PTS</th></tr></thead>
	<tbody>
		<tr><td>1</td><td>Flamengo</td><td>61</td></tr>
		<tr><th>5</th><td><span>Grêmio</span> <small>RS</small></td><td>34</td></tr>
	</tbody>
</table>
</body></html>`

func TestStandingsFromDocument(t *testing.T) {
	row, ok := Standings(parse(t, cbfTable), "gremio")
	require.True(t, ok)
	require.Equal(t, 5, *row.Position)
	require.Equal(t, 34, *row.Points)
	require.Nil(t, row.Played)
	require.Nil(t, row.Efficiency)
}

func TestStandingsWithoutTeam(t *testing.T) {
	row, ok := Standings(parse(t, cbfTable), "internacional")
	require.False(t, ok)
	require.Equal(t, snapshot.StandingsRow{}, row)
}
