package locator

import (
	"testing"

	"gremio-dashboard/internal/document"

	"github.com/stretchr/testify/require"
)

const standingsPage = `<html><body>
<table>
	<tr><th>#</th><th>Time</th><th>P</th></tr>
	<tr><td>1</td><td>Flamengo</td><td>61</td></tr>
	<tr><td>5</td><td>GRÊMIO</td><td>34</td></tr>
</table>
<table>
	<tr><td>Grêmio</td><td>sub-20</td></tr>
</table>
</body></html>`

func TestToken(t *testing.T) {
	require.Equal(t, "gremio", Token(" Grêmio "))
	require.Equal(t, "atletico-mg", Token("Atlético-MG"))
}

func TestMentions(t *testing.T) {
	require.True(t, Mentions("Vitória do Grêmio", "gremio"))
	require.True(t, Mentions("GREMIO", "gremio"))
	require.False(t, Mentions("Internacional", "gremio"))
	require.False(t, Mentions("anything", ""))
}

func TestTeamRows(t *testing.T) {
	doc, err := document.Parse(standingsPage)
	require.NoError(t, err)

	rows := TeamRows(doc, "gremio")
	require.Len(t, rows, 2)
	require.Equal(t, "5 GRÊMIO 34", rows[0].Text)
	require.Equal(t, "Grêmio sub-20", rows[1].Text)
}

func TestTeamRowWithinTable(t *testing.T) {
	doc, err := document.Parse(standingsPage)
	require.NoError(t, err)

	row, ok := TeamRow(doc.Find("table").First(), "gremio")
	require.True(t, ok)
	require.Equal(t, "5 GRÊMIO 34", document.Text(row))

	_, ok = TeamRow(doc.Find("table").First(), "internacional")
	require.False(t, ok)
}

func TestTeamRowsOrBodyFallsBackToDocumentText(t *testing.T) {
	doc, err := document.Parse(`<html><body><p>O Grêmio tem 12,5% de chance.</p></body></html>`)
	require.NoError(t, err)

	rows := TeamRowsOrBody(doc, "gremio")
	require.Len(t, rows, 1)
	require.Nil(t, rows[0].Sel)
	require.Equal(t, "O Grêmio tem 12,5% de chance.", rows[0].Text)
}
