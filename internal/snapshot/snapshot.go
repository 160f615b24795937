// Package snapshot is the typed output document of a run. A nil pointer is
// an absent value and is written as JSON null.
package snapshot

import (
	"time"
)

const (
	MaxUpcoming  = 10
	MaxCompleted = 10
	MaxInjuries  = 20
)

// Probabilities are percentages in [0, 100].
type Probabilities struct {
	Relegation   *float64 `json:"rebaixamento"`
	Libertadores *float64 `json:"libertadores"`
	Sulamericana *float64 `json:"sulamericana"`
	Champion     *float64 `json:"campeao"`
}

// StandingsRow is the team's line of the league table. Only Position and
// Points are ever extracted, the other columns are kept in the document so
// consumers see them as explicitly unknown.
type StandingsRow struct {
	Position     *int     `json:"posicao"`
	Points       *int     `json:"pontos"`
	Played       *int     `json:"j"`
	Wins         *int     `json:"v"`
	Draws        *int     `json:"e"`
	Losses       *int     `json:"d"`
	GoalsFor     *int     `json:"gp"`
	GoalsAgainst *int     `json:"gc"`
	GoalDiff     *int     `json:"sg"`
	Efficiency   *float64 `json:"aproveitamento"`
}

// Match is one fixture. DateTime is the date as found in the page (D/M/Y
// shaped), Score is "N x N" and nil for matches not played yet.
type Match struct {
	DateTime    *string `json:"data_hora"`
	Opponent    *string `json:"adversario"`
	Competition *string `json:"competicao"`
	Venue       *string `json:"mando"`
	Score       *string `json:"placar"`
}

// Empty reports whether no field of the match was extracted.
func (m Match) Empty() bool {
	return m.DateTime == nil &&
		m.Opponent == nil &&
		m.Competition == nil &&
		m.Venue == nil &&
		m.Score == nil
}

type InjuryEntry struct {
	Description    string  `json:"nome"`
	Status         *string `json:"status"`
	ExpectedReturn *string `json:"previsao"`
}

// Suspension has no extractor yet, the list is always empty.
type Suspension struct {
	Name string `json:"nome"`
}

type Data struct {
	Upcoming      []Match       `json:"proximos_jogos"`
	Completed     []Match       `json:"ultimos_jogos"`
	Standings     StandingsRow  `json:"tabela"`
	Suspended     []Suspension  `json:"suspensos"`
	Injuries      []InjuryEntry `json:"lesionados"`
	Probabilities Probabilities `json:"probabilidades"`
}

type Snapshot struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Sources     map[string]string `json:"sources"`
	Data        Data              `json:"data"`
}

// New returns a snapshot with every field absent and every list empty.
func New(generatedAt time.Time, sources map[string]string) Snapshot {
	echoed := make(map[string]string, len(sources))
	for k, v := range sources {
		echoed[k] = v
	}
	return Snapshot{
		GeneratedAt: generatedAt.UTC(),
		Sources:     echoed,
		Data: Data{
			Upcoming:  []Match{},
			Completed: []Match{},
			Suspended: []Suspension{},
			Injuries:  []InjuryEntry{},
		},
	}
}

// Present counts the fields of the snapshot that carry a value, list
// entries count one each.
func (s Snapshot) Present() int {
	n := 0
	for _, p := range []*float64{
		s.Data.Probabilities.Relegation,
		s.Data.Probabilities.Libertadores,
		s.Data.Probabilities.Sulamericana,
		s.Data.Probabilities.Champion,
	} {
		if p != nil {
			n++
		}
	}
	if s.Data.Standings.Position != nil {
		n++
	}
	if s.Data.Standings.Points != nil {
		n++
	}
	n += len(s.Data.Upcoming) + len(s.Data.Completed) + len(s.Data.Injuries)
	return n
}
