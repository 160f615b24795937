// Package config holds the static configuration of a snapshot run: which team
// is tracked, which pages are read and how they are fetched. It is loaded once
// at process start and treated as immutable afterwards.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"dario.cat/mergo"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// well-known source keys, the aggregator binds each one to a field of the snapshot.
const (
	SourceRelegation     = "ufmg_rebaixamento"
	SourceLibertadores   = "ufmg_libertadores"
	SourceSulamericana   = "ufmg_sulamericana"
	SourceChampion       = "ufmg_campeao"
	SourceFixturesGE     = "ge_agenda"
	SourceFixturesESPN   = "espn_calendario"
	SourceStandings      = "cbf_tabela"
	SourceInjuriesReport = "ge_lesionados_exemplo"
)

// Sources maps a source key to the url of the page it is read from.
type Sources map[string]string

type Team struct {
	// Name is the display name, ex. "Grêmio".
	Name string `json:"name" yaml:"name"`
	// Token is the accent-stripped, lower-cased string used to find the team in
	// a page. When empty it is derived from Name.
	Token string `json:"token" yaml:"token"`
}

type HTTP struct {
	TimeoutSeconds    int     `json:"timeout_seconds" yaml:"timeout_seconds"`
	UserAgent         string  `json:"user_agent" yaml:"user_agent"`
	AcceptLanguage    string  `json:"accept_language" yaml:"accept_language"`
	Concurrency       int     `json:"concurrency" yaml:"concurrency"`
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
}

type Matches struct {
	// SecondaryContributes lets the ge_agenda page add records to the match
	// lists. Off by default, the page is only fetched and its mentions counted.
	SecondaryContributes bool `json:"secondary_contributes" yaml:"secondary_contributes"`
}

type Config struct {
	Team           Team     `json:"team" yaml:"team"`
	Sources        Sources  `json:"sources" yaml:"sources"`
	Output         string   `json:"output" yaml:"output"`
	HTTP           HTTP     `json:"http" yaml:"http"`
	Matches        Matches  `json:"matches" yaml:"matches"`
	InjuryKeywords []string `json:"injury_keywords" yaml:"injury_keywords"`
}

const (
	MinConcurrency = 1
	MaxConcurrency = 8
)

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		Team: Team{
			Name:  "Grêmio",
			Token: "gremio",
		},
		Sources: Sources{
			SourceRelegation:     "https://www.mat.ufmg.br/futebol/rebaixamento_seriea/",
			SourceLibertadores:   "https://www.mat.ufmg.br/futebol/classificacao-para-libertadores_seriea/",
			SourceSulamericana:   "https://www.mat.ufmg.br/futebol/classificacao-para-sulamericana_seriea/",
			SourceChampion:       "https://www.mat.ufmg.br/futebol/campeao_seriea/",
			SourceFixturesGE:     "https://ge.globo.com/rs/futebol/times/gremio/agenda-de-jogos-do-gremio/",
			SourceFixturesESPN:   "https://www.espn.com.br/futebol/time/calendario/_/id/6273/gremio",
			SourceStandings:      "https://www.cbf.com.br/futebol-brasileiro/tabelas/campeonato-brasileiro/serie-a/2025?doc=Tabela+Detalhada",
			SourceInjuriesReport: "https://ge.globo.com/rs/futebol/times/gremio/noticia/2025/09/30/gremio-chega-a-13-jogadores-fora-por-problemas-fisicos-meio-time-so-volta-em-2026.ghtml",
		},
		Output: "public/latest.json",
		HTTP: HTTP{
			TimeoutSeconds:    30,
			UserAgent:         "Mozilla/5.0 (compatible; GremioDashboardBot/1.0; +https://github.com/)",
			AcceptLanguage:    "pt-BR,pt;q=0.9,en-US;q=0.8,en;q=0.7",
			Concurrency:       4,
			RequestsPerSecond: 4,
		},
	}
}

type envOverrides struct {
	Output         string `envconfig:"OUTPUT"`
	TeamToken      string `envconfig:"TEAM_TOKEN"`
	Concurrency    int    `envconfig:"CONCURRENCY"`
	TimeoutSeconds int    `envconfig:"TIMEOUT_SECONDS"`
}

// Load builds the configuration of a run: compiled-in defaults, overridden by
// the file at path (and its .local sibling) when path is not empty, overridden
// by SNAPSHOT_* environment variables. A .env file in the cwd is read first.
// normalizeToken derives the team token from its name when none is configured.
func Load(path string, normalizeToken func(string) string) (Config, error) {
	cfg := Default()

	if path != "" {
		file, err := ReadConfig[Config](path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		// a renamed team without an explicit token gets its token re-derived
		if file.Team.Name != "" && file.Team.Token == "" {
			cfg.Team.Token = ""
		}
		err = mergo.Merge(&cfg, file, mergo.WithOverride)
		if err != nil {
			return Config{}, fmt.Errorf("merge config %s: %w", path, err)
		}
	}

	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var env envOverrides
	err = envconfig.Process("snapshot", &env)
	if err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	if env.Output != "" {
		cfg.Output = env.Output
	}
	if env.TeamToken != "" {
		cfg.Team.Token = env.TeamToken
	}
	if env.Concurrency != 0 {
		cfg.HTTP.Concurrency = env.Concurrency
	}
	if env.TimeoutSeconds != 0 {
		cfg.HTTP.TimeoutSeconds = env.TimeoutSeconds
	}

	if cfg.Team.Token == "" && normalizeToken != nil {
		cfg.Team.Token = normalizeToken(cfg.Team.Name)
	}
	cfg.Team.Token = strings.TrimSpace(cfg.Team.Token)

	return cfg, cfg.Validate()
}

// Validate rejects configurations a run cannot be started with.
func (c Config) Validate() error {
	var errs []error
	if c.Team.Token == "" {
		errs = append(errs, errors.New("team token is empty"))
	}
	if c.Output == "" {
		errs = append(errs, errors.New("output path is empty"))
	}
	if len(c.Sources) == 0 {
		errs = append(errs, errors.New("no sources configured"))
	}
	if c.HTTP.TimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("invalid timeout_seconds %d", c.HTTP.TimeoutSeconds))
	}
	return errors.Join(errs...)
}

// WorkerCount is the configured concurrency clamped to a polite range.
func (c Config) WorkerCount() int {
	n := c.HTTP.Concurrency
	if n < MinConcurrency {
		return MinConcurrency
	}
	if n > MaxConcurrency {
		return MaxConcurrency
	}
	return n
}
