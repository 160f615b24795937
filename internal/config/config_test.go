package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte(contents), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultHasEverySource(t *testing.T) {
	cfg := Default()
	require.Len(t, cfg.Sources, 8)
	for _, key := range []string{
		SourceRelegation, SourceLibertadores, SourceSulamericana, SourceChampion,
		SourceFixturesGE, SourceFixturesESPN, SourceStandings, SourceInjuriesReport,
	} {
		require.Contains(t, cfg.Sources, key)
	}
	require.NoError(t, cfg.Validate())
}

func TestReadConfigMergesLocalOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "snapshot.json5", `{
		// comments are allowed
		output: "out/a.json",
		http: { concurrency: 2, timeout_seconds: 10 },
	}`)
	writeFile(t, dir, "snapshot.local.json5", `{ output: "out/b.json" }`)

	cfg, err := ReadConfig[Config](path)
	require.NoError(t, err)
	require.Equal(t, "out/b.json", cfg.Output)
	require.Equal(t, 2, cfg.HTTP.Concurrency)
	require.Equal(t, 10, cfg.HTTP.TimeoutSeconds)
}

func TestReadConfigYaml(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "snapshot.yaml", strings.Join([]string{
		"team:",
		"  name: Internacional",
		"sources:",
		"  cbf_tabela: https://example.com/tabela",
		"injury_keywords: [lesao, desfalque]",
	}, "\n"))

	cfg, err := ReadConfig[Config](path)
	require.NoError(t, err)
	require.Equal(t, "Internacional", cfg.Team.Name)
	require.Equal(t, "https://example.com/tabela", cfg.Sources[SourceStandings])
	require.Equal(t, []string{"lesao", "desfalque"}, cfg.InjuryKeywords)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[Config](filepath.Join(t.TempDir(), "nope.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadLayersDefaultsFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "snapshot.json5", `{
		team: { name: "Internacional" },
		sources: { cbf_tabela: "https://example.com/tabela" },
	}`)
	t.Setenv("SNAPSHOT_OUTPUT", "/tmp/snap.json")
	t.Setenv("SNAPSHOT_CONCURRENCY", "6")

	cfg, err := Load(path, strings.ToLower)
	require.NoError(t, err)

	require.Equal(t, "internacional", cfg.Team.Token)
	require.Equal(t, "/tmp/snap.json", cfg.Output)
	require.Equal(t, 6, cfg.HTTP.Concurrency)
	require.Equal(t, "https://example.com/tabela", cfg.Sources[SourceStandings])
	// untouched keys keep their compiled-in value
	require.Equal(t, Default().Sources[SourceChampion], cfg.Sources[SourceChampion])
	require.Len(t, cfg.Sources, 8)
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("", strings.ToLower)
	require.NoError(t, err)
	require.Equal(t, "gremio", cfg.Team.Token)
	require.Equal(t, 30, cfg.HTTP.TimeoutSeconds)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Team.Token = ""
	cfg.Output = ""
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "team token")
	require.Contains(t, err.Error(), "output path")
}

func TestWorkerCount(t *testing.T) {
	cases := []struct {
		configured int
		expected   int
	}{
		{configured: 0, expected: 1},
		{configured: 4, expected: 4},
		{configured: 50, expected: 8},
	}
	for _, test := range cases {
		cfg := Default()
		cfg.HTTP.Concurrency = test.configured
		require.Equal(t, test.expected, cfg.WorkerCount())
	}
}
