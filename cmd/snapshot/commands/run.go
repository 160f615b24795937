package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gremio-dashboard/cmd/snapshot/utils"
	"gremio-dashboard/internal/aggregator"
	"gremio-dashboard/internal/components/chrono"
	"gremio-dashboard/internal/components/telemetry"
	"gremio-dashboard/internal/fetcher"
	"gremio-dashboard/internal/snapshot"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	runOutput string
	runDump   string
	runQuiet  bool
)

func init() {
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "Where to write the snapshot, overrides the configured output.")
	runCmd.Flags().StringVar(&runDump, "dump", "", "A directory to save every fetched page to, for use with the extract command.")
	runCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "Do not print the summary table.")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [--config <path>] [--output <path/to/latest.json>]",
	Short: "Fetches every source once and writes the snapshot.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cfg := loadConfig()
		if runOutput != "" {
			cfg.Output = runOutput
		}

		otelTel, err := telemetry.SetupFromEnv(ctx, "cmd/snapshot")
		if err != nil {
			slog.Warn("otel export disabled", "err", err)
		}
		shutdown := func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
			defer cancel()
			if err := otelTel.Shutdown(ctx); err != nil {
				slog.Warn("failed to flush telemetry", "err", err)
			}
		}

		tel := telemetry.SlogAPI{}
		client, err := fetcher.NewClient(fetcher.Options{
			Timeout:           time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second,
			UserAgent:         cfg.HTTP.UserAgent,
			AcceptLanguage:    cfg.HTTP.AcceptLanguage,
			RequestsPerSecond: cfg.HTTP.RequestsPerSecond,
			DumpDir:           runDump,
		}, tel)
		if err != nil {
			shutdown()
			utils.Fatal("failed to create fetcher", err)
		}
		agg := aggregator.New(cfg, client, chrono.NewStandardImpl(), tel)

		t1 := time.Now()
		snap := agg.Run(ctx)
		t2 := time.Now()

		err = snapshot.Write(cfg.Output, snap)
		shutdown()
		if err != nil {
			utils.Fatal("failed to write snapshot", err)
		}
		slog.Info(
			"generated snapshot",
			"path", cfg.Output,
			"fields_present", snap.Present(),
			"seconds", t2.Sub(t1).Seconds(),
		)

		if !runQuiet {
			renderSummary(snap)
		}
	},
}

func optional[T any](value *T) string {
	if value == nil {
		return "-"
	}
	return fmt.Sprint(*value)
}

func renderSummary(snap snapshot.Snapshot) {
	data := snap.Data

	t := utils.NewTable()
	t.SetTitle("generated at %s", snap.GeneratedAt.Format(time.RFC3339))
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRows([]table.Row{
		{"rebaixamento", optional(data.Probabilities.Relegation)},
		{"libertadores", optional(data.Probabilities.Libertadores)},
		{"sulamericana", optional(data.Probabilities.Sulamericana)},
		{"campeao", optional(data.Probabilities.Champion)},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"posicao", optional(data.Standings.Position)},
		{"pontos", optional(data.Standings.Points)},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"proximos_jogos", len(data.Upcoming)},
		{"ultimos_jogos", len(data.Completed)},
		{"lesionados", len(data.Injuries)},
		{"suspensos", len(data.Suspended)},
	})
	t.Render()
}
