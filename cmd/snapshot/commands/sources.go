package commands

import (
	"sort"

	"gremio-dashboard/cmd/snapshot/utils"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Prints the sources a run would read.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		keys := make([]string, 0, len(cfg.Sources))
		for key := range cfg.Sources {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		t := utils.NewTable()
		t.SetTitle("team %s (token %q)", cfg.Team.Name, cfg.Team.Token)
		t.AppendHeader(table.Row{"Source", "URL"})
		for _, key := range keys {
			t.AppendRow(table.Row{key, cfg.Sources[key]})
		}
		t.Render()
	},
}
