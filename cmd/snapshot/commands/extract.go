package commands

import (
	"fmt"
	"os"

	"gremio-dashboard/cmd/snapshot/utils"
	"gremio-dashboard/internal/document"
	"gremio-dashboard/internal/extract"
	"gremio-dashboard/internal/locator"
	"gremio-dashboard/internal/snapshot"

	"github.com/spf13/cobra"
)

var extractSecondary bool

func init() {
	extractCmd.Flags().BoolVar(&extractSecondary, "secondary", false, "Use the candidate selector of the secondary fixtures page for matches.")
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:       "extract <probability|standings|matches|injuries> <path/to/page.html>",
	Short:     "Runs a single extractor over a saved page and prints what it found.",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"probability", "standings", "matches", "injuries"},
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		token := cfg.Team.Token

		content, err := os.ReadFile(args[1])
		if err != nil {
			utils.Fatal("failed to read page", err)
		}
		doc, err := document.Parse(string(content))
		if err != nil {
			utils.Fatal("failed to parse page", err)
		}

		var result any
		switch args[0] {
		case "probability":
			rows := locator.TeamRowsOrBody(doc, token)
			result = map[string]any{
				"row":        rows[0].Text,
				"percentage": extract.Percentage(rows[0].Text),
			}
		case "standings":
			row, _ := extract.Standings(doc, token)
			result = row
		case "matches":
			selector := extract.FixtureSelectorESPN
			if extractSecondary {
				selector = extract.FixtureSelectorGE
			}
			upcoming, completed := extract.Matches([]extract.MatchPage{{Doc: doc, Selector: selector}}, token)
			result = map[string]any{
				"proximos_jogos": upcoming,
				"ultimos_jogos":  completed,
			}
		case "injuries":
			keywords := cfg.InjuryKeywords
			if len(keywords) == 0 {
				keywords = extract.DefaultInjuryKeywords
			}
			result = extract.Injuries(doc, keywords)
		default:
			utils.Fatal("unknown extractor", fmt.Errorf("%q is not one of %v", args[0], cmd.ValidArgs))
		}

		out, err := snapshot.MarshalValue(result)
		if err != nil {
			utils.Fatal("failed to encode result", err)
		}
		fmt.Print(string(out))
	},
}
