package commands

import (
	"context"
	"fmt"
	"os"

	"gremio-dashboard/cmd/snapshot/utils"
	"gremio-dashboard/internal/components/telemetry"
	"gremio-dashboard/internal/config"
	"gremio-dashboard/internal/locator"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "snapshot gathers public data about a football team into a single JSON document.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "A json5 or yaml config file, the compiled-in defaults are used when omitted.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enables debug logging.")
}

func loadConfig() config.Config {
	cfg, err := config.Load(configPath, locator.Token)
	if err != nil {
		utils.Fatal("failed to load config", err)
	}
	return cfg
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
