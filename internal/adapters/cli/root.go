// Package cli implements the evefrontier command surface from spec §6:
// route, scout, index-build, index-verify, plus the supplemented
// index-watch and route --interactive, following the teacher's
// New<Verb>Command() cobra convention.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Scetrov/evefrontier-routecore/internal/infrastructure/config"
)

var (
	dataDir    string
	configFile string
)

// NewRootCommand builds the evefrontier root command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "evefrontier",
		Short: "Plan interstellar routes across the EVE Frontier star map",
		Long: `evefrontier plans fuel- and heat-aware routes across a hybrid
gate/spatial-jump star map, and exposes scouting primitives for nearby
systems.

Examples:
  evefrontier route Sol Alpha --algorithm a-star --optimize fuel --ship Scorpion
  evefrontier scout gates Sol
  evefrontier scout range Sol --limit 20 --radius 50
  evefrontier index-build
  evefrontier index-verify --strict`,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Override the resolved data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a config file")

	rootCmd.AddCommand(NewRouteCommand())
	rootCmd.AddCommand(NewScoutCommand())
	rootCmd.AddCommand(NewIndexBuildCommand())
	rootCmd.AddCommand(NewIndexVerifyCommand())
	rootCmd.AddCommand(NewIndexWatchCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	return config.Load(dataDir, configFile)
}
