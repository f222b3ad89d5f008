package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Scetrov/evefrontier-routecore/internal/infrastructure/starmaploader"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/spatial"
)

// NewIndexBuildCommand builds the `index-build` command, spec §6:
// index-build [--data-dir D]: builds spatial index beside the dataset
// file with a ".spatial.bin" suffix.
func NewIndexBuildCommand() *cobra.Command {
	var releaseTag string
	cmd := &cobra.Command{
		Use:   "index-build",
		Short: "Build the spatial index beside the star-map dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			m, err := starmaploader.LoadSQLite(cfg.DatasetPath())
			if err != nil {
				return fmt.Errorf("load starmap: %w", err)
			}
			if err := starmaploader.BuildIndex(m, cfg.DatasetPath(), cfg.IndexPath(), releaseTag, time.Now().Unix()); err != nil {
				return fmt.Errorf("build index: %w", err)
			}
			fmt.Printf("index built: %s (%d systems)\n", cfg.IndexPath(), m.Len())
			return nil
		},
	}
	cmd.Flags().StringVar(&releaseTag, "release-tag", "", "Release tag recorded in the index's source metadata")
	return cmd
}

// exitCodeFor maps a FreshnessReport to the exit code spec §6 documents:
// 0=Fresh, 1=Stale, 2=Missing, 3=FormatError (a legacy-format index or
// one that fails to parse), 4=DatasetMissing, 5=Error.
func exitCodeFor(report spatial.FreshnessReport) int {
	var formatErr *spatial.FormatError
	if errors.As(report.Err, &formatErr) {
		return 3
	}
	switch report.Result {
	case spatial.Fresh:
		return 0
	case spatial.Stale:
		return 1
	case spatial.Missing:
		return 2
	case spatial.LegacyFormat:
		return 3
	case spatial.DatasetMissing:
		return 4
	default:
		return 5
	}
}

// NewIndexVerifyCommand builds the `index-verify` command, spec §6:
// index-verify [--data-dir D] [--strict] [--json] [--quiet].
func NewIndexVerifyCommand() *cobra.Command {
	var jsonFlag, quietFlag, strictFlag bool
	cmd := &cobra.Command{
		Use:   "index-verify",
		Short: "Verify the spatial index is fresh against its dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			report := starmaploader.VerifyIndex(cfg.IndexPath(), cfg.DatasetPath(), strictFlag, "")
			if !quietFlag {
				if jsonFlag {
					fmt.Printf("{\"result\":%q}\n", report.Result.String())
				} else {
					fmt.Println(report.Result.String())
				}
			}
			os.Exit(exitCodeFor(report))
			return nil
		},
	}
	cmd.Flags().BoolVar(&strictFlag, "strict", false, "Also require the recorded release tag to match")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit the result as JSON")
	cmd.Flags().BoolVar(&quietFlag, "quiet", false, "Suppress output; rely on the exit code only")
	return cmd
}

// NewIndexWatchCommand builds the supplemented `index-watch` command: a
// scheduled periodic verify_freshness check for a long-lived process,
// using robfig/cron for the schedule.
func NewIndexWatchCommand() *cobra.Command {
	var intervalFlag time.Duration
	cmd := &cobra.Command{
		Use:   "index-watch",
		Short: "Periodically verify the spatial index's freshness until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			interval := intervalFlag
			if interval <= 0 {
				interval = cfg.WatchInterval
			}
			return runIndexWatch(cfg, interval)
		},
	}
	cmd.Flags().DurationVar(&intervalFlag, "interval", 0, "Polling interval (defaults to the configured watch_interval)")
	return cmd
}
