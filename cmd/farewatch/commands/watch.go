package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/farewatch/fare-cli/internal/core"
	"github.com/farewatch/fare-cli/internal/logger"
	"github.com/farewatch/fare-cli/internal/output"
)

func WatchCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run one fetch-evaluate-alert cycle over the configured itineraries",
		Example: `  farewatch watch
  farewatch watch --mode mock --dry-run
  FAREWATCH_MODE=live farewatch watch --config iberia.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd)
			log := logger.New()

			if err := cfg.Validate(); err != nil {
				return err
			}
			source := buildSource(cfg)
			if ok, reason := source.Available(); !ok {
				return fmt.Errorf("offer source %s unavailable: %s", source.Name(), reason)
			}

			store, closeStore := openStore(cfg, log)
			defer closeStore()

			watcher := core.NewWatcher(source, store, buildDispatcher(cfg, log), log, watchParams(cfg, dryRun))
			report := watcher.Run(cmd.Context())

			output.Text(report.Body)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Evaluate and print without persisting state or notifying")

	return cmd
}
