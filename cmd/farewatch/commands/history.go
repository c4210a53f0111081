package commands

import (
	"github.com/spf13/cobra"

	"github.com/farewatch/fare-cli/internal/core"
	"github.com/farewatch/fare-cli/internal/output"
	"github.com/farewatch/fare-cli/internal/state"
)

func HistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print recorded price observations per itinerary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd)
			if err := cfg.Validate(); err != nil {
				return err
			}

			store, err := state.Open(cfg.StatePath)
			if err != nil {
				output.JSONError("state store unavailable", err.Error())
				return nil
			}
			defer func() { _ = store.Close() }()

			result := map[string][]core.PriceObservation{}
			for _, spec := range cfg.Itineraries {
				key := core.KeyFor(spec)
				obs, err := store.History(key, limit)
				if err != nil {
					continue
				}
				result[key.String()] = obs
			}
			return output.JSON(result)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum observations per itinerary, newest first")

	return cmd
}
