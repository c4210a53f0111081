package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/farewatch/fare-cli/internal/core"
	"github.com/farewatch/fare-cli/internal/output"
)

func OffersCmd() *cobra.Command {
	var top int
	var itinerary int

	cmd := &cobra.Command{
		Use:   "offers",
		Short: "Search and print the top qualifying offers as JSON",
		Example: `  farewatch offers --top 5
  farewatch offers --mode live --itinerary 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd)
			if err := cfg.Validate(); err != nil {
				return err
			}
			if itinerary < 1 || itinerary > len(cfg.Itineraries) {
				return fmt.Errorf("itinerary index out of range: %d of %d", itinerary, len(cfg.Itineraries))
			}
			spec := cfg.Itineraries[itinerary-1]

			source := buildSource(cfg)
			if ok, reason := source.Available(); !ok {
				return fmt.Errorf("offer source %s unavailable: %s", source.Name(), reason)
			}

			offers, err := source.Search(cmd.Context(), core.SearchRequest{
				Currency:  cfg.Currency,
				Adults:    cfg.Adults,
				Legs:      spec.Legs,
				MaxOffers: cfg.MaxOffers,
			})
			if err != nil {
				output.JSONError("search failed", err.Error())
				return nil
			}

			sel := core.Selector{
				Matcher: core.Matcher{LegMatch: cfg.LegMatch, StrictCabin: cfg.StrictCabin},
				Adults:  cfg.Adults,
			}
			ranked := sel.SelectTopN(offers, spec, cfg.Policy, top)
			return output.JSON(map[string]interface{}{
				"key":       core.KeyFor(spec).String(),
				"policy":    cfg.Policy,
				"searched":  len(offers),
				"qualified": len(ranked),
				"offers":    ranked,
			})
		},
	}

	cmd.Flags().IntVar(&top, "top", 5, "Number of ranked offers to print")
	cmd.Flags().IntVar(&itinerary, "itinerary", 1, "Which configured itinerary to search (1-based)")

	return cmd
}
