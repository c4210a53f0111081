package main

import (
	"fmt"
	"os"

	"github.com/farewatch/fare-cli/cmd/farewatch/commands"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "farewatch",
		Short: "Flight fare watcher – match, track, and alert on a fixed itinerary",
		Long:  "Queries a flight-offers API for a fixed multi-city itinerary, picks the cheapest qualifying fare under routing/time/brand constraints, tracks run-to-run price changes, and alerts once when the price crosses below a threshold.",
	}

	root.PersistentFlags().String("mode", "", "Offer source mode: mock, live (default from config/env)")
	root.PersistentFlags().String("config", "", "Path to the yaml config file (default farewatch.yaml)")

	root.AddCommand(commands.WatchCmd())
	root.AddCommand(commands.OffersCmd())
	root.AddCommand(commands.HistoryCmd())
	root.AddCommand(commands.DoctorCmd())
	root.AddCommand(versionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print farewatch version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("farewatch v0.1.0")
		},
	}
}
