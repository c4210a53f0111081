package commands

import (
	"github.com/spf13/cobra"

	"github.com/farewatch/fare-cli/internal/adapters/live"
	"github.com/farewatch/fare-cli/internal/adapters/mock"
	"github.com/farewatch/fare-cli/internal/config"
	"github.com/farewatch/fare-cli/internal/core"
	"github.com/farewatch/fare-cli/internal/logger"
	"github.com/farewatch/fare-cli/internal/notify"
	"github.com/farewatch/fare-cli/internal/state"
)

func loadConfig(cmd *cobra.Command) *config.Config {
	path, _ := cmd.Flags().GetString("config")
	mode, _ := cmd.Flags().GetString("mode")
	return config.Load(path).WithMode(mode)
}

func buildSource(cfg *config.Config) core.OfferSource {
	if cfg.Mode == config.ModeLive {
		return live.NewAmadeusSource(cfg.Amadeus)
	}
	return mock.NewOffersSource()
}

func buildDispatcher(cfg *config.Config, log logger.Logger) *notify.Dispatcher {
	return notify.NewDispatcher(log,
		notify.NewEmail(cfg),
		notify.NewTelegram(cfg),
		notify.NewDiscord(cfg.DiscordWebhookURL, cfg.ChannelEnabled("discord")),
	)
}

// openStore degrades to a no-op store when the file cannot be opened:
// persistence failures never abort a run.
func openStore(cfg *config.Config, log logger.Logger) (core.StateStore, func()) {
	st, err := state.Open(cfg.StatePath)
	if err != nil {
		log.Warn("state store unavailable, continuing without persistence",
			"path", cfg.StatePath, "error", err)
		return state.Nop{}, func() {}
	}
	return st, func() { _ = st.Close() }
}

func watchParams(cfg *config.Config, dryRun bool) core.WatchParams {
	return core.WatchParams{
		Itineraries: cfg.Itineraries,
		Policy:      cfg.Policy,
		LegMatch:    cfg.LegMatch,
		StrictCabin: cfg.StrictCabin,
		Currency:    cfg.Currency,
		Adults:      cfg.Adults,
		MaxOffers:   cfg.MaxOffers,
		Threshold:   cfg.Threshold,
		Subject:     cfg.Subject,
		DryRun:      dryRun,
	}
}
