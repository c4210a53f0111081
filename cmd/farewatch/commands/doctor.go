package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/farewatch/fare-cli/internal/notify"
	"github.com/farewatch/fare-cli/internal/output"
	"github.com/farewatch/fare-cli/internal/state"
)

type channelInfo struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

type doctorReport struct {
	Mode        string        `json:"mode"`
	Source      channelInfo   `json:"source"`
	Channels    []channelInfo `json:"channels"`
	StatePath   string        `json:"statePath"`
	StateOK     bool          `json:"stateOk"`
	Itineraries int           `json:"itineraries"`
	Threshold   *float64      `json:"threshold,omitempty"`
	Healthy     bool          `json:"healthy"`
	Summary     string        `json:"summary"`
}

func DoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate configuration, credentials, and channel health",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd)

			report := doctorReport{
				Mode:        string(cfg.Mode),
				StatePath:   cfg.StatePath,
				Itineraries: len(cfg.Itineraries),
				Threshold:   cfg.Threshold,
			}

			source := buildSource(cfg)
			report.Source = channelInfo{Name: source.Name(), Status: "active"}
			if ok, reason := source.Available(); !ok {
				report.Source.Status = "no_credentials"
				report.Source.Reason = reason
			}

			var issues []string
			for _, ch := range []notify.Notifier{
				notify.NewEmail(cfg),
				notify.NewTelegram(cfg),
				notify.NewDiscord(cfg.DiscordWebhookURL, cfg.ChannelEnabled("discord")),
			} {
				info := channelInfo{Name: ch.Name(), Status: "active"}
				if ok, reason := ch.Enabled(); !ok {
					info.Status = "inactive"
					info.Reason = reason
					if cfg.ChannelEnabled(ch.Name()) {
						issues = append(issues, fmt.Sprintf("%s: %s", ch.Name(), reason))
					}
				}
				report.Channels = append(report.Channels, info)
			}

			if st, err := state.Open(cfg.StatePath); err == nil {
				report.StateOK = true
				_ = st.Close()
			} else {
				issues = append(issues, fmt.Sprintf("state: %v", err))
			}

			if err := cfg.Validate(); err != nil {
				issues = append(issues, err.Error())
			}

			report.Healthy = report.Source.Status == "active" && report.StateOK && len(cfg.Itineraries) > 0
			report.Summary = fmt.Sprintf("%d itineraries, source %s (mode=%s)",
				report.Itineraries, report.Source.Status, cfg.Mode)
			if len(issues) > 0 {
				report.Summary += " | issues: " + strings.Join(issues, "; ")
			}

			return output.JSON(report)
		},
	}
	return cmd
}
