package notify

import (
	"github.com/farewatch/fare-cli/internal/logger"
)

// Notifier is one outbound channel.
type Notifier interface {
	Name() string
	// Enabled reports whether the channel is configured; the reason
	// explains a false result.
	Enabled() (bool, string)
	Send(subject, body string) error
}

// Dispatcher fans a message out to every enabled channel. Each send is
// independent: a failing channel is logged and the rest are still tried.
type Dispatcher struct {
	log      logger.Logger
	channels []Notifier
}

func NewDispatcher(log logger.Logger, channels ...Notifier) *Dispatcher {
	return &Dispatcher{log: log, channels: channels}
}

// Broadcast sends the message to all channels. With none configured it
// logs the body so the run output is never silently lost.
func (d *Dispatcher) Broadcast(subject, body string) {
	sent := 0
	for _, ch := range d.channels {
		ok, reason := ch.Enabled()
		if !ok {
			d.log.Debug("channel skipped", "channel", ch.Name(), "reason", reason)
			continue
		}
		if err := ch.Send(subject, body); err != nil {
			d.log.Error("channel send failed", "channel", ch.Name(), "error", err)
			continue
		}
		d.log.Info("notification sent", "channel", ch.Name())
		sent++
	}
	if sent == 0 {
		d.log.Info("no notification channels delivered, printing only", "subject", subject)
	}
}
