package notify

import (
	"fmt"
	"testing"

	"github.com/farewatch/fare-cli/internal/logger"
)

type fakeChannel struct {
	name    string
	enabled bool
	fail    bool
	sent    int
}

func (f *fakeChannel) Name() string { return f.name }

func (f *fakeChannel) Enabled() (bool, string) {
	if !f.enabled {
		return false, "not configured"
	}
	return true, ""
}

func (f *fakeChannel) Send(subject, body string) error {
	if f.fail {
		return fmt.Errorf("send failed")
	}
	f.sent++
	return nil
}

func TestDispatcher_ContinuesPastFailingChannel(t *testing.T) {
	bad := &fakeChannel{name: "bad", enabled: true, fail: true}
	good := &fakeChannel{name: "good", enabled: true}

	d := NewDispatcher(logger.NewNop(), bad, good)
	d.Broadcast("subject", "body")

	if good.sent != 1 {
		t.Errorf("failing channel must not block the next one, good sent %d", good.sent)
	}
}

func TestDispatcher_SkipsDisabledChannels(t *testing.T) {
	off := &fakeChannel{name: "off", enabled: false}
	on := &fakeChannel{name: "on", enabled: true}

	d := NewDispatcher(logger.NewNop(), off, on)
	d.Broadcast("subject", "body")

	if off.sent != 0 {
		t.Error("disabled channel must not be sent to")
	}
	if on.sent != 1 {
		t.Errorf("enabled channel should receive the message, got %d", on.sent)
	}
}

func TestDispatcher_NoChannelsDoesNotPanic(t *testing.T) {
	d := NewDispatcher(logger.NewNop())
	d.Broadcast("subject", "body")
}
