package state

import "github.com/farewatch/fare-cli/internal/core"

// Nop is the degraded store used when the real one cannot be opened:
// every key reads as unseen and writes vanish. The run still produces its
// report; only run-to-run memory is lost.
type Nop struct{}

func (Nop) Load(core.ItineraryKey) (core.LegState, bool, error) { return core.LegState{}, false, nil }

func (Nop) Save(core.ItineraryKey, core.LegState) error { return nil }

func (Nop) AppendHistory(core.ItineraryKey, core.PriceObservation) error { return nil }
