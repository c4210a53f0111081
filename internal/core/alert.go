package core

import (
	"fmt"
	"math"
)

// priceEpsilon treats sub-cent movements as no change.
const priceEpsilon = 0.005

// Transition is the outcome of feeding one price observation through the
// alert state machine.
type Transition struct {
	// Note is the human-readable run-to-run delta.
	Note string
	// Alert is true exactly when the price first crossed below the
	// threshold; the flag is edge-triggered, a sustained dip fires once.
	Alert bool
	// State is the updated persisted state.
	State LegState
}

// Evaluate applies a new price observation to the persisted state.
// Threshold may be nil, meaning no alerting is configured: the price is
// still tracked, nothing ever fires. Callers must only invoke Evaluate
// when a qualifying offer was found; a missing observation leaves state
// untouched by never reaching this function.
func Evaluate(prev LegState, price float64, threshold *float64) Transition {
	tr := Transition{State: prev}

	switch {
	case prev.LastPrice == nil:
		tr.Note = "(first run)"
	case math.Abs(price-*prev.LastPrice) < priceEpsilon:
		tr.Note = "unchanged"
	case price > *prev.LastPrice:
		tr.Note = fmt.Sprintf("increased by %.2f", price-*prev.LastPrice)
	default:
		tr.Note = fmt.Sprintf("decreased by %.2f", *prev.LastPrice-price)
	}

	if threshold != nil {
		if price < *threshold && !tr.State.AlertedBelow {
			tr.Alert = true
			tr.State.AlertedBelow = true
		} else if price >= *threshold && tr.State.AlertedBelow {
			// Recovery resets the latch silently.
			tr.State.AlertedBelow = false
		}
	}

	p := price
	tr.State.LastPrice = &p
	return tr
}
