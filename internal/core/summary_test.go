package core

import (
	"strings"
	"testing"
)

func TestPerLegEstimates_ProportionalToDuration(t *testing.T) {
	off := FlightOffer{
		Price: Price{GrandTotal: "300.00"},
		Itineraries: []Itinerary{
			{Duration: "PT2H0M"},
			{Duration: "PT1H0M"},
		},
	}

	est := PerLegEstimates(&off)
	if len(est) != 2 {
		t.Fatalf("expected 2 estimates, got %d", len(est))
	}
	if est[0] != 200.0 || est[1] != 100.0 {
		t.Errorf("expected 200/100 split, got %v", est)
	}
}

func TestPerLegEstimates_EqualSplitOnZeroDurations(t *testing.T) {
	off := FlightOffer{
		Price: Price{GrandTotal: "300.00"},
		Itineraries: []Itinerary{
			{Duration: "bogus"},
			{Duration: ""},
		},
	}

	est := PerLegEstimates(&off)
	if est[0] != 150.0 || est[1] != 150.0 {
		t.Errorf("expected equal split, got %v", est)
	}
}

func TestRenderBreakdown(t *testing.T) {
	off := FlightOffer{
		Price:                  Price{GrandTotal: "2400.00"},
		ValidatingAirlineCodes: []string{"IB"},
		Itineraries: []Itinerary{{
			Duration: "PT11H0M",
			Segments: []Segment{{
				CarrierCode: "IB",
				Number:      "6502",
				Departure:   SegmentPoint{IATACode: "SJU", At: "2026-05-06T20:25:00"},
				Arrival:     SegmentPoint{IATACode: "FCO", At: "2026-05-07T13:25:00"},
				Duration:    "PT11H0M",
				Operating:   &OperatingRef{CarrierCode: "I2"},
			}},
		}},
		TravelerPricings: []TravelerPricing{{TravelerType: "ADULT", Price: Price{Total: "600.00"}}},
	}

	body := RenderBreakdown(&off, "USD", true)

	for _, want := range []string{
		"Total: USD 2400.00 | Validating: IB",
		"Leg 1: ~USD 2400.00 (dur: 11h 0m)",
		"IB6502 (operated by I2): SJU 2026-05-06 20:25 -> FCO 2026-05-07 13:25 (11h 0m)",
		"Traveler pricing: ADULT: 600.00 USD",
		"(branded fare matched)",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("breakdown missing %q in:\n%s", want, body)
		}
	}

	plain := RenderBreakdown(&off, "USD", false)
	if strings.Contains(plain, "branded fare matched") {
		t.Error("brand marker must only appear when the brand check matched")
	}
}
