package core

import (
	"reflect"
	"testing"
)

func sjuLeg() RouteSpec {
	return RouteSpec{
		Origin:       "SJU",
		Destination:  "FCO",
		Date:         "2026-05-06",
		Time:         "20:25",
		Cabin:        "ECONOMY",
		Carrier:      "IB",
		BrandAliases: []string{"OPTIMA", "OPTIMAL"},
	}
}

func offerAt(origin, dest, at string) FlightOffer {
	return FlightOffer{
		ID:                     "test",
		Itineraries:            []Itinerary{{Duration: "PT11H0M", Segments: []Segment{{CarrierCode: "IB", Number: "6502", Departure: SegmentPoint{IATACode: origin, At: at}, Arrival: SegmentPoint{IATACode: dest, At: "2026-05-07T13:25:00"}}}}},
		Price:                  Price{GrandTotal: "2400.00"},
		ValidatingAirlineCodes: []string{"IB"},
		TravelerPricings: []TravelerPricing{{
			TravelerType:         "ADULT",
			Price:                Price{Total: "600.00"},
			FareDetailsBySegment: []FareDetail{{Cabin: "ECONOMY", BrandedFare: "OPTIMA"}},
		}},
	}
}

func TestMatch_ExactTimeBoundary(t *testing.T) {
	m := Matcher{LegMatch: LegMatchNonstop}
	spec := sjuLeg()

	tests := []struct {
		name  string
		offer FlightOffer
		want  bool
	}{
		{"exact match", offerAt("SJU", "FCO", "2026-05-06T20:25:00"), true},
		{"one minute late", offerAt("SJU", "FCO", "2026-05-06T20:26:00"), false},
		{"wrong origin", offerAt("BQN", "FCO", "2026-05-06T20:25:00"), false},
		{"wrong destination", offerAt("SJU", "MAD", "2026-05-06T20:25:00"), false},
		{"wrong date", offerAt("SJU", "FCO", "2026-05-07T20:25:00"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Match(&tt.offer, spec, 0).Matched; got != tt.want {
				t.Errorf("Matched = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatch_AnyTimeWhenTimeUnset(t *testing.T) {
	m := Matcher{LegMatch: LegMatchNonstop}
	spec := sjuLeg()
	spec.Time = ""

	off := offerAt("SJU", "FCO", "2026-05-06T07:10:00")
	if !m.Match(&off, spec, 0).Matched {
		t.Error("date-only spec should accept any departure time that day")
	}
}

func TestMatch_IsPure(t *testing.T) {
	m := Matcher{LegMatch: LegMatchNonstop}
	spec := sjuLeg()
	off := offerAt("SJU", "FCO", "2026-05-06T20:25:00")

	first := m.Match(&off, spec, 0)
	second := m.Match(&off, spec, 0)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("matching is not idempotent: %+v vs %+v", first, second)
	}
}

func TestMatch_ConnectionTolerance(t *testing.T) {
	off := FlightOffer{
		Itineraries: []Itinerary{{
			Duration: "PT15H0M",
			Segments: []Segment{
				{CarrierCode: "IB", Number: "100", Departure: SegmentPoint{IATACode: "SJU", At: "2026-05-06T20:25:00"}, Arrival: SegmentPoint{IATACode: "MAD", At: "2026-05-07T10:00:00"}},
				{CarrierCode: "IB", Number: "200", Departure: SegmentPoint{IATACode: "MAD", At: "2026-05-07T12:00:00"}, Arrival: SegmentPoint{IATACode: "FCO", At: "2026-05-07T14:00:00"}},
			},
		}},
		Price: Price{GrandTotal: "1800.00"},
	}
	spec := sjuLeg()
	spec.BrandAliases = nil

	if (Matcher{LegMatch: LegMatchNonstop}).Match(&off, spec, 0).Matched {
		t.Error("nonstop mode should reject a connecting itinerary")
	}
	if !(Matcher{LegMatch: LegMatchThrough}).Match(&off, spec, 0).Matched {
		t.Error("through mode should accept a connecting itinerary ending at the destination")
	}
}

func TestMatch_BrandAliases(t *testing.T) {
	m := Matcher{LegMatch: LegMatchNonstop}
	spec := sjuLeg()

	off := offerAt("SJU", "FCO", "2026-05-06T20:25:00")
	off.TravelerPricings[0].FareDetailsBySegment[0].BrandedFare = "Optimal Plus"
	res := m.Match(&off, spec, 0)
	if !res.Matched || !res.BrandMatched {
		t.Errorf("alias OPTIMAL should match case-insensitively as a substring: %+v", res)
	}

	off.TravelerPricings[0].FareDetailsBySegment[0].BrandedFare = "BASIC"
	res = m.Match(&off, spec, 0)
	if !res.Matched {
		t.Error("non-required brand miss should still match")
	}
	if res.BrandMatched {
		t.Error("BASIC should not count as a brand match")
	}

	m.RequireBrand = true
	if m.Match(&off, spec, 0).Matched {
		t.Error("required brand miss should reject the offer")
	}
}

func TestMatch_ValidatingCarrier(t *testing.T) {
	m := Matcher{LegMatch: LegMatchNonstop}
	spec := sjuLeg()

	off := offerAt("SJU", "FCO", "2026-05-06T20:25:00")
	off.ValidatingAirlineCodes = []string{"AA"}
	if m.Match(&off, spec, 0).Matched {
		t.Error("wrong validating carrier should reject the offer")
	}

	off.ValidatingAirlineCodes = nil
	if !m.Match(&off, spec, 0).Matched {
		t.Error("offer with no declared validating carriers must pass as unknown")
	}
}

func TestMatch_StrictCabin(t *testing.T) {
	spec := sjuLeg()
	off := offerAt("SJU", "FCO", "2026-05-06T20:25:00")
	off.TravelerPricings[0].FareDetailsBySegment[0].Cabin = "BUSINESS"

	if !(Matcher{LegMatch: LegMatchNonstop}).Match(&off, spec, 0).Matched {
		t.Error("cabin mismatch should pass when strict mode is off")
	}
	if (Matcher{LegMatch: LegMatchNonstop, StrictCabin: true}).Match(&off, spec, 0).Matched {
		t.Error("cabin mismatch should fail in strict mode")
	}

	off.TravelerPricings[0].FareDetailsBySegment[0].Cabin = ""
	if !(Matcher{LegMatch: LegMatchNonstop, StrictCabin: true}).Match(&off, spec, 0).Matched {
		t.Error("absent cabin field must not fail the strict check")
	}
}

func TestMatch_MalformedOfferIsNonMatch(t *testing.T) {
	m := Matcher{LegMatch: LegMatchNonstop}
	spec := sjuLeg()

	empty := FlightOffer{}
	if m.Match(&empty, spec, 0).Matched {
		t.Error("offer with no itineraries must be a non-match, not a panic")
	}

	noSegs := FlightOffer{Itineraries: []Itinerary{{}}}
	if m.Match(&noSegs, spec, 0).Matched {
		t.Error("itinerary with no segments must be a non-match")
	}

	off := offerAt("SJU", "FCO", "2026-05-06T20:25:00")
	if m.Match(&off, spec, 3).Matched {
		t.Error("leg index beyond the offer's itineraries must be a non-match")
	}
}

func TestMatchItinerary_AllLegsRequired(t *testing.T) {
	m := Matcher{LegMatch: LegMatchNonstop}
	spec := ItinerarySpec{Legs: []RouteSpec{
		{Origin: "SJU", Destination: "FCO", Date: "2026-05-06", Time: "20:25"},
		{Origin: "FCO", Destination: "MAD", Date: "2026-05-17", Time: "14:45"},
	}}

	off := FlightOffer{
		Itineraries: []Itinerary{
			{Segments: []Segment{{Departure: SegmentPoint{IATACode: "SJU", At: "2026-05-06T20:25:00"}, Arrival: SegmentPoint{IATACode: "FCO"}}}},
			{Segments: []Segment{{Departure: SegmentPoint{IATACode: "FCO", At: "2026-05-17T14:45:00"}, Arrival: SegmentPoint{IATACode: "MAD"}}}},
		},
		Price: Price{GrandTotal: "2000.00"},
	}
	if _, ok := m.MatchItinerary(&off, spec); !ok {
		t.Error("expected both legs to match")
	}

	off.Itineraries[1].Segments[0].Departure.At = "2026-05-17T09:00:00"
	if _, ok := m.MatchItinerary(&off, spec); ok {
		t.Error("one failing leg must reject the whole offer")
	}

	short := FlightOffer{Itineraries: off.Itineraries[:1]}
	if _, ok := m.MatchItinerary(&short, spec); ok {
		t.Error("offer with fewer itineraries than legs must be rejected")
	}
}
