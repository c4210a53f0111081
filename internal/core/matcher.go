package core

import "strings"

// Matcher decides whether one leg of an offer satisfies a RouteSpec.
// It is a pure function of its inputs: missing or malformed offer data is
// a routine non-match, never an error.
type Matcher struct {
	// LegMatch picks nonstop (first segment arrives at destination) or
	// through (last segment arrives at destination) leg matching.
	LegMatch LegMatchMode

	// RequireBrand rejects offers whose branded fare misses the spec's
	// alias set. Left false, brand is extracted but not required.
	RequireBrand bool

	// StrictCabin requires every fare detail that declares a cabin to
	// declare the spec's cabin.
	StrictCabin bool
}

// Match evaluates the offer's itinerary at legIndex against spec.
func (m Matcher) Match(off *FlightOffer, spec RouteSpec, legIndex int) MatchResult {
	var res MatchResult
	if off == nil || legIndex < 0 || legIndex >= len(off.Itineraries) {
		return res
	}
	itin := off.Itineraries[legIndex]
	if len(itin.Segments) == 0 {
		return res
	}

	first := itin.Segments[0]
	arrival := first.Arrival
	if m.LegMatch == LegMatchThrough {
		arrival = itin.Segments[len(itin.Segments)-1].Arrival
	}

	if first.Departure.IATACode != spec.Origin || arrival.IATACode != spec.Destination {
		return res
	}
	if !strings.HasPrefix(first.Departure.At, spec.Date+"T") {
		return res
	}
	if spec.Time != "" && departureClock(first.Departure.At) != spec.Time {
		return res
	}

	res.Brand, res.BrandMatched = brandMatch(off, spec.BrandAliases)
	if m.RequireBrand && len(spec.BrandAliases) > 0 && !res.BrandMatched {
		return MatchResult{}
	}
	if !validatingCarrierOK(off, spec.Carrier) {
		return MatchResult{}
	}
	if m.StrictCabin && !cabinOK(off, spec.Cabin) {
		return MatchResult{}
	}

	res.Matched = true
	res.Duration = ParseDuration(itin.Duration)
	if est := PerLegEstimates(off); legIndex < len(est) {
		res.LegPrice = est[legIndex]
	}
	return res
}

// MatchItinerary requires every leg of the spec to match its itinerary
// within the same offer, modelling a single priced multi-city fare.
func (m Matcher) MatchItinerary(off *FlightOffer, spec ItinerarySpec) (MatchResult, bool) {
	var combined MatchResult
	for i, leg := range spec.Legs {
		res := m.Match(off, leg, i)
		if !res.Matched {
			return MatchResult{}, false
		}
		if i == 0 {
			combined = res
		}
		combined.BrandMatched = combined.BrandMatched || res.BrandMatched
		if combined.Brand == "" {
			combined.Brand = res.Brand
		}
	}
	combined.Matched = len(spec.Legs) > 0
	return combined, combined.Matched
}

// departureClock extracts "HH:MM" from an ISO local timestamp.
func departureClock(at string) string {
	if i := strings.Index(at, "T"); i >= 0 && len(at) >= i+6 {
		return at[i+1 : i+6]
	}
	if len(at) >= 16 {
		return at[11:16]
	}
	return ""
}

// brandMatch scans every traveler pricing's fare details for a brand name
// containing one of the accepted aliases, case-insensitively. With no
// aliases configured the check is skipped and passes.
func brandMatch(off *FlightOffer, aliases []string) (brand string, matched bool) {
	for _, tp := range off.TravelerPricings {
		for _, fd := range tp.FareDetailsBySegment {
			if fd.BrandedFare == "" {
				continue
			}
			if brand == "" {
				brand = fd.BrandedFare
			}
			upper := strings.ToUpper(fd.BrandedFare)
			for _, a := range aliases {
				if a != "" && strings.Contains(upper, strings.ToUpper(a)) {
					return fd.BrandedFare, true
				}
			}
		}
	}
	return brand, false
}

// validatingCarrierOK checks the required carrier against the offer's
// declared validating carriers. An offer that declares none passes:
// unknown is not a rejection.
func validatingCarrierOK(off *FlightOffer, carrier string) bool {
	if carrier == "" || len(off.ValidatingAirlineCodes) == 0 {
		return true
	}
	for _, c := range off.ValidatingAirlineCodes {
		if c == carrier {
			return true
		}
	}
	return false
}

// cabinOK requires every declared cabin to equal the spec's cabin.
// Fare details without a cabin field do not fail the check.
func cabinOK(off *FlightOffer, cabin string) bool {
	if cabin == "" {
		return true
	}
	for _, tp := range off.TravelerPricings {
		for _, fd := range tp.FareDetailsBySegment {
			if fd.Cabin != "" && !strings.EqualFold(fd.Cabin, cabin) {
				return false
			}
		}
	}
	return true
}
