package core

import (
	"sort"
	"strconv"
	"strings"
)

// unpriceableSentinel sorts offers with no extractable price last.
const unpriceableSentinel = 9999999.0

// RankedOffer is a selector result: the offer plus the facts ranking used.
type RankedOffer struct {
	Offer        *FlightOffer `json:"offer"`
	Price        float64      `json:"pricePerAdult"`
	BrandMatched bool         `json:"brandMatched"`
	Brand        string       `json:"brand,omitempty"`
}

// Selector filters offers through a Matcher and picks winners according
// to a SelectionPolicy.
type Selector struct {
	Matcher Matcher
	Adults  int
}

// Select returns the winning offer for the itinerary under the policy,
// or ok=false when nothing qualifies.
func (s Selector) Select(offers []FlightOffer, spec ItinerarySpec, policy SelectionPolicy) (RankedOffer, bool) {
	ranked := s.rank(offers, spec, policy)
	if len(ranked) == 0 {
		return RankedOffer{}, false
	}
	return ranked[0], true
}

// SelectTopN returns the n best qualifying offers in rank order.
func (s Selector) SelectTopN(offers []FlightOffer, spec ItinerarySpec, policy SelectionPolicy, n int) []RankedOffer {
	ranked := s.rank(offers, spec, policy)
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func (s Selector) rank(offers []FlightOffer, spec ItinerarySpec, policy SelectionPolicy) []RankedOffer {
	m := s.Matcher
	m.RequireBrand = policy == PolicyBrandOnly

	var ranked []RankedOffer
	for i := range offers {
		off := &offers[i]
		res, ok := m.MatchItinerary(off, spec)
		if !ok {
			continue
		}
		price, priced := s.PricePerAdult(off)
		if !priced {
			price = unpriceableSentinel
		}
		ranked = append(ranked, RankedOffer{
			Offer:        off,
			Price:        price,
			BrandMatched: res.BrandMatched,
			Brand:        res.Brand,
		})
	}

	preferBrand := policy == PolicyPreferBrand
	sort.SliceStable(ranked, func(i, j int) bool {
		if preferBrand && ranked[i].BrandMatched != ranked[j].BrandMatched {
			return ranked[i].BrandMatched
		}
		return ranked[i].Price < ranked[j].Price
	})
	return ranked
}

// PricePerAdult extracts a per-adult price from an offer. The fallback
// chain is fixed: a declared per-adult total, then the mean of adult
// traveler totals, then the grand total split over the configured adult
// count.
func (s Selector) PricePerAdult(off *FlightOffer) (float64, bool) {
	if v, err := strconv.ParseFloat(off.Price.PerAdult, 64); err == nil {
		return v, true
	}

	var sum float64
	var n int
	for _, tp := range off.TravelerPricings {
		if !strings.EqualFold(tp.TravelerType, "ADULT") {
			continue
		}
		if v, err := strconv.ParseFloat(tp.Price.Total, 64); err == nil {
			sum += v
			n++
		}
	}
	if n > 0 {
		return sum / float64(n), true
	}

	if v, ok := GrandTotal(off); ok && s.Adults > 0 {
		return v / float64(s.Adults), true
	}
	return 0, false
}

// GrandTotal parses the offer's total price.
func GrandTotal(off *FlightOffer) (float64, bool) {
	v, err := strconv.ParseFloat(off.Price.GrandTotal, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
