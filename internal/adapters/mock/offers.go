package mock

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"

	"github.com/farewatch/fare-cli/internal/core"
)

// OffersSource generates deterministic offers for a search request so
// that watch runs and tests work without credentials. The same request
// always yields the same offers, including one exact-time branded match.
type OffersSource struct{}

func NewOffersSource() *OffersSource {
	return &OffersSource{}
}

func (s *OffersSource) Name() string { return "mock_offers" }

func (s *OffersSource) Available() (bool, string) { return true, "" }

func (s *OffersSource) Search(_ context.Context, req core.SearchRequest) ([]core.FlightOffer, error) {
	if len(req.Legs) == 0 {
		return nil, fmt.Errorf("no legs in search request")
	}

	seed := ""
	for _, leg := range req.Legs {
		seed += leg.Origin + leg.Destination + leg.Date
	}
	rng := rand.New(rand.NewSource(hashSeed(seed)))
	base := 1800.0 + float64(rng.Intn(1500))

	offers := []core.FlightOffer{
		exactOffer(req, base, rng),
	}

	// Noise: cheaper offers at the wrong times, pricier ones at the
	// right times without the brand.
	count := 3 + rng.Intn(4)
	for i := 0; i < count; i++ {
		offers = append(offers, noiseOffer(req, base, i, rng))
	}
	return offers, nil
}

// exactOffer satisfies every leg's departure time, brand and carrier.
func exactOffer(req core.SearchRequest, base float64, rng *rand.Rand) core.FlightOffer {
	off := core.FlightOffer{
		ID:     "mock_exact",
		Source: "mock_offers",
		Price: core.Price{
			Currency:   req.Currency,
			GrandTotal: fmt.Sprintf("%.2f", base),
		},
	}

	brand := "REGULAR"
	carrier := "XX"
	for _, leg := range req.Legs {
		dep := leg.Time
		if dep == "" {
			dep = "10:00"
		}
		if leg.Carrier != "" {
			carrier = leg.Carrier
		}
		if len(leg.BrandAliases) > 0 {
			brand = leg.BrandAliases[0]
		}
		durMin := 300 + rng.Intn(300)
		off.Itineraries = append(off.Itineraries, core.Itinerary{
			Duration: fmt.Sprintf("PT%dH%dM", durMin/60, durMin%60),
			Segments: []core.Segment{{
				CarrierCode: carrier,
				Number:      strconv.Itoa(6000 + rng.Intn(900)),
				Departure:   core.SegmentPoint{IATACode: leg.Origin, At: leg.Date + "T" + dep + ":00"},
				Arrival:     core.SegmentPoint{IATACode: leg.Destination, At: leg.Date + "T23:59:00"},
				Duration:    fmt.Sprintf("PT%dH%dM", durMin/60, durMin%60),
			}},
		})
	}
	off.ValidatingAirlineCodes = []string{carrier}

	adults := req.Adults
	if adults == 0 {
		adults = 1
	}
	for i := 0; i < adults; i++ {
		tp := core.TravelerPricing{
			TravelerID:   strconv.Itoa(i + 1),
			TravelerType: "ADULT",
			Price:        core.Price{Total: fmt.Sprintf("%.2f", base/float64(adults))},
		}
		for s := range off.Itineraries {
			tp.FareDetailsBySegment = append(tp.FareDetailsBySegment, core.FareDetail{
				SegmentID:   strconv.Itoa(s + 1),
				Cabin:       firstCabin(req.Legs),
				BrandedFare: brand,
			})
		}
		off.TravelerPricings = append(off.TravelerPricings, tp)
	}
	return off
}

// noiseOffer departs one to three hours off the requested time and
// carries no branded fare.
func noiseOffer(req core.SearchRequest, base float64, n int, rng *rand.Rand) core.FlightOffer {
	price := base + float64(rng.Intn(800)) - 200
	if price < 100 {
		price = 100
	}
	off := core.FlightOffer{
		ID:     fmt.Sprintf("mock_%d", n),
		Source: "mock_offers",
		Price: core.Price{
			Currency:   req.Currency,
			GrandTotal: fmt.Sprintf("%.2f", price),
		},
	}

	carrier := "XX"
	for _, leg := range req.Legs {
		if leg.Carrier != "" {
			carrier = leg.Carrier
		}
		hour := 6 + rng.Intn(14)
		durMin := 300 + rng.Intn(400)
		off.Itineraries = append(off.Itineraries, core.Itinerary{
			Duration: fmt.Sprintf("PT%dH%dM", durMin/60, durMin%60),
			Segments: []core.Segment{{
				CarrierCode: carrier,
				Number:      strconv.Itoa(1000 + rng.Intn(900)),
				Departure:   core.SegmentPoint{IATACode: leg.Origin, At: fmt.Sprintf("%sT%02d:%02d:00", leg.Date, hour, rng.Intn(60))},
				Arrival:     core.SegmentPoint{IATACode: leg.Destination, At: leg.Date + "T23:59:00"},
				Duration:    fmt.Sprintf("PT%dH%dM", durMin/60, durMin%60),
			}},
		})
	}
	off.ValidatingAirlineCodes = []string{carrier}
	return off
}

func firstCabin(legs []core.RouteSpec) string {
	for _, leg := range legs {
		if leg.Cabin != "" {
			return leg.Cabin
		}
	}
	return "ECONOMY"
}

func hashSeed(s string) int64 {
	var h int64
	for _, c := range s {
		h = h*31 + int64(c)
	}
	if h < 0 {
		h = -h
	}
	return h
}
