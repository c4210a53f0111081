package core

import (
	"context"
	"strings"
	"time"
)

// SelectionPolicy controls how qualifying offers are ranked.
type SelectionPolicy string

const (
	// PolicyAnyMatching ranks qualifying offers by price alone.
	PolicyAnyMatching SelectionPolicy = "anyMatching"
	// PolicyPreferBrand ranks brand-matching offers first, then by price.
	PolicyPreferBrand SelectionPolicy = "preferBrand"
	// PolicyBrandOnly rejects offers whose branded fare does not match.
	PolicyBrandOnly SelectionPolicy = "brandOnly"
)

// LegMatchMode controls which segment's arrival airport must equal the
// leg's destination.
type LegMatchMode string

const (
	// LegMatchNonstop requires the first segment to arrive at the destination.
	LegMatchNonstop LegMatchMode = "nonstop"
	// LegMatchThrough allows connections: the last segment must arrive
	// at the destination.
	LegMatchThrough LegMatchMode = "through"
)

// RouteSpec describes one required leg of the watched itinerary.
// Time may be empty, meaning any departure that day qualifies.
type RouteSpec struct {
	Origin       string   `yaml:"origin" json:"origin"`
	Destination  string   `yaml:"destination" json:"destination"`
	Date         string   `yaml:"date" json:"date"` // YYYY-MM-DD
	Time         string   `yaml:"time,omitempty" json:"time,omitempty"` // HH:MM local
	Cabin        string   `yaml:"cabin,omitempty" json:"cabin,omitempty"`
	Carrier      string   `yaml:"carrier,omitempty" json:"carrier,omitempty"`
	BrandAliases []string `yaml:"brandAliases,omitempty" json:"brandAliases,omitempty"`
}

// ItinerarySpec is an ordered list of legs priced as a single offer.
type ItinerarySpec struct {
	Legs []RouteSpec `yaml:"legs" json:"legs"`
}

// ItineraryKey identifies persisted state for one watched itinerary.
// It is derived deterministically from the spec so that differently shaped
// itineraries can never collide.
type ItineraryKey struct {
	key string
}

// KeyFor builds the state key for an itinerary spec.
func KeyFor(spec ItinerarySpec) ItineraryKey {
	parts := make([]string, 0, len(spec.Legs))
	for _, leg := range spec.Legs {
		p := leg.Origin + "-" + leg.Destination + "@" + leg.Date
		if leg.Time != "" {
			p += "T" + leg.Time
		}
		parts = append(parts, p)
	}
	return ItineraryKey{key: strings.Join(parts, "+")}
}

func (k ItineraryKey) String() string { return k.key }

func (k ItineraryKey) MarshalText() ([]byte, error) { return []byte(k.key), nil }

// FlightOffer mirrors the offer source's priced-offer shape. The core never
// mutates it.
type FlightOffer struct {
	ID                     string            `json:"id,omitempty"`
	Source                 string            `json:"source,omitempty"`
	Itineraries            []Itinerary       `json:"itineraries"`
	Price                  Price             `json:"price"`
	ValidatingAirlineCodes []string          `json:"validatingAirlineCodes,omitempty"`
	TravelerPricings       []TravelerPricing `json:"travelerPricings,omitempty"`
}

// Itinerary is one priced leg of an offer, direct or connecting.
type Itinerary struct {
	Duration string    `json:"duration,omitempty"`
	Segments []Segment `json:"segments"`
}

// Segment is a single physical flight.
type Segment struct {
	CarrierCode string        `json:"carrierCode"`
	Number      string        `json:"number"`
	Departure   SegmentPoint  `json:"departure"`
	Arrival     SegmentPoint  `json:"arrival"`
	Duration    string        `json:"duration,omitempty"`
	Operating   *OperatingRef `json:"operating,omitempty"`
}

type SegmentPoint struct {
	IATACode string `json:"iataCode"`
	At       string `json:"at"` // ISO local timestamp, no zone
}

type OperatingRef struct {
	CarrierCode string `json:"carrierCode"`
}

type Price struct {
	Currency   string `json:"currency,omitempty"`
	Total      string `json:"total,omitempty"`
	GrandTotal string `json:"grandTotal,omitempty"`
	PerAdult   string `json:"perAdult,omitempty"`
}

type TravelerPricing struct {
	TravelerID           string       `json:"travelerId,omitempty"`
	TravelerType         string       `json:"travelerType,omitempty"`
	Price                Price        `json:"price"`
	FareDetailsBySegment []FareDetail `json:"fareDetailsBySegment,omitempty"`
}

type FareDetail struct {
	SegmentID   string `json:"segmentId,omitempty"`
	Cabin       string `json:"cabin,omitempty"`
	BrandedFare string `json:"brandedFare,omitempty"`
}

// MatchResult carries the outcome of matching one offer leg against a
// RouteSpec, plus facts extracted along the way. Computed fresh per
// evaluation, never persisted.
type MatchResult struct {
	Matched      bool
	Brand        string
	BrandMatched bool
	Duration     Duration
	LegPrice     float64
}

// LegState is the persisted per-itinerary alert state.
type LegState struct {
	LastPrice    *float64 `json:"lastPrice"`
	AlertedBelow bool     `json:"alertedBelow"`
}

// PriceObservation is one append-only history entry.
type PriceObservation struct {
	ObservedAt time.Time `json:"observedAt"`
	Price      float64   `json:"price"`
	Note       string    `json:"note"`
}

// SearchRequest is what the watcher asks an offer source for.
type SearchRequest struct {
	Currency  string      `json:"currency"`
	Adults    int         `json:"adults"`
	Legs      []RouteSpec `json:"legs"`
	MaxOffers int         `json:"maxOffers,omitempty"`
}

// OfferSource fetches priced offers for an itinerary. Implementations are
// external collaborators (live API or mock).
type OfferSource interface {
	Name() string
	Available() (bool, string)
	Search(ctx context.Context, req SearchRequest) ([]FlightOffer, error)
}

// StateStore persists per-itinerary alert state and the price history log.
type StateStore interface {
	Load(key ItineraryKey) (LegState, bool, error)
	Save(key ItineraryKey, st LegState) error
	AppendHistory(key ItineraryKey, obs PriceObservation) error
}

// Broadcaster fans a composed message out to the configured channels.
type Broadcaster interface {
	Broadcast(subject, body string)
}
