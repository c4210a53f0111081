package live

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/farewatch/fare-cli/internal/config"
	"github.com/farewatch/fare-cli/internal/core"
)

const (
	tokenTimeout  = 30 * time.Second
	searchTimeout = 90 * time.Second
)

// AmadeusSource fetches priced offers from the Amadeus flight-offers
// search API. Token exchange uses the client-credentials grant and is
// handled transparently by the oauth2 transport.
type AmadeusSource struct {
	cfg    config.AmadeusConfig
	client *http.Client
}

func NewAmadeusSource(cfg config.AmadeusConfig) *AmadeusSource {
	cc := clientcredentials.Config{
		ClientID:     cfg.APIKey,
		ClientSecret: cfg.APISecret,
		TokenURL:     cfg.Host() + "/v1/security/oauth2/token",
	}
	// The token client gets its own timeout, separate from search.
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Timeout: tokenTimeout})
	client := cc.Client(ctx)
	client.Timeout = searchTimeout

	return &AmadeusSource{cfg: cfg, client: client}
}

func (a *AmadeusSource) Name() string { return "amadeus" }

func (a *AmadeusSource) Available() (bool, string) {
	if a.cfg.APIKey == "" || a.cfg.APISecret == "" {
		return false, "set AMADEUS_API_KEY and AMADEUS_API_SECRET"
	}
	return true, ""
}

func (a *AmadeusSource) Search(ctx context.Context, req core.SearchRequest) ([]core.FlightOffer, error) {
	body, err := json.Marshal(buildSearchBody(req))
	if err != nil {
		return nil, fmt.Errorf("encode search request: %w", err)
	}

	url := a.cfg.Host() + "/v2/shopping/flight-offers"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("flight offers search: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("flight offers search: status %d: %s", resp.StatusCode, detail)
	}

	var payload struct {
		Data []core.FlightOffer `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode flight offers: %w", err)
	}
	return payload.Data, nil
}

// Wire shapes for the flight-offers search request.

type searchBody struct {
	CurrencyCode       string              `json:"currencyCode"`
	OriginDestinations []originDestination `json:"originDestinations"`
	Travelers          []traveler          `json:"travelers"`
	Sources            []string            `json:"sources"`
	SearchCriteria     searchCriteria      `json:"searchCriteria"`
}

type originDestination struct {
	ID                      string        `json:"id"`
	OriginLocationCode      string        `json:"originLocationCode"`
	DestinationLocationCode string        `json:"destinationLocationCode"`
	DepartureDateTimeRange  dateTimeRange `json:"departureDateTimeRange"`
}

type dateTimeRange struct {
	Date string `json:"date"`
}

type traveler struct {
	ID           string `json:"id"`
	TravelerType string `json:"travelerType"`
}

type searchCriteria struct {
	AdditionalInformation additionalInformation `json:"additionalInformation"`
	FlightFilters         *flightFilters        `json:"flightFilters,omitempty"`
	MaxFlightOffers       int                   `json:"maxFlightOffers,omitempty"`
}

type additionalInformation struct {
	BrandedFares bool `json:"brandedFares"`
}

type flightFilters struct {
	CarrierRestrictions *carrierRestrictions `json:"carrierRestrictions,omitempty"`
	CabinRestrictions   []cabinRestriction   `json:"cabinRestrictions,omitempty"`
}

type carrierRestrictions struct {
	IncludedCarrierCodes []string `json:"includedCarrierCodes"`
}

type cabinRestriction struct {
	Cabin                string   `json:"cabin"`
	Coverage             string   `json:"coverage"`
	OriginDestinationIDs []string `json:"originDestinationIds"`
}

func buildSearchBody(req core.SearchRequest) searchBody {
	body := searchBody{
		CurrencyCode: req.Currency,
		Sources:      []string{"GDS"},
		SearchCriteria: searchCriteria{
			AdditionalInformation: additionalInformation{BrandedFares: true},
			MaxFlightOffers:       req.MaxOffers,
		},
	}

	var odIDs, carriers []string
	seen := map[string]bool{}
	cabin := ""
	for i, leg := range req.Legs {
		id := strconv.Itoa(i + 1)
		odIDs = append(odIDs, id)
		body.OriginDestinations = append(body.OriginDestinations, originDestination{
			ID:                      id,
			OriginLocationCode:      leg.Origin,
			DestinationLocationCode: leg.Destination,
			DepartureDateTimeRange:  dateTimeRange{Date: leg.Date},
		})
		if leg.Carrier != "" && !seen[leg.Carrier] {
			seen[leg.Carrier] = true
			carriers = append(carriers, leg.Carrier)
		}
		if cabin == "" {
			cabin = leg.Cabin
		}
	}

	for i := 0; i < req.Adults; i++ {
		body.Travelers = append(body.Travelers, traveler{
			ID:           strconv.Itoa(i + 1),
			TravelerType: "ADULT",
		})
	}

	filters := &flightFilters{}
	if len(carriers) > 0 {
		filters.CarrierRestrictions = &carrierRestrictions{IncludedCarrierCodes: carriers}
	}
	if cabin != "" {
		filters.CabinRestrictions = []cabinRestriction{{
			Cabin:                cabin,
			Coverage:             "MOST_SEGMENTS",
			OriginDestinationIDs: odIDs,
		}}
	}
	if filters.CarrierRestrictions != nil || filters.CabinRestrictions != nil {
		body.SearchCriteria.FlightFilters = filters
	}
	return body
}
