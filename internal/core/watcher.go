package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/farewatch/fare-cli/internal/logger"
)

const searchTimeout = 90 * time.Second

// WatchParams carries everything one watch run needs. Built once from
// configuration and passed in; components never read ambient config.
type WatchParams struct {
	Itineraries []ItinerarySpec
	Policy      SelectionPolicy
	LegMatch    LegMatchMode
	StrictCabin bool
	Currency    string
	Adults      int
	MaxOffers   int
	Threshold   *float64
	Subject     string
	DryRun      bool
}

// ItineraryResult is the outcome of evaluating one watched itinerary.
type ItineraryResult struct {
	Key          ItineraryKey `json:"key"`
	Found        bool         `json:"found"`
	Price        float64      `json:"price,omitempty"`
	Note         string       `json:"note,omitempty"`
	Alert        bool         `json:"alert,omitempty"`
	BrandMatched bool         `json:"brandMatched,omitempty"`
	Breakdown    string       `json:"breakdown,omitempty"`
	Err          string       `json:"error,omitempty"`
}

// RunReport is the composed outcome of one watch run. Body is the
// notification payload; the console print of it is the run's source of
// truth even when every side channel fails.
type RunReport struct {
	StartedAt time.Time         `json:"startedAt"`
	Subject   string            `json:"subject"`
	Body      string            `json:"body"`
	Results   []ItineraryResult `json:"results"`
	Alerts    int               `json:"alerts"`
}

// Watcher runs one fetch-evaluate-persist-notify cycle over the
// configured itineraries. Each itinerary's state update is independent:
// a failed search for one leaves the others, and its own prior state,
// untouched.
type Watcher struct {
	source OfferSource
	store  StateStore
	notify Broadcaster
	log    logger.Logger
	params WatchParams
}

func NewWatcher(source OfferSource, store StateStore, notify Broadcaster, log logger.Logger, params WatchParams) *Watcher {
	return &Watcher{source: source, store: store, notify: notify, log: log, params: params}
}

// Run executes one complete watch cycle and returns the report.
func (w *Watcher) Run(ctx context.Context) *RunReport {
	report := &RunReport{
		StartedAt: time.Now(),
		Subject:   w.params.Subject,
	}

	sel := Selector{
		Matcher: Matcher{LegMatch: w.params.LegMatch, StrictCabin: w.params.StrictCabin},
		Adults:  w.params.Adults,
	}

	for _, spec := range w.params.Itineraries {
		res := w.evaluate(ctx, sel, spec)
		if res.Alert {
			report.Alerts++
		}
		report.Results = append(report.Results, res)
	}

	report.Body = w.composeBody(report)
	if !w.params.DryRun {
		w.notify.Broadcast(report.Subject, report.Body)
	}
	return report
}

func (w *Watcher) evaluate(ctx context.Context, sel Selector, spec ItinerarySpec) ItineraryResult {
	key := KeyFor(spec)
	res := ItineraryResult{Key: key}
	log := w.log.With("itinerary", key.String())

	sctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	offers, err := w.source.Search(sctx, SearchRequest{
		Currency:  w.params.Currency,
		Adults:    w.params.Adults,
		Legs:      spec.Legs,
		MaxOffers: w.params.MaxOffers,
	})
	if err != nil {
		// Search failure is per-itinerary recoverable: report it,
		// leave persisted state alone, keep going.
		log.Warn("offer search failed", "source", w.source.Name(), "error", err)
		res.Err = err.Error()
		return res
	}

	best, ok := sel.Select(offers, spec, w.params.Policy)
	if !ok {
		log.Info("no qualifying offer", "offers", len(offers))
		return res
	}

	price, priced := GrandTotal(best.Offer)
	if !priced {
		price = best.Price
	}

	res.Found = true
	res.Price = price
	res.BrandMatched = best.BrandMatched
	res.Breakdown = RenderBreakdown(best.Offer, w.params.Currency, best.BrandMatched)

	prev, _, lerr := w.store.Load(key)
	if lerr != nil {
		log.Warn("state load failed, treating as first run", "error", lerr)
		prev = LegState{}
	}

	tr := Evaluate(prev, price, w.params.Threshold)
	res.Note = tr.Note
	res.Alert = tr.Alert

	if w.params.DryRun {
		return res
	}
	if err := w.store.Save(key, tr.State); err != nil {
		log.Error("state save failed", "error", err)
	}
	obs := PriceObservation{ObservedAt: time.Now(), Price: price, Note: tr.Note}
	if err := w.store.AppendHistory(key, obs); err != nil {
		log.Error("history append failed", "error", err)
	}
	return res
}

func (w *Watcher) composeBody(report *RunReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[farewatch] %s\n", report.StartedAt.Format("2006-01-02 15:04:05 MST"))

	for _, res := range report.Results {
		b.WriteString("\n")
		switch {
		case res.Err != "":
			fmt.Fprintf(&b, "%s\nSearch failed: %s\n", res.Key, res.Err)
		case !res.Found:
			fmt.Fprintf(&b, "%s\nNo qualifying offer for the requested departures.\n", res.Key)
		default:
			fmt.Fprintf(&b, "%s\nTotal price: %s %.2f  %s\n", res.Key, w.params.Currency, res.Price, res.Note)
			if res.Alert && w.params.Threshold != nil {
				fmt.Fprintf(&b, "PRICE ALERT: below %s %.2f\n", w.params.Currency, *w.params.Threshold)
			}
			b.WriteString(res.Breakdown)
			b.WriteString("\n")
		}
	}

	b.WriteString("\nNote: per-leg amounts are estimates. Availability and prices change quickly.")
	return b.String()
}
