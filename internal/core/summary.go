package core

import (
	"fmt"
	"strings"
)

// PerLegEstimates prorates the offer's grand total across its itineraries
// in proportion to each itinerary's duration. When every duration parses
// to zero the total is split equally instead.
func PerLegEstimates(off *FlightOffer) []float64 {
	if off == nil || len(off.Itineraries) == 0 {
		return nil
	}
	total, _ := GrandTotal(off)

	mins := make([]int, len(off.Itineraries))
	sum := 0
	for i, itin := range off.Itineraries {
		mins[i] = ParseDuration(itin.Duration).TotalMinutes()
		sum += mins[i]
	}

	est := make([]float64, len(off.Itineraries))
	for i := range est {
		if sum > 0 {
			est[i] = total * float64(mins[i]) / float64(sum)
		} else {
			est[i] = total / float64(len(off.Itineraries))
		}
	}
	return est
}

// RenderBreakdown renders the winning offer as the notification body:
// total and validating carriers, per-leg estimates, the full segment
// listing, traveler pricing, and a brand marker when the branded-fare
// check matched. Downstream consumers treat the text as opaque.
func RenderBreakdown(off *FlightOffer, currency string, brandMatched bool) string {
	if off == nil {
		return ""
	}

	validating := strings.Join(off.ValidatingAirlineCodes, ",")
	lines := []string{
		fmt.Sprintf("Total: %s %s | Validating: %s", currency, off.Price.GrandTotal, validating),
	}

	est := PerLegEstimates(off)
	if len(off.Itineraries) > 0 {
		lines = append(lines, "Estimated price per leg (proportional to duration):")
		for i, itin := range off.Itineraries {
			lines = append(lines, fmt.Sprintf("  Leg %d: ~%s %.2f (dur: %s)",
				i+1, currency, est[i], ParseDuration(itin.Duration).Format()))
		}
	}

	for i, itin := range off.Itineraries {
		lines = append(lines, fmt.Sprintf("  Itinerary %d (dur: %s):", i+1, ParseDuration(itin.Duration).Format()))
		for _, seg := range itin.Segments {
			opNote := ""
			if seg.Operating != nil && seg.Operating.CarrierCode != "" && seg.Operating.CarrierCode != seg.CarrierCode {
				opNote = fmt.Sprintf(" (operated by %s)", seg.Operating.CarrierCode)
			}
			lines = append(lines, fmt.Sprintf("    %s%s%s: %s %s -> %s %s (%s)",
				seg.CarrierCode, seg.Number, opNote,
				seg.Departure.IATACode, FormatTimestamp(seg.Departure.At),
				seg.Arrival.IATACode, FormatTimestamp(seg.Arrival.At),
				ParseDuration(seg.Duration).Format()))
		}
	}

	if len(off.TravelerPricings) > 0 {
		per := make([]string, 0, len(off.TravelerPricings))
		for _, tp := range off.TravelerPricings {
			total := tp.Price.Total
			if total == "" {
				total = "?"
			}
			per = append(per, fmt.Sprintf("%s: %s %s", tp.TravelerType, total, currency))
		}
		lines = append(lines, "  Traveler pricing: "+strings.Join(per, " | "))
	}

	out := strings.Join(lines, "\n")
	if brandMatched {
		out += " (branded fare matched)"
	}
	return out
}
