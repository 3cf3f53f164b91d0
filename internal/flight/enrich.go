package flight

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tripdesk/internal/location"
	"tripdesk/pkg/travelapi"
)

// terminalFallback is the sentinel shown when the upstream omits a terminal.
const terminalFallback = "N/A"

// segmentTimeLayouts covers the timestamp shapes the upstream emits.
var segmentTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// EnrichOffers runs the enrichment pipeline over a batch of offers. Airline
// codes are resolved once for the whole batch; location lookups run per
// segment. The output is 1:1 and order-preserving with the input — segments
// are never reordered, dropped or duplicated, and the source offers are not
// touched.
func (s *Service) EnrichOffers(ctx context.Context, offers []travelapi.FlightOffer) []EnrichedOffer {
	airlineNames := s.airlines.ResolveForOffers(ctx, offers)

	enriched := make([]EnrichedOffer, len(offers))
	for i := range offers {
		enriched[i] = s.enrichOffer(ctx, &offers[i], airlineNames)
	}
	return enriched
}

// EnrichOffer enriches a single offer, resolving its airlines as a batch of
// one.
func (s *Service) EnrichOffer(ctx context.Context, offer *travelapi.FlightOffer) EnrichedOffer {
	airlineNames := s.airlines.ResolveForOffers(ctx, []travelapi.FlightOffer{*offer})
	return s.enrichOffer(ctx, offer, airlineNames)
}

func (s *Service) enrichOffer(ctx context.Context, offer *travelapi.FlightOffer, airlineNames map[string]string) EnrichedOffer {
	itineraries := make([]EnrichedItinerary, len(offer.Itineraries))

	for i, itinerary := range offer.Itineraries {
		segments := make([]EnrichedSegment, len(itinerary.Segments))

		// Segments may resolve in any order; indexed writes keep the
		// original sequence.
		var wg sync.WaitGroup
		for idx, segment := range itinerary.Segments {
			wg.Add(1)
			go func(idx int, segment travelapi.Segment) {
				defer wg.Done()
				segments[idx] = s.enrichSegment(ctx, segment, airlineNames)
			}(idx, segment)
		}
		wg.Wait()

		itineraries[i] = EnrichedItinerary{Segments: segments}
	}

	total := offer.Price.GrandTotal
	if total == "" {
		total = offer.Price.Total
	}

	return EnrichedOffer{
		ID: offer.ID,
		Price: Price{
			Total:    total,
			Currency: offer.Price.Currency,
		},
		Itineraries: itineraries,
	}
}

func (s *Service) enrichSegment(ctx context.Context, segment travelapi.Segment, airlineNames map[string]string) EnrichedSegment {
	var departure, arrival location.CityAirport

	// The two endpoint lookups are independent; run them concurrently.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		departure = s.locations.CityAndAirport(ctx, segment.Departure.IataCode)
	}()
	go func() {
		defer wg.Done()
		arrival = s.locations.CityAndAirport(ctx, segment.Arrival.IataCode)
	}()
	wg.Wait()

	airlineName := airlineNames[segment.CarrierCode]
	if airlineName == "" {
		airlineName = segment.CarrierCode
	}

	return EnrichedSegment{
		Departure:      enrichEndpoint(segment.Departure, departure),
		Arrival:        enrichEndpoint(segment.Arrival, arrival),
		CarrierCode:    segment.CarrierCode,
		AirlineName:    airlineName,
		FlightNumber:   segment.CarrierCode + segment.Number,
		FlightDuration: formatDuration(segment.Departure.At, segment.Arrival.At),
	}
}

func enrichEndpoint(endpoint travelapi.SegmentEndpoint, resolved location.CityAirport) Endpoint {
	terminal := endpoint.Terminal
	if terminal == "" {
		terminal = terminalFallback
	}

	return Endpoint{
		IataCode:    endpoint.IataCode,
		CityName:    resolved.City,
		AirportName: resolved.Airport,
		Terminal:    terminal,
		At:          endpoint.At,
	}
}

// formatDuration renders arrival minus departure in whole minutes as
// "<hours>h <minutes>m". Malformed timestamps yield an empty string; a
// negative pair passes through uncorrected.
func formatDuration(departAt, arriveAt string) string {
	departure, ok := parseSegmentTime(departAt)
	if !ok {
		return ""
	}
	arrival, ok := parseSegmentTime(arriveAt)
	if !ok {
		return ""
	}

	minutes := int(arrival.Sub(departure).Minutes())
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

func parseSegmentTime(value string) (time.Time, bool) {
	for _, layout := range segmentTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
