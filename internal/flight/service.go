package flight

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tripdesk/internal/apperr"
	"tripdesk/internal/location"
	"tripdesk/pkg/cache"
	"tripdesk/pkg/logger"
	"tripdesk/pkg/travelapi"
)

// searchAdults is fixed: the upstream search is always issued for one adult.
const searchAdults = 1

type offerSearcher interface {
	SearchFlightOffers(ctx context.Context, origin, destination, date string, adults int) ([]travelapi.FlightOffer, error)
}

type locationResolver interface {
	CityAndAirport(ctx context.Context, code string) location.CityAirport
	RelatedAirportCodes(ctx context.Context, code string) []string
}

type airlineResolver interface {
	ResolveForOffers(ctx context.Context, offers []travelapi.FlightOffer) map[string]string
}

type Service struct {
	api       offerSearcher
	locations locationResolver
	airlines  airlineResolver
	cache     cache.Cache
	ttl       time.Duration
	logger    logger.Client
}

func NewService(api offerSearcher, locations locationResolver, airlines airlineResolver,
	cache cache.Cache, ttlMinutes int, log logger.Client) *Service {
	return &Service{
		api:       api,
		locations: locations,
		airlines:  airlines,
		cache:     cache,
		ttl:       time.Duration(ttlMinutes) * time.Minute,
		logger:    log,
	}
}

// generateCacheKey creates a deterministic key from search parameters
func (s *Service) generateCacheKey(req SearchRequest) string {
	key := fmt.Sprintf("flight:%s:%s:%s", req.Origin, req.Destination, req.DepartureDate)
	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("flight:search:%x", hash[:16])
}

// Search queries flight offers for the route and date, filters them to the
// origin airport and the destination city's member airports, and enriches
// the survivors for display.
func (s *Service) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	if req.Origin == "" || req.Destination == "" || req.DepartureDate == "" {
		return nil, apperr.Validation("origin, destination and date are required")
	}

	startTime := time.Now()

	offers, cacheKey, cacheHit, err := s.searchOffers(ctx, req)
	if err != nil {
		return nil, err
	}

	enriched := s.EnrichOffers(ctx, offers)
	searchTime := time.Since(startTime).Milliseconds()

	return &SearchResponse{
		SearchCriteria: SearchCriteria{
			Origin:        req.Origin,
			Destination:   req.Destination,
			DepartureDate: req.DepartureDate,
		},
		Metadata: Metadata{
			TotalResults: uint32(len(enriched)),
			SearchTimeMs: uint32(searchTime),
			CacheHit:     cacheHit,
			CacheKey:     cacheKey,
		},
		Offers: enriched,
	}, nil
}

// FindOffer locates one offer by id within a fresh (or cached) search for
// the same query parameters. The id only resolves inside a result set for
// the same route and date; within the cache TTL the set is stable, so the
// lookup is deterministic.
func (s *Service) FindOffer(ctx context.Context, req SearchRequest, offerID string) (*travelapi.FlightOffer, error) {
	offers, _, _, err := s.searchOffers(ctx, req)
	if err != nil {
		return nil, err
	}

	for i := range offers {
		if offers[i].ID == offerID {
			return &offers[i], nil
		}
	}
	return nil, apperr.NotFound("flight offer not found")
}

// searchOffers returns the filtered raw offers for a query, serving from
// cache when possible.
func (s *Service) searchOffers(ctx context.Context, req SearchRequest) ([]travelapi.FlightOffer, string, bool, error) {
	cacheKey := s.generateCacheKey(req)

	cached, err := s.cache.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		var offers []travelapi.FlightOffer
		if err := json.Unmarshal([]byte(cached), &offers); err == nil {
			return offers, cacheKey, true, nil
		}
		s.logger.Error("failed to unmarshal cached offers", logger.Field{Key: "err", Value: err})
	}

	raw, err := s.api.SearchFlightOffers(ctx, req.Origin, req.Destination, req.DepartureDate, searchAdults)
	if err != nil {
		if appErr := asAppError(err); appErr != nil {
			return nil, "", false, appErr
		}
		return nil, "", false, apperr.Upstream("flight search failed", err)
	}

	relatedCodes := s.locations.RelatedAirportCodes(ctx, req.Destination)
	offers := filterOffers(raw, req.Origin, relatedCodes)

	encoded, err := json.Marshal(offers)
	if err != nil {
		s.logger.Error("failed to marshal offers for caching", logger.Field{Key: "err", Value: err})
		return offers, cacheKey, false, nil
	}
	if err := s.cache.Set(ctx, cacheKey, string(encoded), s.ttl); err != nil {
		s.logger.Error("failed to cache offers", logger.Field{Key: "err", Value: err})
	}

	return offers, cacheKey, false, nil
}

// filterOffers keeps offers whose first segment departs exactly at origin
// and arrives at one of the destination's member airports. Only the first
// segment of the first itinerary is checked; this mirrors upstream search
// behavior and is intentional.
func filterOffers(offers []travelapi.FlightOffer, origin string, destinationCodes []string) []travelapi.FlightOffer {
	members := make(map[string]bool, len(destinationCodes))
	for _, code := range destinationCodes {
		members[code] = true
	}

	filtered := make([]travelapi.FlightOffer, 0, len(offers))
	for _, offer := range offers {
		if len(offer.Itineraries) == 0 || len(offer.Itineraries[0].Segments) == 0 {
			continue
		}
		first := offer.Itineraries[0].Segments[0]
		if first.Departure.IataCode != origin {
			continue
		}
		if !members[first.Arrival.IataCode] {
			continue
		}
		filtered = append(filtered, offer)
	}
	return filtered
}

// asAppError passes auth failures through as service-unavailable instead of
// wrapping them as a generic upstream error.
func asAppError(err error) *apperr.AppError {
	if errors.Is(err, travelapi.ErrAuthUnavailable) {
		return apperr.Unavailable("travel provider authentication failed", err)
	}
	return nil
}
