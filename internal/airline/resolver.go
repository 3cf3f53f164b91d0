package airline

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"tripdesk/pkg/cache"
	"tripdesk/pkg/logger"
	"tripdesk/pkg/travelapi"
)

var errNoName = errors.New("airline record has no display name")

type upstream interface {
	GetAirline(ctx context.Context, code string) (*travelapi.AirlineData, error)
}

// Resolver maps carrier codes to display names, one upstream lookup per
// unique code per batch, cached across requests.
type Resolver struct {
	api    upstream
	cache  cache.Cache
	ttl    time.Duration
	logger logger.Client
	group  singleflight.Group
}

func NewResolver(api upstream, cache cache.Cache, ttlMinutes int, log logger.Client) *Resolver {
	return &Resolver{
		api:    api,
		cache:  cache,
		ttl:    time.Duration(ttlMinutes) * time.Minute,
		logger: log,
	}
}

// ResolveForOffers extracts the carrier code of each offer's first segment
// of its first itinerary, dedupes in first-appearance order, and resolves
// each unique code once. A failing code is logged and omitted; the partial
// map is returned and unmatched segments display the raw code.
func (r *Resolver) ResolveForOffers(ctx context.Context, offers []travelapi.FlightOffer) map[string]string {
	seen := make(map[string]bool)
	codes := make([]string, 0, len(offers))

	for _, offer := range offers {
		if len(offer.Itineraries) == 0 || len(offer.Itineraries[0].Segments) == 0 {
			continue
		}
		code := offer.Itineraries[0].Segments[0].CarrierCode
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}

	names := make(map[string]string, len(codes))
	for _, code := range codes {
		name, err := r.Name(ctx, code)
		if err != nil {
			r.logger.Warn("airline lookup failed, omitting code",
				logger.Field{Key: "code", Value: code},
				logger.Field{Key: "err", Value: err},
			)
			continue
		}
		names[code] = name
	}
	return names
}

// Name resolves one carrier code. Preference order: commonName, then
// businessName.
func (r *Resolver) Name(ctx context.Context, code string) (string, error) {
	key := "air:" + code

	if cached, err := r.cache.Get(ctx, key); err == nil && cached != "" {
		return cached, nil
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		record, err := r.api.GetAirline(ctx, code)
		if err != nil {
			return "", err
		}

		name := record.CommonName
		if name == "" {
			name = record.BusinessName
		}
		if name == "" {
			return "", errNoName
		}

		if err := r.cache.Set(ctx, key, name, r.ttl); err != nil {
			r.logger.Error("failed to cache airline name", logger.Field{Key: "key", Value: key}, logger.Field{Key: "err", Value: err})
		}
		return name, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
