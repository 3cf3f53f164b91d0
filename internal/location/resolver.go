package location

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"tripdesk/pkg/cache"
	"tripdesk/pkg/logger"
	"tripdesk/pkg/travelapi"
)

// UnknownAirport is the display fallback when an airport lookup fails.
const UnknownAirport = "Unknown Airport"

var errNoMatch = errors.New("no matching location")

type upstream interface {
	SearchLocations(ctx context.Context, keyword string, subTypes ...travelapi.LocationSubType) ([]travelapi.LocationData, error)
}

// Resolver turns IATA codes and free-text keywords into display names.
// Lookups are cached with a TTL and concurrent identical lookups collapse
// into one upstream call. Every resolution is best-effort: on failure the
// caller gets a documented fallback, never an error.
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

// CityAirport is a resolved pair of display names for one IATA code.
type CityAirport struct {
	City    string `json:"city"`
	Airport string `json:"airport"`
}

// Suggestion is one autocomplete match.
type Suggestion struct {
	IataCode string `json:"iata_code"`
	Name     string `json:"name"`
	CityName string `json:"city_name"`
	SubType  string `json:"sub_type"`
}

// CityName resolves a code to its city name. The first AIRPORT or CITY
// match wins; the input code comes back when nothing resolves.
func (r *Resolver) CityName(ctx context.Context, code string) string {
	cached, err := r.lookup(ctx, "loc:city:"+code, func() (string, error) {
		matches, err := r.api.SearchLocations(ctx, code, travelapi.SubTypeAirport, travelapi.SubTypeCity)
		if err != nil {
			return "", err
		}
		if len(matches) == 0 || matches[0].Address.CityName == "" {
			return "", errNoMatch
		}
		return matches[0].Address.CityName, nil
	})
	if err != nil {
		r.logger.Warn("city name lookup failed, using code",
			logger.Field{Key: "code", Value: code},
			logger.Field{Key: "err", Value: err},
		)
		return code
	}
	return cached
}

// CityAndAirport resolves a code to {city, airport} display names, falling
// back to {code, "Unknown Airport"}.
func (r *Resolver) CityAndAirport(ctx context.Context, code string) CityAirport {
	cached, err := r.lookup(ctx, "loc:ca:"+code, func() (string, error) {
		matches, err := r.api.SearchLocations(ctx, code, travelapi.SubTypeAirport, travelapi.SubTypeCity)
		if err != nil {
			return "", err
		}
		if len(matches) == 0 {
			return "", errNoMatch
		}
		pair := CityAirport{
			City:    matches[0].Address.CityName,
			Airport: matches[0].Name,
		}
		if pair.City == "" {
			pair.City = code
		}
		if pair.Airport == "" {
			pair.Airport = UnknownAirport
		}
		encoded, err := json.Marshal(pair)
		if err != nil {
			return "", err
		}
		return string(encoded), nil
	})
	if err != nil {
		r.logger.Warn("city/airport lookup failed, using fallback",
			logger.Field{Key: "code", Value: code},
			logger.Field{Key: "err", Value: err},
		)
		return CityAirport{City: code, Airport: UnknownAirport}
	}

	var pair CityAirport
	if err := json.Unmarshal([]byte(cached), &pair); err != nil {
		return CityAirport{City: code, Airport: UnknownAirport}
	}
	return pair
}

// RelatedAirportCodes expands a city or airport code into the ordered codes
// of every matching airport. Never empty: on failure the result is exactly
// the input code.
func (r *Resolver) RelatedAirportCodes(ctx context.Context, code string) []string {
	cached, err := r.lookup(ctx, "loc:rel:"+code, func() (string, error) {
		matches, err := r.api.SearchLocations(ctx, code, travelapi.SubTypeAirport)
		if err != nil {
			return "", err
		}
		if len(matches) == 0 {
			return "", errNoMatch
		}
		codes := make([]string, 0, len(matches))
		for _, m := range matches {
			codes = append(codes, m.IataCode)
		}
		encoded, err := json.Marshal(codes)
		if err != nil {
			return "", err
		}
		return string(encoded), nil
	})
	if err != nil {
		r.logger.Warn("related airport lookup failed, using input code",
			logger.Field{Key: "code", Value: code},
			logger.Field{Key: "err", Value: err},
		)
		return []string{code}
	}

	var codes []string
	if err := json.Unmarshal([]byte(cached), &codes); err != nil || len(codes) == 0 {
		return []string{code}
	}
	return codes
}

// Suggest returns autocomplete matches for a keyword. Unlike the resolution
// paths there is no fallback value to substitute, so failure is surfaced.
func (r *Resolver) Suggest(ctx context.Context, keyword string) ([]Suggestion, error) {
	matches, err := r.api.SearchLocations(ctx, keyword, travelapi.SubTypeAirport, travelapi.SubTypeCity)
	if err != nil {
		return nil, err
	}

	suggestions := make([]Suggestion, 0, len(matches))
	for _, m := range matches {
		suggestions = append(suggestions, Suggestion{
			IataCode: m.IataCode,
			Name:     m.Name,
			CityName: m.Address.CityName,
			SubType:  m.SubType,
		})
	}
	return suggestions, nil
}

// lookup serves a value from cache, collapsing concurrent misses for the
// same key into one upstream fetch. Only successful fetches are cached.
func (r *Resolver) lookup(ctx context.Context, key string, fetch func() (string, error)) (string, error) {
	if cached, err := r.cache.Get(ctx, key); err == nil && cached != "" {
		return cached, nil
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		value, err := fetch()
		if err != nil {
			return "", err
		}
		if err := r.cache.Set(ctx, key, value, r.ttl); err != nil {
			r.logger.Error("failed to cache lookup", logger.Field{Key: "key", Value: key}, logger.Field{Key: "err", Value: err})
		}
		return value, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
