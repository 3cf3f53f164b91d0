package hotel

import (
	"context"
	"errors"

	"tripdesk/internal/apperr"
	"tripdesk/pkg/logger"
	"tripdesk/pkg/travelapi"
)

// maxHotelIDs caps the id batch sent to the offers endpoint to stay under
// upstream rate limits.
const maxHotelIDs = 20

type upstream interface {
	ListHotelsByCity(ctx context.Context, cityCode string) ([]travelapi.HotelData, error)
	SearchHotelOffers(ctx context.Context, hotelIDs []string, checkIn, checkOut string, adults int) ([]travelapi.HotelOfferData, error)
}

type cityResolver interface {
	CityName(ctx context.Context, code string) string
}

type Service struct {
	api       upstream
	locations cityResolver
	logger    logger.Client
}

func NewService(api upstream, locations cityResolver, log logger.Client) *Service {
	return &Service{
		api:       api,
		locations: locations,
		logger:    log,
	}
}

type SearchRequest struct {
	CityCode string `json:"city_code" form:"cityCode"`
	CheckIn  string `json:"check_in" form:"checkIn"`
	CheckOut string `json:"check_out" form:"checkOut"`
	Adults   int    `json:"adults" form:"adults"`
}

type Result struct {
	HotelID  string `json:"hotel_id"`
	Name     string `json:"name"`
	CityName string `json:"city_name"`
	Price    string `json:"price"`
	Currency string `json:"currency"`
}

type SearchResponse struct {
	CityCode string   `json:"city_code"`
	CityName string   `json:"city_name"`
	Hotels   []Result `json:"hotels"`
}

// Search lists the city's hotels and fetches available offers for the first
// batch of ids.
func (s *Service) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	if req.CityCode == "" || req.CheckIn == "" || req.CheckOut == "" {
		return nil, apperr.Validation("cityCode, checkIn and checkOut are required")
	}
	if req.Adults <= 0 {
		req.Adults = 1
	}

	hotels, err := s.api.ListHotelsByCity(ctx, req.CityCode)
	if err != nil {
		return nil, s.upstreamError("hotel list failed", err)
	}
	if len(hotels) == 0 {
		return nil, apperr.NotFound("no hotels found for city " + req.CityCode)
	}

	ids := make([]string, 0, maxHotelIDs)
	for _, h := range hotels {
		ids = append(ids, h.HotelID)
		if len(ids) == maxHotelIDs {
			break
		}
	}

	offers, err := s.api.SearchHotelOffers(ctx, ids, req.CheckIn, req.CheckOut, req.Adults)
	if err != nil {
		return nil, s.upstreamError("hotel offers failed", err)
	}

	cityName := s.locations.CityName(ctx, req.CityCode)

	results := make([]Result, 0, len(offers))
	for _, item := range offers {
		if !item.Available || len(item.Offers) == 0 {
			continue
		}

		name := item.Hotel.Address.CityName
		if name == "" {
			name = cityName
		}

		results = append(results, Result{
			HotelID:  item.Hotel.HotelID,
			Name:     item.Hotel.Name,
			CityName: name,
			Price:    item.Offers[0].Price.Total,
			Currency: item.Offers[0].Price.Currency,
		})
	}

	return &SearchResponse{
		CityCode: req.CityCode,
		CityName: cityName,
		Hotels:   results,
	}, nil
}

func (s *Service) upstreamError(message string, err error) error {
	if errors.Is(err, travelapi.ErrAuthUnavailable) {
		return apperr.Unavailable("travel provider authentication failed", err)
	}
	return apperr.Upstream(message, err)
}
