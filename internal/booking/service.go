package booking

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"tripdesk/internal/apperr"
	"tripdesk/internal/flight"
	"tripdesk/pkg/idgen"
	"tripdesk/pkg/logger"
	"tripdesk/pkg/travelapi"
)

type upstream interface {
	PriceFlightOffer(ctx context.Context, offer *travelapi.FlightOffer) (*travelapi.FlightOffer, error)
	CreateFlightOrder(ctx context.Context, offer *travelapi.FlightOffer, traveler travelapi.Traveler) (*travelapi.FlightOrder, error)
	GetFlightOrder(ctx context.Context, id string) (*travelapi.FlightOrder, error)
}

// flightService is what the orchestrator needs from the flight package:
// offer lookup within a search result set, and the enrichment pipeline for
// retrieval.
type flightService interface {
	FindOffer(ctx context.Context, req flight.SearchRequest, offerID string) (*travelapi.FlightOffer, error)
	EnrichOffers(ctx context.Context, offers []travelapi.FlightOffer) []flight.EnrichedOffer
}

// Service walks a booking attempt through
// SEARCHING → PRICING → CREATING → CONFIRMED | FAILED.
type Service struct {
	api         upstream
	flights     flightService
	refs        idgen.Generator
	callingCode string
	logger      logger.Client
}

func NewService(api upstream, flights flightService, refs idgen.Generator,
	callingCode string, log logger.Client) *Service {
	return &Service{
		api:         api,
		flights:     flights,
		refs:        refs,
		callingCode: callingCode,
		logger:      log,
	}
}

// Create runs one booking attempt. Traveler validation happens before any
// upstream call; after that every state failure is terminal.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Confirmation, error) {
	traveler, err := s.buildTraveler(req)
	if err != nil {
		return nil, err
	}

	ref := s.refs.GenerateRef()

	s.logger.Info("booking attempt started",
		logger.Field{Key: "attempt_ref", Value: ref},
		logger.Field{Key: "state", Value: string(StateSearching)},
		logger.Field{Key: "offer_id", Value: req.OfferID},
	)

	offer, err := s.flights.FindOffer(ctx, flight.SearchRequest{
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
	}, req.OfferID)
	if err != nil {
		return nil, s.fail(ref, StateSearching, err)
	}

	s.logger.Info("booking attempt pricing",
		logger.Field{Key: "attempt_ref", Value: ref},
		logger.Field{Key: "state", Value: string(StatePricing)},
	)

	priced, err := s.api.PriceFlightOffer(ctx, offer)
	if err != nil {
		return nil, s.fail(ref, StatePricing, s.upstreamError("flight offer pricing failed", err))
	}

	s.logger.Info("booking attempt creating order",
		logger.Field{Key: "attempt_ref", Value: ref},
		logger.Field{Key: "state", Value: string(StateCreating)},
	)

	order, err := s.api.CreateFlightOrder(ctx, priced, traveler)
	if err != nil {
		return nil, s.fail(ref, StateCreating, s.upstreamError("booking creation failed", err))
	}

	s.logger.Info("booking confirmed",
		logger.Field{Key: "attempt_ref", Value: ref},
		logger.Field{Key: "state", Value: string(StateConfirmed)},
		logger.Field{Key: "booking_id", Value: order.ID},
	)

	total := priced.Price.GrandTotal
	if total == "" {
		total = priced.Price.Total
	}

	return &Confirmation{
		BookingID:  order.ID,
		AttemptRef: ref,
		State:      StateConfirmed,
		Price: flight.Price{
			Total:    total,
			Currency: priced.Price.Currency,
		},
		Traveler: TravelerContact{
			Name:        req.TravelerName,
			Email:       req.TravelerEmail,
			Phone:       req.TravelerPhone,
			DateOfBirth: req.TravelerDOB,
			Gender:      req.TravelerGender,
		},
	}, nil
}

// Get fetches a stored booking and re-runs the enrichment pipeline over
// every offer in it, matching what a live search returns.
func (s *Service) Get(ctx context.Context, id string) (*BookingView, error) {
	order, err := s.api.GetFlightOrder(ctx, id)
	if err != nil {
		var apiErr *travelapi.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, apperr.NotFound("booking not found")
		}
		return nil, s.upstreamError("booking retrieval failed", err)
	}

	return &BookingView{
		BookingID: order.ID,
		Offers:    s.flights.EnrichOffers(ctx, order.FlightOffers),
	}, nil
}

// buildTraveler validates and normalizes the client-supplied contact fields
// into the upstream traveler record. Name splits into first/last on the
// first space only; gender is upper-cased; the phone gets the configured
// country calling code.
func (s *Service) buildTraveler(req CreateRequest) (travelapi.Traveler, error) {
	required := []struct {
		value string
		field string
	}{
		{req.TravelerName, "traveler_name"},
		{req.TravelerEmail, "traveler_email"},
		{req.TravelerPhone, "traveler_phone"},
		{req.TravelerDOB, "traveler_dob"},
		{req.TravelerGender, "traveler_gender"},
	}
	for _, r := range required {
		if r.value == "" {
			return travelapi.Traveler{}, apperr.Validation("missing required field: " + r.field)
		}
	}

	firstName := req.TravelerName
	lastName := ""
	if idx := strings.Index(req.TravelerName, " "); idx >= 0 {
		firstName = req.TravelerName[:idx]
		lastName = req.TravelerName[idx+1:]
	}

	return travelapi.Traveler{
		ID:          "1",
		DateOfBirth: req.TravelerDOB,
		Name: travelapi.TravelerName{
			FirstName: firstName,
			LastName:  lastName,
		},
		Gender: strings.ToUpper(req.TravelerGender),
		Contact: travelapi.TravelerContact{
			EmailAddress: req.TravelerEmail,
			Phones: []travelapi.Phone{{
				DeviceType:         "MOBILE",
				CountryCallingCode: s.callingCode,
				Number:             req.TravelerPhone,
			}},
		},
	}, nil
}

func (s *Service) fail(ref string, state State, err error) error {
	s.logger.Warn("booking attempt failed",
		logger.Field{Key: "attempt_ref", Value: ref},
		logger.Field{Key: "state", Value: string(state)},
		logger.Field{Key: "final_state", Value: string(StateFailed)},
		logger.Field{Key: "err", Value: err},
	)
	return err
}

func (s *Service) upstreamError(message string, err error) error {
	if errors.Is(err, travelapi.ErrAuthUnavailable) {
		return apperr.Unavailable("travel provider authentication failed", err)
	}
	return apperr.Upstream(message, err)
}
