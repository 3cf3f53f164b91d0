package booking

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripdesk/internal/apperr"
	"tripdesk/internal/flight"
	"tripdesk/pkg/logger"
	"tripdesk/pkg/travelapi"
)

type fakeUpstream struct {
	priceCalls  int
	createCalls int

	priceErr  error
	createErr error

	order    *travelapi.FlightOrder
	orderErr error

	createdTraveler travelapi.Traveler
}

func (f *fakeUpstream) PriceFlightOffer(ctx context.Context, offer *travelapi.FlightOffer) (*travelapi.FlightOffer, error) {
	f.priceCalls++
	if f.priceErr != nil {
		return nil, f.priceErr
	}
	priced := *offer
	priced.Price.GrandTotal = "655.00"
	priced.Price.Currency = "USD"
	return &priced, nil
}

func (f *fakeUpstream) CreateFlightOrder(ctx context.Context, offer *travelapi.FlightOffer, traveler travelapi.Traveler) (*travelapi.FlightOrder, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.createdTraveler = traveler
	return &travelapi.FlightOrder{ID: "eJzTd9", Travelers: []travelapi.Traveler{traveler}}, nil
}

func (f *fakeUpstream) GetFlightOrder(ctx context.Context, id string) (*travelapi.FlightOrder, error) {
	if f.orderErr != nil {
		return nil, f.orderErr
	}
	return f.order, nil
}

type fakeFlights struct {
	offer     *travelapi.FlightOffer
	findErr   error
	findCalls int
}

func (f *fakeFlights) FindOffer(ctx context.Context, req flight.SearchRequest, offerID string) (*travelapi.FlightOffer, error) {
	f.findCalls++
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.offer, nil
}

func (f *fakeFlights) EnrichOffers(ctx context.Context, offers []travelapi.FlightOffer) []flight.EnrichedOffer {
	enriched := make([]flight.EnrichedOffer, len(offers))
	for i := range offers {
		enriched[i].ID = offers[i].ID
	}
	return enriched
}

type fixedRefs struct{}

func (fixedRefs) GenerateRef() string { return "ref-8k2j1" }

func testLogger() logger.Client {
	return logger.NewWithWriter("production", io.Discard)
}

func validRequest() CreateRequest {
	return CreateRequest{
		Origin:         "JFK",
		Destination:    "LHR",
		DepartureDate:  "2026-09-10",
		OfferID:        "1",
		TravelerName:   "Amelia van der Berg",
		TravelerEmail:  "amelia@example.com",
		TravelerPhone:  "2125550143",
		TravelerDOB:    "1991-04-02",
		TravelerGender: "female",
	}
}

func newTestService(api *fakeUpstream, flights *fakeFlights) *Service {
	return NewService(api, flights, fixedRefs{}, "1", testLogger())
}

func TestCreate_Confirmed(t *testing.T) {
	api := &fakeUpstream{}
	flights := &fakeFlights{offer: &travelapi.FlightOffer{
		ID:    "1",
		Price: travelapi.OfferPrice{Currency: "USD", Total: "642.50"},
	}}
	svc := newTestService(api, flights)

	confirmation, err := svc.Create(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "eJzTd9", confirmation.BookingID)
	assert.Equal(t, "ref-8k2j1", confirmation.AttemptRef)
	assert.Equal(t, StateConfirmed, confirmation.State)
	assert.Equal(t, "655.00", confirmation.Price.Total)
	assert.Equal(t, "USD", confirmation.Price.Currency)
	assert.Equal(t, "Amelia van der Berg", confirmation.Traveler.Name)

	assert.Equal(t, 1, flights.findCalls)
	assert.Equal(t, 1, api.priceCalls)
	assert.Equal(t, 1, api.createCalls)
}

func TestCreate_TravelerNormalization(t *testing.T) {
	api := &fakeUpstream{}
	flights := &fakeFlights{offer: &travelapi.FlightOffer{ID: "1"}}
	svc := newTestService(api, flights)

	_, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	traveler := api.createdTraveler
	// name splits on the first space only
	assert.Equal(t, "Amelia", traveler.Name.FirstName)
	assert.Equal(t, "van der Berg", traveler.Name.LastName)
	assert.Equal(t, "FEMALE", traveler.Gender)
	assert.Equal(t, "1991-04-02", traveler.DateOfBirth)

	require.Len(t, traveler.Contact.Phones, 1)
	phone := traveler.Contact.Phones[0]
	assert.Equal(t, "MOBILE", phone.DeviceType)
	assert.Equal(t, "1", phone.CountryCallingCode)
	assert.Equal(t, "2125550143", phone.Number)
}

func TestCreate_MissingTravelerField(t *testing.T) {
	api := &fakeUpstream{}
	flights := &fakeFlights{offer: &travelapi.FlightOffer{ID: "1"}}
	svc := newTestService(api, flights)

	req := validRequest()
	req.TravelerPhone = ""

	_, err := svc.Create(context.Background(), req)

	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.ErrorCodeValidation, appErr.Code)
	assert.Contains(t, appErr.Message, "traveler_phone")

	// validation happens before any upstream call
	assert.Equal(t, 0, flights.findCalls)
	assert.Equal(t, 0, api.priceCalls)
	assert.Equal(t, 0, api.createCalls)
}

func TestCreate_OfferNotFound(t *testing.T) {
	api := &fakeUpstream{}
	flights := &fakeFlights{findErr: apperr.NotFound("flight offer not found")}
	svc := newTestService(api, flights)

	_, err := svc.Create(context.Background(), validRequest())

	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.ErrorCodeNotFound, appErr.Code)
	assert.Equal(t, 0, api.priceCalls)
}

func TestCreate_PricingFailure(t *testing.T) {
	api := &fakeUpstream{priceErr: errors.New("upstream timeout")}
	flights := &fakeFlights{offer: &travelapi.FlightOffer{ID: "1"}}
	svc := newTestService(api, flights)

	_, err := svc.Create(context.Background(), validRequest())

	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.ErrorCodeUpstreamFailure, appErr.Code)
	assert.Equal(t, 0, api.createCalls)
}

func TestCreate_AuthFailureIsServiceUnavailable(t *testing.T) {
	api := &fakeUpstream{priceErr: travelapi.ErrAuthUnavailable}
	flights := &fakeFlights{offer: &travelapi.FlightOffer{ID: "1"}}
	svc := newTestService(api, flights)

	_, err := svc.Create(context.Background(), validRequest())

	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.ErrorCodeServiceUnavailable, appErr.Code)
}

func TestGet(t *testing.T) {
	api := &fakeUpstream{order: &travelapi.FlightOrder{
		ID:           "eJzTd9",
		FlightOffers: []travelapi.FlightOffer{{ID: "1"}, {ID: "2"}},
	}}
	svc := newTestService(api, &fakeFlights{})

	view, err := svc.Get(context.Background(), "eJzTd9")

	require.NoError(t, err)
	assert.Equal(t, "eJzTd9", view.BookingID)
	require.Len(t, view.Offers, 2)
	assert.Equal(t, "1", view.Offers[0].ID)
}

func TestGet_NotFound(t *testing.T) {
	api := &fakeUpstream{orderErr: &travelapi.APIError{Status: http.StatusNotFound, Body: "not found"}}
	svc := newTestService(api, &fakeFlights{})

	_, err := svc.Get(context.Background(), "missing")

	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.ErrorCodeNotFound, appErr.Code)
}
