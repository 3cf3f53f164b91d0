package hotel

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripdesk/internal/apperr"
	"tripdesk/pkg/logger"
	"tripdesk/pkg/travelapi"
)

type fakeUpstream struct {
	hotels    []travelapi.HotelData
	listErr   error
	offers    []travelapi.HotelOfferData
	offersErr error

	requestedIDs    []string
	requestedAdults int
}

func (f *fakeUpstream) ListHotelsByCity(ctx context.Context, cityCode string) ([]travelapi.HotelData, error) {
	return f.hotels, f.listErr
}

func (f *fakeUpstream) SearchHotelOffers(ctx context.Context, hotelIDs []string, checkIn, checkOut string, adults int) ([]travelapi.HotelOfferData, error) {
	f.requestedIDs = hotelIDs
	f.requestedAdults = adults
	return f.offers, f.offersErr
}

type fakeCityResolver struct{ name string }

func (f *fakeCityResolver) CityName(ctx context.Context, code string) string {
	if f.name != "" {
		return f.name
	}
	return code
}

func testLogger() logger.Client {
	return logger.NewWithWriter("production", io.Discard)
}

func hotelOffer(id, name string, available bool, total string) travelapi.HotelOfferData {
	data := travelapi.HotelOfferData{
		Hotel:     travelapi.HotelSummary{HotelID: id, Name: name},
		Available: available,
	}
	if total != "" {
		data.Offers = []travelapi.HotelOffer{{Price: travelapi.HotelPrice{Total: total, Currency: "USD"}}}
	}
	return data
}

func validRequest() SearchRequest {
	return SearchRequest{CityCode: "NYC", CheckIn: "2026-09-10", CheckOut: "2026-09-12"}
}

func TestSearch(t *testing.T) {
	api := &fakeUpstream{
		hotels: []travelapi.HotelData{{HotelID: "MCNYCMID"}, {HotelID: "HLNYCSOH"}},
		offers: []travelapi.HotelOfferData{
			hotelOffer("MCNYCMID", "MIDTOWN CENTRAL", true, "214.00"),
			hotelOffer("HLNYCSOH", "SOHO GRAND STAY", true, "302.00"),
		},
	}
	svc := NewService(api, &fakeCityResolver{name: "New York"}, testLogger())

	resp, err := svc.Search(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "NYC", resp.CityCode)
	assert.Equal(t, "New York", resp.CityName)
	require.Len(t, resp.Hotels, 2)
	assert.Equal(t, Result{HotelID: "MCNYCMID", Name: "MIDTOWN CENTRAL", CityName: "New York", Price: "214.00", Currency: "USD"}, resp.Hotels[0])

	assert.Equal(t, []string{"MCNYCMID", "HLNYCSOH"}, api.requestedIDs)
	assert.Equal(t, 1, api.requestedAdults) // defaulted
}

func TestSearch_MissingParameters(t *testing.T) {
	svc := NewService(&fakeUpstream{}, &fakeCityResolver{}, testLogger())

	_, err := svc.Search(context.Background(), SearchRequest{CityCode: "NYC"})

	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.ErrorCodeValidation, appErr.Code)
}

func TestSearch_NoHotelsInCity(t *testing.T) {
	svc := NewService(&fakeUpstream{}, &fakeCityResolver{}, testLogger())

	_, err := svc.Search(context.Background(), validRequest())

	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.ErrorCodeNotFound, appErr.Code)
}

func TestSearch_SkipsUnavailableAndEmptyOffers(t *testing.T) {
	api := &fakeUpstream{
		hotels: []travelapi.HotelData{{HotelID: "A"}, {HotelID: "B"}, {HotelID: "C"}},
		offers: []travelapi.HotelOfferData{
			hotelOffer("A", "AVAILABLE ONE", true, "180.00"),
			hotelOffer("B", "SOLD OUT", false, "199.00"),
			hotelOffer("C", "NO RATES", true, ""),
		},
	}
	svc := NewService(api, &fakeCityResolver{}, testLogger())

	resp, err := svc.Search(context.Background(), validRequest())

	require.NoError(t, err)
	require.Len(t, resp.Hotels, 1)
	assert.Equal(t, "A", resp.Hotels[0].HotelID)
}

func TestSearch_CapsHotelIDBatch(t *testing.T) {
	hotels := make([]travelapi.HotelData, maxHotelIDs+5)
	for i := range hotels {
		hotels[i].HotelID = string(rune('A' + i))
	}
	api := &fakeUpstream{hotels: hotels}
	svc := NewService(api, &fakeCityResolver{}, testLogger())

	_, _ = svc.Search(context.Background(), validRequest())

	assert.Len(t, api.requestedIDs, maxHotelIDs)
}

func TestSearch_UpstreamFailure(t *testing.T) {
	api := &fakeUpstream{listErr: errors.New("upstream timeout")}
	svc := NewService(api, &fakeCityResolver{}, testLogger())

	_, err := svc.Search(context.Background(), validRequest())

	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.ErrorCodeUpstreamFailure, appErr.Code)
}

func TestSearch_AuthFailureIsServiceUnavailable(t *testing.T) {
	api := &fakeUpstream{
		hotels:    []travelapi.HotelData{{HotelID: "A"}},
		offersErr: travelapi.ErrAuthUnavailable,
	}
	svc := NewService(api, &fakeCityResolver{}, testLogger())

	_, err := svc.Search(context.Background(), validRequest())

	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.ErrorCodeServiceUnavailable, appErr.Code)
}
