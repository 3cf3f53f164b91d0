package travelapi

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

type hotelListResponse struct {
	Data []HotelData `json:"data"`
}

// ListHotelsByCity returns the hotels registered for a city code.
func (c *Client) ListHotelsByCity(ctx context.Context, cityCode string) ([]HotelData, error) {
	q := url.Values{}
	q.Set("cityCode", cityCode)
	q.Set("radius", "5")
	q.Set("radiusUnit", "KM")

	var resp hotelListResponse
	if err := c.get(ctx, "/v1/reference-data/locations/hotels/by-city", q, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

type hotelOffersResponse struct {
	Data []HotelOfferData `json:"data"`
}

// SearchHotelOffers fetches available offers for a batch of hotel ids.
func (c *Client) SearchHotelOffers(ctx context.Context, hotelIDs []string, checkIn, checkOut string, adults int) ([]HotelOfferData, error) {
	q := url.Values{}
	q.Set("hotelIds", strings.Join(hotelIDs, ","))
	q.Set("checkInDate", checkIn)
	q.Set("checkOutDate", checkOut)
	q.Set("adults", strconv.Itoa(adults))
	q.Set("bestRateOnly", "true")

	var resp hotelOffersResponse
	if err := c.get(ctx, "/v3/shopping/hotel-offers", q, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
