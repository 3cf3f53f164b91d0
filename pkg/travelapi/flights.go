package travelapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

type flightOffersResponse struct {
	Data []FlightOffer `json:"data"`
}

// SearchFlightOffers runs a flight-offer search between two location codes
// on the given departure date.
func (c *Client) SearchFlightOffers(ctx context.Context, origin, destination, date string, adults int) ([]FlightOffer, error) {
	q := url.Values{}
	q.Set("originLocationCode", origin)
	q.Set("destinationLocationCode", destination)
	q.Set("departureDate", date)
	q.Set("adults", strconv.Itoa(adults))

	var resp flightOffersResponse
	if err := c.get(ctx, "/v2/shopping/flight-offers", q, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

type pricingRequest struct {
	Data pricingRequestData `json:"data"`
}

type pricingRequestData struct {
	Type         string        `json:"type"`
	FlightOffers []FlightOffer `json:"flightOffers"`
}

type pricingResponse struct {
	Data struct {
		FlightOffers []FlightOffer `json:"flightOffers"`
	} `json:"data"`
}

// PriceFlightOffer submits one offer for price confirmation and returns the
// re-priced offer with the authoritative total.
func (c *Client) PriceFlightOffer(ctx context.Context, offer *FlightOffer) (*FlightOffer, error) {
	body := pricingRequest{
		Data: pricingRequestData{
			Type:         "flight-offers-pricing",
			FlightOffers: []FlightOffer{*offer},
		},
	}

	var resp pricingResponse
	if err := c.post(ctx, "/v1/shopping/flight-offers/pricing", body, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data.FlightOffers) == 0 {
		return nil, fmt.Errorf("travelapi: pricing returned no offers")
	}
	return &resp.Data.FlightOffers[0], nil
}

type orderRequest struct {
	Data orderRequestData `json:"data"`
}

type orderRequestData struct {
	Type         string        `json:"type"`
	FlightOffers []FlightOffer `json:"flightOffers"`
	Travelers    []Traveler    `json:"travelers"`
}

type orderResponse struct {
	Data FlightOrder `json:"data"`
}

// CreateFlightOrder books one priced offer for one traveler.
func (c *Client) CreateFlightOrder(ctx context.Context, offer *FlightOffer, traveler Traveler) (*FlightOrder, error) {
	body := orderRequest{
		Data: orderRequestData{
			Type:         "flight-order",
			FlightOffers: []FlightOffer{*offer},
			Travelers:    []Traveler{traveler},
		},
	}

	var resp orderResponse
	if err := c.post(ctx, "/v1/booking/flight-orders", body, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// GetFlightOrder fetches a booking record by its upstream id.
func (c *Client) GetFlightOrder(ctx context.Context, id string) (*FlightOrder, error) {
	var resp orderResponse
	if err := c.get(ctx, "/v1/booking/flight-orders/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
