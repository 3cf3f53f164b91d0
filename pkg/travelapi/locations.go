package travelapi

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// SearchLocations runs a keyword lookup against the reference-data locations
// endpoint, filtered to the given subtypes. Matches come back in upstream
// ranking order.
func (c *Client) SearchLocations(ctx context.Context, keyword string, subTypes ...LocationSubType) ([]LocationData, error) {
	parts := make([]string, 0, len(subTypes))
	for _, st := range subTypes {
		parts = append(parts, string(st))
	}

	q := url.Values{}
	q.Set("keyword", keyword)
	q.Set("subType", strings.Join(parts, ","))

	var resp locationsResponse
	if err := c.get(ctx, "/v1/reference-data/locations", q, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetAirline resolves one carrier code to its airline record.
func (c *Client) GetAirline(ctx context.Context, code string) (*AirlineData, error) {
	q := url.Values{}
	q.Set("airlineCodes", code)

	var resp airlinesResponse
	if err := c.get(ctx, "/v1/reference-data/airlines", q, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("travelapi: no airline record for %q", code)
	}
	return &resp.Data[0], nil
}
