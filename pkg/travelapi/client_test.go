package travelapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"tripdesk/pkg/logger"
)

// fakeTokens hands out "tok-1", then "tok-2" after the first Invalidate.
type fakeTokens struct {
	mu          sync.Mutex
	invalidated int
}

func (f *fakeTokens) Token(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.invalidated > 0 {
		return "tok-2", nil
	}
	return "tok-1", nil
}

func (f *fakeTokens) Invalidate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated++
}

func newTestClient(serverURL string, tokens tokenSource) *Client {
	return NewClient(http.DefaultClient, serverURL, tokens, logger.NewWithWriter("production", io.Discard))
}

func TestClient_SearchLocations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/reference-data/locations" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("keyword"); got != "JFK" {
			t.Errorf("expected keyword=JFK, got: %s", got)
		}
		if got := r.URL.Query().Get("subType"); got != "AIRPORT,CITY" {
			t.Errorf("expected subType=AIRPORT,CITY, got: %s", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("expected bearer token, got: %s", got)
		}
		w.Write([]byte(`{"data":[{"iataCode":"JFK","name":"JOHN F KENNEDY INTL","subType":"AIRPORT","address":{"cityName":"NEW YORK"}}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, &fakeTokens{})

	matches, err := client.SearchLocations(context.Background(), "JFK", SubTypeAirport, SubTypeCity)
	if err != nil {
		t.Fatalf("SearchLocations failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got: %d", len(matches))
	}
	if matches[0].Address.CityName != "NEW YORK" {
		t.Errorf("expected cityName NEW YORK, got: %s", matches[0].Address.CityName)
	}
}

func TestClient_ReauthenticatesOn401(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.Header.Get("Authorization") != "Bearer tok-2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"data":[{"iataCode":"BA","commonName":"BRITISH AIRWAYS"}]}`))
	}))
	defer server.Close()

	tokens := &fakeTokens{}
	client := newTestClient(server.URL, tokens)

	record, err := client.GetAirline(context.Background(), "BA")
	if err != nil {
		t.Fatalf("GetAirline failed: %v", err)
	}
	if record.CommonName != "BRITISH AIRWAYS" {
		t.Errorf("expected BRITISH AIRWAYS, got: %s", record.CommonName)
	}
	if tokens.invalidated != 1 {
		t.Errorf("expected exactly one token invalidation, got: %d", tokens.invalidated)
	}
	if requests != 2 {
		t.Errorf("expected 2 upstream requests, got: %d", requests)
	}
}

func TestClient_SecondUnauthorizedIsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL, &fakeTokens{})

	_, err := client.GetAirline(context.Background(), "BA")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got: %v", err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Errorf("expected status 401, got: %d", apiErr.Status)
	}
}

func TestClient_UpstreamErrorCarriesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"errors":[{"title":"SERVER ERROR"}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, &fakeTokens{})

	_, err := client.SearchLocations(context.Background(), "JFK", SubTypeAirport)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got: %v", err)
	}
	if apiErr.Status != http.StatusInternalServerError {
		t.Errorf("expected status 500, got: %d", apiErr.Status)
	}
	if !strings.Contains(apiErr.Body, "SERVER ERROR") {
		t.Errorf("expected body in error, got: %s", apiErr.Body)
	}
}

func TestClient_PricingResubmitsRawOffer(t *testing.T) {
	// The raw upstream payload carries fields this service never models;
	// pricing must receive them back byte-for-byte.
	rawOffer := `{"id":"1","numberOfBookableSeats":4,"price":{"currency":"USD","total":"642.50"},"validatingAirlineCodes":["BA"]}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/shopping/flight-offers":
			w.Write([]byte(`{"data":[` + rawOffer + `]}`))
		case "/v1/shopping/flight-offers/pricing":
			body, _ := io.ReadAll(r.Body)
			var req struct {
				Data struct {
					FlightOffers []json.RawMessage `json:"flightOffers"`
				} `json:"data"`
			}
			if err := json.Unmarshal(body, &req); err != nil {
				t.Errorf("failed to decode pricing request: %v", err)
			}
			if len(req.Data.FlightOffers) != 1 || string(req.Data.FlightOffers[0]) != rawOffer {
				t.Errorf("expected raw offer resubmitted unchanged, got: %s", req.Data.FlightOffers)
			}
			w.Write([]byte(`{"data":{"flightOffers":[` + rawOffer + `]}}`))
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL, &fakeTokens{})

	offers, err := client.SearchFlightOffers(context.Background(), "JFK", "LHR", "2026-09-10", 1)
	if err != nil {
		t.Fatalf("SearchFlightOffers failed: %v", err)
	}
	if len(offers) != 1 {
		t.Fatalf("expected 1 offer, got: %d", len(offers))
	}

	priced, err := client.PriceFlightOffer(context.Background(), &offers[0])
	if err != nil {
		t.Fatalf("PriceFlightOffer failed: %v", err)
	}
	if priced.Price.Total != "642.50" {
		t.Errorf("expected total 642.50, got: %s", priced.Price.Total)
	}
}
