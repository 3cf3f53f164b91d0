package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
)

var (
	ordersMu sync.Mutex
	orders   = map[string]map[string]any{}
	orderSeq int
)

func offer(id, origin, destination, date, carrier, number, total string) map[string]any {
	return map[string]any{
		"id":   id,
		"type": "flight-offer",
		"price": map[string]any{
			"currency":   "USD",
			"total":      total,
			"grandTotal": total,
		},
		"itineraries": []map[string]any{
			{
				"duration": "PT7H30M",
				"segments": []map[string]any{
					{
						"departure": map[string]any{
							"iataCode": origin,
							"terminal": "4",
							"at":       date + "T18:30:00",
						},
						"arrival": map[string]any{
							"iataCode": destination,
							"terminal": "5",
							"at":       date + "T02:00:00",
						},
						"carrierCode": carrier,
						"number":      number,
					},
				},
			},
		},
	}
}

func FlightOffersHandler(w http.ResponseWriter, r *http.Request) {
	origin := strings.ToUpper(r.URL.Query().Get("originLocationCode"))
	destination := strings.ToUpper(r.URL.Query().Get("destinationLocationCode"))
	date := r.URL.Query().Get("departureDate")
	if origin == "" || destination == "" || date == "" {
		http.Error(w, "missing required query parameters", http.StatusBadRequest)
		return
	}

	offers := []map[string]any{
		offer("1", origin, destination, date, "BA", "178", "642.50"),
		offer("2", origin, destination, date, "DL", "4370", "598.20"),
		offer("3", origin, destination, date, "AF", "1181", "711.00"),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"data": offers})
}

func PricingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Data struct {
			FlightOffers []json.RawMessage `json:"flightOffers"`
		} `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Data.FlightOffers) == 0 {
		http.Error(w, "invalid pricing request", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"data": map[string]any{
			"type":         "flight-offers-pricing",
			"flightOffers": req.Data.FlightOffers,
		},
	})
}

func CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Data struct {
			FlightOffers []json.RawMessage `json:"flightOffers"`
			Travelers    []json.RawMessage `json:"travelers"`
		} `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Data.FlightOffers) == 0 {
		http.Error(w, "invalid order request", http.StatusBadRequest)
		return
	}

	ordersMu.Lock()
	orderSeq++
	id := fmt.Sprintf("eJzTd9%d", orderSeq)
	order := map[string]any{
		"id":           id,
		"type":         "flight-order",
		"flightOffers": req.Data.FlightOffers,
		"travelers":    req.Data.Travelers,
	}
	orders[id] = order
	ordersMu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{"data": order})
}

func GetOrderHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/booking/flight-orders/")

	ordersMu.Lock()
	order, ok := orders[id]
	ordersMu.Unlock()

	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{
			"errors": []map[string]any{{"status": 404, "title": "Resource not found"}},
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"data": order})
}
