package main

import (
	"encoding/json"
	"net/http"
	"strings"
)

type Hotel struct {
	HotelID  string `json:"hotelId"`
	Name     string `json:"name"`
	CityCode string `json:"cityCode"`
}

var hotels = map[string][]Hotel{
	"NYC": {
		{HotelID: "MCNYCMID", Name: "MIDTOWN CENTRAL", CityCode: "NYC"},
		{HotelID: "HLNYCSOH", Name: "SOHO GRAND STAY", CityCode: "NYC"},
	},
	"LON": {
		{HotelID: "BWLONBBH", Name: "BAYSWATER INN", CityCode: "LON"},
	},
	"PAR": {
		{HotelID: "ACPARLOU", Name: "HOTEL DU LOUVRE", CityCode: "PAR"},
	},
}

func HotelListHandler(w http.ResponseWriter, r *http.Request) {
	cityCode := strings.ToUpper(r.URL.Query().Get("cityCode"))
	if cityCode == "" {
		http.Error(w, "missing cityCode", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"data": hotels[cityCode]})
}

func HotelOffersHandler(w http.ResponseWriter, r *http.Request) {
	ids := strings.Split(r.URL.Query().Get("hotelIds"), ",")
	checkIn := r.URL.Query().Get("checkInDate")
	checkOut := r.URL.Query().Get("checkOutDate")
	if len(ids) == 0 || checkIn == "" || checkOut == "" {
		http.Error(w, "missing required query parameters", http.StatusBadRequest)
		return
	}

	entries := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		entries = append(entries, map[string]any{
			"type":      "hotel-offers",
			"available": true,
			"hotel": map[string]any{
				"hotelId":  id,
				"name":     "MOCK HOTEL " + id,
				"cityCode": "NYC",
				"address":  map[string]any{"cityName": "NEW YORK"},
			},
			"offers": []map[string]any{
				{
					"id":           "OFF" + id,
					"checkInDate":  checkIn,
					"checkOutDate": checkOut,
					"price": map[string]any{
						"currency": "USD",
						"total":    "214.00",
					},
				},
			},
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"data": entries})
}
