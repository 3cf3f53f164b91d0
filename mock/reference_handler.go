package main

import (
	"encoding/json"
	"net/http"
	"strings"
)

type Location struct {
	IataCode string  `json:"iataCode"`
	Name     string  `json:"name"`
	SubType  string  `json:"subType"`
	Address  Address `json:"address"`
}

type Address struct {
	CityName    string `json:"cityName"`
	CountryName string `json:"countryName"`
}

type Airline struct {
	IataCode     string `json:"iataCode"`
	CommonName   string `json:"commonName"`
	BusinessName string `json:"businessName"`
}

var locations = map[string][]Location{
	"JFK": {{IataCode: "JFK", Name: "JOHN F KENNEDY INTL", SubType: "AIRPORT", Address: Address{CityName: "NEW YORK", CountryName: "UNITED STATES"}}},
	"LGA": {{IataCode: "LGA", Name: "LAGUARDIA", SubType: "AIRPORT", Address: Address{CityName: "NEW YORK", CountryName: "UNITED STATES"}}},
	"NYC": {
		{IataCode: "JFK", Name: "JOHN F KENNEDY INTL", SubType: "AIRPORT", Address: Address{CityName: "NEW YORK", CountryName: "UNITED STATES"}},
		{IataCode: "LGA", Name: "LAGUARDIA", SubType: "AIRPORT", Address: Address{CityName: "NEW YORK", CountryName: "UNITED STATES"}},
		{IataCode: "EWR", Name: "NEWARK LIBERTY INTL", SubType: "AIRPORT", Address: Address{CityName: "NEW YORK", CountryName: "UNITED STATES"}},
	},
	"LHR": {{IataCode: "LHR", Name: "HEATHROW", SubType: "AIRPORT", Address: Address{CityName: "LONDON", CountryName: "UNITED KINGDOM"}}},
	"LON": {
		{IataCode: "LHR", Name: "HEATHROW", SubType: "AIRPORT", Address: Address{CityName: "LONDON", CountryName: "UNITED KINGDOM"}},
		{IataCode: "LGW", Name: "GATWICK", SubType: "AIRPORT", Address: Address{CityName: "LONDON", CountryName: "UNITED KINGDOM"}},
	},
	"CDG": {{IataCode: "CDG", Name: "CHARLES DE GAULLE", SubType: "AIRPORT", Address: Address{CityName: "PARIS", CountryName: "FRANCE"}}},
	"PAR": {
		{IataCode: "CDG", Name: "CHARLES DE GAULLE", SubType: "AIRPORT", Address: Address{CityName: "PARIS", CountryName: "FRANCE"}},
		{IataCode: "ORY", Name: "ORLY", SubType: "AIRPORT", Address: Address{CityName: "PARIS", CountryName: "FRANCE"}},
	},
}

var airlines = map[string]Airline{
	"BA": {IataCode: "BA", CommonName: "BRITISH AIRWAYS", BusinessName: "BRITISH AIRWAYS"},
	"AF": {IataCode: "AF", CommonName: "AIR FRANCE", BusinessName: "AIR FRANCE"},
	"DL": {IataCode: "DL", CommonName: "DELTA", BusinessName: "DELTA AIR LINES"},
	"UA": {IataCode: "UA", CommonName: "UNITED", BusinessName: "UNITED AIRLINES"},
}

func TokenHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"access_token": "mock-token-12345",
		"token_type":   "Bearer",
		"expires_in":   1799,
	})
}

func LocationsHandler(w http.ResponseWriter, r *http.Request) {
	keyword := strings.ToUpper(r.URL.Query().Get("keyword"))
	subTypes := strings.Split(r.URL.Query().Get("subType"), ",")

	allowed := make(map[string]bool, len(subTypes))
	for _, st := range subTypes {
		allowed[st] = true
	}

	matched := make([]Location, 0)
	for _, loc := range locations[keyword] {
		if allowed[loc.SubType] {
			matched = append(matched, loc)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"data": matched})
}

func AirlinesHandler(w http.ResponseWriter, r *http.Request) {
	codes := strings.Split(r.URL.Query().Get("airlineCodes"), ",")

	matched := make([]Airline, 0)
	for _, code := range codes {
		if airline, ok := airlines[strings.ToUpper(code)]; ok {
			matched = append(matched, airline)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"data": matched})
}
