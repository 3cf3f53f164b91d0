package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
)

func main() {
	// Default port
	port := "8081"

	// Check if port is provided as command line argument
	if len(os.Args) > 1 {
		port = os.Args[1]
	}

	http.HandleFunc("/v1/security/oauth2/token", TokenHandler)
	http.HandleFunc("/v1/reference-data/locations", LocationsHandler)
	http.HandleFunc("/v1/reference-data/locations/hotels/by-city", HotelListHandler)
	http.HandleFunc("/v1/reference-data/airlines", AirlinesHandler)
	http.HandleFunc("/v2/shopping/flight-offers", FlightOffersHandler)
	http.HandleFunc("/v1/shopping/flight-offers/pricing", PricingHandler)
	http.HandleFunc("/v1/booking/flight-orders", CreateOrderHandler)
	http.HandleFunc("/v1/booking/flight-orders/", GetOrderHandler)
	http.HandleFunc("/v3/shopping/hotel-offers", HotelOffersHandler)

	addr := fmt.Sprintf(":%s", port)
	fmt.Printf("Travel API Mock Server running on port %s...\n", port)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatal(err)
	}
}
