package flight

type SearchRequest struct {
	Origin        string `json:"origin" form:"origin"`
	Destination   string `json:"destination" form:"destination"`
	DepartureDate string `json:"departure_date" form:"date"`
}

type SearchResponse struct {
	SearchCriteria SearchCriteria  `json:"search_criteria"`
	Metadata       Metadata        `json:"metadata"`
	Offers         []EnrichedOffer `json:"offers"`
}

type SearchCriteria struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
}

type Metadata struct {
	TotalResults uint32 `json:"total_results"`
	SearchTimeMs uint32 `json:"search_time_ms,omitempty"`
	CacheHit     bool   `json:"cache_hit"`
	CacheKey     string `json:"cache_key,omitempty"`
}

// EnrichedOffer is the display-ready form of an upstream flight offer. It is
// built by the enrichment pipeline as a new structure; the source offer is
// never mutated and keeps its raw payload for pricing and booking.
type EnrichedOffer struct {
	ID          string              `json:"id"`
	Price       Price               `json:"price"`
	Itineraries []EnrichedItinerary `json:"itineraries"`
}

type Price struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

type EnrichedItinerary struct {
	Segments []EnrichedSegment `json:"segments"`
}

type EnrichedSegment struct {
	Departure      Endpoint `json:"departure"`
	Arrival        Endpoint `json:"arrival"`
	CarrierCode    string   `json:"carrier_code"`
	AirlineName    string   `json:"airline_name"`
	FlightNumber   string   `json:"flight_number"`
	FlightDuration string   `json:"flight_duration"`
}

type Endpoint struct {
	IataCode    string `json:"iata_code"`
	CityName    string `json:"city_name"`
	AirportName string `json:"airport_name"`
	Terminal    string `json:"terminal"`
	At          string `json:"at"`
}
