package travelapi

import "encoding/json"

type LocationSubType string

const (
	SubTypeAirport LocationSubType = "AIRPORT"
	SubTypeCity    LocationSubType = "CITY"
)

type locationsResponse struct {
	Data []LocationData `json:"data"`
}

type LocationData struct {
	IataCode string          `json:"iataCode"`
	Name     string          `json:"name"`
	SubType  string          `json:"subType"`
	Address  LocationAddress `json:"address"`
}

type LocationAddress struct {
	CityName    string `json:"cityName"`
	CountryName string `json:"countryName"`
}

type airlinesResponse struct {
	Data []AirlineData `json:"data"`
}

type AirlineData struct {
	IataCode     string `json:"iataCode"`
	CommonName   string `json:"commonName"`
	BusinessName string `json:"businessName"`
}

// FlightOffer carries the fields this service reads plus the raw upstream
// payload. The raw form is what gets resubmitted to the pricing and booking
// endpoints; everything the upstream put in the offer survives untouched.
type FlightOffer struct {
	ID          string      `json:"id"`
	Price       OfferPrice  `json:"price"`
	Itineraries []Itinerary `json:"itineraries"`

	raw json.RawMessage
}

func (o *FlightOffer) UnmarshalJSON(data []byte) error {
	type plain FlightOffer
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*o = FlightOffer(p)
	o.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (o FlightOffer) MarshalJSON() ([]byte, error) {
	if len(o.raw) > 0 {
		return o.raw, nil
	}
	type plain FlightOffer
	return json.Marshal(plain(o))
}

type OfferPrice struct {
	Currency   string `json:"currency"`
	Total      string `json:"total"`
	GrandTotal string `json:"grandTotal"`
}

type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

type Segment struct {
	Departure   SegmentEndpoint `json:"departure"`
	Arrival     SegmentEndpoint `json:"arrival"`
	CarrierCode string          `json:"carrierCode"`
	Number      string          `json:"number"`
}

type SegmentEndpoint struct {
	IataCode string `json:"iataCode"`
	Terminal string `json:"terminal,omitempty"`
	At       string `json:"at"`
}

type Traveler struct {
	ID          string          `json:"id"`
	DateOfBirth string          `json:"dateOfBirth"`
	Name        TravelerName    `json:"name"`
	Gender      string          `json:"gender"`
	Contact     TravelerContact `json:"contact"`
}

type TravelerName struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type TravelerContact struct {
	EmailAddress string  `json:"emailAddress"`
	Phones       []Phone `json:"phones"`
}

type Phone struct {
	DeviceType         string `json:"deviceType"`
	CountryCallingCode string `json:"countryCallingCode"`
	Number             string `json:"number"`
}

// FlightOrder is the upstream booking record.
type FlightOrder struct {
	ID           string        `json:"id"`
	FlightOffers []FlightOffer `json:"flightOffers"`
	Travelers    []Traveler    `json:"travelers"`
}

type HotelData struct {
	HotelID  string `json:"hotelId"`
	Name     string `json:"name"`
	IataCode string `json:"iataCode"`
}

type HotelOfferData struct {
	Hotel     HotelSummary `json:"hotel"`
	Available bool         `json:"available"`
	Offers    []HotelOffer `json:"offers"`
}

type HotelSummary struct {
	HotelID  string       `json:"hotelId"`
	Name     string       `json:"name"`
	CityCode string       `json:"cityCode"`
	Address  HotelAddress `json:"address"`
}

type HotelAddress struct {
	CityName string `json:"cityName"`
}

type HotelOffer struct {
	CheckInDate  string     `json:"checkInDate"`
	CheckOutDate string     `json:"checkOutDate"`
	Price        HotelPrice `json:"price"`
}

type HotelPrice struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}
