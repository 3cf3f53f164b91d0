package booking

import "tripdesk/internal/flight"

// State tracks a booking attempt through the orchestrator.
type State string

const (
	StateSearching State = "SEARCHING"
	StatePricing   State = "PRICING"
	StateCreating  State = "CREATING"
	StateConfirmed State = "CONFIRMED"
	StateFailed    State = "FAILED"
)

type CreateRequest struct {
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	DepartureDate  string `json:"departure_date"`
	OfferID        string `json:"offer_id"`
	TravelerName   string `json:"traveler_name"`
	TravelerEmail  string `json:"traveler_email"`
	TravelerPhone  string `json:"traveler_phone"`
	TravelerDOB    string `json:"traveler_dob"`
	TravelerGender string `json:"traveler_gender"`
}

// Confirmation is handed back on success. Traveler contact details travel
// through this payload only; nothing is persisted server-side.
type Confirmation struct {
	BookingID  string          `json:"booking_id"`
	AttemptRef string          `json:"attempt_ref"`
	State      State           `json:"state"`
	Price      flight.Price    `json:"price"`
	Traveler   TravelerContact `json:"traveler"`
}

type TravelerContact struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
}

// BookingView is a stored booking re-enriched for display.
type BookingView struct {
	BookingID string                 `json:"booking_id"`
	Offers    []flight.EnrichedOffer `json:"offers"`
}
