package domain

import "time"

type Provenance string

const (
	ProvenanceReal      Provenance = "real"
	ProvenanceSynthetic Provenance = "synthetic"
)

// RawOffer is an upstream flight record after field-level mapping. CarrierID
// may still be a code, an English name or a Japanese name.
type RawOffer struct {
	CarrierID    string     `json:"carrier_id"`
	FlightNumber string     `json:"flight_number,omitempty"`
	Departure    string     `json:"departure"` // "HH:MM", local time
	Arrival      string     `json:"arrival,omitempty"`
	Price        int        `json:"price"` // JPY per passenger
	Seats        int        `json:"seats,omitempty"`
	Source       string     `json:"source,omitempty"`
	Provenance   Provenance `json:"provenance"`
}

type ComparisonMode string

const (
	ModeSingle   ComparisonMode = "single"
	ModeMultiple ComparisonMode = "multiple"
	ModeAll      ComparisonMode = "all"
)

type SortBy string

const (
	SortByValue     SortBy = "value"
	SortByDeparture SortBy = "departure"
)

// SearchRequest is the inbound request as received from the caller.
type SearchRequest struct {
	Origin           string         `json:"origin"`
	Destination      string         `json:"destination"`
	Date             string         `json:"date"`
	PassengerCount   int            `json:"passengerCount"`
	ReturnDate       *string        `json:"returnDate,omitempty"`
	TargetPrograms   []string       `json:"targetPrograms,omitempty"`
	ComparisonMode   ComparisonMode `json:"comparisonMode"`
	ShowAllTimeSlots bool           `json:"showAllTimeSlots"`
	SortBy           SortBy         `json:"sortBy,omitempty"`
}

// SearchContext is a validated request.
type SearchContext struct {
	Origin           string
	Destination      string
	Date             time.Time
	ReturnDate       *time.Time
	Passengers       int
	Season           Season
	Programs         []Program
	Mode             ComparisonMode
	ShowAllTimeSlots bool
	SortBy           SortBy
}

// OfferQuery is what goes to the upstream offer source.
type OfferQuery struct {
	Origin      string
	Destination string
	Date        time.Time
	Passengers  int
	ReturnDate  *time.Time
}

type RequirementStatus string

const (
	RequirementApplicable    RequirementStatus = "applicable"
	RequirementNoProgram     RequirementStatus = "no_program"
	RequirementNotApplicable RequirementStatus = "not_applicable"
	RequirementUnsupported   RequirementStatus = "unsupported"
)

// Requirement is the calculator's answer for one (program, route, date).
type Requirement struct {
	Program Program
	Status  RequirementStatus
	Amounts SeasonAmounts
	Zone    int    // domestic zone, 0 when international or not applicable
	Region  Region // international region, empty when domestic
}

type Tier string

const (
	TierHigh          Tier = "high"
	TierStandard      Tier = "standard"
	TierLow           Tier = "low"
	TierVeryLow       Tier = "very_low"
	TierNotApplicable Tier = "not_applicable"
)

type Recommendation string

const (
	RecommendRedeem   Recommendation = "redeem"
	RecommendCash     Recommendation = "cash"
	RecommendCashOnly Recommendation = "cash_only"
)

// OfferView is one program-attributed, valued offer.
type OfferView struct {
	DisplayName       string            `json:"displayName"`
	Carrier           Carrier           `json:"carrier"`
	FlightNumber      string            `json:"flightNumber,omitempty"`
	Departure         string            `json:"departure"`
	Arrival           string            `json:"arrival,omitempty"`
	Program           Program           `json:"program"`
	ProgramLabel      string            `json:"programLabel"`
	RequiredAmount    SeasonAmounts     `json:"requiredAmount"`
	RequirementStatus RequirementStatus `json:"requirementStatus"`
	Price             int               `json:"price"`
	Fees              int               `json:"fees"`
	ValuePerUnit      *float64          `json:"valuePerUnit"`
	EfficiencyTier    Tier              `json:"efficiencyTier"`
	Recommendation    Recommendation    `json:"recommendation"`
	RatioToBaseline   string            `json:"ratioToBaseline"`
	Provenance        Provenance        `json:"provenance"`
}

type Route struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	DistanceKm  int    `json:"distanceKm"`
}

// SearchResult is the outbound payload.
type SearchResult struct {
	Route      Route       `json:"route"`
	Date       string      `json:"date"`
	Season     Season      `json:"season"`
	Passengers int         `json:"passengers"`
	Estimated  bool        `json:"estimated"`
	Offers     []OfferView `json:"offers"`
}
