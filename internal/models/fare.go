package models

// FareModel is the tiered price charged for one fare segment.
type FareModel struct {
	RideType          string  `json:"rideType"`
	Low               float64 `json:"low"`
	Peak              float64 `json:"peak"`
	Senior            float64 `json:"senior"`
	TransferReduction bool    `json:"transferReduction"`
}

type FareSegmentModel struct {
	FromStopID string    `json:"fromStopId"`
	ToStopID   string    `json:"toStopId"`
	AgencyID   string    `json:"agencyId"`
	RideCount  int       `json:"rideCount"`
	Polyline   string    `json:"polyline"`
	Fare       FareModel `json:"fare"`
}

type DiagnosticModel struct {
	Kind      string `json:"kind"`
	RideIndex int    `json:"rideIndex"`
	RouteID   string `json:"routeId"`
	AgencyID  string `json:"agencyId"`
}

// FareItineraryModel is the entry returned for a priced itinerary.
type FareItineraryModel struct {
	Segments    []FareSegmentModel `json:"segments"`
	Total       FareModel          `json:"total"`
	Diagnostics []DiagnosticModel  `json:"diagnostics"`
}

type FareOperatorModel struct {
	AgencyID         string   `json:"agencyId"`
	Name             string   `json:"name"`
	RideType         string   `json:"rideType"`
	Low              float64  `json:"low"`
	Peak             float64  `json:"peak"`
	Senior           float64  `json:"senior"`
	TransferFrom     []string `json:"transferFrom"`
	TransferDiscount float64  `json:"transferDiscount"`
}

type FareZoneModel struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	MinLon float64 `json:"minLon"`
	MinLat float64 `json:"minLat"`
	MaxLon float64 `json:"maxLon"`
	MaxLat float64 `json:"maxLat"`
}
