package fares

import (
	"errors"
	"fmt"

	"farecalc.onebusaway.org/internal/models"
)

// ErrInvalidInput is returned when a ride cannot be priced because it is malformed.
var ErrInvalidInput = errors.New("invalid input")

type Stop struct {
	ID   string
	Name string
	Lat  float64
	Lon  float64
}

func (s Stop) Point() models.CoordinatePoint {
	return models.CoordinatePoint{Lat: s.Lat, Lon: s.Lon}
}

// Route describes the route and operator a leg travels on.
type Route struct {
	ID        string
	AgencyID  string
	AgencyURL string
	ShortName string
	LongName  string
}

// RideLeg is a single origin to destination traversal on one route pattern.
type RideLeg struct {
	From  Stop
	To    Stop
	Route Route
}

// Ride groups one or more legs that a rider perceives as a single trip.
type Ride struct {
	Legs []RideLeg
}

// exemplar returns the leg used to classify the whole ride. Only the first
// leg is considered; rides mixing operators are priced by their first one.
func (r Ride) exemplar() (RideLeg, error) {
	if len(r.Legs) == 0 {
		return RideLeg{}, fmt.Errorf("ride has no legs: %w", ErrInvalidInput)
	}
	return r.Legs[0], nil
}

// destination is the arrival stop of the ride's last leg.
func (r Ride) destination() Stop {
	return r.Legs[len(r.Legs)-1].To
}

// arrivals lists the arrival stop of every leg in travel order.
func (r Ride) arrivals() []Stop {
	stops := make([]Stop, 0, len(r.Legs))
	for _, leg := range r.Legs {
		stops = append(stops, leg.To)
	}
	return stops
}
