package models

type CoordinatePoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}
