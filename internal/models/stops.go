package models

type StopReference struct {
	ID   string  `json:"id"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Name string  `json:"name"`
}

func NewStopReference(id, name string, lat, lon float64) StopReference {
	return StopReference{
		ID:   id,
		Name: name,
		Lat:  lat,
		Lon:  lon,
	}
}
