package models

// ReferencesModel References model for related data
type ReferencesModel struct {
	Agencies []AgencyReference `json:"agencies"`
	Routes   []RouteReference  `json:"routes"`
	Stops    []StopReference   `json:"stops"`
}

// NewEmptyReferences creates a new empty References model with initialized empty slices
func NewEmptyReferences() ReferencesModel {
	return ReferencesModel{
		Agencies: []AgencyReference{},
		Routes:   []RouteReference{},
		Stops:    []StopReference{},
	}
}
