package models

type RouteReference struct {
	ID        string `json:"id"`
	AgencyID  string `json:"agencyId"`
	ShortName string `json:"shortName"`
	LongName  string `json:"longName"`
}

func NewRouteReference(id, agencyID, shortName, longName string) RouteReference {
	return RouteReference{
		ID:        id,
		AgencyID:  agencyID,
		ShortName: shortName,
		LongName:  longName,
	}
}
