package restapi

import (
	"farecalc.onebusaway.org/internal/fares"
	"farecalc.onebusaway.org/internal/models"
)

// referenceCollector gathers the agencies, routes and stops touched by a
// response, each once, in first-seen order.
type referenceCollector struct {
	api        *RestAPI
	references models.ReferencesModel
	agencyIDs  map[string]bool
	routeIDs   map[string]bool
	stopIDs    map[string]bool
}

func (api *RestAPI) newReferenceCollector() *referenceCollector {
	return &referenceCollector{
		api:        api,
		references: models.NewEmptyReferences(),
		agencyIDs:  map[string]bool{},
		routeIDs:   map[string]bool{},
		stopIDs:    map[string]bool{},
	}
}

func (c *referenceCollector) addAgency(id string) {
	if id == "" || c.agencyIDs[id] {
		return
	}
	c.agencyIDs[id] = true

	agency := c.api.Directory.FindAgency(id)
	if agency == nil {
		return
	}
	c.references.Agencies = append(c.references.Agencies,
		models.NewAgencyReference(agency.Id, agency.Name, agency.Url, agency.FareUrl))
}

func (c *referenceCollector) addRoute(route fares.Route) {
	if route.ID == "" || c.routeIDs[route.ID] {
		return
	}
	c.routeIDs[route.ID] = true
	c.references.Routes = append(c.references.Routes,
		models.NewRouteReference(route.ID, route.AgencyID, route.ShortName, route.LongName))
	c.addAgency(route.AgencyID)
}

func (c *referenceCollector) addStop(stop fares.Stop) {
	if stop.ID == "" || c.stopIDs[stop.ID] {
		return
	}
	c.stopIDs[stop.ID] = true
	c.references.Stops = append(c.references.Stops,
		models.NewStopReference(stop.ID, stop.Name, stop.Lat, stop.Lon))
}

func (c *referenceCollector) addRides(rides []fares.Ride) {
	for _, ride := range rides {
		for _, leg := range ride.Legs {
			c.addRoute(leg.Route)
			c.addStop(leg.From)
			c.addStop(leg.To)
		}
	}
}
