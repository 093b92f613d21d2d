package restapi

import (
	"net/http"

	"farecalc.onebusaway.org/internal/fares"
	"farecalc.onebusaway.org/internal/models"
	"farecalc.onebusaway.org/internal/utils"
)

func (api *RestAPI) fareZonesForLocationHandler(w http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()

	lat, fieldErrors := utils.RequireFloatParam(queryParams, "lat", nil)
	lon, _ := utils.RequireFloatParam(queryParams, "lon", fieldErrors)

	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	if locationErrors := utils.ValidateLocation(lat, lon); len(locationErrors) > 0 {
		api.validationErrorResponse(w, r, locationErrors)
		return
	}

	point := models.CoordinatePoint{Lat: lat, Lon: lon}
	zones := fares.ZonesContaining(api.FareTable().Zones, point)

	results := make([]models.FareZoneModel, 0, len(zones))
	for _, zone := range zones {
		results = append(results, models.FareZoneModel{
			ID:     zone.ID,
			Name:   zone.Name,
			MinLon: zone.Box.MinLon,
			MinLat: zone.Box.MinLat,
			MaxLon: zone.Box.MaxLon,
			MaxLat: zone.Box.MaxLat,
		})
	}

	api.sendResponse(w, r, models.NewListResponse(results, models.NewEmptyReferences()))
}
