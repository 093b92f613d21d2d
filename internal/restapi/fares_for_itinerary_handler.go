package restapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/twpayne/go-polyline"

	"farecalc.onebusaway.org/internal/fares"
	"farecalc.onebusaway.org/internal/gtfs"
	"farecalc.onebusaway.org/internal/logging"
	"farecalc.onebusaway.org/internal/models"
	"farecalc.onebusaway.org/internal/utils"
)

const maxItineraryBodyBytes = 1 << 20

type itineraryRequest struct {
	Rides []rideRequest `json:"rides"`
}

type rideRequest struct {
	Legs []legRequest `json:"legs"`
}

type legRequest struct {
	RouteID    string `json:"routeId"`
	FromStopID string `json:"fromStopId"`
	ToStopID   string `json:"toStopId"`
}

func (api *RestAPI) faresForItineraryHandler(w http.ResponseWriter, r *http.Request) {
	var request itineraryRequest

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxItineraryBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"body": {fmt.Sprintf("Invalid request body: %s", err.Error())},
		})
		return
	}

	rides, fieldErrors := api.resolveRides(request)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	logger := logging.FromContext(r.Context())

	itinerary, err := api.Calculator.Compute(rides)
	if errors.Is(err, fares.ErrInvalidInput) {
		api.validationErrorResponse(w, r, map[string][]string{"rides": {err.Error()}})
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	for _, d := range itinerary.Diagnostics {
		logging.LogWarning(logger, "fare_diagnostic",
			slog.String("kind", d.Kind),
			slog.Int("ride_index", d.RideIndex),
			slog.String("route_id", d.RouteID),
			slog.String("agency_id", d.AgencyID))
	}

	references := api.newReferenceCollector()
	references.addRides(rides)

	response := models.NewEntryResponse(newFareItineraryModel(itinerary), references.references)
	api.sendResponse(w, r, response)
}

// resolveRides validates the request and turns every leg into a ride leg
// known to the GTFS directory. Errors are keyed by the JSON path of the
// offending field. No rides is an empty itinerary, not an error.
func (api *RestAPI) resolveRides(request itineraryRequest) ([]fares.Ride, map[string][]string) {
	fieldErrors := make(map[string][]string)

	rides := make([]fares.Ride, 0, len(request.Rides))
	for i, rideReq := range request.Rides {
		if len(rideReq.Legs) == 0 {
			key := fmt.Sprintf("rides[%d].legs", i)
			fieldErrors[key] = append(fieldErrors[key], fmt.Sprintf("Missing required field %q.", key))
			continue
		}

		ride := fares.Ride{Legs: make([]fares.RideLeg, 0, len(rideReq.Legs))}
		for j, legReq := range rideReq.Legs {
			prefix := fmt.Sprintf("rides[%d].legs[%d]", i, j)
			legReq = sanitizeLeg(legReq)
			if !validateLegIDs(prefix, legReq, fieldErrors) {
				continue
			}

			if !api.legIDsExist(prefix, legReq, fieldErrors) {
				continue
			}

			leg, err := api.Directory.ResolveLeg(legReq.RouteID, legReq.FromStopID, legReq.ToStopID)
			if err != nil {
				fieldErrors[prefix] = append(fieldErrors[prefix], err.Error())
				continue
			}
			ride.Legs = append(ride.Legs, leg)
		}
		rides = append(rides, ride)
	}

	return rides, fieldErrors
}

// legIDsExist reports each id of leg that the directory does not know under
// its own request field.
func (api *RestAPI) legIDsExist(prefix string, leg legRequest, fieldErrors map[string][]string) bool {
	found := true

	if _, ok := api.Directory.Route(leg.RouteID); !ok {
		key := prefix + ".routeId"
		fieldErrors[key] = append(fieldErrors[key], fmt.Sprintf("%s: %s", gtfs.ErrRouteNotFound, leg.RouteID))
		found = false
	}

	for field, stopID := range map[string]string{
		"fromStopId": leg.FromStopID,
		"toStopId":   leg.ToStopID,
	} {
		if _, ok := api.Directory.Stop(stopID); !ok {
			key := prefix + "." + field
			fieldErrors[key] = append(fieldErrors[key], fmt.Sprintf("%s: %s", gtfs.ErrStopNotFound, stopID))
			found = false
		}
	}

	return found
}

func sanitizeLeg(leg legRequest) legRequest {
	return legRequest{
		RouteID:    utils.SanitizeInput(leg.RouteID),
		FromStopID: utils.SanitizeInput(leg.FromStopID),
		ToStopID:   utils.SanitizeInput(leg.ToStopID),
	}
}

func validateLegIDs(prefix string, leg legRequest, fieldErrors map[string][]string) bool {
	valid := true
	for field, id := range map[string]string{
		"routeId":    leg.RouteID,
		"fromStopId": leg.FromStopID,
		"toStopId":   leg.ToStopID,
	} {
		if err := utils.ValidateID(id); err != nil {
			key := prefix + "." + field
			fieldErrors[key] = append(fieldErrors[key], err.Error())
			valid = false
		}
	}
	return valid
}

func newFareModel(fare fares.Fare) models.FareModel {
	return models.FareModel{
		RideType:          fare.Type.String(),
		Low:               fare.Low,
		Peak:              fare.Peak,
		Senior:            fare.Senior,
		TransferReduction: fare.TransferReduction,
	}
}

func newFareItineraryModel(itinerary *fares.Itinerary) models.FareItineraryModel {
	model := models.FareItineraryModel{
		Segments:    make([]models.FareSegmentModel, 0, len(itinerary.Segments)),
		Total:       newFareModel(itinerary.Total()),
		Diagnostics: make([]models.DiagnosticModel, 0, len(itinerary.Diagnostics)),
	}
	// The total spans several ride types.
	model.Total.RideType = ""

	for _, segment := range itinerary.Segments {
		model.Segments = append(model.Segments, models.FareSegmentModel{
			FromStopID: segment.From.ID,
			ToStopID:   segment.To.ID,
			AgencyID:   segment.AgencyID,
			RideCount:  segment.RideCount,
			Polyline:   encodePath(segment.Path),
			Fare:       newFareModel(segment.Fare),
		})
	}

	for _, d := range itinerary.Diagnostics {
		model.Diagnostics = append(model.Diagnostics, models.DiagnosticModel{
			Kind:      d.Kind,
			RideIndex: d.RideIndex,
			RouteID:   d.RouteID,
			AgencyID:  d.AgencyID,
		})
	}

	return model
}

func encodePath(path []fares.Stop) string {
	coords := make([][]float64, 0, len(path))
	for _, stop := range path {
		coords = append(coords, []float64{stop.Lat, stop.Lon})
	}
	return string(polyline.EncodeCoords(coords))
}
