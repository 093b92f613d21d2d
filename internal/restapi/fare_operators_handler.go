package restapi

import (
	"net/http"

	"farecalc.onebusaway.org/internal/fares"
	"farecalc.onebusaway.org/internal/models"
	"farecalc.onebusaway.org/internal/utils"
)

func newFareOperatorModel(op fares.Operator) models.FareOperatorModel {
	transferFrom := make([]string, 0, len(op.TransferFrom))
	for _, rideType := range op.TransferFrom {
		transferFrom = append(transferFrom, rideType.String())
	}

	return models.FareOperatorModel{
		AgencyID:         op.AgencyID,
		Name:             op.Name,
		RideType:         op.Type.String(),
		Low:              op.Low,
		Peak:             op.Peak,
		Senior:           op.Senior,
		TransferFrom:     transferFrom,
		TransferDiscount: op.TransferDiscount,
	}
}

func (api *RestAPI) fareOperatorsHandler(w http.ResponseWriter, r *http.Request) {
	table := api.FareTable()
	references := api.newReferenceCollector()

	operators := make([]models.FareOperatorModel, 0, len(table.Operators))
	for _, op := range table.Operators {
		operators = append(operators, newFareOperatorModel(op))
		references.addAgency(op.AgencyID)
	}

	api.sendResponse(w, r, models.NewListResponse(operators, references.references))
}

func (api *RestAPI) fareOperatorHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r)

	if err := utils.ValidateID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return
	}

	op := api.FareTable().FindOperator(id)
	if op == nil {
		api.sendNotFound(w, r)
		return
	}

	references := api.newReferenceCollector()
	references.addAgency(op.AgencyID)

	api.sendResponse(w, r, models.NewEntryResponse(newFareOperatorModel(*op), references.references))
}
