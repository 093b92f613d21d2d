package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

// rateLimited applies the per-key limiter after the key has been validated.
func (api *RestAPI) rateLimited(finalHandler handlerFunc) http.Handler {
	limited := http.Handler(http.HandlerFunc(finalHandler))
	if api.rateLimiter != nil {
		limited = api.rateLimiter(limited)
	}
	return validateAPIKey(api, limited.ServeHTTP)
}

func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.Handler(http.MethodPost, "/api/where/fares-for-itinerary.json", api.rateLimited(api.faresForItineraryHandler))
	router.Handler(http.MethodGet, "/api/where/fare-operators.json", api.rateLimited(api.fareOperatorsHandler))
	router.Handler(http.MethodGet, "/api/where/fare-operator/:id", api.rateLimited(api.fareOperatorHandler))
	router.Handler(http.MethodGet, "/api/where/fare-zones-for-location.json", api.rateLimited(api.fareZonesForLocationHandler))

	router.NotFound = http.HandlerFunc(api.sendNotFound)
	router.MethodNotAllowed = http.HandlerFunc(api.methodNotAllowedResponse)
}

// Handler returns the full middleware chain around the API routes. Each
// extra function may register further routes on the same router.
func (api *RestAPI) Handler(extra ...func(*httprouter.Router)) http.Handler {
	router := httprouter.New()
	router.HandleOPTIONS = false
	api.SetRoutes(router)
	for _, setRoutes := range extra {
		setRoutes(router)
	}

	var handler http.Handler = router
	handler = CompressionMiddleware(handler)
	handler = api.WithSecurityHeaders(handler)
	handler = NewRequestLoggingMiddleware(api.Logger)(handler)
	return handler
}
