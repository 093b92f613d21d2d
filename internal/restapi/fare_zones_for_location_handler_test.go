package restapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFareZonesForLocationHandler(t *testing.T) {
	api := createTestApi(t)

	t.Run("point in San Francisco", func(t *testing.T) {
		resp, model := serveApiAndRetrieveEndpoint(t, api,
			"/api/where/fare-zones-for-location.json?key=TEST&lat=37.7844&lon=-122.4079")
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		list, _ := listAndReferences(t, model)
		require.Len(t, list, 1)
		zone := list[0].(map[string]interface{})
		assert.Equal(t, "SF", zone["id"])
		assert.Equal(t, "San Francisco", zone["name"])
		assert.Equal(t, -122.52, zone["minLon"])
	})

	t.Run("point outside every zone", func(t *testing.T) {
		resp, model := serveApiAndRetrieveEndpoint(t, api,
			"/api/where/fare-zones-for-location.json?key=TEST&lat=47.6062&lon=-122.3321")
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		list, _ := listAndReferences(t, model)
		assert.Empty(t, list)
	})
}

func TestFareZonesForLocationValidation(t *testing.T) {
	api := createTestApi(t)
	handler := api.Handler()

	tests := []struct {
		name     string
		query    string
		fieldKey string
	}{
		{"missing lat", "lon=-122.4", "lat"},
		{"missing lon", "lat=37.7", "lon"},
		{"unparsable lat", "lat=north&lon=-122.4", "lat"},
		{"latitude out of range", "lat=95&lon=-122.4", "lat"},
		{"longitude out of range", "lat=37.7&lon=200", "lon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/where/fare-zones-for-location.json?key=TEST&"+tt.query, nil)
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, req)

			assert.Equal(t, http.StatusBadRequest, recorder.Code)

			var response fieldErrorsResponse
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
			assert.Contains(t, response.FieldErrors, tt.fieldKey)
		})
	}
}
