package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"farecalc.onebusaway.org/internal/app"
	"farecalc.onebusaway.org/internal/fares"
	"farecalc.onebusaway.org/internal/gtfs"
	"farecalc.onebusaway.org/internal/gtfs/gtfstest"
	"farecalc.onebusaway.org/internal/logging"
	"farecalc.onebusaway.org/internal/models"
)

// createTestApi creates a RestAPI over the Bay Area test feed and the
// built-in operator table.
func createTestApi(t *testing.T) *RestAPI {
	return createTestApiWithLogger(t, logging.NewStructuredLogger(io.Discard, slog.LevelInfo))
}

func createTestApiWithLogger(t *testing.T, logger *slog.Logger) *RestAPI {
	t.Helper()

	gtfsConfig := gtfs.Config{GtfsURL: gtfstest.WriteBayAreaFeed(t)}
	directory, err := gtfs.LoadDirectory(context.Background(), gtfsConfig, logger)
	require.NoError(t, err)

	application := &app.Application{
		Config: app.Config{
			Env:       "test",
			ApiKeys:   []string{"TEST"},
			RateLimit: 100,
		},
		GtfsConfig: gtfsConfig,
		Logger:     logger,
		Directory:  directory,
		Calculator: fares.NewCalculator(fares.DefaultOperatorTable(), fares.Options{}),
	}

	api := NewRestAPI(application)
	t.Cleanup(api.Shutdown)
	return api
}

// serveAndRetrieveEndpoint sets up a test server, makes a request to the specified endpoint, and returns the response
// and decoded model.
func serveAndRetrieveEndpoint(t *testing.T, endpoint string) (*RestAPI, *http.Response, models.ResponseModel) {
	api := createTestApi(t)
	resp, model := serveApiAndRetrieveEndpoint(t, api, endpoint)
	return api, resp, model
}

func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	server := httptest.NewServer(api.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "test")),
		"http_response_body")

	var response models.ResponseModel
	err = json.NewDecoder(resp.Body).Decode(&response)
	require.NoError(t, err)

	return resp, response
}

// postApiAndRetrieveEndpoint posts body as JSON and returns the raw response
// body alongside the response.
func postApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string, body string) (*http.Response, []byte) {
	server := httptest.NewServer(api.Handler())
	defer server.Close()

	resp, err := http.Post(server.URL+endpoint, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "test")),
		"http_response_body")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, raw
}

type fieldErrorsResponse struct {
	FieldErrors map[string][]string `json:"fieldErrors"`
}

func decodeFieldErrors(t *testing.T, raw []byte) map[string][]string {
	t.Helper()
	var response fieldErrorsResponse
	require.NoError(t, json.Unmarshal(raw, &response))
	return response.FieldErrors
}

// entryAndReferences splits a decoded entry response into its parts.
func entryAndReferences(t *testing.T, model models.ResponseModel) (map[string]interface{}, map[string]interface{}) {
	t.Helper()
	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "data should be an object")
	entry, ok := data["entry"].(map[string]interface{})
	require.True(t, ok, "entry should be an object")
	references, ok := data["references"].(map[string]interface{})
	require.True(t, ok, "references should be an object")
	return entry, references
}

func listAndReferences(t *testing.T, model models.ResponseModel) ([]interface{}, map[string]interface{}) {
	t.Helper()
	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "data should be an object")
	list, ok := data["list"].([]interface{})
	require.True(t, ok, "list should be an array")
	references, ok := data["references"].(map[string]interface{})
	require.True(t, ok, "references should be an object")
	return list, references
}
