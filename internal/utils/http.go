package utils

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
)

// ExtractIDFromParams retrieves the "id" route parameter and removes a
// trailing ".json" extension.
func ExtractIDFromParams(r *http.Request) string {
	params := httprouter.ParamsFromContext(r.Context())
	rawID := params.ByName("id")
	return strings.TrimSuffix(rawID, ".json")
}
