package common

import (
	"mime"
	"net/http"

	"github.com/gorilla/mux"
)

// PostAndJSONMatcher lets every non-POST request pass; POST requests must
// carry a json body, `application/json` with optional parameters like
// charset.
func PostAndJSONMatcher(r *http.Request, rm *mux.RouteMatch) bool {
	if r.Method != "POST" {
		return true
	}

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}

	return mediaType == "application/json"
}
