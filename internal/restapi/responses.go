package restapi

import (
	"encoding/json"
	"net/http"
)

// sendJSON writes v with the given status.
func (api *RestAPI) sendJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	setJSONResponseType(w)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		api.Logger.Error("failed to encode response", "error", err, "path", r.URL.Path)
	}
}

// sendText writes a plain-text body with the given status.
func (api *RestAPI) sendText(w http.ResponseWriter, r *http.Request, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		api.Logger.Error("failed to write response", "error", err, "path", r.URL.Path)
	}
}

func setJSONResponseType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
}
