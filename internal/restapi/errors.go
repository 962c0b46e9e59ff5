package restapi

import (
	"errors"
	"log/slog"
	"net/http"

	"departures.lillekyla.ee/internal/logging"
	"departures.lillekyla.ee/internal/transitland"
)

// upstreamFallbackText is sent on 502 when Transitland returned no body.
const upstreamFallbackText = "Transitland viga"

type errorBody struct {
	Error string `json:"error"`
}

// badRequestResponse sends a 400 with a plain-text message.
func (api *RestAPI) badRequestResponse(w http.ResponseWriter, r *http.Request, message string) {
	api.sendText(w, r, http.StatusBadRequest, message)
}

// configErrorResponse sends a 500 for a server misconfiguration. No upstream call has been made.
func (api *RestAPI) configErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(logging.FromContext(r.Context()), "configuration error", err,
		slog.String("component", "departures_api"))
	api.sendJSON(w, r, http.StatusInternalServerError, errorBody{Error: err.Error()})
}

// serverErrorResponse sends a 500 for any other failure.
func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(logging.FromContext(r.Context()), "request failed", err,
		slog.String("component", "departures_api"),
		slog.String("path", r.URL.Path))
	api.sendJSON(w, r, http.StatusInternalServerError, errorBody{Error: err.Error()})
}

// upstreamErrorResponse sends a 502 whose body is Transitland's own response
// text, or a fallback when there is none.
func (api *RestAPI) upstreamErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(logging.FromContext(r.Context()), "upstream schedule query failed", err,
		slog.String("component", "departures_api"))

	body := ""
	var upstreamErr *transitland.UpstreamError
	if errors.As(err, &upstreamErr) {
		body = upstreamErr.Body
	}
	if body == "" {
		body = upstreamFallbackText
	}
	api.sendText(w, r, http.StatusBadGateway, body)
}

func (api *RestAPI) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	api.sendJSON(w, r, http.StatusNotFound, errorBody{Error: "resource not found"})
}

func (api *RestAPI) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	api.sendJSON(w, r, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
}
