package restapi

import (
	"errors"
	"net/http"

	"departures.lillekyla.ee/internal/departures"
	"departures.lillekyla.ee/internal/stations"
)

// departuresHandler serves GET /departures?from=<id>&to=<id>.
func (api *RestAPI) departuresHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	from := query.Get("from")
	to := query.Get("to")

	result, err := api.Departures.Departures(r.Context(), from, to)
	if err != nil {
		api.departuresErrorResponse(w, r, err)
		return
	}

	api.Metrics.ObserveQuery("ok", len(result.Trips))
	w.Header().Set("Cache-Control", "no-store")
	api.sendJSON(w, r, http.StatusOK, result)
}

func (api *RestAPI) departuresErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var invalid *departures.InvalidStationError
	var resolution *stations.ResolutionError

	switch {
	case errors.Is(err, departures.ErrMissingParams):
		api.Metrics.ObserveQuery("bad_request", 0)
		api.badRequestResponse(w, r, "Missing from/to")
	case errors.As(err, &invalid):
		api.Metrics.ObserveQuery("bad_request", 0)
		api.badRequestResponse(w, r, "Invalid station id: "+invalid.Err.Error())
	case errors.Is(err, departures.ErrMissingAPIKey):
		api.Metrics.ObserveQuery("config_error", 0)
		api.configErrorResponse(w, r, err)
	case errors.As(err, &resolution):
		api.Metrics.ObserveQuery("resolution_error", 0)
		api.serverErrorResponse(w, r, err)
	default:
		api.Metrics.ObserveQuery("upstream_error", 0)
		api.upstreamErrorResponse(w, r, err)
	}
}
