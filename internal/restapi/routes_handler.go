package restapi

import (
	"net/http"

	"departures.lillekyla.ee/internal/stations"
)

type routesBody struct {
	Routes []stations.Route `json:"routes"`
}

// routesHandler lists the configured station pairs.
func (api *RestAPI) routesHandler(w http.ResponseWriter, r *http.Request) {
	routes := api.Catalog.Routes
	if routes == nil {
		routes = []stations.Route{}
	}
	api.sendJSON(w, r, http.StatusOK, routesBody{Routes: routes})
}

type healthBody struct {
	Status string `json:"status"`
	// Resolved lists placeholders already looked up, token -> Onestop ID.
	Resolved map[string]string `json:"resolved,omitempty"`
}

// healthHandler never calls upstream.
func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	body := healthBody{Status: "ok"}
	for _, p := range api.Catalog.Placeholders {
		if id, ok := api.Resolver.Cached(p.Token); ok {
			if body.Resolved == nil {
				body.Resolved = make(map[string]string)
			}
			body.Resolved[p.Token] = id
		}
	}
	api.sendJSON(w, r, http.StatusOK, body)
}
