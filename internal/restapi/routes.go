package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// Router returns the route table without middleware.
func (api *RestAPI) Router() *httprouter.Router {
	router := httprouter.New()
	api.SetRoutes(router)
	return router
}

func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/departures", api.departuresHandler)
	router.HandlerFunc(http.MethodGet, "/api/departures", api.departuresHandler)
	router.HandlerFunc(http.MethodGet, "/routes", api.routesHandler)
	router.HandlerFunc(http.MethodGet, "/healthz", api.healthHandler)
	router.Handler(http.MethodGet, "/metrics", api.Metrics.Handler())

	router.NotFound = http.HandlerFunc(api.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(api.methodNotAllowedResponse)
}
