package webui

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// Handler returns the board router.
func (webUI *WebUI) Handler() http.Handler {
	router := httprouter.New()
	webUI.SetWebUIRoutes(router)
	return router
}

func (webUI *WebUI) SetWebUIRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/", webUI.indexHandler)
	router.HandlerFunc(http.MethodGet, "/route/:index", webUI.routeHandler)
	router.HandlerFunc(http.MethodGet, "/debug/", webUI.debugIndexHandler)
}
