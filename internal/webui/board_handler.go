package webui

import (
	"bytes"
	"net/http"

	"departures.lillekyla.ee/internal/logging"
	"departures.lillekyla.ee/internal/utils"
)

// indexHandler renders the first route.
func (webUI *WebUI) indexHandler(w http.ResponseWriter, r *http.Request) {
	webUI.renderBoard(w, r, 0)
}

// routeHandler renders the route at :index. The route is chosen by the URL
// alone, so viewers on different routes do not affect each other.
func (webUI *WebUI) routeHandler(w http.ResponseWriter, r *http.Request) {
	index, ok := utils.ExtractIntParam(r, "index")
	if !ok {
		http.NotFound(w, r)
		return
	}
	webUI.renderBoard(w, r, index)
}

func (webUI *WebUI) renderBoard(w http.ResponseWriter, r *http.Request, index int) {
	snap, ok := webUI.Board.View(index)
	if !ok {
		http.NotFound(w, r)
		return
	}
	data := buildPageData(webUI.Board, snap, webUI.now().In(webUI.Location), webUI.TimezoneLabel, webUI.Refresh)

	var buf bytes.Buffer
	if err := webUI.templates.ExecuteTemplate(&buf, "board.html", data); err != nil {
		logging.LogError(webUI.Logger, "failed to render board", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}
