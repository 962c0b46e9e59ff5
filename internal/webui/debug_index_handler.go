package webui

import (
	"net/http"

	"github.com/davecgh/go-spew/spew"
)

type debugData struct {
	Title string
	Pre   string
}

func (webUI *WebUI) writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	content := spew.Sdump(data)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	err := webUI.templates.ExecuteTemplate(w, "debug_index.html", debugData{
		Title: title,
		Pre:   content,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string

	switch dataType {
	case "routes":
		data = webUI.Board.Routes()
		title = "Board - Routes"
	case "", "snapshots":
		data = webUI.Board.Snapshots()
		title = "Board - Last Fetch per Route"
	default:
		data = map[string]string{
			"error": "Please use one of the following: routes, snapshots.",
		}
		title = "Choose a data type"
	}

	webUI.writeDebugData(w, title, data)
}
