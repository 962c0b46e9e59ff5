package webui

import (
	"embed"
	"html/template"
	"log/slog"
	"time"
)

//go:embed board.html debug_index.html
var templateFS embed.FS

// WebUI serves the departure board pages.
type WebUI struct {
	Board         *Board
	Logger        *slog.Logger
	Location      *time.Location
	TimezoneLabel string
	Refresh       time.Duration

	templates *template.Template
	now       func() time.Time
}

// New creates the web UI for board. Templates are parsed once here.
func New(board *Board, logger *slog.Logger, location *time.Location, timezoneLabel string, refresh time.Duration) (*WebUI, error) {
	tmpl, err := template.ParseFS(templateFS, "board.html", "debug_index.html")
	if err != nil {
		return nil, err
	}
	if location == nil {
		location = time.Local
	}
	return &WebUI{
		Board:         board,
		Logger:        logger,
		Location:      location,
		TimezoneLabel: timezoneLabel,
		Refresh:       refresh,
		templates:     tmpl,
		now:           time.Now,
	}, nil
}
