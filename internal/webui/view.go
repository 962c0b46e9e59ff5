package webui

import (
	"time"

	"departures.lillekyla.ee/internal/departures"
	"departures.lillekyla.ee/internal/utils"
)

const (
	boardTitle     = "Lilleküla ↔ Klooga/Kloogaranna"
	loadingText    = "Laen väljumisi…"
	errorPrefix    = "Viga:"
	errorHint      = "Kontrolli .env API võtit ja kas peatus “Lilleküla” tuvastus õnnestus."
	emptyText      = "Täna rohkem väljumisi pole."
	unknownError   = "Tundmatu viga"
	loadingRefresh = 2
)

type routeOption struct {
	Index  int
	Label  string
	Active bool
}

type departureView struct {
	Departs  string
	Arrives  string
	Route    string
	Headsign string
}

type pageData struct {
	Title          string
	Routes         []routeOption
	Loading        bool
	LoadingText    string
	Error          string
	ErrorPrefix    string
	ErrorHint      string
	Empty          bool
	EmptyText      string
	Departures     []departureView
	RefreshedAt    string
	TimezoneLabel  string
	RefreshSeconds int
}

func newDepartureView(t departures.Trip) departureView {
	route := t.RouteName
	if route == "" {
		route = t.RouteOnestopID
	}
	return departureView{
		Departs:  utils.TruncateToMinutes(t.OriginDepartureTime),
		Arrives:  utils.TruncateToMinutes(t.DestinationArrivalTime),
		Route:    route,
		Headsign: t.Headsign,
	}
}

// buildPageData turns a snapshot into the template model. now is already in
// the board's timezone.
func buildPageData(b *Board, snap Snapshot, now time.Time, timezoneLabel string, refresh time.Duration) pageData {
	data := pageData{
		Title:          boardTitle,
		LoadingText:    loadingText,
		ErrorPrefix:    errorPrefix,
		ErrorHint:      errorHint,
		EmptyText:      emptyText,
		RefreshedAt:    now.Format("15:04"),
		TimezoneLabel:  timezoneLabel,
		RefreshSeconds: int(refresh.Seconds()),
	}

	for i, r := range b.Routes() {
		data.Routes = append(data.Routes, routeOption{Index: i, Label: r.Label, Active: i == snap.Route})
	}

	switch {
	case snap.Loading:
		data.Loading = true
		data.RefreshSeconds = loadingRefresh
	case snap.Err != "":
		data.Error = snap.Err
	default:
		data.Empty = len(snap.Trips) == 0
		for _, t := range snap.Trips {
			data.Departures = append(data.Departures, newDepartureView(t))
		}
	}
	if data.RefreshSeconds < 1 {
		data.RefreshSeconds = 1
	}
	return data
}
