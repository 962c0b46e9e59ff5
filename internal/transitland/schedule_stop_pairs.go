package transitland

import (
	"context"
	"net/url"
	"strconv"
)

const EndpointScheduleStopPairs = "schedule_stop_pairs"

// ScheduleStopPair is one scheduled leg between two stops.
type ScheduleStopPair struct {
	OriginOnestopID        string `json:"origin_onestop_id"`
	DestinationOnestopID   string `json:"destination_onestop_id"`
	OriginDepartureTime    string `json:"origin_departure_time"`
	DestinationArrivalTime string `json:"destination_arrival_time"`
	RouteName              string `json:"route_name"`
	RouteOnestopID         string `json:"route_onestop_id"`
	TripHeadsign           string `json:"trip_headsign"`
}

type scheduleStopPairsResponse struct {
	ScheduleStopPairs []ScheduleStopPair `json:"schedule_stop_pairs"`
}

// ScheduleStopPairsRequest selects the pairs between two stops on one service day.
type ScheduleStopPairsRequest struct {
	OriginOnestopID      string
	DestinationOnestopID string
	Date                 string // YYYY-MM-DD
	DepartureFrom        string // HH:MM:SS
	DepartureTo          string // HH:MM:SS
	// Active restricts results to trips whose service calendar runs on Date.
	Active  bool
	PerPage int
	APIKey  string
}

func (r ScheduleStopPairsRequest) params() url.Values {
	params := url.Values{}
	params.Set("api_key", r.APIKey)
	params.Set("origin_onestop_id", r.OriginOnestopID)
	params.Set("destination_onestop_id", r.DestinationOnestopID)
	params.Set("date", r.Date)
	params.Set("active", strconv.FormatBool(r.Active))
	params.Set("origin_departure_between", r.DepartureFrom+","+r.DepartureTo)
	if r.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(r.PerPage))
	}
	return params
}

// ScheduleStopPairs queries /schedule_stop_pairs. A malformed or empty body yields no pairs.
func (c *Client) ScheduleStopPairs(ctx context.Context, req ScheduleStopPairsRequest) ([]ScheduleStopPair, error) {
	body, err := getJSON[scheduleStopPairsResponse](ctx, c, EndpointScheduleStopPairs, c.config.V1BaseURL, "/schedule_stop_pairs", req.params())
	if err != nil {
		return nil, err
	}
	return body.ScheduleStopPairs, nil
}
