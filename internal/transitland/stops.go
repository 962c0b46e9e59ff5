package transitland

import (
	"context"
	"net/url"
	"strconv"
)

const EndpointStops = "stops"

// Stop is a stop object from the v2 stop search.
type Stop struct {
	OnestopID string `json:"onestop_id"`
	Name      string `json:"name"`
}

type stopsResponse struct {
	Stops []Stop `json:"stops"`
}

// StopSearchRequest is a proximity search around a point.
type StopSearchRequest struct {
	Lat    float64
	Lon    float64
	Radius float64 // meters
	APIKey string
}

func (r StopSearchRequest) params() url.Values {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(r.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(r.Lon, 'f', -1, 64))
	params.Set("radius", strconv.FormatFloat(r.Radius, 'f', -1, 64))
	params.Set("apikey", r.APIKey)
	return params
}

// SearchStops returns the stops within Radius of (Lat, Lon). A malformed body yields no stops.
func (c *Client) SearchStops(ctx context.Context, req StopSearchRequest) ([]Stop, error) {
	body, err := getJSON[stopsResponse](ctx, c, EndpointStops, c.config.V2BaseURL, "/stops", req.params())
	if err != nil {
		return nil, err
	}
	return body.Stops, nil
}
