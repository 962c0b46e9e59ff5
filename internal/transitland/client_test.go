package transitland

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	endpoint string
	status   int
}

type fakeRecorder struct {
	mu    sync.Mutex
	calls []recordedCall
}

func (r *fakeRecorder) ObserveUpstream(endpoint string, status int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, recordedCall{endpoint: endpoint, status: status})
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *fakeRecorder) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	recorder := &fakeRecorder{}
	client := NewClient(Config{V1BaseURL: server.URL + "/api/v1", V2BaseURL: server.URL + "/api/v2/rest"}, server.Client(), recorder)
	return client, recorder
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(Config{}, nil, nil)
	assert.Equal(t, DefaultV1BaseURL, client.config.V1BaseURL)
	assert.Equal(t, DefaultV2BaseURL, client.config.V2BaseURL)
	assert.Equal(t, http.DefaultClient, client.httpClient)
}

func TestSearchStops(t *testing.T) {
	t.Run("sends coordinates and key", func(t *testing.T) {
		client, recorder := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v2/rest/stops", r.URL.Path)
			q := r.URL.Query()
			assert.Equal(t, "59.42484", q.Get("lat"))
			assert.Equal(t, "24.72806", q.Get("lon"))
			assert.Equal(t, "800", q.Get("radius"))
			assert.Equal(t, "secret", q.Get("apikey"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"stops":[{"onestop_id":"s-ud9d4-lillekula","name":"Lilleküla"},{"onestop_id":"s-x","name":"Tondi"}]}`))
		})

		stops, err := client.SearchStops(context.Background(), StopSearchRequest{Lat: 59.42484, Lon: 24.72806, Radius: 800, APIKey: "secret"})
		require.NoError(t, err)
		require.Len(t, stops, 2)
		assert.Equal(t, "s-ud9d4-lillekula", stops[0].OnestopID)
		assert.Equal(t, "Lilleküla", stops[0].Name)
		assert.Equal(t, []recordedCall{{endpoint: EndpointStops, status: http.StatusOK}}, recorder.calls)
	})

	t.Run("non-success status is an upstream error", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("invalid apikey"))
		})

		_, err := client.SearchStops(context.Background(), StopSearchRequest{APIKey: "bad"})
		var upstreamErr *UpstreamError
		require.True(t, errors.As(err, &upstreamErr))
		assert.Equal(t, http.StatusUnauthorized, upstreamErr.StatusCode)
		assert.Equal(t, "invalid apikey", upstreamErr.Body)
		assert.Equal(t, EndpointStops, upstreamErr.Endpoint)
	})

	t.Run("malformed payload yields no stops", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>oops</html>`))
		})

		stops, err := client.SearchStops(context.Background(), StopSearchRequest{})
		require.NoError(t, err)
		assert.Empty(t, stops)
	})
}

func TestScheduleStopPairs(t *testing.T) {
	req := ScheduleStopPairsRequest{
		OriginOnestopID:      "s-ud9d4-lillekula",
		DestinationOnestopID: "s-ud91xepqe7-kloogaranna",
		Date:                 "2026-10-16",
		DepartureFrom:        "14:05:00",
		DepartureTo:          "23:59:59",
		Active:               true,
		PerPage:              200,
		APIKey:               "secret",
	}

	t.Run("builds query parameters", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/schedule_stop_pairs", r.URL.Path)
			q := r.URL.Query()
			assert.Equal(t, "secret", q.Get("api_key"))
			assert.Equal(t, "s-ud9d4-lillekula", q.Get("origin_onestop_id"))
			assert.Equal(t, "s-ud91xepqe7-kloogaranna", q.Get("destination_onestop_id"))
			assert.Equal(t, "2026-10-16", q.Get("date"))
			assert.Equal(t, "true", q.Get("active"))
			assert.Equal(t, "14:05:00,23:59:59", q.Get("origin_departure_between"))
			assert.Equal(t, "200", q.Get("per_page"))
			_, _ = w.Write([]byte(`{"schedule_stop_pairs":[{"origin_departure_time":"14:30:00","destination_arrival_time":"15:10:00","route_name":"R12","route_onestop_id":"r-ud9-r12","trip_headsign":"Kloogaranna"}]}`))
		})

		pairs, err := client.ScheduleStopPairs(context.Background(), req)
		require.NoError(t, err)
		require.Len(t, pairs, 1)
		assert.Equal(t, ScheduleStopPair{
			OriginDepartureTime:    "14:30:00",
			DestinationArrivalTime: "15:10:00",
			RouteName:              "R12",
			RouteOnestopID:         "r-ud9-r12",
			TripHeadsign:           "Kloogaranna",
		}, pairs[0])
	})

	t.Run("omits per_page when unset", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, present := r.URL.Query()["per_page"]
			assert.False(t, present)
			_, _ = w.Write([]byte(`{"schedule_stop_pairs":[]}`))
		})

		noCap := req
		noCap.PerPage = 0
		pairs, err := client.ScheduleStopPairs(context.Background(), noCap)
		require.NoError(t, err)
		assert.Empty(t, pairs)
	})

	t.Run("passes upstream body through on failure", func(t *testing.T) {
		client, recorder := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("backend unavailable"))
		})

		_, err := client.ScheduleStopPairs(context.Background(), req)
		var upstreamErr *UpstreamError
		require.True(t, errors.As(err, &upstreamErr))
		assert.Equal(t, http.StatusServiceUnavailable, upstreamErr.StatusCode)
		assert.Equal(t, "backend unavailable", upstreamErr.Body)
		assert.Contains(t, upstreamErr.Error(), "503")
		assert.Equal(t, http.StatusServiceUnavailable, recorder.calls[0].status)
	})

	t.Run("type mismatch yields no pairs rather than a partial list", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"schedule_stop_pairs":[{"origin_departure_time":"15:00:00"},{"origin_departure_time":42}]}`))
		})

		pairs, err := client.ScheduleStopPairs(context.Background(), req)
		require.NoError(t, err)
		assert.Empty(t, pairs)
	})

	t.Run("empty body yields no pairs", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		pairs, err := client.ScheduleStopPairs(context.Background(), req)
		require.NoError(t, err)
		assert.Empty(t, pairs)
	})

	t.Run("transport failure is reported with status zero", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		recorder := &fakeRecorder{}
		client := NewClient(Config{V1BaseURL: url, V2BaseURL: url}, nil, recorder)

		_, err := client.ScheduleStopPairs(context.Background(), req)
		require.Error(t, err)
		var upstreamErr *UpstreamError
		assert.False(t, errors.As(err, &upstreamErr))
		require.Len(t, recorder.calls, 1)
		assert.Equal(t, 0, recorder.calls[0].status)
	})

	t.Run("cancelled context aborts the call", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.ScheduleStopPairs(ctx, req)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
