package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns a private registry with the query service's metrics.
type Collector struct {
	reg *prometheus.Registry

	UpstreamRequests *prometheus.CounterVec   // endpoint, status
	UpstreamDuration *prometheus.HistogramVec // endpoint
	Resolutions      *prometheus.CounterVec   // token, result=hit|miss
	DepartureQueries *prometheus.CounterVec   // outcome
	TripsReturned    prometheus.Histogram
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "departures_upstream_requests_total",
			Help: "Transitland requests by endpoint and HTTP status (0 = no response).",
		}, []string{"endpoint", "status"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "departures_upstream_request_duration_seconds",
			Help:    "Latency of Transitland requests.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}, []string{"endpoint"}),
		Resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "departures_placeholder_resolutions_total",
			Help: "Placeholder lookups answered from memory (hit) or by a stop search (miss).",
		}, []string{"token", "result"}),
		DepartureQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "departures_queries_total",
			Help: "Departure queries by outcome.",
		}, []string{"outcome"}),
		TripsReturned: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "departures_trips_returned",
			Help:    "Number of trips in successful departure responses.",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100, 200},
		}),
	}

	reg.MustRegister(
		c.UpstreamRequests, c.UpstreamDuration,
		c.Resolutions, c.DepartureQueries, c.TripsReturned,
		collectors.NewGoCollector(),
	)

	return c
}

// ObserveUpstream records one Transitland call.
func (c *Collector) ObserveUpstream(endpoint string, status int, duration time.Duration) {
	c.UpstreamRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	c.UpstreamDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// ObserveResolution records a placeholder lookup.
func (c *Collector) ObserveResolution(token string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.Resolutions.WithLabelValues(token, result).Inc()
}

// ObserveQuery records the outcome of one departures request.
func (c *Collector) ObserveQuery(outcome string, trips int) {
	c.DepartureQueries.WithLabelValues(outcome).Inc()
	if outcome == "ok" {
		c.TripsReturned.Observe(float64(trips))
	}
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }
