package transitland

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"departures.lillekyla.ee/internal/logging"
)

const (
	DefaultV1BaseURL = "https://transit.land/api/v1"
	DefaultV2BaseURL = "https://transit.land/api/v2/rest"

	// maxErrorBody caps how much of a failed upstream response is kept for pass-through.
	maxErrorBody = 1 << 20
)

// HTTPClient is the subset of *http.Client used by Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Recorder receives one observation per upstream call. Status is 0 when the
// request never produced a response.
type Recorder interface {
	ObserveUpstream(endpoint string, status int, duration time.Duration)
}

// Config holds the upstream base URLs.
type Config struct {
	V1BaseURL string
	V2BaseURL string
}

// Client talks to the Transitland v1 schedule API and the v2 REST stop search.
type Client struct {
	config     Config
	httpClient HTTPClient
	recorder   Recorder
}

// NewClient creates a client. A nil httpClient means http.DefaultClient, which
// has no timeout of its own; cancellation comes from the request context.
func NewClient(config Config, httpClient HTTPClient, recorder Recorder) *Client {
	if config.V1BaseURL == "" {
		config.V1BaseURL = DefaultV1BaseURL
	}
	if config.V2BaseURL == "" {
		config.V2BaseURL = DefaultV2BaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		config:     config,
		httpClient: httpClient,
		recorder:   recorder,
	}
}

// getJSON issues a GET against base+path with params and decodes a 2xx JSON
// body into a T. A body that fails to decode is logged and yields the zero T,
// never a partially filled one.
func getJSON[T any](ctx context.Context, c *Client, endpoint, base, path string, params url.Values) (T, error) {
	var zero T
	requestURL := strings.TrimRight(base, "/") + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return zero, fmt.Errorf("failed to create %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	logger := logging.FromContext(ctx)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(endpoint, 0, time.Since(start))
		return zero, fmt.Errorf("failed to execute %s request: %w", endpoint, err)
	}
	defer logging.SafeCloseWithLogging(resp.Body, logger, endpoint+"_body")

	elapsed := time.Since(start)
	c.observe(endpoint, resp.StatusCode, elapsed)
	logger.Debug("upstream call",
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"duration_ms", float64(elapsed.Nanoseconds())/1e6)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return zero, &UpstreamError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		logger.Warn("malformed upstream payload treated as empty",
			"endpoint", endpoint,
			"error", err.Error())
		return zero, nil
	}
	return out, nil
}

func (c *Client) observe(endpoint string, status int, d time.Duration) {
	if c.recorder != nil {
		c.recorder.ObserveUpstream(endpoint, status, d)
	}
}
