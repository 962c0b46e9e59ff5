package webui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"departures.lillekyla.ee/internal/departures"
	"departures.lillekyla.ee/internal/logging"
)

const maxErrorBody = 64 << 10

// FetchError is a non-2xx answer from the departures API. Its message is the
// response body as sent.
type FetchError struct {
	StatusCode int
	Message    string
}

func (e *FetchError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return e.Message
}

// Client calls the departures API over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for the API at baseURL. A nil httpClient uses http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Fetch returns the remaining departures for from -> to.
func (c *Client) Fetch(ctx context.Context, from, to string) ([]departures.Trip, error) {
	params := url.Values{}
	params.Set("from", from)
	params.Set("to", to)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/departures?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create departures request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch departures: %w", err)
	}
	defer logging.SafeCloseWithLogging(resp.Body,
		logging.FromContext(ctx).With(slog.String("component", "board_client")),
		"departures_body")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &FetchError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	var result departures.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode departures: %w", err)
	}
	if result.Trips == nil {
		result.Trips = []departures.Trip{}
	}
	return result.Trips, nil
}
