package transitland

import "fmt"

// UpstreamError is returned when Transitland answers with a non-2xx status.
// Body holds the raw response text so callers can pass it through.
type UpstreamError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("transitland %s returned status %d", e.Endpoint, e.StatusCode)
}
