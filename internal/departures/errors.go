package departures

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingParams is returned when from or to is empty.
	ErrMissingParams = errors.New("missing from/to")

	// ErrMissingAPIKey is returned when no Transitland credential is configured.
	ErrMissingAPIKey = errors.New("missing TRANSITLAND_API_KEY")
)

// InvalidStationError reports a malformed station identifier.
type InvalidStationError struct {
	Param string
	ID    string
	Err   error
}

func (e *InvalidStationError) Error() string {
	return fmt.Sprintf("invalid %s station id: %v", e.Param, e.Err)
}

func (e *InvalidStationError) Unwrap() error {
	return e.Err
}
