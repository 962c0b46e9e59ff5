package utils

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// Onestop IDs use letters, digits, '-', '_', '.', '~' and ':'.
	validStationIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.~:-]+$`)

	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
)

// ValidateStationID validates that a station identifier is safe to forward upstream.
func ValidateStationID(id string) error {
	if id == "" {
		return errors.New("id cannot be empty")
	}

	if len(id) > 100 {
		return errors.New("id too long (max 100 characters)")
	}

	if !validStationIDPattern.MatchString(id) {
		return errors.New("id contains invalid characters")
	}

	return nil
}

// ValidateLatitude validates latitude values
func ValidateLatitude(lat float64) error {
	if lat < -90.0 || lat > 90.0 {
		return errors.New("latitude must be between -90 and 90")
	}
	return nil
}

// ValidateLongitude validates longitude values
func ValidateLongitude(lon float64) error {
	if lon < -180.0 || lon > 180.0 {
		return errors.New("longitude must be between -180 and 180")
	}
	return nil
}

// ValidateRadius validates a search radius in meters.
func ValidateRadius(radius float64) error {
	if radius <= 0 {
		return errors.New("radius must be positive")
	}

	if radius > 10000 {
		return errors.New("radius too large (max 10000 meters)")
	}

	return nil
}

// SanitizeInput removes HTML tags and surrounding whitespace.
func SanitizeInput(input string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(input, ""))
}
