package utils

import "time"

// EndOfServiceDay is the upper bound used for "rest of today" departure windows.
const EndOfServiceDay = "23:59:59"

// ServiceDate formats t as the calendar date the upstream schedule expects.
func ServiceDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// MinuteFloor formats t as HH:MM:00.
func MinuteFloor(t time.Time) string {
	return t.Format("15:04") + ":00"
}

// TruncateToMinutes turns "HH:MM:SS" into "HH:MM". Shorter values are returned as-is.
func TruncateToMinutes(timeOfDay string) string {
	if len(timeOfDay) < 5 {
		return timeOfDay
	}
	return timeOfDay[:5]
}

// LoadLocation resolves an IANA zone name, falling back to fallback when name is empty.
func LoadLocation(name string, fallback *time.Location) (*time.Location, error) {
	if name == "" {
		return fallback, nil
	}
	return time.LoadLocation(name)
}
