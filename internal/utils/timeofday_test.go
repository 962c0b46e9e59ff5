package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceDateAndMinuteFloor(t *testing.T) {
	tallinn, err := time.LoadLocation("Europe/Tallinn")
	require.NoError(t, err)

	now := time.Date(2026, time.October, 16, 14, 5, 42, 900, tallinn)
	assert.Equal(t, "2026-10-16", ServiceDate(now))
	assert.Equal(t, "14:05:00", MinuteFloor(now))

	midnight := time.Date(2026, time.October, 17, 0, 0, 5, 0, tallinn)
	assert.Equal(t, "00:00:00", MinuteFloor(midnight))
}

func TestTruncateToMinutes(t *testing.T) {
	assert.Equal(t, "14:05", TruncateToMinutes("14:05:00"))
	assert.Equal(t, "25:10", TruncateToMinutes("25:10:00"))
	assert.Equal(t, "9:5", TruncateToMinutes("9:5"))
	assert.Equal(t, "", TruncateToMinutes(""))
}

func TestLoadLocation(t *testing.T) {
	loc, err := LoadLocation("", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	loc, err = LoadLocation("Europe/Tallinn", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Tallinn", loc.String())

	_, err = LoadLocation("Mars/Olympus", time.UTC)
	assert.Error(t, err)
}
