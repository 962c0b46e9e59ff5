package app

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"departures.lillekyla.ee/internal/logging"
	"departures.lillekyla.ee/internal/stations"
	"departures.lillekyla.ee/internal/transitland"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TRANSITLAND_API_KEY", "TZ_LABEL", "TRANSITLAND_V1_URL", "TRANSITLAND_V2_URL",
		"STATIONS_FILE", "SCHEDULE_PAGE_SIZE", "UPSTREAM_TIMEOUT",
		"DEPARTURES_API_URL", "BOARD_REFRESH",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(Config{Port: 4000, Env: "test"})
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Port)
	assert.Empty(t, cfg.TransitlandAPIKey)
	assert.Equal(t, DefaultTimezoneLabel, cfg.TimezoneLabel)
	assert.Equal(t, "Europe/Tallinn", cfg.Location.String())
	assert.Equal(t, transitland.DefaultV1BaseURL, cfg.Transitland.V1BaseURL)
	assert.Equal(t, transitland.DefaultV2BaseURL, cfg.Transitland.V2BaseURL)
	assert.Equal(t, 200, cfg.SchedulePageSize)
	assert.Zero(t, cfg.UpstreamTimeout)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRANSITLAND_API_KEY", "  abc123 ")
	t.Setenv("TZ_LABEL", "Europe/Helsinki")
	t.Setenv("TRANSITLAND_V1_URL", "http://localhost:9000/v1")
	t.Setenv("SCHEDULE_PAGE_SIZE", "50")
	t.Setenv("UPSTREAM_TIMEOUT", "15s")

	cfg, err := LoadConfig(Config{})
	require.NoError(t, err)

	assert.Equal(t, "abc123", cfg.TransitlandAPIKey)
	assert.Equal(t, "Europe/Helsinki", cfg.Location.String())
	assert.Equal(t, "http://localhost:9000/v1", cfg.Transitland.V1BaseURL)
	assert.Equal(t, 50, cfg.SchedulePageSize)
	assert.Equal(t, 15*time.Second, cfg.UpstreamTimeout)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		key, value, errMsg string
	}{
		{"TZ_LABEL", "Mars/Olympus", "invalid TZ_LABEL"},
		{"SCHEDULE_PAGE_SIZE", "zero", "invalid SCHEDULE_PAGE_SIZE"},
		{"SCHEDULE_PAGE_SIZE", "-3", "invalid SCHEDULE_PAGE_SIZE"},
		{"UPSTREAM_TIMEOUT", "soon", "invalid UPSTREAM_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig(Config{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadBoardConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnv(t)
		cfg, err := LoadBoardConfig(BoardConfig{Port: 3000})
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:4000", cfg.APIURL)
		assert.Equal(t, time.Minute, cfg.Refresh)
		assert.Equal(t, DefaultTimezoneLabel, cfg.TimezoneLabel)
	})

	t.Run("overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DEPARTURES_API_URL", "https://departures.example/")
		t.Setenv("BOARD_REFRESH", "30s")
		cfg, err := LoadBoardConfig(BoardConfig{})
		require.NoError(t, err)
		assert.Equal(t, "https://departures.example", cfg.APIURL)
		assert.Equal(t, 30*time.Second, cfg.Refresh)
	})

	t.Run("refresh too short", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("BOARD_REFRESH", "10ms")
		_, err := LoadBoardConfig(BoardConfig{})
		assert.ErrorContains(t, err, "invalid BOARD_REFRESH")
	})
}

func TestNewApplication(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig(Config{Env: "test"})
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := logging.NewStructuredLogger(&buf, slog.LevelInfo)

	application, err := New(cfg, logger)
	require.NoError(t, err)
	assert.Equal(t, stations.DefaultCatalog(), application.Catalog)
	assert.NotNil(t, application.Departures)
	assert.NotNil(t, application.Metrics)
	assert.True(t, application.Resolver.IsPlaceholder(stations.LillekylaPlaceholder))
	assert.Contains(t, buf.String(), "TRANSITLAND_API_KEY is not set")
}
