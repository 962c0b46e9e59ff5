package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"departures.lillekyla.ee/internal/departures"
	"departures.lillekyla.ee/internal/transitland"
	"departures.lillekyla.ee/internal/utils"
)

const DefaultTimezoneLabel = "Europe/Tallinn"

// Config holds all the configuration settings for the departures API. Server
// settings come from command-line flags, everything else from the environment.
type Config struct {
	Port      int
	Env       string
	RateLimit int // requests per second per client
	LogLevel  string
	// TrustProxy keys clients by X-Forwarded-For; set only behind a proxy that overwrites it.
	TrustProxy bool

	// TransitlandAPIKey may be empty; requests then fail with a configuration error.
	TransitlandAPIKey string
	TimezoneLabel     string
	Location          *time.Location
	Transitland       transitland.Config
	StationsFile      string
	SchedulePageSize  int
	// UpstreamTimeout of zero leaves outbound calls bounded only by the request context.
	UpstreamTimeout time.Duration
}

// BoardConfig holds the display client settings.
type BoardConfig struct {
	Port          int
	LogLevel      string
	APIURL        string
	Refresh       time.Duration
	TimezoneLabel string
	Location      *time.Location
	StationsFile  string
}

// LoadConfig fills the environment-driven part of cfg. A .env file in the
// working directory is loaded first when present.
func LoadConfig(cfg Config) (Config, error) {
	_ = godotenv.Load()

	cfg.TransitlandAPIKey = strings.TrimSpace(os.Getenv("TRANSITLAND_API_KEY"))
	cfg.StationsFile = os.Getenv("STATIONS_FILE")
	cfg.Transitland = transitland.Config{
		V1BaseURL: getenvDefault("TRANSITLAND_V1_URL", transitland.DefaultV1BaseURL),
		V2BaseURL: getenvDefault("TRANSITLAND_V2_URL", transitland.DefaultV2BaseURL),
	}

	var err error
	cfg.TimezoneLabel, cfg.Location, err = loadTimezone()
	if err != nil {
		return Config{}, err
	}

	cfg.SchedulePageSize = departures.DefaultPageSize
	if v := os.Getenv("SCHEDULE_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid SCHEDULE_PAGE_SIZE: %q", v)
		}
		cfg.SchedulePageSize = n
	}

	if v := os.Getenv("UPSTREAM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return Config{}, fmt.Errorf("invalid UPSTREAM_TIMEOUT: %q", v)
		}
		cfg.UpstreamTimeout = d
	}

	return cfg, nil
}

// LoadBoardConfig fills the environment-driven part of the display client config.
func LoadBoardConfig(cfg BoardConfig) (BoardConfig, error) {
	_ = godotenv.Load()

	cfg.APIURL = strings.TrimRight(getenvDefault("DEPARTURES_API_URL", "http://localhost:4000"), "/")
	cfg.StationsFile = os.Getenv("STATIONS_FILE")

	cfg.Refresh = time.Minute
	if v := os.Getenv("BOARD_REFRESH"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < time.Second {
			return BoardConfig{}, fmt.Errorf("invalid BOARD_REFRESH: %q", v)
		}
		cfg.Refresh = d
	}

	var err error
	cfg.TimezoneLabel, cfg.Location, err = loadTimezone()
	if err != nil {
		return BoardConfig{}, err
	}
	return cfg, nil
}

func loadTimezone() (string, *time.Location, error) {
	label := getenvDefault("TZ_LABEL", DefaultTimezoneLabel)
	loc, err := utils.LoadLocation(label, time.Local)
	if err != nil {
		return "", nil, fmt.Errorf("invalid TZ_LABEL: %w", err)
	}
	return label, loc, nil
}

func getenvDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}
