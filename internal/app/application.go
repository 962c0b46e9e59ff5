package app

import (
	"log/slog"
	"net/http"

	"departures.lillekyla.ee/internal/departures"
	"departures.lillekyla.ee/internal/metrics"
	"departures.lillekyla.ee/internal/stations"
	"departures.lillekyla.ee/internal/transitland"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config     Config
	Logger     *slog.Logger
	Catalog    stations.Catalog
	Resolver   *stations.Resolver
	Departures *departures.Service
	Metrics    *metrics.Collector
}

// New wires the departures service from cfg. The Transitland credential is
// not checked here; a missing key fails each request instead.
func New(cfg Config, logger *slog.Logger) (*Application, error) {
	catalog, err := stations.LoadCatalog(cfg.StationsFile, logger)
	if err != nil {
		return nil, err
	}

	collector := metrics.NewCollector()
	httpClient := &http.Client{Timeout: cfg.UpstreamTimeout}
	client := transitland.NewClient(cfg.Transitland, httpClient, collector)
	resolver := stations.NewResolver(catalog, client, collector)

	service := departures.NewService(departures.Config{
		APIKey:   cfg.TransitlandAPIKey,
		Location: cfg.Location,
		PageSize: cfg.SchedulePageSize,
	}, resolver, client)

	if cfg.TransitlandAPIKey == "" {
		logger.Warn("TRANSITLAND_API_KEY is not set; departure requests will fail")
	}

	return &Application{
		Config:     cfg,
		Logger:     logger,
		Catalog:    catalog,
		Resolver:   resolver,
		Departures: service,
		Metrics:    collector,
	}, nil
}
