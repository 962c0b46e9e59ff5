package departures

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"departures.lillekyla.ee/internal/logging"
	"departures.lillekyla.ee/internal/transitland"
	"departures.lillekyla.ee/internal/utils"
)

// DefaultPageSize caps how many stop pairs one schedule query asks for.
const DefaultPageSize = 200

// ScheduleFetcher is the upstream schedule-pairs query.
type ScheduleFetcher interface {
	ScheduleStopPairs(ctx context.Context, req transitland.ScheduleStopPairsRequest) ([]transitland.ScheduleStopPair, error)
}

// StationResolver maps placeholder tokens to concrete identifiers and passes
// other identifiers through.
type StationResolver interface {
	Resolve(ctx context.Context, id, apiKey string) (string, error)
}

// Config holds the service settings.
type Config struct {
	APIKey   string
	Location *time.Location
	PageSize int
	// Now defaults to time.Now.
	Now func() time.Time
}

// Service answers "what trains are still leaving today between these two stations".
type Service struct {
	apiKey   string
	location *time.Location
	pageSize int
	now      func() time.Time
	resolver StationResolver
	schedule ScheduleFetcher
}

// NewService creates a Service.
func NewService(config Config, resolver StationResolver, schedule ScheduleFetcher) *Service {
	if config.Location == nil {
		config.Location = time.Local
	}
	if config.PageSize <= 0 {
		config.PageSize = DefaultPageSize
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	return &Service{
		apiKey:   config.APIKey,
		location: config.Location,
		pageSize: config.PageSize,
		now:      config.Now,
		resolver: resolver,
		schedule: schedule,
	}
}

// Departures returns today's remaining departures from one station to another.
// Parameter and credential checks happen before any upstream call.
func (s *Service) Departures(ctx context.Context, from, to string) (Result, error) {
	if from == "" || to == "" {
		return Result{}, ErrMissingParams
	}
	if err := utils.ValidateStationID(from); err != nil {
		return Result{}, &InvalidStationError{Param: "from", ID: from, Err: err}
	}
	if err := utils.ValidateStationID(to); err != nil {
		return Result{}, &InvalidStationError{Param: "to", ID: to, Err: err}
	}
	if s.apiKey == "" {
		return Result{}, ErrMissingAPIKey
	}

	now := s.now().In(s.location)
	notBefore := utils.MinuteFloor(now)

	resolvedFrom, err := s.resolver.Resolve(ctx, from, s.apiKey)
	if err != nil {
		return Result{}, err
	}
	resolvedTo, err := s.resolver.Resolve(ctx, to, s.apiKey)
	if err != nil {
		return Result{}, err
	}

	pairs, err := s.schedule.ScheduleStopPairs(ctx, transitland.ScheduleStopPairsRequest{
		OriginOnestopID:      resolvedFrom,
		DestinationOnestopID: resolvedTo,
		Date:                 utils.ServiceDate(now),
		DepartureFrom:        notBefore,
		DepartureTo:          utils.EndOfServiceDay,
		Active:               true,
		PerPage:              s.pageSize,
		APIKey:               s.apiKey,
	})
	if err != nil {
		return Result{}, fmt.Errorf("querying schedule %s -> %s: %w", resolvedFrom, resolvedTo, err)
	}

	trips := remainingTrips(pairs, notBefore)

	logging.FromContext(ctx).Debug("departures computed",
		slog.String("from", resolvedFrom),
		slog.String("to", resolvedTo),
		slog.String("not_before", notBefore),
		slog.Int("upstream_pairs", len(pairs)),
		slog.Int("trips", len(trips)))

	return Result{Trips: trips, From: resolvedFrom, To: resolvedTo}, nil
}
