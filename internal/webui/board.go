package webui

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"departures.lillekyla.ee/internal/departures"
	"departures.lillekyla.ee/internal/logging"
	"departures.lillekyla.ee/internal/stations"
)

// Fetcher loads departures for one route.
type Fetcher interface {
	Fetch(ctx context.Context, from, to string) ([]departures.Trip, error)
}

// Snapshot is what the board last learned about one route. Trips is nil
// while loading and after an error.
type Snapshot struct {
	Route     int
	Loading   bool
	Err       string
	Trips     []departures.Trip
	FetchedAt time.Time
}

// Board keeps one snapshot per route and polls the API for the routes that
// are being viewed. Viewing a route never changes what other viewers see.
type Board struct {
	fetcher Fetcher
	catalog stations.Catalog
	refresh time.Duration
	logger  *slog.Logger
	now     func() time.Time

	wake chan struct{}

	mu         sync.RWMutex
	snapshots  []Snapshot
	lastViewed []time.Time
}

// NewBoard creates a board for the catalog's routes. Every route starts out loading.
func NewBoard(fetcher Fetcher, catalog stations.Catalog, refresh time.Duration, logger *slog.Logger) *Board {
	if logger == nil {
		logger = slog.Default()
	}
	if refresh <= 0 {
		refresh = time.Minute
	}

	snapshots := make([]Snapshot, len(catalog.Routes))
	for i := range snapshots {
		snapshots[i] = Snapshot{Route: i, Loading: true}
	}

	return &Board{
		fetcher:    fetcher,
		catalog:    catalog,
		refresh:    refresh,
		logger:     logger.With(slog.String("component", "board")),
		now:        time.Now,
		wake:       make(chan struct{}, 1),
		snapshots:  snapshots,
		lastViewed: make([]time.Time, len(catalog.Routes)),
	}
}

// Routes returns the selectable routes.
func (b *Board) Routes() []stations.Route {
	return b.catalog.Routes
}

// Snapshot returns the current state of route i without marking it viewed.
func (b *Board) Snapshot(i int) (Snapshot, bool) {
	if _, ok := b.catalog.Route(i); !ok {
		return Snapshot{}, false
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshots[i], true
}

// Snapshots returns the state of every route.
func (b *Board) Snapshots() []Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Snapshot, len(b.snapshots))
	copy(out, b.snapshots)
	return out
}

// View returns route i's snapshot and marks the route as watched so the
// poller keeps it fresh. A route with no data or stale data wakes the poller.
// It reports false for an unknown index.
func (b *Board) View(i int) (Snapshot, bool) {
	if _, ok := b.catalog.Route(i); !ok {
		return Snapshot{}, false
	}

	now := b.now()
	b.mu.Lock()
	b.lastViewed[i] = now
	snap := b.snapshots[i]
	b.mu.Unlock()

	if b.stale(snap, now) {
		select {
		case b.wake <- struct{}{}:
		default:
		}
	}
	return snap, true
}

func (b *Board) stale(snap Snapshot, now time.Time) bool {
	return snap.Loading || now.Sub(snap.FetchedAt) >= b.refresh
}

// watched reports whether route i was viewed recently. The first route is
// the landing page and is always kept warm.
func (b *Board) watched(i int, now time.Time) bool {
	return i == 0 || now.Sub(b.lastViewed[i]) <= 2*b.refresh
}

// Run polls until ctx is cancelled.
func (b *Board) Run(ctx context.Context) {
	if len(b.catalog.Routes) == 0 {
		return
	}

	ticker := time.NewTicker(b.refresh)
	defer ticker.Stop()

	b.refreshWatched(ctx, false)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.refreshWatched(ctx, false)
		case <-b.wake:
			b.refreshWatched(ctx, true)
		}
	}
}

// refreshWatched fetches every watched route, or with staleOnly just the
// watched routes that have no fresh data.
func (b *Board) refreshWatched(ctx context.Context, staleOnly bool) {
	now := b.now()

	b.mu.RLock()
	due := make([]int, 0, len(b.snapshots))
	for i, snap := range b.snapshots {
		if !b.watched(i, now) {
			continue
		}
		if staleOnly && !b.stale(snap, now) {
			continue
		}
		due = append(due, i)
	}
	b.mu.RUnlock()

	for _, i := range due {
		if ctx.Err() != nil {
			return
		}
		b.Refresh(ctx, i)
	}
}

// Refresh fetches route i once and replaces its snapshot.
func (b *Board) Refresh(ctx context.Context, i int) {
	route, ok := b.catalog.Route(i)
	if !ok {
		return
	}

	fetchCtx, cancel := context.WithTimeout(ctx, b.refresh)
	trips, err := b.fetcher.Fetch(fetchCtx, route.From, route.To)
	cancel()
	if ctx.Err() != nil {
		return
	}

	next := Snapshot{Route: i, FetchedAt: b.now()}
	if err != nil {
		logging.LogError(b.logger, "departures fetch failed", err,
			slog.String("route", route.Label))
		next.Err = err.Error()
		if next.Err == "" {
			next.Err = unknownError
		}
	} else {
		next.Trips = trips
	}

	b.mu.Lock()
	b.snapshots[i] = next
	b.mu.Unlock()
}
