package stations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"departures.lillekyla.ee/internal/logging"
	"departures.lillekyla.ee/internal/transitland"
	"departures.lillekyla.ee/internal/utils"
)

// ErrStationNotFound is returned when a proximity search yields no usable stop.
var ErrStationNotFound = errors.New("station not found")

// ResolutionError wraps any failure to resolve a placeholder token.
type ResolutionError struct {
	Token string
	Err   error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolving %s: %v", e.Token, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// StopSearcher is the upstream proximity search used for resolution.
type StopSearcher interface {
	SearchStops(ctx context.Context, req transitland.StopSearchRequest) ([]transitland.Stop, error)
}

// CacheRecorder counts memoized lookups.
type CacheRecorder interface {
	ObserveResolution(token string, hit bool)
}

// Resolver turns placeholder tokens into concrete Onestop IDs. Each resolved
// value is kept for the life of the process. Concurrent first lookups may
// both search; they store the same identifier.
type Resolver struct {
	catalog  Catalog
	searcher StopSearcher
	recorder CacheRecorder
	cells    map[string]*atomic.Pointer[string]
}

// NewResolver creates a resolver for the placeholders in catalog.
func NewResolver(catalog Catalog, searcher StopSearcher, recorder CacheRecorder) *Resolver {
	cells := make(map[string]*atomic.Pointer[string], len(catalog.Placeholders))
	for _, p := range catalog.Placeholders {
		cells[p.Token] = &atomic.Pointer[string]{}
	}
	return &Resolver{
		catalog:  catalog,
		searcher: searcher,
		recorder: recorder,
		cells:    cells,
	}
}

// IsPlaceholder reports whether id is a token this resolver handles.
func (r *Resolver) IsPlaceholder(id string) bool {
	_, ok := r.cells[id]
	return ok
}

// Resolve returns id unchanged unless it is a placeholder, in which case it
// returns the memoized or freshly fetched concrete identifier.
func (r *Resolver) Resolve(ctx context.Context, id, apiKey string) (string, error) {
	if !r.IsPlaceholder(id) {
		return id, nil
	}
	return r.ResolveOrFetch(ctx, id, apiKey)
}

// ResolveOrFetch returns the cached identifier for token, searching upstream on first use.
func (r *Resolver) ResolveOrFetch(ctx context.Context, token, apiKey string) (string, error) {
	cell, ok := r.cells[token]
	p, known := r.catalog.Placeholder(token)
	if !ok || !known {
		return "", &ResolutionError{Token: token, Err: ErrStationNotFound}
	}

	if cached := cell.Load(); cached != nil {
		r.observe(token, true)
		return *cached, nil
	}
	r.observe(token, false)

	stops, err := r.searcher.SearchStops(ctx, transitland.StopSearchRequest{
		Lat:    p.Lat,
		Lon:    p.Lon,
		Radius: p.Radius,
		APIKey: apiKey,
	})
	if err != nil {
		return "", &ResolutionError{Token: token, Err: err}
	}

	candidate, ok := pickCandidate(stops, p.Match)
	if !ok || candidate.OnestopID == "" {
		return "", &ResolutionError{Token: token, Err: ErrStationNotFound}
	}

	id := candidate.OnestopID
	cell.Store(&id)

	logging.LogOperation(logging.FromContext(ctx), "placeholder_resolved",
		slog.String("token", token),
		slog.String("onestop_id", id),
		slog.String("name", candidate.Name),
		slog.Int("candidates", len(stops)))
	return id, nil
}

// Cached returns the memoized identifier for token without fetching.
func (r *Resolver) Cached(token string) (string, bool) {
	cell, ok := r.cells[token]
	if !ok {
		return "", false
	}
	if v := cell.Load(); v != nil {
		return *v, true
	}
	return "", false
}

func (r *Resolver) observe(token string, hit bool) {
	if r.recorder != nil {
		r.recorder.ObserveResolution(token, hit)
	}
}

// pickCandidate prefers the first stop whose name contains match, else the first stop.
func pickCandidate(stops []transitland.Stop, match string) (transitland.Stop, bool) {
	if len(stops) == 0 {
		return transitland.Stop{}, false
	}
	if match != "" {
		needle := strings.ToLower(match)
		for _, s := range stops {
			if strings.Contains(strings.ToLower(utils.SanitizeInput(s.Name)), needle) {
				return s, true
			}
		}
	}
	return stops[0], true
}
