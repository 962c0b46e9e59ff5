package stations

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"departures.lillekyla.ee/internal/logging"
	"departures.lillekyla.ee/internal/utils"
)

const (
	KloogaOnestopID      = "s-ud932p00sp-kloogaraudteejaam"
	KloogarannaOnestopID = "s-ud91xepqe7-kloogaranna"
	LillekylaPlaceholder = "LILLEKYLA"
)

// Placeholder describes a station whose Onestop ID is looked up at runtime
// by searching around a coordinate.
type Placeholder struct {
	Token  string  `yaml:"token"`
	Lat    float64 `yaml:"lat"`
	Lon    float64 `yaml:"lon"`
	Radius float64 `yaml:"radius"`
	// Match is a case-insensitive substring preferred in candidate names.
	Match string `yaml:"match"`
}

// Route is one selectable origin/destination pair.
type Route struct {
	Label string `yaml:"label" json:"label"`
	From  string `yaml:"from" json:"from"`
	To    string `yaml:"to" json:"to"`
}

// Catalog is the fixed station and route table handed to the services at construction.
type Catalog struct {
	Placeholders []Placeholder `yaml:"placeholders"`
	Routes       []Route       `yaml:"routes"`
}

// DefaultCatalog returns the Lilleküla ↔ Klooga/Kloogaranna table.
func DefaultCatalog() Catalog {
	return Catalog{
		Placeholders: []Placeholder{
			{
				Token:  LillekylaPlaceholder,
				Lat:    59.42484,
				Lon:    24.72806,
				Radius: 800,
				Match:  "lille",
			},
		},
		Routes: []Route{
			{Label: "Lilleküla → Klooga", From: LillekylaPlaceholder, To: KloogaOnestopID},
			{Label: "Lilleküla → Kloogaranna", From: LillekylaPlaceholder, To: KloogarannaOnestopID},
			{Label: "Klooga → Lilleküla", From: KloogaOnestopID, To: LillekylaPlaceholder},
			{Label: "Kloogaranna → Lilleküla", From: KloogarannaOnestopID, To: LillekylaPlaceholder},
		},
	}
}

// Placeholder returns the definition for token, if token is a placeholder.
func (c Catalog) Placeholder(token string) (Placeholder, bool) {
	for _, p := range c.Placeholders {
		if p.Token == token {
			return p, true
		}
	}
	return Placeholder{}, false
}

// Route returns the route at index i.
func (c Catalog) Route(i int) (Route, bool) {
	if i < 0 || i >= len(c.Routes) {
		return Route{}, false
	}
	return c.Routes[i], true
}

// Validate checks that the catalog is usable.
func (c Catalog) Validate() error {
	var errs []error
	seen := make(map[string]bool)
	for i, p := range c.Placeholders {
		if strings.TrimSpace(p.Token) == "" {
			errs = append(errs, fmt.Errorf("placeholder %d: token is required", i))
			continue
		}
		if seen[p.Token] {
			errs = append(errs, fmt.Errorf("placeholder %q: duplicate token", p.Token))
		}
		seen[p.Token] = true
		for _, err := range []error{
			utils.ValidateLatitude(p.Lat),
			utils.ValidateLongitude(p.Lon),
			utils.ValidateRadius(p.Radius),
		} {
			if err != nil {
				errs = append(errs, fmt.Errorf("placeholder %q: %w", p.Token, err))
			}
		}
	}
	if len(c.Routes) == 0 {
		errs = append(errs, errors.New("no routes defined"))
	}
	for i, r := range c.Routes {
		if r.From == "" || r.To == "" {
			errs = append(errs, fmt.Errorf("route %d (%q): from and to are required", i, r.Label))
		}
	}
	return errors.Join(errs...)
}

// LoadCatalog reads a YAML catalog from path. An empty path returns DefaultCatalog.
func LoadCatalog(path string, logger *slog.Logger) (catalog Catalog, err error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("opening stations file: %w", err)
	}
	defer logging.HandleDeferredError(&err, f.Close, logger, "close_stations_file")

	if err := yaml.NewDecoder(f).Decode(&catalog); err != nil {
		return Catalog{}, fmt.Errorf("parsing stations file: %w", err)
	}
	if err := catalog.Validate(); err != nil {
		return Catalog{}, fmt.Errorf("invalid stations file %s: %w", path, err)
	}

	logging.LogOperation(logger, "stations_catalog_loaded",
		slog.String("path", path),
		slog.Int("placeholders", len(catalog.Placeholders)),
		slog.Int("routes", len(catalog.Routes)))
	return catalog, nil
}
