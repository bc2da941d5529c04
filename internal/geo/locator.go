package geo

import (
	"context"
	"fmt"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"service-logger-backend/internal/model"
)

// Marker is a located customer drawn on the selection map.
type Marker struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Locator remembers customer coordinates for the lifetime of the process.
// Unresolved addresses are remembered too and never retried.
type Locator struct {
	geocoder Geocoder
	coords   *cache.Cache
	logger   *zap.Logger
}

// NewLocator creates a Locator. A nil geocoder leaves every customer unresolved.
func NewLocator(geocoder Geocoder, logger *zap.Logger) *Locator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Locator{
		geocoder: geocoder,
		coords:   cache.New(cache.NoExpiration, 0),
		logger:   logger,
	}
}

// Warm geocodes every customer not seen before and returns one warning per
// failed lookup.
func (l *Locator) Warm(ctx context.Context, customers []*model.Customer) []string {
	var warnings []string
	for _, c := range customers {
		if _, found := l.coords.Get(c.ID); found {
			continue
		}
		if _, warning := l.Locate(ctx, c); warning != "" {
			warnings = append(warnings, warning)
		}
	}
	l.logger.Info("customer coordinates loaded", zap.Int("customers", len(customers)), zap.Int("failed", len(warnings)))
	return warnings
}

// Locate geocodes a customer's address and caches the result. A failed
// lookup is cached as unresolved and described by the returned warning.
func (l *Locator) Locate(ctx context.Context, c *model.Customer) (*Point, string) {
	if l.geocoder == nil {
		l.coords.Set(c.ID, (*Point)(nil), cache.NoExpiration)
		return nil, ""
	}
	p, err := l.geocoder.Geocode(ctx, c.Address)
	if err != nil {
		l.logger.Warn("geocoding failed", zap.String("customer_id", c.ID), zap.String("address", c.Address), zap.Error(err))
		l.coords.Set(c.ID, (*Point)(nil), cache.NoExpiration)
		return nil, fmt.Sprintf("Could not locate %s on the map: %v", c.CompanyName, err)
	}
	l.coords.Set(c.ID, p, cache.NoExpiration)
	return p, ""
}

// Coord returns the cached coordinate of a customer, nil when unresolved
// or never looked up.
func (l *Locator) Coord(id string) *Point {
	v, found := l.coords.Get(id)
	if !found {
		return nil
	}
	return v.(*Point)
}

// Candidates builds resolver input in table order.
func (l *Locator) Candidates(customers []*model.Customer) []Candidate {
	out := make([]Candidate, 0, len(customers))
	for _, c := range customers {
		out = append(out, Candidate{ID: c.ID, Coord: l.Coord(c.ID)})
	}
	return out
}

// Markers returns the located customers.
func (l *Locator) Markers(customers []*model.Customer) []Marker {
	out := []Marker{}
	for _, c := range customers {
		if p := l.Coord(c.ID); p != nil {
			out = append(out, Marker{ID: c.ID, Name: c.CompanyName, Lat: p.Lat, Lon: p.Lon})
		}
	}
	return out
}
