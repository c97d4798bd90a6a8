// Package timezone maps geographic coordinates to IANA timezone names using
// an embedded tzf dataset, with a run-scoped concurrent cache in front.
package timezone

import (
	"fmt"
	"sync"

	"github.com/ringsaturn/tzf"
)

// FallbackZone is returned for coordinates with no determinable timezone,
// such as open ocean or out-of-range input.
const FallbackZone = "UTC"

// finder is the subset of tzf.F the resolver needs; tests inject a fake.
type finder interface {
	GetTimezoneName(lng, lat float64) string
}

// Resolver maps a coordinate pair to an IANA timezone name. It never fails:
// an unresolvable coordinate yields FallbackZone.
type Resolver struct {
	finder finder
}

// NewResolver initializes a Resolver backed by the default tzf dataset.
// Construct once per run; the dataset load is the expensive part.
func NewResolver() (*Resolver, error) {
	f, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("initialize timezone finder: %w", err)
	}
	return &Resolver{finder: f}, nil
}

// Resolve returns the IANA timezone name for the coordinate, or FallbackZone
// when none is determinable.
func (r *Resolver) Resolve(lat, lon float64) string {
	name := r.finder.GetTimezoneName(lon, lat)
	if name == "" {
		return FallbackZone
	}
	return name
}

// Source resolves a coordinate pair to a timezone name.
type Source interface {
	Resolve(lat, lon float64) string
}

// CachedResolver decorates a Source with a read-mostly concurrent cache
// keyed by the coordinate pair rounded to four decimal places (~11m), enough
// that a registry location always hits the same entry. Locations are
// immutable for a run, so entries never expire.
type CachedResolver struct {
	inner Source

	mu      sync.RWMutex
	entries map[string]string

	hit  func()
	miss func()
}

// NewCachedResolver wraps a resolver with the run-scoped cache. onHit and
// onMiss are optional counters (pass nil to disable).
func NewCachedResolver(inner Source, onHit, onMiss func()) *CachedResolver {
	return &CachedResolver{
		inner:   inner,
		entries: make(map[string]string),
		hit:     onHit,
		miss:    onMiss,
	}
}

// Resolve returns the cached timezone for the coordinate, resolving and
// storing it on first use.
func (c *CachedResolver) Resolve(lat, lon float64) string {
	key := fmt.Sprintf("%.4f,%.4f", lat, lon)

	c.mu.RLock()
	name, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		if c.hit != nil {
			c.hit()
		}
		return name
	}

	if c.miss != nil {
		c.miss()
	}
	name = c.inner.Resolve(lat, lon)

	c.mu.Lock()
	c.entries[key] = name
	c.mu.Unlock()
	return name
}
