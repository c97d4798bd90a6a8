package timezone

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFinder returns a canned zone name and records the coordinates it saw.
type fakeFinder struct {
	name  string
	calls [][2]float64
}

func (f *fakeFinder) GetTimezoneName(lng, lat float64) string {
	f.calls = append(f.calls, [2]float64{lng, lat})
	return f.name
}

func TestResolver_Resolve(t *testing.T) {
	f := &fakeFinder{name: "America/New_York"}
	r := &Resolver{finder: f}

	assert.Equal(t, "America/New_York", r.Resolve(40.7128, -74.0060))

	// tzf takes longitude first; the resolver must swap the arguments.
	require.Len(t, f.calls, 1)
	assert.Equal(t, -74.0060, f.calls[0][0])
	assert.Equal(t, 40.7128, f.calls[0][1])
}

func TestResolver_FallbackForUnresolvable(t *testing.T) {
	r := &Resolver{finder: &fakeFinder{name: ""}}

	assert.Equal(t, FallbackZone, r.Resolve(0, 0))
}

func TestResolver_RealDataset(t *testing.T) {
	r, err := NewResolver()
	require.NoError(t, err)

	assert.Equal(t, "America/New_York", r.Resolve(40.7128, -74.0060))
	assert.Equal(t, "America/Denver", r.Resolve(39.7392, -104.9903))
}

// countingSource counts resolutions so cache tests can assert on misses.
type countingSource struct {
	mu    sync.Mutex
	count int
	name  string
}

func (s *countingSource) Resolve(lat, lon float64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count++
	return s.name
}

func TestCachedResolver_ResolvesOncePerCoordinate(t *testing.T) {
	inner := &countingSource{name: "America/Chicago"}
	var hits, misses int
	c := NewCachedResolver(inner, func() { hits++ }, func() { misses++ })

	assert.Equal(t, "America/Chicago", c.Resolve(41.8781, -87.6298))
	assert.Equal(t, "America/Chicago", c.Resolve(41.8781, -87.6298))
	assert.Equal(t, "America/Chicago", c.Resolve(41.8781, -87.6298))

	assert.Equal(t, 1, inner.count)
	assert.Equal(t, 1, misses)
	assert.Equal(t, 2, hits)
}

func TestCachedResolver_DistinctCoordinates(t *testing.T) {
	inner := &countingSource{name: "America/Chicago"}
	c := NewCachedResolver(inner, nil, nil)

	c.Resolve(41.8781, -87.6298)
	c.Resolve(44.9778, -93.2650)

	assert.Equal(t, 2, inner.count)
}

func TestCachedResolver_Concurrent(t *testing.T) {
	inner := &countingSource{name: "America/New_York"}
	c := NewCachedResolver(inner, nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				assert.Equal(t, "America/New_York", c.Resolve(40.7128, -74.0060))
			}
		}()
	}
	wg.Wait()

	// The same coordinate may race past the read lock a handful of times,
	// but never once per call.
	assert.LessOrEqual(t, inner.count, 16)
}
