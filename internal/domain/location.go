package domain

import "fmt"

// Location is one row of the location registry: an NWS forecast grid cell
// plus the geographic point used for timezone resolution. Immutable once
// loaded.
type Location struct {
	GridID    string
	GridX     int
	GridY     int
	Latitude  float64
	Longitude float64
	Name      string
}

// GridRef returns the three-part grid key in "OKX/33,35" form, used in
// diagnostics.
func (l Location) GridRef() string {
	return fmt.Sprintf("%s/%d,%d", l.GridID, l.GridX, l.GridY)
}

// Station is one row of the station registry. Name may be empty, in which
// case the station identifier doubles as the display name.
type Station struct {
	ID   string
	Name string
}

// DisplayName returns the human-readable name attached to persisted records.
func (s Station) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.ID
}
