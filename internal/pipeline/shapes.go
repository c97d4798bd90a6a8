package pipeline

import (
	"github.com/couchcryptid/weather-ingest/internal/domain"
	"github.com/couchcryptid/weather-ingest/internal/nws"
)

// Shape names, also used as metric label values and CLI selectors.
const (
	ShapeQuantitative = "quantitative"
	ShapeDaily        = "daily"
	ShapeHourly       = "hourly"
	ShapeObservation  = "observation"
)

// Shape bundles the behavior that varies per request shape: URL construction,
// normalization, optional timestamp localization, and the sink collection.
// The ingestion loop is written once and parameterized by a Shape value.
type Shape struct {
	Name       string
	Collection string

	// BuildURL constructs the endpoint URL for a task.
	BuildURL func(t Task) string

	// Normalize converts a 200 response body into a persistable record.
	// tzName is the task's resolved timezone, for shapes that embed it.
	Normalize func(body []byte, t Task, tzName string) (domain.Record, error)

	// Localize rewrites the record's timestamps into the resolved timezone.
	// Nil for shapes whose times stay in the provider's form.
	Localize func(rec domain.Record, tzName string)
}

// Task is one unit of ingestion work: one shape for one registry entry.
// Grid shapes carry a Location; the observation shape carries a Station.
type Task struct {
	Shape     Shape
	Location  domain.Location
	Station   domain.Station
	isStation bool
}

// Coordinates returns the task's geographic point for timezone resolution.
// Station tasks have no registered coordinates; their timestamps are stored
// as reported.
func (t Task) Coordinates() (lat, lon float64, ok bool) {
	if t.isStation {
		return 0, 0, false
	}
	return t.Location.Latitude, t.Location.Longitude, true
}

// DisplayName returns the name stamped onto the enriched record.
func (t Task) DisplayName() string {
	if t.isStation {
		return t.Station.DisplayName()
	}
	return t.Location.Name
}

// Ref identifies the task's registry entry in diagnostics: the grid
// reference for grid shapes, the station id for observations.
func (t Task) Ref() string {
	if t.isStation {
		return t.Station.ID
	}
	return t.Location.GridRef()
}

// GridTasks builds one task per registry location for a grid-based shape.
func GridTasks(shape Shape, locations []domain.Location) []Task {
	tasks := make([]Task, 0, len(locations))
	for _, loc := range locations {
		tasks = append(tasks, Task{Shape: shape, Location: loc})
	}
	return tasks
}

// StationTasks builds one task per station for the observation shape.
func StationTasks(shape Shape, stations []domain.Station) []Task {
	tasks := make([]Task, 0, len(stations))
	for _, st := range stations {
		tasks = append(tasks, Task{Shape: shape, Station: st, isStation: true})
	}
	return tasks
}

// QuantitativeShape returns the raw gridpoint shape bound to the client.
// The record keeps validTime intervals in provider form and stores the
// resolved timezone alongside them, so no Localize step is attached.
func QuantitativeShape(c *nws.Client) Shape {
	return Shape{
		Name:       ShapeQuantitative,
		Collection: "quantitativeForecasts",
		BuildURL:   func(t Task) string { return c.QuantitativeURL(t.Location) },
		Normalize: func(body []byte, _ Task, tzName string) (domain.Record, error) {
			return domain.NormalizeQuantitative(body, tzName)
		},
	}
}

// DailyShape returns the daily forecast shape bound to the client.
func DailyShape(c *nws.Client) Shape {
	return Shape{
		Name:       ShapeDaily,
		Collection: "daily_forecasts",
		BuildURL:   func(t Task) string { return c.DailyForecastURL(t.Location) },
		Normalize: func(body []byte, _ Task, _ string) (domain.Record, error) {
			return domain.NormalizeDaily(body)
		},
		Localize: func(rec domain.Record, tzName string) {
			rec.(*domain.DailyForecast).Localize(tzName)
		},
	}
}

// HourlyShape returns the hourly forecast shape bound to the client.
func HourlyShape(c *nws.Client) Shape {
	return Shape{
		Name:       ShapeHourly,
		Collection: "Hourlyforecasts",
		BuildURL:   func(t Task) string { return c.HourlyForecastURL(t.Location) },
		Normalize: func(body []byte, _ Task, _ string) (domain.Record, error) {
			return domain.NormalizeHourly(body)
		},
		Localize: func(rec domain.Record, tzName string) {
			rec.(*domain.HourlyForecast).Localize(tzName)
		},
	}
}

// ObservationShape returns the latest-observation shape bound to the client.
// Observation timestamps are stored as the station reports them.
func ObservationShape(c *nws.Client) Shape {
	return Shape{
		Name:       ShapeObservation,
		Collection: "observations",
		BuildURL:   func(t Task) string { return c.ObservationURL(t.Station) },
		Normalize: func(body []byte, t Task, _ string) (domain.Record, error) {
			return domain.NormalizeObservation(body, t.Station.ID)
		},
	}
}
