package domain

import "time"

// IngestionMeta carries the metadata attached to every record before it is
// handed to the sink: the source location's display name and the ingestion
// timestamp. It is embedded inline in each record type.
type IngestionMeta struct {
	City       string    `json:"city" bson:"city"`
	InsertedAt time.Time `json:"insertedAt" bson:"insertedAt"`
}

// Enrich stamps the record with the source city and the current clock time.
func (m *IngestionMeta) Enrich(city string) {
	m.City = city
	m.InsertedAt = clock.Now()
}

// Meta returns the ingestion metadata, satisfying [Record].
func (m *IngestionMeta) Meta() IngestionMeta {
	return *m
}

// Record is any normalized record ready for enrichment and persistence.
// All record types embed IngestionMeta, so their pointers satisfy this.
type Record interface {
	Enrich(city string)
	Meta() IngestionMeta
}

// MeasurementElement is a single entry of a quantitative gridpoint layer:
// an ISO-8601 interval, a possibly-null numeric value, and the unit of
// measure copied down from the layer level.
type MeasurementElement struct {
	ValidTime string   `json:"validTime" bson:"validTime"`
	Value     *float64 `json:"value" bson:"value"`
	UOM       string   `json:"uom" bson:"uom"`
}

// QuantitativeForecast is the normalized form of a raw gridpoint response.
// Element slices are always non-nil; a layer the provider omitted is an
// empty slice. ValidTime intervals stay in the provider's form (see package
// doc), so Timezone records which zone they would localize into.
type QuantitativeForecast struct {
	IngestionMeta `bson:",inline"`

	UpdateTime string `json:"updateTime" bson:"updateTime"`
	ValidTimes string `json:"validTimes" bson:"validTimes"`
	Timezone   string `json:"timeZone" bson:"timeZone"`

	SnowfallAmount            []MeasurementElement `json:"snowfallAmount" bson:"snowfallAmount"`
	IceAccumulation           []MeasurementElement `json:"iceAccumulation" bson:"iceAccumulation"`
	QuantitativePrecipitation []MeasurementElement `json:"quantitativePrecipitation" bson:"quantitativePrecipitation"`
	SkyCover                  []MeasurementElement `json:"skyCover" bson:"skyCover"`
}

// ForecastPeriod is one discrete forecast window. Daily periods carry no
// EndTime, Dewpoint, or RelativeHumidity; hourly periods carry all three.
type ForecastPeriod struct {
	StartTime string `json:"startTime" bson:"startTime"`
	EndTime   string `json:"endTime,omitempty" bson:"endTime,omitempty"`
	IsDaytime bool   `json:"isDaytime" bson:"isDaytime"`

	Temperature     float64 `json:"temperature" bson:"temperature"`
	TemperatureUnit string  `json:"temperatureUnit" bson:"temperatureUnit"`

	ProbOfPrecipitationValue *float64 `json:"probOfPrecipitationValue" bson:"probOfPrecipitationValue"`
	ProbOfPrecipitationUnit  string   `json:"probOfPrecipitationUnit" bson:"probOfPrecipitationUnit"`

	DewpointValue         *float64 `json:"dewpointValue,omitempty" bson:"dewpointValue,omitempty"`
	DewpointUnit          string   `json:"dewpointUnit,omitempty" bson:"dewpointUnit,omitempty"`
	RelativeHumidityValue *float64 `json:"relativeHumidityValue,omitempty" bson:"relativeHumidityValue,omitempty"`
	RelativeHumidityUnit  string   `json:"relativeHumidityUnit,omitempty" bson:"relativeHumidityUnit,omitempty"`

	WindSpeed     string `json:"windSpeed" bson:"windSpeed"`
	WindDirection string `json:"windDirection" bson:"windDirection"`
	Forecast      string `json:"forecast" bson:"forecast"`
}

// DailyForecast is the normalized form of a gridpoint /forecast response.
type DailyForecast struct {
	IngestionMeta `bson:",inline"`

	UpdateTime  string           `json:"updateTime" bson:"updateTime"`
	GeneratedAt string           `json:"generatedAt" bson:"generatedAt"`
	Forecasts   []ForecastPeriod `json:"forecasts" bson:"forecasts"`
}

// HourlyForecast is the normalized form of a gridpoint /forecast/hourly
// response. Same envelope as DailyForecast; the periods carry the extra
// hourly-only fields.
type HourlyForecast struct {
	IngestionMeta `bson:",inline"`

	UpdateTime  string           `json:"updateTime" bson:"updateTime"`
	GeneratedAt string           `json:"generatedAt" bson:"generatedAt"`
	Forecasts   []ForecastPeriod `json:"forecasts" bson:"forecasts"`
}

// ObservationRecord is the normalized form of a station's latest observation.
// Every measurement pair is independently nullable: a station that lacks an
// instrument reports neither value nor unit.
type ObservationRecord struct {
	IngestionMeta `bson:",inline"`

	StationID       string `json:"id" bson:"id"`
	Type            string `json:"type" bson:"type"`
	Timestamp       string `json:"timestamp" bson:"timestamp"`
	TextDescription string `json:"textDescription" bson:"textDescription"`

	TemperatureValue *float64 `json:"temperatureValue" bson:"temperatureValue"`
	TemperatureUnit  *string  `json:"temperatureUnit" bson:"temperatureUnit"`

	DewpointValue *float64 `json:"dewpointValue" bson:"dewpointValue"`
	DewpointUnit  *string  `json:"dewpointUnit" bson:"dewpointUnit"`

	WindDirectionValue *float64 `json:"windDirectionValue" bson:"windDirectionValue"`
	WindDirectionUnit  *string  `json:"windDirectionUnit" bson:"windDirectionUnit"`

	WindSpeedValue *float64 `json:"windSpeedValue" bson:"windSpeedValue"`
	WindSpeedUnit  *string  `json:"windSpeedUnit" bson:"windSpeedUnit"`

	WindGustValue *float64 `json:"windGustValue" bson:"windGustValue"`
	WindGustUnit  *string  `json:"windGustUnit" bson:"windGustUnit"`

	BarometricPressureValue *float64 `json:"barometricPressureValue" bson:"barometricPressureValue"`
	BarometricPressureUnit  *string  `json:"barometricPressureUnit" bson:"barometricPressureUnit"`

	SeaLevelPressureValue *float64 `json:"seaLevelPressureValue" bson:"seaLevelPressureValue"`
	SeaLevelPressureUnit  *string  `json:"seaLevelPressureUnit" bson:"seaLevelPressureUnit"`

	VisibilityValue *float64 `json:"visibilityValue" bson:"visibilityValue"`
	VisibilityUnit  *string  `json:"visibilityUnit" bson:"visibilityUnit"`

	MaxTemperatureLast24HoursValue *float64 `json:"maxTemperatureLast24HoursValue" bson:"maxTemperatureLast24HoursValue"`
	MaxTemperatureLast24HoursUnit  *string  `json:"maxTemperatureLast24HoursUnit" bson:"maxTemperatureLast24HoursUnit"`

	MinTemperatureLast24HoursValue *float64 `json:"minTemperatureLast24HoursValue" bson:"minTemperatureLast24HoursValue"`
	MinTemperatureLast24HoursUnit  *string  `json:"minTemperatureLast24HoursUnit" bson:"minTemperatureLast24HoursUnit"`

	PrecipitationLast3HoursValue *float64 `json:"precipitationLast3HoursValue" bson:"precipitationLast3HoursValue"`
	PrecipitationLast3HoursUnit  *string  `json:"precipitationLast3HoursUnit" bson:"precipitationLast3HoursUnit"`

	RelativeHumidityValue *float64 `json:"relativeHumidityValue" bson:"relativeHumidityValue"`
	RelativeHumidityUnit  *string  `json:"relativeHumidityUnit" bson:"relativeHumidityUnit"`

	WindChillValue *float64 `json:"windChillValue" bson:"windChillValue"`
	WindChillUnit  *string  `json:"windChillUnit" bson:"windChillUnit"`

	HeatIndexValue *float64 `json:"heatIndexValue" bson:"heatIndexValue"`
	HeatIndexUnit  *string  `json:"heatIndexUnit" bson:"heatIndexUnit"`
}
