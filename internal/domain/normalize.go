package domain

import (
	"encoding/json"
	"fmt"
)

// Raw api.weather.gov response shapes. Every endpoint wraps its payload in a
// "properties" object; quantities use {value, unitCode} wrappers where value
// may be JSON null.

type gridpointResponse struct {
	Properties gridpointProperties `json:"properties"`
}

type gridpointProperties struct {
	UpdateTime                string         `json:"updateTime"`
	ValidTimes                string         `json:"validTimes"`
	SnowfallAmount            gridpointLayer `json:"snowfallAmount"`
	IceAccumulation           gridpointLayer `json:"iceAccumulation"`
	QuantitativePrecipitation gridpointLayer `json:"quantitativePrecipitation"`
	SkyCover                  gridpointLayer `json:"skyCover"`
}

type gridpointLayer struct {
	UOM    string           `json:"uom"`
	Values []gridpointValue `json:"values"`
}

type gridpointValue struct {
	ValidTime string   `json:"validTime"`
	Value     *float64 `json:"value"`
}

type forecastResponse struct {
	Properties forecastProperties `json:"properties"`
}

type forecastProperties struct {
	UpdateTime  string           `json:"updateTime"`
	GeneratedAt string           `json:"generatedAt"`
	Periods     []forecastPeriod `json:"periods"`
}

type forecastPeriod struct {
	StartTime                  string        `json:"startTime"`
	EndTime                    string        `json:"endTime"`
	IsDaytime                  bool          `json:"isDaytime"`
	Temperature                float64       `json:"temperature"`
	TemperatureUnit            string        `json:"temperatureUnit"`
	ProbabilityOfPrecipitation wrappedValue  `json:"probabilityOfPrecipitation"`
	Dewpoint                   *wrappedValue `json:"dewpoint"`
	RelativeHumidity           *wrappedValue `json:"relativeHumidity"`
	WindSpeed                  string        `json:"windSpeed"`
	WindDirection              string        `json:"windDirection"`
	ShortForecast              string        `json:"shortForecast"`
}

// wrappedValue is the NWS {value, unitCode} quantity wrapper.
type wrappedValue struct {
	Value    *float64 `json:"value"`
	UnitCode string   `json:"unitCode"`
}

type observationResponse struct {
	Properties observationProperties `json:"properties"`
}

type observationProperties struct {
	Type            string `json:"@type"`
	Timestamp       string `json:"timestamp"`
	TextDescription string `json:"textDescription"`

	Temperature               *wrappedValue `json:"temperature"`
	Dewpoint                  *wrappedValue `json:"dewpoint"`
	WindDirection             *wrappedValue `json:"windDirection"`
	WindSpeed                 *wrappedValue `json:"windSpeed"`
	WindGust                  *wrappedValue `json:"windGust"`
	BarometricPressure        *wrappedValue `json:"barometricPressure"`
	SeaLevelPressure          *wrappedValue `json:"seaLevelPressure"`
	Visibility                *wrappedValue `json:"visibility"`
	MaxTemperatureLast24Hours *wrappedValue `json:"maxTemperatureLast24Hours"`
	MinTemperatureLast24Hours *wrappedValue `json:"minTemperatureLast24Hours"`
	PrecipitationLast3Hours   *wrappedValue `json:"precipitationLast3Hours"`
	RelativeHumidity          *wrappedValue `json:"relativeHumidity"`
	WindChill                 *wrappedValue `json:"windChill"`
	HeatIndex                 *wrappedValue `json:"heatIndex"`
}

// NormalizeQuantitative flattens a raw gridpoint response into a
// QuantitativeForecast. The layer-level unit of measure is copied onto every
// entry of that layer's sequence. tzName records the zone the location
// resolves to; the interval strings themselves are not localized.
func NormalizeQuantitative(body []byte, tzName string) (*QuantitativeForecast, error) {
	var resp gridpointResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse gridpoint response: %w", err)
	}

	p := resp.Properties
	return &QuantitativeForecast{
		UpdateTime:                p.UpdateTime,
		ValidTimes:                p.ValidTimes,
		Timezone:                  tzName,
		SnowfallAmount:            flattenLayer(p.SnowfallAmount),
		IceAccumulation:           flattenLayer(p.IceAccumulation),
		QuantitativePrecipitation: flattenLayer(p.QuantitativePrecipitation),
		SkyCover:                  flattenLayer(p.SkyCover),
	}, nil
}

// flattenLayer maps a gridpoint layer's values into MeasurementElements,
// attaching the layer unit to each. A missing layer yields an empty,
// non-nil slice.
func flattenLayer(layer gridpointLayer) []MeasurementElement {
	elements := make([]MeasurementElement, 0, len(layer.Values))
	for _, v := range layer.Values {
		elements = append(elements, MeasurementElement{
			ValidTime: v.ValidTime,
			Value:     v.Value,
			UOM:       layer.UOM,
		})
	}
	return elements
}

// NormalizeDaily converts a /forecast response into a DailyForecast.
// Daily periods carry no end time, dewpoint, or relative humidity.
func NormalizeDaily(body []byte) (*DailyForecast, error) {
	var resp forecastResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse daily forecast response: %w", err)
	}

	p := resp.Properties
	periods := make([]ForecastPeriod, 0, len(p.Periods))
	for _, period := range p.Periods {
		periods = append(periods, ForecastPeriod{
			StartTime:                period.StartTime,
			IsDaytime:                period.IsDaytime,
			Temperature:              period.Temperature,
			TemperatureUnit:          period.TemperatureUnit,
			ProbOfPrecipitationValue: period.ProbabilityOfPrecipitation.Value,
			ProbOfPrecipitationUnit:  period.ProbabilityOfPrecipitation.UnitCode,
			WindSpeed:                period.WindSpeed,
			WindDirection:            period.WindDirection,
			Forecast:                 period.ShortForecast,
		})
	}

	return &DailyForecast{
		UpdateTime:  p.UpdateTime,
		GeneratedAt: p.GeneratedAt,
		Forecasts:   periods,
	}, nil
}

// NormalizeHourly converts a /forecast/hourly response into an
// HourlyForecast: the daily fields plus end time, dewpoint, and relative
// humidity.
func NormalizeHourly(body []byte) (*HourlyForecast, error) {
	var resp forecastResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse hourly forecast response: %w", err)
	}

	p := resp.Properties
	periods := make([]ForecastPeriod, 0, len(p.Periods))
	for _, period := range p.Periods {
		fp := ForecastPeriod{
			StartTime:                period.StartTime,
			EndTime:                  period.EndTime,
			IsDaytime:                period.IsDaytime,
			Temperature:              period.Temperature,
			TemperatureUnit:          period.TemperatureUnit,
			ProbOfPrecipitationValue: period.ProbabilityOfPrecipitation.Value,
			ProbOfPrecipitationUnit:  period.ProbabilityOfPrecipitation.UnitCode,
			WindSpeed:                period.WindSpeed,
			WindDirection:            period.WindDirection,
			Forecast:                 period.ShortForecast,
		}
		if period.Dewpoint != nil {
			fp.DewpointValue = period.Dewpoint.Value
			fp.DewpointUnit = period.Dewpoint.UnitCode
		}
		if period.RelativeHumidity != nil {
			fp.RelativeHumidityValue = period.RelativeHumidity.Value
			fp.RelativeHumidityUnit = period.RelativeHumidity.UnitCode
		}
		periods = append(periods, fp)
	}

	return &HourlyForecast{
		UpdateTime:  p.UpdateTime,
		GeneratedAt: p.GeneratedAt,
		Forecasts:   periods,
	}, nil
}

// NormalizeObservation maps a station's latest-observation properties into an
// ObservationRecord. Every measurement is looked up independently so a
// missing instrument degrades to nil instead of failing the record.
func NormalizeObservation(body []byte, stationID string) (*ObservationRecord, error) {
	var resp observationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse observation response: %w", err)
	}

	p := resp.Properties
	rec := &ObservationRecord{
		StationID:       stationID,
		Type:            p.Type,
		Timestamp:       p.Timestamp,
		TextDescription: p.TextDescription,
	}

	rec.TemperatureValue, rec.TemperatureUnit = splitWrapped(p.Temperature)
	rec.DewpointValue, rec.DewpointUnit = splitWrapped(p.Dewpoint)
	rec.WindDirectionValue, rec.WindDirectionUnit = splitWrapped(p.WindDirection)
	rec.WindSpeedValue, rec.WindSpeedUnit = splitWrapped(p.WindSpeed)
	rec.WindGustValue, rec.WindGustUnit = splitWrapped(p.WindGust)
	rec.BarometricPressureValue, rec.BarometricPressureUnit = splitWrapped(p.BarometricPressure)
	rec.SeaLevelPressureValue, rec.SeaLevelPressureUnit = splitWrapped(p.SeaLevelPressure)
	rec.VisibilityValue, rec.VisibilityUnit = splitWrapped(p.Visibility)
	rec.MaxTemperatureLast24HoursValue, rec.MaxTemperatureLast24HoursUnit = splitWrapped(p.MaxTemperatureLast24Hours)
	rec.MinTemperatureLast24HoursValue, rec.MinTemperatureLast24HoursUnit = splitWrapped(p.MinTemperatureLast24Hours)
	rec.PrecipitationLast3HoursValue, rec.PrecipitationLast3HoursUnit = splitWrapped(p.PrecipitationLast3Hours)
	rec.RelativeHumidityValue, rec.RelativeHumidityUnit = splitWrapped(p.RelativeHumidity)
	rec.WindChillValue, rec.WindChillUnit = splitWrapped(p.WindChill)
	rec.HeatIndexValue, rec.HeatIndexUnit = splitWrapped(p.HeatIndex)

	return rec, nil
}

// splitWrapped unpacks a nullable {value, unitCode} wrapper into its parts.
func splitWrapped(w *wrappedValue) (*float64, *string) {
	if w == nil {
		return nil, nil
	}
	var unit *string
	if w.UnitCode != "" {
		unit = &w.UnitCode
	}
	return w.Value, unit
}
