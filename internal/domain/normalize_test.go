package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quantitativeBody = `{
	"properties": {
		"updateTime": "2024-04-26T12:00:00+00:00",
		"validTimes": "2024-04-26T06:00:00+00:00/P7DT19H",
		"snowfallAmount": {
			"uom": "wmoUnit:mm",
			"values": [
				{"validTime": "2024-04-26T18:00:00+00:00/PT6H", "value": 2.5},
				{"validTime": "2024-04-27T00:00:00+00:00/PT6H", "value": null}
			]
		},
		"skyCover": {
			"uom": "wmoUnit:percent",
			"values": [
				{"validTime": "2024-04-26T18:00:00+00:00/PT1H", "value": 80}
			]
		}
	}
}`

func TestNormalizeQuantitative(t *testing.T) {
	t.Run("copies layer unit onto every element", func(t *testing.T) {
		rec, err := NormalizeQuantitative([]byte(quantitativeBody), "America/New_York")
		require.NoError(t, err)

		assert.Equal(t, "2024-04-26T12:00:00+00:00", rec.UpdateTime)
		assert.Equal(t, "2024-04-26T06:00:00+00:00/P7DT19H", rec.ValidTimes)
		assert.Equal(t, "America/New_York", rec.Timezone)

		require.Len(t, rec.SnowfallAmount, 2)
		assert.Equal(t, "wmoUnit:mm", rec.SnowfallAmount[0].UOM)
		assert.Equal(t, "wmoUnit:mm", rec.SnowfallAmount[1].UOM)
		require.NotNil(t, rec.SnowfallAmount[0].Value)
		assert.Equal(t, 2.5, *rec.SnowfallAmount[0].Value)
		assert.Nil(t, rec.SnowfallAmount[1].Value)

		require.Len(t, rec.SkyCover, 1)
		assert.Equal(t, "wmoUnit:percent", rec.SkyCover[0].UOM)
	})

	t.Run("missing layer yields empty non-nil sequence", func(t *testing.T) {
		rec, err := NormalizeQuantitative([]byte(quantitativeBody), "UTC")
		require.NoError(t, err)

		assert.NotNil(t, rec.IceAccumulation)
		assert.Empty(t, rec.IceAccumulation)
		assert.NotNil(t, rec.QuantitativePrecipitation)
		assert.Empty(t, rec.QuantitativePrecipitation)
	})

	t.Run("interval strings pass through unmodified", func(t *testing.T) {
		rec, err := NormalizeQuantitative([]byte(quantitativeBody), "America/New_York")
		require.NoError(t, err)

		assert.Equal(t, "2024-04-26T18:00:00+00:00/PT6H", rec.SnowfallAmount[0].ValidTime)
	})

	t.Run("idempotent over the same body", func(t *testing.T) {
		rec1, err := NormalizeQuantitative([]byte(quantitativeBody), "America/New_York")
		require.NoError(t, err)
		rec2, err := NormalizeQuantitative([]byte(quantitativeBody), "America/New_York")
		require.NoError(t, err)

		assert.Equal(t, rec1, rec2)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := NormalizeQuantitative([]byte("{not json"), "UTC")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse gridpoint response")
	})
}

const dailyBody = `{
	"properties": {
		"updateTime": "2024-04-26T12:00:00+00:00",
		"generatedAt": "2024-04-26T13:30:00+00:00",
		"periods": [
			{
				"startTime": "2024-04-26T18:00:00+00:00",
				"isDaytime": true,
				"temperature": 41,
				"temperatureUnit": "F",
				"probabilityOfPrecipitation": {"unitCode": "wmoUnit:percent", "value": 20},
				"windSpeed": "10 mph",
				"windDirection": "NW",
				"shortForecast": "Partly Cloudy"
			},
			{
				"startTime": "2024-04-27T06:00:00+00:00",
				"isDaytime": false,
				"temperature": 39,
				"temperatureUnit": "F",
				"probabilityOfPrecipitation": {"unitCode": "wmoUnit:percent", "value": null},
				"windSpeed": "5 to 10 mph",
				"windDirection": "N",
				"shortForecast": "Mostly Clear"
			}
		]
	}
}`

func TestNormalizeDaily(t *testing.T) {
	rec, err := NormalizeDaily([]byte(dailyBody))
	require.NoError(t, err)

	assert.Equal(t, "2024-04-26T12:00:00+00:00", rec.UpdateTime)
	assert.Equal(t, "2024-04-26T13:30:00+00:00", rec.GeneratedAt)
	require.Len(t, rec.Forecasts, 2)

	first := rec.Forecasts[0]
	assert.True(t, first.IsDaytime)
	assert.Equal(t, 41.0, first.Temperature)
	assert.Equal(t, "F", first.TemperatureUnit)
	require.NotNil(t, first.ProbOfPrecipitationValue)
	assert.Equal(t, 20.0, *first.ProbOfPrecipitationValue)
	assert.Equal(t, "wmoUnit:percent", first.ProbOfPrecipitationUnit)
	assert.Equal(t, "10 mph", first.WindSpeed)
	assert.Equal(t, "NW", first.WindDirection)
	assert.Equal(t, "Partly Cloudy", first.Forecast)

	// Daily periods never carry an end time or the hourly-only fields.
	assert.Empty(t, first.EndTime)
	assert.Nil(t, first.DewpointValue)
	assert.Nil(t, first.RelativeHumidityValue)

	// Null precipitation probability survives as nil, not zero.
	assert.Nil(t, rec.Forecasts[1].ProbOfPrecipitationValue)
}

const hourlyBody = `{
	"properties": {
		"updateTime": "2024-04-26T12:00:00+00:00",
		"generatedAt": "2024-04-26T13:30:00+00:00",
		"periods": [
			{
				"startTime": "2024-04-26T18:00:00+00:00",
				"endTime": "2024-04-26T19:00:00+00:00",
				"isDaytime": true,
				"temperature": 55,
				"temperatureUnit": "F",
				"probabilityOfPrecipitation": {"unitCode": "wmoUnit:percent", "value": 30},
				"dewpoint": {"unitCode": "wmoUnit:degC", "value": 7.2},
				"relativeHumidity": {"unitCode": "wmoUnit:percent", "value": 65},
				"windSpeed": "15 mph",
				"windDirection": "SW",
				"shortForecast": "Chance Light Rain"
			},
			{
				"startTime": "2024-04-26T19:00:00+00:00",
				"endTime": "2024-04-26T20:00:00+00:00",
				"isDaytime": true,
				"temperature": 54,
				"temperatureUnit": "F",
				"probabilityOfPrecipitation": {"unitCode": "wmoUnit:percent", "value": 35},
				"windSpeed": "15 mph",
				"windDirection": "SW",
				"shortForecast": "Chance Light Rain"
			}
		]
	}
}`

func TestNormalizeHourly(t *testing.T) {
	rec, err := NormalizeHourly([]byte(hourlyBody))
	require.NoError(t, err)
	require.Len(t, rec.Forecasts, 2)

	first := rec.Forecasts[0]
	assert.Equal(t, "2024-04-26T19:00:00+00:00", first.EndTime)
	require.NotNil(t, first.DewpointValue)
	assert.Equal(t, 7.2, *first.DewpointValue)
	assert.Equal(t, "wmoUnit:degC", first.DewpointUnit)
	require.NotNil(t, first.RelativeHumidityValue)
	assert.Equal(t, 65.0, *first.RelativeHumidityValue)

	// A period without a dewpoint object degrades to nil fields.
	second := rec.Forecasts[1]
	assert.Nil(t, second.DewpointValue)
	assert.Empty(t, second.DewpointUnit)
	assert.Nil(t, second.RelativeHumidityValue)
}

const observationBody = `{
	"properties": {
		"@type": "wx:ObservationStation",
		"timestamp": "2024-04-26T14:51:00+00:00",
		"textDescription": "Cloudy",
		"temperature": {"unitCode": "wmoUnit:degC", "value": 11.1},
		"dewpoint": {"unitCode": "wmoUnit:degC", "value": 8.3},
		"windDirection": {"unitCode": "wmoUnit:degree_(angle)", "value": 50},
		"windSpeed": {"unitCode": "wmoUnit:km_h-1", "value": 16.56},
		"windGust": {"unitCode": "wmoUnit:km_h-1", "value": null},
		"barometricPressure": {"unitCode": "wmoUnit:Pa", "value": 101830},
		"seaLevelPressure": {"unitCode": "wmoUnit:Pa", "value": 101860},
		"visibility": {"unitCode": "wmoUnit:m", "value": 16090},
		"relativeHumidity": {"unitCode": "wmoUnit:percent", "value": 82.5}
	}
}`

func TestNormalizeObservation(t *testing.T) {
	rec, err := NormalizeObservation([]byte(observationBody), "KNYC")
	require.NoError(t, err)

	assert.Equal(t, "KNYC", rec.StationID)
	assert.Equal(t, "wx:ObservationStation", rec.Type)
	assert.Equal(t, "2024-04-26T14:51:00+00:00", rec.Timestamp)
	assert.Equal(t, "Cloudy", rec.TextDescription)

	require.NotNil(t, rec.TemperatureValue)
	assert.Equal(t, 11.1, *rec.TemperatureValue)
	require.NotNil(t, rec.TemperatureUnit)
	assert.Equal(t, "wmoUnit:degC", *rec.TemperatureUnit)

	// Present wrapper with null value keeps the unit but not the value.
	assert.Nil(t, rec.WindGustValue)
	require.NotNil(t, rec.WindGustUnit)
	assert.Equal(t, "wmoUnit:km_h-1", *rec.WindGustUnit)

	// Fields the station omitted entirely degrade to nil pairs.
	assert.Nil(t, rec.WindChillValue)
	assert.Nil(t, rec.WindChillUnit)
	assert.Nil(t, rec.HeatIndexValue)
	assert.Nil(t, rec.HeatIndexUnit)
	assert.Nil(t, rec.PrecipitationLast3HoursValue)
	assert.Nil(t, rec.MaxTemperatureLast24HoursValue)
}

func TestNormalizeObservation_EmptyProperties(t *testing.T) {
	rec, err := NormalizeObservation([]byte(`{"properties":{}}`), "KXYZ")
	require.NoError(t, err)

	assert.Equal(t, "KXYZ", rec.StationID)
	assert.Empty(t, rec.TextDescription)
	assert.Nil(t, rec.TemperatureValue)
	assert.Nil(t, rec.TemperatureUnit)
}
