package domain

import "time"

// LocalizeTimestamp rewrites an RFC3339 timestamp into the given IANA
// timezone, preserving the instant. Unparsable input or an unknown zone
// returns the value unchanged; localization is best-effort, never fatal.
func LocalizeTimestamp(value, tzName string) string {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return value
	}
	return t.In(loc).Format(time.RFC3339)
}

// Localize rewrites every period start time into the given timezone.
func (f *DailyForecast) Localize(tzName string) {
	for i := range f.Forecasts {
		f.Forecasts[i].StartTime = LocalizeTimestamp(f.Forecasts[i].StartTime, tzName)
	}
}

// Localize rewrites every period start and end time into the given timezone.
func (f *HourlyForecast) Localize(tzName string) {
	for i := range f.Forecasts {
		f.Forecasts[i].StartTime = LocalizeTimestamp(f.Forecasts[i].StartTime, tzName)
		f.Forecasts[i].EndTime = LocalizeTimestamp(f.Forecasts[i].EndTime, tzName)
	}
}
