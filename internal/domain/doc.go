// Package domain models National Weather Service (NWS) forecast and
// observation data as served by api.weather.gov.
//
// # Data Source
//
// All data comes from the public NWS web API
// (https://www.weather.gov/documentation/services-web-api). Four endpoint
// shapes are ingested:
//
//	gridpoints/{gridId}/{gridX},{gridY}                  raw quantitative forecast
//	gridpoints/{gridId}/{gridX},{gridY}/forecast         daily forecast periods
//	gridpoints/{gridId}/{gridX},{gridY}/forecast/hourly  hourly forecast periods
//	stations/{stationId}/observations/latest             latest station observation
//
// Every response wraps its payload in a top-level "properties" object.
//
// # NWS Schema Conventions
//
// Quantitative gridpoint layers (snowfallAmount, iceAccumulation,
// quantitativePrecipitation, skyCover) carry their unit of measure once at
// the layer level ("uom") while the values appear in a nested "values" array
// of {validTime, value} pairs. Normalization copies the layer unit onto every
// entry so each MeasurementElement is self-describing. The "validTime" field
// is an ISO-8601 interval string ("2024-04-26T18:00:00+00:00/PT6H"), not an
// instant, and is stored verbatim. A layer missing from the response
// normalizes to an empty sequence, never an absent key.
//
// Forecast periods use {value, unitCode} wrappers for quantities such as
// probabilityOfPrecipitation, dewpoint, and relativeHumidity. The value may
// be JSON null, which survives normalization as a nil pointer rather than a
// zero. Daily periods never carry endTime, dewpoint, or relativeHumidity;
// hourly periods carry all three.
//
// Observation properties are a flat object of {value, unitCode} pairs.
// Stations routinely omit instruments they do not have (windChill, heatIndex,
// precipitationLast3Hours, ...), so every field is looked up independently
// and absence degrades to nil, never to a parse failure.
//
// # Timestamp Localization
//
// Daily and hourly period times arrive with a UTC offset and are rewritten
// into the originating location's IANA timezone before persistence.
// Quantitative validTime interval strings are left in the provider's form:
// an interval does not localize the same way an instant does.
//
// # Enrichment
//
// Every persisted record is stamped with the source location's display name
// ("city") and the ingestion time ("insertedAt") via [IngestionMeta.Enrich].
// The timestamp comes from a package-level clockwork clock so tests can
// freeze time with [SetClock].
package domain
