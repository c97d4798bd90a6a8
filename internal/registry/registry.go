// Package registry loads the location and station registries from CSV files.
// The registries are static lookup tables: an ordered list of forecast grid
// cells with coordinates and display names, and a list of observation
// stations.
package registry

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/weather-ingest/internal/domain"
)

// LoadLocations reads the grid-location registry. Expected header:
//
//	gridId,gridX,gridY,latitude,longitude,name
//
// Column order is taken from the header, so extra columns are ignored.
// Rows that fail to parse are skipped with a warning; registry order is
// preserved.
func LoadLocations(path string, logger *slog.Logger) ([]domain.Location, error) {
	rows, colIdx, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	required := []string{"gridId", "gridX", "gridY", "latitude", "longitude", "name"}
	for _, col := range required {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("location registry %s: missing column %q", path, col)
		}
	}

	locations := make([]domain.Location, 0, len(rows))
	for i, row := range rows {
		gridX, errX := strconv.Atoi(strings.TrimSpace(get(row, colIdx, "gridX")))
		gridY, errY := strconv.Atoi(strings.TrimSpace(get(row, colIdx, "gridY")))
		lat, errLat := strconv.ParseFloat(strings.TrimSpace(get(row, colIdx, "latitude")), 64)
		lon, errLon := strconv.ParseFloat(strings.TrimSpace(get(row, colIdx, "longitude")), 64)

		if errX != nil || errY != nil || errLat != nil || errLon != nil {
			logger.Warn("skipping malformed registry row", "file", path, "row", i+2)
			continue
		}

		locations = append(locations, domain.Location{
			GridID:    strings.TrimSpace(get(row, colIdx, "gridId")),
			GridX:     gridX,
			GridY:     gridY,
			Latitude:  lat,
			Longitude: lon,
			Name:      strings.TrimSpace(get(row, colIdx, "name")),
		})
	}
	return locations, nil
}

// LoadStations reads the station registry. Expected header:
//
//	stationId[,name]
//
// The name column is optional; when absent the station id doubles as the
// display name.
func LoadStations(path string, logger *slog.Logger) ([]domain.Station, error) {
	rows, colIdx, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	if _, ok := colIdx["stationId"]; !ok {
		return nil, fmt.Errorf("station registry %s: missing column %q", path, "stationId")
	}

	stations := make([]domain.Station, 0, len(rows))
	for i, row := range rows {
		id := strings.TrimSpace(get(row, colIdx, "stationId"))
		if id == "" {
			logger.Warn("skipping station row with empty id", "file", path, "row", i+2)
			continue
		}
		stations = append(stations, domain.Station{
			ID:   id,
			Name: strings.TrimSpace(get(row, colIdx, "name")),
		})
	}
	return stations, nil
}

// readCSV loads a headered CSV and returns its data rows plus a column index.
func readCSV(path string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open registry: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read registry %s: %w", path, err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("registry %s: empty file", path)
	}

	colIdx := make(map[string]int, len(all[0]))
	for i, h := range all[0] {
		colIdx[strings.TrimSpace(h)] = i
	}
	return all[1:], colIdx, nil
}

func get(row []string, colIdx map[string]int, col string) string {
	i, ok := colIdx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
