// Command ingest runs one ingestion pass over the location and station
// registries: for each selected request shape it fetches from
// api.weather.gov, normalizes, localizes, and persists one record per
// registry entry, isolating failures per location.
//
// Usage:
//
//	ingest --locations data/locations.csv --stations data/stations.csv \
//	  --shapes quantitative,daily,hourly,observation
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	flag "github.com/spf13/pflag"

	httpadapter "github.com/couchcryptid/weather-ingest/internal/adapter/http"
	"github.com/couchcryptid/weather-ingest/internal/config"
	"github.com/couchcryptid/weather-ingest/internal/domain"
	"github.com/couchcryptid/weather-ingest/internal/nws"
	"github.com/couchcryptid/weather-ingest/internal/observability"
	"github.com/couchcryptid/weather-ingest/internal/pipeline"
	"github.com/couchcryptid/weather-ingest/internal/registry"
	kafkasink "github.com/couchcryptid/weather-ingest/internal/sink/kafka"
	mongosink "github.com/couchcryptid/weather-ingest/internal/sink/mongo"
	"github.com/couchcryptid/weather-ingest/internal/timezone"
)

func main() {
	locationsPath := flag.String("locations", "data/locations.csv", "grid location registry CSV")
	stationsPath := flag.String("stations", "data/stations.csv", "station registry CSV")
	shapesFlag := flag.StringSlice("shapes", []string{
		pipeline.ShapeQuantitative,
		pipeline.ShapeDaily,
		pipeline.ShapeHourly,
		pipeline.ShapeObservation,
	}, "request shapes to ingest")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	if err := run(cfg, logger, metrics, *locationsPath, *stationsPath, *shapesFlag); err != nil {
		logger.Error("ingestion run failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics, locationsPath, stationsPath string, shapeNames []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errlog, errlogCloser, err := observability.NewErrorLog(cfg.ErrorLogPath)
	if err != nil {
		return err
	}
	defer errlogCloser.Close()

	resolver, err := timezone.NewResolver()
	if err != nil {
		return err
	}
	cachedResolver := timezone.NewCachedResolver(resolver,
		func() { metrics.TimezoneCache.WithLabelValues("hit").Inc() },
		func() { metrics.TimezoneCache.WithLabelValues("miss").Inc() },
	)

	client := nws.NewClient(cfg.NWSBaseURL, cfg.NWSUserAgent, cfg.NWSTimeout, logger)

	sink, err := mongosink.NewSink(ctx, cfg.MongoURI, cfg.MongoDatabase, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := sink.Close(context.Background()); err != nil {
			logger.Error("mongodb close error", "error", err)
		}
	}()

	// Mirror publishing is feature-flagged via KAFKA_BROKERS / KAFKA_ENABLED.
	var mirror pipeline.Sink
	if cfg.KafkaEnabled {
		writer := kafkasink.NewWriter(cfg.KafkaBrokers, cfg.KafkaMirrorTopic, logger)
		defer func() {
			if err := writer.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()
		mirror = writer
		logger.Info("kafka mirror enabled", "topic", cfg.KafkaMirrorTopic)
	} else {
		logger.Info("kafka mirror disabled")
	}

	tasks, err := buildTasks(client, logger, locationsPath, stationsPath, shapeNames)
	if err != nil {
		return err
	}

	ingestor := pipeline.New(pipeline.Deps{
		Fetcher:  client,
		Timezone: cachedResolver,
		Sink:     sink,
		Mirror:   mirror,
		ErrorLog: errlog,
		Logger:   logger,
		Metrics:  metrics,
		Workers:  cfg.Workers,
	})

	srv := httpadapter.NewServer(cfg.HTTPAddr, ingestor, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
	}()

	summary := ingestor.Run(ctx, tasks)
	logger.Info("run complete",
		"processed", summary.Processed,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
	)
	return nil
}

// buildTasks loads the registries needed by the selected shapes and returns
// the tasks in shape order, preserving registry order within each shape.
func buildTasks(client *nws.Client, logger *slog.Logger, locationsPath, stationsPath string, shapeNames []string) ([]pipeline.Task, error) {
	shapes := make([]pipeline.Shape, 0, len(shapeNames))
	needLocations, needStations := false, false
	for _, name := range shapeNames {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case pipeline.ShapeQuantitative:
			shapes = append(shapes, pipeline.QuantitativeShape(client))
			needLocations = true
		case pipeline.ShapeDaily:
			shapes = append(shapes, pipeline.DailyShape(client))
			needLocations = true
		case pipeline.ShapeHourly:
			shapes = append(shapes, pipeline.HourlyShape(client))
			needLocations = true
		case pipeline.ShapeObservation:
			shapes = append(shapes, pipeline.ObservationShape(client))
			needStations = true
		default:
			return nil, fmt.Errorf("unknown shape %q", name)
		}
	}

	var locations []domain.Location
	if needLocations {
		var err error
		locations, err = registry.LoadLocations(locationsPath, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("location registry loaded", "path", locationsPath, "locations", len(locations))
	}
	var stations []domain.Station
	if needStations {
		var err error
		stations, err = registry.LoadStations(stationsPath, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("station registry loaded", "path", stationsPath, "stations", len(stations))
	}

	var tasks []pipeline.Task
	for _, shape := range shapes {
		if shape.Name == pipeline.ShapeObservation {
			tasks = append(tasks, pipeline.StationTasks(shape, stations)...)
			continue
		}
		tasks = append(tasks, pipeline.GridTasks(shape, locations)...)
	}
	return tasks, nil
}
