// Package pipeline drives the per-location ingestion loop: resolve timezone,
// build URL, fetch, normalize, localize, enrich, persist. Failures are
// isolated per task; one bad location never aborts the run.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/weather-ingest/internal/domain"
	"github.com/couchcryptid/weather-ingest/internal/nws"
	"github.com/couchcryptid/weather-ingest/internal/observability"
	"github.com/couchcryptid/weather-ingest/internal/timezone"
)

// Fetcher performs a single GET against an already-built URL.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Sink accepts one enriched record per call and appends it to the named
// collection. Implementations must tolerate concurrent calls.
type Sink interface {
	Persist(ctx context.Context, collection string, rec domain.Record) error
}

// Deps wires an Ingestor. Mirror and ErrorLog are optional.
type Deps struct {
	Fetcher  Fetcher
	Timezone timezone.Source
	Sink     Sink
	Mirror   Sink         // secondary publish; failures logged, never fatal
	ErrorLog *slog.Logger // durable failure log
	Logger   *slog.Logger
	Metrics  *observability.Metrics
	Workers  int
}

// Ingestor runs ingestion tasks through a bounded worker pool, isolating
// failure per task and reporting every outcome.
type Ingestor struct {
	fetcher Fetcher
	tz      timezone.Source
	sink    Sink
	mirror  Sink
	errlog  *slog.Logger
	logger  *slog.Logger
	metrics *observability.Metrics
	workers int
	ready   atomic.Bool
}

// New creates an Ingestor from its dependencies.
func New(deps Deps) *Ingestor {
	workers := deps.Workers
	if workers < 1 {
		workers = 1
	}
	return &Ingestor{
		fetcher: deps.Fetcher,
		tz:      deps.Timezone,
		sink:    deps.Sink,
		mirror:  deps.Mirror,
		errlog:  deps.ErrorLog,
		logger:  deps.Logger,
		metrics: deps.Metrics,
		workers: workers,
	}
}

// CheckReadiness returns nil once the run has persisted at least one record.
func (in *Ingestor) CheckReadiness(_ context.Context) error {
	if !in.ready.Load() {
		return errors.New("no records persisted yet")
	}
	return nil
}

// Run processes every task through the worker pool and reports the tally.
// Cancelling the context stops dispatching new tasks; in-flight tasks finish
// (or fail) cleanly, so a sink write is never left half done.
func (in *Ingestor) Run(ctx context.Context, tasks []Task) Summary {
	in.logger.Info("ingestion started", "tasks", len(tasks), "workers", in.workers)
	in.metrics.IngestRunning.Set(1)
	defer in.metrics.IngestRunning.Set(0)

	jobs := make(chan Task)
	outcomes := make(chan Outcome)

	var wg sync.WaitGroup
	for i := 0; i < in.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				outcomes <- in.process(ctx, t)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, t := range tasks {
			select {
			case <-ctx.Done():
				in.logger.Info("dispatch stopping", "reason", ctx.Err())
				return
			case jobs <- t:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	var summary Summary
	for out := range outcomes {
		summary.Processed++
		in.metrics.LocationsProcessed.WithLabelValues(out.Task.Shape.Name).Inc()
		if out.Failed() {
			summary.Failed++
			in.report(out)
			continue
		}
		summary.Succeeded++
		in.logger.Info("location ingested",
			"shape", out.Task.Shape.Name,
			"location", out.Task.DisplayName(),
			"ref", out.Task.Ref(),
			"timezone", out.Timezone,
		)
	}

	in.logger.Info("ingestion finished",
		"processed", summary.Processed,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
	)
	return summary
}

// process runs one task through the full stage sequence and returns its
// terminal outcome.
func (in *Ingestor) process(ctx context.Context, t Task) Outcome {
	out := Outcome{Task: t, Stage: StageDone}

	// Resolving never fails: stations and unresolvable coordinates fall
	// back to UTC.
	out.Timezone = timezone.FallbackZone
	if lat, lon, ok := t.Coordinates(); ok {
		out.Timezone = in.tz.Resolve(lat, lon)
	}

	out.URL = t.Shape.BuildURL(t)

	start := time.Now()
	body, err := in.fetcher.Get(ctx, out.URL)
	in.metrics.FetchDuration.WithLabelValues(t.Shape.Name).Observe(time.Since(start).Seconds())
	if err != nil {
		out.Stage = StageFetching
		out.Err = err
		reason := "transport"
		var statusErr *nws.StatusError
		if errors.As(err, &statusErr) {
			out.StatusCode = statusErr.StatusCode
			reason = "status"
		}
		in.metrics.Failures.WithLabelValues(t.Shape.Name, reason).Inc()
		return out
	}

	rec, err := t.Shape.Normalize(body, t, out.Timezone)
	if err != nil {
		out.Stage = StageNormalizing
		out.Err = err
		in.metrics.Failures.WithLabelValues(t.Shape.Name, "normalize").Inc()
		return out
	}

	if t.Shape.Localize != nil {
		t.Shape.Localize(rec, out.Timezone)
	}

	rec.Enrich(t.DisplayName())

	if err := in.sink.Persist(ctx, t.Shape.Collection, rec); err != nil {
		out.Stage = StagePersisting
		out.Err = err
		in.metrics.Failures.WithLabelValues(t.Shape.Name, "persist").Inc()
		return out
	}
	in.metrics.RecordsPersisted.WithLabelValues(t.Shape.Name).Inc()
	in.ready.Store(true)

	if in.mirror != nil {
		if err := in.mirror.Persist(ctx, t.Shape.Collection, rec); err != nil {
			in.logger.Warn("mirror publish failed",
				"shape", t.Shape.Name,
				"location", t.DisplayName(),
				"error", err,
			)
		}
	}

	out.Record = rec
	return out
}

// report logs a failed outcome to the console and mirrors it to the durable
// error log.
func (in *Ingestor) report(out Outcome) {
	attrs := []any{
		"shape", out.Task.Shape.Name,
		"location", out.Task.DisplayName(),
		"ref", out.Task.Ref(),
		"stage", string(out.Stage),
		"url", out.URL,
		"error", out.Err,
	}
	if out.StatusCode != 0 {
		attrs = append(attrs, "status", out.StatusCode)
	}

	in.logger.Error("location failed", attrs...)
	if in.errlog != nil {
		in.errlog.Error("location failed", attrs...)
	}
}
