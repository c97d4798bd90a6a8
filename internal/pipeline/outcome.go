package pipeline

import "github.com/couchcryptid/weather-ingest/internal/domain"

// Stage marks how far a task's processing got. A task moves through
// resolving → fetching → normalizing → localizing → persisting → done;
// on failure the outcome records the stage that failed. Resolving never
// fails (it falls back to UTC), so no outcome ever carries it.
type Stage string

const (
	StageFetching    Stage = "fetching"
	StageNormalizing Stage = "normalizing"
	StageLocalizing  Stage = "localizing"
	StagePersisting  Stage = "persisting"
	StageDone        Stage = "done"
)

// Outcome is the terminal result for one task. Either Record is set and
// Stage is StageDone, or Err is set with the stage that produced it.
// Outcomes are never retried.
type Outcome struct {
	Task     Task
	URL      string
	Timezone string

	Record domain.Record

	Stage      Stage
	StatusCode int // non-zero when the failure was a non-200 response
	Err        error
}

// Failed reports whether the task produced no record.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Summary aggregates one run. Processed = Succeeded + Failed, and exactly
// Succeeded records were handed to the sink.
type Summary struct {
	Processed int
	Succeeded int
	Failed    int
}
