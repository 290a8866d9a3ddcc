// Package pipeline executes declared multi-step task pipelines over the
// unit registry. Steps run strictly in declaration order; the declarer
// is responsible for listing steps so that every prerequisite appears
// before its dependents. There is no topological re-sort.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xeipuuv/gojsonschema"

	"github.com/instastartup/instastartup/internal/extract"
	"github.com/instastartup/instastartup/internal/provider"
	"github.com/instastartup/instastartup/internal/registry"
	"github.com/instastartup/instastartup/pkg/models"
)

// ErrPipelineTerminal is returned when Execute is called on a pipeline
// that already reached completed or failed. A fresh pipeline must be
// defined to retry; terminal results are never mutated.
var ErrPipelineTerminal = errors.New("pipeline is terminal and cannot be re-executed")

// ErrPipelineActive is returned when Execute is called on a pipeline id
// that is already executing. Each pipeline runs at most once at a time;
// callers fetch fresh copies from the store, so the terminal check
// alone cannot see a concurrent run.
var ErrPipelineActive = errors.New("pipeline is already executing")

// DependencyUnmet reports a step whose prerequisite has no recorded
// result. Fatal to the pipeline.
type DependencyUnmet struct {
	Step    string
	Missing string
}

func (e *DependencyUnmet) Error() string {
	return fmt.Sprintf("dependencies not met for step %q: missing result for %q", e.Step, e.Missing)
}

// StepOutputMalformed reports a step whose unit returned text that is
// not valid JSON. Fatal to the pipeline; unlike artifact assembly there
// is no per-step fallback catalog here.
type StepOutputMalformed struct {
	Step string
	Err  error
}

func (e *StepOutputMalformed) Error() string {
	return fmt.Sprintf("step %q returned malformed output: %v", e.Step, e.Err)
}

func (e *StepOutputMalformed) Unwrap() error { return e.Err }

// Runner executes pipelines against a unit registry. A Coordinator, if
// set, is notified after every unit execution so team shared memory
// stays current.
type Runner struct {
	registry *registry.Registry
	teams    *Coordinator

	mu       sync.Mutex
	inflight map[string]struct{} // pipeline ids currently executing
}

// NewRunner creates a pipeline runner. teams may be nil.
func NewRunner(reg *registry.Registry, teams *Coordinator) *Runner {
	return &Runner{
		registry: reg,
		teams:    teams,
		inflight: make(map[string]struct{}),
	}
}

// claim marks the pipeline id as executing. Reports false when another
// Execute already holds it.
func (r *Runner) claim(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, busy := r.inflight[id]; busy {
		return false
	}
	r.inflight[id] = struct{}{}
	return true
}

func (r *Runner) release(id string) {
	r.mu.Lock()
	delete(r.inflight, id)
	r.mu.Unlock()
}

// Define creates a new pipeline record with status pending and empty
// results. Steps are copied verbatim and never mutated afterwards.
func (r *Runner) Define(name, description string, steps []models.PipelineStep) *models.Pipeline {
	return &models.Pipeline{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Steps:       append([]models.PipelineStep(nil), steps...),
		Status:      models.PipelinePending,
		Results:     make(map[string]interface{}),
		CreatedAt:   time.Now().UTC(),
	}
}

// Execute runs the pipeline's steps in declaration order, mutating the
// pipeline in place. Step failures of any kind (unmet dependency,
// malformed output, provider error, context cancellation) are recorded
// on the pipeline as status failed and are not returned as errors;
// callers inspect pipeline.Status after Execute returns. The only
// errors Execute itself returns are ErrPipelineTerminal for an attempt
// to re-run a finished pipeline and ErrPipelineActive for a concurrent
// attempt on one already running.
func (r *Runner) Execute(ctx context.Context, p provider.Provider, pl *models.Pipeline) error {
	if pl.Terminal() {
		return ErrPipelineTerminal
	}
	if !r.claim(pl.ID) {
		return ErrPipelineActive
	}
	defer r.release(pl.ID)

	now := time.Now().UTC()
	pl.Status = models.PipelineRunning
	pl.StartedAt = &now

	log.Info().
		Str("pipeline_id", pl.ID).
		Str("name", pl.Name).
		Int("steps", len(pl.Steps)).
		Msg("Pipeline execution started")

	err := r.runSteps(ctx, p, pl)

	done := time.Now().UTC()
	pl.CompletedAt = &done
	pl.DurationMs = done.Sub(now).Milliseconds()

	if err != nil {
		pl.Status = models.PipelineFailed
		pl.Error = err.Error()
		log.Error().
			Err(err).
			Str("pipeline_id", pl.ID).
			Msg("Pipeline failed")
		return nil
	}

	pl.Status = models.PipelineCompleted
	log.Info().
		Str("pipeline_id", pl.ID).
		Int64("duration_ms", pl.DurationMs).
		Msg("Pipeline completed")
	return nil
}

func (r *Runner) runSteps(ctx context.Context, p provider.Provider, pl *models.Pipeline) error {
	for _, step := range pl.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}

		// Every prerequisite must already have a recorded result.
		for _, pre := range step.Prerequisites {
			if _, ok := pl.Results[pre]; !ok {
				return &DependencyUnmet{Step: step.Operation, Missing: pre}
			}
		}

		params := mergeParams(step, pl.Results)
		r.validateParams(step, params)

		raw, err := r.registry.Execute(ctx, p, step.UnitID, step.Operation, params)
		if err != nil {
			return fmt.Errorf("step %q: %w", step.Operation, err)
		}

		parsed, err := extract.Parse[map[string]interface{}](raw)
		if err != nil {
			return &StepOutputMalformed{Step: step.Operation, Err: err}
		}
		pl.Results[step.Operation] = parsed

		if r.teams != nil {
			r.teams.RecordExecution(ctx, step.UnitID, raw)
		}

		log.Debug().
			Str("pipeline_id", pl.ID).
			Str("unit", step.UnitID).
			Str("operation", step.Operation).
			Msg("Pipeline step completed")
	}
	return nil
}

// mergeParams injects each prerequisite's stored result into the step's
// parameter map under the prerequisite's own operation name. Declared
// parameters win only when no prerequisite shares the key.
func mergeParams(step models.PipelineStep, results map[string]interface{}) map[string]interface{} {
	params := make(map[string]interface{}, len(step.Parameters)+len(step.Prerequisites))
	for k, v := range step.Parameters {
		params[k] = v
	}
	for _, pre := range step.Prerequisites {
		if v, ok := results[pre]; ok {
			params[pre] = v
		}
	}
	return params
}

// validateParams checks the merged parameters against the operation's
// declared input schema. Advisory only: mismatches are logged, never
// fatal, since prerequisite injection legitimately adds keys the schema
// does not declare.
func (r *Runner) validateParams(step models.PipelineStep, params map[string]interface{}) {
	op, err := r.registry.Operation(step.UnitID, step.Operation)
	if err != nil || op.InputSchema == nil {
		return
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(op.InputSchema),
		gojsonschema.NewGoLoader(params),
	)
	if err != nil {
		log.Debug().Err(err).Str("operation", step.Operation).Msg("Parameter schema check skipped")
		return
	}
	if !result.Valid() {
		for _, desc := range result.Errors() {
			log.Warn().
				Str("unit", step.UnitID).
				Str("operation", step.Operation).
				Str("issue", desc.String()).
				Msg("Step parameters do not match declared input schema")
		}
	}
}
