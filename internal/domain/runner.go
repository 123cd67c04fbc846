package domain

import (
	"context"
	"log/slog"
	"time"

	"foundry.dev/pkg/foundry/internal/engine"
	"foundry.dev/pkg/foundry/internal/hints"
	"foundry.dev/pkg/foundry/internal/hooks"
	m "foundry.dev/pkg/foundry/internal/model"
	"foundry.dev/pkg/foundry/internal/runctx"
)

// Runner executes single test entrypoints.
type Runner interface {
	// RunEntrypoint runs name in a fresh machine with its own run context and
	// classifies the result. A budget of zero means unlimited.
	RunEntrypoint(ctx context.Context, program *engine.Program, name string, budget uint64) m.TestOutcome
}

type runner struct {
	registry *runctx.Registry
	// evaluator builds the raw-hint evaluator of each machine.
	evaluator func() engine.HintEvaluator
}

// RunnerOption configures a Runner.
type RunnerOption func(*runner)

// WithEvaluator replaces the engine evaluator raw annotations are handed to.
func WithEvaluator(evaluator func() engine.HintEvaluator) RunnerOption {
	return func(r *runner) {
		r.evaluator = evaluator
	}
}

// NewRunner constructs a Runner keeping run contexts in registry.
func NewRunner(registry *runctx.Registry, opts ...RunnerOption) Runner {
	r := &runner{
		registry: registry,
		evaluator: func() engine.HintEvaluator {
			return engine.NewBuiltinEvaluator()
		},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *runner) RunEntrypoint(ctx context.Context, program *engine.Program, name string, budget uint64) m.TestOutcome {
	if err := ctx.Err(); err != nil {
		return m.TestOutcome{Name: name, Status: m.Failure, Message: err.Error()}
	}

	token := runctx.NewToken()
	if err := r.registry.Begin(token, budget); err != nil {
		slog.Error("Failed to begin run", "entrypoint", name, "token", token, "error", err)
		return m.TestOutcome{Name: name, Status: m.Failure, Message: err.Error()}
	}

	machine := engine.NewMachine(program,
		engine.WithHintProcessor(hints.NewDispatcher(r.registry, r.evaluator())),
		engine.WithStepHooks(hooks.NewStepHook(r.registry)),
	)
	runctx.Bind(machine.Scope(), token)

	slog.Debug("Running entrypoint", "entrypoint", name, "token", token, "budget", budget)

	start := time.Now()
	final, runErr := r.run(machine, token, name)
	elapsed := time.Since(start)

	outcome := Classify(name, runErr, &final)
	outcome.Elapsed = elapsed

	slog.Debug("Entrypoint finished", "entrypoint", name, "status", outcome.Status, "steps", machine.Steps(), "elapsed", elapsed)

	return outcome
}

// run executes name and ends the run context of token however the machine
// stops.
func (r *runner) run(machine *engine.Machine, token runctx.Token, name string) (final runctx.RunContext, err error) {
	defer func() {
		final = r.registry.End(token)
	}()

	return runctx.RunContext{}, machine.RunEntrypoint(name)
}
