// Package hooks holds the pre-step hook that enforces the step budget and
// replaces mocked calls with synthetic returns.
package hooks

import (
	"fmt"
	"log/slog"

	"foundry.dev/pkg/foundry/internal/engine"
	"foundry.dev/pkg/foundry/internal/runctx"
)

// ErrStepBudgetExceeded stops a run that used up its step budget.
var ErrStepBudgetExceeded = engine.Signal("step budget exceeded")

// StepHook implements engine.StepHook.
type StepHook struct {
	registry *runctx.Registry
}

// NewStepHook returns a hook reading run contexts from registry.
func NewStepHook(registry *runctx.Registry) *StepHook {
	return &StepHook{registry: registry}
}

// BeforeHints refuses the step when the budget of the run bound to scope is
// spent, so the hints at pc never see it.
func (h *StepHook) BeforeHints(_ engine.MachineState, scope *engine.Scope) error {
	return h.registry.With(runctx.MustTokenFromScope(scope), exhausted)
}

// PreStep charges one step against the budget of the run bound to scope and,
// if the instruction at pc calls a mocked function, returns the mocked value
// in place of the call.
func (h *StepHook) PreStep(state engine.MachineState, scope *engine.Scope) error {
	return h.registry.With(runctx.MustTokenFromScope(scope), func(rc *runctx.RunContext) error {
		if err := exhausted(rc); err != nil {
			return err
		}

		rc.StepCount++

		if rc.Mocks.Len() == 0 {
			return nil
		}

		instr, err := state.CurrentInstruction()
		if err != nil {
			return err
		}

		if !instr.Op.IsCall() {
			return nil
		}

		target, err := state.ResolveCallTarget(instr)
		if err != nil {
			return err
		}

		entry, ok := rc.Mocks.Lookup(target)
		if !ok {
			return nil
		}

		slog.Debug("Intercepting mocked call", "pc", state.PC(), "target", target, "kind", entry.Kind)

		return SyntheticReturn(state, instr, entry)
	})
}

func exhausted(rc *runctx.RunContext) error {
	if rc.StepBudget > 0 && rc.StepCount >= rc.StepBudget {
		return fmt.Errorf("%w after %d steps", ErrStepBudgetExceeded, rc.StepCount)
	}

	return nil
}

// SyntheticReturn leaves the machine as if the call instruction instr had run
// a callee whose body only returned the mocked values: the values sit at
// [ap, ap+n), ap moves past them, pc moves past instr and the machine skips
// its own execution of instr.
func SyntheticReturn(state engine.MachineState, instr engine.Instruction, entry runctx.MockEntry) error {
	var values []engine.Value

	switch entry.Kind {
	case runctx.MockScalar:
		values = []engine.Value{entry.Value}
	case runctx.MockVector:
		// Grown cell by cell: a length past the written memory fails on the
		// first unset cell.
		for i := 0; i < entry.Length; i++ {
			v, err := state.Read(entry.Source + engine.Address(i))
			if err != nil {
				return fmt.Errorf("reading mocked values of %d: %w", entry.Target, err)
			}

			values = append(values, v)
		}
	default:
		return fmt.Errorf("unsupported mock kind %s", entry.Kind)
	}

	ap := state.AP()
	for i, v := range values {
		if err := state.Write(ap+engine.Address(i), v); err != nil {
			return err
		}
	}

	state.SetAP(ap + engine.Address(len(values)))
	state.SetPC(state.PC() + instr.Size())
	state.SkipInstruction()

	return nil
}
