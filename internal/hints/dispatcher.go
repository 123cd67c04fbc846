package hints

import (
	"errors"
	"fmt"

	"foundry.dev/pkg/foundry/internal/engine"
	"foundry.dev/pkg/foundry/internal/runctx"
)

var (
	// ErrSkip is returned by skip() and ends the run as skipped.
	ErrSkip = engine.Signal("skip")
	// ErrInvalidArguments reports a named call with unusable arguments.
	ErrInvalidArguments = errors.New("invalid hint arguments")
)

// UnknownHintError reports a named call nobody handles.
type UnknownHintError struct {
	Text string
}

func (e *UnknownHintError) Error() string {
	return fmt.Sprintf("unknown hint: %s", e.Text)
}

// Unwrap makes UnknownHintError match engine.ErrUnknownHint.
func (e *UnknownHintError) Unwrap() error {
	return engine.ErrUnknownHint
}

// Call is what a handler receives: the machine, the invocation and exclusive
// access to the run context.
type Call struct {
	State      engine.MachineState
	Invocation *Invocation
	Run        *runctx.RunContext
}

// Handler implements one named hint.
type Handler func(call Call) error

// Dispatcher compiles annotations into invocations and executes them. It
// implements engine.HintProcessor.
type Dispatcher struct {
	registry  *runctx.Registry
	evaluator engine.HintEvaluator
	handlers  map[string]Handler
}

// NewDispatcher returns a dispatcher over registry. Raw annotations are
// handed to evaluator unchanged.
func NewDispatcher(registry *runctx.Registry, evaluator engine.HintEvaluator) *Dispatcher {
	return &Dispatcher{
		registry:  registry,
		evaluator: evaluator,
		handlers: map[string]Handler{
			"skip":           skip,
			"expect_revert":  expectRevert,
			"mock_call":      mockCall,
			"mock_call_felt": mockCallFelt,
			"print":          printValue,
		},
	}
}

// Names returns the handled hint names.
func (d *Dispatcher) Names() []string {
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}

	return names
}

// CompileHint implements engine.HintProcessor.
func (d *Dispatcher) CompileHint(code string, symbols engine.SymbolTable) (engine.CompiledHint, error) {
	return Compile(code, symbols), nil
}

// ExecuteHint implements engine.HintProcessor.
func (d *Dispatcher) ExecuteHint(state engine.MachineState, scope *engine.Scope, hint engine.CompiledHint) error {
	inv, ok := hint.(*Invocation)
	if !ok {
		return fmt.Errorf("hint was not compiled by this dispatcher: %T", hint)
	}

	return d.Execute(state, scope, inv)
}

// Execute runs one invocation.
func (d *Dispatcher) Execute(state engine.MachineState, scope *engine.Scope, inv *Invocation) error {
	if inv.Kind == RawPassthrough {
		return d.evaluator.EvaluateHint(state, scope, inv.Text, inv.Symbols)
	}

	handler, ok := d.handlers[inv.Name]
	if !ok {
		return &UnknownHintError{Text: inv.Text}
	}

	return d.registry.With(runctx.MustTokenFromScope(scope), func(rc *runctx.RunContext) error {
		return handler(Call{State: state, Invocation: inv, Run: rc})
	})
}
