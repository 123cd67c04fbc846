package engine_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foundry.dev/pkg/foundry/internal/asm"
	"foundry.dev/pkg/foundry/internal/engine"
)

func assemble(t *testing.T, src string) *engine.Program {
	t.Helper()

	program, err := asm.Assemble(t.Name()+".sasm", []byte(src))
	require.NoError(t, err)

	return program
}

func TestMachine_ArithmeticAndAssertions(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
	}{
		{
			name: "2+3 equals 5",
			src:  "func main:\n push 2\n push 3\n add\n push 5\n assert_eq\n ret\n",
		},
		{
			name:    "2*3 is not 5",
			src:     "func main:\n push 2\n push 3\n mul\n push 5\n assert_eq\n ret\n",
			wantErr: engine.ErrAssertion,
		},
		{
			name: "locals via alloc, store and load",
			src:  "func main:\n alloc 1\n push 7\n store 0\n load 0\n push 7\n assert_eq\n ret\n",
		},
		{
			name: "indirect load through addr",
			src:  "func main:\n alloc 1\n push 9\n store 0\n addr 0\n loadi\n push 9\n assert_eq\n ret\n",
		},
		{
			name:    "reading an unset cell",
			src:     "func main:\n load 5\n ret\n",
			wantErr: engine.ErrUnknownMemory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := engine.NewMachine(assemble(t, tt.src))

			err := m.RunEntrypoint("main")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				var stepErr *engine.StepError
				require.ErrorAs(t, err, &stepErr)

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestMachine_CallReturnConvention(t *testing.T) {
	src := `
func pair:
    push 7
    push 8
    ret 2

func main:
    push 1
    call pair
    push 8
    assert_eq
    push 7
    assert_eq
    push 1
    assert_eq
    ret
`
	program := assemble(t, src)

	var trace []engine.TraceEntry

	m := engine.NewMachine(program, engine.WithTracer(func(e engine.TraceEntry) {
		trace = append(trace, e)
	}))

	require.NoError(t, m.RunEntrypoint("main"))

	mainPC, _ := program.Function("main")
	pairPC, _ := program.Function("pair")

	// push 1 leaves ap=3; the call frame puts fp at 5 inside pair.
	assert.Equal(t, engine.TraceEntry{PC: mainPC, AP: 2, FP: 2}, trace[0])
	assert.Equal(t, engine.TraceEntry{PC: pairPC, AP: 5, FP: 5}, trace[2])

	// ret 2 lands back after the call with both values on top of the caller's stack.
	assert.Equal(t, engine.TraceEntry{PC: mainPC + 4, AP: 5, FP: 2}, trace[5])
	assert.Equal(t, uint64(len(trace)), m.Steps())
}

func TestMachine_ConditionalLoop(t *testing.T) {
	src := `
func main:
    alloc 1
    push 3
    store 0
loop:
    load 0
    push 1
    sub
    dup
    store 0
    jnz loop
    load 0
    push 0
    assert_eq
    ret
`
	m := engine.NewMachine(assemble(t, src))
	require.NoError(t, m.RunEntrypoint("main"))
}

func TestMachine_UnknownEntrypoint(t *testing.T) {
	m := engine.NewMachine(assemble(t, "func main:\n ret\n"))

	err := m.RunEntrypoint("missing")
	require.ErrorIs(t, err, engine.ErrUnknownEntrypoint)
}

func TestMachine_BuiltinEvaluatorRunsRawHints(t *testing.T) {
	src := `
func main:
    alloc 1
    .ref x 0
    %{ ids.x = 41 %}
    %{ memory[ap] = ids.x %}
    alloc 1
    push 41
    assert_eq
    ret
`
	m := engine.NewMachine(assemble(t, src))
	require.NoError(t, m.RunEntrypoint("main"))
}

func TestMachine_UnknownRawHint(t *testing.T) {
	m := engine.NewMachine(assemble(t, "func main:\n %{ whatever happens %}\n ret\n"))

	err := m.RunEntrypoint("main")
	require.ErrorIs(t, err, engine.ErrUnknownHint)
}

type countingProcessor struct {
	compiled int
	executed int
}

func (p *countingProcessor) CompileHint(code string, _ engine.SymbolTable) (engine.CompiledHint, error) {
	p.compiled++
	return code, nil
}

func (p *countingProcessor) ExecuteHint(_ engine.MachineState, _ *engine.Scope, _ engine.CompiledHint) error {
	p.executed++
	return nil
}

func TestMachine_HintsCompileOncePerAnnotation(t *testing.T) {
	src := `
func main:
    alloc 1
    push 4
    store 0
loop:
    %{ tick() %}
    load 0
    push 1
    sub
    dup
    store 0
    jnz loop
    ret
`
	processor := &countingProcessor{}
	m := engine.NewMachine(assemble(t, src), engine.WithHintProcessor(processor))

	require.NoError(t, m.RunEntrypoint("main"))
	assert.Equal(t, 1, processor.compiled)
	assert.Equal(t, 4, processor.executed)
}

type haltingHook struct {
	after uint64
}

var errHalt = engine.Signal("halt")

func (h haltingHook) PreStep(state engine.MachineState, _ *engine.Scope) error {
	if state.Steps() >= h.after {
		return errHalt
	}

	return nil
}

func TestMachine_HookSignalStopsRun(t *testing.T) {
	m := engine.NewMachine(assemble(t, "func main:\nloop:\n jmp loop\n"), engine.WithStepHooks(haltingHook{after: 5}))

	err := m.RunEntrypoint("main")
	require.ErrorIs(t, err, errHalt)
	assert.True(t, errors.Is(err, engine.Signal("halt")))
	assert.Equal(t, uint64(5), m.Steps())
}

type guardingHook struct {
	haltingHook
}

func (h guardingHook) BeforeHints(state engine.MachineState, _ *engine.Scope) error {
	return h.PreStep(state, nil)
}

func TestMachine_HintGuardRunsBeforeHints(t *testing.T) {
	processor := &countingProcessor{}
	m := engine.NewMachine(assemble(t, "func main:\nloop:\n %{ tick() %}\n jmp loop\n"),
		engine.WithHintProcessor(processor),
		engine.WithStepHooks(guardingHook{haltingHook{after: 3}}),
	)

	err := m.RunEntrypoint("main")
	require.ErrorIs(t, err, errHalt)
	assert.Equal(t, uint64(3), m.Steps())
	assert.Equal(t, 3, processor.executed)
}
