package domain_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foundry.dev/pkg/foundry/internal/asm"
	"foundry.dev/pkg/foundry/internal/domain"
	"foundry.dev/pkg/foundry/internal/engine"
	m "foundry.dev/pkg/foundry/internal/model"
	"foundry.dev/pkg/foundry/internal/runctx"
)

const runnerSrc = `
func callee:
    push 1
    ret 1

func test_mocked:
    %{ mock_call(callee, 42) %}
    call callee
    push 42
    assert_eq
    ret

func test_skipped:
    %{ skip() %}
    push 1
    push 2
    assert_eq
    ret

func test_reverts:
    %{ expect_revert() %}
    push 1
    push 2
    assert_eq
    ret

func test_does_not_revert:
    %{ expect_revert() %}
    nop
    ret

func test_loops:
loop:
    jmp loop

func test_loops_expecting_revert:
    %{ expect_revert() %}
    nop
loop:
    jmp loop

func test_prints_in_loop:
loop:
    %{ print(1) %}
    jmp loop

func test_mocks_past_memory:
    %{ mock_call_felt(callee, 0x7fffffffffffffff, 0) %}
    call callee
    ret

func test_prints:
    %{ print(7) %}
    %{ print(callee) %}
    nop
    ret

func test_prints_then_fails:
    %{ print(3) %}
    push 1
    push 2
    assert_eq
    ret

func test_unknown_hint:
    %{ frobnicate(1) %}
    nop
    ret

func test_raw_hint:
    %{ memory[ap] = 9 %}
    nop
    ret
`

func assemble(t *testing.T, src string) *engine.Program {
	t.Helper()

	program, err := asm.Assemble(t.Name()+".sasm", []byte(src))
	require.NoError(t, err)

	return program
}

func TestRunner_RunEntrypoint(t *testing.T) {
	program := assemble(t, runnerSrc)

	tests := []struct {
		name    string
		budget  uint64
		status  m.TestStatus
		message string
		output  string
	}{
		{name: "test_mocked", status: m.Success},
		{name: "test_skipped", status: m.Skipped},
		{name: "test_reverts", status: m.Success},
		{name: "test_does_not_revert", status: m.Failure, message: domain.NotRevertedMessage},
		{name: "test_loops", budget: 1000, status: m.Failure, message: "step budget exceeded after 1000 steps"},
		{name: "test_loops_expecting_revert", budget: 1000, status: m.Failure, message: "step budget exceeded"},
		{name: "test_prints_in_loop", budget: 3, status: m.Failure, message: "step budget exceeded after 3 steps", output: "1\n1\n1\n"},
		{name: "test_mocks_past_memory", budget: 100, status: m.Failure, message: "unknown memory cell"},
		{name: "test_prints", status: m.Success, output: "7\n0\n"},
		{name: "test_prints_then_fails", status: m.Failure, message: "assertion failed: 1 != 2", output: "3\n"},
		{name: "test_unknown_hint", status: m.Failure, message: "unknown hint"},
		{name: "test_raw_hint", status: m.Success},
		{name: "test_missing", status: m.Failure, message: "unknown entrypoint"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := runctx.NewRegistry()
			runner := domain.NewRunner(registry)

			outcome := runner.RunEntrypoint(context.Background(), program, tt.name, tt.budget)

			assert.Equal(t, tt.name, outcome.Name)
			assert.Equal(t, tt.status, outcome.Status, outcome.Message)
			assert.Equal(t, tt.output, outcome.Output)

			if tt.message == "" {
				assert.Empty(t, outcome.Message)
			} else {
				assert.Contains(t, outcome.Message, tt.message)
			}

			assert.Zero(t, registry.Active())
		})
	}
}

func TestRunner_CanceledContextDoesNotRun(t *testing.T) {
	program := assemble(t, runnerSrc)
	registry := runctx.NewRegistry()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome := domain.NewRunner(registry).RunEntrypoint(ctx, program, "test_prints", 0)

	assert.Equal(t, m.Failure, outcome.Status)
	assert.Contains(t, outcome.Message, context.Canceled.Error())
	assert.Empty(t, outcome.Output)
	assert.Zero(t, registry.Active())
}

func TestRunner_CustomEvaluator(t *testing.T) {
	program := assemble(t, "func test_custom:\n    %{ ping %}\n    nop\n    ret\n")

	var calls int

	runner := domain.NewRunner(runctx.NewRegistry(), domain.WithEvaluator(func() engine.HintEvaluator {
		evaluator := engine.NewBuiltinEvaluator()
		evaluator.AddHint("ping", func(engine.MachineState, *engine.Scope, engine.SymbolTable) error {
			calls++
			return nil
		})

		return evaluator
	}))

	outcome := runner.RunEntrypoint(context.Background(), program, "test_custom", 0)

	assert.Equal(t, m.Success, outcome.Status, outcome.Message)
	assert.Equal(t, 1, calls)
}

func TestRunner_ConcurrentRunsKeepTheirOutput(t *testing.T) {
	src := ""
	for i := 0; i < 8; i++ {
		src += fmt.Sprintf("func test_%d:\n    %%{ print(%d) %%}\n    nop\n    ret\n", i, i)
	}

	program := assemble(t, src)
	registry := runctx.NewRegistry()
	runner := domain.NewRunner(registry)

	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		i := i
		wg.Add(1)

		go func() {
			defer wg.Done()

			for _i := 0; _i < 25; _i++ {
				outcome := runner.RunEntrypoint(context.Background(), program, fmt.Sprintf("test_%d", i), 0)
				assert.Equal(t, m.Success, outcome.Status)
				assert.Equal(t, fmt.Sprintf("%d\n", i), outcome.Output)
			}
		}()
	}

	wg.Wait()

	assert.Zero(t, registry.Active())
}
