package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foundry.dev/pkg/foundry/internal/engine"
)

func TestAssemble_FunctionsAndOffsets(t *testing.T) {
	src := `
// returns one
func one:
    push 1
    ret 1

func test_one:
    call one      # relative call
    push 1
    assert_eq
    ret
`

	program, err := Assemble("test_one.sasm", []byte(src))
	require.NoError(t, err)

	one, ok := program.Function("one")
	require.True(t, ok)
	assert.Equal(t, engine.Address(0), one)

	test, ok := program.Function("test_one")
	require.True(t, ok)
	assert.Equal(t, engine.Address(3), test)

	call, err := program.InstructionAt(test)
	require.NoError(t, err)
	assert.Equal(t, engine.OpCall, call.Op)
	assert.Equal(t, engine.Value(-3), call.Imm)

	assert.Equal(t, []string{"one", "test_one"}, program.Functions())
	assert.Equal(t, engine.Address(9), program.End())
}

func TestAssemble_LabelsAreLocalToFunctions(t *testing.T) {
	src := `
func a:
loop:
    jmp loop
func b:
loop:
    jmp loop
`

	program, err := Assemble("labels.sasm", []byte(src))
	require.NoError(t, err)

	jmpB, err := program.InstructionAt(2)
	require.NoError(t, err)
	assert.Equal(t, engine.Value(0), jmpB.Imm)
	assert.Equal(t, engine.IdentifierLabel, program.Identifiers["__main__.b.loop"].Type)
}

func TestAssemble_AnnotationsCaptureReferences(t *testing.T) {
	src := `
func test_hint:
    alloc 1
    .ref x 0
    %{ print(x) %}
    %{
        memory[ap] = 3
    %}
    nop
    ret
`

	program, err := Assemble("hint.sasm", []byte(src))
	require.NoError(t, err)

	hints := program.Hints[1]
	require.Len(t, hints, 2)
	assert.Equal(t, "print(x)", hints[0].Code)
	assert.Equal(t, map[string]int64{"x": 0}, hints[0].References)
	assert.Equal(t, "memory[ap] = 3", hints[1].Code)
}

func TestAssemble_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{name: "unknown instruction", src: "func f:\n  frob\n", msg: "unknown instruction"},
		{name: "undefined target", src: "func f:\n  jmp nowhere\n", msg: "undefined target"},
		{name: "dangling annotation", src: "func f:\n  ret\n  %{ skip() %}\n", msg: "not followed"},
		{name: "bad push", src: "func f:\n  push x\n", msg: "push expects an integer"},
		{name: "redeclared", src: "func f:\n  ret\nfunc f:\n  ret\n", msg: "redeclared"},
		{name: "unterminated", src: "func f:\n  %{ skip()\n  ret\n", msg: "unterminated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Assemble("bad.sasm", []byte(tt.src))
			require.Error(t, err)
			require.ErrorIs(t, err, ErrSyntax)
			assert.Contains(t, err.Error(), tt.msg)
			assert.Contains(t, err.Error(), "bad.sasm:")
		})
	}
}

func TestAssemble_ProgramRoundTripsThroughJSON(t *testing.T) {
	program, err := Assemble("rt.sasm", []byte("func main:\n  %{ skip() %}\n  push 0x10\n  ret 1\n"))
	require.NoError(t, err)

	data, err := program.Encode()
	require.NoError(t, err)

	decoded, err := engine.DecodeProgram(data)
	require.NoError(t, err)
	assert.Equal(t, program.Instructions, decoded.Instructions)
	assert.Equal(t, program.Hints, decoded.Hints)
	assert.Equal(t, program.End(), decoded.End())
}
