// Package engine is the instruction-level interpreter the test harness drives.
//
// The harness never decodes or executes instructions itself: it plugs into the
// machine through the HintProcessor and StepHook extension points and reads or
// patches machine state through MachineState.
package engine

import (
	"encoding/json"
	"fmt"
)

// Value is the content of one memory cell.
type Value int64

// Address identifies a memory cell or a program offset.
type Address int64

// Opcode selects the operation performed by an instruction.
type Opcode uint8

// Available opcodes.
const (
	OpNop Opcode = iota
	OpPush
	OpLoad
	OpStore
	OpAlloc
	OpAddr
	OpLoadIndirect
	OpDup
	OpAdd
	OpSub
	OpMul
	OpAssertEq
	OpJmp
	OpJnz
	OpCall
	OpCallAbs
	OpRet
)

var opcodeNames = map[Opcode]string{
	OpNop:          "nop",
	OpPush:         "push",
	OpLoad:         "load",
	OpStore:        "store",
	OpAlloc:        "alloc",
	OpAddr:         "addr",
	OpLoadIndirect: "loadi",
	OpDup:          "dup",
	OpAdd:          "add",
	OpSub:          "sub",
	OpMul:          "mul",
	OpAssertEq:     "assert_eq",
	OpJmp:          "jmp",
	OpJnz:          "jnz",
	OpCall:         "call",
	OpCallAbs:      "call_abs",
	OpRet:          "ret",
}

var opcodesByName = func() map[string]Opcode {
	out := make(map[string]Opcode, len(opcodeNames))
	for op, name := range opcodeNames {
		out[name] = op
	}

	return out
}()

// ParseOpcode returns the opcode for its mnemonic.
func ParseOpcode(name string) (Opcode, bool) {
	op, ok := opcodesByName[name]
	return op, ok
}

func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}

	return fmt.Sprintf("op(%d)", uint8(op))
}

// MarshalJSON encodes the opcode as its mnemonic.
func (op Opcode) MarshalJSON() ([]byte, error) {
	name, ok := opcodeNames[op]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownOpcode, uint8(op))
	}

	return json.Marshal(name)
}

// UnmarshalJSON decodes an opcode mnemonic.
func (op *Opcode) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}

	parsed, ok := ParseOpcode(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOpcode, name)
	}

	*op = parsed

	return nil
}

// HasImmediate reports whether the instruction carries an immediate operand
// stored in the cell following the instruction word.
func (op Opcode) HasImmediate() bool {
	switch op {
	case OpPush, OpJmp, OpJnz, OpCall, OpCallAbs:
		return true
	default:
		return false
	}
}

// IsCall reports whether the opcode belongs to the call class.
func (op Opcode) IsCall() bool {
	return op == OpCall || op == OpCallAbs
}

// Instruction is one decoded instruction.
//
// Imm holds the immediate operand of two-cell instructions; Arg holds the
// small inline operand of load, store, alloc, addr and ret.
type Instruction struct {
	Op  Opcode `json:"op"`
	Imm Value  `json:"imm,omitempty"`
	Arg int64  `json:"arg,omitempty"`
}

// Size is the width of the instruction in program cells.
func (i Instruction) Size() Address {
	if i.Op.HasImmediate() {
		return 2
	}

	return 1
}

func (i Instruction) String() string {
	switch {
	case i.Op.HasImmediate():
		return fmt.Sprintf("%s %d", i.Op, i.Imm)
	case i.Op == OpLoad, i.Op == OpStore, i.Op == OpAlloc, i.Op == OpAddr, i.Op == OpRet:
		return fmt.Sprintf("%s %d", i.Op, i.Arg)
	default:
		return i.Op.String()
	}
}
