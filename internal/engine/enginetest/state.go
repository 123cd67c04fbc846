// Package enginetest provides a scripted engine.MachineState for unit tests of
// hints and hooks that must not depend on a full machine run.
package enginetest

import (
	"fmt"

	"foundry.dev/pkg/foundry/internal/engine"
)

// State is an in-memory MachineState whose registers, memory and current
// instruction are set directly by the test.
type State struct {
	Registers   engine.TraceEntry
	Cells       map[engine.Address]engine.Value
	Instruction engine.Instruction
	StepCount   uint64
	Skipped     bool
	// Writes records every written address, in order.
	Writes []engine.Address
}

// NewState returns a state with the given registers and empty memory.
func NewState(pc, ap, fp engine.Address) *State {
	return &State{
		Registers: engine.TraceEntry{PC: pc, AP: ap, FP: fp},
		Cells:     map[engine.Address]engine.Value{},
	}
}

// WithInstruction sets the instruction decoded at pc.
func (s *State) WithInstruction(instr engine.Instruction) *State {
	s.Instruction = instr
	return s
}

// WithCells writes values at consecutive addresses starting at addr without
// recording them as writes.
func (s *State) WithCells(addr engine.Address, values ...engine.Value) *State {
	for i, v := range values {
		s.Cells[addr+engine.Address(i)] = v
	}

	return s
}

// Snapshot copies the memory for later comparison.
func (s *State) Snapshot() map[engine.Address]engine.Value {
	out := make(map[engine.Address]engine.Value, len(s.Cells))
	for k, v := range s.Cells {
		out[k] = v
	}

	return out
}

func (s *State) PC() engine.Address { return s.Registers.PC }

func (s *State) AP() engine.Address { return s.Registers.AP }

func (s *State) FP() engine.Address { return s.Registers.FP }

func (s *State) SetPC(pc engine.Address) { s.Registers.PC = pc }

func (s *State) SetAP(ap engine.Address) { s.Registers.AP = ap }

func (s *State) Steps() uint64 { return s.StepCount }

func (s *State) SkipInstruction() { s.Skipped = true }

func (s *State) Read(addr engine.Address) (engine.Value, error) {
	v, ok := s.Cells[addr]
	if !ok {
		return 0, fmt.Errorf("%w: %d", engine.ErrUnknownMemory, addr)
	}

	return v, nil
}

func (s *State) Write(addr engine.Address, value engine.Value) error {
	s.Cells[addr] = value
	s.Writes = append(s.Writes, addr)

	return nil
}

func (s *State) CurrentInstruction() (engine.Instruction, error) {
	return s.Instruction, nil
}

func (s *State) ResolveCallTarget(instr engine.Instruction) (engine.Address, error) {
	switch instr.Op {
	case engine.OpCall:
		return s.Registers.PC + engine.Address(instr.Imm), nil
	case engine.OpCallAbs:
		return engine.Address(instr.Imm), nil
	default:
		return 0, fmt.Errorf("%s is not a call instruction", instr.Op)
	}
}
