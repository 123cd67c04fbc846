package engine

import (
	"errors"
	"fmt"
)

// Engine errors. Every error returned by Machine.Run wraps one of these or a
// Signal raised by a hint or a hook.
var (
	ErrUnknownOpcode     = errors.New("unknown opcode")
	ErrInvalidPC         = errors.New("pc is not on an instruction boundary")
	ErrUnknownMemory     = errors.New("unknown memory cell")
	ErrInvalidAddress    = errors.New("invalid memory address")
	ErrAssertion         = errors.New("assertion failed")
	ErrUnknownHint       = errors.New("unknown hint")
	ErrUnknownEntrypoint = errors.New("unknown entrypoint")
	ErrInvalidProgram    = errors.New("invalid program")
)

// Signal is a string-keyed control signal routed through the error channel.
// Hints and hooks return signals to stop a run; the caller tells them apart
// from ordinary failures with errors.Is.
type Signal string

func (s Signal) Error() string {
	return string(s)
}

// AssertionError reports an assert_eq on two different values.
type AssertionError struct {
	Left  Value
	Right Value
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: %d != %d", ErrAssertion, e.Left, e.Right)
}

// Unwrap makes AssertionError match ErrAssertion.
func (e *AssertionError) Unwrap() error {
	return ErrAssertion
}

// StepError locates a failure at the instruction that raised it.
type StepError struct {
	PC  Address
	Err error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("pc=%d: %v", e.PC, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
