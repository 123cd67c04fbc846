package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// HintFunc is a natively implemented raw hint, registered by its exact code.
type HintFunc func(state MachineState, scope *Scope, symbols SymbolTable) error

// BuiltinEvaluator is the machine's own hint evaluator. It knows a registry
// of exact hint codes and two assignment forms:
//
//	memory[ap] = <operand>
//	ids.<name> = <operand>
//
// where an operand is an integer literal or ids.<name>.
type BuiltinEvaluator struct {
	hints map[string]HintFunc
}

// NewBuiltinEvaluator returns an evaluator with an empty code registry.
func NewBuiltinEvaluator() *BuiltinEvaluator {
	return &BuiltinEvaluator{hints: map[string]HintFunc{}}
}

// AddHint registers fn for the exact (trimmed) hint code.
func (e *BuiltinEvaluator) AddHint(code string, fn HintFunc) {
	e.hints[strings.TrimSpace(code)] = fn
}

// EvaluateHint implements HintEvaluator.
func (e *BuiltinEvaluator) EvaluateHint(state MachineState, scope *Scope, code string, symbols SymbolTable) error {
	code = strings.TrimSpace(code)

	if fn, ok := e.hints[code]; ok {
		return fn(state, scope, symbols)
	}

	lhs, rhs, ok := strings.Cut(code, "=")
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownHint, code)
	}

	dst, err := lvalue(state, symbols, strings.TrimSpace(lhs))
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnknownHint, code, err)
	}

	value, err := operand(state, symbols, strings.TrimSpace(rhs))
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnknownHint, code, err)
	}

	return state.Write(dst, value)
}

func lvalue(state MachineState, symbols SymbolTable, text string) (Address, error) {
	if text == "memory[ap]" {
		return state.AP(), nil
	}

	if name, ok := strings.CutPrefix(text, "ids."); ok {
		off, found := symbols.Reference(name)
		if !found {
			return 0, fmt.Errorf("unknown identifier %q", name)
		}

		return state.FP() + Address(off), nil
	}

	return 0, fmt.Errorf("cannot assign to %q", text)
}

func operand(state MachineState, symbols SymbolTable, text string) (Value, error) {
	if v, ok := ParseValue(text); ok {
		return v, nil
	}

	if name, ok := strings.CutPrefix(text, "ids."); ok {
		off, found := symbols.Reference(name)
		if !found {
			return 0, fmt.Errorf("unknown identifier %q", name)
		}

		return state.Read(state.FP() + Address(off))
	}

	return 0, fmt.Errorf("invalid operand %q", text)
}

// ParseValue parses an integer literal: decimal, 0x hexadecimal, 0o octal or
// 0b binary, with an optional sign.
func ParseValue(text string) (Value, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(text), 0, 64)
	if err != nil {
		return 0, false
	}

	return Value(n), true
}

type rawHint struct {
	code    string
	symbols SymbolTable
}

// EvaluatorProcessor is a HintProcessor that hands every annotation to an
// evaluator unchanged. Machines use it when no processor is installed.
type EvaluatorProcessor struct {
	Evaluator HintEvaluator
}

// CompileHint implements HintProcessor.
func (p EvaluatorProcessor) CompileHint(code string, symbols SymbolTable) (CompiledHint, error) {
	return rawHint{code: code, symbols: symbols}, nil
}

// ExecuteHint implements HintProcessor.
func (p EvaluatorProcessor) ExecuteHint(state MachineState, scope *Scope, hint CompiledHint) error {
	raw, ok := hint.(rawHint)
	if !ok {
		return fmt.Errorf("%w: unexpected compiled hint %T", ErrUnknownHint, hint)
	}

	return p.Evaluator.EvaluateHint(state, scope, raw.code, raw.symbols)
}
