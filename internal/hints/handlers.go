package hints

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"foundry.dev/pkg/foundry/internal/engine"
	"foundry.dev/pkg/foundry/internal/runctx"
)

func skip(call Call) error {
	if err := arity(call, 0); err != nil {
		return err
	}

	return ErrSkip
}

func expectRevert(call Call) error {
	if err := arity(call, 0); err != nil {
		return err
	}

	call.Run.RevertExpected = true

	return nil
}

// mock_call(target, value)
func mockCall(call Call) error {
	if err := arity(call, 2); err != nil {
		return err
	}

	target, err := function(call, call.Invocation.Args[0])
	if err != nil {
		return err
	}

	value, err := resolve(call, call.Invocation.Args[1])
	if err != nil {
		return err
	}

	slog.Debug("Mocking call", "target", call.Invocation.Args[0], "pc", target, "value", value)

	return call.Run.Mocks.Put(runctx.MockEntry{
		Target: target,
		Kind:   runctx.MockScalar,
		Value:  value,
	})
}

// mock_call_felt(target, length, values)
func mockCallFelt(call Call) error {
	if err := arity(call, 3); err != nil {
		return err
	}

	target, err := function(call, call.Invocation.Args[0])
	if err != nil {
		return err
	}

	length, err := resolve(call, call.Invocation.Args[1])
	if err != nil {
		return err
	}

	if length < 0 {
		return fmt.Errorf("%w: %s: negative length %d", ErrInvalidArguments, call.Invocation.Name, length)
	}

	source, err := resolve(call, call.Invocation.Args[2])
	if err != nil {
		return err
	}

	slog.Debug("Mocking call", "target", call.Invocation.Args[0], "pc", target, "length", length, "source", source)

	return call.Run.Mocks.Put(runctx.MockEntry{
		Target: target,
		Kind:   runctx.MockVector,
		Length: int(length),
		Source: engine.Address(source),
	})
}

func printValue(call Call) error {
	if err := arity(call, 1); err != nil {
		return err
	}

	value, err := resolve(call, call.Invocation.Args[0])
	if err != nil {
		return err
	}

	call.Run.Output.WriteString(strconv.FormatInt(int64(value), 10) + "\n")

	return nil
}

func arity(call Call, want int) error {
	if got := len(call.Invocation.Args); got != want {
		return fmt.Errorf("%w: %s takes %d arguments, got %d", ErrInvalidArguments, call.Invocation.Name, want, got)
	}

	return nil
}

// function resolves a callee name to its entry offset.
func function(call Call, name string) (engine.Address, error) {
	if pc, ok := call.Invocation.Symbols.Function(name); ok {
		return pc, nil
	}

	return 0, fmt.Errorf("%w: %s: no function named %q", ErrInvalidArguments, call.Invocation.Name, name)
}

// resolve evaluates an argument: an integer literal, a local variable read
// from [fp+offset], or a function name standing for its entry offset.
func resolve(call Call, expr string) (engine.Value, error) {
	if v, ok := engine.ParseValue(expr); ok {
		return v, nil
	}

	name := strings.TrimPrefix(expr, "ids.")
	if off, ok := call.Invocation.Symbols.Reference(name); ok {
		v, err := call.State.Read(call.State.FP() + engine.Address(off))
		if err != nil {
			return 0, fmt.Errorf("%s: reading %s: %w", call.Invocation.Name, expr, err)
		}

		return v, nil
	}

	if pc, ok := call.Invocation.Symbols.Function(expr); ok {
		return engine.Value(pc), nil
	}

	return 0, fmt.Errorf("%w: %s: cannot resolve %q", ErrInvalidArguments, call.Invocation.Name, expr)
}
