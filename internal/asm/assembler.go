// Package asm compiles the textual stack-machine language into an
// engine.Program.
//
// A source file is a sequence of lines:
//
//	func name:           declare a function (identifier __main__.name)
//	label:               declare a label local to the current function
//	.ref name offset     bind a local variable to [fp+offset] for annotations
//	%{ code %}           annotate the next instruction
//	mnemonic [operand]   one instruction
//
// Comments start with // or #.
package asm

import (
	"errors"
	"fmt"
	"maps"
	"strconv"
	"strings"

	"foundry.dev/pkg/foundry/internal/engine"
)

// ErrSyntax is wrapped by every assembly error.
var ErrSyntax = errors.New("syntax error")

// Error is an assembly error located at a source line.
type Error struct {
	File string
	Line int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

// Unwrap makes every Error match ErrSyntax.
func (e *Error) Unwrap() error {
	return ErrSyntax
}

type item struct {
	line    int
	fn      string
	instr   engine.Instruction
	operand string
	pc      engine.Address
}

type assembler struct {
	file        string
	items       []item
	identifiers map[string]engine.Identifier
	hints       map[engine.Address][]engine.HintSpec
	pending     []string
	pendingLine int
	refs        map[string]int64
	fn          string
	pc          engine.Address
	errs        []error
}

// Assemble compiles src. file is only used in error messages.
func Assemble(file string, src []byte) (*engine.Program, error) {
	a := &assembler{
		file:        file,
		identifiers: map[string]engine.Identifier{},
		hints:       map[engine.Address][]engine.HintSpec{},
		refs:        map[string]int64{},
	}

	a.scan(string(src))

	if len(a.pending) > 0 {
		a.fail(a.pendingLine, "annotation is not followed by an instruction")
	}

	instructions := a.resolve()

	if len(a.errs) > 0 {
		return nil, errors.Join(a.errs...)
	}

	return engine.NewProgram(instructions, a.identifiers, a.hints)
}

func (a *assembler) fail(line int, format string, args ...any) {
	a.errs = append(a.errs, &Error{File: a.file, Line: line, Msg: fmt.Sprintf(format, args...)})
}

func (a *assembler) scan(src string) {
	lines := strings.Split(src, "\n")

	for i := 0; i < len(lines); i++ {
		lineNo := i + 1
		line := strings.TrimSpace(lines[i])

		if strings.HasPrefix(line, "%{") {
			code := strings.TrimPrefix(line, "%{")
			start := lineNo

			for !strings.Contains(code, "%}") && i+1 < len(lines) {
				i++
				code += "\n" + lines[i]
			}

			body, _, closed := strings.Cut(code, "%}")
			if !closed {
				a.fail(start, "unterminated annotation")
				return
			}

			a.pending = append(a.pending, strings.TrimSpace(body))
			a.pendingLine = start

			continue
		}

		line = stripComment(line)
		if line == "" {
			continue
		}

		a.scanLine(lineNo, line)
	}
}

func stripComment(line string) string {
	for _, marker := range []string{"//", "#"} {
		if idx := strings.Index(line, marker); idx >= 0 {
			line = line[:idx]
		}
	}

	return strings.TrimSpace(line)
}

func (a *assembler) scanLine(lineNo int, line string) {
	switch {
	case strings.HasPrefix(line, "func ") && strings.HasSuffix(line, ":"):
		name := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(line, "func "), ":"))
		if !isIdentifier(name) {
			a.fail(lineNo, "invalid function name %q", name)
			return
		}

		a.declare(lineNo, engine.MainScope+"."+name, engine.IdentifierFunction)
		a.fn = name
		a.refs = map[string]int64{}
	case strings.HasSuffix(line, ":"):
		name := strings.TrimSuffix(line, ":")
		if !isIdentifier(name) {
			a.fail(lineNo, "invalid label %q", name)
			return
		}

		a.declare(lineNo, a.labelName(a.fn, name), engine.IdentifierLabel)
	case strings.HasPrefix(line, ".ref "):
		fields := strings.Fields(line)
		if len(fields) != 3 || !isIdentifier(fields[1]) {
			a.fail(lineNo, "expected .ref <name> <offset>")
			return
		}

		off, err := strconv.ParseInt(fields[2], 0, 64)
		if err != nil {
			a.fail(lineNo, "invalid offset %q", fields[2])
			return
		}

		a.refs[fields[1]] = off
	default:
		a.scanInstruction(lineNo, line)
	}
}

func (a *assembler) declare(lineNo int, name string, kind engine.IdentifierType) {
	if _, dup := a.identifiers[name]; dup {
		a.fail(lineNo, "%q redeclared", name)
		return
	}

	a.identifiers[name] = engine.Identifier{Type: kind, PC: a.pc}
}

func (a *assembler) labelName(fn, label string) string {
	if fn == "" {
		return engine.MainScope + "." + label
	}

	return engine.MainScope + "." + fn + "." + label
}

func (a *assembler) scanInstruction(lineNo int, line string) {
	fields := strings.Fields(line)
	if len(fields) > 2 {
		a.fail(lineNo, "too many operands in %q", line)
		return
	}

	op, ok := engine.ParseOpcode(fields[0])
	if !ok {
		a.fail(lineNo, "unknown instruction %q", fields[0])
		return
	}

	it := item{line: lineNo, fn: a.fn, instr: engine.Instruction{Op: op}, pc: a.pc}
	if len(fields) == 2 {
		it.operand = fields[1]
	}

	if len(a.pending) > 0 {
		var refs map[string]int64
		if len(a.refs) > 0 {
			refs = maps.Clone(a.refs)
		}

		for _, code := range a.pending {
			a.hints[a.pc] = append(a.hints[a.pc], engine.HintSpec{Code: code, References: refs})
		}

		a.pending = nil
	}

	a.items = append(a.items, it)
	a.pc += it.instr.Size()
}

func (a *assembler) resolve() []engine.Instruction {
	out := make([]engine.Instruction, 0, len(a.items))

	for _, it := range a.items {
		instr := it.instr

		switch instr.Op {
		case engine.OpPush:
			v, ok := engine.ParseValue(it.operand)
			if !ok {
				a.fail(it.line, "push expects an integer, got %q", it.operand)
			}

			instr.Imm = v
		case engine.OpJmp, engine.OpJnz, engine.OpCall:
			target, ok := a.target(it)
			if ok {
				instr.Imm = engine.Value(target - it.pc)
			}
		case engine.OpCallAbs:
			target, ok := a.target(it)
			if ok {
				instr.Imm = engine.Value(target)
			}
		case engine.OpLoad, engine.OpStore, engine.OpAlloc, engine.OpAddr:
			n, err := strconv.ParseInt(it.operand, 0, 64)
			if err != nil {
				a.fail(it.line, "%s expects an integer, got %q", instr.Op, it.operand)
			}

			instr.Arg = n
		case engine.OpRet:
			if it.operand != "" {
				n, err := strconv.ParseInt(it.operand, 0, 64)
				if err != nil || n < 0 {
					a.fail(it.line, "ret expects a value count, got %q", it.operand)
				}

				instr.Arg = n
			}
		default:
			if it.operand != "" {
				a.fail(it.line, "%s takes no operand", instr.Op)
			}
		}

		out = append(out, instr)
	}

	return out
}

// target resolves a jump or call operand: a label of the current function, a
// function name, or a literal offset relative to the instruction.
func (a *assembler) target(it item) (engine.Address, bool) {
	if it.operand == "" {
		a.fail(it.line, "%s expects a target", it.instr.Op)
		return 0, false
	}

	if rel, ok := engine.ParseValue(it.operand); ok {
		if it.instr.Op == engine.OpCallAbs {
			return engine.Address(rel), true
		}

		return it.pc + engine.Address(rel), true
	}

	for _, name := range []string{a.labelName(it.fn, it.operand), engine.MainScope + "." + it.operand} {
		if id, ok := a.identifiers[name]; ok {
			return id.PC, true
		}
	}

	a.fail(it.line, "undefined target %q", it.operand)

	return 0, false
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}

	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}

	return true
}
