package engine

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// MainScope prefixes every identifier declared by the compiled source file.
const MainScope = "__main__"

// IdentifierType classifies a program identifier.
type IdentifierType string

// Identifier types emitted by the compiler.
const (
	IdentifierFunction IdentifierType = "function"
	IdentifierLabel    IdentifierType = "label"
)

// Identifier is a named program offset.
type Identifier struct {
	Type IdentifierType `json:"type"`
	PC   Address        `json:"pc"`
}

// HintSpec is an annotation attached to an instruction: its source text and
// the local variables (name to fp-relative offset) visible at that point.
type HintSpec struct {
	Code       string           `json:"code"`
	References map[string]int64 `json:"references,omitempty"`
}

// Program is a compiled artifact.
type Program struct {
	Instructions []Instruction          `json:"instructions"`
	Identifiers  map[string]Identifier  `json:"identifiers"`
	Hints        map[Address][]HintSpec `json:"hints,omitempty"`

	offsets map[Address]int
	end     Address
}

// NewProgram builds a program and indexes its instruction offsets.
func NewProgram(instructions []Instruction, identifiers map[string]Identifier, hints map[Address][]HintSpec) (*Program, error) {
	p := &Program{
		Instructions: instructions,
		Identifiers:  identifiers,
		Hints:        hints,
	}

	if err := p.index(); err != nil {
		return nil, err
	}

	return p, nil
}

// DecodeProgram parses a JSON-encoded program.
func DecodeProgram(data []byte) (*Program, error) {
	var p Program
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProgram, err)
	}

	if err := p.index(); err != nil {
		return nil, err
	}

	return &p, nil
}

// Encode returns the JSON encoding of the program.
func (p *Program) Encode() ([]byte, error) {
	return json.Marshal(p)
}

func (p *Program) index() error {
	if p.Identifiers == nil {
		p.Identifiers = map[string]Identifier{}
	}

	p.offsets = make(map[Address]int, len(p.Instructions))

	var pc Address

	for i, instr := range p.Instructions {
		if _, ok := opcodeNames[instr.Op]; !ok {
			return fmt.Errorf("%w: instruction %d: %w", ErrInvalidProgram, i, ErrUnknownOpcode)
		}

		p.offsets[pc] = i
		pc += instr.Size()
	}

	p.end = pc

	for name, id := range p.Identifiers {
		if _, ok := p.offsets[id.PC]; !ok && id.PC != p.end {
			return fmt.Errorf("%w: identifier %q points to offset %d", ErrInvalidProgram, name, id.PC)
		}
	}

	for pc := range p.Hints {
		if _, ok := p.offsets[pc]; !ok {
			return fmt.Errorf("%w: hint attached to offset %d", ErrInvalidProgram, pc)
		}
	}

	return nil
}

// End is the offset right after the last instruction. Returning to it ends a
// run.
func (p *Program) End() Address {
	return p.end
}

// InstructionAt decodes the instruction starting at pc.
func (p *Program) InstructionAt(pc Address) (Instruction, error) {
	i, ok := p.offsets[pc]
	if !ok {
		return Instruction{}, fmt.Errorf("%w: %d", ErrInvalidPC, pc)
	}

	return p.Instructions[i], nil
}

// Function returns the entry offset of a function, given either its fully
// qualified name or its name inside the main scope.
func (p *Program) Function(name string) (Address, bool) {
	for _, candidate := range []string{name, MainScope + "." + name} {
		if id, ok := p.Identifiers[candidate]; ok && id.Type == IdentifierFunction {
			return id.PC, true
		}
	}

	return 0, false
}

// Functions returns the names of all functions declared in the main scope,
// without the scope prefix, sorted.
func (p *Program) Functions() []string {
	prefix := MainScope + "."
	names := make([]string, 0, len(p.Identifiers))

	for name, id := range p.Identifiers {
		if id.Type == IdentifierFunction && strings.HasPrefix(name, prefix) {
			names = append(names, strings.TrimPrefix(name, prefix))
		}
	}

	sort.Strings(names)

	return names
}
