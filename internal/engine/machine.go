package engine

import (
	"fmt"
	"log/slog"
)

// TraceEntry is the register file observed at the start of a step.
type TraceEntry struct {
	PC Address
	AP Address
	FP Address
}

// Option configures a Machine.
type Option func(*Machine)

// WithHintProcessor installs the processor that compiles and executes the
// program's annotations.
func WithHintProcessor(processor HintProcessor) Option {
	return func(m *Machine) {
		m.processor = processor
	}
}

// WithStepHooks installs hooks run before every instruction, in order.
func WithStepHooks(hooks ...StepHook) Option {
	return func(m *Machine) {
		m.hooks = append(m.hooks, hooks...)
	}
}

// WithTracer registers a callback receiving the registers of every step.
func WithTracer(tracer func(TraceEntry)) Option {
	return func(m *Machine) {
		m.tracer = tracer
	}
}

// Machine executes one program entrypoint. A machine is single-use.
type Machine struct {
	program   *Program
	memory    *Memory
	scope     *Scope
	processor HintProcessor
	hooks     []StepHook
	tracer    func(TraceEntry)
	functions map[string]Address
	compiled  map[Address][]CompiledHint

	pc    Address
	ap    Address
	fp    Address
	steps uint64
	skip  bool
}

// NewMachine creates a machine for program.
func NewMachine(program *Program, opts ...Option) *Machine {
	m := &Machine{
		program:   program,
		memory:    NewMemory(),
		scope:     NewScope(),
		processor: EvaluatorProcessor{Evaluator: NewBuiltinEvaluator()},
		functions: map[string]Address{},
		compiled:  map[Address][]CompiledHint{},
	}

	for _, opt := range opts {
		opt(m)
	}

	for name, id := range program.Identifiers {
		if id.Type != IdentifierFunction {
			continue
		}

		m.functions[name] = id.PC
	}

	for _, name := range program.Functions() {
		pc, _ := program.Function(name)
		m.functions[name] = pc
	}

	return m
}

// Scope returns the per-run scope threaded through hints and hooks.
func (m *Machine) Scope() *Scope {
	return m.scope
}

// Memory returns the machine memory.
func (m *Machine) Memory() *Memory {
	return m.memory
}

// RunEntrypoint runs the named function until it returns.
func (m *Machine) RunEntrypoint(name string) error {
	entry, ok := m.program.Function(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEntrypoint, name)
	}

	// Synthesize the caller frame: returning from the entrypoint jumps to the
	// program end, which stops the run.
	if err := m.memory.Write(0, 0); err != nil {
		return err
	}

	if err := m.memory.Write(1, Value(m.program.End())); err != nil {
		return err
	}

	m.ap, m.fp, m.pc = 2, 2, entry

	slog.Debug("running entrypoint", "entrypoint", name, "pc", entry)

	return m.Run()
}

// Run steps the machine until pc reaches the program end or a step fails.
func (m *Machine) Run() error {
	for m.pc != m.program.End() {
		if err := m.Step(); err != nil {
			return err
		}
	}

	return nil
}

// Step asks the hint guards, runs the hints attached to pc, then the step
// hooks, then the instruction itself unless a hook asked to skip it.
func (m *Machine) Step() error {
	pc := m.pc

	if m.tracer != nil {
		m.tracer(TraceEntry{PC: m.pc, AP: m.ap, FP: m.fp})
	}

	for _, hook := range m.hooks {
		if guard, ok := hook.(HintGuard); ok {
			if err := guard.BeforeHints(m, m.scope); err != nil {
				return &StepError{PC: pc, Err: err}
			}
		}
	}

	if err := m.runHints(); err != nil {
		return &StepError{PC: pc, Err: err}
	}

	for _, hook := range m.hooks {
		if err := hook.PreStep(m, m.scope); err != nil {
			m.skip = false
			return &StepError{PC: pc, Err: err}
		}
	}

	if m.skip {
		m.skip = false
		m.steps++

		return nil
	}

	instr, err := m.program.InstructionAt(m.pc)
	if err != nil {
		return &StepError{PC: pc, Err: err}
	}

	if err := m.execute(instr); err != nil {
		return &StepError{PC: pc, Err: err}
	}

	m.steps++

	return nil
}

func (m *Machine) runHints() error {
	specs := m.program.Hints[m.pc]
	if len(specs) == 0 {
		return nil
	}

	compiled, ok := m.compiled[m.pc]
	if !ok {
		compiled = make([]CompiledHint, 0, len(specs))

		for _, spec := range specs {
			hint, err := m.processor.CompileHint(spec.Code, SymbolTable{
				References: spec.References,
				Functions:  m.functions,
			})
			if err != nil {
				return err
			}

			compiled = append(compiled, hint)
		}

		m.compiled[m.pc] = compiled
	}

	for _, hint := range compiled {
		if err := m.processor.ExecuteHint(m, m.scope, hint); err != nil {
			return err
		}
	}

	return nil
}

//nolint:cyclop,funlen // One case per opcode.
func (m *Machine) execute(instr Instruction) error {
	next := m.pc + instr.Size()

	switch instr.Op {
	case OpNop:
	case OpPush:
		if err := m.push(instr.Imm); err != nil {
			return err
		}
	case OpLoad:
		v, err := m.memory.Read(m.fp + Address(instr.Arg))
		if err != nil {
			return err
		}

		if err := m.push(v); err != nil {
			return err
		}
	case OpStore:
		v, err := m.pop()
		if err != nil {
			return err
		}

		if err := m.memory.Write(m.fp+Address(instr.Arg), v); err != nil {
			return err
		}
	case OpAlloc:
		m.ap += Address(instr.Arg)
	case OpAddr:
		if err := m.push(Value(m.fp + Address(instr.Arg))); err != nil {
			return err
		}
	case OpLoadIndirect:
		ptr, err := m.memory.Read(m.ap - 1)
		if err != nil {
			return err
		}

		v, err := m.memory.Read(Address(ptr))
		if err != nil {
			return err
		}

		if err := m.memory.Write(m.ap-1, v); err != nil {
			return err
		}
	case OpDup:
		v, err := m.memory.Read(m.ap - 1)
		if err != nil {
			return err
		}

		if err := m.push(v); err != nil {
			return err
		}
	case OpAdd, OpSub, OpMul:
		if err := m.arithmetic(instr.Op); err != nil {
			return err
		}
	case OpAssertEq:
		right, err := m.pop()
		if err != nil {
			return err
		}

		left, err := m.pop()
		if err != nil {
			return err
		}

		if left != right {
			return &AssertionError{Left: left, Right: right}
		}
	case OpJmp:
		next = m.pc + Address(instr.Imm)
	case OpJnz:
		v, err := m.pop()
		if err != nil {
			return err
		}

		if v != 0 {
			next = m.pc + Address(instr.Imm)
		}
	case OpCall, OpCallAbs:
		target, err := m.ResolveCallTarget(instr)
		if err != nil {
			return err
		}

		if err := m.push(Value(m.fp)); err != nil {
			return err
		}

		if err := m.push(Value(next)); err != nil {
			return err
		}

		m.fp = m.ap
		next = target
	case OpRet:
		return m.ret(int(instr.Arg))
	default:
		return fmt.Errorf("%w: %d", ErrUnknownOpcode, instr.Op)
	}

	m.pc = next

	return nil
}

func (m *Machine) arithmetic(op Opcode) error {
	right, err := m.pop()
	if err != nil {
		return err
	}

	left, err := m.pop()
	if err != nil {
		return err
	}

	var out Value

	switch op {
	case OpAdd:
		out = left + right
	case OpSub:
		out = left - right
	default:
		out = left * right
	}

	return m.push(out)
}

// ret moves the top n cells down to the cell holding the saved fp, so that
// the caller finds the return values at [ap-n, ap).
func (m *Machine) ret(n int) error {
	values, err := m.memory.ReadRange(m.ap-Address(n), n)
	if err != nil {
		return err
	}

	savedFP, err := m.memory.Read(m.fp - 2)
	if err != nil {
		return err
	}

	returnPC, err := m.memory.Read(m.fp - 1)
	if err != nil {
		return err
	}

	base := m.fp - 2
	for i, v := range values {
		if err := m.memory.Write(base+Address(i), v); err != nil {
			return err
		}
	}

	m.ap = base + Address(n)
	m.fp = Address(savedFP)
	m.pc = Address(returnPC)

	return nil
}

func (m *Machine) push(v Value) error {
	if err := m.memory.Write(m.ap, v); err != nil {
		return err
	}

	m.ap++

	return nil
}

func (m *Machine) pop() (Value, error) {
	v, err := m.memory.Read(m.ap - 1)
	if err != nil {
		return 0, err
	}

	m.ap--

	return v, nil
}

// PC implements MachineState.
func (m *Machine) PC() Address { return m.pc }

// AP implements MachineState.
func (m *Machine) AP() Address { return m.ap }

// FP implements MachineState.
func (m *Machine) FP() Address { return m.fp }

// SetPC implements MachineState.
func (m *Machine) SetPC(pc Address) { m.pc = pc }

// SetAP implements MachineState.
func (m *Machine) SetAP(ap Address) { m.ap = ap }

// Read implements MachineState.
func (m *Machine) Read(addr Address) (Value, error) { return m.memory.Read(addr) }

// Write implements MachineState.
func (m *Machine) Write(addr Address, value Value) error { return m.memory.Write(addr, value) }

// Steps implements MachineState.
func (m *Machine) Steps() uint64 { return m.steps }

// SkipInstruction implements MachineState.
func (m *Machine) SkipInstruction() { m.skip = true }

// CurrentInstruction implements MachineState.
func (m *Machine) CurrentInstruction() (Instruction, error) {
	return m.program.InstructionAt(m.pc)
}

// ResolveCallTarget implements MachineState.
func (m *Machine) ResolveCallTarget(instr Instruction) (Address, error) {
	switch instr.Op {
	case OpCall:
		return m.pc + Address(instr.Imm), nil
	case OpCallAbs:
		return Address(instr.Imm), nil
	default:
		return 0, fmt.Errorf("%s is not a call instruction", instr.Op)
	}
}
