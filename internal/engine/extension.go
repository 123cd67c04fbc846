package engine

// SymbolTable lists the names an annotation can refer to at its program point.
type SymbolTable struct {
	// References maps a local variable name to its fp-relative offset.
	References map[string]int64
	// Functions maps a function name to its entry offset.
	Functions map[string]Address
}

// Reference returns the fp-relative offset bound to name.
func (s SymbolTable) Reference(name string) (int64, bool) {
	off, ok := s.References[name]
	return off, ok
}

// Function returns the entry offset of the named function.
func (s SymbolTable) Function(name string) (Address, bool) {
	pc, ok := s.Functions[name]
	return pc, ok
}

// Scope is the per-run variable scope the machine threads through every hint
// and hook invocation.
type Scope struct {
	vars map[string]any
}

// NewScope returns an empty scope.
func NewScope() *Scope {
	return &Scope{vars: map[string]any{}}
}

// Get returns the variable stored under key.
func (s *Scope) Get(key string) (any, bool) {
	v, ok := s.vars[key]
	return v, ok
}

// Set stores value under key, replacing any previous value.
func (s *Scope) Set(key string, value any) {
	s.vars[key] = value
}

// MachineState is the register and memory access granted to hints and hooks.
//
//nolint:interfacebloat // Mirrors the register file plus memory access.
type MachineState interface {
	PC() Address
	AP() Address
	FP() Address
	SetPC(pc Address)
	SetAP(ap Address)
	Read(addr Address) (Value, error)
	Write(addr Address, value Value) error
	// CurrentInstruction decodes the instruction at pc.
	CurrentInstruction() (Instruction, error)
	// ResolveCallTarget computes the entry offset a call-class instruction
	// would jump to, without executing it.
	ResolveCallTarget(instr Instruction) (Address, error)
	// SkipInstruction makes the machine skip its own execution of the current
	// instruction. Used when a hook already applied the instruction's effect.
	SkipInstruction()
	// Steps returns the number of steps executed so far.
	Steps() uint64
}

// CompiledHint is the processor-specific form of an annotation, produced once
// by CompileHint and handed back on every execution.
type CompiledHint any

// HintProcessor compiles and executes annotations.
type HintProcessor interface {
	CompileHint(code string, symbols SymbolTable) (CompiledHint, error)
	ExecuteHint(state MachineState, scope *Scope, hint CompiledHint) error
}

// HintEvaluator is the machine's own evaluator for raw annotation text.
type HintEvaluator interface {
	EvaluateHint(state MachineState, scope *Scope, code string, symbols SymbolTable) error
}

// StepHook runs before every instruction.
type StepHook interface {
	PreStep(state MachineState, scope *Scope) error
}

// HintGuard is implemented by step hooks that may refuse a step before the
// hints attached to it run.
type HintGuard interface {
	BeforeHints(state MachineState, scope *Scope) error
}
