// Package hints turns annotation text into invocations and runs them against
// the per-run state kept in the run context registry.
package hints

import (
	"strings"

	"foundry.dev/pkg/foundry/internal/engine"
)

// Kind tells named harness calls from text handed to the engine evaluator.
type Kind int

// Invocation kinds.
const (
	RawPassthrough Kind = iota
	NamedCall
)

func (k Kind) String() string {
	if k == NamedCall {
		return "named call"
	}

	return "raw"
}

// Invocation is the compiled form of one annotation.
type Invocation struct {
	Kind Kind
	// Text is the annotation as written, before trimming.
	Text string
	Name string
	// Args are the raw argument expressions. They are resolved at execution.
	Args    []string
	Symbols engine.SymbolTable
}

// Compile classifies text. Text of the form name(args) becomes a NamedCall
// with comma separated, trimmed, unevaluated arguments; anything else is kept
// verbatim as a RawPassthrough.
func Compile(text string, symbols engine.SymbolTable) *Invocation {
	raw := &Invocation{Kind: RawPassthrough, Text: text, Symbols: symbols}

	trimmed := strings.TrimSpace(text)
	if !strings.HasSuffix(trimmed, ")") {
		return raw
	}

	name, rest, found := strings.Cut(trimmed, "(")
	if !found || !isIdentifier(name) {
		return raw
	}

	inner := strings.TrimSuffix(rest, ")")

	var args []string

	if strings.TrimSpace(inner) != "" {
		for _, arg := range strings.Split(inner, ",") {
			args = append(args, strings.TrimSpace(arg))
		}
	}

	return &Invocation{
		Kind:    NamedCall,
		Text:    text,
		Name:    name,
		Args:    args,
		Symbols: symbols,
	}
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
