package hints

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"foundry.dev/pkg/foundry/internal/engine"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantKind Kind
		wantName string
		wantArgs []string
	}{
		{
			name:     "no arguments",
			text:     "skip()",
			wantKind: NamedCall,
			wantName: "skip",
		},
		{
			name:     "surrounding whitespace",
			text:     "  expect_revert()\n",
			wantKind: NamedCall,
			wantName: "expect_revert",
		},
		{
			name:     "arguments are trimmed and not evaluated",
			text:     "mock_call( callee ,  ids.x + 1 )",
			wantKind: NamedCall,
			wantName: "mock_call",
			wantArgs: []string{"callee", "ids.x + 1"},
		},
		{
			name:     "blank argument list",
			text:     "skip(   )",
			wantKind: NamedCall,
			wantName: "skip",
		},
		{
			name:     "empty arguments are kept",
			text:     "mock_call(a,,b)",
			wantKind: NamedCall,
			wantName: "mock_call",
			wantArgs: []string{"a", "", "b"},
		},
		{
			name:     "assignment stays raw",
			text:     "memory[ap] = 3",
			wantKind: RawPassthrough,
		},
		{
			name:     "trailing text after the call stays raw",
			text:     "skip() # later",
			wantKind: RawPassthrough,
		},
		{
			name:     "call expression on the right of an assignment stays raw",
			text:     "ids.x = f(1)",
			wantKind: RawPassthrough,
		},
		{
			name:     "no name before the parenthesis",
			text:     "(1)",
			wantKind: RawPassthrough,
		},
		{
			name:     "empty",
			text:     "",
			wantKind: RawPassthrough,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := Compile(tt.text, engine.SymbolTable{})

			assert.Equal(t, tt.wantKind, inv.Kind)
			assert.Equal(t, tt.text, inv.Text)

			if tt.wantKind == NamedCall {
				assert.Equal(t, tt.wantName, inv.Name)
				assert.Equal(t, tt.wantArgs, inv.Args)
			}
		})
	}
}
