package adapter

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "foundry.dev/pkg/foundry/internal/model"
)

// These tests drive LocalCompilerAdapter with small shell scripts standing in
// for the compiler. The source path arrives as $0.

func TestLocalCompilerAdapter_Compile_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test_a.sasm")
	writeTestFile(t, path, `{"instructions":[]}`)

	adapter := NewLocalCompilerAdapter("sh", "-c", `cat "$0"`)

	out, err := adapter.Compile(context.Background(), m.Path(path))
	require.NoError(t, err)
	assert.Equal(t, `{"instructions":[]}`, string(out))
}

func TestLocalCompilerAdapter_Compile_Failure(t *testing.T) {
	adapter := NewLocalCompilerAdapter("sh", "-c", `echo "$0:3: unknown instruction" >&2; exit 3`)

	_, err := adapter.Compile(context.Background(), "broken.sasm")

	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, m.Path("broken.sasm"), compileErr.Path)
	assert.Equal(t, 3, compileErr.ExitCode)
	assert.Contains(t, compileErr.Stderr, "broken.sasm:3: unknown instruction")
	assert.Contains(t, err.Error(), "unknown instruction")
}

func TestLocalCompilerAdapter_Compile_MissingBinary(t *testing.T) {
	adapter := NewLocalCompilerAdapter(filepath.Join(t.TempDir(), "no-such-compiler"))

	_, err := adapter.Compile(context.Background(), "a.sasm")
	require.Error(t, err)

	var compileErr *CompileError
	assert.False(t, errors.As(err, &compileErr))
}

func TestLocalCompilerAdapter_Compile_NoCommand(t *testing.T) {
	_, err := NewLocalCompilerAdapter().Compile(context.Background(), "a.sasm")
	require.ErrorIs(t, err, ErrNoCompilerCommand)
}

func TestLocalCompilerAdapter_Compile_Timeout(t *testing.T) {
	adapter := NewLocalCompilerAdapter("sh", "-c", "exec sleep 5").WithTimeout(50 * time.Millisecond)

	start := time.Now()
	_, err := adapter.Compile(context.Background(), "slow.sasm")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}
