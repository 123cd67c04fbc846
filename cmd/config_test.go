package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "foundry", configBaseName)
	assert.Equal(t, "foundry.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "cache.dir", cacheDirConfigKey)
	assert.Equal(t, "run.parallel", runParallelConfigKey)
	assert.Equal(t, "run.max_steps", maxStepsConfigKey)
	assert.Equal(t, "paths.exclude", excludeConfigKey)
	assert.Equal(t, "paths.pattern", patternConfigKey)
	assert.Equal(t, "compiler.command", compilerCommandConfigKey)
	assert.Equal(t, "output.format", formatConfigKey)
	assert.Equal(t, ".foundry", defaultCacheDir)
	assert.Equal(t, 1_000_000, defaultMaxSteps)
	assert.Equal(t, "FOUNDRY", envPrefix)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

// withConfig overrides key for the duration of the test. A nil override is
// ignored by viper, which restores flag, env and default lookups.
func withConfig(t *testing.T, key string, value interface{}) {
	t.Helper()

	viper.Set(key, value)

	t.Cleanup(func() { viper.Set(key, nil) })
}

func TestRunThreads(t *testing.T) {
	withConfig(t, runParallelConfigKey, 0)
	assert.Equal(t, runtime.NumCPU(), runThreads())

	withConfig(t, runParallelConfigKey, 3)
	assert.Equal(t, 3, runThreads())
}

func TestMaxSteps(t *testing.T) {
	withConfig(t, maxStepsConfigKey, 500)
	assert.Equal(t, uint64(500), maxSteps())

	withConfig(t, maxStepsConfigKey, -1)
	assert.Equal(t, uint64(0), maxSteps())
}

func TestCompilerCommand(t *testing.T) {
	withConfig(t, compilerCommandConfigKey, []string{})

	command, err := compilerCommand()
	require.NoError(t, err)
	require.Len(t, command, 2)
	assert.True(t, filepath.IsAbs(command[0]))
	assert.Equal(t, compileCmdName, command[1])

	withConfig(t, compilerCommandConfigKey, "sasm-compile --json")

	command, err = compilerCommand()
	require.NoError(t, err)
	assert.Equal(t, []string{"sasm-compile", "--json"}, command)
}

func TestCompilerTimeout(t *testing.T) {
	withConfig(t, compilerTimeoutConfigKey, 5)
	assert.Equal(t, 5*time.Second, compilerTimeout())

	withConfig(t, compilerTimeoutConfigKey, 0)
	assert.Equal(t, defaultCompilerTimeout, compilerTimeout())
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"", slog.LevelWarn},
		{"debug", slog.LevelDebug},
		{" INFO ", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
		{"loud", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelWarn))
		})
	}
}

func TestConfigureLogger(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	logPath := filepath.Join(t.TempDir(), "foundry.log")

	configureLogger(logPath, true)
	slog.Debug("debug line", "key", "value")

	contents, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "debug line")
	assert.Contains(t, string(contents), "key=value")

	withConfig(t, logLevelKey, "error")
	configureLogger(logPath, false)
	slog.Info("hidden line")

	contents, err = os.ReadFile(logPath)
	require.NoError(t, err)
	assert.NotContains(t, string(contents), "hidden line")
}
