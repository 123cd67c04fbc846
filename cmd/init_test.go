package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// chdirTemp moves the test into an empty working directory.
func chdirTemp(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	originalWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(originalWD)) })

	return dir
}

func runInit(t *testing.T) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	cmd.AddCommand(newInitCmd())

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"init"})

	err := cmd.Execute()

	return out.String(), err
}

func TestInitCmd_WritesFoundryDefaults(t *testing.T) {
	dir := chdirTemp(t)

	out, err := runInit(t)
	require.NoError(t, err)

	targetPath := filepath.Join(configFolderPath, configFileName)
	assert.Equal(t, "Wrote "+targetPath+"\n", out)

	contents, err := os.ReadFile(filepath.Join(dir, configFileName))
	require.NoError(t, err)

	var written struct {
		Version int `yaml:"version"`
		Cache   struct {
			Dir string `yaml:"dir"`
		} `yaml:"cache"`
		Run struct {
			MaxSteps int `yaml:"max_steps"`
		} `yaml:"run"`
		Paths struct {
			Pattern string   `yaml:"pattern"`
			Exclude []string `yaml:"exclude"`
		} `yaml:"paths"`
		Compiler struct {
			Command []string `yaml:"command"`
			Timeout int      `yaml:"timeout"`
		} `yaml:"compiler"`
		Output struct {
			Format string `yaml:"format"`
		} `yaml:"output"`
	}
	require.NoError(t, yaml.Unmarshal(contents, &written))

	assert.Equal(t, currentConfigVersion, written.Version)
	assert.Equal(t, defaultCacheDir, written.Cache.Dir)
	assert.Equal(t, defaultMaxSteps, written.Run.MaxSteps)
	assert.Equal(t, defaultTestFilePattern, written.Paths.Pattern)
	assert.Empty(t, written.Paths.Exclude)
	assert.Empty(t, written.Compiler.Command)
	assert.Equal(t, int(defaultCompilerTimeout.Seconds()), written.Compiler.Timeout)
	assert.Equal(t, defaultFormat, written.Output.Format)
}

func TestInitCmd_KeepsExistingConfig(t *testing.T) {
	dir := chdirTemp(t)

	targetPath := filepath.Join(dir, configFileName)
	require.NoError(t, os.WriteFile(targetPath, []byte("cache:\n  dir: custom\n"), 0o644))

	out, err := runInit(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write config file")
	assert.Empty(t, out)

	contents, err := os.ReadFile(targetPath)
	require.NoError(t, err)
	assert.Equal(t, "cache:\n  dir: custom\n", string(contents))
}
