// Package controller provides output adapters for displaying test harness results.
package controller

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	m "foundry.dev/pkg/foundry/internal/model"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeTest StartMode = iota
	ModeList
	ModeExecute
	ModeClean
)

func (s StartMode) String() string {
	switch s {
	case ModeList:
		return "list"
	case ModeExecute:
		return "execute"
	case ModeClean:
		return "clean"
	default:
		return "test"
	}
}

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithTestMode sets the UI to test run mode.
func WithTestMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeTest
	}
}

// WithListMode sets the UI to test file listing mode.
func WithListMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeList
	}
}

// WithExecuteMode sets the UI to single entrypoint execution mode.
func WithExecuteMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeExecute
	}
}

// WithCleanMode sets the UI to cache cleaning mode.
func WithCleanMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeClean
	}
}

func newStartConfig(options ...StartOption) StartConfig {
	config := StartConfig{mode: ModeTest}
	for _, option := range options {
		option(&config)
	}

	return config
}

// UI defines the interface for displaying harness output.
// Implementations can use different output methods (text, JSON, YAML).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	DisplayTestFiles(ctx context.Context, files []m.Path) error
	DisplayRunInfo(ctx context.Context, files int, threads int)
	DisplayResults(ctx context.Context, results []m.FileResult) error
	DisplayExecution(ctx context.Context, file m.Path, outcome m.TestOutcome) error
	DisplayCleaned(ctx context.Context, dir m.Path)
}

// NewUI returns the UI for format, writing to the output of cmd.
func NewUI(cmd *cobra.Command, format string) (UI, error) {
	switch format {
	case "", FormatText:
		return NewSimpleUI(cmd), nil
	case FormatJSON, FormatYAML:
		return NewStructuredUI(cmd, format), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want %s, %s or %s)", format, FormatText, FormatJSON, FormatYAML)
	}
}
