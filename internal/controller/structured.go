package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	m "foundry.dev/pkg/foundry/internal/model"
)

// TestReport is the machine readable document of a test run.
type TestReport struct {
	Files   []m.FileResult `json:"files" yaml:"files"`
	Summary m.Summary      `json:"summary" yaml:"summary"`
}

// ListReport is the machine readable document of a file listing.
type ListReport struct {
	Files []m.Path `json:"files" yaml:"files"`
}

// ExecutionReport is the machine readable document of a single execution.
type ExecutionReport struct {
	File    m.Path        `json:"file" yaml:"file"`
	Outcome m.TestOutcome `json:"outcome" yaml:"outcome"`
}

// CleanReport is the machine readable document of a cache removal.
type CleanReport struct {
	Removed m.Path `json:"removed" yaml:"removed"`
}

// StructuredUI implements UI by writing one JSON or YAML document per command.
// Progress messages are not emitted so the output stays parseable.
type StructuredUI struct {
	cmd    *cobra.Command
	format string
	mode   StartMode
}

// NewStructuredUI creates a StructuredUI for format, FormatJSON or FormatYAML.
func NewStructuredUI(cmd *cobra.Command, format string) *StructuredUI {
	return &StructuredUI{cmd: cmd, format: format}
}

// Start records the mode the command runs in.
func (s *StructuredUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mode = newStartConfig(options...).mode

	return nil
}

// Close finalizes the UI.
func (s *StructuredUI) Close(_ context.Context) {}

// DisplayTestFiles writes a ListReport.
func (s *StructuredUI) DisplayTestFiles(ctx context.Context, files []m.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if files == nil {
		files = []m.Path{}
	}

	return s.encode(ListReport{Files: files})
}

// DisplayRunInfo is a no-op.
func (s *StructuredUI) DisplayRunInfo(_ context.Context, _ int, _ int) {}

// DisplayResults writes a TestReport.
func (s *StructuredUI) DisplayResults(ctx context.Context, results []m.FileResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if results == nil {
		results = []m.FileResult{}
	}

	return s.encode(TestReport{Files: results, Summary: m.Summarize(results)})
}

// DisplayExecution writes an ExecutionReport.
func (s *StructuredUI) DisplayExecution(ctx context.Context, file m.Path, outcome m.TestOutcome) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.encode(ExecutionReport{File: file, Outcome: outcome})
}

// DisplayCleaned writes a CleanReport.
func (s *StructuredUI) DisplayCleaned(ctx context.Context, dir m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	if err := s.encode(CleanReport{Removed: dir}); err != nil {
		_, _ = fmt.Fprintf(s.cmd.ErrOrStderr(), "failed to write report: %v\n", err)
	}
}

func (s *StructuredUI) encode(doc interface{}) error {
	out := s.cmd.OutOrStdout()

	if s.format == FormatYAML {
		return encodeYAML(out, doc)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encode %s report: %w", s.mode, err)
	}

	return nil
}

func encodeYAML(out io.Writer, doc interface{}) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)

	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}

	return encoder.Close()
}
