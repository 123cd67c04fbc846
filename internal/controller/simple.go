package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "foundry.dev/pkg/foundry/internal/model"
)

// SimpleUI implements UI as human readable text on the command output.
type SimpleUI struct {
	cmd    *cobra.Command
	styles statusStyles
}

type statusStyles struct {
	success lipgloss.Style
	failure lipgloss.Style
	skipped lipgloss.Style
	faint   lipgloss.Style
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	renderer := lipgloss.NewRenderer(cmd.OutOrStdout())

	return &SimpleUI{
		cmd: cmd,
		styles: statusStyles{
			success: renderer.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
			failure: renderer.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
			skipped: renderer.NewStyle().Foreground(lipgloss.Color("3")),
			faint:   renderer.NewStyle().Faint(true),
		},
	}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	return ctx.Err()
}

// Close finalizes the UI.
func (s *SimpleUI) Close(_ context.Context) {}

// DisplayTestFiles prints one discovered test file per line.
func (s *SimpleUI) DisplayTestFiles(ctx context.Context, files []m.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, file := range files {
		s.printf("%s\n", file)
	}

	s.printf("\nTotal: %d test file(s)\n", len(files))

	return nil
}

// DisplayRunInfo shows the size of the run.
func (s *SimpleUI) DisplayRunInfo(ctx context.Context, files int, threads int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Running %d test file(s) with %d worker(s)\n\n", files, threads)
}

// DisplayResults prints every outcome grouped by file, then a summary table.
func (s *SimpleUI) DisplayResults(ctx context.Context, results []m.FileResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, result := range results {
		s.printf("%s\n", result.Path)

		if result.Err != "" {
			s.printf("  %s %s\n", s.styles.failure.Render("[ERROR]"), result.Err)
			continue
		}

		if len(result.Outcomes) == 0 {
			s.printf("  %s\n", s.styles.faint.Render("no test entrypoints"))
		}

		for _, outcome := range result.Outcomes {
			s.printOutcome(outcome)
		}
	}

	s.printf("\n%s", renderSummaryTable(results))

	return nil
}

// DisplayExecution prints the captured output and the verdict of one run.
func (s *SimpleUI) DisplayExecution(ctx context.Context, file m.Path, outcome m.TestOutcome) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if outcome.Output != "" {
		s.printf("%s", outcome.Output)

		if !strings.HasSuffix(outcome.Output, "\n") {
			s.printf("\n")
		}
	}

	s.printf("%s %s:%s (%s)\n", s.statusLabel(outcome.Status), file, outcome.Name, formatElapsed(outcome.Elapsed))

	if outcome.Message != "" {
		s.printf("  %s\n", outcome.Message)
	}

	return nil
}

// DisplayCleaned confirms the removal of the cache directory.
func (s *SimpleUI) DisplayCleaned(ctx context.Context, dir m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Removed %s\n", dir)
}

func (s *SimpleUI) printOutcome(outcome m.TestOutcome) {
	s.printf("  %s %s %s\n", s.statusLabel(outcome.Status), outcome.Name, s.styles.faint.Render("("+formatElapsed(outcome.Elapsed)+")"))

	if outcome.Message != "" {
		s.printf("      %s\n", outcome.Message)
	}

	if outcome.Output != "" {
		for _, line := range strings.Split(strings.TrimSuffix(outcome.Output, "\n"), "\n") {
			s.printf("      | %s\n", line)
		}
	}
}

func (s *SimpleUI) statusLabel(status m.TestStatus) string {
	label := "[" + status.String() + "]"

	switch status {
	case m.Success:
		return s.styles.success.Render(label)
	case m.Failure:
		return s.styles.failure.Render(label)
	case m.Skipped:
		return s.styles.skipped.Render(label)
	default:
		return label
	}
}

func renderSummaryTable(results []m.FileResult) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"File", "Passed", "Failed", "Skipped"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
	})

	for _, result := range results {
		fileSummary := m.Summarize([]m.FileResult{result})

		failed := fmt.Sprintf("%d", fileSummary.Failed)
		if result.Err != "" {
			failed = "compile error"
		}

		table.Append([]string{
			string(result.Path),
			fmt.Sprintf("%d", fileSummary.Passed),
			failed,
			fmt.Sprintf("%d", fileSummary.Skipped),
		})
	}

	summary := m.Summarize(results)
	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", summary.Files),
		fmt.Sprintf("%d", summary.Passed),
		fmt.Sprintf("%d", summary.Failed+summary.Errored),
		fmt.Sprintf("%d", summary.Skipped),
	})

	table.Render()

	return tableBuffer.String()
}

func formatElapsed(d time.Duration) string {
	return d.Round(time.Microsecond).String()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
