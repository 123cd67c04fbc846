package controller

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	m "foundry.dev/pkg/foundry/internal/model"
)

func TestStructuredUI_JSONResults(t *testing.T) {
	cmd, buf := newTestCommand()
	ui := NewStructuredUI(cmd, FormatJSON)
	ctx := context.Background()

	require.NoError(t, ui.Start(ctx, WithTestMode()))
	ui.DisplayRunInfo(ctx, 2, 4)
	require.NoError(t, ui.DisplayResults(ctx, sampleResults()))

	var report TestReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))

	require.Len(t, report.Files, 2)
	assert.Equal(t, m.Path("math/test_add.sasm"), report.Files[0].Path)
	assert.Equal(t, m.Failure, report.Files[0].Outcomes[1].Status)
	assert.Equal(t, "left\nright\n", report.Files[0].Outcomes[1].Output)
	assert.Equal(t, m.Summary{Files: 2, Passed: 1, Failed: 1, Skipped: 1, Errored: 1}, report.Summary)
	assert.Contains(t, buf.String(), `"status": "SKIPPED"`)
}

func TestStructuredUI_YAMLResults(t *testing.T) {
	cmd, buf := newTestCommand()
	ui := NewStructuredUI(cmd, FormatYAML)

	require.NoError(t, ui.DisplayResults(context.Background(), sampleResults()))

	var report TestReport
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &report))

	require.Len(t, report.Files, 2)
	assert.Equal(t, "test_overflow", report.Files[0].Outcomes[1].Name)
	assert.Equal(t, m.Skipped, report.Files[0].Outcomes[2].Status)
	assert.Equal(t, "compile test_broken.sasm: exit status 1", report.Files[1].Err)
	assert.Equal(t, 1, report.Summary.Errored)
}

func TestStructuredUI_EmptyListIsAnArray(t *testing.T) {
	cmd, buf := newTestCommand()
	ui := NewStructuredUI(cmd, FormatJSON)

	require.NoError(t, ui.Start(context.Background(), WithListMode()))
	require.NoError(t, ui.DisplayTestFiles(context.Background(), nil))

	assert.JSONEq(t, `{"files": []}`, buf.String())
}

func TestStructuredUI_Execution(t *testing.T) {
	cmd, buf := newTestCommand()
	ui := NewStructuredUI(cmd, FormatJSON)

	outcome := m.TestOutcome{Name: "main", Status: m.Success, Output: "7\n"}
	require.NoError(t, ui.DisplayExecution(context.Background(), "prog.sasm", outcome))

	var report ExecutionReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))

	assert.Equal(t, m.Path("prog.sasm"), report.File)
	assert.Equal(t, outcome, report.Outcome)
}

func TestStructuredUI_Cleaned(t *testing.T) {
	cmd, buf := newTestCommand()
	ui := NewStructuredUI(cmd, FormatYAML)

	ui.DisplayCleaned(context.Background(), ".foundry")

	assert.Equal(t, "removed: .foundry\n", buf.String())
}
