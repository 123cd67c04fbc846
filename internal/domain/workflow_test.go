package domain_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"foundry.dev/pkg/foundry/internal/adapter"
	adaptermocks "foundry.dev/pkg/foundry/internal/adapter/mocks"
	controllermocks "foundry.dev/pkg/foundry/internal/controller/mocks"
	"foundry.dev/pkg/foundry/internal/domain"
	m "foundry.dev/pkg/foundry/internal/model"
	"foundry.dev/pkg/foundry/internal/runctx"
)

const passingSrc = `
func test_ok:
    %{ print(1) %}
    push 1
    push 1
    assert_eq
    ret
`

const mixedSrc = `
func test_z:
    ret

func test_a:
    push 1
    push 2
    assert_eq
    ret

func test_m:
    %{ skip() %}
    nop
    ret
`

type workflowFixture struct {
	root     string
	cacheDir m.Path
	ui       *controllermocks.MockUI
	compiler *adaptermocks.MockCompilerAdapter
	registry *runctx.Registry
	workflow domain.Workflow
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()

	f := &workflowFixture{
		root:     t.TempDir(),
		cacheDir: m.Path(t.TempDir()),
		ui:       controllermocks.NewMockUI(t),
		compiler: adaptermocks.NewMockCompilerAdapter(t),
		registry: runctx.NewRegistry(),
	}

	fsAdapter := adapter.NewLocalSourceFSAdapter()
	f.workflow = domain.NewWorkflow(
		fsAdapter,
		f.ui,
		domain.NewCompileCache(fsAdapter, f.compiler, adapter.NewJSONCacheStore()),
		domain.NewRunner(f.registry),
	)

	return f
}

func (f *workflowFixture) testArgs(threads int) domain.TestArgs {
	return domain.TestArgs{
		ListArgs: domain.ListArgs{Root: m.Path(f.root)},
		Threads:  threads,
		MaxSteps: 10_000,
		CacheDir: f.cacheDir,
		UseCache: true,
	}
}

func (f *workflowFixture) expectSession() {
	f.ui.EXPECT().Start(mock.Anything, mock.Anything).Return(nil)
	f.ui.EXPECT().Close(mock.Anything).Return()
}

// compileOrFail assembles every file except those named broken.
func compileOrFail(broken string) func(context.Context, m.Path) ([]byte, error) {
	return func(ctx context.Context, path m.Path) ([]byte, error) {
		if filepath.Base(string(path)) == broken {
			return nil, &adapter.CompileError{Path: path, ExitCode: 1, Stderr: "line 2: unknown instruction"}
		}

		return assembleFromDisk(ctx, path)
	}
}

func stripElapsed(results []m.FileResult) []m.FileResult {
	for i := range results {
		for j := range results[i].Outcomes {
			results[i].Outcomes[j].Elapsed = 0
		}
	}

	return results
}

func TestWorkflow_Test(t *testing.T) {
	f := newWorkflowFixture(t)
	writeSource(t, f.root, "test_one.sasm", passingSrc)
	writeSource(t, f.root, "b/test_two.sasm", mixedSrc)
	writeSource(t, f.root, "test_broken.sasm", "func test_x:\n    bogus\n")
	writeSource(t, f.root, "helper.sasm", passingSrc)

	f.compiler.EXPECT().Compile(mock.Anything, mock.Anything).RunAndReturn(compileOrFail("test_broken.sasm")).Times(3)
	f.expectSession()
	f.ui.EXPECT().DisplayRunInfo(mock.Anything, 3, 2).Return()

	var displayed []m.FileResult

	f.ui.EXPECT().DisplayResults(mock.Anything, mock.Anything).
		Run(func(_ context.Context, results []m.FileResult) { displayed = results }).
		Return(nil).Once()

	err := f.workflow.Test(context.Background(), f.testArgs(2))
	require.ErrorIs(t, err, domain.ErrTestsFailed)

	require.Len(t, displayed, 3)
	stripElapsed(displayed)

	require.Len(t, displayed[0].Outcomes, 3)
	assert.Contains(t, displayed[0].Outcomes[0].Message, "assertion failed: 1 != 2")
	displayed[0].Outcomes[0].Message = ""

	assert.Equal(t, []m.FileResult{
		{
			Path: "b/test_two.sasm",
			Outcomes: []m.TestOutcome{
				{Name: "test_a", Status: m.Failure},
				{Name: "test_m", Status: m.Skipped},
				{Name: "test_z", Status: m.Success},
			},
		},
		{
			Path: "test_broken.sasm",
			Err:  "compiling " + filepath.Join(f.root, "test_broken.sasm") + ": compiler exited with status 1: line 2: unknown instruction",
		},
		{
			Path:     "test_one.sasm",
			Outcomes: []m.TestOutcome{{Name: "test_ok", Status: m.Success, Output: "1\n"}},
		},
	}, displayed)

	assert.Zero(t, f.registry.Active())
}

func TestWorkflow_TestUsesTheCache(t *testing.T) {
	f := newWorkflowFixture(t)
	one := writeSource(t, f.root, "test_one.sasm", passingSrc)
	two := writeSource(t, f.root, "nested/test_two.sasm", passingSrc)

	f.compiler.EXPECT().Compile(mock.Anything, one.Path).RunAndReturn(assembleFromDisk).Once()
	f.compiler.EXPECT().Compile(mock.Anything, two.Path).RunAndReturn(assembleFromDisk).Once()
	f.expectSession()
	f.ui.EXPECT().DisplayRunInfo(mock.Anything, 2, 4).Return()

	var runs [][]m.FileResult

	f.ui.EXPECT().DisplayResults(mock.Anything, mock.Anything).
		Run(func(_ context.Context, results []m.FileResult) { runs = append(runs, stripElapsed(results)) }).
		Return(nil).Twice()

	require.NoError(t, f.workflow.Test(context.Background(), f.testArgs(4)))
	require.NoError(t, f.workflow.Test(context.Background(), f.testArgs(4)))

	require.Len(t, runs, 2)
	assert.Equal(t, runs[0], runs[1])
	assert.Equal(t, m.Path("nested/test_two.sasm"), runs[0][0].Path)
	assert.FileExists(t, filepath.Join(string(f.cacheDir), domain.CompiledDir, "nested", "test_two.json"))
}

func TestWorkflow_TestExcludeAndZeroThreads(t *testing.T) {
	f := newWorkflowFixture(t)
	writeSource(t, f.root, "test_one.sasm", passingSrc)
	writeSource(t, f.root, "vendor/test_two.sasm", mixedSrc)

	f.compiler.EXPECT().Compile(mock.Anything, mock.Anything).RunAndReturn(assembleFromDisk).Once()
	f.expectSession()
	f.ui.EXPECT().DisplayRunInfo(mock.Anything, 1, 1).Return()
	f.ui.EXPECT().DisplayResults(mock.Anything, mock.MatchedBy(func(results []m.FileResult) bool {
		return len(results) == 1 && results[0].Path == "test_one.sasm"
	})).Return(nil).Once()

	args := f.testArgs(0)
	args.Exclude = []string{"^vendor/"}

	require.NoError(t, f.workflow.Test(context.Background(), args))
}

func TestWorkflow_TestNoFiles(t *testing.T) {
	f := newWorkflowFixture(t)

	f.expectSession()
	f.ui.EXPECT().DisplayRunInfo(mock.Anything, 0, 1).Return()
	f.ui.EXPECT().DisplayResults(mock.Anything, []m.FileResult{}).Return(nil).Once()

	require.NoError(t, f.workflow.Test(context.Background(), f.testArgs(1)))
}

func TestWorkflow_TestMissingRoot(t *testing.T) {
	f := newWorkflowFixture(t)
	f.expectSession()

	args := f.testArgs(1)
	args.Root = m.Path(filepath.Join(f.root, "missing"))

	err := f.workflow.Test(context.Background(), args)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "find test files")
}

func TestWorkflow_StartFailure(t *testing.T) {
	ui := controllermocks.NewMockUI(t)
	ui.EXPECT().Start(mock.Anything, mock.Anything).Return(errors.New("no terminal"))

	workflow := domain.NewWorkflow(
		adaptermocks.NewMockSourceFSAdapter(t),
		ui,
		nil,
		nil,
	)

	require.EqualError(t, workflow.List(context.Background(), domain.ListArgs{Root: "."}), "no terminal")
}

func TestWorkflow_List(t *testing.T) {
	f := newWorkflowFixture(t)
	writeSource(t, f.root, "test_one.sasm", passingSrc)
	writeSource(t, f.root, "b/test_two.sasm", mixedSrc)
	writeSource(t, f.root, "b/notes.txt", "")

	f.expectSession()
	f.ui.EXPECT().DisplayTestFiles(mock.Anything, []m.Path{"b/test_two.sasm", "test_one.sasm"}).Return(nil).Once()

	require.NoError(t, f.workflow.List(context.Background(), domain.ListArgs{Root: m.Path(f.root)}))
}

func TestWorkflow_ListFindError(t *testing.T) {
	fsAdapter := adaptermocks.NewMockSourceFSAdapter(t)
	fsAdapter.EXPECT().FindTestFiles(mock.Anything, m.Path("src"), "", []string(nil)).Return(nil, errors.New("denied"))

	ui := controllermocks.NewMockUI(t)
	ui.EXPECT().Start(mock.Anything, mock.Anything).Return(nil)
	ui.EXPECT().Close(mock.Anything).Return()

	workflow := domain.NewWorkflow(fsAdapter, ui, nil, nil)

	err := workflow.List(context.Background(), domain.ListArgs{Root: "src"})
	require.EqualError(t, err, "find test files: denied")
}

func TestWorkflow_Execute(t *testing.T) {
	f := newWorkflowFixture(t)
	file := writeSource(t, f.root, "prog.sasm", "func main:\n    %{ print(5) %}\n    nop\n    ret\n\nfunc fails:\n    push 1\n    push 2\n    assert_eq\n    ret\n")

	f.compiler.EXPECT().Compile(mock.Anything, file.Path).RunAndReturn(assembleFromDisk).Once()
	f.expectSession()

	var outcomes []m.TestOutcome

	f.ui.EXPECT().DisplayExecution(mock.Anything, file.Path, mock.Anything).
		Run(func(_ context.Context, _ m.Path, outcome m.TestOutcome) { outcomes = append(outcomes, outcome) }).
		Return(nil).Twice()

	args := domain.ExecuteArgs{File: file.Path, CacheDir: f.cacheDir, UseCache: true}
	require.NoError(t, f.workflow.Execute(context.Background(), args))

	args.Entrypoint = "fails"
	require.ErrorIs(t, f.workflow.Execute(context.Background(), args), domain.ErrTestsFailed)

	require.Len(t, outcomes, 2)
	assert.Equal(t, "main", outcomes[0].Name)
	assert.Equal(t, m.Success, outcomes[0].Status)
	assert.Equal(t, "5\n", outcomes[0].Output)
	assert.Equal(t, "fails", outcomes[1].Name)
	assert.Equal(t, m.Failure, outcomes[1].Status)
}

func TestWorkflow_ExecuteCompileError(t *testing.T) {
	f := newWorkflowFixture(t)
	file := writeSource(t, f.root, "prog.sasm", "func main:\n    bogus\n")

	f.compiler.EXPECT().Compile(mock.Anything, file.Path).RunAndReturn(compileOrFail("prog.sasm")).Once()
	f.expectSession()

	err := f.workflow.Execute(context.Background(), domain.ExecuteArgs{File: file.Path, CacheDir: f.cacheDir})

	var compileErr *adapter.CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, file.Path, compileErr.Path)
}

func TestWorkflow_Clean(t *testing.T) {
	f := newWorkflowFixture(t)
	record := filepath.Join(string(f.cacheDir), domain.CompiledDir, "a", "test_x.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(record), 0o750))
	require.NoError(t, os.WriteFile(record, []byte("{}"), 0o600))

	compiled := m.Path(filepath.Join(string(f.cacheDir), domain.CompiledDir))

	f.expectSession()
	f.ui.EXPECT().DisplayCleaned(mock.Anything, compiled).Return().Once()

	require.NoError(t, f.workflow.Clean(context.Background(), domain.CleanArgs{CacheDir: f.cacheDir}))

	assert.NoDirExists(t, string(compiled))
	assert.DirExists(t, string(f.cacheDir))
}
