// Package domain holds the test harness logic: entrypoint discovery, the
// compile cache, single runs and the workflows behind the CLI commands.
package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"foundry.dev/pkg/foundry/internal/adapter"
	"foundry.dev/pkg/foundry/internal/controller"
	m "foundry.dev/pkg/foundry/internal/model"
	"foundry.dev/pkg/foundry/pkg"
)

// DefaultEntrypoint is the entrypoint Execute runs when none is named.
const DefaultEntrypoint = "main"

// ErrTestsFailed is returned when a run finished with failures.
var ErrTestsFailed = errors.New("tests failed")

// ListArgs selects the test files of a run.
type ListArgs struct {
	Root    m.Path
	Pattern string
	Exclude []string
}

// TestArgs contains the arguments for running every test file under a root.
type TestArgs struct {
	ListArgs
	Threads  int
	MaxSteps uint64
	CacheDir m.Path
	UseCache bool
	// SpillDir holds the temporary result spill. Empty means the system
	// temporary directory.
	SpillDir string
}

// ExecuteArgs contains the arguments for running one entrypoint of one file.
type ExecuteArgs struct {
	File       m.Path
	Entrypoint string
	MaxSteps   uint64
	CacheDir   m.Path
	UseCache   bool
}

// CleanArgs names the cache to remove.
type CleanArgs struct {
	CacheDir m.Path
}

// Workflow defines the operations behind the CLI commands.
type Workflow interface {
	Test(ctx context.Context, args TestArgs) error
	List(ctx context.Context, args ListArgs) error
	Execute(ctx context.Context, args ExecuteArgs) error
	Clean(ctx context.Context, args CleanArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	controller.UI
	CompileCache
	Runner
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	ui controller.UI,
	cache CompileCache,
	runner Runner,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		UI:              ui,
		CompileCache:    cache,
		Runner:          runner,
	}
}

// fileRecord carries the result of one file through the spill with its
// discovery index.
type fileRecord struct {
	Index  int
	Result m.FileResult
}

func (w *workflow) Test(ctx context.Context, args TestArgs) error {
	if err := w.Start(ctx, controller.WithTestMode()); err != nil {
		slog.Error("Failed to start UI", "error", err)
		return err
	}
	defer w.Close(ctx)

	files, err := w.FindTestFiles(ctx, args.Root, args.Pattern, args.Exclude)
	if err != nil {
		slog.Error("Failed to find test files", "root", args.Root, "error", err)
		return fmt.Errorf("find test files: %w", err)
	}

	threads := max(args.Threads, 1)
	w.DisplayRunInfo(ctx, len(files), threads)

	results, err := w.testFiles(ctx, files, args, threads)
	if err != nil {
		return err
	}

	if err := w.DisplayResults(ctx, results); err != nil {
		slog.Error("Failed to display results", "error", err)
		return fmt.Errorf("display: %w", err)
	}

	summary := m.Summarize(results)
	slog.Info("Test run finished", "files", summary.Files, "passed", summary.Passed,
		"failed", summary.Failed, "skipped", summary.Skipped, "errored", summary.Errored)

	if !summary.OK() {
		return ErrTestsFailed
	}

	return nil
}

// testFiles runs files on a pool of threads workers and returns their results
// in discovery order.
func (w *workflow) testFiles(ctx context.Context, files []m.TestFile, args TestArgs, threads int) ([]m.FileResult, error) {
	spill, err := pkg.NewSpill[fileRecord](args.SpillDir)
	if err != nil {
		return nil, fmt.Errorf("create result spill: %w", err)
	}

	defer func() {
		if err := spill.Close(); err != nil {
			slog.Warn("Failed to remove result spill", "path", spill.Path(), "error", err)
		}
	}()

	var group errgroup.Group
	group.SetLimit(threads)

	for i, file := range files {
		i, file := i, file
		group.Go(func() error {
			result := w.testFile(ctx, file, args)
			return spill.Append(fileRecord{Index: i, Result: result})
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("collect results: %w", err)
	}

	results := make([]m.FileResult, len(files))

	err = spill.Range(func(_ uint64, record fileRecord) error {
		if record.Index < 0 || record.Index >= len(results) {
			return fmt.Errorf("result index %d out of range", record.Index)
		}

		results[record.Index] = record.Result

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collect results: %w", err)
	}

	return results, nil
}

// testFile compiles file and runs its test entrypoints one after the other.
// A file that does not compile yields a result carrying the error.
func (w *workflow) testFile(ctx context.Context, file m.TestFile, args TestArgs) m.FileResult {
	result := m.FileResult{Path: w.displayPath(ctx, file)}

	program, err := w.GetOrCompile(ctx, CompileArgs{File: file, CacheDir: args.CacheDir, UseCache: args.UseCache})
	if err != nil {
		slog.Error("Failed to compile test file", "path", file.Path, "error", err)
		result.Err = err.Error()

		return result
	}

	names := DiscoverEntrypoints(program)
	result.Outcomes = make([]m.TestOutcome, 0, len(names))

	for _, name := range names {
		result.Outcomes = append(result.Outcomes, w.RunEntrypoint(ctx, program, name, args.MaxSteps))
	}

	return result
}

// displayPath is the path of file relative to its discovery root, or the
// path as found when no relative form exists.
func (w *workflow) displayPath(ctx context.Context, file m.TestFile) m.Path {
	if file.Root == "" {
		return file.Path
	}

	rel, err := w.RelPath(ctx, file.Root, file.Path)
	if err != nil {
		return file.Path
	}

	return m.Path(filepath.ToSlash(string(rel)))
}

func (w *workflow) List(ctx context.Context, args ListArgs) error {
	if err := w.Start(ctx, controller.WithListMode()); err != nil {
		slog.Error("Failed to start UI", "error", err)
		return err
	}
	defer w.Close(ctx)

	files, err := w.FindTestFiles(ctx, args.Root, args.Pattern, args.Exclude)
	if err != nil {
		slog.Error("Failed to find test files", "root", args.Root, "error", err)
		return fmt.Errorf("find test files: %w", err)
	}

	paths := make([]m.Path, 0, len(files))
	for _, file := range files {
		paths = append(paths, w.displayPath(ctx, file))
	}

	if err := w.DisplayTestFiles(ctx, paths); err != nil {
		slog.Error("Failed to display test files", "error", err)
		return fmt.Errorf("display: %w", err)
	}

	return nil
}

func (w *workflow) Execute(ctx context.Context, args ExecuteArgs) error {
	if err := w.Start(ctx, controller.WithExecuteMode()); err != nil {
		slog.Error("Failed to start UI", "error", err)
		return err
	}
	defer w.Close(ctx)

	entrypoint := args.Entrypoint
	if entrypoint == "" {
		entrypoint = DefaultEntrypoint
	}

	file := m.TestFile{Path: args.File, Root: "."}

	program, err := w.GetOrCompile(ctx, CompileArgs{File: file, CacheDir: args.CacheDir, UseCache: args.UseCache})
	if err != nil {
		slog.Error("Failed to compile", "path", args.File, "error", err)
		return fmt.Errorf("compile %s: %w", args.File, err)
	}

	outcome := w.RunEntrypoint(ctx, program, entrypoint, args.MaxSteps)

	if err := w.DisplayExecution(ctx, args.File, outcome); err != nil {
		slog.Error("Failed to display execution", "error", err)
		return fmt.Errorf("display: %w", err)
	}

	if outcome.Status == m.Failure {
		return ErrTestsFailed
	}

	return nil
}

func (w *workflow) Clean(ctx context.Context, args CleanArgs) error {
	if err := w.Start(ctx, controller.WithCleanMode()); err != nil {
		slog.Error("Failed to start UI", "error", err)
		return err
	}
	defer w.Close(ctx)

	dir := m.Path(filepath.Join(string(args.CacheDir), CompiledDir))

	if err := w.RemoveAll(ctx, dir); err != nil {
		slog.Error("Failed to remove compile cache", "path", dir, "error", err)
		return fmt.Errorf("remove %s: %w", dir, err)
	}

	w.DisplayCleaned(ctx, dir)

	return nil
}
