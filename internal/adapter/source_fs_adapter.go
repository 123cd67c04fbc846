// Package adapter contains the infrastructure adapters the harness domain
// relies on: filesystem access, the compiler subprocess and the compile cache
// store.
package adapter

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	m "foundry.dev/pkg/foundry/internal/model"
)

// DefaultTestFilePattern matches the base name of test source files.
const DefaultTestFilePattern = `^test_.*\.sasm$`

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when scanning user projects. It hides direct `os` access so the
// workflow logic can be tested without touching the disk.
type SourceFSAdapter interface {
	// FindTestFiles walks root and returns the files whose base name matches
	// pattern and whose path relative to root matches none of exclude, sorted
	// by path. A root naming a single file is returned as is.
	FindTestFiles(ctx context.Context, root m.Path, pattern string, exclude []string) ([]m.TestFile, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(ctx context.Context, path m.Path) ([]byte, error)

	// RemoveAll removes a directory and all its contents.
	RemoveAll(ctx context.Context, path m.Path) error

	// RelPath returns the relative path from base to target.
	RelPath(ctx context.Context, base, target m.Path) (m.Path, error)
}

// LocalSourceFSAdapter implements SourceFSAdapter on the local disk.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// FindTestFiles implements SourceFSAdapter.
func (a *LocalSourceFSAdapter) FindTestFiles(ctx context.Context, root m.Path, pattern string, exclude []string) ([]m.TestFile, error) {
	if pattern == "" {
		pattern = DefaultTestFilePattern
	}

	match, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid test file pattern %q: %w", pattern, err)
	}

	excludes, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	rootStr := string(root)

	info, err := os.Stat(rootStr)
	if err != nil {
		slog.Error("Failed to stat test root", "root", root, "error", err)
		return nil, fmt.Errorf("root path error: %w", err)
	}

	if !info.IsDir() {
		return []m.TestFile{{Path: root, Root: m.Path(filepath.Dir(rootStr))}}, nil
	}

	var files []m.TestFile

	err = filepath.WalkDir(rootStr, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() || !match.MatchString(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(rootStr, path)
		if err != nil {
			return err
		}

		if isExcluded(filepath.ToSlash(rel), excludes) {
			slog.Debug("Excluding test file", "path", path)
			return nil
		}

		files = append(files, m.TestFile{Path: m.Path(path), Root: root})

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	return files, nil
}

func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		out = append(out, re)
	}

	return out, nil
}

func isExcluded(rel string, excludes []*regexp.Regexp) bool {
	for _, re := range excludes {
		if re.MatchString(rel) {
			return true
		}
	}

	return false
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// #nosec G304 - path comes from test file discovery
	return os.ReadFile(string(path))
}

// RemoveAll removes a directory and all its contents.
func (a *LocalSourceFSAdapter) RemoveAll(ctx context.Context, path m.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return os.RemoveAll(string(path))
}

// RelPath returns the relative path from base to target.
func (a *LocalSourceFSAdapter) RelPath(_ context.Context, base, target m.Path) (m.Path, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", err
	}

	return m.Path(rel), nil
}
