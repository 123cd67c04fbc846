package domain

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"

	"foundry.dev/pkg/foundry/internal/adapter"
	"foundry.dev/pkg/foundry/internal/engine"
	m "foundry.dev/pkg/foundry/internal/model"
)

// CompiledDir is the cache subdirectory holding compile records.
const CompiledDir = "compiled"

// CacheCorruptError reports a cache record that could not be read or decoded.
// It is logged and treated as a miss.
type CacheCorruptError struct {
	Path m.Path
	Err  error
}

func (e *CacheCorruptError) Error() string {
	return fmt.Sprintf("corrupt cache record %s: %v", e.Path, e.Err)
}

func (e *CacheCorruptError) Unwrap() error {
	return e.Err
}

// CompileArgs names the file to compile and the cache to use.
type CompileArgs struct {
	File     m.TestFile
	CacheDir m.Path
	UseCache bool
}

// CompileCache returns compiled programs, invoking the compiler only when the
// source changed since the last compilation.
type CompileCache interface {
	GetOrCompile(ctx context.Context, args CompileArgs) (*engine.Program, error)
}

type compileCache struct {
	fsAdapter adapter.SourceFSAdapter
	compiler  adapter.CompilerAdapter
	store     adapter.CacheStore

	// locks serializes work on one record path.
	locks sync.Map
}

// NewCompileCache constructs a CompileCache.
func NewCompileCache(fsAdapter adapter.SourceFSAdapter, compiler adapter.CompilerAdapter, store adapter.CacheStore) CompileCache {
	return &compileCache{
		fsAdapter: fsAdapter,
		compiler:  compiler,
		store:     store,
	}
}

// RecordPath is where the compile record of file lives: the file stem under
// the directory of file relative to its discovery root. Files outside their
// root fall back to the bare stem.
func RecordPath(cacheDir m.Path, file m.TestFile) m.Path {
	base := filepath.Base(string(file.Path))
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	dir := string(cacheDir)
	if dir == "" {
		dir = "."
	}

	rel, err := filepath.Rel(string(file.Root), filepath.Dir(string(file.Path)))
	if err != nil || file.Root == "" || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = "."
	}

	return m.Path(filepath.Join(dir, CompiledDir, rel, stem+".json"))
}

func (c *compileCache) GetOrCompile(ctx context.Context, args CompileArgs) (*engine.Program, error) {
	source, err := c.fsAdapter.ReadFile(ctx, args.File.Path)
	if err != nil {
		slog.Error("Failed to read source", "path", args.File.Path, "error", err)
		return nil, fmt.Errorf("read source %s: %w", args.File.Path, err)
	}

	hash := xxhash.Sum64(source)
	recordPath := RecordPath(args.CacheDir, args.File)

	unlock := c.lock(recordPath)
	defer unlock()

	if args.UseCache {
		program, err := c.lookup(ctx, recordPath, hash)
		if err != nil {
			slog.Warn("Ignoring cache record", "path", recordPath, "error", err)
		}

		if program != nil {
			slog.Debug("Cache hit", "path", args.File.Path, "record", recordPath)
			return program, nil
		}
	}

	data, err := c.compiler.Compile(ctx, args.File.Path)
	if err != nil {
		return nil, err
	}

	program, err := engine.DecodeProgram(data)
	if err != nil {
		slog.Error("Compiler produced an invalid program", "path", args.File.Path, "error", err)
		return nil, fmt.Errorf("compiler output for %s: %w", args.File.Path, err)
	}

	if args.UseCache {
		if err := c.store.Save(ctx, recordPath, adapter.CacheRecord{Hash: hash, Program: data}); err != nil {
			slog.Warn("Failed to write cache record", "path", recordPath, "error", err)
		}
	}

	return program, nil
}

// lookup returns the cached program when the record at path was compiled from
// a source with the given hash. A missing or stale record is a plain miss.
func (c *compileCache) lookup(ctx context.Context, path m.Path, hash uint64) (*engine.Program, error) {
	record, err := c.store.Load(ctx, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, &CacheCorruptError{Path: path, Err: err}
	}

	if record.Hash != hash {
		slog.Debug("Stale cache record", "path", path)
		return nil, nil
	}

	program, err := engine.DecodeProgram(record.Program)
	if err != nil {
		return nil, &CacheCorruptError{Path: path, Err: err}
	}

	return program, nil
}

func (c *compileCache) lock(path m.Path) func() {
	value, _ := c.locks.LoadOrStore(path, &sync.Mutex{})
	mu, _ := value.(*sync.Mutex)
	mu.Lock()

	return mu.Unlock
}
