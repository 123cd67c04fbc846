// Package runctx keeps the mutable state of every running test entrypoint,
// keyed by an opaque run token.
package runctx

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"foundry.dev/pkg/foundry/internal/engine"
)

// ScopeKey is the engine scope variable holding the run token.
const ScopeKey = "foundry-run-token"

var (
	// ErrMissingToken reports a token that was never begun. Hitting it is a
	// harness defect.
	ErrMissingToken = errors.New("run token was never begun")
	// ErrTokenInUse reports a token begun twice.
	ErrTokenInUse = errors.New("run token already begun")
)

// Token identifies one entrypoint execution.
type Token = uuid.UUID

// NewToken allocates a fresh random token.
func NewToken() Token {
	return uuid.New()
}

// Output is the growable text buffer hints write to.
type Output struct {
	data []byte
}

// Write appends p. It never fails.
func (o *Output) Write(p []byte) (int, error) {
	o.data = append(o.data, p...)
	return len(p), nil
}

// WriteString appends s.
func (o *Output) WriteString(s string) {
	o.data = append(o.data, s...)
}

// String returns the buffered text.
func (o *Output) String() string {
	return string(o.data)
}

// Drain returns the buffered text and empties the buffer.
func (o *Output) Drain() string {
	s := string(o.data)
	o.data = nil

	return s
}

// RunContext is the state owned by one entrypoint execution.
type RunContext struct {
	Token          Token
	Output         Output
	RevertExpected bool
	Mocks          *MockTable
	StepCount      uint64
	// StepBudget is the maximum number of steps; zero means unlimited.
	StepBudget uint64
}

type run struct {
	mu  sync.Mutex
	ctx RunContext
}

// Registry maps run tokens to their context. Lookups, inserts and removals
// may come from any goroutine; access to one context is serialized.
type Registry struct {
	mu   sync.RWMutex
	runs map[Token]*run
}

// Default is the process-wide registry.
var Default = NewRegistry()

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{runs: map[Token]*run{}}
}

// Begin creates a fresh context for token.
func (r *Registry) Begin(token Token, stepBudget uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.runs[token]; ok {
		return fmt.Errorf("%w: %s", ErrTokenInUse, token)
	}

	r.runs[token] = &run{ctx: RunContext{
		Token:      token,
		Mocks:      NewMockTable(),
		StepBudget: stepBudget,
	}}

	return nil
}

// With runs fn with exclusive access to the context of token and returns its
// error. It panics if token was never begun.
func (r *Registry) With(token Token, fn func(*RunContext) error) error {
	entry := r.lookup(token)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	return fn(&entry.ctx)
}

// End removes the context of token and returns its final state. It panics if
// token was never begun.
func (r *Registry) End(token Token) RunContext {
	r.mu.Lock()
	entry, ok := r.runs[token]
	delete(r.runs, token)
	r.mu.Unlock()

	if !ok {
		panic(fmt.Errorf("%w: %s", ErrMissingToken, token))
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	return entry.ctx
}

// Active returns the number of begun, not yet ended, tokens.
func (r *Registry) Active() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.runs)
}

func (r *Registry) lookup(token Token) *run {
	r.mu.RLock()
	entry, ok := r.runs[token]
	r.mu.RUnlock()

	if !ok {
		panic(fmt.Errorf("%w: %s", ErrMissingToken, token))
	}

	return entry
}

// Bind stores token in the engine scope so hints and hooks can find their run.
func Bind(scope *engine.Scope, token Token) {
	scope.Set(ScopeKey, token)
}

// TokenFromScope returns the token bound to scope.
func TokenFromScope(scope *engine.Scope) (Token, error) {
	v, ok := scope.Get(ScopeKey)
	if !ok {
		return Token{}, fmt.Errorf("%w: no token bound to the engine scope", ErrMissingToken)
	}

	token, ok := v.(Token)
	if !ok {
		return Token{}, fmt.Errorf("%w: scope holds %T", ErrMissingToken, v)
	}

	return token, nil
}

// MustTokenFromScope is TokenFromScope for hints and hooks, where a scope
// without a token is a harness defect. It panics instead of failing the run.
func MustTokenFromScope(scope *engine.Scope) Token {
	token, err := TokenFromScope(scope)
	if err != nil {
		panic(err)
	}

	return token
}
