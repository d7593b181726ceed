// Package views holds the per-page controllers. Each controller is a
// long-lived singleton owning its page's load lifecycle; handlers trigger
// loads and render the resulting snapshot.
package views

import (
	"context"
	"sync"
)

// State is the load lifecycle phase of a page.
type State string

const (
	StateIdle      State = "idle"
	StateLoading   State = "loading"
	StatePopulated State = "populated"
	StateEmpty     State = "empty"
	StateError     State = "error"
)

// Snapshot is an immutable view of a loader at one instant. Data is only
// meaningful in StatePopulated, Err only in StateError.
type Snapshot[T any] struct {
	State State
	Data  T
	Err   error
}

// Loader drives the idle, loading, populated or empty or error lifecycle
// shared by every page. Each Load supersedes any in-flight one: only the
// latest load may write the shared rendered state, so Snapshot always
// reflects the latest input. Every caller is still answered with the result
// of its own input; a superseded result is discarded from the shared state,
// never served to a different request.
type Loader[P, T any] struct {
	fetch   func(ctx context.Context, params P) (T, error)
	isEmpty func(T) bool

	mu       sync.Mutex
	gen      uint64
	state    State
	data     T
	err      error
	detached bool
}

// NewLoader creates a loader in StateIdle. isEmpty classifies a successful
// result as populated or empty; nil means results are never empty.
func NewLoader[P, T any](fetch func(ctx context.Context, params P) (T, error), isEmpty func(T) bool) *Loader[P, T] {
	return &Loader[P, T]{fetch: fetch, isEmpty: isEmpty, state: StateIdle}
}

// Load starts a fetch for params and returns the snapshot of that fetch's
// own result, so a response always matches the input it was asked for. When
// a newer Load starts while this one is in flight, this result is discarded
// from the shared state; only the latest load writes it.
func (l *Loader[P, T]) Load(ctx context.Context, params P) Snapshot[T] {
	l.mu.Lock()
	if l.detached {
		snap := l.snapshotLocked()
		l.mu.Unlock()
		return snap
	}
	l.gen++
	myGen := l.gen
	l.state = StateLoading
	l.err = nil
	l.mu.Unlock()

	data, err := l.fetch(ctx, params)
	snap := l.settle(data, err)

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.detached && l.gen == myGen {
		l.state = snap.State
		l.data = snap.Data
		l.err = snap.Err
	}
	return snap
}

// settle classifies a fetch outcome into a snapshot.
func (l *Loader[P, T]) settle(data T, err error) Snapshot[T] {
	switch {
	case err != nil:
		return Snapshot[T]{State: StateError, Err: err}
	case l.isEmpty != nil && l.isEmpty(data):
		return Snapshot[T]{State: StateEmpty}
	default:
		return Snapshot[T]{State: StatePopulated, Data: data}
	}
}

// Snapshot returns the current state without triggering a load.
func (l *Loader[P, T]) Snapshot() Snapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// Reset returns the loader to StateIdle and invalidates in-flight loads.
func (l *Loader[P, T]) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	var zero T
	l.gen++
	l.state = StateIdle
	l.data = zero
	l.err = nil
}

// Detach permanently stops the loader. In-flight results are discarded and
// later Loads are no-ops; the last settled state remains visible.
func (l *Loader[P, T]) Detach() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen++
	l.detached = true
}

func (l *Loader[P, T]) snapshotLocked() Snapshot[T] {
	return Snapshot[T]{State: l.state, Data: l.data, Err: l.err}
}
