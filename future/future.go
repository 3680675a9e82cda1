// Package future implements the four deferred-result variants described
// in spec.md §4.C: unit-success, typed-success, error-unit, and
// error-typed. Every variant completes at most once; a callback installed
// after completion fires synchronously, with the retained values, at
// registration time. Callback slots are single-assignment — a second
// installation silently replaces whatever was stored, it does not queue.
package future

import "github.com/sasha-s/go-deadlock"

// Unit is a future with no result payload, used for methods whose return
// shape is future_unit.
type Unit struct {
	mu       deadlock.Mutex
	complete bool
	onDone   func()
}

// NewUnit returns an empty, pending Unit future.
func NewUnit() *Unit {
	return &Unit{}
}

// ResolvedUnit returns an already-complete Unit future, for handlers that
// can answer synchronously.
func ResolvedUnit() *Unit {
	return &Unit{complete: true}
}

// IsComplete reports whether the future has completed.
func (f *Unit) IsComplete() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.complete
}

// Complete marks the future done. Calling Complete more than once is a
// programmer error; subsequent calls are no-ops, matching the "completed
// at most once" invariant.
func (f *Unit) Complete() {
	f.mu.Lock()
	if f.complete {
		f.mu.Unlock()
		return
	}
	f.complete = true
	cb := f.onDone
	f.mu.Unlock()
	if cb != nil {
		cb()
	}
}

// OnComplete installs the completion callback. If the future is already
// complete, cb fires synchronously before OnComplete returns.
func (f *Unit) OnComplete(cb func()) {
	f.mu.Lock()
	if f.complete {
		f.mu.Unlock()
		cb()
		return
	}
	f.onDone = cb
	f.mu.Unlock()
}
