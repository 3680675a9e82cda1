package future

import "github.com/sasha-s/go-deadlock"

// Typed is a future carrying a single typed result, used for methods
// whose return shape is future_typed<T>.
type Typed[T any] struct {
	mu       deadlock.Mutex
	complete bool
	result   T
	onDone   func(T)
}

// NewTyped returns an empty, pending Typed future.
func NewTyped[T any]() *Typed[T] {
	return &Typed[T]{}
}

// ResolvedTyped returns an already-complete Typed future carrying v.
func ResolvedTyped[T any](v T) *Typed[T] {
	return &Typed[T]{complete: true, result: v}
}

func (f *Typed[T]) IsComplete() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.complete
}

// Result returns the retained value, or ErrNotReady if the future has not
// completed.
func (f *Typed[T]) Result() (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.complete {
		var zero T
		return zero, ErrNotReady
	}
	return f.result, nil
}

// Complete stores v and marks the future done.
func (f *Typed[T]) Complete(v T) {
	f.mu.Lock()
	if f.complete {
		f.mu.Unlock()
		return
	}
	f.complete = true
	f.result = v
	cb := f.onDone
	f.mu.Unlock()
	if cb != nil {
		cb(v)
	}
}

// OnComplete installs the completion callback. If the future is already
// complete, cb fires synchronously with the retained value before
// OnComplete returns.
func (f *Typed[T]) OnComplete(cb func(T)) {
	f.mu.Lock()
	if f.complete {
		v := f.result
		f.mu.Unlock()
		cb(v)
		return
	}
	f.onDone = cb
	f.mu.Unlock()
}
