package future

import "github.com/sasha-s/go-deadlock"

// ErrTyped is a future carrying a typed success result or an error
// string, used for methods whose return shape is future_err_typed<T>.
type ErrTyped[T any] struct {
	mu        deadlock.Mutex
	complete  bool
	result    T
	errMsg    string
	isErr     bool
	onResult  func(T, error)
	onSuccess func(T)
	onError   func(string)
}

// NewErrTyped returns an empty, pending ErrTyped future.
func NewErrTyped[T any]() *ErrTyped[T] {
	return &ErrTyped[T]{}
}

// ResolvedErrTypedOK returns an already-complete, successful ErrTyped
// future carrying v.
func ResolvedErrTypedOK[T any](v T) *ErrTyped[T] {
	return &ErrTyped[T]{complete: true, result: v}
}

// ResolvedErrTypedErr returns an already-complete ErrTyped future
// carrying the given error message.
func ResolvedErrTypedErr[T any](msg string) *ErrTyped[T] {
	return &ErrTyped[T]{complete: true, isErr: true, errMsg: msg}
}

func (f *ErrTyped[T]) IsComplete() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.complete
}

func (f *ErrTyped[T]) IsError() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.isErr
}

// Result returns the retained success value and a nil error, the zero
// value and the retained error on failure, or ErrNotReady before
// completion.
func (f *ErrTyped[T]) Result() (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.complete {
		var zero T
		return zero, ErrNotReady
	}
	if f.isErr {
		var zero T
		return zero, errFromMessage(f.errMsg)
	}
	return f.result, nil
}

// CompleteOK marks the future done with a successful result.
func (f *ErrTyped[T]) CompleteOK(v T) {
	f.mu.Lock()
	if f.complete {
		f.mu.Unlock()
		return
	}
	f.complete = true
	f.result = v
	onResult, onSuccess := f.onResult, f.onSuccess
	f.mu.Unlock()

	if onResult != nil {
		onResult(v, nil)
	}
	if onSuccess != nil {
		onSuccess(v)
	}
}

// CompleteErr marks the future done with the given error message.
func (f *ErrTyped[T]) CompleteErr(msg string) {
	f.mu.Lock()
	if f.complete {
		f.mu.Unlock()
		return
	}
	f.complete = true
	f.isErr = true
	f.errMsg = msg
	onResult, onError := f.onResult, f.onError
	f.mu.Unlock()

	var zero T
	if onResult != nil {
		onResult(zero, errFromMessage(msg))
	}
	if onError != nil {
		onError(msg)
	}
}

// OnResult installs a callback that fires with the success value and a
// nil error, or the zero value and a non-nil error.
func (f *ErrTyped[T]) OnResult(cb func(T, error)) {
	f.mu.Lock()
	if f.complete {
		isErr, msg, v := f.isErr, f.errMsg, f.result
		f.mu.Unlock()
		if isErr {
			var zero T
			cb(zero, errFromMessage(msg))
		} else {
			cb(v, nil)
		}
		return
	}
	f.onResult = cb
	f.mu.Unlock()
}

// OnSuccess installs a callback that fires only on a successful
// completion, with the retained value.
func (f *ErrTyped[T]) OnSuccess(cb func(T)) {
	f.mu.Lock()
	if f.complete {
		isErr, v := f.isErr, f.result
		f.mu.Unlock()
		if !isErr {
			cb(v)
		}
		return
	}
	f.onSuccess = cb
	f.mu.Unlock()
}

// OnError installs a callback that fires only on a failed completion,
// with the retained error message.
func (f *ErrTyped[T]) OnError(cb func(string)) {
	f.mu.Lock()
	if f.complete {
		isErr, msg := f.isErr, f.errMsg
		f.mu.Unlock()
		if isErr {
			cb(msg)
		}
		return
	}
	f.onError = cb
	f.mu.Unlock()
}
