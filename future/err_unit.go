package future

import "github.com/sasha-s/go-deadlock"

// ErrUnit is a future with no success payload but an optional error
// string, used for methods whose return shape is future_err_unit.
type ErrUnit struct {
	mu        deadlock.Mutex
	complete  bool
	errMsg    string
	isErr     bool
	onResult  func(error)
	onSuccess func()
	onError   func(string)
}

// NewErrUnit returns an empty, pending ErrUnit future.
func NewErrUnit() *ErrUnit {
	return &ErrUnit{}
}

// ResolvedErrUnitOK returns an already-complete, successful ErrUnit future.
func ResolvedErrUnitOK() *ErrUnit {
	return &ErrUnit{complete: true}
}

// ResolvedErrUnitErr returns an already-complete ErrUnit future carrying
// the given error message.
func ResolvedErrUnitErr(msg string) *ErrUnit {
	return &ErrUnit{complete: true, isErr: true, errMsg: msg}
}

func (f *ErrUnit) IsComplete() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.complete
}

// IsError reports whether the completed future carries an error. It is
// meaningless before completion.
func (f *ErrUnit) IsError() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.isErr
}

// ErrorMessage returns the retained error message ("" on success), or
// ErrNotReady if the future has not completed.
func (f *ErrUnit) ErrorMessage() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.complete {
		return "", ErrNotReady
	}
	return f.errMsg, nil
}

// CompleteOK marks the future done with no error.
func (f *ErrUnit) CompleteOK() {
	f.complete2(false, "")
}

// CompleteErr marks the future done with the given error message.
func (f *ErrUnit) CompleteErr(msg string) {
	f.complete2(true, msg)
}

func (f *ErrUnit) complete2(isErr bool, msg string) {
	f.mu.Lock()
	if f.complete {
		f.mu.Unlock()
		return
	}
	f.complete = true
	f.isErr = isErr
	f.errMsg = msg
	onResult, onSuccess, onError := f.onResult, f.onSuccess, f.onError
	f.mu.Unlock()

	if onResult != nil {
		if isErr {
			onResult(errFromMessage(msg))
		} else {
			onResult(nil)
		}
	}
	if isErr {
		if onError != nil {
			onError(msg)
		}
	} else if onSuccess != nil {
		onSuccess()
	}
}

// OnResult installs a callback that fires with a non-nil error on failure
// or nil on success.
func (f *ErrUnit) OnResult(cb func(error)) {
	f.mu.Lock()
	if f.complete {
		isErr, msg := f.isErr, f.errMsg
		f.mu.Unlock()
		if isErr {
			cb(errFromMessage(msg))
		} else {
			cb(nil)
		}
		return
	}
	f.onResult = cb
	f.mu.Unlock()
}

// OnSuccess installs a callback that fires only on a successful
// completion.
func (f *ErrUnit) OnSuccess(cb func()) {
	f.mu.Lock()
	if f.complete {
		isErr := f.isErr
		f.mu.Unlock()
		if !isErr {
			cb()
		}
		return
	}
	f.onSuccess = cb
	f.mu.Unlock()
}

// OnError installs a callback that fires only on a failed completion,
// with the retained error message.
func (f *ErrUnit) OnError(cb func(string)) {
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
