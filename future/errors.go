package future

import "github.com/pkg/errors"

// ErrNotReady is returned by a result accessor called before the future
// has completed.
var ErrNotReady = errors.New("future: result not ready")
