package registry

import "github.com/pkg/errors"

// ErrDuplicateOrdinal is raised at registry construction when two
// interfaces are registered under the same ordinal — a configuration
// error, fatal at startup, never a runtime fault.
var ErrDuplicateOrdinal = errors.New("registry: duplicate interface ordinal")
