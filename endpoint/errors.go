package endpoint

import "github.com/pkg/errors"

var (
	// ErrProtocolViolation is raised when a header byte decodes to an
	// unknown method index or a response call-id that is not in the
	// pending table.
	ErrProtocolViolation = errors.New("endpoint: protocol violation")

	// ErrUnknownHandler is raised when a call frame targets an interface
	// ordinal with no registered handler.
	ErrUnknownHandler = errors.New("endpoint: unknown handler")

	// ErrCallIdExhausted is raised when the id the 7-bit call-id
	// allocator advances to is still outstanding. The allocator does not
	// search for another free id; with all 127 ids outstanding every
	// allocation fails this way.
	ErrCallIdExhausted = errors.New("endpoint: call-id exhausted")

	// ErrHandlerAlreadyBound is raised by RegisterHandler when the
	// target ordinal already has a handler bound.
	ErrHandlerAlreadyBound = errors.New("endpoint: handler already bound for ordinal")

	// ErrHandlerNotBound is raised by RemoveHandler when the target
	// ordinal has no handler bound.
	ErrHandlerNotBound = errors.New("endpoint: no handler bound for ordinal")
)
