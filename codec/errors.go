package codec

import "github.com/pkg/errors"

// Sentinel errors matching the wire-level fault taxonomy. Callers should
// use errors.Is against these rather than string-matching.
var (
	// ErrSchemaViolation is raised when a value cannot satisfy the schema:
	// a null written for a non-nullable field, a missing override, or an
	// unknown type reaching the codec.
	ErrSchemaViolation = errors.New("codec: schema violation")

	// ErrSequenceTooLong is raised when a sequence's length would exceed
	// the wire maximum of 65535 elements.
	ErrSequenceTooLong = errors.New("codec: sequence exceeds maximum length of 65535")

	// ErrTruncatedInput is raised when the stream ends before a value is
	// fully decoded.
	ErrTruncatedInput = errors.New("codec: truncated input")

	// ErrInvalidEnumUnderlyingType is raised when an enum's underlying type
	// is not one of the serializable primitive integer kinds.
	ErrInvalidEnumUnderlyingType = errors.New("codec: enum underlying type is not a serializable primitive")
)
