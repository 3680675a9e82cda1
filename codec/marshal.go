package codec

// Marshaler is implemented by a user value type that overrides the default
// declaration-order field encoding with its own serialize operation.
type Marshaler interface {
	MarshalWire(w *Writer) error
}

// Unmarshaler is implemented by a user value type that overrides the
// default declaration-order field decoding with its own deserialize
// operation. When a type implements Marshaler it MUST also implement
// Unmarshaler (or provide a reader-taking constructor elsewhere in the
// generated stub) so that writing then reading round-trips to an equal
// value — the codec does not check this itself, callers should cover it
// with a round-trip test per registered type.
type Unmarshaler interface {
	UnmarshalWire(r *Reader) error
}
