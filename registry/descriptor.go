// Package registry implements the stable, explicit interface/method
// catalogue (spec.md §4.B): ordinal-addressed interfaces, index-addressed
// methods, and the parameter/return-shape metadata the codec and endpoint
// need to frame a call without the wire being self-describing.
//
// There is no reflection-based discovery here by design (spec.md §1 puts
// that out of scope) — a Registry is built up by explicit calls, one per
// interface (see demo.NewRegistry).
package registry

// ReturnShape classifies what a method's return position looks like on
// the wire, per spec.md §3's Method Descriptor invariant: the shape
// determines both whether the call occupies a call-id and the response
// payload layout (spec.md §4.C).
type ReturnShape int

const (
	// ReturnNone is a fire-and-forget method: no call-id, no response.
	ReturnNone ReturnShape = iota
	// ReturnFutureUnit completes with no payload.
	ReturnFutureUnit
	// ReturnFutureTyped completes with a single nullable-encoded value.
	ReturnFutureTyped
	// ReturnFutureErrUnit completes with an optional error string.
	ReturnFutureErrUnit
	// ReturnFutureErrTyped completes with an optional error string, or a
	// nullable-encoded value when there is no error.
	ReturnFutureErrTyped
)

func (s ReturnShape) String() string {
	switch s {
	case ReturnNone:
		return "none"
	case ReturnFutureUnit:
		return "future_unit"
	case ReturnFutureTyped:
		return "future_typed"
	case ReturnFutureErrUnit:
		return "future_err_unit"
	case ReturnFutureErrTyped:
		return "future_err_typed"
	default:
		return "unknown"
	}
}

// HasCallID reports whether a method of this return shape occupies a
// call-id and a pending-future table slot.
func (s ReturnShape) HasCallID() bool {
	return s != ReturnNone
}

// ParamDescriptor describes one method argument's wire type.
type ParamDescriptor struct {
	Name string
	// Nullable marks the parameter as carrying a presence tag on the
	// wire. An option-typed parameter is implicitly nullable regardless
	// of how this flag is set by the caller — see OptionTyped.
	Nullable bool
	// OptionTyped marks the parameter's declared Go type as
	// codec.Option[T]; such a parameter is always nullable.
	OptionTyped bool
}

// IsNullable reports the parameter's effective nullability.
func (p ParamDescriptor) IsNullable() bool {
	return p.Nullable || p.OptionTyped
}

// MethodDescriptor is one method within an InterfaceDescriptor, addressed
// by the 0..255 Index the caller sets in the descriptor; the registry
// does not assign or renumber indices.
type MethodDescriptor struct {
	Index       byte
	Name        string
	Params      []ParamDescriptor
	ReturnShape ReturnShape
}

// InterfaceDescriptor is one service interface, addressed by a 1..127
// ordinal.
type InterfaceDescriptor struct {
	Ordinal byte
	Name    string
	Methods []MethodDescriptor
}

// MethodByIndex returns the method at the given index, if declared.
func (d *InterfaceDescriptor) MethodByIndex(index byte) (*MethodDescriptor, bool) {
	for i := range d.Methods {
		if d.Methods[i].Index == index {
			return &d.Methods[i], true
		}
	}
	return nil, false
}
