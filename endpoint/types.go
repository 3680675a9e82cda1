package endpoint

import (
	"context"

	"github.com/pwzxxm-student/birpc/codec"
)

// OnDataOut is invoked once per emitted message, with a contiguous buffer
// the callback must finish reading synchronously or copy.
type OnDataOut func(buf []byte)

// WireEncodable is implemented by whatever a MethodHandler returns when
// its method has a return shape: it knows how to serialize its own
// completion payload (spec.md §4.E: "the endpoint must ask the returned
// future to serialize itself"). Stub-generated handler adapters wrap a
// future.Typed[T]/future.ErrUnit/etc. value together with its
// element-writer closure to satisfy this interface.
type WireEncodable interface {
	EncodeWire(w *codec.Writer) error
}

// EncodableFunc adapts a plain encode closure to WireEncodable.
type EncodableFunc func(w *codec.Writer) error

func (f EncodableFunc) EncodeWire(w *codec.Writer) error { return f(w) }

// MethodHandler decodes a call frame's argument payload from r and
// invokes the bound handler. If the method has a return shape, the
// returned result must be non-nil and implement WireEncodable; for a
// fire-and-forget method it is nil. A non-nil error signals a
// HandlerException — an unrecoverable fault propagated to the caller of
// ReceiveData, distinct from a handler electing to return a future
// carrying a business error.
type MethodHandler func(ctx context.Context, r *codec.Reader) (result WireEncodable, err error)

// HandlerBinding maps an interface ordinal to its per-method dispatch
// table. Produced by generated-looking stub code (see package stub), one
// per concrete handler instance.
type HandlerBinding struct {
	Ordinal byte
	Methods map[byte]MethodHandler
}

// HandlerCallContext is the observer-hook payload fired around a single
// inbound handler invocation.
type HandlerCallContext struct {
	Ordinal    byte
	MethodName string
	MethodIdx  byte
	CallID     byte
	HasCallID  bool
	Ctx        context.Context
	Result     WireEncodable
	Err        error
}
