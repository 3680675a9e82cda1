package demo

import (
	"context"

	"github.com/pwzxxm-student/birpc/codec"
	"github.com/pwzxxm-student/birpc/endpoint"
	"github.com/pwzxxm-student/birpc/future"
	"github.com/pwzxxm-student/birpc/stub"
)

// EchoHandler is the application-level interface a handler object
// implements to serve the Echo interface (ordinal 1). Handlers are
// invoked synchronously from ReceiveData's goroutine (spec.md §5);
// Ping's result is wrapped in an already-complete future before being
// serialized into the response frame.
type EchoHandler interface {
	Say(ctx context.Context, msg string)
	Ping(ctx context.Context, n int32) int32
}

// EchoProxy is the caller-side stub for the Echo interface.
type EchoProxy struct {
	p stub.Proxy
}

// NewEchoProxy returns an EchoProxy bound to ep.
func NewEchoProxy(ep *endpoint.Endpoint) EchoProxy {
	return EchoProxy{p: stub.NewProxy(ep, OrdinalEcho)}
}

// Say is a fire-and-forget call (spec.md §8 scenario 1's shape).
func (e EchoProxy) Say(msg string) error {
	return stub.CallNone(e.p, MethodEchoSay, func(w *codec.Writer) error {
		w.WriteString(msg)
		return nil
	})
}

// Ping returns a future<int32> (spec.md §8 scenario 2's shape,
// generalized from bool to int32).
func (e EchoProxy) Ping(n int32) (*future.Typed[int32], error) {
	return stub.CallFutureTyped(e.p, MethodEchoPing,
		func(w *codec.Writer) error { w.WriteI32(n); return nil },
		func(r *codec.Reader) (int32, error) { return r.ReadI32() },
	)
}

// BindEcho builds the handler-side dispatch table for h.
func BindEcho(h EchoHandler) endpoint.HandlerBinding {
	methods := map[byte]endpoint.MethodHandler{
		MethodEchoSay: func(ctx context.Context, r *codec.Reader) (endpoint.WireEncodable, error) {
			msg, err := r.ReadString()
			if err != nil {
				return nil, err
			}
			h.Say(ctx, msg)
			return nil, nil
		},
		MethodEchoPing: func(ctx context.Context, r *codec.Reader) (endpoint.WireEncodable, error) {
			n, err := r.ReadI32()
			if err != nil {
				return nil, err
			}
			f := future.ResolvedTyped(h.Ping(ctx, n))
			return endpoint.EncodableFunc(func(w *codec.Writer) error {
				return future.EncodeTyped(f, w, func(w *codec.Writer, v int32) error { w.WriteI32(v); return nil })
			}), nil
		},
	}
	return stub.NewBinding(OrdinalEcho, methods)
}
