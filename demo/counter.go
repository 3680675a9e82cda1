package demo

import (
	"context"

	"github.com/pkg/errors"

	"github.com/pwzxxm-student/birpc/codec"
	"github.com/pwzxxm-student/birpc/endpoint"
	"github.com/pwzxxm-student/birpc/future"
	"github.com/pwzxxm-student/birpc/stub"
)

// CounterHandler serves the Counter interface (ordinal 2): a single
// running total, incremented per call, that fails once it would overflow
// int32 (spec.md §8 scenario 3's error-future shape).
type CounterHandler interface {
	Incr(ctx context.Context, by int32) (int32, error)
}

// ErrOverflow is returned by the reference Counter handler
// (handlers.go) when an increment would overflow int32.
var ErrOverflow = errors.New("counter: total would overflow int32")

// CounterProxy is the caller-side stub for the Counter interface.
type CounterProxy struct {
	p stub.Proxy
}

// NewCounterProxy returns a CounterProxy bound to ep.
func NewCounterProxy(ep *endpoint.Endpoint) CounterProxy {
	return CounterProxy{p: stub.NewProxy(ep, OrdinalCounter)}
}

// Incr returns a future_err<int32>.
func (c CounterProxy) Incr(by int32) (*future.ErrTyped[int32], error) {
	return stub.CallFutureErrTyped(c.p, MethodCounterIncr,
		func(w *codec.Writer) error { w.WriteI32(by); return nil },
		func(r *codec.Reader) (int32, error) { return r.ReadI32() },
	)
}

// BindCounter builds the handler-side dispatch table for h.
func BindCounter(h CounterHandler) endpoint.HandlerBinding {
	methods := map[byte]endpoint.MethodHandler{
		MethodCounterIncr: func(ctx context.Context, r *codec.Reader) (endpoint.WireEncodable, error) {
			by, err := r.ReadI32()
			if err != nil {
				return nil, err
			}
			total, incrErr := h.Incr(ctx, by)
			var f *future.ErrTyped[int32]
			if incrErr != nil {
				f = future.ResolvedErrTypedErr[int32](incrErr.Error())
			} else {
				f = future.ResolvedErrTypedOK(total)
			}
			return endpoint.EncodableFunc(func(w *codec.Writer) error {
				return future.EncodeErrTyped(f, w, func(w *codec.Writer, v int32) error { w.WriteI32(v); return nil })
			}), nil
		},
	}
	return stub.NewBinding(OrdinalCounter, methods)
}
