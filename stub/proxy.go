// Package stub implements proxy stubs (spec.md §4.D) as a table-driven
// dispatcher rather than the source's runtime bytecode emission, per the
// design note in spec.md §9: "generate them at build time from the same
// interface declarations... the design does not rely on runtime
// metaprogramming." Proxy is the common machinery every interface-specific
// proxy (see package demo) is built from; a real build-time generator
// would emit exactly the kind of thin wrapper demo hand-writes here.
package stub

import (
	"github.com/pwzxxm-student/birpc/codec"
	"github.com/pwzxxm-student/birpc/endpoint"
	"github.com/pwzxxm-student/birpc/future"
)

// Proxy is the per-interface caller bound to one Endpoint and interface
// ordinal. An interface-specific proxy type holds one of these and adds
// typed methods that call the Call* helpers below.
type Proxy struct {
	Endpoint *endpoint.Endpoint
	Ordinal  byte
}

// NewProxy returns a Proxy for ordinal bound to ep.
func NewProxy(ep *endpoint.Endpoint, ordinal byte) Proxy {
	return Proxy{Endpoint: ep, Ordinal: ordinal}
}

// CallNone invokes a fire-and-forget method (return shape none): no
// call-id, no future.
func CallNone(p Proxy, methodIndex byte, pushArgs func(*codec.Writer) error) error {
	w, _, _, err := p.Endpoint.BeginCall(p.Ordinal, methodIndex, nil)
	if err != nil {
		return err
	}
	if err := pushArgs(w); err != nil {
		p.Endpoint.AbortCall()
		return err
	}
	return p.Endpoint.CompleteCall()
}

// CallFutureUnit invokes a method whose return shape is future_unit.
func CallFutureUnit(p Proxy, methodIndex byte, pushArgs func(*codec.Writer) error) (*future.Unit, error) {
	f := future.NewUnit()
	w, _, _, err := p.Endpoint.BeginCall(p.Ordinal, methodIndex, func(r *codec.Reader) error {
		return future.DecodeUnit(f, r)
	})
	if err != nil {
		return nil, err
	}
	if err := pushArgs(w); err != nil {
		p.Endpoint.AbortCall()
		return nil, err
	}
	if err := p.Endpoint.CompleteCall(); err != nil {
		return nil, err
	}
	return f, nil
}

// CallFutureTyped invokes a method whose return shape is
// future_typed<T>. readElem decodes the nullable-tagged result payload.
func CallFutureTyped[T any](p Proxy, methodIndex byte, pushArgs func(*codec.Writer) error, readElem func(*codec.Reader) (T, error)) (*future.Typed[T], error) {
	f := future.NewTyped[T]()
	w, _, _, err := p.Endpoint.BeginCall(p.Ordinal, methodIndex, func(r *codec.Reader) error {
		return future.DecodeTyped(f, r, readElem)
	})
	if err != nil {
		return nil, err
	}
	if err := pushArgs(w); err != nil {
		p.Endpoint.AbortCall()
		return nil, err
	}
	if err := p.Endpoint.CompleteCall(); err != nil {
		return nil, err
	}
	return f, nil
}

// CallFutureErrUnit invokes a method whose return shape is
// future_err_unit.
func CallFutureErrUnit(p Proxy, methodIndex byte, pushArgs func(*codec.Writer) error) (*future.ErrUnit, error) {
	f := future.NewErrUnit()
	w, _, _, err := p.Endpoint.BeginCall(p.Ordinal, methodIndex, func(r *codec.Reader) error {
		return future.DecodeErrUnit(f, r)
	})
	if err != nil {
		return nil, err
	}
	if err := pushArgs(w); err != nil {
		p.Endpoint.AbortCall()
		return nil, err
	}
	if err := p.Endpoint.CompleteCall(); err != nil {
		return nil, err
	}
	return f, nil
}

// CallFutureErrTyped invokes a method whose return shape is
// future_err_typed<T>.
func CallFutureErrTyped[T any](p Proxy, methodIndex byte, pushArgs func(*codec.Writer) error, readElem func(*codec.Reader) (T, error)) (*future.ErrTyped[T], error) {
	f := future.NewErrTyped[T]()
	w, _, _, err := p.Endpoint.BeginCall(p.Ordinal, methodIndex, func(r *codec.Reader) error {
		return future.DecodeErrTyped(f, r, readElem)
	})
	if err != nil {
		return nil, err
	}
	if err := pushArgs(w); err != nil {
		p.Endpoint.AbortCall()
		return nil, err
	}
	if err := p.Endpoint.CompleteCall(); err != nil {
		return nil, err
	}
	return f, nil
}
