// Package demo declares two small example service interfaces, Echo and
// Counter, used by the CLI (cmd/birpc-demo) and by the demo and transport
// test suites as concrete end-to-end fixtures. Their shapes are taken directly
// from spec.md §8's concrete scenarios: Echo.Say is the fire-and-forget
// scenario, Echo.Ping is the future<bool>-shaped scenario generalized to
// int32, and Counter.Incr is the error-future scenario.
package demo

import "github.com/pwzxxm-student/birpc/registry"

const (
	OrdinalEcho    byte = 1
	OrdinalCounter byte = 2

	MethodEchoSay  byte = 0
	MethodEchoPing byte = 1

	MethodCounterIncr byte = 0
)

// NewRegistry returns a registry.Registry carrying the Echo and Counter
// interface descriptors. Both peers in a demo connection construct an
// identical registry from this single function, which is how the two
// sides agree on ordinals and method indices without any wire-level
// negotiation (spec.md §3's registry invariant).
func NewRegistry() (*registry.Registry, error) {
	reg := registry.NewRegistry()

	err := reg.RegisterInterface(registry.InterfaceDescriptor{
		Ordinal: OrdinalEcho,
		Name:    "Echo",
		Methods: []registry.MethodDescriptor{
			{
				Index:       MethodEchoSay,
				Name:        "Say",
				Params:      []registry.ParamDescriptor{{Name: "msg"}},
				ReturnShape: registry.ReturnNone,
			},
			{
				Index:       MethodEchoPing,
				Name:        "Ping",
				Params:      []registry.ParamDescriptor{{Name: "n"}},
				ReturnShape: registry.ReturnFutureTyped,
			},
		},
	})
	if err != nil {
		return nil, err
	}

	err = reg.RegisterInterface(registry.InterfaceDescriptor{
		Ordinal: OrdinalCounter,
		Name:    "Counter",
		Methods: []registry.MethodDescriptor{
			{
				Index:       MethodCounterIncr,
				Name:        "Incr",
				Params:      []registry.ParamDescriptor{{Name: "by"}},
				ReturnShape: registry.ReturnFutureErrTyped,
			},
		},
	})
	if err != nil {
		return nil, err
	}

	return reg, nil
}
