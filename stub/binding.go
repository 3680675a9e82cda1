package stub

import "github.com/pwzxxm-student/birpc/endpoint"

// NewBinding assembles a HandlerBinding for ordinal from a method-index
// dispatch table. Generated-looking handler-side stubs (see package
// demo) build the map once per concrete handler instance and hand it to
// endpoint.RegisterHandler through this helper.
func NewBinding(ordinal byte, methods map[byte]endpoint.MethodHandler) endpoint.HandlerBinding {
	return endpoint.HandlerBinding{Ordinal: ordinal, Methods: methods}
}
