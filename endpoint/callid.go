package endpoint

import "github.com/pwzxxm-student/birpc/codec"

// pendingEntry is what the pending-future table retains for one
// outstanding call: a closure that asks the caller's future to complete
// itself from the response payload.
type pendingEntry struct {
	completeFromWire func(r *codec.Reader) error
}

// allocateCallID implements spec.md §3/§4.E's allocator: a monotonic
// 7-bit counter starting at 0, incremented before use, wrapping from 128
// back to 1 (0 is reserved). The counter advances exactly once per call;
// if the resulting id is already present in the pending table, allocation
// fails with ErrCallIdExhausted rather than probing ahead for a free one.
//
// Caller must hold e.tableMu.
func (e *Endpoint) allocateCallID() (byte, error) {
	e.callIDCounter++
	if e.callIDCounter >= 128 {
		e.callIDCounter = 1
	}
	if _, taken := e.pending[e.callIDCounter]; taken {
		return 0, ErrCallIdExhausted
	}
	return e.callIDCounter, nil
}
