// Package endpoint implements the bidirectional message codec,
// dispatcher, call-id allocator, and future-correlation table described in
// spec.md §4.E. It is the heart of the framework: proxy stubs (package
// stub) drive its outbound half, registered handlers are invoked by its
// inbound half.
package endpoint

import (
	"github.com/pkg/errors"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"

	"github.com/pwzxxm-student/birpc/codec"
	"github.com/pwzxxm-student/birpc/registry"
)

const (
	headerResponseBit byte = 0x80
	headerOrdinalMask byte = 0x7f
)

// Endpoint is a single bidirectional RPC peer. It assumes all of
// BeginCall/PushArg-equivalent writes/CompleteCall/ReceiveData for one
// instance are invoked from a single thread at a time (spec.md §5). The
// go-deadlock mutexes below serialize the outbound call sequence and guard
// the shared tables, so calls from several goroutines are serialized
// rather than rejected; go-deadlock reports lock-order and recursive-lock
// deadlocks among them.
type Endpoint struct {
	reg    *registry.Registry
	logger *logrus.Entry

	onDataOut           OnDataOut
	onBeforeHandlerCall func(*HandlerCallContext)
	onAfterHandlerCall  func(*HandlerCallContext)

	// callMu serializes one full BeginCall..CompleteCall sequence,
	// guaranteeing spec.md §4.E's ordering property: the outbound bytes
	// of call A appear fully before those of call B.
	callMu       deadlock.Mutex
	out          *codec.Writer
	outCallID    byte
	outHasCallID bool

	// tableMu guards the call-id counter and the pending-future table,
	// mutated by both the outbound path (BeginCall) and the inbound
	// response path (ReceiveData).
	tableMu       deadlock.Mutex
	callIDCounter byte
	pending       map[byte]pendingEntry

	// handlersMu guards the handler-binding table.
	handlersMu deadlock.RWMutex
	handlers   map[byte]HandlerBinding
}

// New returns an Endpoint bound to reg. logger may be nil, in which case
// an entry on the logrus standard logger is used.
func New(reg *registry.Registry, logger *logrus.Entry) *Endpoint {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Endpoint{
		reg:      reg,
		logger:   logger,
		pending:  make(map[byte]pendingEntry),
		handlers: make(map[byte]HandlerBinding),
	}
}

// SetOnDataOut installs the outbound byte sink.
func (e *Endpoint) SetOnDataOut(cb OnDataOut) {
	e.onDataOut = cb
}

// SetOnBeforeHandlerCall installs the pre-dispatch observer hook.
func (e *Endpoint) SetOnBeforeHandlerCall(cb func(*HandlerCallContext)) {
	e.onBeforeHandlerCall = cb
}

// SetOnAfterHandlerCall installs the post-dispatch observer hook.
func (e *Endpoint) SetOnAfterHandlerCall(cb func(*HandlerCallContext)) {
	e.onAfterHandlerCall = cb
}

// RegisterHandler binds a handler's method table to its ordinal. Binding
// a second handler to an ordinal that is already bound, without first
// calling RemoveHandler, is an error.
//
// The core does not discover which Go interfaces a handler object
// implements via reflection (spec.md §1 puts interface discovery out of
// scope); callers bind one ordinal at a time, typically once per
// generated-stub-produced HandlerBinding. A handler object implementing
// several RPC interfaces simply calls RegisterHandler once per ordinal.
func (e *Endpoint) RegisterHandler(b HandlerBinding) error {
	e.handlersMu.Lock()
	defer e.handlersMu.Unlock()
	if _, exists := e.handlers[b.Ordinal]; exists {
		return errors.Wrapf(ErrHandlerAlreadyBound, "ordinal %d", b.Ordinal)
	}
	e.handlers[b.Ordinal] = b
	e.logger.WithField("ordinal", b.Ordinal).Debug("handler registered")
	return nil
}

// RemoveHandler unbinds the handler at ordinal.
func (e *Endpoint) RemoveHandler(ordinal byte) error {
	e.handlersMu.Lock()
	defer e.handlersMu.Unlock()
	if _, exists := e.handlers[ordinal]; !exists {
		return errors.Wrapf(ErrHandlerNotBound, "ordinal %d", ordinal)
	}
	delete(e.handlers, ordinal)
	e.logger.WithField("ordinal", ordinal).Debug("handler removed")
	return nil
}

// BeginCall resolves the method descriptor for (ordinal, methodIndex),
// writes the call-frame header, and — if the method has a return
// shape — allocates a call-id and inserts completeFromWire into the
// pending table. completeFromWire must be nil iff the method's return
// shape is registry.ReturnNone.
//
// The returned Writer must be used to push the call's arguments in
// declaration order, then passed to CompleteCall. No other BeginCall may
// start on this Endpoint until CompleteCall (or an early return from
// BeginCall itself) releases callMu.
func (e *Endpoint) BeginCall(ordinal, methodIndex byte, completeFromWire func(*codec.Reader) error) (*codec.Writer, *registry.MethodDescriptor, byte, error) {
	e.callMu.Lock()

	md, ok := e.reg.Method(ordinal, methodIndex)
	if !ok {
		e.callMu.Unlock()
		return nil, nil, 0, errors.Wrapf(ErrProtocolViolation, "unknown method %d on ordinal %d", methodIndex, ordinal)
	}

	w := codec.NewWriter()
	w.WriteRaw(ordinal & headerOrdinalMask)
	w.WriteRaw(methodIndex)

	var callID byte
	if md.ReturnShape.HasCallID() {
		if completeFromWire == nil {
			e.callMu.Unlock()
			return nil, nil, 0, errors.Errorf("endpoint: method %s has return shape %s but no completion closure was supplied", md.Name, md.ReturnShape)
		}
		var err error
		e.tableMu.Lock()
		callID, err = e.allocateCallID()
		if err == nil {
			e.pending[callID] = pendingEntry{completeFromWire: completeFromWire}
		}
		e.tableMu.Unlock()
		if err != nil {
			e.callMu.Unlock()
			return nil, nil, 0, err
		}
		w.WriteRaw(callID)
	}

	e.out = w
	e.outCallID = callID
	e.outHasCallID = md.ReturnShape.HasCallID()
	return w, md, callID, nil
}

// CompleteCall flushes the buffer accumulated since BeginCall via
// OnDataOut and releases the outbound critical section.
func (e *Endpoint) CompleteCall() error {
	w := e.out
	e.out = nil
	e.outHasCallID = false
	defer e.callMu.Unlock()
	if w == nil {
		return errors.New("endpoint: CompleteCall called without a matching BeginCall")
	}
	if e.onDataOut != nil {
		e.onDataOut(w.Bytes())
	}
	return nil
}

// AbortCall releases the outbound critical section without emitting
// anything, for a proxy stub that fails after BeginCall but before
// CompleteCall (e.g. an argument fails to encode). If a call-id was
// allocated for this call, it is freed from the pending table — the peer
// will never answer a frame that was never sent, so an endpoint whose
// callers routinely abort must not bleed call-ids towards
// ErrCallIdExhausted. The caller should also drop or fail its own future.
func (e *Endpoint) AbortCall() {
	e.out = nil
	if e.outHasCallID {
		e.tableMu.Lock()
		delete(e.pending, e.outCallID)
		e.tableMu.Unlock()
		e.outHasCallID = false
	}
	e.callMu.Unlock()
}
