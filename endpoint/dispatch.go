package endpoint

import (
	"context"

	"github.com/pkg/errors"

	"github.com/pwzxxm-student/birpc/codec"
)

// ReceiveData parses exactly one framed message from buf[offset:offset+length]
// and dispatches it: a call frame invokes the bound handler (and, for a
// method with a return shape, emits a response frame); a response frame
// completes the matching pending future.
func (e *Endpoint) ReceiveData(buf []byte, offset, length int, ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	r := codec.NewReader(buf, offset, length)
	header, err := r.ReadU8()
	if err != nil {
		return errors.Wrap(err, "endpoint: reading header byte")
	}

	if header&headerResponseBit == 0 {
		return e.dispatchCall(header&headerOrdinalMask, r, ctx)
	}
	return e.dispatchResponse(header&headerOrdinalMask, r)
}

func (e *Endpoint) dispatchCall(ordinal byte, r *codec.Reader, ctx context.Context) error {
	methodIndex, err := r.ReadU8()
	if err != nil {
		return errors.Wrap(err, "endpoint: reading method index")
	}

	e.handlersMu.RLock()
	binding, boundOK := e.handlers[ordinal]
	e.handlersMu.RUnlock()
	if !boundOK {
		return errors.Wrapf(ErrUnknownHandler, "ordinal %d", ordinal)
	}

	md, mdOK := e.reg.Method(ordinal, methodIndex)
	if !mdOK {
		return errors.Wrapf(ErrProtocolViolation, "unknown method index %d on ordinal %d", methodIndex, ordinal)
	}
	methodName := md.Name

	methodHandler, methodOK := binding.Methods[methodIndex]
	if !methodOK {
		return errors.Wrapf(ErrProtocolViolation, "no dispatch entry for method index %d on ordinal %d", methodIndex, ordinal)
	}

	var callID byte
	hasCallID := md.ReturnShape.HasCallID()
	if hasCallID {
		callID, err = r.ReadU8()
		if err != nil {
			return errors.Wrap(err, "endpoint: reading call-id")
		}
	}

	hcc := &HandlerCallContext{
		Ordinal:    ordinal,
		MethodName: methodName,
		MethodIdx:  methodIndex,
		CallID:     callID,
		HasCallID:  hasCallID,
		Ctx:        ctx,
	}
	if e.onBeforeHandlerCall != nil {
		e.onBeforeHandlerCall(hcc)
	}

	result, err := methodHandler(ctx, r)
	hcc.Result = result
	hcc.Err = err
	if e.onAfterHandlerCall != nil {
		e.onAfterHandlerCall(hcc)
	}
	if err != nil {
		return errors.Wrapf(err, "endpoint: handler for ordinal %d method %d", ordinal, methodIndex)
	}

	if result != nil {
		w := codec.NewWriter()
		w.WriteRaw(headerResponseBit | (callID & headerOrdinalMask))
		if err := result.EncodeWire(w); err != nil {
			return errors.Wrap(err, "endpoint: encoding response payload")
		}
		if e.onDataOut != nil {
			e.onDataOut(w.Bytes())
		}
	}
	return nil
}

func (e *Endpoint) dispatchResponse(callID byte, r *codec.Reader) error {
	e.tableMu.Lock()
	entry, ok := e.pending[callID]
	if ok {
		delete(e.pending, callID)
	}
	e.tableMu.Unlock()

	if !ok {
		return errors.Wrapf(ErrProtocolViolation, "unknown call-id %d", callID)
	}
	return entry.completeFromWire(r)
}
