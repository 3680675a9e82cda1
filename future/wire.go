package future

import (
	"github.com/pkg/errors"

	"github.com/pwzxxm-student/birpc/codec"
)

func errFromMessage(msg string) error {
	return errors.New(msg)
}

// EncodeUnit writes the future_unit completion payload: empty.
func EncodeUnit(_ *Unit, _ *codec.Writer) {
	// intentionally empty, per the return-shape table in spec.md §4.C
}

// DecodeUnit completes f from a future_unit response payload.
func DecodeUnit(f *Unit, _ *codec.Reader) error {
	f.Complete()
	return nil
}

// EncodeTyped writes the future_typed<T> completion payload: T encoded
// with nullable=true.
func EncodeTyped[T any](f *Typed[T], w *codec.Writer, writeElem func(*codec.Writer, T) error) error {
	v, err := f.Result()
	if err != nil {
		return err
	}
	return codec.WriteOptionErr(w, codec.Some(v), writeElem)
}

// DecodeTyped completes f from a future_typed<T> response payload.
func DecodeTyped[T any](f *Typed[T], r *codec.Reader, readElem func(*codec.Reader) (T, error)) error {
	opt, err := codec.ReadOption(r, readElem)
	if err != nil {
		return err
	}
	f.Complete(opt.Value)
	return nil
}

// EncodeErrUnit writes the future_err_unit completion payload:
// option<string>, absent meaning success.
func EncodeErrUnit(f *ErrUnit, w *codec.Writer) error {
	if !f.IsComplete() {
		return ErrNotReady
	}
	if f.IsError() {
		msg, _ := f.ErrorMessage()
		codec.WriteOption(w, codec.Some(msg), func(w *codec.Writer, s string) { w.WriteString(s) })
	} else {
		codec.WriteOption(w, codec.None[string](), func(w *codec.Writer, s string) { w.WriteString(s) })
	}
	return nil
}

// DecodeErrUnit completes f from a future_err_unit response payload.
func DecodeErrUnit(f *ErrUnit, r *codec.Reader) error {
	opt, err := codec.ReadOption(r, func(r *codec.Reader) (string, error) { return r.ReadString() })
	if err != nil {
		return err
	}
	if opt.Valid {
		f.CompleteErr(opt.Value)
	} else {
		f.CompleteOK()
	}
	return nil
}

// EncodeErrTyped writes the future_err_typed<T> completion payload:
// option<string>; if absent then T encoded with nullable=true.
func EncodeErrTyped[T any](f *ErrTyped[T], w *codec.Writer, writeElem func(*codec.Writer, T) error) error {
	if !f.IsComplete() {
		return ErrNotReady
	}
	if f.IsError() {
		errMsg, _ := f.errorMessage()
		codec.WriteOption(w, codec.Some(errMsg), func(w *codec.Writer, s string) { w.WriteString(s) })
		return nil
	}
	codec.WriteOption(w, codec.None[string](), func(w *codec.Writer, s string) { w.WriteString(s) })
	v, _ := f.Result()
	return codec.WriteOptionErr(w, codec.Some(v), writeElem)
}

// errorMessage is an internal accessor mirroring ErrUnit.ErrorMessage for
// the typed variant, used only by the wire encoder above.
func (f *ErrTyped[T]) errorMessage() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.complete {
		return "", ErrNotReady
	}
	return f.errMsg, nil
}

// DecodeErrTyped completes f from a future_err_typed<T> response payload.
func DecodeErrTyped[T any](f *ErrTyped[T], r *codec.Reader, readElem func(*codec.Reader) (T, error)) error {
	opt, err := codec.ReadOption(r, func(r *codec.Reader) (string, error) { return r.ReadString() })
	if err != nil {
		return err
	}
	if opt.Valid {
		f.CompleteErr(opt.Value)
		return nil
	}
	vOpt, err := codec.ReadOption(r, readElem)
	if err != nil {
		return err
	}
	f.CompleteOK(vOpt.Value)
	return nil
}
