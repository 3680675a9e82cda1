package registry

import "testing"

func echoDescriptor() InterfaceDescriptor {
	return InterfaceDescriptor{
		Ordinal: 1,
		Name:    "Echo",
		Methods: []MethodDescriptor{
			{Index: 0, Name: "Say", Params: []ParamDescriptor{{Name: "msg"}}, ReturnShape: ReturnNone},
			{Index: 1, Name: "Ping", Params: []ParamDescriptor{{Name: "n"}}, ReturnShape: ReturnFutureTyped},
		},
	}
}

func TestRegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterInterface(echoDescriptor()); err != nil {
		t.Fatal(err)
	}
	d, ok := r.InterfaceByOrdinal(1)
	if !ok || d.Name != "Echo" {
		t.Fatalf("expected Echo at ordinal 1, got %+v ok=%v", d, ok)
	}
	md, ok := r.Method(1, 1)
	if !ok || md.Name != "Ping" || md.ReturnShape != ReturnFutureTyped {
		t.Fatalf("unexpected method descriptor: %+v ok=%v", md, ok)
	}
}

func TestRegisterDuplicateOrdinal(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterInterface(echoDescriptor()); err != nil {
		t.Fatal(err)
	}
	err := r.RegisterInterface(InterfaceDescriptor{Ordinal: 1, Name: "Other"})
	if err == nil {
		t.Fatal("expected ErrDuplicateOrdinal")
	}
}

func TestRegisterOrdinalOutOfRange(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterInterface(InterfaceDescriptor{Ordinal: 0, Name: "Zero"}); err == nil {
		t.Fatal("expected error for ordinal 0")
	}
	if err := r.RegisterInterface(InterfaceDescriptor{Ordinal: 128, Name: "TooBig"}); err == nil {
		t.Fatal("expected error for ordinal 128")
	}
}

func TestMethodUnknownOrdinalOrIndex(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterInterface(echoDescriptor()); err != nil {
		t.Fatal(err)
	}
	if _, ok := r.Method(2, 0); ok {
		t.Fatal("expected lookup on unregistered ordinal to fail")
	}
	if _, ok := r.Method(1, 5); ok {
		t.Fatal("expected lookup on unregistered method index to fail")
	}
}

func TestReturnShapeHasCallID(t *testing.T) {
	if ReturnNone.HasCallID() {
		t.Fatal("ReturnNone must not occupy a call-id")
	}
	for _, s := range []ReturnShape{ReturnFutureUnit, ReturnFutureTyped, ReturnFutureErrUnit, ReturnFutureErrTyped} {
		if !s.HasCallID() {
			t.Fatalf("%v must occupy a call-id", s)
		}
	}
}
