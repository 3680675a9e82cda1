package codec

import (
	"testing"
	"time"
)

func TestPrimitiveRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteBool(true)
	w.WriteI8(-5)
	w.WriteU8(250)
	w.WriteI16(-1000)
	w.WriteU16(60000)
	w.WriteI32(-123456)
	w.WriteU32(4000000000)
	w.WriteI64(-123456789012)
	w.WriteU64(18000000000000000000)
	w.WriteF32(3.25)
	w.WriteF64(2.71828)
	w.WriteChar('é')
	w.WriteString("hello, 世界")

	r := NewReader(w.Bytes(), 0, w.Len())

	if v, err := r.ReadBool(); err != nil || v != true {
		t.Fatalf("ReadBool: %v %v", v, err)
	}
	if v, err := r.ReadI8(); err != nil || v != -5 {
		t.Fatalf("ReadI8: %v %v", v, err)
	}
	if v, err := r.ReadU8(); err != nil || v != 250 {
		t.Fatalf("ReadU8: %v %v", v, err)
	}
	if v, err := r.ReadI16(); err != nil || v != -1000 {
		t.Fatalf("ReadI16: %v %v", v, err)
	}
	if v, err := r.ReadU16(); err != nil || v != 60000 {
		t.Fatalf("ReadU16: %v %v", v, err)
	}
	if v, err := r.ReadI32(); err != nil || v != -123456 {
		t.Fatalf("ReadI32: %v %v", v, err)
	}
	if v, err := r.ReadU32(); err != nil || v != 4000000000 {
		t.Fatalf("ReadU32: %v %v", v, err)
	}
	if v, err := r.ReadI64(); err != nil || v != -123456789012 {
		t.Fatalf("ReadI64: %v %v", v, err)
	}
	if v, err := r.ReadU64(); err != nil || v != 18000000000000000000 {
		t.Fatalf("ReadU64: %v %v", v, err)
	}
	if v, err := r.ReadF32(); err != nil || v != 3.25 {
		t.Fatalf("ReadF32: %v %v", v, err)
	}
	if v, err := r.ReadF64(); err != nil || v != 2.71828 {
		t.Fatalf("ReadF64: %v %v", v, err)
	}
	if v, err := r.ReadChar(); err != nil || v != 'é' {
		t.Fatalf("ReadChar: %v %v", v, err)
	}
	if v, err := r.ReadString(); err != nil || v != "hello, 世界" {
		t.Fatalf("ReadString: %v %v", v, err)
	}
	if r.Remaining() != 0 {
		t.Fatalf("expected no remaining bytes, got %d", r.Remaining())
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	now := time.Date(2026, 8, 6, 12, 0, 0, 0, time.UTC)
	w := NewWriter()
	w.WriteTimestamp(now)
	r := NewReader(w.Bytes(), 0, w.Len())
	got, err := r.ReadTimestamp()
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(now) {
		t.Fatalf("got %v, want %v", got, now)
	}
}

func TestDurationRoundTrip(t *testing.T) {
	d := 12345 * 100 * time.Nanosecond
	w := NewWriter()
	w.WriteDuration(d)
	r := NewReader(w.Bytes(), 0, w.Len())
	got, err := r.ReadDuration()
	if err != nil {
		t.Fatal(err)
	}
	if got != d {
		t.Fatalf("got %v, want %v", got, d)
	}
}

func TestOptionRoundTrip(t *testing.T) {
	w := NewWriter()
	WriteOption(w, None[int32](), func(w *Writer, v int32) { w.WriteI32(v) })
	WriteOption(w, Some(int32(42)), func(w *Writer, v int32) { w.WriteI32(v) })

	r := NewReader(w.Bytes(), 0, w.Len())
	readI32 := func(r *Reader) (int32, error) { return r.ReadI32() }

	none, err := ReadOption(r, readI32)
	if err != nil {
		t.Fatal(err)
	}
	if none.Valid {
		t.Fatalf("expected absent option, got %+v", none)
	}

	some, err := ReadOption(r, readI32)
	if err != nil {
		t.Fatal(err)
	}
	if !some.Valid || some.Value != 42 {
		t.Fatalf("expected Some(42), got %+v", some)
	}
}

func TestSequenceRoundTrip(t *testing.T) {
	w := NewWriter()
	in := []int32{1, 2, 3, -4, 5}
	if err := WriteSeq(w, in, func(w *Writer, v int32) error { w.WriteI32(v); return nil }); err != nil {
		t.Fatal(err)
	}
	r := NewReader(w.Bytes(), 0, w.Len())
	out, err := ReadSeq(r, func(r *Reader) (int32, error) { return r.ReadI32() })
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != len(in) {
		t.Fatalf("length mismatch: got %d want %d", len(out), len(in))
	}
	for i := range in {
		if in[i] != out[i] {
			t.Fatalf("element %d: got %d want %d", i, out[i], in[i])
		}
	}
}

func TestSequenceTooLong(t *testing.T) {
	w := NewWriter()
	if err := w.WriteSeqLen(65536); err == nil {
		t.Fatal("expected ErrSequenceTooLong")
	}
}

func TestTruncatedInput(t *testing.T) {
	w := NewWriter()
	w.WriteI32(42)
	// Expose one byte fewer than was written, so the 4-byte read runs short.
	r := NewReader(w.Bytes(), 0, w.Len()-1)
	if _, err := r.ReadI32(); err == nil {
		t.Fatal("expected ErrTruncatedInput")
	}
}

type point struct {
	X, Y int32
}

func (p point) MarshalWire(w *Writer) error {
	w.WriteI32(p.X)
	w.WriteI32(p.Y)
	return nil
}

func (p *point) UnmarshalWire(r *Reader) error {
	x, err := r.ReadI32()
	if err != nil {
		return err
	}
	y, err := r.ReadI32()
	if err != nil {
		return err
	}
	p.X, p.Y = x, y
	return nil
}

func TestUserTypeOverrideRoundTrip(t *testing.T) {
	in := point{X: 3, Y: -7}
	w := NewWriter()
	if err := in.MarshalWire(w); err != nil {
		t.Fatal(err)
	}
	var out point
	r := NewReader(w.Bytes(), 0, w.Len())
	if err := out.UnmarshalWire(r); err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}

func TestSchemaRegistryComposite(t *testing.T) {
	type Nested struct {
		A int32
		B string
	}
	type Outer struct {
		N     Nested
		Items []int32
	}

	reg := NewSchemaRegistry()
	if err := reg.Register(Outer{}); err != nil {
		t.Fatal(err)
	}
	d, ok := reg.Lookup(Outer{})
	if !ok {
		t.Fatal("Outer not registered")
	}
	if d.Kind != KindComposite {
		t.Fatalf("expected composite, got %v", d.Kind)
	}
	if len(d.FieldOrder) != 2 || d.FieldOrder[0] != "N" || d.FieldOrder[1] != "Items" {
		t.Fatalf("unexpected field order: %v", d.FieldOrder)
	}

	nd, ok := reg.Lookup(Nested{})
	if !ok || nd.Kind != KindComposite {
		t.Fatalf("expected Nested to be registered as composite, got %+v ok=%v", nd, ok)
	}
}

func TestSchemaRegistryEnum(t *testing.T) {
	type Color int32
	reg := NewSchemaRegistry()
	if err := reg.Register(Color(0)); err != nil {
		t.Fatal(err)
	}
	d, ok := reg.Lookup(Color(0))
	if !ok || d.Kind != KindEnum {
		t.Fatalf("expected enum, got %+v ok=%v", d, ok)
	}
}

func TestSchemaRegistryOverride(t *testing.T) {
	reg := NewSchemaRegistry()
	if err := reg.Register(point{}); err != nil {
		t.Fatal(err)
	}
	d, ok := reg.Lookup(point{})
	if !ok || d.Kind != KindOverride {
		t.Fatalf("expected override, got %+v ok=%v", d, ok)
	}
}

func TestSchemaRegistryRejectsPlatformWidthInt(t *testing.T) {
	type Bad struct {
		N int
	}
	reg := NewSchemaRegistry()
	if err := reg.Register(Bad{}); err == nil {
		t.Fatal("expected a schema violation for platform-width int")
	}
}
