// Package codec implements the little-endian, schema-driven wire format
// shared by method arguments, return payloads, and user value types. It is
// deliberately not self-describing: callers must know the expected type of
// every field they write or read.
package codec

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"

	"github.com/pkg/errors"
)

const maxSequenceLen = 65535

// Writer accumulates an encoded message body. It is not safe for concurrent
// use; an endpoint owns exactly one Writer per outbound message.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated buffer. The slice is only valid until the
// next write.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len reports the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// WriteRaw appends b verbatim, bypassing any schema framing. Used by the
// endpoint to write header/method/call-id bytes that aren't part of the
// codec's type system.
func (w *Writer) WriteRaw(b ...byte) {
	w.buf.Write(b)
}

func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
}

func (w *Writer) WriteI8(v int8)  { w.buf.WriteByte(byte(v)) }
func (w *Writer) WriteU8(v uint8) { w.buf.WriteByte(v) }

func (w *Writer) WriteI16(v int16) { w.WriteU16(uint16(v)) }
func (w *Writer) WriteU16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) WriteI32(v int32) { w.WriteU32(uint32(v)) }
func (w *Writer) WriteU32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) WriteI64(v int64) { w.WriteU64(uint64(v)) }
func (w *Writer) WriteU64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) WriteF32(v float32) { w.WriteU32(math.Float32bits(v)) }
func (w *Writer) WriteF64(v float64) { w.WriteU64(math.Float64bits(v)) }

// Decimal is an opaque 128-bit value: four little-endian 32-bit limbs, with
// sign and scale packed into the high limb by the caller. The codec never
// interprets the bits; it only moves them.
type Decimal [16]byte

func (w *Writer) WriteDecimal(v Decimal) {
	w.buf.Write(v[:])
}

// WriteChar writes a single UTF-16 code unit. Runes outside the basic
// multilingual plane are truncated, matching the source wire format's
// 2-byte char representation.
func (w *Writer) WriteChar(v rune) {
	w.WriteU16(uint16(v))
}

// WriteTimestamp writes t as signed 64-bit nanoseconds since the Unix
// epoch, UTC. This is the portable convention adopted in place of the
// source platform's internal binary date encoding (see SPEC_FULL.md §1,
// Open Question in spec.md §9).
func (w *Writer) WriteTimestamp(t time.Time) {
	w.WriteI64(t.UTC().UnixNano())
}

// WriteDuration writes d as a signed count of 100ns ticks.
func (w *Writer) WriteDuration(d time.Duration) {
	w.WriteI64(int64(d) / 100)
}

// WriteString writes a 7-bit-per-byte varint byte-length (MSB continuation
// flag) followed by the UTF-8 payload.
func (w *Writer) WriteString(v string) {
	w.writeVarint(uint64(len(v)))
	w.buf.WriteString(v)
}

func (w *Writer) writeVarint(v uint64) {
	for v >= 0x80 {
		w.buf.WriteByte(byte(v) | 0x80)
		v >>= 7
	}
	w.buf.WriteByte(byte(v))
}

// WritePresence writes the 1-byte nullable presence tag: 0 for absent, 1
// for present. Non-nullable fields never call this.
func (w *Writer) WritePresence(present bool) {
	w.WriteBool(present)
}

// WriteSeqLen writes the 16-bit little-endian sequence length, failing if
// n exceeds the wire maximum of 65535 elements.
func (w *Writer) WriteSeqLen(n int) error {
	if n > maxSequenceLen {
		return errors.Wrapf(ErrSequenceTooLong, "length %d", n)
	}
	w.WriteU16(uint16(n))
	return nil
}
