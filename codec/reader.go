package codec

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/pkg/errors"
)

// Reader walks a decoded message body. It is not safe for concurrent use.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf[offset : offset+length] for reading.
func NewReader(buf []byte, offset, length int) *Reader {
	return &Reader{buf: buf[offset : offset+length]}
}

// Remaining reports how many bytes are left unread.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

func (r *Reader) take(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, errors.Wrapf(ErrTruncatedInput, "need %d bytes, have %d", n, r.Remaining())
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *Reader) ReadRaw(n int) ([]byte, error) {
	return r.take(n)
}

func (r *Reader) ReadBool() (bool, error) {
	b, err := r.take(1)
	if err != nil {
		return false, err
	}
	return b[0] != 0, nil
}

func (r *Reader) ReadI8() (int8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return int8(b[0]), nil
}

func (r *Reader) ReadU8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) ReadI16() (int16, error) {
	v, err := r.ReadU16()
	return int16(v), err
}

func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Reader) ReadI32() (int32, error) {
	v, err := r.ReadU32()
	return int32(v), err
}

func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) ReadI64() (int64, error) {
	v, err := r.ReadU64()
	return int64(v), err
}

func (r *Reader) ReadU64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *Reader) ReadF32() (float32, error) {
	v, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (r *Reader) ReadF64() (float64, error) {
	v, err := r.ReadU64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

func (r *Reader) ReadDecimal() (Decimal, error) {
	var d Decimal
	b, err := r.take(16)
	if err != nil {
		return d, err
	}
	copy(d[:], b)
	return d, nil
}

func (r *Reader) ReadChar() (rune, error) {
	v, err := r.ReadU16()
	return rune(v), err
}

// ReadTimestamp reads signed 64-bit nanoseconds since the Unix epoch, UTC.
func (r *Reader) ReadTimestamp() (time.Time, error) {
	v, err := r.ReadI64()
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(0, v).UTC(), nil
}

// ReadDuration reads a signed count of 100ns ticks.
func (r *Reader) ReadDuration() (time.Duration, error) {
	v, err := r.ReadI64()
	if err != nil {
		return 0, err
	}
	return time.Duration(v) * 100, nil
}

func (r *Reader) ReadString() (string, error) {
	n, err := r.readVarint()
	if err != nil {
		return "", err
	}
	b, err := r.take(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *Reader) readVarint() (uint64, error) {
	var v uint64
	var shift uint
	for {
		b, err := r.take(1)
		if err != nil {
			return 0, err
		}
		v |= uint64(b[0]&0x7f) << shift
		if b[0]&0x80 == 0 {
			return v, nil
		}
		shift += 7
	}
}

// ReadPresence reads the 1-byte nullable presence tag.
func (r *Reader) ReadPresence() (bool, error) {
	return r.ReadBool()
}

// ReadSeqLen reads the 16-bit little-endian sequence length.
func (r *Reader) ReadSeqLen() (int, error) {
	v, err := r.ReadU16()
	return int(v), err
}
