package colfer

import (
	"math"
	"unicode/utf8"
)

// Reader provides sequential, bounds-checked access to an encoded
// message, mirroring the position-tracked slice in kungfusheep-glint's
// Reader (reader.go). Unlike the teacher, whose low-level reads panic
// with a bare string ("read out of bounds") and leave the caller to
// recover, every panic raised here carries one of the sentinel errors
// from errors.go, so the recover in Unmarshal/UnmarshalWithLimits can return it
// directly instead of having to re-wrap an opaque value.
type Reader struct {
	bytes []byte
	pos   int
}

// NewReader wraps b for sequential decoding.
func NewReader(b []byte) *Reader {
	return &Reader{bytes: b}
}

// Len returns the number of unread bytes remaining.
func (r *Reader) Len() int {
	return len(r.bytes) - r.pos
}

// Remaining returns the unread suffix of the underlying slice.
func (r *Reader) Remaining() []byte {
	return r.bytes[r.pos:]
}

// require panics with ErrShortInput if fewer than n bytes remain.
func (r *Reader) require(n int) {
	if r.Len() < n {
		panic(shortInputf("need %d bytes, have %d", n, r.Len()))
	}
}

// ReadByte consumes and returns the next byte.
func (r *Reader) ReadByte() byte {
	r.require(1)
	b := r.bytes[r.pos]
	r.pos++
	return b
}

// PeekByte returns the next byte without consuming it.
func (r *Reader) PeekByte() byte {
	r.require(1)
	return r.bytes[r.pos]
}

// ReadN consumes and returns the next n bytes.
func (r *Reader) ReadN(n int) []byte {
	r.require(n)
	b := r.bytes[r.pos : r.pos+n]
	r.pos += n
	return b
}

// ReadVarint decodes an unsigned varint per §4.1.
func (r *Reader) ReadVarint() uint64 {
	v, pos, err := readVarint(r.bytes, r.pos)
	if err != nil {
		panic(err)
	}
	r.pos = pos
	return v
}

// ReadHeader reads a header byte and splits it into its field id and flag
// bit (spec §4.3).
func (r *Reader) ReadHeader() (id uint8, flag bool) {
	h := r.ReadByte()
	return h & idMask, h&flagBit != 0
}

// ReadUint8 decodes a u8 payload (a single raw byte).
func (r *Reader) ReadUint8() uint8 {
	return r.ReadByte()
}

// ReadUint16 decodes a u16 payload: 1 raw byte when flag is set, else a
// 2-byte big-endian value.
func (r *Reader) ReadUint16(flag bool) uint16 {
	if flag {
		return uint16(r.ReadByte())
	}
	b := r.ReadN(2)
	return uint16(b[0])<<8 | uint16(b[1])
}

// ReadUint32 decodes a u32 payload: a varint, or a 4-byte big-endian
// value when flag is set.
func (r *Reader) ReadUint32(flag bool) uint32 {
	if flag {
		b := r.ReadN(4)
		return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	}
	return uint32(r.ReadVarint())
}

// ReadUint64 decodes a u64 payload: a varint, or an 8-byte big-endian
// value when flag is set.
func (r *Reader) ReadUint64(flag bool) uint64 {
	if flag {
		b := r.ReadN(8)
		return uint64(b[0])<<56 | uint64(b[1])<<48 | uint64(b[2])<<40 | uint64(b[3])<<32 |
			uint64(b[4])<<24 | uint64(b[5])<<16 | uint64(b[6])<<8 | uint64(b[7])
	}
	return r.ReadVarint()
}

// ReadInt32 decodes an i32 payload: a varint magnitude, negated in
// 32-bit precision when flag is set (the inverse of AppendInt32).
func (r *Reader) ReadInt32(flag bool) int32 {
	v := uint32(r.ReadVarint())
	if flag {
		return int32(^v + 1)
	}
	return int32(v)
}

// ReadInt64 decodes an i64 payload, the 64-bit analogue of ReadInt32.
func (r *Reader) ReadInt64(flag bool) int64 {
	v := r.ReadVarint()
	if flag {
		return int64(^v + 1)
	}
	return int64(v)
}

// ReadFloat32 decodes an f32 payload: 4-byte big-endian IEEE-754 bits.
func (r *Reader) ReadFloat32() float32 {
	b := r.ReadN(4)
	bits := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	return math.Float32frombits(bits)
}

// ReadFloat64 decodes an f64 payload: 8-byte big-endian IEEE-754 bits.
func (r *Reader) ReadFloat64() float64 {
	b := r.ReadN(8)
	bits := uint64(b[0])<<56 | uint64(b[1])<<48 | uint64(b[2])<<40 | uint64(b[3])<<32 |
		uint64(b[4])<<24 | uint64(b[5])<<16 | uint64(b[6])<<8 | uint64(b[7])
	return math.Float64frombits(bits)
}

// ReadTimestamp decodes a timestamp payload: 4-byte seconds + 4-byte
// nanos, or 8-byte seconds + 4-byte nanos when flag is set.
func (r *Reader) ReadTimestamp(flag bool) (seconds int64, nanoseconds uint32) {
	if flag {
		b := r.ReadN(8)
		s := uint64(b[0])<<56 | uint64(b[1])<<48 | uint64(b[2])<<40 | uint64(b[3])<<32 |
			uint64(b[4])<<24 | uint64(b[5])<<16 | uint64(b[6])<<8 | uint64(b[7])
		seconds = int64(s)
	} else {
		b := r.ReadN(4)
		seconds = int64(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]))
	}
	n := r.ReadN(4)
	nanoseconds = uint32(n[0])<<24 | uint32(n[1])<<16 | uint32(n[2])<<8 | uint32(n[3])
	return seconds, nanoseconds
}

// ReadText decodes a text payload: a varint length followed by UTF-8
// bytes, validated with unicode/utf8 (ErrInvalidUTF8 on failure).
func (r *Reader) ReadText(limits Limits) string {
	n := r.readLength(limits)
	b := r.ReadN(n)
	if !utf8.Valid(b) {
		panic(ErrInvalidUTF8)
	}
	return string(b)
}

// ReadBinary decodes a binary payload: a varint length followed by raw
// bytes.
func (r *Reader) ReadBinary(limits Limits) []byte {
	n := r.readLength(limits)
	b := r.ReadN(n)
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// readLength reads a varint length and rejects it against MaxSize as an
// early LIMIT_EXCEEDED guard against pre-allocating on an
// attacker-controlled count (spec §5).
func (r *Reader) readLength(limits Limits) int {
	n := r.ReadVarint()
	if n > uint64(limits.maxSize()) {
		panic(limitExceededf("payload length %d exceeds MaxSize %d", n, limits.maxSize()))
	}
	return int(n)
}

// readCount reads a varint list element count and rejects it against
// MaxListSize (spec §4.3, §5).
func (r *Reader) readCount(limits Limits) int {
	n := r.ReadVarint()
	if n > uint64(limits.maxListSize()) {
		panic(limitExceededf("list count %d exceeds MaxListSize %d", n, limits.maxListSize()))
	}
	return int(n)
}

// ReadFloat32List decodes a list<f32> payload.
func (r *Reader) ReadFloat32List(limits Limits) []float32 {
	n := r.readCount(limits)
	out := make([]float32, n)
	for i := range out {
		out[i] = r.ReadFloat32()
	}
	return out
}

// ReadFloat64List decodes a list<f64> payload.
func (r *Reader) ReadFloat64List(limits Limits) []float64 {
	n := r.readCount(limits)
	out := make([]float64, n)
	for i := range out {
		out[i] = r.ReadFloat64()
	}
	return out
}

// ReadTextList decodes a list<text> payload, one varint(len)||utf8
// element at a time (§9's resolved per-element length scheme).
func (r *Reader) ReadTextList(limits Limits) []string {
	n := r.readCount(limits)
	out := make([]string, n)
	for i := range out {
		out[i] = r.ReadText(limits)
	}
	return out
}

// ReadBinaryList decodes a list<binary> payload, one varint(len)||bytes
// element at a time.
func (r *Reader) ReadBinaryList(limits Limits) [][]byte {
	n := r.readCount(limits)
	out := make([][]byte, n)
	for i := range out {
		out[i] = r.ReadBinary(limits)
	}
	return out
}

// ReadStructListCount reads the varint element count preceding a
// list-of-struct field's back-to-back nested messages.
func (r *Reader) ReadStructListCount(limits Limits) int {
	return r.readCount(limits)
}
