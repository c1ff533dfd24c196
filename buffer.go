package colfer

import "math"

// Buffer is an append-only encode sink. It owns no synchronization (spec
// §5: callers must not share a mutable Buffer across goroutines without
// external locking) and supports only append operations, the same
// contract as kungfusheep-glint's Buffer (buffer.go) which this type is
// grounded on; the per-field methods below replace glint's raw
// Append<Type> calls with the sparse "no bytes when absent, id|flag
// header otherwise" protocol from spec §4.2.
type Buffer struct {
	Bytes []byte
}

// NewBuffer returns an empty Buffer ready to encode into.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Reset clears the buffer contents but keeps the underlying array.
func (b *Buffer) Reset() {
	b.Bytes = b.Bytes[:0]
}

// header appends a single header byte: the low 7 bits are id, the high
// bit is set when alt is true.
func (b *Buffer) header(id uint8, alt bool) {
	h := id & idMask
	if alt {
		h |= flagBit
	}
	b.Bytes = append(b.Bytes, h)
}

// End appends the message-terminating end marker (spec §4.3).
func (b *Buffer) End() {
	b.Bytes = append(b.Bytes, endMarker)
}

// AppendBool encodes a bool field. false is the absent value and
// contributes no bytes; true is written as a bare header (the flag bit
// is redundant for bool but accepted on decode either way, per §4.2).
func (b *Buffer) AppendBool(id uint8, v bool) {
	if !v {
		return
	}
	b.header(id, false)
}

// AppendUint8 encodes a u8 field: zero is absent, otherwise one raw byte.
func (b *Buffer) AppendUint8(id uint8, v uint8) {
	if v == 0 {
		return
	}
	b.header(id, false)
	b.Bytes = append(b.Bytes, v)
}

// AppendUint16 encodes a u16 field. Zero is absent. Values with
// 0 < x < 256 take the flagged 1-byte alternative form; x >= 256 takes
// the unflagged 2-byte big-endian form, so x == 256 is always wide
// (spec's boundary case).
func (b *Buffer) AppendUint16(id uint8, v uint16) {
	if v == 0 {
		return
	}
	if v < 256 {
		b.header(id, true)
		b.Bytes = append(b.Bytes, byte(v))
		return
	}
	b.header(id, false)
	b.Bytes = append(b.Bytes, byte(v>>8), byte(v))
}

// AppendUint32 encodes a u32 field. Zero is absent. Values below 2^21 use
// a varint; at or above that magnitude the wide 4-byte big-endian form is
// used instead.
func (b *Buffer) AppendUint32(id uint8, v uint32) {
	if v == 0 {
		return
	}
	if v >= 1<<21 {
		b.header(id, true)
		b.Bytes = append(b.Bytes, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
		return
	}
	b.header(id, false)
	b.Bytes = appendVarint(b.Bytes, uint64(v))
}

// AppendUint64 encodes a u64 field. Zero is absent. Values below 2^49 use
// a varint; at or above that magnitude the wide 8-byte big-endian form is
// used instead.
func (b *Buffer) AppendUint64(id uint8, v uint64) {
	if v == 0 {
		return
	}
	if v >= 1<<49 {
		b.header(id, true)
		b.Bytes = append(b.Bytes,
			byte(v>>56), byte(v>>48), byte(v>>40), byte(v>>32),
			byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
		return
	}
	b.header(id, false)
	b.Bytes = appendVarint(b.Bytes, v)
}

// AppendInt32 encodes an i32 field. Zero is absent. Negative values are
// written as the varint of their 32-bit two's-complement negation
// (~x + 1), computed in 32-bit precision so that math.MinInt32 maps to
// itself and round-trips (spec's tie-break case).
func (b *Buffer) AppendInt32(id uint8, v int32) {
	if v == 0 {
		return
	}
	if v < 0 {
		b.header(id, true)
		mag := uint32(^v) + 1
		b.Bytes = appendVarint(b.Bytes, uint64(mag))
		return
	}
	b.header(id, false)
	b.Bytes = appendVarint(b.Bytes, uint64(v))
}

// AppendInt64 encodes an i64 field, identically to AppendInt32 but in
// 64-bit precision so math.MinInt64 likewise round-trips (its magnitude
// 2^63 takes appendVarint's full nine bytes).
func (b *Buffer) AppendInt64(id uint8, v int64) {
	if v == 0 {
		return
	}
	if v < 0 {
		b.header(id, true)
		mag := uint64(^v) + 1
		b.Bytes = appendVarint(b.Bytes, mag)
		return
	}
	b.header(id, false)
	b.Bytes = appendVarint(b.Bytes, uint64(v))
}

// AppendFloat32 encodes an f32 field. Positive zero is absent (note: -0.0
// has a distinct bit pattern and is therefore present); everything else
// is written as its 4-byte big-endian IEEE-754 bits with no alternate
// form.
func (b *Buffer) AppendFloat32(id uint8, v float32) {
	bits := math.Float32bits(v)
	if bits == 0 {
		return
	}
	b.header(id, false)
	b.Bytes = append(b.Bytes, byte(bits>>24), byte(bits>>16), byte(bits>>8), byte(bits))
}

// AppendFloat64 encodes an f64 field, the 8-byte analogue of AppendFloat32.
func (b *Buffer) AppendFloat64(id uint8, v float64) {
	bits := math.Float64bits(v)
	if bits == 0 {
		return
	}
	b.header(id, false)
	b.Bytes = append(b.Bytes,
		byte(bits>>56), byte(bits>>48), byte(bits>>40), byte(bits>>32),
		byte(bits>>24), byte(bits>>16), byte(bits>>8), byte(bits))
}

// AppendTimestamp encodes a timestamp field. Both fields zero is absent.
// The 4-byte-seconds form is used whenever seconds fits below 2^32 under
// an *unsigned* comparison — which also routes every negative (pre-epoch)
// second count to the wide form, since its two's-complement bit pattern
// reinterpreted as unsigned is far larger than 2^32.
func (b *Buffer) AppendTimestamp(id uint8, seconds int64, nanoseconds uint32) {
	if seconds == 0 && nanoseconds == 0 {
		return
	}
	if uint64(seconds) < 1<<32 {
		b.header(id, false)
		s := uint32(seconds)
		b.Bytes = append(b.Bytes, byte(s>>24), byte(s>>16), byte(s>>8), byte(s))
	} else {
		b.header(id, true)
		s := uint64(seconds)
		b.Bytes = append(b.Bytes,
			byte(s>>56), byte(s>>48), byte(s>>40), byte(s>>32),
			byte(s>>24), byte(s>>16), byte(s>>8), byte(s))
	}
	n := nanoseconds
	b.Bytes = append(b.Bytes, byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
}

// AppendText encodes a text field. An empty string is absent; otherwise
// a varint length prefix followed by the raw UTF-8 bytes.
func (b *Buffer) AppendText(id uint8, v string) {
	if len(v) == 0 {
		return
	}
	b.header(id, false)
	b.Bytes = appendVarint(b.Bytes, uint64(len(v)))
	b.Bytes = append(b.Bytes, v...)
}

// AppendBinary encodes a binary field, identically to AppendText but for
// an arbitrary byte slice.
func (b *Buffer) AppendBinary(id uint8, v []byte) {
	if len(v) == 0 {
		return
	}
	b.header(id, false)
	b.Bytes = appendVarint(b.Bytes, uint64(len(v)))
	b.Bytes = append(b.Bytes, v...)
}

// AppendFloat32List encodes a list<f32> field: an empty list is absent;
// otherwise a varint count followed by that many 4-byte big-endian values.
func (b *Buffer) AppendFloat32List(id uint8, v []float32) {
	if len(v) == 0 {
		return
	}
	b.header(id, false)
	b.Bytes = appendVarint(b.Bytes, uint64(len(v)))
	for _, f := range v {
		bits := math.Float32bits(f)
		b.Bytes = append(b.Bytes, byte(bits>>24), byte(bits>>16), byte(bits>>8), byte(bits))
	}
}

// AppendFloat64List encodes a list<f64> field, the 8-byte analogue of
// AppendFloat32List.
func (b *Buffer) AppendFloat64List(id uint8, v []float64) {
	if len(v) == 0 {
		return
	}
	b.header(id, false)
	b.Bytes = appendVarint(b.Bytes, uint64(len(v)))
	for _, f := range v {
		bits := math.Float64bits(f)
		b.Bytes = append(b.Bytes,
			byte(bits>>56), byte(bits>>48), byte(bits>>40), byte(bits>>32),
			byte(bits>>24), byte(bits>>16), byte(bits>>8), byte(bits))
	}
}

// AppendTextList encodes a list<text> field: a varint count followed by
// each element as its own varint(len) || utf8-bytes. This is the
// per-element length scheme the spec's §9 open question resolves on
// (rejecting the reference's outer-length-reused-per-element bug).
func (b *Buffer) AppendTextList(id uint8, v []string) {
	if len(v) == 0 {
		return
	}
	b.header(id, false)
	b.Bytes = appendVarint(b.Bytes, uint64(len(v)))
	for _, s := range v {
		b.Bytes = appendVarint(b.Bytes, uint64(len(s)))
		b.Bytes = append(b.Bytes, s...)
	}
}

// AppendBinaryList encodes a list<binary> field, identically to
// AppendTextList but for raw byte slices.
func (b *Buffer) AppendBinaryList(id uint8, v [][]byte) {
	if len(v) == 0 {
		return
	}
	b.header(id, false)
	b.Bytes = appendVarint(b.Bytes, uint64(len(v)))
	for _, e := range v {
		b.Bytes = appendVarint(b.Bytes, uint64(len(e)))
		b.Bytes = append(b.Bytes, e...)
	}
}

// StructHeader writes the header byte that precedes a nested message's
// own encoded bytes (spec §4.3's "Nested message" framing). Callers
// follow this with the nested value's MarshalTo.
func (b *Buffer) StructHeader(id uint8) {
	b.header(id, false)
}

// StructListHeader writes the header byte and element count that precede
// a list-of-struct field's back-to-back nested messages.
func (b *Buffer) StructListHeader(id uint8, count int) {
	b.header(id, false)
	b.Bytes = appendVarint(b.Bytes, uint64(count))
}
