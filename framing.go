package colfer

import "fmt"

// Marshal encodes m into a freshly allocated byte slice and enforces
// MaxSize on the result (spec §4.3, §5). It is the to_bytes() convenience
// from the message contract (§4.4).
func Marshal(m Message) ([]byte, error) {
	b := NewBuffer()
	if err := m.MarshalTo(b); err != nil {
		return nil, err
	}
	if len(b.Bytes) > MaxSize {
		return nil, limitExceededf("message size %d exceeds MaxSize %d", len(b.Bytes), MaxSize)
	}
	return b.Bytes, nil
}

// Unmarshal decodes exactly one message from data into m, using
// DefaultLimits. It is the from_bytes() convenience from the message
// contract (§4.4). Any panic raised by the low-level Reader (short input,
// invalid UTF-8, a limit breach) is recovered here and returned as one of
// the sentinel errors from errors.go; no panic escapes this call.
func Unmarshal(data []byte, m Message) (err error) {
	defer recoverDecodeError(&err)

	if len(data) > MaxSize {
		return limitExceededf("message size %d exceeds MaxSize %d", len(data), MaxSize)
	}

	r := NewReader(data)
	if err := m.UnmarshalFrom(r, DefaultLimits); err != nil {
		return err
	}
	if r.Len() != 0 {
		return malformedf("%d trailing byte(s) after end marker", r.Len())
	}
	return nil
}

// UnmarshalWithLimits is Unmarshal with caller-supplied bounds, for
// callers that need tighter or looser MaxSize/MaxListSize behavior than
// DefaultLimits.
func UnmarshalWithLimits(data []byte, m Message, limits Limits) (err error) {
	defer recoverDecodeError(&err)

	if len(data) > limits.maxSize() {
		return limitExceededf("message size %d exceeds MaxSize %d", len(data), limits.maxSize())
	}

	r := NewReader(data)
	if err := m.UnmarshalFrom(r, limits); err != nil {
		return err
	}
	if r.Len() != 0 {
		return malformedf("%d trailing byte(s) after end marker", r.Len())
	}
	return nil
}

// Generated code does not call a shared dispatch function for the
// field decode in spec §4.3 — each type's UnmarshalFrom is emitted as a
// loop that reads a header and switches on its id: 0x7F returns, each
// declared index decodes that field, and fields whose id never appears
// stay at their default. This mirrors the teacher's own preference
// for inlined, allocation-free decode bodies (kungfusheep-glint/decoder.go's
// generated-per-type instruction walk) over a generic reflective
// dispatcher.
//
// ErrUnknownField is the MALFORMED variant raised when a decoder reads
// a header whose id is neither a declared field index nor the end marker
// (0x7F). Per spec §9's open question, this format
// gives decoders no way to skip a field id beyond the declared range
// (the header carries no type tag), so an id that doesn't match any
// declared field and isn't the end marker is treated as malformed input
// rather than silently ignored.
var ErrUnknownField = fmt.Errorf("%w: field id not recognized by this message type", ErrMalformed)
