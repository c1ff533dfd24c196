package colfer

// Message is the contract every generated message type implements (spec
// §4.4): MarshalTo appends this value's bytes directly onto a
// caller-owned Buffer (no intermediate allocation when a struct field is
// nested inside another), UnmarshalFrom reads exactly one message body
// from a shared Reader, and Size reports the exact byte length MarshalTo
// would append, the size-exactness law from spec §8. The package-level
// Marshal/Unmarshal helpers in framing.go drive a Message through this
// contract for callers that just want a []byte in and out.
type Message interface {
	// MarshalTo appends this value's encoded bytes onto b in declared
	// field order, terminated by the end marker.
	MarshalTo(b *Buffer) error

	// UnmarshalFrom reads one message body from r, decoding each header's
	// field into the declared field with that index, until the end marker
	// is consumed.
	UnmarshalFrom(r *Reader, limits Limits) error

	// Size reports the exact number of bytes MarshalTo would append.
	Size() int
}
