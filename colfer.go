// Package colfer implements the Colfer wire codec: a compact binary
// serialization format built from a 1-byte field-id/flag header, sparse
// encoding that omits absent (zero) values, variable-width integers, and
// alternative wide encodings chosen by magnitude (spec §1-§4).
//
// The package exposes the low-level building blocks (Buffer, Reader,
// varint helpers) that generated message types call into, plus the
// Message contract (message.go) and the Marshal/Unmarshal convenience
// functions (framing.go) every generated type is driven through. Schema
// compilation lives in the sibling internal/schema and internal/gen
// packages; this package only concerns itself with bytes.
package colfer
