// Package dynamic decodes and encodes Colfer messages against a
// schema.Package loaded at run time, without a compiled struct to decode
// into. It exists for tooling: a command that only has a .colf file and
// a byte stream on hand, the way kungfusheep-glint's Walker/Printer
// (walker.go, printer.go) operate on glint's self-describing wire format
// without a generated type. Colfer carries no schema on the wire, so
// this package carries the schema itself, loaded separately, and walks
// field ids against it the same way generated UnmarshalFrom code does.
package dynamic

import (
	"github.com/colfer-go/colfer"
	"github.com/colfer-go/colfer/internal/schema"
)

// Value holds one decoded field's payload. Only the member matching Kind
// is populated; the others are left at their zero value.
type Value struct {
	Kind schema.Kind

	Bool      bool
	Uint8     uint8
	Uint16    uint16
	Uint32    uint32
	Uint64    uint64
	Int32     int32
	Int64     int64
	Float32   float32
	Float64   float64
	Timestamp colfer.Timestamp
	Text      string
	Binary    []byte
	Struct    *StructValue

	Float32List []float32
	Float64List []float64
	TextList    []string
	BinaryList  [][]byte
	StructList  []*StructValue
}

// StructValue is one decoded message, keyed by schema field name rather
// than by a compiled Go struct field.
type StructValue struct {
	TypeName string
	Fields   map[string]*Value
	// Order lists every field the schema declares, in declaration order,
	// independent of which fields were actually present on the wire.
	// Printing walks Order, and Encode walks the schema's declared
	// fields, so output is deterministic regardless of map iteration.
	Order []string
}

// Get returns the named field's value, or nil if the schema declares no
// such field or it was absent on the wire.
func (s *StructValue) Get(name string) *Value {
	return s.Fields[name]
}
