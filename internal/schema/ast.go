// Package schema holds the AST produced by parsing a .colf schema file and
// the validation pass that runs over it before code generation (spec
// §4.5, §4.7). Grounded on original_source/colfer-build/src/ast.rs's
// Colfer/Struct/Field/FieldType shape, re-expressed as Go value types
// instead of a Rust enum.
package schema

import "fmt"

// Kind identifies a field's wire type, including the array forms.
type Kind int

const (
	Bool Kind = iota
	Uint8
	Uint16
	Uint32
	Uint64
	Int32
	Int64
	Float32
	Float64
	Timestamp
	Text
	Binary
	StructRef // a named struct, field.Ref names it
	ArrayFloat32
	ArrayFloat64
	ArrayText
	ArrayBinary
	ArrayStruct // an array of a named struct, field.Ref names it
)

// String renders a Kind for diagnostics.
func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Timestamp:
		return "timestamp"
	case Text:
		return "text"
	case Binary:
		return "binary"
	case StructRef:
		return "struct"
	case ArrayFloat32:
		return "[]float32"
	case ArrayFloat64:
		return "[]float64"
	case ArrayText:
		return "[]text"
	case ArrayBinary:
		return "[]binary"
	case ArrayStruct:
		return "[]struct"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Field is one declared struct member. Ref is only meaningful for
// StructRef and ArrayStruct, and holds the PascalCase struct name it
// refers to.
type Field struct {
	Name string
	Kind Kind
	Ref  string
}

// Struct is one declared message type, fields in declared order (field
// id == slice index, per §4.6's emission-order rule).
type Struct struct {
	Name   string
	Fields []Field
}

// Package is one parsed schema file: a package name plus its structs in
// declaration order.
type Package struct {
	Name    string
	Structs []Struct
}

// Lookup returns the struct named name, or false if no such struct is
// declared in this package.
func (p *Package) Lookup(name string) (Struct, bool) {
	for _, s := range p.Structs {
		if s.Name == name {
			return s, true
		}
	}
	return Struct{}, false
}
