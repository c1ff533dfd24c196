package schema

// goReserved holds Go's keywords and predeclared identifiers that would
// shadow something if used verbatim as a generated field name. This is
// the Go-target analogue of original_source/colfer-build/src/parser.rs's
// Rust keyword table (§4.5, §9): the escape mechanism there prefers a
// raw-identifier form and falls back to a trailing underscore; Go has no
// raw-identifier syntax, so every collision here uses the underscore
// fallback.
var goReserved = map[string]bool{
	// Keywords (the Go Programming Language Specification).
	"break": true, "default": true, "func": true, "interface": true, "select": true,
	"case": true, "defer": true, "go": true, "map": true, "struct": true,
	"chan": true, "else": true, "goto": true, "package": true, "switch": true,
	"const": true, "fallthrough": true, "if": true, "range": true, "type": true,
	"continue": true, "for": true, "import": true, "return": true, "var": true,

	// Predeclared identifiers worth avoiding on a generated struct field,
	// since shadowing them inside the field's own package is legal but
	// surprising to a reader.
	"any": true, "bool": true, "byte": true, "comparable": true,
	"complex64": true, "complex128": true, "error": true, "float32": true,
	"float64": true, "int": true, "int8": true, "int16": true, "int32": true,
	"int64": true, "rune": true, "string": true, "uint": true, "uint8": true,
	"uint16": true, "uint32": true, "uint64": true, "uintptr": true,
	"true": true, "false": true, "iota": true, "nil": true,
}

// escapeFieldName appends a trailing underscore to name if it would
// otherwise collide with a Go keyword or predeclared identifier. The
// escape policy is purely a generator concern; it has no effect on the
// wire (§4.5).
func escapeFieldName(name string) string {
	if goReserved[name] {
		return name + "_"
	}
	return name
}
