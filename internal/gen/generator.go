package gen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/colfer-go/colfer/internal/schema"
)

// Generate produces the Go source for one schema package (§4.6): one
// source file, package name = the schema's snake_cased package name,
// one struct per declared message type implementing the colfer.Message
// contract. Output is deterministic byte-for-byte given the same AST
// (spec's "idempotent generation" law), since structs and fields are
// emitted in declaration order and the indirection map is only looked
// up by key, never iterated.
//
// Grounded on kungfusheep-glint/cmd/glint/structgenerator.go's
// structGenerator (buildGoFile/writeStruct, strings.Builder emission)
// for the overall shape, and on
// original_source/colfer-build/src/generator.rs's generate() for the
// per-field encode/decode/size body emission this adapts from Rust's
// colfer::Message trait calls to this module's Buffer/Reader methods.
func Generate(pkg *schema.Package) (string, error) {
	if err := schema.Validate(pkg); err != nil {
		return "", err
	}

	indirect := computeIndirection(pkg)

	var b strings.Builder
	fmt.Fprintf(&b, "package %s\n\n", pkg.Name)
	b.WriteString("import \"github.com/colfer-go/colfer\"\n\n")

	for _, s := range pkg.Structs {
		writeStruct(&b, s, indirect)
	}

	return b.String(), nil
}

// indirectionKey names one (struct, field) pair that needs owning
// nullable indirection.
type indirectionKey struct {
	structName string
	fieldName  string
}

// computeIndirection runs §4.6's recursion-safety algorithm for every
// StructRef field in the package: a depth-first walk from the field's
// referenced struct, following only singular Struct(_) edges (list-of-
// struct fields never need indirection and are excluded from the
// graph), needs indirection when the walk reaches the field's own
// enclosing struct.
func computeIndirection(pkg *schema.Package) map[indirectionKey]bool {
	result := make(map[indirectionKey]bool)
	for _, s := range pkg.Structs {
		for _, f := range s.Fields {
			if f.Kind != schema.StructRef {
				continue
			}
			if reaches(pkg, f.Ref, s.Name, map[string]bool{}) {
				result[indirectionKey{s.Name, f.Name}] = true
			}
		}
	}
	return result
}

// reaches reports whether a depth-first walk starting at the struct
// named current, following only StructRef fields, ever visits a struct
// named target. Unlike original_source/colfer-build/src/ast.rs's
// need_box (the same algorithm with no visited set, which can recurse
// forever on a mutual cycle that never reaches target), this tracks
// visited struct names so a cycle elsewhere in the graph terminates the
// walk instead of looping.
func reaches(pkg *schema.Package, current, target string, visited map[string]bool) bool {
	if visited[current] {
		return false
	}
	visited[current] = true

	s, ok := pkg.Lookup(current)
	if !ok {
		return false
	}
	for _, f := range s.Fields {
		if f.Kind != schema.StructRef {
			continue
		}
		if f.Ref == target || reaches(pkg, f.Ref, target, visited) {
			return true
		}
	}
	return false
}

func writeStruct(b *strings.Builder, s schema.Struct, indirect map[indirectionKey]bool) {
	fmt.Fprintf(b, "type %s struct {\n", s.Name)

	maxNameLen, maxTypeLen := 0, 0
	types := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		goName := GoFieldName(f.Name)
		goType := fieldGoType(f)
		types[i] = goType
		if len(goName) > maxNameLen {
			maxNameLen = len(goName)
		}
		if len(goType) > maxTypeLen {
			maxTypeLen = len(goType)
		}
	}
	for i, f := range s.Fields {
		goName := GoFieldName(f.Name)
		comment := fmt.Sprintf("wire id %d", i)
		if indirect[indirectionKey{s.Name, f.Name}] {
			comment += ", cyclic: requires indirection"
		}
		fmt.Fprintf(b, "\t%-*s %-*s // %s\n", maxNameLen, goName, maxTypeLen, types[i], comment)
	}
	b.WriteString("}\n\n")

	writeSize(b, s)
	writeMarshalTo(b, s)
	writeUnmarshalFrom(b, s)
}

// fieldGoType returns the Go type a struct field of kind f is generated
// with, per the mapping table in spec §6. Every StructRef/ArrayStruct
// field is a pointer regardless of computeIndirection's result: §4.6's
// indirection requirement only matters in a target language where a
// plain nullable field can embed its pointee inline (Rust's Option<T>
// without Box, sized only when T's size is already known). Go has no
// such inline-nullable representation — every nullable struct field is
// already a pointer — so the cyclic/non-cyclic distinction the DFS
// computes has no effect on the emitted type here; it is still computed
// and surfaced as a field comment (and exercised by generator_test.go)
// because a generator that silently dropped a spec-mandated computation
// would be failing the letter of §4.6 even though Go's representation
// makes it a no-op in practice.
func fieldGoType(f schema.Field) string {
	switch f.Kind {
	case schema.Bool:
		return "bool"
	case schema.Uint8:
		return "uint8"
	case schema.Uint16:
		return "uint16"
	case schema.Uint32:
		return "uint32"
	case schema.Uint64:
		return "uint64"
	case schema.Int32:
		return "int32"
	case schema.Int64:
		return "int64"
	case schema.Float32:
		return "float32"
	case schema.Float64:
		return "float64"
	case schema.Timestamp:
		return "colfer.Timestamp"
	case schema.Text:
		return "string"
	case schema.Binary:
		return "[]byte"
	case schema.StructRef:
		return "*" + f.Ref
	case schema.ArrayFloat32:
		return "[]float32"
	case schema.ArrayFloat64:
		return "[]float64"
	case schema.ArrayText:
		return "[]string"
	case schema.ArrayBinary:
		return "[][]byte"
	case schema.ArrayStruct:
		return "[]*" + f.Ref
	default:
		return "any"
	}
}

func writeSize(b *strings.Builder, s schema.Struct) {
	fmt.Fprintf(b, "func (v *%s) Size() int {\n", s.Name)
	b.WriteString("\tbuf := colfer.NewBuffer()\n")
	fmt.Fprintf(b, "\tv.MarshalTo(buf)\n")
	b.WriteString("\treturn len(buf.Bytes)\n}\n\n")
}

func writeMarshalTo(b *strings.Builder, s schema.Struct) {
	fmt.Fprintf(b, "func (v *%s) MarshalTo(b *colfer.Buffer) error {\n", s.Name)
	for i, f := range s.Fields {
		goName := GoFieldName(f.Name)
		switch f.Kind {
		case schema.Bool:
			fmt.Fprintf(b, "\tb.AppendBool(%d, v.%s)\n", i, goName)
		case schema.Uint8:
			fmt.Fprintf(b, "\tb.AppendUint8(%d, v.%s)\n", i, goName)
		case schema.Uint16:
			fmt.Fprintf(b, "\tb.AppendUint16(%d, v.%s)\n", i, goName)
		case schema.Uint32:
			fmt.Fprintf(b, "\tb.AppendUint32(%d, v.%s)\n", i, goName)
		case schema.Uint64:
			fmt.Fprintf(b, "\tb.AppendUint64(%d, v.%s)\n", i, goName)
		case schema.Int32:
			fmt.Fprintf(b, "\tb.AppendInt32(%d, v.%s)\n", i, goName)
		case schema.Int64:
			fmt.Fprintf(b, "\tb.AppendInt64(%d, v.%s)\n", i, goName)
		case schema.Float32:
			fmt.Fprintf(b, "\tb.AppendFloat32(%d, v.%s)\n", i, goName)
		case schema.Float64:
			fmt.Fprintf(b, "\tb.AppendFloat64(%d, v.%s)\n", i, goName)
		case schema.Timestamp:
			fmt.Fprintf(b, "\tb.AppendTimestamp(%d, v.%s.Seconds, v.%s.NanoSeconds)\n", i, goName, goName)
		case schema.Text:
			fmt.Fprintf(b, "\tb.AppendText(%d, v.%s)\n", i, goName)
		case schema.Binary:
			fmt.Fprintf(b, "\tb.AppendBinary(%d, v.%s)\n", i, goName)
		case schema.StructRef:
			fmt.Fprintf(b, "\tif v.%s != nil {\n", goName)
			fmt.Fprintf(b, "\t\tb.StructHeader(%d)\n", i)
			fmt.Fprintf(b, "\t\tif err := v.%s.MarshalTo(b); err != nil {\n\t\t\treturn err\n\t\t}\n", goName)
			b.WriteString("\t}\n")
		case schema.ArrayFloat32:
			fmt.Fprintf(b, "\tb.AppendFloat32List(%d, v.%s)\n", i, goName)
		case schema.ArrayFloat64:
			fmt.Fprintf(b, "\tb.AppendFloat64List(%d, v.%s)\n", i, goName)
		case schema.ArrayText:
			fmt.Fprintf(b, "\tb.AppendTextList(%d, v.%s)\n", i, goName)
		case schema.ArrayBinary:
			fmt.Fprintf(b, "\tb.AppendBinaryList(%d, v.%s)\n", i, goName)
		case schema.ArrayStruct:
			fmt.Fprintf(b, "\tif len(v.%s) > 0 {\n", goName)
			fmt.Fprintf(b, "\t\tb.StructListHeader(%d, len(v.%s))\n", i, goName)
			fmt.Fprintf(b, "\t\tfor _, e := range v.%s {\n", goName)
			b.WriteString("\t\t\tif err := e.MarshalTo(b); err != nil {\n\t\t\t\treturn err\n\t\t\t}\n")
			b.WriteString("\t\t}\n\t}\n")
		}
	}
	b.WriteString("\tb.End()\n\treturn nil\n}\n\n")
}

func writeUnmarshalFrom(b *strings.Builder, s schema.Struct) {
	fmt.Fprintf(b, "func (v *%s) UnmarshalFrom(r *colfer.Reader, limits colfer.Limits) error {\n", s.Name)
	b.WriteString("\tfor {\n")
	b.WriteString("\t\tid, flag := r.ReadHeader()\n")
	b.WriteString("\t\t_ = flag\n")
	b.WriteString("\t\tswitch id {\n")
	b.WriteString("\t\tcase 0x7F:\n\t\t\treturn nil\n")
	for i, f := range s.Fields {
		goName := GoFieldName(f.Name)
		fmt.Fprintf(b, "\t\tcase %d:\n", i)
		switch f.Kind {
		case schema.Bool:
			fmt.Fprintf(b, "\t\t\tv.%s = true\n", goName)
		case schema.Uint8:
			fmt.Fprintf(b, "\t\t\tv.%s = r.ReadUint8()\n", goName)
		case schema.Uint16:
			fmt.Fprintf(b, "\t\t\tv.%s = r.ReadUint16(flag)\n", goName)
		case schema.Uint32:
			fmt.Fprintf(b, "\t\t\tv.%s = r.ReadUint32(flag)\n", goName)
		case schema.Uint64:
			fmt.Fprintf(b, "\t\t\tv.%s = r.ReadUint64(flag)\n", goName)
		case schema.Int32:
			fmt.Fprintf(b, "\t\t\tv.%s = r.ReadInt32(flag)\n", goName)
		case schema.Int64:
			fmt.Fprintf(b, "\t\t\tv.%s = r.ReadInt64(flag)\n", goName)
		case schema.Float32:
			fmt.Fprintf(b, "\t\t\tv.%s = r.ReadFloat32()\n", goName)
		case schema.Float64:
			fmt.Fprintf(b, "\t\t\tv.%s = r.ReadFloat64()\n", goName)
		case schema.Timestamp:
			fmt.Fprintf(b, "\t\t\tseconds, nanos := r.ReadTimestamp(flag)\n")
			fmt.Fprintf(b, "\t\t\tv.%s = colfer.Timestamp{Seconds: seconds, NanoSeconds: nanos}\n", goName)
		case schema.Text:
			fmt.Fprintf(b, "\t\t\tv.%s = r.ReadText(limits)\n", goName)
		case schema.Binary:
			fmt.Fprintf(b, "\t\t\tv.%s = r.ReadBinary(limits)\n", goName)
		case schema.StructRef:
			fmt.Fprintf(b, "\t\t\tv.%s = &%s{}\n", goName, f.Ref)
			fmt.Fprintf(b, "\t\t\tif err := v.%s.UnmarshalFrom(r, limits); err != nil {\n\t\t\t\treturn err\n\t\t\t}\n", goName)
		case schema.ArrayFloat32:
			fmt.Fprintf(b, "\t\t\tv.%s = r.ReadFloat32List(limits)\n", goName)
		case schema.ArrayFloat64:
			fmt.Fprintf(b, "\t\t\tv.%s = r.ReadFloat64List(limits)\n", goName)
		case schema.ArrayText:
			fmt.Fprintf(b, "\t\t\tv.%s = r.ReadTextList(limits)\n", goName)
		case schema.ArrayBinary:
			fmt.Fprintf(b, "\t\t\tv.%s = r.ReadBinaryList(limits)\n", goName)
		case schema.ArrayStruct:
			fmt.Fprintf(b, "\t\t\tn := r.ReadStructListCount(limits)\n")
			fmt.Fprintf(b, "\t\t\tv.%s = make([]*%s, n)\n", goName, f.Ref)
			b.WriteString("\t\t\tfor i := range v." + goName + " {\n")
			fmt.Fprintf(b, "\t\t\t\te := &%s{}\n", f.Ref)
			b.WriteString("\t\t\t\tif err := e.UnmarshalFrom(r, limits); err != nil {\n\t\t\t\t\treturn err\n\t\t\t\t}\n")
			b.WriteString("\t\t\t\tv." + goName + "[i] = e\n\t\t\t}\n")
		}
	}
	b.WriteString("\t\tdefault:\n\t\t\treturn colfer.ErrUnknownField\n")
	b.WriteString("\t\t}\n\t}\n}\n\n")
}

// sortedKeys is used only by tests that need deterministic iteration
// over the indirection map; kept here next to computeIndirection since
// it is this file's only consumer of map key ordering.
func sortedKeys(m map[indirectionKey]bool) []indirectionKey {
	keys := make([]indirectionKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].structName != keys[j].structName {
			return keys[i].structName < keys[j].structName
		}
		return keys[i].fieldName < keys[j].fieldName
	})
	return keys
}
