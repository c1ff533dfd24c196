package dynamic

import (
	"fmt"

	"github.com/colfer-go/colfer"
	"github.com/colfer-go/colfer/internal/schema"
)

// endMarkerID is the end-of-message header id (spec §4.3). Kept as an
// unexported literal here rather than imported, the same way generated
// UnmarshalFrom bodies emit the literal 0x7F directly instead of a
// symbolic constant (see internal/gen/generator.go's writeUnmarshalFrom).
const endMarkerID = 0x7F

// Decode reads one message of the struct named typeName out of data,
// using pkg to resolve field ids to names and types. Any panic raised by
// the underlying colfer.Reader (short input, invalid UTF-8, a limit
// breach) is recovered and returned as an error, the same boundary
// colfer.Unmarshal enforces for generated types.
func Decode(pkg *schema.Package, typeName string, data []byte, limits colfer.Limits) (sv *StructValue, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(error); ok {
			err = e
			return
		}
		err = fmt.Errorf("%w: %v", colfer.ErrMalformed, r)
	}()

	s, ok := pkg.Lookup(typeName)
	if !ok {
		return nil, fmt.Errorf("colfer: no struct named %q in this schema", typeName)
	}

	r := colfer.NewReader(data)
	sv, err = decodeStruct(pkg, s, r, limits)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d trailing byte(s) after end marker", colfer.ErrMalformed, r.Len())
	}
	return sv, nil
}

// decodeStruct reads one message body from r, field by field, stopping
// at the end marker. Unlike a generated UnmarshalFrom, the field at a
// given id is looked up by declaration order in s rather than being a
// compile-time constant, since this struct definition was itself loaded
// at run time.
func decodeStruct(pkg *schema.Package, s schema.Struct, r *colfer.Reader, limits colfer.Limits) (*StructValue, error) {
	sv := &StructValue{TypeName: s.Name, Fields: map[string]*Value{}}
	for _, f := range s.Fields {
		sv.Order = append(sv.Order, f.Name)
	}

	for {
		id, flag := r.ReadHeader()
		if id == endMarkerID {
			return sv, nil
		}
		if int(id) >= len(s.Fields) {
			return nil, colfer.ErrUnknownField
		}
		f := s.Fields[id]

		v, err := decodeField(pkg, f, flag, r, limits)
		if err != nil {
			return nil, err
		}
		sv.Fields[f.Name] = v
	}
}

func decodeField(pkg *schema.Package, f schema.Field, flag bool, r *colfer.Reader, limits colfer.Limits) (*Value, error) {
	v := &Value{Kind: f.Kind}
	switch f.Kind {
	case schema.Bool:
		v.Bool = true
	case schema.Uint8:
		v.Uint8 = r.ReadUint8()
	case schema.Uint16:
		v.Uint16 = r.ReadUint16(flag)
	case schema.Uint32:
		v.Uint32 = r.ReadUint32(flag)
	case schema.Uint64:
		v.Uint64 = r.ReadUint64(flag)
	case schema.Int32:
		v.Int32 = r.ReadInt32(flag)
	case schema.Int64:
		v.Int64 = r.ReadInt64(flag)
	case schema.Float32:
		v.Float32 = r.ReadFloat32()
	case schema.Float64:
		v.Float64 = r.ReadFloat64()
	case schema.Timestamp:
		seconds, nanos := r.ReadTimestamp(flag)
		v.Timestamp = colfer.Timestamp{Seconds: seconds, NanoSeconds: nanos}
	case schema.Text:
		v.Text = r.ReadText(limits)
	case schema.Binary:
		v.Binary = r.ReadBinary(limits)
	case schema.StructRef:
		target, ok := pkg.Lookup(f.Ref)
		if !ok {
			return nil, fmt.Errorf("colfer: field %q references undefined struct %q", f.Name, f.Ref)
		}
		nested, err := decodeStruct(pkg, target, r, limits)
		if err != nil {
			return nil, err
		}
		v.Struct = nested
	case schema.ArrayFloat32:
		v.Float32List = r.ReadFloat32List(limits)
	case schema.ArrayFloat64:
		v.Float64List = r.ReadFloat64List(limits)
	case schema.ArrayText:
		v.TextList = r.ReadTextList(limits)
	case schema.ArrayBinary:
		v.BinaryList = r.ReadBinaryList(limits)
	case schema.ArrayStruct:
		target, ok := pkg.Lookup(f.Ref)
		if !ok {
			return nil, fmt.Errorf("colfer: field %q references undefined struct %q", f.Name, f.Ref)
		}
		n := r.ReadStructListCount(limits)
		v.StructList = make([]*StructValue, n)
		for i := range v.StructList {
			elem, err := decodeStruct(pkg, target, r, limits)
			if err != nil {
				return nil, err
			}
			v.StructList[i] = elem
		}
	default:
		return nil, fmt.Errorf("colfer: unsupported field kind %v", f.Kind)
	}
	return v, nil
}
