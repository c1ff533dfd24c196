package dynamic

import (
	"fmt"

	"github.com/colfer-go/colfer"
	"github.com/colfer-go/colfer/internal/schema"
)

// Encode appends sv's fields onto a freshly allocated message, in the
// order pkg declares them, the inverse of Decode. Fields absent from
// sv.Fields are treated as the zero value and so contribute no bytes,
// matching generated MarshalTo's sparse encoding.
func Encode(pkg *schema.Package, sv *StructValue) ([]byte, error) {
	s, ok := pkg.Lookup(sv.TypeName)
	if !ok {
		return nil, fmt.Errorf("colfer: no struct named %q in this schema", sv.TypeName)
	}
	b := colfer.NewBuffer()
	if err := encodeStruct(pkg, s, sv, b); err != nil {
		return nil, err
	}
	if len(b.Bytes) > colfer.MaxSize {
		return nil, fmt.Errorf("%w: message size %d exceeds MaxSize %d", colfer.ErrLimitExceeded, len(b.Bytes), colfer.MaxSize)
	}
	return b.Bytes, nil
}

func encodeStruct(pkg *schema.Package, s schema.Struct, sv *StructValue, b *colfer.Buffer) error {
	for i, f := range s.Fields {
		v := sv.Fields[f.Name]
		if v == nil {
			continue
		}
		if err := encodeField(pkg, uint8(i), f, v, b); err != nil {
			return err
		}
	}
	b.End()
	return nil
}

func encodeField(pkg *schema.Package, id uint8, f schema.Field, v *Value, b *colfer.Buffer) error {
	switch f.Kind {
	case schema.Bool:
		b.AppendBool(id, v.Bool)
	case schema.Uint8:
		b.AppendUint8(id, v.Uint8)
	case schema.Uint16:
		b.AppendUint16(id, v.Uint16)
	case schema.Uint32:
		b.AppendUint32(id, v.Uint32)
	case schema.Uint64:
		b.AppendUint64(id, v.Uint64)
	case schema.Int32:
		b.AppendInt32(id, v.Int32)
	case schema.Int64:
		b.AppendInt64(id, v.Int64)
	case schema.Float32:
		b.AppendFloat32(id, v.Float32)
	case schema.Float64:
		b.AppendFloat64(id, v.Float64)
	case schema.Timestamp:
		b.AppendTimestamp(id, v.Timestamp.Seconds, v.Timestamp.NanoSeconds)
	case schema.Text:
		b.AppendText(id, v.Text)
	case schema.Binary:
		b.AppendBinary(id, v.Binary)
	case schema.StructRef:
		if v.Struct == nil {
			return nil
		}
		target, ok := pkg.Lookup(f.Ref)
		if !ok {
			return fmt.Errorf("colfer: field %q references undefined struct %q", f.Name, f.Ref)
		}
		b.StructHeader(id)
		return encodeStruct(pkg, target, v.Struct, b)
	case schema.ArrayFloat32:
		b.AppendFloat32List(id, v.Float32List)
	case schema.ArrayFloat64:
		b.AppendFloat64List(id, v.Float64List)
	case schema.ArrayText:
		b.AppendTextList(id, v.TextList)
	case schema.ArrayBinary:
		b.AppendBinaryList(id, v.BinaryList)
	case schema.ArrayStruct:
		if len(v.StructList) == 0 {
			return nil
		}
		target, ok := pkg.Lookup(f.Ref)
		if !ok {
			return fmt.Errorf("colfer: field %q references undefined struct %q", f.Name, f.Ref)
		}
		b.StructListHeader(id, len(v.StructList))
		for _, elem := range v.StructList {
			if err := encodeStruct(pkg, target, elem, b); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("colfer: unsupported field kind %v", f.Kind)
	}
	return nil
}
