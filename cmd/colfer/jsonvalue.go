package main

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/colfer-go/colfer"
	"github.com/colfer-go/colfer/internal/dynamic"
	"github.com/colfer-go/colfer/internal/schema"
)

// jsonToStructValue builds a dynamic.StructValue for typeName out of a
// decoded JSON object, the inverse of structValueToJSON. Grounded on
// kungfusheep-glint/cmd/glint/glint.go's buildGlintFromObject/
// addFieldToBuilder, generalized from glint's untyped field builder to
// one driven by a loaded schema.Struct's declared field kinds.
func jsonToStructValue(pkg *schema.Package, typeName string, obj map[string]any) (*dynamic.StructValue, error) {
	s, ok := pkg.Lookup(typeName)
	if !ok {
		return nil, fmt.Errorf("no struct named %q in this schema", typeName)
	}

	sv := &dynamic.StructValue{TypeName: typeName, Fields: map[string]*dynamic.Value{}}
	for _, f := range s.Fields {
		sv.Order = append(sv.Order, f.Name)
		raw, present := obj[f.Name]
		if !present || raw == nil {
			continue
		}
		v, err := jsonToValue(pkg, f, raw)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		sv.Fields[f.Name] = v
	}
	return sv, nil
}

func jsonToValue(pkg *schema.Package, f schema.Field, raw any) (*dynamic.Value, error) {
	v := &dynamic.Value{Kind: f.Kind}
	switch f.Kind {
	case schema.Bool:
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("want bool, got %T", raw)
		}
		v.Bool = b
	case schema.Uint8:
		n, err := jsonNumber(raw)
		if err != nil {
			return nil, err
		}
		v.Uint8 = uint8(n)
	case schema.Uint16:
		n, err := jsonNumber(raw)
		if err != nil {
			return nil, err
		}
		v.Uint16 = uint16(n)
	case schema.Uint32:
		n, err := jsonNumber(raw)
		if err != nil {
			return nil, err
		}
		v.Uint32 = uint32(n)
	case schema.Uint64:
		n, err := jsonNumber(raw)
		if err != nil {
			return nil, err
		}
		v.Uint64 = uint64(n)
	case schema.Int32:
		n, err := jsonNumber(raw)
		if err != nil {
			return nil, err
		}
		v.Int32 = int32(n)
	case schema.Int64:
		n, err := jsonNumber(raw)
		if err != nil {
			return nil, err
		}
		v.Int64 = int64(n)
	case schema.Float32:
		n, err := jsonNumber(raw)
		if err != nil {
			return nil, err
		}
		v.Float32 = float32(n)
	case schema.Float64:
		n, err := jsonNumber(raw)
		if err != nil {
			return nil, err
		}
		v.Float64 = n
	case schema.Timestamp:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("want an RFC3339 string, got %T", raw)
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, err
		}
		v.Timestamp = colfer.TimestampFromTime(t)
	case schema.Text:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("want string, got %T", raw)
		}
		v.Text = s
	case schema.Binary:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("want a base64 string, got %T", raw)
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, err
		}
		v.Binary = b
	case schema.StructRef:
		obj, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("want object, got %T", raw)
		}
		nested, err := jsonToStructValue(pkg, f.Ref, obj)
		if err != nil {
			return nil, err
		}
		v.Struct = nested
	case schema.ArrayFloat32:
		items, err := jsonArray(raw)
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			n, err := jsonNumber(it)
			if err != nil {
				return nil, err
			}
			v.Float32List = append(v.Float32List, float32(n))
		}
	case schema.ArrayFloat64:
		items, err := jsonArray(raw)
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			n, err := jsonNumber(it)
			if err != nil {
				return nil, err
			}
			v.Float64List = append(v.Float64List, n)
		}
	case schema.ArrayText:
		items, err := jsonArray(raw)
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			s, ok := it.(string)
			if !ok {
				return nil, fmt.Errorf("want string, got %T", it)
			}
			v.TextList = append(v.TextList, s)
		}
	case schema.ArrayBinary:
		items, err := jsonArray(raw)
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			s, ok := it.(string)
			if !ok {
				return nil, fmt.Errorf("want a base64 string, got %T", it)
			}
			b, err := base64.StdEncoding.DecodeString(s)
			if err != nil {
				return nil, err
			}
			v.BinaryList = append(v.BinaryList, b)
		}
	case schema.ArrayStruct:
		items, err := jsonArray(raw)
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			obj, ok := it.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("want object, got %T", it)
			}
			nested, err := jsonToStructValue(pkg, f.Ref, obj)
			if err != nil {
				return nil, err
			}
			v.StructList = append(v.StructList, nested)
		}
	default:
		return nil, fmt.Errorf("unsupported field kind %v", f.Kind)
	}
	return v, nil
}

func jsonNumber(raw any) (float64, error) {
	n, ok := raw.(float64)
	if !ok {
		return 0, fmt.Errorf("want number, got %T", raw)
	}
	return n, nil
}

func jsonArray(raw any) ([]any, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("want array, got %T", raw)
	}
	return items, nil
}

// structValueToJSON renders a decoded StructValue back into plain JSON
// values, the inverse of jsonToStructValue.
func structValueToJSON(sv *dynamic.StructValue) map[string]any {
	obj := make(map[string]any, len(sv.Order))
	for _, name := range sv.Order {
		v := sv.Fields[name]
		if v == nil {
			continue
		}
		obj[name] = valueToJSON(v)
	}
	return obj
}

func valueToJSON(v *dynamic.Value) any {
	switch v.Kind {
	case schema.Bool:
		return v.Bool
	case schema.Uint8:
		return v.Uint8
	case schema.Uint16:
		return v.Uint16
	case schema.Uint32:
		return v.Uint32
	case schema.Uint64:
		return v.Uint64
	case schema.Int32:
		return v.Int32
	case schema.Int64:
		return v.Int64
	case schema.Float32:
		return v.Float32
	case schema.Float64:
		return v.Float64
	case schema.Timestamp:
		return v.Timestamp.Time().Format(time.RFC3339Nano)
	case schema.Text:
		return v.Text
	case schema.Binary:
		return base64.StdEncoding.EncodeToString(v.Binary)
	case schema.StructRef:
		return structValueToJSON(v.Struct)
	case schema.ArrayFloat32:
		return v.Float32List
	case schema.ArrayFloat64:
		return v.Float64List
	case schema.ArrayText:
		return v.TextList
	case schema.ArrayBinary:
		list := make([]string, len(v.BinaryList))
		for i, b := range v.BinaryList {
			list[i] = base64.StdEncoding.EncodeToString(b)
		}
		return list
	case schema.ArrayStruct:
		list := make([]map[string]any, len(v.StructList))
		for i, e := range v.StructList {
			list[i] = structValueToJSON(e)
		}
		return list
	default:
		return nil
	}
}
