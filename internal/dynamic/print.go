package dynamic

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/colfer-go/colfer/internal/schema"
)

// Print writes a tree representation of sv to w, in the same box-drawing
// style as kungfusheep-glint's SPrintStruct (printer.go): one line per
// field, "├─"/"└─" prefixes, two-space indent per nesting level.
func Print(w io.Writer, sv *StructValue) {
	fmt.Fprint(w, Sprint(sv))
}

// Sprint renders sv the way Print does, returning the result instead of
// writing it.
func Sprint(sv *StructValue) string {
	var b strings.Builder
	sprintStruct(&b, sv, 0)
	return b.String()
}

func sprintStruct(b *strings.Builder, sv *StructValue, nestLevel int) {
	indent := strings.Repeat("  ", nestLevel)
	for i, name := range sv.Order {
		char := "├─"
		if i == len(sv.Order)-1 {
			char = "└─"
		}

		v := sv.Fields[name]
		if v == nil {
			fmt.Fprintf(b, "%v%v %v: <absent>\n", indent, char, name)
			continue
		}
		sprintField(b, name, v, nestLevel, char)
	}
}

func sprintField(b *strings.Builder, name string, v *Value, nestLevel int, char string) {
	indent := strings.Repeat("  ", nestLevel)

	switch v.Kind {
	case schema.StructRef:
		fmt.Fprintf(b, "%v%v %v:\n", indent, char, name)
		sprintStruct(b, v.Struct, nestLevel+1)
	case schema.ArrayStruct:
		fmt.Fprintf(b, "%v%v %v: [%d]\n", indent, char, name, len(v.StructList))
		for i, elem := range v.StructList {
			fmt.Fprintf(b, "%v  └─┐ [%v]:\n", indent, i)
			sprintStruct(b, elem, nestLevel+2)
		}
	case schema.ArrayFloat32:
		sprintList(b, name, indent, char, len(v.Float32List), func(i int) string {
			return strconv.FormatFloat(float64(v.Float32List[i]), 'f', -1, 32)
		})
	case schema.ArrayFloat64:
		sprintList(b, name, indent, char, len(v.Float64List), func(i int) string {
			return strconv.FormatFloat(v.Float64List[i], 'f', -1, 64)
		})
	case schema.ArrayText:
		sprintList(b, name, indent, char, len(v.TextList), func(i int) string {
			return strconv.Quote(v.TextList[i])
		})
	case schema.ArrayBinary:
		sprintList(b, name, indent, char, len(v.BinaryList), func(i int) string {
			return fmt.Sprintf("%v", v.BinaryList[i])
		})
	default:
		fmt.Fprintf(b, "%v%v %v: %v\n", indent, char, name, scalarString(v))
	}
}

func sprintList(b *strings.Builder, name, indent, char string, n int, elem func(i int) string) {
	fmt.Fprintf(b, "%v%v %v: [%d]\n", indent, char, name, n)
	for i := 0; i < n; i++ {
		fmt.Fprintf(b, "%v  ├  [%v]: %v\n", indent, i, elem(i))
	}
}

func scalarString(v *Value) string {
	switch v.Kind {
	case schema.Bool:
		return strconv.FormatBool(v.Bool)
	case schema.Uint8:
		return strconv.FormatUint(uint64(v.Uint8), 10)
	case schema.Uint16:
		return strconv.FormatUint(uint64(v.Uint16), 10)
	case schema.Uint32:
		return strconv.FormatUint(uint64(v.Uint32), 10)
	case schema.Uint64:
		return strconv.FormatUint(v.Uint64, 10)
	case schema.Int32:
		return strconv.FormatInt(int64(v.Int32), 10)
	case schema.Int64:
		return strconv.FormatInt(v.Int64, 10)
	case schema.Float32:
		return strconv.FormatFloat(float64(v.Float32), 'f', -1, 32)
	case schema.Float64:
		return strconv.FormatFloat(v.Float64, 'f', -1, 64)
	case schema.Timestamp:
		return v.Timestamp.Time().Format("2006-01-02T15:04:05.999999999Z07:00")
	case schema.Text:
		return strconv.Quote(v.Text)
	case schema.Binary:
		return fmt.Sprintf("%v", v.Binary)
	default:
		return fmt.Sprintf("%v", v.Kind)
	}
}
