package gen

import (
	"strings"

	"github.com/colfer-go/colfer/internal/schema"
)

// GoFieldName converts a schema field's snake_case (possibly
// underscore-escaped, see schema.escapeFieldName) name into the exported
// Go identifier the generated struct uses. Grounded on
// kungfusheep-glint/cmd/glint/structgenerator.go's toGoFieldName, which
// does the same split-on-underscore-then-capitalize conversion; reused
// here via schema.ToPascalCase instead of hand-rolling a second copy of
// the same casing logic the parser already needed.
func GoFieldName(snakeName string) string {
	trimmed := strings.TrimSuffix(snakeName, "_")
	name := schema.ToPascalCase(trimmed)
	if name == "" {
		return "Field"
	}
	return name
}
