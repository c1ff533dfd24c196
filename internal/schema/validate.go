package schema

import "fmt"

// MaxFields is the largest number of fields one struct may declare (spec
// §4.7): field ids are the declared index and must stay below the end
// marker's reserved id 127, leaving ids 0..126 — 127 usable ids.
const MaxFields = 127

// ValidationError is the SCHEMA_ERROR kind from spec §7. Unlike the
// original colfer-build's validate() (original_source/colfer-build/src/ast.rs),
// which constructs these with anyhow::anyhow! and discards them without
// ever returning them (spec §9's open question, resolved in DESIGN.md:
// validation failures MUST be hard errors), every ValidationError built
// by Validate below is actually returned to the caller.
type ValidationError struct {
	Struct  string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("colfer: schema error in struct %q: %s", e.Struct, e.Message)
}

// Validate runs every pre-generation check from spec §4.7 and returns
// the first violation found, or nil if the package is well-formed.
// Checks run in struct-declaration order so that errors are reported
// deterministically.
func Validate(pkg *Package) error {
	if err := validateFieldCounts(pkg); err != nil {
		return err
	}
	return validateStructRefs(pkg)
}

func validateFieldCounts(pkg *Package) error {
	for _, s := range pkg.Structs {
		if len(s.Fields) > MaxFields {
			return &ValidationError{
				Struct:  s.Name,
				Message: fmt.Sprintf("has %d fields, the maximum is %d", len(s.Fields), MaxFields),
			}
		}
	}
	return nil
}

func validateStructRefs(pkg *Package) error {
	for _, s := range pkg.Structs {
		for _, f := range s.Fields {
			if f.Kind != StructRef && f.Kind != ArrayStruct {
				continue
			}
			if _, ok := pkg.Lookup(f.Ref); !ok {
				return &ValidationError{
					Struct:  s.Name,
					Message: fmt.Sprintf("field %q references undefined struct %q", f.Name, f.Ref),
				}
			}
		}
	}
	return nil
}
