package gen

// Config is the generator's only recognized configuration (spec §6):
// the destination directory for generated sources. Grounded on
// original_source/colfer-build/src/config.rs, which wraps the same
// single out_dir option behind a builder; this is the Go-native
// equivalent of that facade, a plain struct instead of a builder since
// Go callers construct it as a literal.
type Config struct {
	// OutDir is the directory generated source files are written to.
	OutDir string
}
