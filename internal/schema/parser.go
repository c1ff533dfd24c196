package schema

import (
	"fmt"
	"strings"
)

// Position is a (line, column) location in schema source text, both
// 1-indexed. Grounded on original_source/colfer-build/src/parser.rs,
// whose nom-based parser surfaces positions through VerboseError; this
// hand-rolled scanner tracks them directly as it advances.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ParseError is the PARSE_ERROR kind from spec §7: a grammar violation
// carrying the position it was found at and a human-readable hint about
// what the grammar expected there.
type ParseError struct {
	Pos      Position
	Expected string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("colfer: parse error at %s: expected %s", e.Pos, e.Expected)
}

// Parse parses one schema file per the grammar in spec §4.5:
//
//	colfer    := "package" IDENT struct+
//	struct    := "type" IDENT "struct" "{" field+ "}"
//	field     := IDENT type
//	type      := primitive | "[" "]" array-elem | IDENT
//	primitive := bool | uint8 | uint16 | uint32 | uint64
//	           | int32 | int64 | float32 | float64
//	           | timestamp | text | binary
//	array-elem:= float32 | float64 | text | binary | IDENT
func Parse(src string) (*Package, error) {
	p := &parser{src: src, line: 1, col: 1}
	return p.parsePackage()
}

// parser is a hand-rolled recursive-descent scanner over schema source,
// styled after the teacher's own small hand-written parsers
// (kungfusheep-glint/cmd/glint/field_path.go's path-expression scanner)
// rather than a parser-combinator library, since Go's ecosystem favors
// direct recursive descent over nom-style combinators for grammars this
// small.
type parser struct {
	src  string
	pos  int
	line int
	col  int
}

func (p *parser) position() Position {
	return Position{Line: p.line, Column: p.col}
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Pos: p.position(), Expected: fmt.Sprintf(format, args...)}
}

func (p *parser) peek() (byte, bool) {
	if p.pos >= len(p.src) {
		return 0, false
	}
	return p.src[p.pos], true
}

func (p *parser) advance() {
	if p.pos >= len(p.src) {
		return
	}
	if p.src[p.pos] == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
	p.pos++
}

// skipSpace consumes whitespace and "//" line comments.
func (p *parser) skipSpace() {
	for {
		b, ok := p.peek()
		if !ok {
			return
		}
		switch {
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			p.advance()
		case b == '/' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '/':
			for {
				b, ok := p.peek()
				if !ok || b == '\n' {
					break
				}
				p.advance()
			}
		default:
			return
		}
	}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

// ident consumes and returns one IDENT token.
func (p *parser) ident() (string, error) {
	p.skipSpace()
	b, ok := p.peek()
	if !ok || !isIdentStart(b) {
		return "", p.errorf("identifier")
	}
	start := p.pos
	for {
		b, ok := p.peek()
		if !ok || !isIdentCont(b) {
			break
		}
		p.advance()
	}
	return p.src[start:p.pos], nil
}

// keyword consumes the literal token tok if it appears next (as a whole
// identifier, not a prefix of a longer one), reporting a PARSE_ERROR
// otherwise.
func (p *parser) keyword(tok string) error {
	p.skipSpace()
	if !strings.HasPrefix(p.src[p.pos:], tok) {
		return p.errorf("%q", tok)
	}
	end := p.pos + len(tok)
	if end < len(p.src) && isIdentCont(p.src[end]) {
		return p.errorf("%q", tok)
	}
	for p.pos < end {
		p.advance()
	}
	return nil
}

// punct consumes the single-character punctuation tok.
func (p *parser) punct(tok byte) error {
	p.skipSpace()
	b, ok := p.peek()
	if !ok || b != tok {
		return p.errorf("%q", string(tok))
	}
	p.advance()
	return nil
}

func (p *parser) parsePackage() (*Package, error) {
	if err := p.keyword("package"); err != nil {
		return nil, err
	}
	name, err := p.ident()
	if err != nil {
		return nil, err
	}

	pkg := &Package{Name: ToSnakeCase(name)}
	for {
		p.skipSpace()
		if _, ok := p.peek(); !ok {
			break
		}
		s, err := p.parseStruct()
		if err != nil {
			return nil, err
		}
		pkg.Structs = append(pkg.Structs, *s)
	}
	if len(pkg.Structs) == 0 {
		return nil, p.errorf("at least one struct")
	}
	return pkg, nil
}

func (p *parser) parseStruct() (*Struct, error) {
	if err := p.keyword("type"); err != nil {
		return nil, err
	}
	name, err := p.ident()
	if err != nil {
		return nil, err
	}
	if err := p.keyword("struct"); err != nil {
		return nil, err
	}
	if err := p.punct('{'); err != nil {
		return nil, err
	}

	s := &Struct{Name: ToPascalCase(name)}
	for {
		p.skipSpace()
		if b, ok := p.peek(); ok && b == '}' {
			break
		}
		f, err := p.parseField()
		if err != nil {
			return nil, err
		}
		s.Fields = append(s.Fields, *f)
	}
	if err := p.punct('}'); err != nil {
		return nil, err
	}
	if len(s.Fields) == 0 {
		return nil, p.errorf("at least one field in struct %q", s.Name)
	}
	return s, nil
}

func (p *parser) parseField() (*Field, error) {
	name, err := p.ident()
	if err != nil {
		return nil, err
	}
	kind, ref, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &Field{Name: escapeFieldName(ToSnakeCase(name)), Kind: kind, Ref: ref}, nil
}

var primitives = map[string]Kind{
	"bool": Bool, "uint8": Uint8, "uint16": Uint16, "uint32": Uint32, "uint64": Uint64,
	"int32": Int32, "int64": Int64, "float32": Float32, "float64": Float64,
	"timestamp": Timestamp, "text": Text, "binary": Binary,
}

var arrayElems = map[string]Kind{
	"float32": ArrayFloat32, "float64": ArrayFloat64, "text": ArrayText, "binary": ArrayBinary,
}

func (p *parser) parseType() (Kind, string, error) {
	p.skipSpace()
	if b, ok := p.peek(); ok && b == '[' {
		if err := p.punct('['); err != nil {
			return 0, "", err
		}
		if err := p.punct(']'); err != nil {
			return 0, "", err
		}
		name, err := p.ident()
		if err != nil {
			return 0, "", err
		}
		if k, ok := arrayElems[name]; ok {
			return k, "", nil
		}
		return ArrayStruct, ToPascalCase(name), nil
	}

	name, err := p.ident()
	if err != nil {
		return 0, "", err
	}
	if k, ok := primitives[name]; ok {
		return k, "", nil
	}
	return StructRef, ToPascalCase(name), nil
}
