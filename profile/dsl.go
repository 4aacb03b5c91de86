package profile

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	profileLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+|\.\d+)(?:pt|mm|cm|in|px|em|x)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[:;]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	fileParser = participle.MustBuild[File](
		participle.Lexer(profileLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// File is the root AST node of a profile file.
//
//	profile Body {
//	  backend: canvas
//	  font: "builtin:goregular"
//	  size: 12pt
//	  letter-spacing: 0.15px
//	}
type File struct {
	Profiles []*Decl `parser:"Newline* ( @@ Newline* )*"`
}

// Decl is a single named profile block.
type Decl struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Name    string         `parser:"'profile' @Ident"`
	Entries []*Entry       `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Entry uses colon syntax (key: value).
type Entry struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident ':'"`
	Value *Value         `parser:"@@"`
}

// Value is a string, a number with an optional unit, or a bare word.
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Ident  *string        `parser:"| @Ident"`
}

// Text returns the value as written, with strings unquoted.
func (v *Value) Text() string {
	switch {
	case v == nil:
		return ""
	case v.String != nil:
		return string(*v.String)
	case v.Number != nil:
		return *v.Number
	case v.Ident != nil:
		return *v.Ident
	default:
		return ""
	}
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// ParseAST parses profile DSL content into its syntax tree.
func ParseAST(r io.Reader) (*File, error) {
	return fileParser.Parse("", r)
}

// Parse parses profile DSL content from an io.Reader.
func Parse(r io.Reader) ([]Profile, error) {
	f, err := ParseAST(r)
	if err != nil {
		return nil, fmt.Errorf("解析 profile 失败: %w", err)
	}
	return f.Resolve()
}

// ParseString parses profile DSL content from a string.
func ParseString(input string) ([]Profile, error) {
	return Parse(strings.NewReader(input))
}

// Resolve converts every declaration to a Profile.
func (f *File) Resolve() ([]Profile, error) {
	if f == nil {
		return nil, nil
	}
	out := make([]Profile, 0, len(f.Profiles))
	for _, d := range f.Profiles {
		p, err := d.Profile()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Profile converts the declaration, rejecting unknown or malformed keys.
func (d *Decl) Profile() (Profile, error) {
	p := Profile{Name: d.Name}
	for _, e := range d.Entries {
		raw := e.Value.Text()
		switch normalizeKey(e.Key) {
		case "backend":
			p.Backend = raw
		case "font":
			p.Font = raw
		case "style":
			p.Style = raw
		case "size":
			l, err := parseFontSize(raw)
			if err != nil {
				return Profile{}, fmt.Errorf("profile %s: size %q 非法 (%s): %w", d.Name, raw, e.Pos, err)
			}
			p.Size = l
		case "letter-spacing":
			p.LetterSpacing = raw
		case "word-spacing":
			p.WordSpacing = raw
		case "line-height":
			p.LineHeight = raw
		case "ambiguous-wide":
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return Profile{}, fmt.Errorf("profile %s: ambiguous-wide %q 非法 (%s): %w", d.Name, raw, e.Pos, err)
			}
			p.AmbiguousWide = b
		default:
			return Profile{}, fmt.Errorf("profile %s: 未知字段 %q (%s)", d.Name, e.Key, e.Pos)
		}
	}
	return p, nil
}

func normalizeKey(k string) string {
	return strings.ReplaceAll(strings.ToLower(k), "_", "-")
}
