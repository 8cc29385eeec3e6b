package grammar

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Document is a parsed edge-list source.
type Document struct {
	Pos lexer.Position

	Statements []*Statement `parser:"( @@ \";\"* )*"`
}

// Statement is a vertex followed by zero or more links.
type Statement struct {
	Pos lexer.Position

	From  string  `parser:"@(Ident | Number | String)"`
	Links []*Link `parser:"@@*"`
}

// Link is one edge of a chain.
type Link struct {
	Pos lexer.Position

	Op    string  `parser:"@Arrow"`
	To    string  `parser:"@(Ident | Number | String)"`
	Attrs []*Attr `parser:"( \"[\" @@ ( \",\" @@ )* \"]\" )?"`
}

// Attr is a key=value edge attribute.
type Attr struct {
	Pos lexer.Position

	Key   string  `parser:"@Ident \"=\""`
	Value float64 `parser:"@Number"`
}

// Directed reports whether the link was written with "->".
func (l *Link) Directed() bool { return l.Op == "->" }

// Rules with lower-case names are dropped by the lexer.
var edgeListLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "comment", Pattern: `//[^\n]*|(?s:/\*.*?\*/)`},
	{Name: "whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "Arrow", Pattern: `--|->`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Number", Pattern: `(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_.]*`},
	{Name: "Punct", Pattern: `[\[\]=;,]`},
})

var parseDocument = participle.MustBuild[Document](
	participle.Lexer(edgeListLexer),
	participle.Unquote("String"),
)
