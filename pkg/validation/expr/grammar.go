package expr

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var exprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"|'(\\.|[^'\\])*'`},
	{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{N}_]*`},
	{Name: "Operator", Pattern: `==|!=|<=|>=|[-+*/%<>()\[\]{},:]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var exprParser = participle.MustBuild[Expression](
	participle.Lexer(exprLexer),
	participle.Elide("Whitespace"),
	participle.Unquote("String"),
)

// Expression is the root of the grammar:
//
//	or      = and { "or" and }
//	and     = not { "and" not }
//	not     = "not" not | compare
//	compare = sum { op sum }     op: == != < <= > >= in "not in" is "is not"
//	sum     = term { ("+"|"-") term }
//	term    = unary { ("*"|"/"|"%") unary }
//	unary   = "-" unary | primary
type Expression struct {
	Or *OrExpr `parser:"@@"`
}

type OrExpr struct {
	Left  *AndExpr   `parser:"@@"`
	Right []*AndExpr `parser:"( 'or' @@ )*"`
}

type AndExpr struct {
	Left  *NotExpr   `parser:"@@"`
	Right []*NotExpr `parser:"( 'and' @@ )*"`
}

type NotExpr struct {
	Not     *NotExpr `parser:"  'not' @@"`
	Compare *Compare `parser:"| @@"`
}

type Compare struct {
	Left *Sum         `parser:"@@"`
	Ops  []*CompareOp `parser:"@@*"`
}

type CompareOp struct {
	Op    []string `parser:"( @( '==' | '!=' | '<=' | '>=' | '<' | '>' | 'in' ) | @'not' @'in' | @'is' @'not'? )"`
	Right *Sum     `parser:"@@"`
}

type Sum struct {
	Left  *Term    `parser:"@@"`
	Right []*SumOp `parser:"@@*"`
}

type SumOp struct {
	Op   string `parser:"@( '+' | '-' )"`
	Term *Term  `parser:"@@"`
}

type Term struct {
	Left  *Unary    `parser:"@@"`
	Right []*TermOp `parser:"@@*"`
}

type TermOp struct {
	Op    string `parser:"@( '*' | '/' | '%' )"`
	Unary *Unary `parser:"@@"`
}

type Unary struct {
	Negate  *Unary   `parser:"  '-' @@"`
	Primary *Primary `parser:"| @@"`
}

type Primary struct {
	Number *float64    `parser:"  @Number"`
	String *string     `parser:"| @String"`
	Bool   *string     `parser:"| @( 'True' | 'False' | 'true' | 'false' )"`
	None   *string     `parser:"| @( 'None' | 'null' )"`
	List   *List       `parser:"| @@"`
	Dict   *Dict       `parser:"| @@"`
	Name   *string     `parser:"| @Ident"`
	Group  *Expression `parser:"| '(' @@ ')'"`
}

type List struct {
	Open  string        `parser:"@'['"`
	Items []*Expression `parser:"( @@ ( ',' @@ )* ','? )? ']'"`
}

type Dict struct {
	Open    string       `parser:"@'{'"`
	Entries []*DictEntry `parser:"( @@ ( ',' @@ )* ','? )? '}'"`
}

type DictEntry struct {
	Key   *Expression `parser:"@@ ':'"`
	Value *Expression `parser:"@@"`
}

// Parse compiles source into an expression tree.
func Parse(source string) (*Expression, error) {
	return exprParser.ParseString("", source)
}
