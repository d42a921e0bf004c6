// Package expr implements the sandboxed template language used to resolve
// element content: "{{ ... }}" spans holding column references and calls into
// a closed, whitelisted function registry. Evaluation is a pure function over
// a data row and a render context; it performs no I/O and never panics or
// returns an error to the caller.
package expr

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// The inner-expression lexer. Terms are deliberately permissive: column names
// may contain spaces, accents, digits and comparison operators, so a term is
// anything up to a paren, comma, quote or "||". Single "|" is not a token and
// fails the span. Whitespace only forms a token of its own where no term has
// started (after a delimiter), and those runs are elided; interior spaces are
// always swallowed by the surrounding Term.
var exprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "String", Pattern: `"[^"]*"|'[^']*'`},
	{Name: "Or", Pattern: `\|\|`},
	{Name: "Punct", Pattern: `[(),]`},
	{Name: "Term", Pattern: `[^(),|"']+`},
})

var exprParser = participle.MustBuild[Expression](
	participle.Lexer(exprLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// Expression is a "||" fallback chain: operands are tried left to right and
// the first non-empty, non-error result wins.
type Expression struct {
	First *Operand   `parser:"@@"`
	Rest  []*Operand `parser:"( Or @@ )*"`
}

// Operand is a single alternative: a function call, a quoted literal, or a
// bare term (numeric literal, column name or plain text depending on where it
// appears).
type Operand struct {
	Call *Call   `parser:"  @@"`
	Str  *string `parser:"| @String"`
	Term *string `parser:"| @Term"`
}

// Call is a whitelisted function invocation. Arguments are full expressions,
// so nested calls and per-argument fallbacks parse naturally.
type Call struct {
	Name string        `parser:"@Term '('"`
	Args []*Expression `parser:"( @@ ( ',' @@ )* )? ')'"`
}

// parseExpression parses the inside of one "{{ ... }}" span.
func parseExpression(src string) (*Expression, error) {
	return exprParser.ParseString("", src)
}

// bareTerm returns the raw term text when the expression is nothing but a
// single unquoted term. Used by SI, whose condition argument must be scanned
// for comparison operators before any column resolution happens.
func (e *Expression) bareTerm() (string, bool) {
	if e == nil || len(e.Rest) != 0 || e.First == nil || e.First.Term == nil {
		return "", false
	}
	return *e.First.Term, true
}
