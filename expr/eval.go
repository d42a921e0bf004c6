package expr

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/rotulado/rotulado/design"
)

// ErrMarker is substituted for a "{{...}}" span that failed to evaluate. A
// broken field must stay visible and debuggable without aborting the batch,
// so errors never propagate past the span boundary.
const ErrMarker = "#ERR#"

// (?s) so a span body may stretch across lines; the inner text is trimmed
// before parsing either way.
var spanPattern = regexp.MustCompile(`(?s)\{\{(.*?)\}\}`)

var errUnknownFunc = errors.New("unknown function")

// resolveMode selects how a bare term is resolved, which depends on where it
// appears: a span like {{lote}} is strictly a column reference, a fallback
// after "||" and a function argument may degrade to a literal, and arguments
// additionally recognize numeric literals.
type resolveMode int

const (
	modeSpan     resolveMode = iota // column lookup; missing column is ""
	modeFallback                    // column lookup; missing column is the literal token
	modeArg                         // numeric literal, then column, then literal token
)

// Evaluate resolves every "{{...}}" span in template against row and ctx.
// Templates without "{{" are returned verbatim. A template-level "||" outside
// any span acts as a default: the left part is rendered first and the right
// part only when the left came out empty or failed. Whitespace around the
// operator belongs to the operator, not to either side; the rendered result
// itself is returned untrimmed.
func Evaluate(template string, row design.DataRow, ctx design.RenderContext) string {
	if !strings.Contains(template, "{{") {
		return template
	}
	ev := &evaluator{row: row, ctx: ctx}
	if left, right, ok := splitTemplateFallback(template); ok {
		res := ev.renderSpans(strings.TrimSpace(left))
		if t := strings.TrimSpace(res); t != "" && t != ErrMarker {
			return res
		}
		return ev.renderSpans(strings.TrimSpace(right))
	}
	return ev.renderSpans(template)
}

// splitTemplateFallback finds the first "||" that sits outside every
// "{{...}}" span.
func splitTemplateFallback(template string) (left, right string, ok bool) {
	depth := 0
	for i := 0; i+1 < len(template); i++ {
		switch {
		case template[i] == '{' && template[i+1] == '{':
			depth++
			i++
		case template[i] == '}' && template[i+1] == '}':
			if depth > 0 {
				depth--
			}
			i++
		case depth == 0 && template[i] == '|' && template[i+1] == '|':
			return template[:i], template[i+2:], true
		}
	}
	return "", "", false
}

type evaluator struct {
	row design.DataRow
	ctx design.RenderContext
}

func (ev *evaluator) renderSpans(template string) string {
	return spanPattern.ReplaceAllStringFunc(template, func(match string) string {
		inner := strings.TrimSpace(match[2 : len(match)-2])
		return ev.evalSpan(inner)
	})
}

// evalSpan evaluates one span body. Whatever goes wrong inside, including a
// panic out of a function implementation, collapses to the error marker for
// this span only.
func (ev *evaluator) evalSpan(src string) (out string) {
	defer func() {
		if recover() != nil {
			out = ErrMarker
		}
	}()
	if src == "" {
		return ""
	}
	ast, err := parseExpression(src)
	if err != nil {
		return ErrMarker
	}
	v, err := ev.evalExpression(ast, modeSpan)
	if err != nil {
		return ErrMarker
	}
	return v
}

// evalExpression walks a "||" chain. The first operand resolves in the given
// mode; the alternatives after "||" resolve in fallback mode so a dangling
// token becomes a literal default instead of silently vanishing.
func (ev *evaluator) evalExpression(e *Expression, mode resolveMode) (string, error) {
	v, err := ev.evalOperand(e.First, mode)
	for _, alt := range e.Rest {
		if err == nil && v != "" && v != ErrMarker {
			return v, nil
		}
		v, err = ev.evalOperand(alt, modeFallback)
	}
	return v, err
}

func (ev *evaluator) evalOperand(op *Operand, mode resolveMode) (string, error) {
	switch {
	case op.Call != nil:
		return ev.evalCall(op.Call)
	case op.Str != nil:
		// Quoted content passes through literally, quotes stripped.
		s := *op.Str
		return s[1 : len(s)-1], nil
	case op.Term != nil:
		return ev.resolveTerm(*op.Term, mode), nil
	}
	return "", nil
}

func (ev *evaluator) resolveTerm(raw string, mode resolveMode) string {
	token := strings.TrimSpace(raw)
	if mode == modeArg && isNumeric(token) {
		return token
	}
	if v, ok := ev.row.Lookup(token); ok {
		return v
	}
	if mode == modeSpan {
		return ""
	}
	return token
}

// evalArg resolves the i-th argument of a call, or def when absent.
func (ev *evaluator) evalArg(args []*Expression, i int, def string) (string, error) {
	if i >= len(args) {
		return def, nil
	}
	return ev.evalExpression(args[i], modeArg)
}

// evalArgFloat is evalArg with numeric coercion; unresolvable values fall
// back to def rather than failing.
func (ev *evaluator) evalArgFloat(args []*Expression, i int, def float64) (float64, error) {
	if i >= len(args) {
		return def, nil
	}
	s, err := ev.evalExpression(args[i], modeArg)
	if err != nil {
		return def, err
	}
	if f, ok := parseFloat(s); ok {
		return f, nil
	}
	return def, nil
}

// isNumeric reports whether token parses fully as an integer or float.
// Partial parses ("12abc") do not count.
func isNumeric(token string) bool {
	_, ok := parseFloat(token)
	return ok
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// truthy mirrors the template language's notion of truth: non-empty, not
// "0" and not "false".
func truthy(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && s != "0" && !strings.EqualFold(s, "false")
}
