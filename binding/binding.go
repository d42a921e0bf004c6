// Package binding decides where an element's rendered content comes from:
// an expression, a direct column binding, or fixed literal text. It is the
// only bridge between the element model and the expression evaluator.
package binding

import (
	"github.com/rotulado/rotulado/design"
	"github.com/rotulado/rotulado/expr"
)

// DisplayText resolves the text shown for an element. Precedence is
// expression > column binding > fixed text: a binding containing "{{" always
// goes through the evaluator, a plain binding is a case-insensitive column
// lookup falling back to the element's fixed text, and an empty binding uses
// the fixed text. Fixed text runs through the evaluator too, so inline
// "{{...}}" spans typed into a text element still resolve.
func DisplayText(el design.Element, row design.DataRow, ctx design.RenderContext) string {
	if el.HasExpression() {
		return expr.Evaluate(el.Binding, row, ctx)
	}
	if el.Binding != "" {
		if v, ok := row.Lookup(el.Binding); ok {
			return v
		}
	}
	return expr.Evaluate(el.TextContent, row, ctx)
}

// CodeValue resolves the payload encoded into a barcode or QR element. It
// differs from DisplayText only in the last fallback: when nothing resolves,
// the binding itself is used as literal text, because a code that silently
// encodes nothing is worse than one encoding the column name.
func CodeValue(el design.Element, row design.DataRow, ctx design.RenderContext) string {
	if el.HasExpression() {
		return expr.Evaluate(el.Binding, row, ctx)
	}
	if el.Binding != "" {
		if v, ok := row.Lookup(el.Binding); ok {
			return v
		}
		if el.TextContent != "" {
			return expr.Evaluate(el.TextContent, row, ctx)
		}
		return el.Binding
	}
	return expr.Evaluate(el.TextContent, row, ctx)
}
