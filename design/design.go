// Package design defines the label design model shared by the expression
// evaluator, the ZPL generator and the preview renderer. All coordinates and
// sizes are stored in millimeters with a top-left origin; device-specific unit
// conversion happens downstream.
package design

import "sort"

// Kind identifies the visual variant of an element.
type Kind string

const (
	KindText      Kind = "text"
	KindBarcode   Kind = "barcode"
	KindQR        Kind = "qr"
	KindRectangle Kind = "rectangle"
	KindLine      Kind = "line"
	KindCircle    Kind = "circle"
	KindImage     Kind = "image"
)

// Design is the render-time aggregate: physical label dimensions plus the
// ordered set of elements placed on it. It is never mutated by the pipeline.
type Design struct {
	WidthMM  float64   `json:"width"`
	HeightMM float64   `json:"height"`
	Elements []Element `json:"elements"`
}

// Element is a tagged variant over the supported visual types. Fields that do
// not apply to a given kind are simply left at their zero value.
type Element struct {
	ID       string  `json:"id"`
	Kind     Kind    `json:"type"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Rotation float64 `json:"rotation,omitempty"`
	ZIndex   int     `json:"zIndex,omitempty"`

	// Binding selects the content source: empty for fixed text, a bare column
	// name, or an expression string containing "{{".
	Binding     string `json:"binding,omitempty"`
	TextContent string `json:"textContent,omitempty"`

	// Text styling.
	FontSize   float64 `json:"fontSize,omitempty"` // CSS px at 6 px per mm
	FontFamily string  `json:"fontFamily,omitempty"`
	TextAlign  string  `json:"textAlign,omitempty"`
	Color      string  `json:"color,omitempty"`

	// Barcode / QR.
	BarcodeFormat   string `json:"barcodeFormat,omitempty"`
	BarcodeShowText bool   `json:"barcodeShowText,omitempty"`
	QRErrorLevel    string `json:"qrErrorLevel,omitempty"`

	// Shapes.
	BorderWidth     float64 `json:"borderWidth,omitempty"`
	BorderColor     string  `json:"borderColor,omitempty"`
	BackgroundColor string  `json:"backgroundColor,omitempty"`
	BorderRadius    float64 `json:"borderRadius,omitempty"`

	// Image source reference; the ZPL pipeline only uses the footprint.
	ImageSrc string `json:"imageSrc,omitempty"`
}

// HasExpression reports whether the element's binding must go through the
// expression evaluator. A binding containing "{{" is always an expression,
// never a literal column name.
func (e Element) HasExpression() bool {
	return containsExpr(e.Binding)
}

// SortedElements returns the elements in ascending z-index order. Ties keep
// the original sequence order so stacking stays deterministic.
func (d *Design) SortedElements() []Element {
	out := make([]Element, len(d.Elements))
	copy(out, d.Elements)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ZIndex < out[j].ZIndex })
	return out
}

func containsExpr(s string) bool {
	for i := 0; i+1 < len(s); i++ {
		if s[i] == '{' && s[i+1] == '{' {
			return true
		}
	}
	return false
}
