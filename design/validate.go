package design

import "fmt"

// knownKinds is the closed set of element variants the pipeline understands.
var knownKinds = map[Kind]bool{
	KindText:      true,
	KindBarcode:   true,
	KindQR:        true,
	KindRectangle: true,
	KindLine:      true,
	KindCircle:    true,
	KindImage:     true,
}

// Validate reports problems with a design as warnings. Nothing here is fatal:
// the generator silently skips unknown kinds and the printer clips overflow,
// but surfacing the issues before a batch run saves label stock.
func (d *Design) Validate() []string {
	var warns []string
	if d.WidthMM <= 0 || d.HeightMM <= 0 {
		warns = append(warns, fmt.Sprintf("non-positive label size %.1fx%.1f mm", d.WidthMM, d.HeightMM))
	}
	for i, el := range d.Elements {
		name := el.ID
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		if !knownKinds[el.Kind] {
			warns = append(warns, fmt.Sprintf("element %s: unknown type %q (will be skipped)", name, el.Kind))
			continue
		}
		if el.X < 0 || el.Y < 0 || el.X > d.WidthMM || el.Y > d.HeightMM {
			warns = append(warns, fmt.Sprintf("element %s: origin (%.1f, %.1f) outside the label", name, el.X, el.Y))
		}
		if el.X+el.Width > d.WidthMM || el.Y+el.Height > d.HeightMM {
			warns = append(warns, fmt.Sprintf("element %s: extends past the label edge", name))
		}
		if el.Kind == KindBarcode && el.Binding == "" && el.TextContent == "" {
			warns = append(warns, fmt.Sprintf("element %s: barcode has no binding and no fixed text", name))
		}
	}
	return warns
}
