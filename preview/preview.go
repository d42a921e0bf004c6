// Package preview rasterizes a label design to a PDF proof via
// github.com/tdewolff/canvas. It exists for on-screen checking before a batch
// run: shapes are drawn faithfully, text is typeset when a font is supplied,
// and barcodes, QR codes and images appear as bordered placeholder boxes with
// their resolved payload underneath.
package preview

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/rotulado/rotulado/binding"
	"github.com/rotulado/rotulado/design"
)

const (
	placeholderStroke = 0.2 // mm
	pxPerMM           = 6.0
	mmToPt            = 72.0 / 25.4
)

// Options configures a preview renderer.
type Options struct {
	// FontPath points at a TTF/OTF file used for all text. Without it text
	// elements degrade to their bounding box outline.
	FontPath string
	// FontBytes takes precedence over FontPath when non-empty.
	FontBytes []byte
}

// Renderer draws designs onto a canvas and writes PDF bytes.
type Renderer struct {
	family *canvas.FontFamily
}

// NewRenderer loads the configured font, if any. A missing or broken font is
// an error only when one was explicitly requested.
func NewRenderer(opts Options) (*Renderer, error) {
	r := &Renderer{}
	data := opts.FontBytes
	if len(data) == 0 && opts.FontPath != "" {
		var err error
		data, err = os.ReadFile(opts.FontPath)
		if err != nil {
			return nil, fmt.Errorf("read preview font %s: %w", opts.FontPath, err)
		}
	}
	if len(data) > 0 {
		family := canvas.NewFontFamily("preview")
		if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
			return nil, fmt.Errorf("load preview font: %w", err)
		}
		r.family = family
	}
	return r, nil
}

// Render draws the design with one row's resolved content and returns the
// PDF bytes.
func (r *Renderer) Render(d *design.Design, row design.DataRow, ctx design.RenderContext) ([]byte, error) {
	if d == nil {
		return nil, fmt.Errorf("nil design")
	}
	if d.WidthMM <= 0 || d.HeightMM <= 0 {
		return nil, fmt.Errorf("design has no printable area (%.1fx%.1f mm)", d.WidthMM, d.HeightMM)
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, d.WidthMM, d.HeightMM, nil)
	c := canvas.New(d.WidthMM, d.HeightMM)
	cc := canvas.NewContext(c)
	cc.SetCoordSystem(canvas.CartesianIV) // top-left origin, like the design model

	for _, el := range d.SortedElements() {
		r.drawElement(cc, el, row, ctx)
	}

	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("write preview PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawElement(cc *canvas.Context, el design.Element, row design.DataRow, ctx design.RenderContext) {
	switch el.Kind {
	case design.KindText:
		r.drawText(cc, el, binding.DisplayText(el, row, ctx))
	case design.KindBarcode, design.KindQR:
		r.drawPlaceholder(cc, el, binding.CodeValue(el, row, ctx))
	case design.KindImage:
		r.drawPlaceholder(cc, el, el.ImageSrc)
	case design.KindRectangle:
		r.drawRect(cc, el)
	case design.KindLine:
		r.drawLine(cc, el)
	case design.KindCircle:
		r.drawCircle(cc, el)
	}
}

func (r *Renderer) drawText(cc *canvas.Context, el design.Element, content string) {
	if r.family == nil {
		r.strokeBox(cc, el.X, el.Y, el.Width, el.Height, parseColor(el.Color, canvas.Black))
		return
	}
	px := el.FontSize
	if px <= 0 {
		px = 12
	}
	sizeMM := px / pxPerMM
	face := r.family.Face(sizeMM*mmToPt, parseColor(el.Color, canvas.Black), canvas.FontRegular, canvas.FontNormal)
	line := canvas.NewTextLine(face, content, textAlign(el.TextAlign))
	cc.DrawText(el.X, el.Y+face.Metrics().Ascent, line)
}

// drawPlaceholder frames the element footprint and, when a font is loaded,
// renders the resolved payload inside it.
func (r *Renderer) drawPlaceholder(cc *canvas.Context, el design.Element, payload string) {
	r.strokeBox(cc, el.X, el.Y, el.Width, el.Height, canvas.Black)
	if r.family == nil || payload == "" {
		return
	}
	face := r.family.Face(2.5*mmToPt, canvas.Black, canvas.FontRegular, canvas.FontNormal)
	line := canvas.NewTextLine(face, payload, canvas.Left)
	cc.DrawText(el.X+0.5, el.Y+el.Height-1, line)
}

func (r *Renderer) drawRect(cc *canvas.Context, el design.Element) {
	w := el.BorderWidth
	if w <= 0 {
		w = placeholderStroke
	}
	cc.SetFillColor(fillColor(el.BackgroundColor))
	cc.SetStrokeColor(parseColor(el.BorderColor, canvas.Black))
	cc.SetStrokeWidth(w)
	cc.DrawPath(el.X, el.Y, canvas.Rectangle(el.Width, el.Height))
}

func (r *Renderer) drawLine(cc *canvas.Context, el design.Element) {
	w := el.Height
	if w <= 0 {
		w = placeholderStroke
	}
	cc.SetStrokeColor(parseColor(el.BorderColor, canvas.Black))
	cc.SetStrokeWidth(w)
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(el.Width, 0)
	cc.DrawPath(el.X, el.Y, p)
}

func (r *Renderer) drawCircle(cc *canvas.Context, el design.Element) {
	w := el.BorderWidth
	if w <= 0 {
		w = placeholderStroke
	}
	radius := el.Width
	if el.Height < radius {
		radius = el.Height
	}
	radius /= 2
	cc.SetFillColor(fillColor(el.BackgroundColor))
	cc.SetStrokeColor(parseColor(el.BorderColor, canvas.Black))
	cc.SetStrokeWidth(w)
	cc.DrawPath(el.X, el.Y, canvas.Circle(radius))
}

func (r *Renderer) strokeBox(cc *canvas.Context, x, y, w, h float64, col color.RGBA) {
	cc.SetFillColor(color.RGBA{})
	cc.SetStrokeColor(col)
	cc.SetStrokeWidth(placeholderStroke)
	cc.DrawPath(x, y, canvas.Rectangle(w, h))
}

func textAlign(align string) canvas.TextAlign {
	switch strings.ToLower(align) {
	case "center":
		return canvas.Center
	case "right", "end":
		return canvas.Right
	default:
		return canvas.Left
	}
}

func parseColor(s string, fallback color.RGBA) color.RGBA {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return canvas.Hex(s)
	}
	return fallback
}

func fillColor(s string) color.RGBA {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "transparent", "none":
		return color.RGBA{}
	default:
		return parseColor(s, color.RGBA{})
	}
}
