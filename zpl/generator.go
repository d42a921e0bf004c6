package zpl

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rotulado/rotulado/binding"
	"github.com/rotulado/rotulado/design"
)

// Design font sizes are CSS pixels; the editor canvas works at a fixed 6 px
// per mm.
const pxPerMM = 6.0

// defaultFontPx is used when a text element carries no font size.
const defaultFontPx = 12.0

// Options configures one render invocation.
type Options struct {
	DPI       int // 203, 300 or 600; anything else falls back to 203 dot math
	RowIndex  int
	BatchSize int

	// Now is the instant seen by every time-based template function in this
	// render. The zero value means "capture time.Now once per call".
	Now time.Time

	// Workers bounds GenerateBatch parallelism. Zero or one renders rows
	// sequentially.
	Workers int
}

// Generate emits a self-contained ZPL program for one design and one data
// row. It never fails: broken expressions surface as #ERR# text and unknown
// element kinds are skipped, so a bad field cannot abort a print run.
func Generate(d *design.Design, row design.DataRow, opts Options) string {
	dpmm := DotsPerMM(opts.DPI)
	ctx := design.NewRenderContext(opts.RowIndex, opts.BatchSize, opts.Now)

	lines := make([]string, 0, len(d.Elements)+4)
	lines = append(lines,
		"^XA",
		fmt.Sprintf("^PW%d", MMToDots(d.WidthMM, dpmm)),
		fmt.Sprintf("^LL%d", MMToDots(d.HeightMM, dpmm)),
	)
	for _, el := range d.SortedElements() {
		if cmd, ok := emitElement(el, row, ctx, dpmm); ok {
			lines = append(lines, cmd)
		}
	}
	lines = append(lines, "^XZ")
	return strings.Join(lines, "\n")
}

// GenerateBatch renders one program per row and joins them with newlines.
// Row i always lands at position i: rows are rendered into an indexed slice,
// optionally across Workers goroutines, and joined afterwards. Now is
// captured once so every label of the batch shares the same instant.
func GenerateBatch(d *design.Design, rows []design.DataRow, opts Options) string {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	opts.BatchSize = len(rows)

	programs := make([]string, len(rows))
	render := func(i int) {
		rowOpts := opts
		rowOpts.RowIndex = i
		programs[i] = Generate(d, rows[i], rowOpts)
	}

	if opts.Workers > 1 && len(rows) > 1 {
		sem := make(chan struct{}, opts.Workers)
		var wg sync.WaitGroup
		for i := range rows {
			wg.Add(1)
			sem <- struct{}{}
			go func(i int) {
				defer wg.Done()
				defer func() { <-sem }()
				render(i)
			}(i)
		}
		wg.Wait()
	} else {
		for i := range rows {
			render(i)
		}
	}
	return strings.Join(programs, "\n")
}

// fieldEscaper neutralizes the two ZPL command-prefix characters. They are
// replaced with a space, never dropped, so field boundaries downstream keep
// their byte positions.
var fieldEscaper = strings.NewReplacer("^", " ", "~", " ")

// EscapeFieldData makes arbitrary user data safe inside a ^FD field.
func EscapeFieldData(s string) string {
	return fieldEscaper.Replace(s)
}

// emitElement renders one element to its ZPL command block. Unrecognized
// kinds report ok=false and are filtered by the caller.
func emitElement(el design.Element, row design.DataRow, ctx design.RenderContext, dpmm float64) (string, bool) {
	switch el.Kind {
	case design.KindText:
		return emitText(el, row, ctx, dpmm), true
	case design.KindBarcode:
		return emitBarcode(el, row, ctx, dpmm), true
	case design.KindQR:
		return emitQR(el, row, ctx, dpmm), true
	case design.KindRectangle:
		return emitRectangle(el, dpmm), true
	case design.KindLine:
		return emitLine(el, dpmm), true
	case design.KindCircle:
		return emitCircle(el, dpmm), true
	case design.KindImage:
		return emitImagePlaceholder(el, dpmm), true
	default:
		return "", false
	}
}

func emitText(el design.Element, row design.DataRow, ctx design.RenderContext, dpmm float64) string {
	content := EscapeFieldData(binding.DisplayText(el, row, ctx))
	px := el.FontSize
	if px <= 0 {
		px = defaultFontPx
	}
	fontDots := MMToDots(px/pxPerMM, dpmm)
	if fontDots < 1 {
		fontDots = 1
	}
	return fmt.Sprintf("^FO%d,%d^A0%s,%d,%d^FD%s^FS",
		MMToDots(el.X, dpmm), MMToDots(el.Y, dpmm),
		RotationCode(el.Rotation), fontDots, fontDots, content)
}

func emitRectangle(el design.Element, dpmm float64) string {
	w := MMToDots(el.Width, dpmm)
	h := MMToDots(el.Height, dpmm)
	t := borderDots(el.BorderWidth, dpmm)
	if isFilled(el.BackgroundColor) {
		// A solid box is a border as thick as the box itself.
		t = minInt(w, h)
		if t < 1 {
			t = 1
		}
	}
	return fmt.Sprintf("^FO%d,%d^GB%d,%d,%d,B,%d^FS",
		MMToDots(el.X, dpmm), MMToDots(el.Y, dpmm), w, h, t, cornerRounding(el.BorderRadius, el.Width, el.Height))
}

// emitLine degrades a line to a box whose height is the stroke thickness.
func emitLine(el design.Element, dpmm float64) string {
	w := MMToDots(el.Width, dpmm)
	t := MMToDots(el.Height, dpmm)
	if t < 1 {
		t = 1
	}
	return fmt.Sprintf("^FO%d,%d^GB%d,%d,%d^FS",
		MMToDots(el.X, dpmm), MMToDots(el.Y, dpmm), w, t, t)
}

func emitCircle(el design.Element, dpmm float64) string {
	d := minInt(MMToDots(el.Width, dpmm), MMToDots(el.Height, dpmm))
	t := borderDots(el.BorderWidth, dpmm)
	if isFilled(el.BackgroundColor) {
		t = d
		if t < 1 {
			t = 1
		}
	}
	return fmt.Sprintf("^FO%d,%d^GC%d,%d,B^FS",
		MMToDots(el.X, dpmm), MMToDots(el.Y, dpmm), d, t)
}

// emitImagePlaceholder draws a bordered box over the image footprint. Raster
// transfer is not part of this pipeline.
func emitImagePlaceholder(el design.Element, dpmm float64) string {
	return fmt.Sprintf("^FO%d,%d^GB%d,%d,%d^FS",
		MMToDots(el.X, dpmm), MMToDots(el.Y, dpmm),
		MMToDots(el.Width, dpmm), MMToDots(el.Height, dpmm), 1)
}

// borderDots converts a border width, never below the 1-dot minimum: the ^GB
// and ^GC commands cannot express "no border" through a zero thickness.
func borderDots(mm, dpmm float64) int {
	t := MMToDots(mm, dpmm)
	if t < 1 {
		return 1
	}
	return t
}

// cornerRounding maps a mm corner radius onto the 0..8 rounding degrees ^GB
// accepts, proportional to the smaller box side.
func cornerRounding(radiusMM, widthMM, heightMM float64) int {
	if radiusMM <= 0 {
		return 0
	}
	side := widthMM
	if heightMM < side {
		side = heightMM
	}
	if side <= 0 {
		return 0
	}
	deg := int(radiusMM / (side / 2) * 8)
	if deg < 1 {
		deg = 1
	}
	if deg > 8 {
		deg = 8
	}
	return deg
}

// isFilled treats empty, transparent and white backgrounds as "not filled".
func isFilled(color string) bool {
	switch strings.ToLower(strings.TrimSpace(color)) {
	case "", "transparent", "none", "white", "#fff", "#ffffff":
		return false
	default:
		return true
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
