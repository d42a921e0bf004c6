package zpl

import (
	"strings"
	"testing"
	"time"

	"github.com/rotulado/rotulado/design"
)

var testNow = time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC)

func testDesign(elements ...design.Element) *design.Design {
	return &design.Design{WidthMM: 50, HeightMM: 30, Elements: elements}
}

func TestGenerateEnvelope(t *testing.T) {
	got := Generate(testDesign(), design.DataRow{}, Options{DPI: DPI203, Now: testNow})
	want := "^XA\n^PW400\n^LL240\n^XZ"
	if got != want {
		t.Fatalf("empty design program:\n%q\nwant:\n%q", got, want)
	}
}

func TestGenerateTextElement(t *testing.T) {
	d := testDesign(design.Element{
		Kind: design.KindText, X: 2, Y: 3, Binding: "codigo", FontSize: 12,
	})
	got := Generate(d, design.DataRow{"codigo": "ABC"}, Options{DPI: DPI203, Now: testNow})
	if !strings.Contains(got, "^FO16,24^A0N,16,16^FDABC^FS") {
		t.Fatalf("text element missing from program:\n%s", got)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	d := testDesign(
		design.Element{Kind: design.KindText, X: 1, Y: 1, TextContent: "hola"},
		design.Element{Kind: design.KindRectangle, X: 0, Y: 0, Width: 50, Height: 30, BorderWidth: 0.5},
	)
	opts := Options{DPI: DPI300, Now: testNow}
	row := design.DataRow{"x": "1"}
	first := Generate(d, row, opts)
	for i := 0; i < 5; i++ {
		if got := Generate(d, row, opts); got != first {
			t.Fatalf("run %d differs:\n%s\nvs\n%s", i, got, first)
		}
	}
}

func TestGenerateHonorsZOrder(t *testing.T) {
	d := testDesign(
		design.Element{Kind: design.KindText, TextContent: "encima", ZIndex: 2},
		design.Element{Kind: design.KindText, TextContent: "debajo", ZIndex: 1},
	)
	got := Generate(d, design.DataRow{}, Options{Now: testNow})
	below := strings.Index(got, "debajo")
	above := strings.Index(got, "encima")
	if below < 0 || above < 0 || below > above {
		t.Fatalf("z-order not respected (debajo@%d, encima@%d):\n%s", below, above, got)
	}
}

func TestGenerateSkipsUnknownKind(t *testing.T) {
	d := testDesign(design.Element{Kind: design.Kind("video"), TextContent: "x"})
	got := Generate(d, design.DataRow{}, Options{DPI: DPI203, Now: testNow})
	if lines := strings.Split(got, "\n"); len(lines) != 4 {
		t.Fatalf("unknown kind should be skipped, got %d lines:\n%s", len(lines), got)
	}
}

func TestGenerateShapes(t *testing.T) {
	cases := []struct {
		name string
		el   design.Element
		want string
	}{
		{
			"outline rectangle",
			design.Element{Kind: design.KindRectangle, Width: 10, Height: 5},
			"^FO0,0^GB80,40,1,B,0^FS",
		},
		{
			"filled rectangle",
			design.Element{Kind: design.KindRectangle, Width: 10, Height: 5, BackgroundColor: "#000000"},
			"^FO0,0^GB80,40,40,B,0^FS",
		},
		{
			"rounded rectangle",
			design.Element{Kind: design.KindRectangle, Width: 10, Height: 10, BorderRadius: 5},
			"^FO0,0^GB80,80,1,B,8^FS",
		},
		{
			"line",
			design.Element{Kind: design.KindLine, Width: 20, Height: 0},
			"^FO0,0^GB160,1,1^FS",
		},
		{
			"circle",
			design.Element{Kind: design.KindCircle, Width: 10, Height: 10, BorderWidth: 0.5},
			"^FO0,0^GC80,4,B^FS",
		},
		{
			"image placeholder",
			design.Element{Kind: design.KindImage, Width: 10, Height: 10, ImageSrc: "logo.png"},
			"^FO0,0^GB80,80,1^FS",
		},
	}
	for _, c := range cases {
		got := Generate(testDesign(c.el), design.DataRow{}, Options{DPI: DPI203, Now: testNow})
		if !strings.Contains(got, c.want) {
			t.Errorf("%s: program missing %q:\n%s", c.name, c.want, got)
		}
	}
}

func TestEscapeFieldData(t *testing.T) {
	cases := []struct{ in, want string }{
		{"ABC", "ABC"},
		{"A^B~C", "A B C"},
		{"^XZ", " XZ"},
		{"~~", "  "},
		{"", ""},
	}
	for _, c := range cases {
		if got := EscapeFieldData(c.in); got != c.want {
			t.Errorf("EscapeFieldData(%q) = %q, want %q", c.in, got, c.want)
		}
	}
	el := design.Element{Kind: design.KindText, TextContent: "corte^aqui"}
	got := Generate(testDesign(el), design.DataRow{}, Options{Now: testNow})
	if strings.Contains(got, "corte^aqui") {
		t.Fatalf("raw caret leaked into field data:\n%s", got)
	}
	if !strings.Contains(got, "^FDcorte aqui^FS") {
		t.Fatalf("escaped field missing:\n%s", got)
	}
}

func TestGenerateBatchMatchesSequential(t *testing.T) {
	d := testDesign(
		design.Element{Kind: design.KindText, Binding: "sku"},
		design.Element{Kind: design.KindText, TextContent: "{{CONTADOR(1,1,3)}}"},
	)
	rows := []design.DataRow{
		{"sku": "A-1"}, {"sku": "A-2"}, {"sku": "A-3"}, {"sku": "A-4"},
	}
	opts := Options{DPI: DPI203, Now: testNow}

	want := make([]string, len(rows))
	for i, row := range rows {
		rowOpts := opts
		rowOpts.RowIndex = i
		rowOpts.BatchSize = len(rows)
		want[i] = Generate(d, row, rowOpts)
	}
	joined := strings.Join(want, "\n")

	if got := GenerateBatch(d, rows, opts); got != joined {
		t.Fatalf("sequential batch mismatch:\n%s\nwant:\n%s", got, joined)
	}
	opts.Workers = 4
	if got := GenerateBatch(d, rows, opts); got != joined {
		t.Fatalf("worker batch mismatch:\n%s\nwant:\n%s", got, joined)
	}
}

func TestGenerateBatchEmpty(t *testing.T) {
	if got := GenerateBatch(testDesign(), nil, Options{Now: testNow}); got != "" {
		t.Fatalf("empty batch = %q, want empty", got)
	}
}
