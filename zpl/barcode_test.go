package zpl

import (
	"strings"
	"testing"

	"github.com/rotulado/rotulado/design"
)

func TestParseSymbology(t *testing.T) {
	cases := []struct {
		format string
		want   Symbology
	}{
		{"code128", SymCode128},
		{"CODE128", SymCode128},
		{"Code 128", SymCode128},
		{"code-39", SymCode39},
		{"EAN13", SymEAN13},
		{"EAN-13", SymEAN13},
		{"ean_8", SymEAN8},
		{"upc", SymUPCA},
		{"UPC-A", SymUPCA},
		{"upc.e", SymUPCE},
		{"ITF-14", SymITF},
		{"Interleaved 2 of 5", SymITF},
		{"GS1-128", SymGS1128},
		{"EAN128", SymGS1128},
		{"DataBar", SymGS1DataBar},
		{"Data Matrix", SymDataMatrix},
		{"GS1 DataMatrix", SymGS1DataMatrix},
		{"aztec", SymAztec},
		{"PDF417", SymPDF417},
		{"MicroPDF417", SymMicroPDF417},
		{"codabar", SymCodabar},
		{"code93", SymCode93},
		{"msi", SymMSI},
		{"plessey", SymPlessey},
		{"", SymCode128},
		{"qr-ish-nonsense", SymCode128},
	}
	for _, c := range cases {
		if got := ParseSymbology(c.format); got != c.want {
			t.Errorf("ParseSymbology(%q) = %d, want %d", c.format, got, c.want)
		}
	}
}

func barcodeProgram(t *testing.T, format string, height float64, row design.DataRow) string {
	t.Helper()
	el := design.Element{
		Kind: design.KindBarcode, X: 1, Y: 1, Width: 30, Height: height,
		Binding: "codigo", BarcodeFormat: format,
	}
	return Generate(testDesign(el), row, Options{DPI: DPI203, Now: testNow})
}

func TestEmitBarcodeCommands(t *testing.T) {
	row := design.DataRow{"codigo": "123456"}
	cases := []struct {
		format string
		want   string
	}{
		{"code128", "^BY2^BCN,80,N,N,N^FD123456^FS"},
		{"code39", "^BY2^B3N,N,80,N^FD123456^FS"},
		{"code93", "^BY2^BAN,80,N,N^FD123456^FS"},
		{"codabar", "^BY2^BKN,N,80,N,N^FD123456^FS"},
		{"ean13", "^BY2^BEN,80,N^FD123456^FS"},
		{"ean8", "^BY2^B8N,80,N^FD123456^FS"},
		{"upca", "^BY2^BUN,80,N^FD123456^FS"},
		{"upce", "^BY2^B9N,80,N^FD123456^FS"},
		{"itf14", "^BY2^B2N,80,N^FD123456^FS"},
		{"datamatrix", "^BY2^BXN,4,200^FD123456^FS"},
		{"gs1datamatrix", "^BY2^BXN,4,200^FD123456^FS"},
		{"aztec", "^BY2^B0N,4^FD123456^FS"},
		{"pdf417", "^BY2^B7N,80,0,8^FD123456^FS"},
		{"micropdf417", "^BY2^BFN,80,0^FD123456^FS"},
		// No native command for these; Code128 keeps the label scannable.
		{"msi", "^BY2^BCN,80,N,N,N^FD123456^FS"},
		{"plessey", "^BY2^BCN,80,N,N,N^FD123456^FS"},
		{"gs1128", "^BY2^BCN,80,N,N,N^FD123456^FS"},
		{"databar", "^BY2^BCN,80,N,N,N^FD123456^FS"},
		{"sin-formato", "^BY2^BCN,80,N,N,N^FD123456^FS"},
	}
	for _, c := range cases {
		got := barcodeProgram(t, c.format, 10, row)
		if !strings.Contains(got, c.want) {
			t.Errorf("%s: program missing %q:\n%s", c.format, c.want, got)
		}
	}
}

func TestEmitBarcodeShowText(t *testing.T) {
	el := design.Element{
		Kind: design.KindBarcode, Width: 30, Height: 10,
		TextContent: "777", BarcodeFormat: "ean13", BarcodeShowText: true,
	}
	got := Generate(testDesign(el), design.DataRow{}, Options{DPI: DPI203, Now: testNow})
	if !strings.Contains(got, "^BEN,80,Y^FD777^FS") {
		t.Fatalf("human-readable flag not set:\n%s", got)
	}
}

func TestEmitBarcodeMinimumHeight(t *testing.T) {
	got := barcodeProgram(t, "code128", 0, design.DataRow{"codigo": "1"})
	if !strings.Contains(got, "^BCN,1,N,N,N") {
		t.Fatalf("zero height should clamp to one dot:\n%s", got)
	}
}

func TestEmitQR(t *testing.T) {
	el := design.Element{
		Kind: design.KindQR, X: 2, Y: 2, Width: 15, Height: 15,
		TextContent: "https://ejemplo.test/p/1",
	}
	got := Generate(testDesign(el), design.DataRow{}, Options{DPI: DPI203, Now: testNow})
	if !strings.Contains(got, "^FO16,16^BQN,2,4^FDMA,https://ejemplo.test/p/1^FS") {
		t.Fatalf("qr command wrong:\n%s", got)
	}
}

func TestEmitQRErrorLevel(t *testing.T) {
	cases := []struct{ in, want string }{
		{"L", "L"}, {"m", "M"}, {"Q", "Q"}, {"h", "H"}, {"", "M"}, {"Z", "M"},
	}
	for _, c := range cases {
		el := design.Element{Kind: design.KindQR, Width: 15, Height: 15, TextContent: "x", QRErrorLevel: c.in}
		got := Generate(testDesign(el), design.DataRow{}, Options{DPI: DPI203, Now: testNow})
		if !strings.Contains(got, "^FD"+c.want+"A,x^FS") {
			t.Errorf("level %q: want recovery %q:\n%s", c.in, c.want, got)
		}
	}
}

func TestBarcodePayloadFromExpression(t *testing.T) {
	el := design.Element{
		Kind: design.KindBarcode, Width: 30, Height: 10,
		TextContent: "{{LOTE(L-AAMMDD-###)}}", BarcodeFormat: "code128",
	}
	got := Generate(testDesign(el), design.DataRow{}, Options{DPI: DPI203, RowIndex: 0, Now: testNow})
	if !strings.Contains(got, "^FDL-240517-001^FS") {
		t.Fatalf("expression payload not rendered:\n%s", got)
	}
}
