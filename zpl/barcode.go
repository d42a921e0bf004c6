package zpl

import (
	"fmt"
	"strings"

	"github.com/rotulado/rotulado/binding"
	"github.com/rotulado/rotulado/design"
)

// Symbology enumerates the barcode families the generator knows how to emit.
// The set is closed: dispatch is an exhaustive switch, and every format the
// map below does not list collapses to Code128.
type Symbology int

const (
	SymCode128 Symbology = iota
	SymCode39
	SymCode93
	SymCodabar
	SymEAN13
	SymEAN8
	SymUPCA
	SymUPCE
	SymITF
	SymMSI
	SymPlessey
	SymGS1128
	SymGS1DataBar
	SymDataMatrix
	SymGS1DataMatrix
	SymAztec
	SymPDF417
	SymMicroPDF417
)

// symbologies maps normalized format names to their family. Aliases cover
// the spellings different editors emit for the same standard.
var symbologies = map[string]Symbology{
	"code128":         SymCode128,
	"code39":          SymCode39,
	"code93":          SymCode93,
	"codabar":         SymCodabar,
	"ean13":           SymEAN13,
	"ean8":            SymEAN8,
	"upc":             SymUPCA,
	"upca":            SymUPCA,
	"upce":            SymUPCE,
	"itf":             SymITF,
	"itf14":           SymITF,
	"interleaved2of5": SymITF,
	"msi":             SymMSI,
	"plessey":         SymPlessey,
	"gs1128":          SymGS1128,
	"ean128":          SymGS1128,
	"gs1databar":      SymGS1DataBar,
	"databar":         SymGS1DataBar,
	"datamatrix":      SymDataMatrix,
	"gs1datamatrix":   SymGS1DataMatrix,
	"aztec":           SymAztec,
	"pdf417":          SymPDF417,
	"micropdf417":     SymMicroPDF417,
}

// ParseSymbology resolves a format string to its family. Unknown formats
// return Code128 so an odd design still prints a scannable code.
func ParseSymbology(format string) Symbology {
	norm := strings.ToLower(format)
	norm = strings.NewReplacer(" ", "", "-", "", "_", "", ".", "").Replace(norm)
	if s, ok := symbologies[norm]; ok {
		return s
	}
	return SymCode128
}

func emitBarcode(el design.Element, row design.DataRow, ctx design.RenderContext, dpmm float64) string {
	payload := EscapeFieldData(binding.CodeValue(el, row, ctx))
	rot := RotationCode(el.Rotation)
	h := MMToDots(el.Height, dpmm)
	if h < 1 {
		h = 1
	}
	show := "N"
	if el.BarcodeShowText {
		show = "Y"
	}

	var cmd string
	switch ParseSymbology(el.BarcodeFormat) {
	case SymCode39:
		cmd = fmt.Sprintf("^B3%s,N,%d,%s", rot, h, show)
	case SymCode93:
		cmd = fmt.Sprintf("^BA%s,%d,%s,N", rot, h, show)
	case SymCodabar:
		cmd = fmt.Sprintf("^BK%s,N,%d,%s,N", rot, h, show)
	case SymEAN13:
		cmd = fmt.Sprintf("^BE%s,%d,%s", rot, h, show)
	case SymEAN8:
		cmd = fmt.Sprintf("^B8%s,%d,%s", rot, h, show)
	case SymUPCA:
		cmd = fmt.Sprintf("^BU%s,%d,%s", rot, h, show)
	case SymUPCE:
		cmd = fmt.Sprintf("^B9%s,%d,%s", rot, h, show)
	case SymITF:
		cmd = fmt.Sprintf("^B2%s,%d,%s", rot, h, show)
	case SymDataMatrix, SymGS1DataMatrix:
		cmd = fmt.Sprintf("^BX%s,%d,200", rot, magnification(h, 20, 1))
	case SymAztec:
		cmd = fmt.Sprintf("^B0%s,%d", rot, magnification(h, 20, 1))
	case SymPDF417:
		cmd = fmt.Sprintf("^B7%s,%d,0,%d", rot, h, magnification(h, 10, 1))
	case SymMicroPDF417:
		cmd = fmt.Sprintf("^BF%s,%d,0", rot, h)
	case SymCode128, SymMSI, SymPlessey, SymGS1128, SymGS1DataBar:
		// MSI, Plessey and the GS1 linear variants have no dedicated command
		// in this pipeline; Code128 is the documented best-effort substitute.
		cmd = fmt.Sprintf("^BC%s,%d,%s,N,N", rot, h, show)
	default:
		cmd = fmt.Sprintf("^BC%s,%d,%s,N,N", rot, h, show)
	}

	return fmt.Sprintf("^FO%d,%d^BY2%s^FD%s^FS",
		MMToDots(el.X, dpmm), MMToDots(el.Y, dpmm), cmd, payload)
}

// qrErrorLevels are the recovery levels ZPL model-2 QR accepts.
var qrErrorLevels = map[string]string{"L": "L", "M": "M", "Q": "Q", "H": "H"}

func emitQR(el design.Element, row design.DataRow, ctx design.RenderContext, dpmm float64) string {
	payload := EscapeFieldData(binding.CodeValue(el, row, ctx))
	level, ok := qrErrorLevels[strings.ToUpper(strings.TrimSpace(el.QRErrorLevel))]
	if !ok {
		level = "M"
	}
	mag := magnification(MMToDots(el.Width, dpmm), 30, 2)
	// Model 2, alphanumeric-mode payload prefix.
	return fmt.Sprintf("^FO%d,%d^BQ%s,2,%d^FD%sA,%s^FS",
		MMToDots(el.X, dpmm), MMToDots(el.Y, dpmm), RotationCode(el.Rotation), mag, level, payload)
}

// magnification derives a module scale from a dot dimension, with a floor.
func magnification(dots, divisor, min int) int {
	m := dots / divisor
	if m < min {
		return min
	}
	return m
}
