// Package zpl turns a label design plus one resolved data row into a ZPL II
// program for thermal printers. Geometry converts from design millimeters to
// integer device dots; content goes through the binding/expression pipeline
// and is escaped for the ZPL wire format.
package zpl

import "math"

// Dots per millimeter by printer resolution. Unlisted resolutions use the
// 203 dpi table entry.
const (
	DPI203 = 203
	DPI300 = 300
	DPI600 = 600

	defaultDotsPerMM = 8
)

var dotsPerMM = map[int]float64{
	DPI203: 8,
	DPI300: 12,
	DPI600: 24,
}

// DotsPerMM returns the device resolution constant for a DPI value,
// defaulting to 8 dots/mm for anything unrecognized.
func DotsPerMM(dpi int) float64 {
	if d, ok := dotsPerMM[dpi]; ok {
		return d
	}
	return defaultDotsPerMM
}

// MMToDots converts a millimeter length to integer device dots by rounding.
func MMToDots(mm, dpmm float64) int {
	return int(math.Round(mm * dpmm))
}

// Orientation is one of the four field orientations ZPL can express.
type Orientation string

const (
	OrientNormal   Orientation = "N"
	OrientRight    Orientation = "R" // rotated 90 clockwise
	OrientInverted Orientation = "I" // 180
	OrientLeft     Orientation = "B" // rotated 270
)

// RotationCode buckets an arbitrary rotation angle into the nearest device
// orientation. Degrees are normalized into [0,360) first, so negative input
// and full turns map stably: RotationCode(r) == RotationCode(r+360).
func RotationCode(degrees float64) Orientation {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return OrientNormal
	}
	deg := math.Mod(degrees, 360)
	if deg < 0 {
		deg += 360
	}
	switch {
	case deg >= 45 && deg < 135:
		return OrientRight
	case deg >= 135 && deg < 225:
		return OrientInverted
	case deg >= 225 && deg < 315:
		return OrientLeft
	default:
		return OrientNormal
	}
}
