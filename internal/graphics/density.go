// Package graphics decodes the ESC/P raster sub-grammars — bit image
// (ESC * / ESC ^), plain raster (ESC . 0) and TIFF-compressed raster
// (ESC . 2) — into a sequence of coloured dots on the drawing surface.
package graphics

import "fmt"

// densityMode describes one of the ~16 ESC * density selectors: the
// resulting horizontal/vertical dot density and how many data bytes
// make up one column's worth of pin data.
type densityMode struct {
	HDPI, VDPI    int
	BytesPerCol   int
	Pins          int
}

// densityModes mirrors the common 8-pin and 24/48-pin (ESC/P2) bit
// image selectors named in the Epson reference. Modes not listed here
// are rejected; the dispatcher treats that as a recoverable skip rather
// than a fatal error.
var densityModes = map[int]densityMode{
	0:  {HDPI: 60, VDPI: 60, BytesPerCol: 1, Pins: 8},
	1:  {HDPI: 120, VDPI: 60, BytesPerCol: 1, Pins: 8},
	2:  {HDPI: 120, VDPI: 60, BytesPerCol: 1, Pins: 8},
	3:  {HDPI: 240, VDPI: 60, BytesPerCol: 1, Pins: 8},
	4:  {HDPI: 80, VDPI: 60, BytesPerCol: 1, Pins: 8},
	6:  {HDPI: 90, VDPI: 60, BytesPerCol: 1, Pins: 8},
	32: {HDPI: 60, VDPI: 180, BytesPerCol: 3, Pins: 24},
	33: {HDPI: 120, VDPI: 180, BytesPerCol: 3, Pins: 24},
	38: {HDPI: 90, VDPI: 180, BytesPerCol: 3, Pins: 24},
	39: {HDPI: 180, VDPI: 180, BytesPerCol: 3, Pins: 24},
	40: {HDPI: 360, VDPI: 180, BytesPerCol: 3, Pins: 24},
	71: {HDPI: 180, VDPI: 360, BytesPerCol: 6, Pins: 48},
	72: {HDPI: 360, VDPI: 360, BytesPerCol: 6, Pins: 48},
	73: {HDPI: 360, VDPI: 360, BytesPerCol: 6, Pins: 48},
}

// nineExplicit is the ESC ^ 9-pin density: 2 bytes per column, MSB of
// the second byte is the 9th needle.
var nineExplicit = densityMode{HDPI: 120, VDPI: 60, BytesPerCol: 2, Pins: 9}

// DensityMode reports the (horizontal dpi, vertical dpi) of ESC * mode
// m, and whether m is known.
func DensityMode(m int) (hdpi, vdpi int, ok bool) {
	dm, ok := densityModes[m]
	return dm.HDPI, dm.VDPI, ok
}

// BytesPerColumn reports how many data bytes make up one column at
// bit-image density mode m, so a caller reading the raw byte stream
// knows how much to read before decoding. ok is false for an unknown m.
func BytesPerColumn(m int) (n int, ok bool) {
	dm, ok := densityModes[m]
	return dm.BytesPerCol, ok
}

func lookupMode(m int) (densityMode, error) {
	dm, ok := densityModes[m]
	if !ok {
		return densityMode{}, fmt.Errorf("graphics: unknown bit-image density mode %d", m)
	}
	return dm, nil
}

// bitsMSBFirst unpacks the first n bits of data, most-significant-bit
// first across the concatenated byte sequence — the packing every
// ESC/P raster and bit-image sub-grammar uses.
func bitsMSBFirst(data []byte, n int) []bool {
	out := make([]bool, n)
	for i := 0; i < n; i++ {
		byteIdx, bitIdx := i/8, 7-(i%8)
		if byteIdx >= len(data) {
			break
		}
		out[i] = data[byteIdx]&(1<<uint(bitIdx)) != 0
	}
	return out
}
