package graphics

import "github.com/doswriter/escp2pdf/internal/surface"

// palette maps the Epson 8-colour ribbon index (ESC r / the
// TIFF-compressed <COLR> opcode) to CMYK.
var palette = [8]surface.Color{
	0: {K: 1},                      // black
	1: {M: 1},                      // magenta
	2: {C: 1},                      // cyan
	3: {C: 1, M: 1},                // violet
	4: {Y: 1},                      // yellow
	5: {M: 1, Y: 1},                // orange/red
	6: {C: 1, Y: 1},                // green
	7: {C: 0.3, M: 0.3, Y: 0.3},    // gray/copy colour for an 8th ribbon slot
}

// Palette resolves an Epson colour index (0-7) to CMYK. Out-of-range
// indices fall back to black rather than aborting the page.
func Palette(index int) surface.Color {
	if index < 0 || index >= len(palette) {
		return palette[0]
	}
	return palette[index]
}
