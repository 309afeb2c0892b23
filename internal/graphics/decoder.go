package graphics

import (
	"github.com/doswriter/escp2pdf/internal/layout"
	"github.com/doswriter/escp2pdf/internal/surface"
	"github.com/doswriter/escp2pdf/internal/units"
)

// Renderer selects how a decoded dot is drawn: a circle or a rectangle,
// a configurable rendering style for raster output.
type Renderer int

const (
	RendererDots Renderer = iota
	RendererRectangles
)

// Decoder is the graphics subsystem. It shares one instance across
// bit-image, 9-pin and raster sub-protocols; the TIFF-compressed
// sub-mode is a separate, stateful Compressed value because — unlike
// the other two — it is not a fixed-length parameter block but a
// running stream of opcodes.
type Decoder struct {
	Layout   *layout.Engine
	Surface  surface.Surface
	Renderer Renderer
	Color    surface.Color
}

func (d *Decoder) emit(x, y, diameterIn float64) {
	diameterPt := diameterIn * units.PointsPerInch
	switch d.Renderer {
	case RendererRectangles:
		d.Surface.DrawRect(x-diameterPt/2, y-diameterPt/2, diameterPt, diameterPt, d.Color)
	default:
		d.Surface.DrawDot(x, y, diameterPt, d.Color)
	}
}

// BitImage implements ESC * (density mode m); ESC ^ (explicit 9-pin)
// goes through NinePin instead. columns is the already-decoded nL/nH
// column count; data is whatever was actually
// available in the stream — the decoder always renders as many whole
// columns as it has bytes for and silently stops short otherwise.
func (d *Decoder) BitImage(mode int, columns int, data []byte) error {
	dm, err := lookupMode(mode)
	if err != nil {
		return err
	}
	return d.bitImage(dm, columns, data)
}

// NinePin implements ESC ^: 2 raw data bytes per column, 9 needles.
func (d *Decoder) NinePin(columns int, data []byte) error {
	return d.bitImage(nineExplicit, columns, data)
}

func (d *Decoder) bitImage(dm densityMode, columns int, data []byte) error {
	hStep := units.DotsPerInch(dm.HDPI)
	vStepIn := 1.0 / float64(dm.VDPI)
	diameterIn := 1.05 / float64(dm.HDPI)

	for c := 0; c < columns; c++ {
		start := c * dm.BytesPerCol
		end := start + dm.BytesPerCol
		if end > len(data) {
			break
		}
		bits := bitsMSBFirst(data[start:end], dm.Pins)
		baseX, baseY := d.Layout.PositionPoints()
		for row, set := range bits {
			if !set {
				continue
			}
			y := baseY + float64(row)*vStepIn*units.PointsPerInch
			d.emit(baseX, y, diameterIn)
		}
		d.Layout.AdvanceGraphics(hStep)
	}
	return nil
}

// Raster implements ESC . 0: v/h are dot spacings already expressed in
// subunits, m is rows-per-band, columns is the column count, and data
// is m*ceil(columns/8) bytes, row-major MSB-first.
func (d *Decoder) Raster(vSpacing, hSpacing units.Subunit, rows, columns int, data []byte) error {
	bytesPerRow := (columns + 7) / 8
	diameterIn := hSpacing.Points() / units.PointsPerInch * 1.05
	if diameterIn <= 0 {
		diameterIn = 1.05 / 180
	}
	baseX, baseY := d.Layout.PositionPoints()

	for r := 0; r < rows; r++ {
		rowStart := r * bytesPerRow
		if rowStart+bytesPerRow > len(data) {
			break
		}
		bits := bitsMSBFirst(data[rowStart:rowStart+bytesPerRow], columns)
		y := baseY + float64(r)*vSpacing.Points()
		for c, set := range bits {
			if !set {
				continue
			}
			x := baseX + float64(c)*hSpacing.Points()
			d.emit(x, y, diameterIn)
		}
	}
	return nil
}
