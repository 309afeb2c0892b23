package graphics

import (
	"fmt"
	"io"

	"github.com/doswriter/escp2pdf/internal/units"
)

// Opcode bytes recognised inside the TIFF-compressed raster sub-mode
// (ESC . 2).
const (
	opMOVX      = 0xE1
	opMOVY      = 0xE2
	opCOLR      = 0xE3
	opCR        = 0xE4
	opEXIT      = 0xE5
	opMOVXByte  = 0xE6
	opMOVXDot   = 0xE7
)

// Compressed decodes one ESC . 2 sub-stream. Unlike BitImage/Raster it
// is not a fixed-length block: the caller must keep calling Step (or
// Run) until it reports done, reading one opcode at a time from the
// same byte source the dispatcher owns.
type Compressed struct {
	dec      *Decoder
	hStep    units.Subunit
	vStep    units.Subunit
	movxUnit units.Subunit
	x, y     units.Subunit // offsets relative to the position at entry
	colorIdx int
}

// NewCompressed starts a compressed-raster session using the same h/v
// dot spacing an ESC . 0 raster header would declare.
func NewCompressed(dec *Decoder, hSpacing, vSpacing units.Subunit) *Compressed {
	return &Compressed{dec: dec, hStep: hSpacing, vStep: vSpacing, movxUnit: hSpacing}
}

// Run consumes opcodes from r until <EXIT>, an unknown opcode (treated
// the same as <EXIT>) or end of stream.
func (c *Compressed) Run(r io.ByteReader) error {
	for {
		done, err := c.Step(r)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// Step executes exactly one opcode. done=true means the sub-mode has
// ended (either <EXIT>, an unknown opcode, or end of stream).
func (c *Compressed) Step(r io.ByteReader) (done bool, err error) {
	op, err := r.ReadByte()
	if err != nil {
		return true, nil // end of stream: clean exit, nothing left to decode
	}

	switch {
	case op <= 0x7F:
		return false, c.transferLiteral(r, int(op)+1)
	case op == opMOVX:
		return false, c.moveX(r)
	case op == opMOVY:
		return false, c.moveY(r)
	case op == opCOLR:
		b, err := r.ReadByte()
		if err != nil {
			return true, nil
		}
		c.colorIdx = int(b)
		return false, nil
	case op == opCR:
		c.x = 0
		return false, nil
	case op == opEXIT:
		return true, nil
	case op == opMOVXByte:
		c.movxUnit = c.hStep * 8
		return false, nil
	case op == opMOVXDot:
		c.movxUnit = c.hStep
		return false, nil
	case op >= 0x81:
		return false, c.transferRun(r, 257-int(op))
	default:
		// Reserved/unknown opcode (0x80 included): terminate as <EXIT>.
		return true, nil
	}
}

func (c *Compressed) transferLiteral(r io.ByteReader, n int) error {
	for i := 0; i < n; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return nil
		}
		c.emitColumn(b)
	}
	return nil
}

func (c *Compressed) transferRun(r io.ByteReader, n int) error {
	b, err := r.ReadByte()
	if err != nil {
		return nil
	}
	for i := 0; i < n; i++ {
		c.emitColumn(b)
	}
	return nil
}

func (c *Compressed) emitColumn(b byte) {
	bits := bitsMSBFirst([]byte{b}, 8)
	baseX, baseY := c.dec.Layout.PositionPoints()
	x := baseX + c.x.Points()
	diameterIn := 1.05 / 180
	if c.hStep > 0 {
		diameterIn = 1.05 * c.hStep.Points() / units.PointsPerInch
	}
	color := Palette(c.colorIdx)
	for row, set := range bits {
		if !set {
			continue
		}
		y := baseY + c.y.Points() + float64(row)*c.vStep.Points()
		c.dec.Color = color
		c.dec.emit(x, y, diameterIn)
	}
	c.x += c.movxUnit
}

func (c *Compressed) moveX(r io.ByteReader) error {
	v, err := readInt16LE(r)
	if err != nil {
		return nil
	}
	c.x += units.Subunit(v) * c.movxUnit
	return nil
}

func (c *Compressed) moveY(r io.ByteReader) error {
	lo, err := r.ReadByte()
	if err != nil {
		return nil
	}
	hi, err := r.ReadByte()
	if err != nil {
		return nil
	}
	v := int(lo) | int(hi)<<8
	c.y += units.Subunit(v) * c.vStep
	return nil
}

func readInt16LE(r io.ByteReader) (int16, error) {
	lo, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	hi, err := r.ReadByte()
	if err != nil {
		return 0, fmt.Errorf("graphics: truncated MOVX parameter")
	}
	return int16(uint16(lo) | uint16(hi)<<8), nil
}
