package interpreter

import (
	"github.com/doswriter/escp2pdf/internal/graphics"
	"github.com/doswriter/escp2pdf/internal/units"
)

func init() {
	escTable['*'] = cmdBitImage
	escTable['K'] = cmdLegacyBitImage('K')
	escTable['L'] = cmdLegacyBitImage('L')
	escTable['Y'] = cmdLegacyBitImage('Y')
	escTable['Z'] = cmdLegacyBitImage('Z')
	escTable['^'] = cmdNinePin
	escTable['?'] = cmdRemapDensity
	escTable['.'] = cmdRaster
	escTable['r'] = cmdInkColor

	escParenTable['G'] = cmdParenSelectGraphicsMode
}

// cmdBitImage implements ESC * m nL nH data: m selects a density mode,
// nL/nH is a column count (not a byte length), and the byte length is
// derived from the mode's bytes-per-column. A short tail at end of
// stream renders as many whole columns as arrived and stops, per the
// tie-break rule, rather than failing the whole run.
func cmdBitImage(ip *Interpreter) error {
	m, err := ip.readByte()
	if err != nil {
		return err
	}
	columns, err := ip.readLen16()
	if err != nil {
		return err
	}
	bpc, ok := graphics.BytesPerColumn(int(m))
	if !ok {
		return skip("ESC *: unknown density mode %d", m)
	}
	data := ip.readUpTo(columns * bpc)
	if err := ip.gfx.BitImage(int(m), columns, data); err != nil {
		return skip("ESC *: %v", err)
	}
	return nil
}

// cmdLegacyBitImage implements the fixed-density single-letter bit
// image shorthands ESC K/L/Y/Z, each equivalent to ESC * with an
// implied mode 0-3 unless ESC ? has remapped that letter.
func cmdLegacyBitImage(letter byte) escHandler {
	return func(ip *Interpreter) error {
		mode, ok := ip.densityRemap[letter]
		if !ok {
			mode = int(letter)
		}
		columns, err := ip.readLen16()
		if err != nil {
			return err
		}
		bpc, ok := graphics.BytesPerColumn(mode)
		if !ok {
			return skip("ESC %c: remapped to unknown density mode %d", letter, mode)
		}
		data := ip.readUpTo(columns * bpc)
		if err := ip.gfx.BitImage(mode, columns, data); err != nil {
			return skip("ESC %c: %v", letter, err)
		}
		return nil
	}
}

// cmdRemapDensity implements ESC ?: reassign which density mode one of
// the legacy K/L/Y/Z letters selects.
func cmdRemapDensity(ip *Interpreter) error {
	letter, err := ip.readByte()
	if err != nil {
		return err
	}
	mode, err := ip.readByte()
	if err != nil {
		return err
	}
	if _, ok := graphics.BytesPerColumn(int(mode)); !ok {
		return skip("ESC ?: unknown density mode %d", mode)
	}
	ip.densityRemap[letter] = int(mode)
	return nil
}

// cmdNinePin implements ESC ^: explicit 9-pin graphics, 2 data bytes
// per column, direction byte m ignored (unidirectional/bidirectional
// emulation is a Non-goal).
func cmdNinePin(ip *Interpreter) error {
	if _, err := ip.readByte(); err != nil { // m: print direction, not modeled
		return err
	}
	columns, err := ip.readLen16()
	if err != nil {
		return err
	}
	data := ip.readUpTo(columns * 2)
	if err := ip.gfx.NinePin(columns, data); err != nil {
		return skip("ESC ^: %v", err)
	}
	return nil
}

// cmdRaster implements ESC . c v h m nL nH [data]: c=0 is plain raster
// with a declared column count and row-major data; c=2 enters the
// TIFF-compressed opcode stream, which has no declared length and runs
// until <EXIT> or end of stream.
func cmdRaster(ip *Interpreter) error {
	c, err := ip.readByte()
	if err != nil {
		return err
	}
	v, err := ip.readByte()
	if err != nil {
		return err
	}
	h, err := ip.readByte()
	if err != nil {
		return err
	}
	m, err := ip.readByte()
	if err != nil {
		return err
	}

	switch c {
	case 0:
		columns, err := ip.readLen16()
		if err != nil {
			return err
		}
		rows := int(m)
		bytesPerRow := (columns + 7) / 8
		data := ip.readUpTo(rows * bytesPerRow)
		if err := ip.gfx.Raster(units.Subunit(v), units.Subunit(h), rows, columns, data); err != nil {
			return skip("ESC . 0: %v", err)
		}
		return nil
	case 2:
		comp := graphics.NewCompressed(ip.gfx, units.Subunit(h), units.Subunit(v))
		return comp.Run(ip.r)
	default:
		return skip("ESC .: unknown raster sub-mode %d", c)
	}
}

// cmdInkColor implements ESC r: select the Epson 8-colour ribbon index
// globally, used by both text and non-compressed graphics.
func cmdInkColor(ip *Interpreter) error {
	n, err := ip.readByte()
	if err != nil {
		return err
	}
	ip.ink = graphics.Palette(int(n))
	ip.gfx.Color = ip.ink
	return nil
}

// cmdParenSelectGraphicsMode implements ESC ( G: accepted and parsed
// (the generic ESC ( dispatcher already consumed its length-prefixed
// payload), but ESC/P2 extended-graphics mode selection has no
// separate effect here since every sub-protocol already dispatches on
// its own selector byte.
func cmdParenSelectGraphicsMode(ip *Interpreter, payload []byte) error {
	return nil
}
