package interpreter

import (
	"github.com/doswriter/escp2pdf/internal/typography"
	"github.com/doswriter/escp2pdf/internal/units"
)

const (
	ctrlBS  = 0x08
	ctrlHT  = 0x09
	ctrlLF  = 0x0A
	ctrlVT  = 0x0B
	ctrlFF  = 0x0C
	ctrlCR  = 0x0D
	ctrlSO  = 0x0E
	ctrlSI  = 0x0F
	ctrlDC2 = 0x12
	ctrlDC4 = 0x14
	ctrlCAN = 0x18
	ctrlDEL = 0x7F
)

// namedControls always execute their defined action, regardless of the
// ESC 6/7 and ESC I toggles, which govern every other code in the
// 0x00-0x1F / 0x80-0x9F ranges.
var namedControls = map[byte]bool{
	ctrlBS: true, ctrlHT: true, ctrlLF: true, ctrlVT: true, ctrlFF: true, ctrlCR: true,
	ctrlSO: true, ctrlSI: true, ctrlDC2: true, ctrlDC4: true, ctrlCAN: true, ctrlDEL: true,
}

func (ip *Interpreter) dispatchControl(b byte) error {
	switch b {
	case ctrlLF:
		ip.layout.LineFeed()
		ip.typo.ClearDoubleWidthLine()
	case ctrlCR:
		ip.layout.CarriageReturn()
		ip.typo.ClearDoubleWidthLine()
	case ctrlFF:
		ip.layout.FormFeed()
	case ctrlHT:
		ip.layout.HorizontalTab()
	case ctrlVT:
		ip.layout.VerticalTab()
	case ctrlBS:
		ip.layout.Backspace(ip.advanceWidth())
	case ctrlSO:
		ip.typo.SetDoubleWidthLine(true)
	case ctrlSI:
		ip.typo.Condensed = true
	case ctrlDC2:
		ip.typo.Condensed = false
	case ctrlDC4:
		ip.typo.ClearDoubleWidthLine()
	case ctrlCAN, ctrlDEL:
		// Both cancel data still sitting in the printer's line buffer on
		// real hardware; a streaming vector renderer has no such buffer
		// to unwind, so these are no-ops here.
	}
	return nil
}

// advanceWidth resolves the current typography state far enough to
// know how far one glyph step moves x, without drawing anything —
// used by backspace and by drawGlyph itself.
func (ip *Interpreter) advanceWidth() units.Subunit {
	res := ip.typo.Resolve(ip.condensedFallback, false)
	inches := res.AdvanceInches
	if inches == 0 {
		// Proportional pitch: the true advance comes from the resolved
		// font's own metrics, which live in the external drawing
		// surface. Approximate with half the point size, a reasonable
		// average glyph width, until a real metrics source is wired in.
		inches = res.PointSize / 144
	}
	inches *= res.HorizontalScale
	inches += ip.typo.InterCharSpace
	return units.Subunit(inches * float64(units.PerInch))
}

// drawGlyph resolves b to a rune, draws it and any style decorations,
// and advances the print position.
func (ip *Interpreter) drawGlyph(b byte) error {
	res := ip.enc.Resolve(b)
	if res.Unmapped && ip.dict != nil {
		ip.dict.Record(ip.fingerprint(), b, nil, 0, 0)
	}

	resn := ip.typo.Resolve(ip.condensedFallback, false)
	font, err := ip.fonts.Resolve(ip.typo.TypefaceID, ip.typo.Proportional, resn.PointSize, resn.Style)
	if err != nil {
		return skip("font resolution failed: %v", err)
	}

	x, y := ip.layout.PositionPoints()
	drawY := y + resn.BaselineShift

	ip.surf.DrawText(res.Rune, font, x, drawY, resn.Style, ip.ink)
	if ip.typo.DoubleStrike {
		ip.surf.DrawText(res.Rune, font, x+0.4, drawY, resn.Style, ip.ink)
	}
	ip.drawDecorations(x, drawY, resn)

	ip.layout.Advance(ip.advanceWidth())
	return nil
}

// drawDecorations draws underline/strikeout/overscore as line
// primitives after the glyph, per the resolved style.
func (ip *Interpreter) drawDecorations(x, y float64, resn typography.Resolution) {
	width := resn.AdvanceInches * units.PointsPerInch
	if width == 0 {
		width = resn.PointSize * 0.5
	}
	width *= resn.HorizontalScale
	thickness := resn.PointSize / 16

	line := func(dy float64) {
		ip.surf.DrawRect(x, y+dy, width, thickness, ip.ink)
	}
	if resn.Style.Underline {
		line(resn.PointSize * 0.15)
	}
	if resn.Style.Strikeout {
		line(-resn.PointSize * 0.3)
	}
	if resn.Style.Overscore {
		line(-resn.PointSize * 0.8)
	}
}
