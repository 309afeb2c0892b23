package interpreter

import "github.com/doswriter/escp2pdf/internal/units"

func init() {
	escTable['C'] = cmdPageLengthLines
	escTable['N'] = cmdSkipPerforation
	escTable['O'] = cmdCancelSkipPerforation
	escTable['Q'] = cmdRightMargin
	escTable['l'] = cmdLeftMargin
	escTable['c'] = cmdLegacyPageFormat

	escTable['0'] = cmdFixedLineSpacing(1, 8)
	escTable['2'] = cmdFixedLineSpacing(1, 6)
	escTable['3'] = cmdParametricLineSpacing(180)
	escTable['A'] = cmdParametricLineSpacing(60)
	escTable['+'] = cmdParametricLineSpacing(360)

	escParenTable['C'] = cmdParenPageLength
	escParenTable['c'] = cmdParenPageFormat
}

// cmdFixedLineSpacing implements ESC 0 (1/8") and ESC 2 (1/6"): no
// parameter byte, a fixed denominator.
func cmdFixedLineSpacing(num, denom int) escHandler {
	return func(ip *Interpreter) error {
		ip.layout.SetLineSpacing(units.FromInchFraction(num, denom))
		return nil
	}
}

// cmdParametricLineSpacing implements ESC 3 n (n/180"), ESC A n
// (n/60") and ESC + n (n/360"): one parameter byte n against a
// command-specific denominator.
func cmdParametricLineSpacing(denom int) escHandler {
	return func(ip *Interpreter) error {
		n, err := ip.readByte()
		if err != nil {
			return err
		}
		ip.layout.SetLineSpacing(units.FromInchFraction(int(n), denom))
		return nil
	}
}

// cmdPageLengthLines implements ESC C n (page length in the current
// line-spacing unit) and its two-byte form ESC C NUL m (page length in
// inches).
func cmdPageLengthLines(ip *Interpreter) error {
	n, err := ip.readByte()
	if err != nil {
		return err
	}
	if n != 0 {
		ip.layout.SetPageLength(units.Subunit(n) * ip.layout.LineSpacing())
		return nil
	}
	m, err := ip.readByte()
	if err != nil {
		return err
	}
	ip.layout.SetPageLength(units.FromInchFraction(int(m), 1))
	return nil
}

// cmdSkipPerforation implements ESC N n: set the bottom margin n lines
// up from the physical bottom edge.
func cmdSkipPerforation(ip *Interpreter) error {
	n, err := ip.readByte()
	if err != nil {
		return err
	}
	ip.layout.CancelBottomMargin()
	bottom := ip.layout.Margins().Bottom - units.Subunit(n)*ip.layout.LineSpacing()
	ip.layout.SetBottomMargin(bottom)
	return nil
}

func cmdCancelSkipPerforation(ip *Interpreter) error {
	ip.layout.CancelBottomMargin()
	return nil
}

// pitchUnit returns the subunit width of one character column at the
// typography subsystem's current fixed pitch.
func (ip *Interpreter) pitchUnit() units.Subunit {
	cpi := ip.typo.PitchCPI
	if cpi <= 0 {
		cpi = 10
	}
	return units.FromInchFraction(1, int(cpi))
}

func cmdRightMargin(ip *Interpreter) error {
	n, err := ip.readByte()
	if err != nil {
		return err
	}
	x := ip.layout.Margins().Left + units.Subunit(n)*ip.pitchUnit()
	if err := ip.layout.SetRightMargin(x); err != nil {
		return skip("ESC Q: %v", err)
	}
	return nil
}

func cmdLeftMargin(ip *Interpreter) error {
	n, err := ip.readByte()
	if err != nil {
		return err
	}
	x := units.Subunit(n) * ip.pitchUnit()
	if err := ip.layout.SetLeftMargin(x); err != nil {
		return skip("ESC l: %v", err)
	}
	return nil
}

// cmdLegacyPageFormat implements the one-parameter legacy ESC c: a
// single 2-byte bottom-margin value in the current defined unit,
// funnelled through the same setPageFormat policy as ESC ( c.
func cmdLegacyPageFormat(ip *Interpreter) error {
	lo, err := ip.readByte()
	if err != nil {
		return err
	}
	hi, err := ip.readByte()
	if err != nil {
		return err
	}
	ip.setPageFormat(-1, le16([]byte{lo, hi}))
	return nil
}

func cmdParenPageLength(ip *Interpreter, payload []byte) error {
	ip.layout.SetPageLength(units.Subunit(le16(payload)) * ip.layout.DefinedUnit())
	return nil
}

func cmdParenPageFormat(ip *Interpreter, payload []byte) error {
	if len(payload) < 4 {
		return skip("ESC ( c: short payload")
	}
	top := le16(payload[0:2])
	bottom := le16(payload[2:4])
	ip.setPageFormat(top, bottom)
	return nil
}

// setPageFormat implements both ESC c and ESC ( c's margin update. A
// declared margin beyond the physical page height is clamped rather
// than ignored — layout.SetTopMargin/SetBottomMargin already clamp.
// top < 0 means "leave the top margin untouched" (ESC c's legacy form
// only carries a bottom value).
func (ip *Interpreter) setPageFormat(top, bottom int) {
	unit := ip.layout.DefinedUnit()
	if top >= 0 {
		ip.layout.SetTopMargin(units.Subunit(top) * unit)
	}
	ip.layout.SetBottomMargin(units.Subunit(bottom) * unit)
}
