package interpreter

import "github.com/doswriter/escp2pdf/internal/units"

func init() {
	escTable['$'] = cmdAbsoluteHorizontal
	escTable['\\'] = cmdRelativeHorizontal
	escTable['J'] = cmdOneTimeLineFeed
	escTable['D'] = cmdHorizontalTabs
	escTable['B'] = cmdVerticalTabs
	escTable['e'] = cmdTabUnit

	escParenTable['V'] = cmdParenAbsoluteVertical
	escParenTable['v'] = cmdParenRelativeVertical
	escParenTable['U'] = cmdParenDefinedUnit
}

func cmdAbsoluteHorizontal(ip *Interpreter) error {
	n, err := ip.readLen16()
	if err != nil {
		return err
	}
	ip.layout.MoveHorizontalAbsolute(n)
	return nil
}

func cmdRelativeHorizontal(ip *Interpreter) error {
	lo, err := ip.readByte()
	if err != nil {
		return err
	}
	hi, err := ip.readByte()
	if err != nil {
		return err
	}
	n := signed16([]byte{lo, hi})
	ip.layout.MoveHorizontalRelative(n)
	return nil
}

// cmdOneTimeLineFeed implements ESC J n: advance n/180 inch
// immediately, without altering the configured line spacing.
func cmdOneTimeLineFeed(ip *Interpreter) error {
	n, err := ip.readByte()
	if err != nil {
		return err
	}
	ip.layout.MoveVerticalRelative(units.FromInchFraction(int(n), 180))
	return nil
}

// cmdHorizontalTabs implements ESC D: an ascending list of tab stops
// terminated by 0x00, each expressed in the current fixed pitch unless
// ESC e has overridden the unit.
func cmdHorizontalTabs(ip *Interpreter) error {
	stops, err := ip.readTabList()
	if err != nil {
		return err
	}
	unit := ip.hTabUnit
	if unit <= 0 {
		unit = units.FromInchFraction(1, int(ip.typo.PitchCPI))
	}
	subs := make([]units.Subunit, len(stops))
	for i, n := range stops {
		subs[i] = units.Subunit(n) * unit
	}
	ip.layout.SetHorizontalTabs(subs)
	return nil
}

// cmdVerticalTabs implements ESC B, symmetric to ESC D in lines
// instead of columns.
func cmdVerticalTabs(ip *Interpreter) error {
	stops, err := ip.readTabList()
	if err != nil {
		return err
	}
	unit := ip.vTabUnit
	if unit <= 0 {
		unit = ip.layout.LineSpacing()
	}
	subs := make([]units.Subunit, len(stops))
	for i, n := range stops {
		subs[i] = units.Subunit(n) * unit
	}
	ip.layout.SetVerticalTabs(subs)
	return nil
}

// readTabList reads bytes up to and including the terminating 0x00 (or
// end of stream), returning everything read before it.
func (ip *Interpreter) readTabList() ([]byte, error) {
	var out []byte
	for {
		b, err := ip.r.ReadByte()
		if err != nil {
			return out, nil // end of stream mid-list: use what arrived
		}
		if b == 0x00 {
			return out, nil
		}
		out = append(out, b)
	}
}

// cmdTabUnit implements the supplemented ESC e: set the subunit size
// one raw ESC D/B entry represents, overriding the pitch/line-spacing
// derived default.
func cmdTabUnit(ip *Interpreter) error {
	axis, err := ip.readByte()
	if err != nil {
		return err
	}
	n, err := ip.readByte()
	if err != nil {
		return err
	}
	u := units.FromInchFraction(1, int(n))
	if axis == 0 {
		ip.hTabUnit = u
	} else {
		ip.vTabUnit = u
	}
	return nil
}

func cmdParenAbsoluteVertical(ip *Interpreter, payload []byte) error {
	ip.layout.MoveVerticalAbsolute(le16(payload))
	return nil
}

func cmdParenRelativeVertical(ip *Interpreter, payload []byte) error {
	n := signed16(payload)
	delta := units.Subunit(n) * ip.layout.DefinedUnit()
	ip.layout.MoveVerticalRelative(delta)
	return nil
}

func cmdParenDefinedUnit(ip *Interpreter, payload []byte) error {
	if len(payload) < 1 {
		return skip("ESC ( U: empty payload")
	}
	if err := ip.layout.SetDefinedUnit(int(payload[0])); err != nil {
		return skip("ESC ( U: %v", err)
	}
	return nil
}
