package interpreter

import "github.com/doswriter/escp2pdf/internal/typography"

func init() {
	escTable['P'] = cmdPitch(10)
	escTable['M'] = cmdPitch(12)
	escTable['g'] = cmdPitch(15)
	escTable['X'] = cmdExplicitPoint
	escTable['!'] = cmdMasterSelect
	escTable['W'] = cmdDoubleWidth
	escTable['w'] = cmdDoubleHeight
	escTable['S'] = cmdScripting
	escTable['T'] = cmdCancelScripting
	escTable['E'] = cmdBoldOn
	escTable['F'] = cmdBoldOff
	escTable['4'] = cmdItalicOn
	escTable['5'] = cmdItalicOff
	escTable['G'] = cmdDoubleStrikeOn
	escTable['H'] = cmdDoubleStrikeOff
	escTable['-'] = cmdUnderline
	escTable['p'] = cmdProportional

	escTable['U'] = cmdConsumeOneNoEffect // unidirectional mode
	escTable['s'] = cmdConsumeOneNoEffect // low-speed mode
	escTable['8'] = cmdNoEffect           // paper-out detection disable
	escTable['9'] = cmdNoEffect           // paper-out detection enable

	escParenTable['-'] = cmdParenScore
}

func cmdPitch(cpi float64) escHandler {
	return func(ip *Interpreter) error {
		ip.typo.SetPitch(cpi)
		return nil
	}
}

// cmdExplicitPoint implements ESC X m nL nH: m is the pitch in cpi (0
// means proportional), nL/nH is the point size in half-points.
func cmdExplicitPoint(ip *Interpreter) error {
	m, err := ip.readByte()
	if err != nil {
		return err
	}
	lo, err := ip.readByte()
	if err != nil {
		return err
	}
	hi, err := ip.readByte()
	if err != nil {
		return err
	}
	halfPoints := le16([]byte{lo, hi})
	ip.typo.SetExplicitPointSize(float64(halfPoints)/2, float64(m))
	return nil
}

func cmdMasterSelect(ip *Interpreter) error {
	b, err := ip.readByte()
	if err != nil {
		return err
	}
	ip.typo.ApplyMasterSelect(typography.MasterSelectBits{
		Elite:        b&0x01 != 0,
		Proportional: b&0x02 != 0,
		Condensed:    b&0x04 != 0,
		Bold:         b&0x08 != 0,
		DoubleStrike: b&0x10 != 0,
		DoubleWidth:  b&0x20 != 0,
		Italic:       b&0x40 != 0,
		Underline:    b&0x80 != 0,
	})
	return nil
}

func cmdDoubleWidth(ip *Interpreter) error {
	n, err := ip.readByte()
	if err != nil {
		return err
	}
	ip.typo.DoubleWidth = n != 0
	return nil
}

func cmdDoubleHeight(ip *Interpreter) error {
	n, err := ip.readByte()
	if err != nil {
		return err
	}
	ip.typo.DoubleHeight = n != 0
	return nil
}

func cmdScripting(ip *Interpreter) error {
	n, err := ip.readByte()
	if err != nil {
		return err
	}
	if n == 0 {
		ip.typo.SetScripting(typography.ScriptSuper)
	} else {
		ip.typo.SetScripting(typography.ScriptSub)
	}
	return nil
}

func cmdCancelScripting(ip *Interpreter) error {
	ip.typo.SetScripting(typography.ScriptNone)
	return nil
}

func cmdBoldOn(ip *Interpreter) error  { ip.typo.Bold = true; return nil }
func cmdBoldOff(ip *Interpreter) error { ip.typo.Bold = false; return nil }

func cmdItalicOn(ip *Interpreter) error  { ip.typo.Italic = true; return nil }
func cmdItalicOff(ip *Interpreter) error { ip.typo.Italic = false; return nil }

func cmdDoubleStrikeOn(ip *Interpreter) error  { ip.typo.DoubleStrike = true; return nil }
func cmdDoubleStrikeOff(ip *Interpreter) error { ip.typo.DoubleStrike = false; return nil }

func cmdProportional(ip *Interpreter) error {
	n, err := ip.readByte()
	if err != nil {
		return err
	}
	ip.typo.SetProportional(n != 0)
	return nil
}

// cmdUnderline implements ESC - n: the two-state underline toggle,
// distinct from the combined 3-line score ESC ( -.
func cmdUnderline(ip *Interpreter) error {
	n, err := ip.readByte()
	if err != nil {
		return err
	}
	ip.typo.Underline = n != 0
	return nil
}

// cmdParenScore implements ESC ( -: d0 selects which of
// underline/strikeout/overscore the line applies to, d1 0 cancels it
// and non-zero enables it.
func cmdParenScore(ip *Interpreter, payload []byte) error {
	if len(payload) < 2 {
		return skip("ESC ( -: short payload")
	}
	if payload[1] == 0 {
		ip.typo.Score = typography.ScoreNone
		ip.typo.Underline = false
		ip.typo.Strikeout = false
		ip.typo.Overscore = false
		return nil
	}
	switch payload[0] {
	case 0:
		ip.typo.Score = typography.ScoreUnderline
		ip.typo.Underline = true
	case 1:
		ip.typo.Score = typography.ScoreStrikeout
		ip.typo.Strikeout = true
	case 2:
		ip.typo.Score = typography.ScoreOverscore
		ip.typo.Overscore = true
	default:
		return skip("ESC ( -: unknown line style %d", payload[0])
	}
	return nil
}

// cmdConsumeOneNoEffect reads and discards a single parameter byte for
// a command accepted but with no emulated effect in this renderer.
func cmdConsumeOneNoEffect(ip *Interpreter) error {
	_, err := ip.readByte()
	return err
}

// cmdNoEffect takes no parameters and does nothing.
func cmdNoEffect(ip *Interpreter) error { return nil }
