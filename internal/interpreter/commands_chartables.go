package interpreter

func init() {
	escTable['t'] = cmdSelectSlot
	escTable['R'] = cmdSelectCountry
	escTable['6'] = cmdHighControlPrintable(true)
	escTable['7'] = cmdHighControlPrintable(false)
	escTable['I'] = cmdAllControlPrintable
	escTable['m'] = cmdSelectSlot // legacy alias, same semantics as ESC t

	escTable['&'] = cmdDefineUserChars
	escTable[':'] = cmdCopyROMToRAM
	escTable['%'] = cmdSelectUserDefined

	escParenTable['t'] = cmdParenAssignSlot
}

func cmdSelectSlot(ip *Interpreter) error {
	n, err := ip.readByte()
	if err != nil {
		return err
	}
	if err := ip.enc.SelectSlot(int(n)); err != nil {
		return skip("ESC t: %v", err)
	}
	return nil
}

func cmdSelectCountry(ip *Interpreter) error {
	n, err := ip.readByte()
	if err != nil {
		return err
	}
	if err := ip.enc.SelectCountry(int(n)); err != nil {
		return skip("ESC R: %v", err)
	}
	return nil
}

func cmdHighControlPrintable(on bool) escHandler {
	return func(ip *Interpreter) error {
		ip.controlPrintableHigh = on
		return nil
	}
}

func cmdAllControlPrintable(ip *Interpreter) error {
	n, err := ip.readByte()
	if err != nil {
		return err
	}
	ip.allControlPrintable = n != 0
	return nil
}

// tableIDNames maps the numeric ESC/P2 character-table IDs ESC ( t's
// second/third payload bytes carry to the registry's installed names.
// IDs outside this set are a recoverable skip: the slot keeps its
// previous table.
var tableIDNames = map[int]string{
	0:  "PC437",
	2:  "PC860",
	3:  "PC850",
	4:  "PC863",
	5:  "PC865",
	6:  "PC852",
	7:  "PC866",
	8:  "PC858",
	13: "ISO8859-1",
	14: "ISO8859-2",
	15: "ISO8859-15",
	16: "WPC1252",
	17: "WPC1250",
	18: "WPC1251",
}

func cmdParenAssignSlot(ip *Interpreter, payload []byte) error {
	if len(payload) < 3 {
		return skip("ESC ( t: short payload")
	}
	slot := int(payload[0])
	id := le16(payload[1:3])
	name, ok := tableIDNames[id]
	if !ok {
		return skip("ESC ( t: unknown character-table id %d", id)
	}
	if err := ip.enc.AssignSlot(slot, name); err != nil {
		return skip("ESC ( t: %v", err)
	}
	return nil
}

// cmdDefineUserChars implements ESC &: define one or more glyphs into
// the user-defined overlay. Grammar: mode, c1 (first code), c2 (last
// code), then per code in [c1,c2]: a 1-byte dot width followed by
// ceil(pins/8)*width bytes of column-major, MSB-first bitmap data.
func cmdDefineUserChars(ip *Interpreter) error {
	mode, err := ip.readByte()
	if err != nil {
		return err
	}
	c1, err := ip.readByte()
	if err != nil {
		return err
	}
	c2, err := ip.readByte()
	if err != nil {
		return err
	}
	ip.userDefMode = mode

	if c1 > c2 {
		return skip("ESC &: first code %d after last code %d", c1, c2)
	}
	rowBytes := (ip.pins + 7) / 8
	for code := int(c1); code <= int(c2); code++ {
		width, err := ip.readByte()
		if err != nil {
			return err
		}
		data := ip.readUpTo(int(width) * rowBytes)
		if ip.dict != nil {
			ip.dict.Record(ip.fingerprint(), byte(code), data, int(width), ip.pins)
		}
	}
	return nil
}

// cmdCopyROMToRAM implements ESC :, which seeds the user-defined slot
// from the currently active ROM table. The resolver's own fallback
// chain (user-defined overlay -> NRC -> active table) already serves
// an unmapped user-defined code from the active table, so there is no
// separate state to copy here; the command is accepted and its 3
// reserved bytes are consumed.
func cmdCopyROMToRAM(ip *Interpreter) error {
	_, err := ip.readExact(3)
	return err
}

func cmdSelectUserDefined(ip *Interpreter) error {
	n, err := ip.readByte()
	if err != nil {
		return err
	}
	ip.userDefined = n&0x01 != 0
	ip.enc.SelectUserDefined(ip.userDefined)
	return nil
}
