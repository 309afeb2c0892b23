package interpreter

// escHandler executes one ESC-prefixed command; it reads its own
// parameters (if any) directly from the Interpreter's reader.
type escHandler func(ip *Interpreter) error

// escTable is the flat selector-byte dispatch table: no virtual
// dispatch, just a map lookup. Each command group registers its
// entries from its own file's init.
var escTable = map[byte]escHandler{}

// escParenHandler executes one ESC ( sub-command. The generic ESC (
// dispatcher has already read the sub-selector and the declared-length
// payload by the time h runs.
type escParenHandler func(ip *Interpreter, payload []byte) error

var escParenTable = map[byte]escParenHandler{}

func init() {
	escTable['@'] = func(ip *Interpreter) error {
		ip.reset()
		return nil
	}
}

// dispatchEsc reads the command selector following ESC and routes it.
func (ip *Interpreter) dispatchEsc() error {
	b, err := ip.readByte()
	if err != nil {
		return err
	}
	if b == '(' {
		return ip.dispatchEscParen()
	}
	h, ok := escTable[b]
	if !ok {
		return skip("unknown ESC selector 0x%02X", b)
	}
	return h(ip)
}

// dispatchEscParen reads the ESC/P2 ESC ( family's uniform sub-selector
// + 2-byte little-endian length + payload shape, then routes on the
// sub-selector.
func (ip *Interpreter) dispatchEscParen() error {
	sub, err := ip.readByte()
	if err != nil {
		return err
	}
	n, err := ip.readLen16()
	if err != nil {
		return err
	}
	payload, err := ip.readExact(n)
	if err != nil {
		return err
	}
	h, ok := escParenTable[sub]
	if !ok {
		return skip("unknown ESC ( sub-selector %q", sub)
	}
	return h(ip, payload)
}

func le16(b []byte) int {
	if len(b) < 2 {
		return 0
	}
	return int(b[0]) | int(b[1])<<8
}

func signed16(b []byte) int {
	v := le16(b)
	if v >= 0x8000 {
		v -= 0x10000
	}
	return v
}
