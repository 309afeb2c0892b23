package encoding

import "fmt"

// UserDefinedStore is the external collaborator that persists the
// mapping from a user-defined glyph (keyed by a font-identity
// fingerprint and code) to the Unicode scalar an operator has assigned
// it. The resolver only ever calls Lookup; the dispatcher calls Record
// when it defines new glyphs via ESC &.
type UserDefinedStore interface {
	Lookup(fingerprint string, code byte) (r rune, ok bool)
	Record(fingerprint string, code byte, bitmap []byte, width, height int)
}

// Slots holds the four character-table slots ESC ( t can populate and
// the index ESC t makes active.
type Slots struct {
	Tables [4]*Table
	Active int
}

// Resolver turns a raw printer byte into a renderable rune, checking in
// order: the user-defined glyph overlay, then the NRC international
// overlay, then the active character table, then falling back to
// Replacement.
type Resolver struct {
	registry    *Registry
	slots       Slots
	country     Country
	userDefined bool
	store       UserDefinedStore
	fingerprint func() string
}

// NewResolver builds a Resolver against registry, with all four slots
// defaulted to defaultTable (ESC @'s reset target) and the USA NRC
// overlay selected.
func NewResolver(registry *Registry, defaultTable *Table, store UserDefinedStore, fingerprint func() string) *Resolver {
	r := &Resolver{registry: registry, store: store, fingerprint: fingerprint}
	r.Reset(defaultTable)
	return r
}

// Reset restores the four slots to defaultTable, the active slot to 0,
// the NRC country to USA and disables the user-defined overlay — what
// ESC @ does to the encoding subsystem.
func (r *Resolver) Reset(defaultTable *Table) {
	for i := range r.slots.Tables {
		r.slots.Tables[i] = defaultTable
	}
	r.slots.Active = 0
	r.country = USA
	r.userDefined = false
}

// AssignSlot implements ESC ( t: assign an encoding name to one of the
// four slots.
func (r *Resolver) AssignSlot(slot int, tableName string) error {
	if slot < 0 || slot > 3 {
		return fmt.Errorf("encoding: slot %d out of range", slot)
	}
	t, err := r.registry.Lookup(tableName)
	if err != nil {
		return err
	}
	r.slots.Tables[slot] = t
	return nil
}

// SelectSlot implements ESC t: choose the active slot.
func (r *Resolver) SelectSlot(slot int) error {
	if slot < 0 || slot > 3 {
		return fmt.Errorf("encoding: slot %d out of range", slot)
	}
	r.slots.Active = slot
	return nil
}

// SelectCountry implements ESC R.
func (r *Resolver) SelectCountry(n int) error {
	if !ValidCountry(n) {
		return fmt.Errorf("encoding: country %d out of range", n)
	}
	r.country = Country(n)
	return nil
}

// SelectUserDefined implements ESC %: route subsequent printable bytes
// through the user-defined overlay (p=1) or straight to the ROM tables
// (p=0).
func (r *Resolver) SelectUserDefined(on bool) {
	r.userDefined = on
}

// Resolution is what Resolve reports for a single byte.
type Resolution struct {
	Rune          rune
	FromUserGlyph bool
	Unmapped      bool // true when the user-defined overlay is active and neither it, the NRC overlay nor the active table maps the byte
}

// Resolve turns byte b into a rune, checking the user-defined overlay,
// the NRC overlay, then the active table, in that order.
func (r *Resolver) Resolve(b byte) Resolution {
	if r.userDefined && r.store != nil {
		fp := ""
		if r.fingerprint != nil {
			fp = r.fingerprint()
		}
		if ru, ok := r.store.Lookup(fp, b); ok {
			return Resolution{Rune: ru, FromUserGlyph: true}
		}
		if ru, ok := Overlay(r.country, b); ok {
			return Resolution{Rune: ru, FromUserGlyph: true}
		}
		active := r.slots.Tables[r.slots.Active]
		ru := active.Rune(b)
		return Resolution{Rune: ru, FromUserGlyph: true, Unmapped: ru == Replacement}
	}

	if ru, ok := Overlay(r.country, b); ok {
		return Resolution{Rune: ru}
	}
	active := r.slots.Tables[r.slots.Active]
	return Resolution{Rune: active.Rune(b)}
}

// ActiveTableName reports the name of the currently selected table, for
// diagnostics/logging.
func (r *Resolver) ActiveTableName() string {
	t := r.slots.Tables[r.slots.Active]
	if t == nil {
		return ""
	}
	return t.Name
}
