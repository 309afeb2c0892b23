// Package encoding owns the active character table set, the
// international-replacement overlay and the user-defined glyph overlay,
// and turns a raw printer byte into a Unicode scalar (or a signal that
// the byte should be rendered from the user-defined glyph store).
package encoding

import (
	"fmt"

	xenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Replacement is returned for any byte the active table does not map.
const Replacement rune = '�'

// Table is a 256-entry mapping from a raw byte to a Unicode scalar.
// Unmapped entries resolve to Replacement.
type Table struct {
	Name string
	runes [256]rune
}

// Rune returns the Unicode scalar the table maps b to.
func (t *Table) Rune(b byte) rune {
	if t == nil {
		return Replacement
	}
	return t.runes[b]
}

// decodeByte decodes a single byte through a golang.org/x/text charmap,
// falling back to the replacement character on failure.
func decodeByte(enc xenc.Encoding, b byte) rune {
	out, err := enc.NewDecoder().Bytes([]byte{b})
	if err != nil || len(out) == 0 {
		return Replacement
	}
	r := []rune(string(out))
	if len(r) == 0 {
		return Replacement
	}
	return r[0]
}

func newTable(name string, enc xenc.Encoding) *Table {
	t := &Table{Name: name}
	for i := range t.runes {
		t.runes[i] = decodeByte(enc, byte(i))
	}
	return t
}

// Registry is the immutable set of installed encodings, keyed by the
// name used in ESC ( t and in configuration files. Construct once at
// startup with NewRegistry; the tables never mutate afterwards.
type Registry struct {
	tables map[string]*Table
}

// knownCharmaps addresses each named code page via
// golang.org/x/text/encoding/charmap, covering the Epson ESC/P2 table
// list.
var knownCharmaps = map[string]xenc.Encoding{
	"PC437":      charmap.CodePage437,
	"PC850":      charmap.CodePage850,
	"PC852":      charmap.CodePage852,
	"PC858":      charmap.CodePage858,
	"PC860":      charmap.CodePage860,
	"PC863":      charmap.CodePage863,
	"PC865":      charmap.CodePage865,
	"PC866":      charmap.CodePage866,
	"ISO8859-1":  charmap.ISO8859_1,
	"ISO8859-2":  charmap.ISO8859_2,
	"ISO8859-15": charmap.ISO8859_15,
	"WPC1252":    charmap.Windows1252,
	"WPC1251":    charmap.Windows1251,
	"WPC1250":    charmap.Windows1250,
}

// NewRegistry builds a Registry containing every encoding ESC/P2 names.
func NewRegistry() *Registry {
	r := &Registry{tables: make(map[string]*Table, len(knownCharmaps))}
	for name, enc := range knownCharmaps {
		r.tables[name] = newTable(name, enc)
	}
	return r
}

// Lookup returns the named table, or an error if it is not installed: a
// configuration naming an unknown table is fatal at startup.
func (r *Registry) Lookup(name string) (*Table, error) {
	t, ok := r.tables[name]
	if !ok {
		return nil, fmt.Errorf("encoding: unknown character table %q", name)
	}
	return t, nil
}

// Names lists every installed table name, sorted is not guaranteed.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tables))
	for n := range r.tables {
		names = append(names, n)
	}
	return names
}
