package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLookupKnownAndUnknown(t *testing.T) {
	reg := NewRegistry()

	tbl, err := reg.Lookup("PC850")
	require.NoError(t, err)
	assert.Equal(t, rune('Ç'), tbl.Rune(0x80))

	_, err = reg.Lookup("PC999")
	assert.Error(t, err)
}

func TestResolverDefaultLookup(t *testing.T) {
	reg := NewRegistry()
	pc437, err := reg.Lookup("PC437")
	require.NoError(t, err)

	res := NewResolver(reg, pc437, nil, nil)
	got := res.Resolve('A')
	assert.Equal(t, rune('A'), got.Rune)
	assert.False(t, got.FromUserGlyph)
}

func TestResolverFranceOverlayAppliesAfterReset(t *testing.T) {
	reg := NewRegistry()
	pc437, err := reg.Lookup("PC437")
	require.NoError(t, err)

	res := NewResolver(reg, pc437, nil, nil)
	res.Reset(pc437)
	require.NoError(t, res.SelectCountry(int(France)))

	got := res.Resolve(0x60)
	assert.Equal(t, 'à', got.Rune, "France NRC overlay must replace 0x60 with à")

	got = res.Resolve('A')
	assert.Equal(t, rune('A'), got.Rune, "unaffected ASCII positions pass through unchanged")
}

func TestResolverAssignAndSelectSlot(t *testing.T) {
	reg := NewRegistry()
	pc437, err := reg.Lookup("PC437")
	require.NoError(t, err)

	res := NewResolver(reg, pc437, nil, nil)
	require.NoError(t, res.AssignSlot(1, "PC850"))
	require.NoError(t, res.SelectSlot(1))

	got := res.Resolve(0x80)
	assert.Equal(t, rune('Ç'), got.Rune)
}

func TestResolverSlotOutOfRange(t *testing.T) {
	reg := NewRegistry()
	pc437, _ := reg.Lookup("PC437")
	res := NewResolver(reg, pc437, nil, nil)
	assert.Error(t, res.AssignSlot(4, "PC437"))
	assert.Error(t, res.SelectSlot(-1))
}

type fakeStore struct {
	values map[string]rune
}

func (f *fakeStore) Lookup(fingerprint string, code byte) (rune, bool) {
	r, ok := f.values[fingerprint+string(code)]
	return r, ok
}

func (f *fakeStore) Record(fingerprint string, code byte, bitmap []byte, width, height int) {
	if f.values == nil {
		f.values = map[string]rune{}
	}
	f.values[fingerprint+string(code)] = Replacement
}

func TestResolverUserDefinedOverlay(t *testing.T) {
	reg := NewRegistry()
	pc437, _ := reg.Lookup("PC437")

	store := &fakeStore{values: map[string]rune{"fp" + string(byte(0x80)): '★'}}
	res := NewResolver(reg, pc437, store, func() string { return "fp" })
	res.SelectUserDefined(true)

	got := res.Resolve(0x80)
	assert.Equal(t, '★', got.Rune)
	assert.True(t, got.FromUserGlyph)
}

func TestResolverUserDefinedUnmappedFallsThroughToActiveTable(t *testing.T) {
	reg := NewRegistry()
	pc437, _ := reg.Lookup("PC437")

	store := &fakeStore{}
	res := NewResolver(reg, pc437, store, func() string { return "fp" })
	res.SelectUserDefined(true)

	got := res.Resolve('Z')
	assert.Equal(t, rune('Z'), got.Rune)
	assert.True(t, got.FromUserGlyph)
	assert.False(t, got.Unmapped)
}

func TestSlotAssignmentExample6FromSpec(t *testing.T) {
	// b"\x1b(t\x03\x00\x01\x03\x00" + b"\x1bt\x01" + b"\x80" expects
	// PC850 0x80 -> U+00C7 (Ç), verified at the resolver layer.
	reg := NewRegistry()
	pc437, _ := reg.Lookup("PC437")
	res := NewResolver(reg, pc437, nil, nil)
	require.NoError(t, res.AssignSlot(1, "PC850"))
	require.NoError(t, res.SelectSlot(1))
	got := res.Resolve(0x80)
	assert.Equal(t, rune(0x00C7), got.Rune)
}
