package userdict

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "missing.json"), "")
	require.NoError(t, err)
	_, ok := s.Lookup("anything", 0x80)
	assert.False(t, ok)
}

func TestRecordThenLookupBeforeMappingIsUnresolved(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "db.json"), "")
	require.NoError(t, err)

	s.Record("fp1_0", 0x80, []byte{0xFF}, 8, 1)
	_, ok := s.Lookup("fp1_0", 0x80)
	assert.False(t, ok, "a freshly recorded glyph has no resolved mapping yet")
}

func TestFlushWritesJSONAndReopenRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	s, err := Open(path, "")
	require.NoError(t, err)

	s.Record("fp1_0", 0x80, []byte{0xFF}, 8, 1)
	require.NoError(t, s.Flush())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "fp1_0")
	assert.Contains(t, string(data), "128") // 0x80 decimal

	reopened, err := Open(path, "")
	require.NoError(t, err)
	_, ok := reopened.Lookup("fp1_0", 0x80)
	assert.False(t, ok) // still unmapped (value is the replacement placeholder)
}

func TestFlushIsNoOpWhenNotDirty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	s, err := Open(path, "")
	require.NoError(t, err)
	require.NoError(t, s.Flush())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "Flush with nothing recorded should not create a file")
}

func TestRecordDumpsPNGWhenImagesPathConfigured(t *testing.T) {
	imagesDir := t.TempDir()
	s, err := Open(filepath.Join(t.TempDir(), "db.json"), imagesDir)
	require.NoError(t, err)

	s.Record("fp2_1", 0x41, []byte{0xAA}, 8, 1)

	entries, err := os.ReadDir(imagesDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "fp2_1")
}

func TestFingerprintIsDeterministicAndModeScoped(t *testing.T) {
	a := Fingerprint(0, false, 0)
	b := Fingerprint(0, false, 0)
	c := Fingerprint(0, false, 1)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestMemStoreAssignThenLookup(t *testing.T) {
	m := NewMemStore()
	m.Record("fp", 0x41, nil, 0, 0)
	assert.True(t, m.Defined("fp", 0x41))
	_, ok := m.Lookup("fp", 0x41)
	assert.False(t, ok)

	m.Assign("fp", 0x41, 'A')
	r, ok := m.Lookup("fp", 0x41)
	require.True(t, ok)
	assert.Equal(t, 'A', r)
}
