package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "escp2pdf.ini")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadParsesMiscAndTypefaces(t *testing.T) {
	path := writeConfig(t, `
[misc]
loglevel = debug
pins = 24
printable_area_margins_mm = 5,5,5,5
page_size = A4
single_sheets = true
renderer = rectangles
condensed_fallback = auto

[UserDefinedCharacters]
database_filepath = /var/lib/escp2pdf/userdict.json
images_path = /var/lib/escp2pdf/glyphs

[Roman]
path = /usr/share/fonts/roman
fixed = RomanMono
proportional = RomanSerif

[Courier New]
path = /usr/share/fonts/courier-new
fixed = CourierNew
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Misc.LogLevel)
	assert.Equal(t, 24, cfg.Misc.Pins)
	assert.Equal(t, 5.0, cfg.Misc.MarginTopMM)
	assert.Equal(t, "A4", cfg.Misc.PageSize)
	assert.True(t, cfg.Misc.SingleSheets)
	assert.Equal(t, "rectangles", cfg.Misc.Renderer)

	assert.Equal(t, "/var/lib/escp2pdf/userdict.json", cfg.UserDefinedCharacters.DatabaseFilepath)

	assert.Equal(t, "RomanMono", cfg.Typefaces["roman"].Fixed)
	assert.Equal(t, "CourierNew", cfg.Typefaces["courier new"].Fixed)
	// Sans serif was not configured: falls back to the embedded default.
	assert.Equal(t, "Courier", cfg.Typefaces["sans serif"].Fixed)
	assert.Equal(t, "Helvetica", cfg.Typefaces["sans serif"].Proportional)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.ini"))
	assert.Error(t, err)
}

func TestResolvePageSizeAlias(t *testing.T) {
	w, h, err := ResolvePageSize("LETTER")
	require.NoError(t, err)
	assert.InDelta(t, 611.999, w, 0.5)
	assert.InDelta(t, 791.999, h, 0.5)
}

func TestResolvePageSizeLandscapePrefix(t *testing.T) {
	w, h, err := ResolvePageSize("L-A4")
	require.NoError(t, err)
	assert.Greater(t, w, h)
}

func TestResolvePageSizeLiteralMillimetres(t *testing.T) {
	w, h, err := ResolvePageSize("100,50")
	require.NoError(t, err)
	assert.InDelta(t, 283.46, w, 0.1)
	assert.InDelta(t, 141.73, h, 0.1)
}

func TestResolvePageSizeUnknownAlias(t *testing.T) {
	_, _, err := ResolvePageSize("NOT-A-SIZE")
	assert.Error(t, err)
}
