package interpreter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doswriter/escp2pdf/internal/encoding"
	"github.com/doswriter/escp2pdf/internal/fontresolver"
	"github.com/doswriter/escp2pdf/internal/graphics"
	"github.com/doswriter/escp2pdf/internal/layout"
	"github.com/doswriter/escp2pdf/internal/surface"
	"github.com/doswriter/escp2pdf/internal/typography"
	"github.com/doswriter/escp2pdf/internal/units"
	"github.com/doswriter/escp2pdf/internal/userdict"
)

// newTestInterpreter builds an Interpreter over a fresh Recorder with a
// generous 8x10 inch printable area, so margin/page-break arithmetic in
// most tests never has to think about wrapping.
func newTestInterpreter(t *testing.T) (*Interpreter, *surface.Recorder) {
	t.Helper()
	rec := surface.NewRecorder()
	dict := userdict.NewMemStore()

	opts := Options{
		Paper:   layout.Paper{WidthPt: 612, HeightPt: 792},
		Margins: layout.Margins{Top: 0, Bottom: units.FromInchFraction(10, 1), Left: 0, Right: units.FromInchFraction(8, 1)},
		LineSpacing:       units.FromInchFraction(1, 6),
		DefinedUnit:       units.FromInchFraction(1, 60),
		Pins:              24,
		Renderer:          graphics.RendererDots,
		CondensedFallback: typography.CondensedFallbackAuto,
		Fonts:             fontresolver.New(nil, nil),
		UserDict:          dict,
		Registry:          encoding.NewRegistry(),
		DefaultTableName:  "PC437",
	}
	ip, err := New(rec, opts)
	require.NoError(t, err)
	return ip, rec
}

func run(t *testing.T, ip *Interpreter, data []byte) error {
	t.Helper()
	return ip.Run(strings.NewReader(string(data)))
}

func TestPlainTextDrawsEachGlyphAndHandlesLineFeedCarriageReturn(t *testing.T) {
	ip, rec := newTestInterpreter(t)
	require.NoError(t, run(t, ip, []byte("Hello\r\n")))

	assert.Equal(t, "Hello", rec.Text())
	x, y := ip.layout.PositionPoints()
	assert.Equal(t, ip.layout.Margins().Left.Points(), x)
	assert.Greater(t, y, 0.0)
}

func TestResetThenFranceNRCOverlay(t *testing.T) {
	ip, rec := newTestInterpreter(t)
	// ESC @, ESC R 1 (France), then 'A', 0x60 (-> a grave under France), CR LF.
	require.NoError(t, run(t, ip, []byte("\x1b@\x1bR\x01A\x60\r\n")))

	got := []rune(rec.Text())
	require.Len(t, got, 2)
	assert.Equal(t, 'A', got[0])
	assert.Equal(t, 'à', got[1])
}

func TestBitImageModeOneThreeColumnsAllDotsSet(t *testing.T) {
	ip, rec := newTestInterpreter(t)
	startX, _ := ip.layout.PositionPoints()
	require.NoError(t, run(t, ip, []byte("\x1b*\x01\x03\x00\xFF\xFF\xFF")))

	assert.Equal(t, 24, rec.DotCount())
	endX, _ := ip.layout.PositionPoints()
	assert.InDelta(t, startX+units.FromInchFraction(3, 120).Points(), endX, 1e-9)
}

func TestBitImageZeroColumnsIsPureAdvance(t *testing.T) {
	ip, rec := newTestInterpreter(t)
	require.NoError(t, run(t, ip, []byte("\x1b*\x01\x00\x00")))
	assert.Equal(t, 0, rec.DotCount())
}

func TestBitImageUnknownDensityModeIsRecoverable(t *testing.T) {
	ip, rec := newTestInterpreter(t)
	// Mode 255 is not a recognised density; the two data bytes that
	// would have followed a valid header are just ordinary text bytes.
	require.NoError(t, run(t, ip, []byte("\x1b*\xFF\x01\x00AB")))
	assert.Equal(t, "AB", rec.Text())
}

func TestCompressedRasterLiteralThenExit(t *testing.T) {
	ip, rec := newTestInterpreter(t)
	// ESC . 2: v=0x14 h=0x14 m=1, then opcode 0x02 (3-byte literal run),
	// 0x00 0x00 0xAA, then <EXIT> 0xE5.
	require.NoError(t, run(t, ip, []byte("\x1b.\x02\x14\x14\x01\x02\x00\x00\xAA\xE5")))
	assert.Greater(t, rec.DotCount(), 0)
}

func TestBoldTogglesAcrossGlyphs(t *testing.T) {
	ip, rec := newTestInterpreter(t)
	require.NoError(t, run(t, ip, []byte("\x1bEbold\x1bFplain")))

	var sawBold, sawPlain bool
	for _, o := range rec.Ops {
		if o.kind != "text" {
			continue
		}
		if o.glyph == 'b' {
			sawBold = o.style.Bold
		}
		if o.glyph == 'p' {
			sawPlain = !o.style.Bold
		}
	}
	assert.True(t, sawBold, "expected the 'b' of \"bold\" drawn with Bold style")
	assert.True(t, sawPlain, "expected the 'p' of \"plain\" drawn without Bold style")
}

func TestAssignSlotThenSelectAndPrintPC850(t *testing.T) {
	ip, rec := newTestInterpreter(t)
	// ESC ( t 3 0 slot=1 id=3(PC850), ESC t 1 (select slot 1), then 0x80.
	require.NoError(t, run(t, ip, []byte("\x1b(t\x03\x00\x01\x03\x00\x1bt\x01\x80")))

	got := []rune(rec.Text())
	require.Len(t, got, 1)
	assert.Equal(t, 'Ç', got[0])
}

func TestRightMarginRejectedWhenNotGreaterThanLeft(t *testing.T) {
	ip, _ := newTestInterpreter(t)
	before := ip.layout.Margins()
	// ESC Q 0: right margin at column 0, which resolves to the left
	// margin itself; SetRightMargin rejects and the margin is unchanged.
	require.NoError(t, run(t, ip, []byte("\x1bQ\x00")))
	assert.Equal(t, before.Right, ip.layout.Margins().Right)
}

func TestHorizontalTabsEmptyListClearsStops(t *testing.T) {
	ip, _ := newTestInterpreter(t)
	// Install one stop, then immediately clear with an empty list.
	require.NoError(t, run(t, ip, []byte("\x1bD\x05\x00\x1bD\x00")))
	before, _ := ip.layout.PositionPoints()
	require.NoError(t, run(t, ip, []byte{ctrlHT}))
	after, _ := ip.layout.PositionPoints()
	assert.Equal(t, before, after, "no tab stops installed, HT is a no-op")
}

func TestFormFeedCountsPagesAsFormFeedsPlusOne(t *testing.T) {
	ip, rec := newTestInterpreter(t)
	require.NoError(t, run(t, ip, []byte("A\x0cB\x0cC")))
	assert.Equal(t, 3, rec.Pages)
}

func TestResetIsIdempotent(t *testing.T) {
	ip, _ := newTestInterpreter(t)
	require.NoError(t, run(t, ip, []byte("\x1b@\x1b@")))
	assert.Equal(t, float64(10), ip.typo.PitchCPI)
	assert.False(t, ip.typo.Bold)
}

func TestReservedOpcodeAfterEscIsRecoverable(t *testing.T) {
	ip, rec := newTestInterpreter(t)
	// 0x1B 0x80 is not a registered ESC selector; the dispatcher skips
	// it and resumes on the next byte.
	require.NoError(t, run(t, ip, []byte("\x1b\x80OK")))
	assert.Equal(t, "OK", rec.Text())
}

func TestTruncatedParameterBlockIsFatal(t *testing.T) {
	ip, _ := newTestInterpreter(t)
	// ESC X declares a 3-byte parameter block but the stream ends after 1.
	err := run(t, ip, []byte("\x1bX\x00"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFatalTruncation)
}

func TestDoubleWidthLineClearedByCarriageReturn(t *testing.T) {
	ip, _ := newTestInterpreter(t)
	require.NoError(t, run(t, ip, []byte{ctrlSO}))
	widened := ip.typo.Resolve(ip.condensedFallback, false)
	assert.Equal(t, 2.0, widened.HorizontalScale)

	require.NoError(t, run(t, ip, []byte{'\r'}))
	restored := ip.typo.Resolve(ip.condensedFallback, false)
	assert.Equal(t, 1.0, restored.HorizontalScale)
}
