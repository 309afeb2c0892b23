package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doswriter/escp2pdf/internal/surface"
	"github.com/doswriter/escp2pdf/internal/units"
)

func defaultDefaults() Defaults {
	return Defaults{
		Paper:       Paper{WidthPt: 612, HeightPt: 792},
		Margins:     Margins{Top: 0, Bottom: units.Subunit(792 / 72.0 * float64(units.PerInch)), Left: 0, Right: units.Subunit(612 / 72.0 * float64(units.PerInch))},
		LineSpacing: units.FromInchFraction(1, 6),
		DefinedUnit: units.FromInchFraction(1, 60),
	}
}

func TestNewEngineOpensFirstPage(t *testing.T) {
	rec := surface.NewRecorder()
	NewEngine(rec, defaultDefaults())
	assert.Equal(t, 1, rec.Pages)
}

func TestLineFeedAdvancesYAndKeepsX(t *testing.T) {
	rec := surface.NewRecorder()
	e := NewEngine(rec, defaultDefaults())
	e.Advance(units.FromInchFraction(1, 10))
	xBefore := e.Position().X
	e.LineFeed()
	assert.Equal(t, xBefore, e.Position().X, "LF must not move X")
	assert.Equal(t, e.LineSpacing(), e.Position().Y)
}

func TestLineFeedOverflowTriggersImplicitFormFeed(t *testing.T) {
	rec := surface.NewRecorder()
	d := defaultDefaults()
	d.Margins.Bottom = d.LineSpacing // only room for one LF
	e := NewEngine(rec, d)

	e.LineFeed() // lands exactly on the bottom margin
	require.Equal(t, 1, rec.Pages)
	e.LineFeed() // must overflow now
	assert.Equal(t, 2, rec.Pages)
	assert.Equal(t, e.Margins().Top, e.Position().Y)
}

func TestCarriageReturnResetsX(t *testing.T) {
	rec := surface.NewRecorder()
	e := NewEngine(rec, defaultDefaults())
	e.Advance(units.FromInchFraction(1, 10))
	e.CarriageReturn()
	assert.Equal(t, e.Margins().Left, e.Position().X)
}

func TestAutomaticLinefeedOnCR(t *testing.T) {
	rec := surface.NewRecorder()
	d := defaultDefaults()
	d.AutomaticLinefeed = true
	e := NewEngine(rec, d)
	yBefore := e.Position().Y
	e.CarriageReturn()
	assert.Greater(t, e.Position().Y, yBefore)
}

func TestFormFeedEmitsPageAndResetsPosition(t *testing.T) {
	rec := surface.NewRecorder()
	e := NewEngine(rec, defaultDefaults())
	e.Advance(units.FromInchFraction(1, 10))
	e.LineFeed()
	e.FormFeed()
	assert.Equal(t, 2, rec.Pages)
	assert.Equal(t, e.Margins().Left, e.Position().X)
	assert.Equal(t, e.Margins().Top, e.Position().Y)
}

func TestHorizontalTabNoStopIsNoOp(t *testing.T) {
	rec := surface.NewRecorder()
	e := NewEngine(rec, defaultDefaults())
	xBefore := e.Position().X
	e.HorizontalTab()
	assert.Equal(t, xBefore, e.Position().X)
}

func TestHorizontalTabMovesToNextStop(t *testing.T) {
	rec := surface.NewRecorder()
	e := NewEngine(rec, defaultDefaults())
	e.SetHorizontalTabs([]units.Subunit{units.FromInchFraction(1, 2), units.FromInchFraction(1, 1)})
	e.HorizontalTab()
	assert.Equal(t, units.FromInchFraction(1, 2), e.Position().X)
	e.HorizontalTab()
	assert.Equal(t, units.FromInchFraction(1, 1), e.Position().X)
	e.HorizontalTab() // no further stop
	assert.Equal(t, units.FromInchFraction(1, 1), e.Position().X)
}

func TestVerticalTabFallsBackToLineFeed(t *testing.T) {
	rec := surface.NewRecorder()
	e := NewEngine(rec, defaultDefaults())
	yBefore := e.Position().Y
	e.VerticalTab()
	assert.Equal(t, yBefore+e.LineSpacing(), e.Position().Y)
}

func TestSetHorizontalTabsOutOfOrderTruncates(t *testing.T) {
	rec := surface.NewRecorder()
	e := NewEngine(rec, defaultDefaults())
	e.SetHorizontalTabs([]units.Subunit{10, 20, 15, 30})
	e.HorizontalTab()
	assert.Equal(t, units.Subunit(10), e.Position().X)
	e.HorizontalTab()
	assert.Equal(t, units.Subunit(20), e.Position().X)
	e.HorizontalTab() // 15 and 30 never registered
	assert.Equal(t, units.Subunit(20), e.Position().X)
}

func TestSetHorizontalTabsEmptyClearsAll(t *testing.T) {
	rec := surface.NewRecorder()
	e := NewEngine(rec, defaultDefaults())
	e.SetHorizontalTabs([]units.Subunit{10, 20})
	e.SetHorizontalTabs(nil)
	xBefore := e.Position().X
	e.HorizontalTab()
	assert.Equal(t, xBefore, e.Position().X)
}

func TestSetLineSpacingRejectsNonPositive(t *testing.T) {
	rec := surface.NewRecorder()
	e := NewEngine(rec, defaultDefaults())
	before := e.LineSpacing()
	e.SetLineSpacing(0)
	assert.Equal(t, before, e.LineSpacing())
	e.SetLineSpacing(-5)
	assert.Equal(t, before, e.LineSpacing())
}

func TestSetRightMarginRejectsInvertedOrder(t *testing.T) {
	rec := surface.NewRecorder()
	e := NewEngine(rec, defaultDefaults())
	err := e.SetRightMargin(e.Margins().Left - 1)
	assert.Error(t, err)
}

func TestSetLeftMarginSnapsPosition(t *testing.T) {
	rec := surface.NewRecorder()
	e := NewEngine(rec, defaultDefaults())
	e.Advance(units.FromInchFraction(1, 4))
	require.NoError(t, e.SetLeftMargin(units.FromInchFraction(1, 2)))
	assert.Equal(t, units.FromInchFraction(1, 2), e.Position().X)
}

func TestMoveHorizontalAbsoluteAndRelative(t *testing.T) {
	rec := surface.NewRecorder()
	e := NewEngine(rec, defaultDefaults())
	e.MoveHorizontalAbsolute(60) // 60 * (1/60 inch) = 1 inch
	assert.Equal(t, units.PerInch, e.Position().X)
	e.MoveHorizontalRelative(-30)
	assert.Equal(t, units.PerInch/2, e.Position().X)
}

func TestResetReinitialisesWithoutNewPageCall(t *testing.T) {
	rec := surface.NewRecorder()
	e := NewEngine(rec, defaultDefaults())
	e.Advance(units.FromInchFraction(1, 2))
	e.LineFeed()
	pagesBefore := rec.Pages
	e.Reset(defaultDefaults())
	assert.Equal(t, pagesBefore, rec.Pages, "ESC @ must not force a page break")
	assert.Equal(t, e.Margins().Left, e.Position().X)
	assert.Equal(t, e.Margins().Top, e.Position().Y)
}
