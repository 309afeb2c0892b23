// Package layout holds the printer geometry — paper, margins, current
// print position, tab stops, line spacing, units — and converts logical
// print operations (LF, CR, FF, HT/VT, absolute/relative moves) into
// absolute page coordinates. Every position is kept in units.Subunit
// (1/3600 inch); conversion to PDF points happens only when talking to
// the Surface.
package layout

import (
	"sort"

	"github.com/doswriter/escp2pdf/internal/surface"
	"github.com/doswriter/escp2pdf/internal/units"
)

// Paper describes the physical sheet: size and feed mode.
type Paper struct {
	WidthPt, HeightPt float64
	SingleSheet       bool
}

// Margins bounds the printable area, in subunits, relative to the top
// left of the physical sheet.
type Margins struct {
	Top, Bottom, Left, Right units.Subunit
}

// Position is the current print position, in the same sheet-relative
// coordinates as Margins: the top-left of the printable area is
// (Margins.Left, Margins.Top).
type Position struct {
	X, Y units.Subunit
}

// Defaults mirrors the configuration-driven defaults a printer state is
// constructed with.
type Defaults struct {
	Paper             Paper
	Margins           Margins
	LineSpacing       units.Subunit
	DefinedUnit       units.Subunit
	AutomaticLinefeed bool
}

// Engine is the layout subsystem: paper geometry, margins, current
// position and tab stops.
type Engine struct {
	surface surface.Surface

	paper             Paper
	margins           Margins
	pos               Position
	lineSpacing       units.Subunit
	definedUnit       units.Subunit
	automaticLinefeed bool
	hTabs             []units.Subunit
	vTabs             []units.Subunit

	pageOpen bool
}

// NewEngine constructs an Engine with the given defaults, opening the
// first page on the surface.
func NewEngine(s surface.Surface, d Defaults) *Engine {
	e := &Engine{surface: s}
	e.Reset(d)
	return e
}

// Reset reinitialises geometry to d — what ESC @ does — without closing
// the current page.
func (e *Engine) Reset(d Defaults) {
	e.paper = d.Paper
	e.margins = d.Margins
	e.lineSpacing = d.LineSpacing
	if e.lineSpacing <= 0 {
		e.lineSpacing = units.FromInchFraction(1, 6)
	}
	e.definedUnit = d.DefinedUnit
	if e.definedUnit <= 0 {
		e.definedUnit = units.FromInchFraction(1, 60)
	}
	e.automaticLinefeed = d.AutomaticLinefeed
	e.hTabs = nil
	e.vTabs = nil
	e.pos = Position{X: e.margins.Left, Y: e.margins.Top}
	if !e.pageOpen {
		e.newPage()
	}
}

func (e *Engine) newPage() {
	e.surface.NewPage(e.paper.WidthPt, e.paper.HeightPt)
	e.pageOpen = true
}

// Position returns the current print position.
func (e *Engine) Position() Position { return e.pos }

// Margins returns the current printable-area bounds.
func (e *Engine) Margins() Margins { return e.margins }

// LineSpacing returns the current vertical advance of one LF.
func (e *Engine) LineSpacing() units.Subunit { return e.lineSpacing }

// DefinedUnit returns the unit absolute-positioning commands use.
func (e *Engine) DefinedUnit() units.Subunit { return e.definedUnit }

// SetAutomaticLinefeed toggles whether CR also performs LF.
func (e *Engine) SetAutomaticLinefeed(on bool) { e.automaticLinefeed = on }

// clampToMargins keeps the position within [left,right] x [top,bottom].
func (e *Engine) clampToMargins() {
	e.pos.X = units.Clamp(e.pos.X, e.margins.Left, e.margins.Right)
	e.pos.Y = units.Clamp(e.pos.Y, e.margins.Top, e.margins.Bottom)
}

// LineFeed advances Y by the current line spacing. If the new Y exceeds
// the bottom margin, an implicit form feed is performed (new page, Y
// reset to top); X is never touched by LF.
func (e *Engine) LineFeed() {
	e.pos.Y += e.lineSpacing
	if e.pos.Y > e.margins.Bottom {
		e.newPage()
		e.pos.Y = e.margins.Top
	}
}

// CarriageReturn sets X to the left margin, and additionally performs a
// LineFeed if automatic-linefeed mode is configured.
func (e *Engine) CarriageReturn() {
	e.pos.X = e.margins.Left
	if e.automaticLinefeed {
		e.LineFeed()
	}
}

// FormFeed performs an implicit CR, emits a new page and resets Y to
// the top margin.
func (e *Engine) FormFeed() {
	e.pos.X = e.margins.Left
	e.newPage()
	e.pos.Y = e.margins.Top
}

// HorizontalTab moves X to the smallest stop strictly greater than the
// current X; if none exists, it is a no-op.
func (e *Engine) HorizontalTab() {
	if stop, ok := nextStop(e.hTabs, e.pos.X); ok {
		e.pos.X = stop
	}
}

// VerticalTab moves Y to the smallest stop strictly greater than the
// current Y; if none exists, it acts as LineFeed.
func (e *Engine) VerticalTab() {
	if stop, ok := nextStop(e.vTabs, e.pos.Y); ok {
		e.pos.Y = stop
		return
	}
	e.LineFeed()
}

func nextStop(stops []units.Subunit, cur units.Subunit) (units.Subunit, bool) {
	for _, s := range stops {
		if s > cur {
			return s, true
		}
	}
	return 0, false
}

// Backspace moves X left by delta (the width of one character, computed
// by the typography subsystem), clamped to the left margin.
func (e *Engine) Backspace(delta units.Subunit) {
	e.pos.X = units.Clamp(e.pos.X-delta, e.margins.Left, e.margins.Right)
}

// Advance moves X right by delta (a glyph's advance width), wrapping by
// an implicit CR+LF on horizontal overflow rather than clamping.
func (e *Engine) Advance(delta units.Subunit) {
	e.pos.X += delta
	if e.pos.X > e.margins.Right {
		e.CarriageReturn()
		e.LineFeed()
	}
}

// AdvanceGraphics moves X right by delta without the implicit CR+LF
// wrap or margin clamping that text advances use: a bit-image or raster
// column run is allowed to extend past the right margin, the way a
// physical print head does.
func (e *Engine) AdvanceGraphics(delta units.Subunit) {
	e.pos.X += delta
}

// MoveHorizontalAbsolute implements ESC $ absolute horizontal
// positioning, n expressed in the current defined unit, relative to the
// left margin.
func (e *Engine) MoveHorizontalAbsolute(n int) {
	e.pos.X = units.Clamp(e.margins.Left+units.Subunit(n)*e.definedUnit, e.margins.Left, e.margins.Right)
}

// MoveHorizontalRelative implements ESC \, n signed, in the current
// defined unit.
func (e *Engine) MoveHorizontalRelative(n int) {
	e.pos.X = units.Clamp(e.pos.X+units.Subunit(n)*e.definedUnit, e.margins.Left, e.margins.Right)
}

// MoveVerticalAbsolute implements ESC ( V, n in the defined unit,
// relative to the top margin.
func (e *Engine) MoveVerticalAbsolute(n int) {
	e.pos.Y = units.Clamp(e.margins.Top+units.Subunit(n)*e.definedUnit, e.margins.Top, e.margins.Bottom)
}

// MoveVerticalRelative implements ESC ( v / ESC J, n signed units of
// 1/180 inch for ESC J, or the defined unit for ESC ( v — callers pass
// the already-resolved subunit delta.
func (e *Engine) MoveVerticalRelative(delta units.Subunit) {
	e.pos.Y = units.Clamp(e.pos.Y+delta, e.margins.Top, e.margins.Bottom)
}

// SetLineSpacing sets the vertical advance of one LF. A zero-or-negative
// request is rejected silently; the prior value is kept.
func (e *Engine) SetLineSpacing(s units.Subunit) {
	if s <= 0 {
		return
	}
	e.lineSpacing = s
}

// SetDefinedUnit implements ESC ( U.
func (e *Engine) SetDefinedUnit(n int) error {
	su, err := units.DefinedUnit(n)
	if err != nil {
		return err
	}
	e.definedUnit = su
	return nil
}

// SetHorizontalTabs implements ESC D: an ascending sequence of stops (in
// character-pitch units, pre-converted to subunits by the caller),
// terminated by a zero value in the source byte stream. A descending
// value in the middle of the list terminates the sequence early (the
// values after it are ignored).
func (e *Engine) SetHorizontalTabs(stops []units.Subunit) {
	e.hTabs = ascendingPrefix(stops)
}

// SetVerticalTabs implements ESC B, symmetric to SetHorizontalTabs.
func (e *Engine) SetVerticalTabs(stops []units.Subunit) {
	e.vTabs = ascendingPrefix(stops)
}

func ascendingPrefix(stops []units.Subunit) []units.Subunit {
	out := make([]units.Subunit, 0, len(stops))
	var prev units.Subunit = -1
	for _, s := range stops {
		if s <= prev {
			break
		}
		out = append(out, s)
		prev = s
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SetLeftMargin implements part of ESC l / ESC Q. Moving the left
// margin past the current X snaps X to the new margin.
func (e *Engine) SetLeftMargin(x units.Subunit) error {
	if x >= e.margins.Right {
		return errMarginOrder
	}
	e.margins.Left = x
	e.clampToMargins()
	return nil
}

// SetRightMargin implements ESC Q.
func (e *Engine) SetRightMargin(x units.Subunit) error {
	if x <= e.margins.Left {
		return errMarginOrder
	}
	e.margins.Right = x
	e.clampToMargins()
	return nil
}

// SetTopMargin implements ESC ( c's top parameter.
func (e *Engine) SetTopMargin(y units.Subunit) {
	if y > e.paper.HeightPt2Subunit() {
		y = e.paper.HeightPt2Subunit()
	}
	e.margins.Top = y
	e.clampToMargins()
}

// SetBottomMargin implements ESC ( c's bottom parameter / ESC N.
func (e *Engine) SetBottomMargin(y units.Subunit) {
	if max := e.paper.HeightPt2Subunit(); y > max {
		y = max
	}
	e.margins.Bottom = y
	e.clampToMargins()
}

// CancelBottomMargin implements ESC O: bottom margin reverts to the
// paper's physical bottom edge.
func (e *Engine) CancelBottomMargin() {
	e.margins.Bottom = e.paper.HeightPt2Subunit()
}

// SetPageLength implements ESC C (paper length in lines) and ESC ( C
// (paper length in the defined unit): both resize the page and are
// funnelled through here after the dispatcher converts to subunits.
func (e *Engine) SetPageLength(heightSub units.Subunit) {
	e.paper.HeightPt = heightSub.Points()
	if e.margins.Bottom > heightSub {
		e.margins.Bottom = heightSub
	}
}

// HeightPt2Subunit converts the paper's height back to subunits, for
// margin clamping against the physical page.
func (p Paper) HeightPt2Subunit() units.Subunit {
	return units.Subunit(p.HeightPt / units.PointsPerInch * float64(units.PerInch))
}

// PositionPoints converts the current position to PDF points, the unit
// the drawing surface expects.
func (e *Engine) PositionPoints() (x, y float64) {
	return e.pos.X.Points(), e.pos.Y.Points()
}

var errMarginOrder = marginOrderError{}

type marginOrderError struct{}

func (marginOrderError) Error() string {
	return "layout: left margin must be strictly less than right margin"
}
