// Package typography holds the set of style attributes a command stream
// can select (typeface, pitch, point-size, bold/italic/underline/strike
// /score, super/subscript, double-width/height, condensed,
// proportional) and resolves them into a concrete font handle and
// transform at draw time. Toggles are applied additively as commands
// arrive and resolved to a concrete font/scale/baseline only when a
// glyph is actually drawn.
package typography

import (
	"github.com/doswriter/escp2pdf/internal/surface"
)

// ScoreStyle selects which of underline/strikeout/overscore the ESC ( -
// three-line-score command currently targets.
type ScoreStyle int

const (
	ScoreNone ScoreStyle = iota
	ScoreUnderline
	ScoreStrikeout
	ScoreOverscore
)

// Scripting selects super/subscript, mutually exclusive.
type Scripting int

const (
	ScriptNone Scripting = iota
	ScriptSuper
	ScriptSub
)

// FontResolver is the external collaborator: given a fully-resolved
// typeface/pitch/size/style it returns a drawable font handle.
type FontResolver interface {
	Resolve(typefaceID int, proportional bool, pointSize float64, style surface.FontStyle) (surface.Font, error)
}

// State tracks the typeface, size and style toggles currently in effect.
type State struct {
	TypefaceID     int
	Proportional   bool
	PitchCPI       float64
	PointSize      float64
	explicitPoint  bool
	Bold           bool
	Italic         bool
	Underline      bool
	Strikeout      bool
	Overscore      bool
	DoubleStrike   bool
	Superscript    bool
	Subscript      bool
	Condensed      bool
	DoubleWidth    bool // persistent, ESC W
	doubleWidthSO  bool // one-line, SO
	DoubleHeight   bool
	InterCharSpace float64 // inches
	Score          ScoreStyle
}

// CondensedFallback controls whether Condensed simulates a 0.5x
// horizontal scale (the font resolver has no condensed variant) or
// defers entirely to the resolver's own condensed font.
type CondensedFallback int

const (
	CondensedFallbackYes CondensedFallback = iota
	CondensedFallbackAuto
)

// Default returns the ESC @ reset state: typeface 0 (Roman), fixed
// 10 cpi, no style bits set.
func Default() State {
	return State{
		TypefaceID: 0,
		PitchCPI:   10,
		PointSize:  10.5,
	}
}

// Reset restores s to Default(), what ESC @ does to typography.
func (s *State) Reset() { *s = Default() }

// SetPitch implements ESC P (10cpi)/ESC M (12cpi)/ESC g (15cpi): each
// selects both a pitch and its default point size unless an explicit
// ESC X point size is active.
func (s *State) SetPitch(cpi float64) {
	s.PitchCPI = cpi
	s.Proportional = false
	if !s.explicitPoint {
		s.PointSize = defaultPointForPitch(cpi)
	}
}

func defaultPointForPitch(cpi float64) float64 {
	switch {
	case cpi == 15:
		return 8
	case cpi == 12, cpi == 10:
		return 10.5
	default:
		return 10.5
	}
}

// SetProportional implements ESC p 1.
func (s *State) SetProportional(on bool) {
	s.Proportional = on
}

// SetExplicitPointSize implements ESC X, overriding both pitch-derived
// point size and (when pitch==0) selecting proportional spacing.
func (s *State) SetExplicitPointSize(pt float64, cpi float64) {
	if cpi > 0 {
		s.PitchCPI = cpi
		s.Proportional = false
	} else {
		s.Proportional = true
	}
	if pt > 0 {
		s.PointSize = pt
		s.explicitPoint = true
	}
}

// MasterSelectBits is the decoded ESC ! bitmask: bit0 elite (12 cpi,
// otherwise 10 cpi), then seven print-mode flags: bit1 proportional,
// bit2 condensed, bit3 bold, bit4 double-strike, bit5 double-width,
// bit6 italic, bit7 underline.
type MasterSelectBits struct {
	Elite, Condensed, Proportional, Bold, DoubleStrike, DoubleWidth, Italic, Underline bool
}

// ApplyMasterSelect implements ESC !.
func (s *State) ApplyMasterSelect(b MasterSelectBits) {
	if b.Elite {
		s.SetPitch(12)
	} else {
		s.SetPitch(10)
	}
	s.Condensed = b.Condensed
	s.Proportional = b.Proportional
	s.Bold = b.Bold
	s.DoubleStrike = b.DoubleStrike
	s.DoubleWidth = b.DoubleWidth
	s.Italic = b.Italic
	s.Underline = b.Underline
}

// SetDoubleWidthLine implements SO (one-line double width), cleared by
// the next CR, LF or DC4.
func (s *State) SetDoubleWidthLine(on bool) { s.doubleWidthSO = on }

// ClearDoubleWidthLine implements the CR/LF/DC4 side effect.
func (s *State) ClearDoubleWidthLine() { s.doubleWidthSO = false }

// SetScripting implements ESC S (super/subscript) / ESC T (cancel).
func (s *State) SetScripting(sc Scripting) {
	s.Superscript = sc == ScriptSuper
	s.Subscript = sc == ScriptSub
}

// Resolution is what Resolve returns: the concrete font request plus
// the scale/shift to apply at the drawing surface.
type Resolution struct {
	PointSize              float64
	HorizontalScale        float64
	VerticalScale          float64
	BaselineShift          float64 // positive moves down, in points
	Style                  surface.FontStyle
	AdvanceInches          float64 // fixed-pitch step, ignored when Proportional
}

// Resolve folds every toggle currently set into a concrete font
// request, scale factors and baseline shift.
func (s *State) Resolve(condensedFallback CondensedFallback, fontHasCondensedVariant bool) Resolution {
	hScale, vScale := 1.0, 1.0

	if s.Condensed && !(fontHasCondensedVariant && condensedFallback != CondensedFallbackYes) {
		hScale *= 0.5
	}
	if s.DoubleWidth || s.doubleWidthSO {
		hScale *= 2
	}
	if s.DoubleHeight {
		vScale *= 2
	}

	baseline := 0.0
	if s.Superscript || s.Subscript {
		hScale *= 2.0 / 3.0
		vScale *= 2.0 / 3.0
		shift := s.PointSize / 3
		if s.Subscript {
			baseline = shift
		} else {
			baseline = -shift
		}
	}

	style := surface.FontStyle{
		Bold:      s.Bold,
		Italic:    s.Italic,
		Underline: s.Underline,
		Strikeout: s.Strikeout,
		Overscore: s.Overscore,
	}

	res := Resolution{
		PointSize:       s.PointSize,
		HorizontalScale: hScale,
		VerticalScale:   vScale,
		BaselineShift:   baseline,
		Style:           style,
	}
	if !s.Proportional {
		res.AdvanceInches = 1 / s.PitchCPI
	}
	return res
}
