package typography

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultState(t *testing.T) {
	s := Default()
	assert.Equal(t, 10.0, s.PitchCPI)
	assert.Equal(t, 10.5, s.PointSize)
	assert.False(t, s.Bold)
}

func TestSetPitchUpdatesDefaultPointSize(t *testing.T) {
	s := Default()
	s.SetPitch(15)
	assert.Equal(t, 8.0, s.PointSize)
	s.SetPitch(12)
	assert.Equal(t, 10.5, s.PointSize)
}

func TestExplicitPointSizeOverridesPitchDefault(t *testing.T) {
	s := Default()
	s.SetExplicitPointSize(24, 10)
	assert.Equal(t, 24.0, s.PointSize)
	s.SetPitch(15) // pitch changes but explicit size should stick
	assert.Equal(t, 24.0, s.PointSize)
}

func TestCondensedHalvesHorizontalScale(t *testing.T) {
	s := Default()
	s.Condensed = true
	res := s.Resolve(CondensedFallbackYes, false)
	assert.Equal(t, 0.5, res.HorizontalScale)
}

func TestCondensedDefersToFontVariant(t *testing.T) {
	s := Default()
	s.Condensed = true
	res := s.Resolve(CondensedFallbackAuto, true)
	assert.Equal(t, 1.0, res.HorizontalScale)
}

func TestDoubleWidthAndHeight(t *testing.T) {
	s := Default()
	s.DoubleWidth = true
	s.DoubleHeight = true
	res := s.Resolve(CondensedFallbackYes, false)
	assert.Equal(t, 2.0, res.HorizontalScale)
	assert.Equal(t, 2.0, res.VerticalScale)
}

func TestSuperscriptShiftsBaselineUp(t *testing.T) {
	s := Default()
	s.SetScripting(ScriptSuper)
	res := s.Resolve(CondensedFallbackYes, false)
	assert.InDelta(t, 2.0/3.0, res.HorizontalScale, 1e-9)
	assert.Less(t, res.BaselineShift, 0.0)
}

func TestSubscriptShiftsBaselineDown(t *testing.T) {
	s := Default()
	s.SetScripting(ScriptSub)
	res := s.Resolve(CondensedFallbackYes, false)
	assert.Greater(t, res.BaselineShift, 0.0)
}

func TestDoubleWidthLineClearedBySideEffect(t *testing.T) {
	s := Default()
	s.SetDoubleWidthLine(true)
	res := s.Resolve(CondensedFallbackYes, false)
	assert.Equal(t, 2.0, res.HorizontalScale)
	s.ClearDoubleWidthLine()
	res = s.Resolve(CondensedFallbackYes, false)
	assert.Equal(t, 1.0, res.HorizontalScale)
}

func TestMasterSelectAppliesSevenFlagsAtomically(t *testing.T) {
	s := Default()
	s.ApplyMasterSelect(MasterSelectBits{
		Elite: true, Condensed: true, Bold: true, Italic: true, Underline: true, DoubleWidth: true,
	})
	assert.Equal(t, 12.0, s.PitchCPI)
	assert.True(t, s.Condensed)
	assert.True(t, s.Bold)
	assert.True(t, s.Italic)
	assert.True(t, s.Underline)
	assert.True(t, s.DoubleWidth)
	assert.False(t, s.DoubleHeight)
}

func TestFixedPitchAdvanceIgnoredWhenProportional(t *testing.T) {
	s := Default()
	s.SetProportional(true)
	res := s.Resolve(CondensedFallbackYes, false)
	assert.Equal(t, 0.0, res.AdvanceInches)
}

func TestFixedPitchAdvance(t *testing.T) {
	s := Default()
	s.SetPitch(10)
	res := s.Resolve(CondensedFallbackYes, false)
	assert.InDelta(t, 0.1, res.AdvanceInches, 1e-9)
}
