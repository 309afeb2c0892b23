// Package units implements the printer's common coordinate system: every
// position, margin and tab stop is normalised to 1/3600-inch subunits
// before it is stored, so that ESC/P's many denominators (60, 72, 120,
// 180, 360...) combine with exact integer arithmetic. Stored positions
// stay integer; they become floating point only at the PDF-point
// boundary (Points below).
package units

import "fmt"

// Subunit is a length expressed in 1/3600 of an inch, the least common
// multiple of every ESC/P unit denominator used by the command set.
type Subunit int64

// PerInch is the number of Subunit in one inch.
const PerInch Subunit = 3600

// PointsPerInch is the PDF drawing surface's unit (1/72 inch).
const PointsPerInch = 72

// FromInchFraction builds a Subunit from n, where the caller's unit is
// 1/denom inch (e.g. FromInchFraction(1, 180) is one 1/180-inch dot).
func FromInchFraction(n int, denom int) Subunit {
	if denom <= 0 {
		return 0
	}
	return Subunit(n) * PerInch / Subunit(denom)
}

// FromMillimeters converts a millimeter measurement to Subunit, rounding
// to the nearest subunit.
func FromMillimeters(mm float64) Subunit {
	return Subunit(mm/25.4*float64(PerInch) + 0.5)
}

// Points converts a Subunit length to PDF points (1/72 inch), the unit
// the external drawing surface expects.
func (s Subunit) Points() float64 {
	return float64(s) * PointsPerInch / float64(PerInch)
}

// DotsPerInch returns how many Subunit correspond to one dot at the
// given dots-per-inch density.
func DotsPerInch(dpi int) Subunit {
	if dpi <= 0 {
		return 0
	}
	return PerInch / Subunit(dpi)
}

// DefinedUnitDenominators are the values n accepted by ESC ( U, each
// selecting a defined-unit of 3600/n subunits.
var DefinedUnitDenominators = []int{5, 10, 20, 30, 40, 50, 60}

// DefinedUnit returns the Subunit-per-defined-unit value for one of the
// n values ESC ( U accepts, or an error if n is not one of them.
func DefinedUnit(n int) (Subunit, error) {
	for _, d := range DefinedUnitDenominators {
		if d == n {
			return PerInch / Subunit(n), nil
		}
	}
	return 0, fmt.Errorf("units: unsupported defined-unit denominator %d", n)
}

// Clamp returns v bounded to [lo, hi]. If hi < lo, lo is returned.
func Clamp(v, lo, hi Subunit) Subunit {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
