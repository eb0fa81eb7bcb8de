// Package glucose provides unit conversion and range validation for
// blood-glucose measurements.
package glucose

import (
	"errors"
	"fmt"
	"math"
)

// Unit is a blood-glucose measurement unit.
type Unit string

const (
	// UnitMgDl is milligrams per deciliter, the conventional unit in the US
	// and the canonical storage unit for this service.
	UnitMgDl Unit = "mg/dL"
	// UnitMmolL is millimoles per liter, the conventional unit elsewhere.
	UnitMmolL Unit = "mmol/L"
)

// ConversionFactor is the fixed clinical constant: 1 mmol/L = 18.018 mg/dL.
const ConversionFactor = 18.018

// Validation bounds. The mg/dL range is authoritative; the mmol/L bounds
// are the converted mg/dL bounds kept as literals so they cannot drift
// from rounding differences.
const (
	MinMgDl  = 50.0
	MaxMgDl  = 500.0
	MinMmolL = 2.8
	MaxMmolL = 27.8
)

// ErrInvalidUnit is returned when a unit token is not mg/dL or mmol/L.
var ErrInvalidUnit = errors.New("unsupported blood glucose unit")

// ParseUnit converts a unit token into a Unit, rejecting anything outside
// the closed {mg/dL, mmol/L} set.
func ParseUnit(s string) (Unit, error) {
	switch Unit(s) {
	case UnitMgDl:
		return UnitMgDl, nil
	case UnitMmolL:
		return UnitMmolL, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidUnit, s)
	}
}

// Valid reports whether u is one of the two recognized units.
func (u Unit) Valid() bool {
	return u == UnitMgDl || u == UnitMmolL
}

func (u Unit) String() string { return string(u) }

// MgDlToMmolL converts a mg/dL value to mmol/L, rounded to one decimal
// place to match clinical display convention.
func MgDlToMmolL(v float64) float64 {
	return math.Round(v/ConversionFactor*10) / 10
}

// MmolLToMgDl converts a mmol/L value to mg/dL, rounded to the nearest
// whole number since mg/dL readings are displayed as integers.
func MmolLToMgDl(v float64) float64 {
	return math.Round(v * ConversionFactor)
}

// Convert converts a value between units. Conversion is identity when the
// units match. Conversions are lossy: round-tripping mg/dL to mmol/L and
// back is not guaranteed to reproduce the original value.
func Convert(v float64, from, to Unit) (float64, error) {
	if !from.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidUnit, from)
	}
	if !to.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidUnit, to)
	}
	if from == to {
		return v, nil
	}
	if from == UnitMgDl {
		return MgDlToMmolL(v), nil
	}
	return MmolLToMgDl(v), nil
}

// ValidationRange returns the (min, max) acceptable reading for the given
// unit. Unknown units fall back to the mg/dL range.
func ValidationRange(u Unit) (min, max float64) {
	if u == UnitMmolL {
		return MinMmolL, MaxMmolL
	}
	return MinMgDl, MaxMgDl
}

// InRange reports whether a reading is within the validation range for
// its unit.
func InRange(v float64, u Unit) bool {
	min, max := ValidationRange(u)
	return v >= min && v <= max
}

// FormatValue renders a reading with its unit, e.g. "120.0 mg/dL".
func FormatValue(v float64, u Unit) string {
	return fmt.Sprintf("%.1f %s", v, u)
}
