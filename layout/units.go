package layout

import (
	"strconv"
	"strings"
)

// This file defines unit-safe types for spacing, font size and line height.
// Measurement backends report widths in points, so PT is the working unit.

// Unit is the unit a length value was written with in a profile.
type Unit int

const (
	UnitNone Unit = iota // unit-less numbers like factors
	UnitMM               // millimeters
	UnitCM               // centimeters
	UnitIN               // inches
	UnitPT               // points
	UnitPX               // CSS pixels (1px = 0.75pt)
	UnitEM               // multiples of the font size
)

// Conversion constants.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
	PxToPt = 0.75
)

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	case UnitPX:
		return "px"
	case UnitEM:
		return "em"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (l Length) IsZero() bool { return l.Value == 0 }

// Resolve converts the length to points. fontSize (in points) resolves em;
// unit-less values are taken as CSS pixels, like canvas letterSpacing.
func (l Length) Resolve(fontSize float64) float64 {
	switch l.Unit {
	case UnitMM:
		return l.Value * MmToPt
	case UnitCM:
		return l.Value * 10 * MmToPt
	case UnitIN:
		return l.Value * 72
	case UnitPT:
		return l.Value
	case UnitEM:
		return l.Value * fontSize
	default:
		return l.Value * PxToPt
	}
}

// ToPT converts absolute lengths to points; em is resolved against zero.
func (l Length) ToPT() float64 { return l.Resolve(0) }

// ToMM converts absolute lengths to millimeters.
func (l Length) ToMM() float64 { return l.ToPT() * PtToMm }

// ParseRawLengthStr parses a length string preserving its unit.
func ParseRawLengthStr(value string) (Length, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return Length{Value: 0, Unit: UnitNone}, nil
	}
	lower := strings.ToLower(v)
	unit := UnitNone
	num := lower
	for _, suf := range []struct {
		s string
		u Unit
	}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}, {"px", UnitPX}, {"em", UnitEM}} {
		if strings.HasSuffix(lower, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(lower, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, err
	}
	return Length{Value: f, Unit: unit}, nil
}

// LineHeightKind distinguishes factor-based vs absolute line-height specification.
type LineHeightKind int

const (
	LineHeightFactor LineHeightKind = iota
	LineHeightAbsolute
)

// LineHeightSpec keeps the author's intent: either a factor (e.g., 1.2x) or an absolute length (e.g., 18pt).
type LineHeightSpec struct {
	Kind   LineHeightKind `json:"kind"`
	Factor float64        `json:"factor,omitempty"`
	Len    Length         `json:"len,omitempty"`
}

// ParseLineHeight 解析行高：带 x 后缀或无单位的数字视为倍数，其余按长度解析。
func ParseLineHeight(value string) (LineHeightSpec, error) {
	v := strings.TrimSpace(strings.ToLower(value))
	if v == "" {
		return LineHeightSpec{Kind: LineHeightFactor, Factor: 1.4}, nil
	}
	factor := strings.TrimSuffix(v, "x")
	if f, err := strconv.ParseFloat(factor, 64); err == nil {
		return LineHeightSpec{Kind: LineHeightFactor, Factor: f}, nil
	}
	l, err := ParseRawLengthStr(v)
	if err != nil {
		return LineHeightSpec{}, err
	}
	return LineHeightSpec{Kind: LineHeightAbsolute, Len: l}, nil
}

// Resolve computes the absolute line height in points for the given font size (points).
func (s LineHeightSpec) Resolve(fontSize float64) float64 {
	switch s.Kind {
	case LineHeightFactor:
		return fontSize * s.Factor
	case LineHeightAbsolute:
		return s.Len.Resolve(fontSize)
	default:
		// fallback to 1.4x if unspecified
		return fontSize * 1.4
	}
}
