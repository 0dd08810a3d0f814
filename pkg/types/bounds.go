package types

import "strconv"

// RangeBounds is the static configuration of one numeric range facet: the
// inclusive allowed bounds, the display pair representing the unfiltered
// state, and the input mode the sanitizer applies.
type RangeBounds struct {
	Min           float64
	Max           float64
	DefaultMin    string
	DefaultMax    string
	Decimal       bool
	AllowNegative bool
}

var PriceBounds = RangeBounds{
	Min:        10000,
	Max:        1000000,
	DefaultMin: "10000",
	DefaultMax: "1000000",
}

var YearBounds = RangeBounds{
	Min:        1990,
	Max:        2026,
	DefaultMin: "1990",
	DefaultMax: "2026",
}

var UsefulAreaBounds = RangeBounds{
	Min:        10,
	Max:        1000,
	DefaultMin: "10",
	DefaultMax: "1000",
	Decimal:    true,
}

// BoundsFor returns the bound configuration of a range facet, or nil for
// non-range facets.
func BoundsFor(key FacetKey) *RangeBounds {
	switch key {
	case FacetPrice:
		return &PriceBounds
	case FacetYear:
		return &YearBounds
	case FacetUsefulArea:
		return &UsefulAreaBounds
	}
	return nil
}

// SideActive reports whether one end of a range constrains anything. An
// empty value is unset, and a value equal to the configured default bound
// is treated as unset as well (the full-range default the controls use).
func (b RangeBounds) SideActive(value string, isMin bool) bool {
	if value == "" {
		return false
	}
	if isMin {
		return value != b.DefaultMin
	}
	return value != b.DefaultMax
}

// RangeActive reports whether a range facet filters anything at all.
func RangeActive(r RangeValues, b RangeBounds) bool {
	return b.SideActive(r.Min, true) || b.SideActive(r.Max, false)
}

// ParseBound parses one end of a range to a float, returning ok=false for
// empty or unparseable input.
func ParseBound(value string) (float64, bool) {
	if value == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
