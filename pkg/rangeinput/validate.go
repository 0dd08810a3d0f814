package rangeinput

import (
	"fmt"
	"strconv"

	"github.com/arremate/leilao-finder/pkg/types"
)

type ErrorKind int

const (
	ErrInvalidNumber ErrorKind = iota + 1
	ErrBelowMin
	ErrAboveMax
	ErrGreaterThanMax
	ErrLessThanMin
)

// ValidationError describes one field-level range violation. At most one
// error is reported per field per validation, the own-bound check winning
// over the cross-field one.
type ValidationError struct {
	Kind  ErrorKind
	Bound float64
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case ErrInvalidNumber:
		return "invalid number"
	case ErrBelowMin:
		return fmt.Sprintf("value below minimum allowed (%s)", formatBound(e.Bound))
	case ErrAboveMax:
		return fmt.Sprintf("value above maximum allowed (%s)", formatBound(e.Bound))
	case ErrGreaterThanMax:
		return "minimum greater than maximum"
	case ErrLessThanMin:
		return "maximum less than minimum"
	}
	return "invalid value"
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Validate checks one end of a range against the allowed bounds and the
// counterpart field. Empty input is always valid. Bounds are inclusive, and
// nil bounds means unbounded on both sides.
func Validate(value string, isMin bool, counterpart string, bounds *types.RangeBounds) *ValidationError {
	if value == "" {
		return nil
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return &ValidationError{Kind: ErrInvalidNumber}
	}
	other, hasOther := types.ParseBound(counterpart)
	if isMin {
		if bounds != nil && n < bounds.Min {
			return &ValidationError{Kind: ErrBelowMin, Bound: bounds.Min}
		}
		if hasOther && n > other {
			return &ValidationError{Kind: ErrGreaterThanMax, Bound: other}
		}
		return nil
	}
	if bounds != nil && n > bounds.Max {
		return &ValidationError{Kind: ErrAboveMax, Bound: bounds.Max}
	}
	if hasOther && n < other {
		return &ValidationError{Kind: ErrLessThanMin, Bound: other}
	}
	return nil
}

// Correct clamps an invalid value to the violated bound, the own bound
// taking precedence over the counterpart. Unparseable input corrects to the
// empty (unset) value.
func Correct(value string, isMin bool, counterpart string, bounds *types.RangeBounds) string {
	if value == "" {
		return ""
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return ""
	}
	other, hasOther := types.ParseBound(counterpart)
	if isMin {
		if bounds != nil && n < bounds.Min {
			return formatBound(bounds.Min)
		}
		if hasOther && n > other {
			return counterpart
		}
		return value
	}
	if bounds != nil && n > bounds.Max {
		return formatBound(bounds.Max)
	}
	if hasOther && n < other {
		return counterpart
	}
	return value
}
