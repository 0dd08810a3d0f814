package rangeinput

import (
	"strings"

	"github.com/arremate/leilao-finder/pkg/types"
)

type Field int

const (
	FieldMin Field = iota
	FieldMax
)

// Controller owns the transient text state of one min/max range control.
// It sanitizes keystrokes, optionally validates them inline, corrects the
// value on blur and forwards every settled change to the owner. Validation
// never blocks entry: the owner always receives the latest raw string,
// valid or not.
type Controller struct {
	bounds       types.RangeBounds
	autoValidate bool
	onChange     func(types.RangeValues)
	values       types.RangeValues
	errors       [2]*ValidationError
	touched      [2]bool
}

// NewController creates a controller seeded with the current facet values.
// onChange may be nil for detached use.
func NewController(bounds types.RangeBounds, initial types.RangeValues, autoValidate bool, onChange func(types.RangeValues)) *Controller {
	return &Controller{
		bounds:       bounds,
		autoValidate: autoValidate,
		onChange:     onChange,
		values:       initial,
	}
}

func (c *Controller) Values() types.RangeValues { return c.values }

func (c *Controller) FieldError(field Field) *ValidationError { return c.errors[field] }

// Touched reports whether the user has interacted with the field since the
// controller was created or last reset.
func (c *Controller) Touched(field Field) bool { return c.touched[field] }

// HandleChange processes one keystroke worth of input: sanitize, validate
// inline when enabled, store and forward. Out-of-range text stays in the
// field so the user can keep typing.
func (c *Controller) HandleChange(field Field, raw string) {
	value := Sanitize(raw, c.bounds.Decimal, c.bounds.AllowNegative)
	c.setField(field, value)
	c.touched[field] = true
	if c.autoValidate {
		c.errors[field] = c.validateField(field)
	} else {
		c.errors[field] = nil
	}
	c.emit()
}

// HandleBlur re-validates the field and, if it is invalid, replaces it with
// the corrected value and propagates that correction upward.
func (c *Controller) HandleBlur(field Field) {
	err := c.validateField(field)
	c.errors[field] = err
	if err == nil {
		return
	}
	corrected := Correct(c.fieldValue(field), field == FieldMin, c.counterpart(field), &c.bounds)
	c.setField(field, corrected)
	c.errors[field] = c.validateField(field)
	c.emit()
}

// ResetToDefaults restores the configured default pair and notifies the
// owner exactly once, skipping the emit entirely when nothing changes.
func (c *Controller) ResetToDefaults() {
	defaults := types.RangeValues{Min: c.bounds.DefaultMin, Max: c.bounds.DefaultMax}
	c.errors = [2]*ValidationError{}
	c.touched = [2]bool{}
	if c.values == defaults {
		return
	}
	c.values = defaults
	c.emit()
}

func (c *Controller) validateField(field Field) *ValidationError {
	return Validate(c.fieldValue(field), field == FieldMin, c.counterpart(field), &c.bounds)
}

func (c *Controller) fieldValue(field Field) string {
	if field == FieldMin {
		return c.values.Min
	}
	return c.values.Max
}

func (c *Controller) counterpart(field Field) string {
	if field == FieldMin {
		return c.values.Max
	}
	return c.values.Min
}

func (c *Controller) setField(field Field, value string) {
	if field == FieldMin {
		c.values.Min = value
	} else {
		c.values.Max = value
	}
}

func (c *Controller) emit() {
	if c.onChange != nil {
		c.onChange(c.values)
	}
}

// Sanitize strips everything outside the allowed character class: digits,
// plus one decimal separator in decimal mode and a leading minus when
// negative values are allowed. A comma counts as a decimal separator and is
// normalized to a dot; extra separators collapse to the first.
func Sanitize(raw string, decimal, allowNegative bool) string {
	var b strings.Builder
	seenSeparator := false
	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case decimal && (r == '.' || r == ','):
			if !seenSeparator {
				b.WriteByte('.')
				seenSeparator = true
			}
		case r == '-' && allowNegative && i == 0:
			b.WriteByte('-')
		}
	}
	return b.String()
}

// FormatDisplay renders a value for presentation with thousands grouping.
// It is display only and never fed back into the controller while the user
// is typing.
func FormatDisplay(value string) string {
	intPart := value
	fraction := ""
	if idx := strings.IndexByte(value, '.'); idx >= 0 {
		intPart = value[:idx]
		fraction = value[idx:]
	}
	negative := strings.HasPrefix(intPart, "-")
	if negative {
		intPart = intPart[1:]
	}
	if len(intPart) <= 3 {
		if negative {
			return "-" + intPart + fraction
		}
		return intPart + fraction
	}
	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(intPart[i : i+3])
	}
	out := b.String() + fraction
	if negative {
		return "-" + out
	}
	return out
}
