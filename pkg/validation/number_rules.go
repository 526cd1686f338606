package validation

import (
	"fmt"

	"github.com/githubnext/fieldcheck/pkg/constraint"
	"github.com/githubnext/fieldcheck/pkg/numconv"
)

// NumberRules constrain the numeric reading of a value. Strings are parsed as
// numeric literals ("7", " 0x1F ", "1e3"); text that is not a number reads as
// NaN, which fails Equals and Enum but is not compared against the range or
// multipleOf rules.
type NumberRules struct {
	Equals           *float64
	MultipleOf       *float64
	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum *float64
	ExclusiveMaximum *float64
	// Enum requires the value to be one of these numbers when non-empty.
	Enum []float64
}

func (r *NumberRules) constraints() constraint.Number {
	return constraint.Number{
		Const:            r.Equals,
		Enum:             r.Enum,
		MultipleOf:       r.MultipleOf,
		Minimum:          r.Minimum,
		Maximum:          r.Maximum,
		ExclusiveMinimum: r.ExclusiveMinimum,
		ExclusiveMaximum: r.ExclusiveMaximum,
	}
}

func (r *NumberRules) validate(value any) (string, error) {
	set := r.constraints()
	if set.Empty() {
		return "", nil
	}

	n := numconv.FromValue(value)
	violations, err := set.Check(n)
	if err != nil {
		return "", fmt.Errorf("number rules: %w", err)
	}
	if len(violations) > 0 {
		return fmt.Sprintf("'%s' %s", numconv.Format(n), violations[0].Message), nil
	}
	return "", nil
}
