package constraint

import (
	"fmt"
	"slices"
	"strings"

	"github.com/githubnext/fieldcheck/pkg/numconv"
)

// Number holds the rules that apply to a numeric value. A nil field is not
// checked; Enum is only checked when it has at least one member.
type Number struct {
	Const            *float64
	Enum             []float64
	MultipleOf       *float64
	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum *float64
	ExclusiveMaximum *float64
}

func (n Number) document() map[string]any {
	doc := make(map[string]any)
	if n.Const != nil {
		doc["const"] = number(*n.Const)
	}
	if len(n.Enum) > 0 {
		enum := make([]any, len(n.Enum))
		for i, v := range n.Enum {
			enum[i] = number(v)
		}
		doc["enum"] = enum
	}
	if n.MultipleOf != nil {
		doc["multipleOf"] = number(*n.MultipleOf)
	}
	if n.Minimum != nil {
		doc["minimum"] = number(*n.Minimum)
	}
	if n.Maximum != nil {
		doc["maximum"] = number(*n.Maximum)
	}
	if n.ExclusiveMinimum != nil {
		doc["exclusiveMinimum"] = number(*n.ExclusiveMinimum)
	}
	if n.ExclusiveMaximum != nil {
		doc["exclusiveMaximum"] = number(*n.ExclusiveMaximum)
	}
	return doc
}

// Empty reports whether no rule is set.
func (n Number) Empty() bool {
	return len(n.document()) == 0
}

// Check evaluates the rules against value.
//
// NaN and ±Infinity have no JSON representation. For them the range and
// multipleOf rules do not apply and only Const and Enum are compared.
func (n Number) Check(value float64) ([]Violation, error) {
	doc := n.document()
	if len(doc) == 0 {
		return nil, nil
	}
	if n.MultipleOf != nil && !(*n.MultipleOf > 0) {
		return nil, fmt.Errorf("%w: multipleOf must be greater than 0, got %s", ErrInvalidConstraint, numconv.Format(*n.MultipleOf))
	}

	if !numconv.IsFinite(value) {
		// Compile anyway so malformed rules fail the same way for every value.
		if _, err := compile("number", doc); err != nil {
			return nil, err
		}
		return n.checkNonFinite(value), nil
	}

	return evaluate("number", doc, number(value))
}

func (n Number) checkNonFinite(value float64) []Violation {
	var violations []Violation
	if n.Const != nil && *n.Const != value {
		violations = append(violations, Violation{
			Keyword: "const",
			Message: fmt.Sprintf("value must be %s", numconv.Format(*n.Const)),
		})
	}
	if len(n.Enum) > 0 && !slices.Contains(n.Enum, value) {
		members := make([]string, len(n.Enum))
		for i, v := range n.Enum {
			members[i] = numconv.Format(v)
		}
		violations = append(violations, Violation{
			Keyword: "enum",
			Message: "value must be one of " + strings.Join(members, ", "),
		})
	}
	if len(violations) > 0 {
		constraintLog.Printf("Non-finite number %s failed %d rules", numconv.Format(value), len(violations))
	}
	return violations
}
