package validation

import (
	"fmt"
	"strings"

	"github.com/githubnext/fieldcheck/pkg/constraint"
)

// StringRules constrain a string value. Every pointer field is checked when
// it is non-nil, even if it points at a zero value; Enum is checked when it
// has members.
type StringRules struct {
	// Equals requires the value to be exactly this string.
	Equals *string
	// Enum requires the value to be one of these strings.
	Enum []string
	// MinLength and MaxLength bound the length in code points, inclusive.
	// Code points, not UTF-16 units: "😀" has length 1.
	MinLength *int
	MaxLength *int
	// Pattern is a regular expression the value must match somewhere.
	Pattern *string

	StartsWith *string
	EndsWith   *string
	Includes   *string
}

func (r *StringRules) validate(value string) (string, error) {
	set := constraint.String{
		Const:     r.Equals,
		Enum:      r.Enum,
		MinLength: r.MinLength,
		MaxLength: r.MaxLength,
		Pattern:   r.Pattern,
	}
	violations, err := set.Check(value)
	if err != nil {
		return "", fmt.Errorf("string rules: %w", err)
	}
	if len(violations) > 0 {
		return fmt.Sprintf("'%s' %s", value, violations[0].Message), nil
	}

	if r.StartsWith != nil && !strings.HasPrefix(value, *r.StartsWith) {
		return fmt.Sprintf("'%s' does not meet startsWith:'%s'", value, *r.StartsWith), nil
	}
	if r.EndsWith != nil && !strings.HasSuffix(value, *r.EndsWith) {
		return fmt.Sprintf("'%s' does not meet endsWith:'%s'", value, *r.EndsWith), nil
	}
	if r.Includes != nil && !strings.Contains(value, *r.Includes) {
		return fmt.Sprintf("'%s' does not meet includes:'%s'", value, *r.Includes), nil
	}
	return "", nil
}
