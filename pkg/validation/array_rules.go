package validation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/githubnext/fieldcheck/pkg/constraint"
	"github.com/githubnext/fieldcheck/pkg/sliceutil"
)

// StringArrayRules constrain a []string value.
type StringArrayRules struct {
	// Equals is shorthand for Enum and ContainsAll set to the same members:
	// every item must be a member and every member must be present. When set
	// it replaces Enum and ContainsAll.
	Equals []string
	// Enum, when non-nil, lists the only allowed items. An empty non-nil Enum
	// allows no items at all.
	Enum []string

	MinItems    *int
	MaxItems    *int
	UniqueItems bool

	// Contains requires this item to be present.
	Contains *string
	// ContainsAll requires every member to be present; ignored when empty.
	ContainsAll []string
	// ContainsAny requires at least one member to be present; ignored when empty.
	ContainsAny []string
}

func (r *StringArrayRules) validate(items []string) (string, error) {
	joined := strings.Join(items, ",")

	set := constraint.Array{
		MinItems:    r.MinItems,
		MaxItems:    r.MaxItems,
		UniqueItems: r.UniqueItems,
	}
	violations, err := set.Check(items)
	if err != nil {
		return "", fmt.Errorf("string array rules: %w", err)
	}
	if len(violations) > 0 {
		return fmt.Sprintf("'%s' %s", joined, violations[0].Message), nil
	}

	enum, containsAll := r.Enum, r.ContainsAll
	if r.Equals != nil {
		enum, containsAll = r.Equals, r.Equals
	}

	if enum != nil {
		if item, found := sliceutil.FirstOutside(items, enum); found {
			engineLog.Printf("Item %q is not in enum", item)
			return fmt.Sprintf("'%s' does not meet enum:'%s'", joined, strings.Join(enum, ",")), nil
		}
	}

	if r.Contains != nil && !slices.Contains(items, *r.Contains) {
		return fmt.Sprintf("'%s' does not meet contains:'%s'", joined, *r.Contains), nil
	}

	if len(containsAll) > 0 {
		if missing, found := sliceutil.FirstMissing(items, containsAll); found {
			engineLog.Printf("Required item %q is missing", missing)
			return fmt.Sprintf("'%s' does not meet containsAll:'%s'", joined, strings.Join(containsAll, ",")), nil
		}
	}

	if len(r.ContainsAny) > 0 && !sliceutil.ContainsAny(items, r.ContainsAny...) {
		return fmt.Sprintf("'%s' does not meet containsAny:'%s'", joined, strings.Join(r.ContainsAny, ",")), nil
	}

	return "", nil
}
