package schemafile

import (
	"errors"
	"fmt"

	"github.com/githubnext/fieldcheck/pkg/logger"
	"github.com/githubnext/fieldcheck/pkg/validation"
)

var specLog = logger.New("schemafile:spec")

// ErrUnknownPredicate is returned when validFunc names a predicate that was
// not registered.
var ErrUnknownPredicate = errors.New("unknown validation function")

// Spec is the flat, serializable form of a validation schema. Rules for all
// value kinds share one namespace; Schema sorts them into a
// validation.Schema.
type Spec struct {
	// ValidFunc names a registered predicate. When set, every other rule is
	// ignored.
	ValidFunc string `json:"validFunc,omitempty" yaml:"validFunc,omitempty" jsonschema:"name of a registered custom check"`
	// Exists turns the spec into a path existence check.
	Exists *bool `json:"exists,omitempty" yaml:"exists,omitempty" jsonschema:"require the path to exist (true) or be absent (false)"`

	// Equals is a string, a number or a list of strings.
	Equals any `json:"equals,omitempty" yaml:"equals,omitempty"`
	// Enum is a list of strings or a list of numbers.
	Enum []any `json:"enum,omitempty" yaml:"enum,omitempty"`

	MinLength  *int    `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength  *int    `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern    *string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	StartsWith *string `json:"startsWith,omitempty" yaml:"startsWith,omitempty"`
	EndsWith   *string `json:"endsWith,omitempty" yaml:"endsWith,omitempty"`
	Includes   *string `json:"includes,omitempty" yaml:"includes,omitempty"`

	MultipleOf       *float64 `json:"multipleOf,omitempty" yaml:"multipleOf,omitempty"`
	Minimum          *float64 `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	ExclusiveMinimum *float64 `json:"exclusiveMinimum,omitempty" yaml:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum *float64 `json:"exclusiveMaximum,omitempty" yaml:"exclusiveMaximum,omitempty"`

	MinItems    *int     `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems    *int     `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`
	UniqueItems *bool    `json:"uniqueItems,omitempty" yaml:"uniqueItems,omitempty"`
	Contains    *string  `json:"contains,omitempty" yaml:"contains,omitempty"`
	ContainsAll []string `json:"containsAll,omitempty" yaml:"containsAll,omitempty"`
	ContainsAny []string `json:"containsAny,omitempty" yaml:"containsAny,omitempty"`
}

// Schema converts the spec. predicates resolves ValidFunc names and may be
// nil when no spec uses one. A nil spec accepts every value.
func (s *Spec) Schema(predicates map[string]validation.Predicate) (validation.Schema, error) {
	if s == nil {
		return validation.Rules(), nil
	}

	if s.ValidFunc != "" {
		p, ok := predicates[s.ValidFunc]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPredicate, s.ValidFunc)
		}
		specLog.Printf("Using custom predicate %q", s.ValidFunc)
		return validation.Func(p), nil
	}

	if s.Exists != nil {
		return &validation.FileSchema{Exists: *s.Exists}, nil
	}

	str := validation.StringRules{
		MinLength:  s.MinLength,
		MaxLength:  s.MaxLength,
		Pattern:    s.Pattern,
		StartsWith: s.StartsWith,
		EndsWith:   s.EndsWith,
		Includes:   s.Includes,
	}
	num := validation.NumberRules{
		MultipleOf:       s.MultipleOf,
		Minimum:          s.Minimum,
		Maximum:          s.Maximum,
		ExclusiveMinimum: s.ExclusiveMinimum,
		ExclusiveMaximum: s.ExclusiveMaximum,
	}
	arr := validation.StringArrayRules{
		MinItems:    s.MinItems,
		MaxItems:    s.MaxItems,
		Contains:    s.Contains,
		ContainsAll: s.ContainsAll,
		ContainsAny: s.ContainsAny,
	}
	if s.UniqueItems != nil {
		arr.UniqueItems = *s.UniqueItems
	}

	if s.Equals != nil {
		if err := routeEquals(s.Equals, &str, &num, &arr); err != nil {
			return nil, err
		}
	}
	if s.Enum != nil {
		if err := routeEnum(s.Enum, &str, &num, &arr); err != nil {
			return nil, err
		}
	}

	schema := validation.Rules()
	if str.Equals != nil || str.Enum != nil || str.MinLength != nil || str.MaxLength != nil ||
		str.Pattern != nil || str.StartsWith != nil || str.EndsWith != nil || str.Includes != nil {
		schema.WithString(str)
	}
	if num.Equals != nil || num.Enum != nil || num.MultipleOf != nil || num.Minimum != nil ||
		num.Maximum != nil || num.ExclusiveMinimum != nil || num.ExclusiveMaximum != nil {
		schema.WithNumber(num)
	}
	if arr.MinItems != nil || arr.MaxItems != nil || arr.UniqueItems || arr.Contains != nil ||
		arr.Equals != nil || arr.Enum != nil || arr.ContainsAll != nil || arr.ContainsAny != nil {
		schema.WithArray(arr)
	}
	return schema, nil
}

func routeEquals(v any, str *validation.StringRules, num *validation.NumberRules, arr *validation.StringArrayRules) error {
	if s, ok := v.(string); ok {
		str.Equals = &s
		return nil
	}
	if f, ok := toFloat(v); ok {
		num.Equals = &f
		return nil
	}
	if items, ok := v.([]any); ok {
		list, ok := toStrings(items)
		if !ok {
			return fmt.Errorf("%w: equals list must contain only strings", ErrInvalidDocument)
		}
		arr.Equals = list
		return nil
	}
	if list, ok := v.([]string); ok {
		arr.Equals = list
		return nil
	}
	return fmt.Errorf("%w: equals must be a string, a number or a list of strings, got %T", ErrInvalidDocument, v)
}

// routeEnum applies a string enum to both string values and string array
// items; a numeric enum applies to numbers.
func routeEnum(items []any, str *validation.StringRules, num *validation.NumberRules, arr *validation.StringArrayRules) error {
	if list, ok := toStrings(items); ok {
		str.Enum = list
		arr.Enum = list
		return nil
	}
	nums := make([]float64, 0, len(items))
	for _, item := range items {
		f, ok := toFloat(item)
		if !ok {
			return fmt.Errorf("%w: enum must contain only strings or only numbers", ErrInvalidDocument)
		}
		nums = append(nums, f)
	}
	num.Enum = nums
	return nil
}

func toStrings(items []any) ([]string, bool) {
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
