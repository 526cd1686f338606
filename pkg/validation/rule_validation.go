package validation

var _ Schema = (*RuleSchema)(nil)

// RuleSchema bundles declarative rules for each value kind. Any of the rule
// sets may be nil. String rules apply to string values, number rules to every
// value after numeric coercion, and array rules to string slices. They are
// checked in that order and the first diagnostic is returned.
type RuleSchema struct {
	String *StringRules
	Number *NumberRules
	Array  *StringArrayRules
}

// Rules returns an empty RuleSchema, which accepts every value.
func Rules() *RuleSchema {
	return &RuleSchema{}
}

// WithString sets the string rules and returns s.
func (s *RuleSchema) WithString(rules StringRules) *RuleSchema {
	s.String = &rules
	return s
}

// WithNumber sets the number rules and returns s.
func (s *RuleSchema) WithNumber(rules NumberRules) *RuleSchema {
	s.Number = &rules
	return s
}

// WithArray sets the string array rules and returns s.
func (s *RuleSchema) WithArray(rules StringArrayRules) *RuleSchema {
	s.Array = &rules
	return s
}

func (s *RuleSchema) strategy() string { return "rules" }

func (s *RuleSchema) validate(value any) (string, error) {
	if str, ok := value.(string); ok && s.String != nil {
		if diagnostic, err := s.String.validate(str); diagnostic != "" || err != nil {
			return diagnostic, err
		}
	}

	if s.Number != nil {
		if diagnostic, err := s.Number.validate(value); diagnostic != "" || err != nil {
			return diagnostic, err
		}
	}

	if items, ok := value.([]string); ok && s.Array != nil {
		if diagnostic, err := s.Array.validate(items); diagnostic != "" || err != nil {
			return diagnostic, err
		}
	}

	return "", nil
}
