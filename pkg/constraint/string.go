package constraint

// String holds the rules that apply to a string value. A nil field is not
// checked; Enum is only checked when it has at least one member.
type String struct {
	Const     *string
	Enum      []string
	MinLength *int
	MaxLength *int
	Pattern   *string
}

func (s String) document() map[string]any {
	doc := make(map[string]any)
	if s.Const != nil {
		doc["const"] = *s.Const
	}
	if len(s.Enum) > 0 {
		doc["enum"] = strings2any(s.Enum)
	}
	if s.MinLength != nil {
		doc["minLength"] = integer(*s.MinLength)
	}
	if s.MaxLength != nil {
		doc["maxLength"] = integer(*s.MaxLength)
	}
	if s.Pattern != nil {
		doc["pattern"] = *s.Pattern
	}
	return doc
}

// Empty reports whether no rule is set.
func (s String) Empty() bool {
	return len(s.document()) == 0
}

// Check evaluates the rules against value. Lengths count Unicode code points.
func (s String) Check(value string) ([]Violation, error) {
	doc := s.document()
	if len(doc) == 0 {
		return nil, nil
	}
	if err := nonNegative("minLength", s.MinLength); err != nil {
		return nil, err
	}
	if err := nonNegative("maxLength", s.MaxLength); err != nil {
		return nil, err
	}
	return evaluate("string", doc, value)
}
