package constraint

// Array holds the size and uniqueness rules for a string slice.
type Array struct {
	MinItems    *int
	MaxItems    *int
	UniqueItems bool
}

func (a Array) document() map[string]any {
	doc := make(map[string]any)
	if a.MaxItems != nil {
		doc["maxItems"] = integer(*a.MaxItems)
	}
	if a.MinItems != nil {
		doc["minItems"] = integer(*a.MinItems)
	}
	if a.UniqueItems {
		doc["uniqueItems"] = true
	}
	return doc
}

// Empty reports whether no rule is set.
func (a Array) Empty() bool {
	return len(a.document()) == 0
}

// Check evaluates the rules against values.
func (a Array) Check(values []string) ([]Violation, error) {
	doc := a.document()
	if len(doc) == 0 {
		return nil, nil
	}
	if err := nonNegative("minItems", a.MinItems); err != nil {
		return nil, err
	}
	if err := nonNegative("maxItems", a.MaxItems); err != nil {
		return nil, err
	}
	return evaluate("array", doc, strings2any(values))
}
