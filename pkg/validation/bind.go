package validation

import "context"

// Validator validates one value with a schema and inputs captured in advance.
type Validator func(ctx context.Context, value any) (string, error)

// Bind captures schema and inputs so callers that only have a value, such as
// prompt widgets, can validate it later. inputs is read at call time, so
// answers added to the map after Bind are visible to predicates.
func (e *Engine) Bind(schema Schema, inputs Inputs) Validator {
	return func(ctx context.Context, value any) (string, error) {
		return e.Validate(ctx, schema, value, inputs)
	}
}

// Bind is Engine.Bind on the default engine.
func Bind(schema Schema, inputs Inputs) Validator {
	return defaultEngine.Bind(schema, inputs)
}
