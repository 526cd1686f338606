package validation

import (
	"context"
	"fmt"
)

var _ Schema = (*FuncSchema)(nil)

// Predicate is a caller-supplied check. It returns an empty string when the
// value is acceptable and a diagnostic otherwise. Errors are reserved for
// failures of the check itself.
type Predicate interface {
	Check(ctx context.Context, value any, inputs Inputs) (string, error)
}

// PredicateFunc adapts an ordinary function to Predicate.
type PredicateFunc func(ctx context.Context, value any, inputs Inputs) (string, error)

// Check calls f.
func (f PredicateFunc) Check(ctx context.Context, value any, inputs Inputs) (string, error) {
	return f(ctx, value, inputs)
}

// FuncSchema delegates validation to a Predicate. Whatever the predicate
// returns is the result; no other strategy runs.
type FuncSchema struct {
	Predicate Predicate
}

// Func returns a schema that validates with p.
func Func(p Predicate) *FuncSchema {
	return &FuncSchema{Predicate: p}
}

// FuncOf is Func for plain functions.
func FuncOf(f func(ctx context.Context, value any, inputs Inputs) (string, error)) *FuncSchema {
	return &FuncSchema{Predicate: PredicateFunc(f)}
}

func (s *FuncSchema) strategy() string { return "custom function" }

func (s *FuncSchema) validate(ctx context.Context, value any, inputs Inputs) (string, error) {
	if s.Predicate == nil {
		// A schema without a predicate constrains nothing.
		engineLog.Print("Custom function schema has no predicate, accepting value")
		return "", nil
	}

	diagnostic, err := s.Predicate.Check(ctx, value, inputs)
	if err != nil {
		return diagnostic, fmt.Errorf("custom validation failed: %w", err)
	}
	if diagnostic != "" {
		engineLog.Printf("Custom function rejected value: %s", diagnostic)
	}
	return diagnostic, nil
}
