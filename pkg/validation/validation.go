// Package validation checks a single input value against a declarative schema
// and reports the first problem as a human-readable diagnostic.
//
// # Schemas
//
// A Schema is one of three variants:
//
//   - *FuncSchema: a caller-supplied Predicate decides. Its result is final.
//   - *FileSchema: the value is a path that must (or must not) exist.
//   - *RuleSchema: declarative rules for strings, numbers and string slices.
//
// # Strategy order
//
// Strategies run in a fixed order: custom function, file existence, string,
// number, string array. The first two are authoritative and end the call. The
// rule strategies are cross-checks: a value that passes the string rules is
// still coerced to a number and checked against the number rules, and so on,
// until one strategy reports a diagnostic or all of them pass. Inside each
// strategy the first failing rule wins.
//
// # Results
//
// An empty diagnostic means the value is acceptable. A returned error is never
// a validation failure: it reports a collaborator failure (the predicate or the
// path checker failed) or a programming error (unsupported value type,
// malformed rule).
package validation

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/githubnext/fieldcheck/pkg/fileutil"
	"github.com/githubnext/fieldcheck/pkg/logger"
)

var engineLog = logger.New("validation:engine")

var (
	// ErrNilSchema is returned when Validate is called without a schema.
	ErrNilSchema = errors.New("validation schema is nil")
	// ErrUnsupportedValue is returned for values that are not a string, a
	// string slice or a number.
	ErrUnsupportedValue = errors.New("unsupported value type")
	// ErrNoPathChecker is returned when a file schema is evaluated by an
	// engine that has no PathChecker.
	ErrNoPathChecker = errors.New("no path checker configured")
)

// Inputs carries ambient answers and context for custom predicates. The engine
// never reads it; it is handed to the Predicate unchanged.
type Inputs map[string]any

// Schema is implemented by *FuncSchema, *FileSchema and *RuleSchema.
type Schema interface {
	strategy() string
}

// Engine validates values. The zero Engine has no PathChecker; use New to get
// one that checks the local filesystem.
type Engine struct {
	paths PathChecker
}

// Option configures an Engine.
type Option func(*Engine)

// WithPathChecker replaces the filesystem collaborator used by file schemas.
func WithPathChecker(pc PathChecker) Option {
	return func(e *Engine) {
		e.paths = pc
	}
}

// New returns an Engine that checks paths on the local filesystem unless an
// option says otherwise.
func New(opts ...Option) *Engine {
	e := &Engine{paths: fileutil.OSPathChecker{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = New()

// Validate checks value against schema with the default engine.
func Validate(ctx context.Context, schema Schema, value any, inputs Inputs) (string, error) {
	return defaultEngine.Validate(ctx, schema, value, inputs)
}

// Validate checks value against schema. value must be a string, a []string
// or a Go number.
func (e *Engine) Validate(ctx context.Context, schema Schema, value any, inputs Inputs) (string, error) {
	if isNilSchema(schema) {
		return "", ErrNilSchema
	}
	if err := checkValue(value); err != nil {
		return "", err
	}

	engineLog.Printf("Validating value of type %T with %s schema", value, schema.strategy())

	switch s := schema.(type) {
	case *FuncSchema:
		return s.validate(ctx, value, inputs)
	case *FileSchema:
		return e.validateFile(ctx, s, value)
	case *RuleSchema:
		return s.validate(value)
	default:
		return "", fmt.Errorf("unknown schema type %T", schema)
	}
}

func isNilSchema(schema Schema) bool {
	if schema == nil {
		return true
	}
	v := reflect.ValueOf(schema)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func checkValue(value any) error {
	switch value.(type) {
	case string, []string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return nil
	default:
		return fmt.Errorf("%w: %T (want string, []string or number)", ErrUnsupportedValue, value)
	}
}
