// Package form validates several named values at once, for example every
// answer of a questionnaire, and reports one result per field.
package form

import (
	"context"
	"fmt"

	"github.com/githubnext/fieldcheck/pkg/constants"
	"github.com/githubnext/fieldcheck/pkg/envutil"
	"github.com/githubnext/fieldcheck/pkg/logger"
	"github.com/githubnext/fieldcheck/pkg/validation"
	"github.com/sourcegraph/conc/iter"
)

var formLog = logger.New("form:form")

// MaxConcurrencyEnv bounds how many fields are validated at the same time
// when Options.MaxConcurrency is zero.
const MaxConcurrencyEnv = constants.MaxConcurrencyEnv

// Field is one value to validate.
type Field struct {
	Name   string
	Schema validation.Schema
	Value  any
}

// Result is the outcome for one field. Err is set when validation itself
// failed; Diagnostic when the value was rejected.
type Result struct {
	Name       string
	Value      any
	Diagnostic string
	Err        error
}

// Valid reports whether the value was accepted.
func (r Result) Valid() bool {
	return r.Diagnostic == "" && r.Err == nil
}

// Options tune Validate.
type Options struct {
	// Inputs is shared, read-only, by every field's predicate.
	Inputs validation.Inputs
	// FailFast returns only the first collaborator error (in field order)
	// instead of all of them.
	FailFast bool
	// MaxConcurrency caps parallel validations; zero reads MaxConcurrencyEnv.
	MaxConcurrency int
}

// Validate checks every field concurrently and returns results in field
// order. Diagnostics are part of the results; the error only aggregates
// collaborator failures. Fields not yet started when ctx is done get ctx's
// error.
func Validate(ctx context.Context, engine *validation.Engine, fields []Field, opts Options) ([]Result, error) {
	if engine == nil {
		return nil, fmt.Errorf("form validation: nil engine")
	}

	limit := opts.MaxConcurrency
	if limit <= 0 {
		limit = envutil.GetIntFromEnv(MaxConcurrencyEnv, constants.DefaultMaxConcurrency, 1, constants.MaxMaxConcurrency, formLog)
	}
	formLog.Printf("Validating %d fields with concurrency %d", len(fields), limit)

	mapper := iter.Mapper[Field, Result]{MaxGoroutines: limit}
	results := mapper.Map(fields, func(f *Field) Result {
		result := Result{Name: f.Name, Value: f.Value}
		if err := ctx.Err(); err != nil {
			result.Err = err
			return result
		}
		diagnostic, err := engine.Validate(ctx, f.Schema, f.Value, opts.Inputs)
		result.Diagnostic = diagnostic
		if err != nil {
			result.Err = fmt.Errorf("field %q: %w", f.Name, err)
		}
		return result
	})

	collector := NewErrorCollector(opts.FailFast)
	for _, r := range results {
		if err := collector.Add(r.Err); err != nil {
			return results, err
		}
	}
	return results, collector.FormattedError("field")
}

// Count returns how many results are valid and how many are not.
func Count(results []Result) (valid, invalid int) {
	for _, r := range results {
		if r.Valid() {
			valid++
		} else {
			invalid++
		}
	}
	return valid, invalid
}
