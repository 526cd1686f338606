// Package constraint evaluates typed constraint sets against a single value.
//
// A constraint set is a bundle of declarative rules for one value kind
// (String, Number, Array). Each set is rendered into a JSON Schema document,
// compiled once with santhosh-tekuri/jsonschema and cached by its canonical
// text, so repeated checks against the same rules only pay for evaluation.
//
// Check returns every violated rule in the order the schema engine reports
// them; callers that only show one message take the first.
package constraint

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/githubnext/fieldcheck/pkg/logger"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var constraintLog = logger.New("constraint:constraint")

// schemaResource is the in-memory URL every constraint document is compiled under.
const schemaResource = "constraint.json"

// ErrInvalidConstraint marks a rule that can never be evaluated, such as a
// negative length or a pattern that does not compile.
var ErrInvalidConstraint = errors.New("invalid constraint")

// Violation describes one failed rule.
type Violation struct {
	// Keyword is the JSON Schema keyword that failed, e.g. "minLength".
	Keyword string
	// Message is the English description produced by the schema engine.
	Message string
}

func (v Violation) String() string {
	return v.Message
}

// compiled caches *jsonschema.Schema values by canonical document text.
var compiled sync.Map

// evaluate compiles doc (or reuses a cached compilation) and validates
// instance against it.
func evaluate(kind string, doc map[string]any, instance any) ([]Violation, error) {
	schema, err := compile(kind, doc)
	if err != nil {
		return nil, err
	}

	err = schema.Validate(instance)
	if err == nil {
		return nil, nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("evaluate %s constraints: %w", kind, err)
	}

	printer := message.NewPrinter(language.English)
	leaves := flattenValidationErrors(ve)
	violations := make([]Violation, 0, len(leaves))
	for _, leaf := range leaves {
		violations = append(violations, Violation{
			Keyword: strings.Join(leaf.ErrorKind.KeywordPath(), "/"),
			Message: leaf.ErrorKind.LocalizedString(printer),
		})
	}
	constraintLog.Printf("%s constraints failed: violations=%d, first=%q", kind, len(violations), violations[0].Message)
	return violations, nil
}

func compile(kind string, doc map[string]any) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode %s constraints: %w", kind, err)
	}
	key := string(raw)

	if cached, ok := compiled.Load(key); ok {
		return cached.(*jsonschema.Schema), nil
	}

	constraintLog.Printf("Compiling %s constraints: %s", kind, key)
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaResource, doc); err != nil {
		return nil, fmt.Errorf("add %s constraints: %w", kind, err)
	}
	schema, err := c.Compile(schemaResource)
	if err != nil {
		return nil, fmt.Errorf("%w: %s constraints %s: %v", ErrInvalidConstraint, kind, key, err)
	}

	actual, _ := compiled.LoadOrStore(key, schema)
	return actual.(*jsonschema.Schema), nil
}

// flattenValidationErrors collects the leaf errors of a validation tree.
func flattenValidationErrors(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}
	var flat []*jsonschema.ValidationError
	for _, cause := range ve.Causes {
		flat = append(flat, flattenValidationErrors(cause)...)
	}
	return flat
}

// number encodes f as an exact JSON number so decimal rules such as
// multipleOf 0.1 compare on the written value rather than its binary
// approximation.
func number(f float64) json.Number {
	return json.Number(strconv.FormatFloat(f, 'g', -1, 64))
}

func nonNegative(keyword string, n *int) error {
	if n != nil && *n < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidConstraint, keyword, *n)
	}
	return nil
}

func integer(n int) json.Number {
	return json.Number(strconv.Itoa(n))
}

func strings2any(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
