// Package prompt asks the questions of a schema document interactively and
// validates each answer as it is typed.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/charmbracelet/huh"
	"github.com/githubnext/fieldcheck/pkg/console"
	"github.com/githubnext/fieldcheck/pkg/logger"
	"github.com/githubnext/fieldcheck/pkg/numconv"
	"github.com/githubnext/fieldcheck/pkg/schemafile"
	"github.com/githubnext/fieldcheck/pkg/validation"
)

var promptLog = logger.New("prompt:prompt")

// ErrNotANumber is reported for number answers that do not parse.
var ErrNotANumber = errors.New("please enter a number")

// Config controls Ask.
type Config struct {
	Engine *validation.Engine
	// Predicates resolves validFunc names used by the document.
	Predicates map[string]validation.Predicate
	// Accessible replaces the TUI with plain line prompts.
	Accessible bool
}

// Ask asks every field of doc in order and stores each accepted answer in
// inputs under the field name. Predicates of later fields see earlier
// answers. Fields that already have an answer in inputs are skipped.
func Ask(ctx context.Context, doc *schemafile.Document, cfg Config, inputs validation.Inputs) error {
	if cfg.Engine == nil {
		cfg.Engine = validation.New()
	}

	for _, field := range doc.Fields {
		if _, answered := inputs[field.Name]; answered {
			promptLog.Printf("Skipping already answered field: %s", field.Name)
			continue
		}

		schema, err := field.Validation.Schema(cfg.Predicates)
		if err != nil {
			return fmt.Errorf("field %q: %w", field.Name, err)
		}
		check := cfg.Engine.Bind(schema, inputs)

		answer, err := askField(ctx, field, check, cfg.Accessible)
		if err != nil {
			return fmt.Errorf("failed to get answer for %q: %w", field.Name, err)
		}
		inputs[field.Name] = answer
		promptLog.Printf("Recorded answer for %s", field.Name)
	}
	return nil
}

// AskDefault is Ask with the default engine and accessibility taken from the
// environment.
func AskDefault(ctx context.Context, doc *schemafile.Document, predicates map[string]validation.Predicate, inputs validation.Inputs) error {
	return Ask(ctx, doc, Config{Predicates: predicates, Accessible: console.IsAccessibleMode()}, inputs)
}

func askField(ctx context.Context, field schemafile.Field, check validation.Validator, accessible bool) (any, error) {
	switch field.EffectiveKind() {
	case schemafile.KindMultiSelect:
		var selected []string
		input := huh.NewMultiSelect[string]().
			Title(field.Prompt()).
			Description(field.Description).
			Options(huh.NewOptions(field.Options...)...).
			Value(&selected).
			Validate(validatorFor(ctx, check, selectedValue))
		if err := run(ctx, input, accessible); err != nil {
			return nil, err
		}
		return selected, nil

	case schemafile.KindNumber:
		var text string
		input := huh.NewInput().
			Title(field.Prompt()).
			Description(field.Description).
			Value(&text).
			Validate(validatorFor(ctx, check, numberValue))
		if err := run(ctx, input, accessible); err != nil {
			return nil, err
		}
		return numberValue(text)

	default:
		var text string
		input := huh.NewInput().
			Title(field.Prompt()).
			Description(field.Description).
			Value(&text).
			Validate(validatorFor(ctx, check, textValue))
		if err := run(ctx, input, accessible); err != nil {
			return nil, err
		}
		return text, nil
	}
}

func run(ctx context.Context, field huh.Field, accessible bool) error {
	return huh.NewForm(huh.NewGroup(field)).
		WithAccessible(accessible).
		RunWithContext(ctx)
}

// validatorFor adapts a bound validation func to huh's validator signature.
// convert turns the widget value into the value the engine checks.
func validatorFor[T any](ctx context.Context, check validation.Validator, convert func(T) (any, error)) func(T) error {
	return func(v T) error {
		value, err := convert(v)
		if err != nil {
			return err
		}
		diagnostic, err := check(ctx, value)
		if err != nil {
			return err
		}
		if diagnostic != "" {
			return errors.New(diagnostic)
		}
		return nil
	}
}

func textValue(s string) (any, error) { return s, nil }

func selectedValue(items []string) (any, error) {
	if items == nil {
		return []string{}, nil
	}
	return items, nil
}

func numberValue(s string) (any, error) {
	f := numconv.ParseString(s)
	if math.IsNaN(f) {
		return nil, ErrNotANumber
	}
	return f, nil
}
