package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/githubnext/fieldcheck/pkg/console"
	"github.com/githubnext/fieldcheck/pkg/fileutil"
	"github.com/githubnext/fieldcheck/pkg/form"
	"github.com/githubnext/fieldcheck/pkg/logger"
	"github.com/githubnext/fieldcheck/pkg/predicate"
	"github.com/githubnext/fieldcheck/pkg/schemafile"
	"github.com/githubnext/fieldcheck/pkg/validation"
	"github.com/spf13/cobra"
)

var checkLog = logger.New("cli:check_command")

// ErrValidationFailed is returned by RunCheck when at least one field is
// invalid or unanswered.
var ErrValidationFailed = errors.New("validation failed")

// CheckConfig holds the options of the check command.
type CheckConfig struct {
	SchemaPath  string
	AnswersPath string
	JSONOutput  bool
	FailFast    bool
	Verbose     bool
	// Out receives the report; stdout when nil.
	Out io.Writer
	// Engine defaults to one that checks the local filesystem.
	Engine *validation.Engine
	// Predicates defaults to the built-in predicates.
	Predicates map[string]validation.Predicate
}

// FieldReport is the outcome for one field.
type FieldReport struct {
	Name       string `json:"name"`
	Value      string `json:"value,omitempty"`
	Valid      bool   `json:"valid"`
	Missing    bool   `json:"missing,omitempty"`
	Diagnostic string `json:"diagnostic,omitempty"`
	Error      string `json:"error,omitempty"`
}

// CheckReport is the outcome of a check run.
type CheckReport struct {
	Valid   bool          `json:"valid"`
	Invalid int           `json:"invalid"`
	Fields  []FieldReport `json:"fields"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a set of answers against a schema document",
		Long: `Validate every answer in an answers file against the rules of a schema document.

Each field of the document is checked with its validation rules. Unanswered
fields are reported as missing. The command exits with a non-zero status when
any field is missing or invalid.

Examples:
  fieldcheck check --schema schema.yaml --answers answers.yaml
  fieldcheck check -s schema.yaml -a answers.yaml --json
  fieldcheck check -s schema.yaml -a answers.yaml --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			schemaPath, _ := cmd.Flags().GetString("schema")
			answersPath, _ := cmd.Flags().GetString("answers")
			jsonOutput, _ := cmd.Flags().GetBool("json")
			failFast, _ := cmd.Flags().GetBool("fail-fast")
			watch, _ := cmd.Flags().GetBool("watch")
			verbose, _ := cmd.Flags().GetBool("verbose")

			if err := requireFlags(map[string]string{"schema": schemaPath, "answers": answersPath}, "schema", "answers"); err != nil {
				return err
			}

			config := CheckConfig{
				SchemaPath:  schemaPath,
				AnswersPath: answersPath,
				JSONOutput:  jsonOutput,
				FailFast:    failFast,
				Verbose:     verbose,
				Out:         cmd.OutOrStdout(),
			}

			if watch {
				return WatchCheck(cmd.Context(), config)
			}
			_, err := RunCheck(cmd.Context(), config)
			return err
		},
	}

	cmd.Flags().StringP("schema", "s", "", "Schema document (YAML or JSON)")
	cmd.Flags().StringP("answers", "a", "", "Answers file (YAML map of field name to value)")
	cmd.Flags().BoolP("json", "j", false, "Output results in JSON format")
	cmd.Flags().Bool("fail-fast", false, "Stop at the first field whose validation errors out")
	cmd.Flags().BoolP("watch", "w", false, "Re-run the check whenever the schema or answers file changes")

	return cmd
}

// requireFlags reports the first of names whose value is empty, in order.
func requireFlags(values map[string]string, names ...string) error {
	for _, name := range names {
		if values[name] == "" {
			return fmt.Errorf("--%s is required", name)
		}
	}
	return nil
}

// RunCheck validates the answers file against the schema document and writes
// a report. It returns ErrValidationFailed when any field is invalid.
func RunCheck(ctx context.Context, config CheckConfig) (*CheckReport, error) {
	checkLog.Printf("Running check: schema=%s, answers=%s", config.SchemaPath, config.AnswersPath)
	if ctx == nil {
		ctx = context.Background()
	}
	out := config.Out
	if out == nil {
		out = os.Stdout
	}

	report, err := buildReport(ctx, config)
	if err != nil {
		PrintValidationError(err)
		return nil, err
	}

	if config.JSONOutput {
		if err := writeReportJSON(out, report); err != nil {
			return report, err
		}
	} else {
		fmt.Fprint(out, renderReport(report))
	}

	if !report.Valid {
		return report, fmt.Errorf("%w: %d invalid fields", ErrValidationFailed, report.Invalid)
	}
	return report, nil
}

func buildReport(ctx context.Context, config CheckConfig) (*CheckReport, error) {
	for _, path := range []string{config.SchemaPath, config.AnswersPath} {
		if !fileutil.FileExists(path) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
	}

	doc, err := schemafile.Load(config.SchemaPath)
	if err != nil {
		return nil, err
	}
	answers, err := schemafile.LoadAnswers(config.AnswersPath)
	if err != nil {
		return nil, err
	}
	console.LogVerbose(config.Verbose, fmt.Sprintf("Loaded %d fields and %d answers", len(doc.Fields), len(answers)))

	engine := config.Engine
	if engine == nil {
		engine = validation.New()
	}
	predicates := config.Predicates
	if predicates == nil {
		predicates = predicate.Builtins()
	}

	report := &CheckReport{Fields: make([]FieldReport, len(doc.Fields))}
	var fields []form.Field
	var positions []int
	for i, f := range doc.Fields {
		report.Fields[i].Name = f.Name

		value, ok := answers[f.Name]
		if !ok {
			report.Fields[i].Missing = true
			report.Fields[i].Diagnostic = "no answer given"
			continue
		}
		report.Fields[i].Value = displayValue(value)

		schema, err := f.Validation.Schema(predicates)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		fields = append(fields, form.Field{Name: f.Name, Schema: schema, Value: value})
		positions = append(positions, i)
	}

	results, err := form.Validate(ctx, engine, fields, form.Options{
		Inputs:   validation.Inputs(answers),
		FailFast: config.FailFast,
	})
	if err != nil && config.FailFast {
		return nil, err
	}
	if err != nil {
		checkLog.Printf("Collaborator errors during check: %v", err)
	}
	valid, invalid := form.Count(results)
	checkLog.Printf("Checked %d answers: %d valid, %d invalid", len(results), valid, invalid)

	for i, r := range results {
		entry := &report.Fields[positions[i]]
		entry.Valid = r.Valid()
		entry.Diagnostic = r.Diagnostic
		if r.Err != nil {
			entry.Error = r.Err.Error()
		}
	}

	report.Valid = true
	for _, f := range report.Fields {
		if !f.Valid {
			report.Valid = false
			report.Invalid++
		}
	}
	return report, nil
}
