package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/githubnext/fieldcheck/pkg/console"
	"github.com/githubnext/fieldcheck/pkg/fileutil"
	"github.com/githubnext/fieldcheck/pkg/logger"
	"github.com/githubnext/fieldcheck/pkg/predicate"
	"github.com/githubnext/fieldcheck/pkg/prompt"
	"github.com/githubnext/fieldcheck/pkg/schemafile"
	"github.com/githubnext/fieldcheck/pkg/tty"
	"github.com/githubnext/fieldcheck/pkg/validation"
	"github.com/spf13/cobra"
)

var askLog = logger.New("cli:ask_command")

// NewAskCommand creates the ask command.
func NewAskCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask",
		Short: "Ask the questions of a schema document interactively",
		Long: `Ask every question of a schema document and validate each answer as it is typed.

Answers are written as YAML to the output file, or to stdout when no output
file is given. Answers already present in the --answers file are not asked
again.

Examples:
  fieldcheck ask --schema schema.yaml
  fieldcheck ask -s schema.yaml -o answers.yaml
  fieldcheck ask -s schema.yaml -a partial.yaml -o answers.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			schemaPath, _ := cmd.Flags().GetString("schema")
			answersPath, _ := cmd.Flags().GetString("answers")
			outputPath, _ := cmd.Flags().GetString("output")

			if err := requireFlags(map[string]string{"schema": schemaPath}, "schema"); err != nil {
				return err
			}

			if !tty.IsStdinTerminal() && !console.IsAccessibleMode() {
				return errors.New("ask needs an interactive terminal; set ACCESSIBLE=1 to use plain prompts")
			}

			doc, err := schemafile.Load(schemaPath)
			if err != nil {
				return err
			}

			inputs := validation.Inputs{}
			if answersPath != "" {
				existing, err := schemafile.LoadAnswers(answersPath)
				if err != nil {
					return err
				}
				for k, v := range existing {
					inputs[k] = v
				}
			}

			askLog.Printf("Asking %d questions from %s", len(doc.Fields), schemaPath)
			if err := prompt.AskDefault(cmd.Context(), doc, predicate.Builtins(), inputs); err != nil {
				return err
			}

			if outputPath == "" {
				if tty.IsStdoutTerminal() {
					fmt.Fprintln(os.Stderr, console.FormatInfoMessage("No --output given, printing answers"))
				}
				data, err := schemafile.MarshalAnswers(doc, inputs)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if dir := filepath.Dir(outputPath); !fileutil.DirExists(dir) {
				return fmt.Errorf("output directory does not exist: %s", dir)
			}
			if err := schemafile.SaveAnswers(outputPath, doc, inputs); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, console.FormatSuccessMessage("Answers written to "+outputPath))
			return nil
		},
	}

	cmd.Flags().StringP("schema", "s", "", "Schema document (YAML or JSON)")
	cmd.Flags().StringP("answers", "a", "", "Existing answers to keep")
	cmd.Flags().StringP("output", "o", "", "Write answers to this file instead of stdout")

	return cmd
}
