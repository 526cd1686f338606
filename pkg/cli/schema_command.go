package cli

import (
	"fmt"

	"github.com/githubnext/fieldcheck/pkg/schemafile"
	"github.com/spf13/cobra"
)

// NewSchemaCommand creates the schema command.
func NewSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of schema documents",
		Long: `Print the JSON Schema that schema documents are checked against.

Point an editor's YAML language server at it to get completion and
validation while writing schema documents.

Examples:
  fieldcheck schema > fieldcheck.schema.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := schemafile.DocumentJSONSchema()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}
