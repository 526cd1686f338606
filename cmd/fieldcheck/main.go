package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/githubnext/fieldcheck/pkg/cli"
	"github.com/githubnext/fieldcheck/pkg/console"
	"github.com/githubnext/fieldcheck/pkg/constants"
	"github.com/githubnext/fieldcheck/pkg/logger"
	"github.com/spf13/cobra"
)

var mainLog = logger.New("main:main")

// Build-time variables.
var (
	version = "dev"
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:     constants.CLIName,
	Short:   "Validate questionnaire answers against declarative rules",
	Version: version,
	Long: `fieldcheck validates answers to a questionnaire against the rules of a schema document.

A schema document lists fields with validation rules for strings, numbers,
string lists and file paths. Answers can be checked in bulk, asked
interactively, or checked by agents through an MCP server.

Common Tasks:
  fieldcheck check -s schema.yaml -a answers.yaml   # Check an answers file
  fieldcheck ask -s schema.yaml -o answers.yaml     # Ask the questions
  fieldcheck schema                                 # Print the document JSON Schema

For detailed help on any command, use:
  fieldcheck [command] --help`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show fieldcheck version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), console.FormatInfoMessage(constants.CLIName+" version "+version))
	},
}

func init() {
	rootCmd.AddGroup(&cobra.Group{ID: "validation", Title: "Validation Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "utilities", Title: "Utilities:"})

	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output showing detailed information")

	checkCmd := cli.NewCheckCommand()
	checkCmd.GroupID = "validation"
	askCmd := cli.NewAskCommand()
	askCmd.GroupID = "validation"
	schemaCmd := cli.NewSchemaCommand()
	schemaCmd.GroupID = "utilities"
	mcpServerCmd := cli.NewMCPServerCommand(version)
	mcpServerCmd.GroupID = "utilities"

	rootCmd.AddCommand(checkCmd, askCmd, schemaCmd, mcpServerCmd, versionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mainLog.Printf("Starting fieldcheck %s", version)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Failed checks already printed their report.
		if !errors.Is(err, cli.ErrValidationFailed) {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		}
		stop()
		os.Exit(1)
	}
}
