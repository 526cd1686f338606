package cli

import (
	"github.com/githubnext/fieldcheck/pkg/logger"
	"github.com/githubnext/fieldcheck/pkg/mcpserver"
	"github.com/githubnext/fieldcheck/pkg/predicate"
	"github.com/githubnext/fieldcheck/pkg/validation"
	"github.com/spf13/cobra"
)

var mcpServerLog = logger.New("cli:mcp_server_command")

// NewMCPServerCommand creates the mcp-server command.
func NewMCPServerCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-server",
		Short: "Serve the validation tools over the Model Context Protocol",
		Long: `Run an MCP server on stdin/stdout exposing two tools:

  validate_field    check one value against flat validation rules
  validate_answers  check a set of answers against a schema document

Example MCP client configuration:
  {"command": "fieldcheck", "args": ["mcp-server"]}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mcpServerLog.Printf("Starting MCP server, version %s", version)
			server := mcpserver.NewServer(validation.New(), predicate.Builtins(), version)
			return server.Run(cmd.Context())
		},
	}
}
