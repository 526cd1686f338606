// Package constants holds names shared by the CLI, the MCP server and the
// configuration layer.
package constants

// CLIName is the name of the binary.
const CLIName = "fieldcheck"

// MCP tool names.
const (
	ValidateFieldTool   = "validate_field"
	ValidateAnswersTool = "validate_answers"
)

// Environment variables.
const (
	// MaxConcurrencyEnv bounds parallel field validation.
	MaxConcurrencyEnv = "FIELDCHECK_MAX_CONCURRENCY"
	// AccessibleEnv switches prompts and console output to plain text.
	AccessibleEnv = "ACCESSIBLE"
)

// DefaultMaxConcurrency is used when MaxConcurrencyEnv is unset or invalid.
const DefaultMaxConcurrency = 8

// MaxMaxConcurrency is the largest accepted MaxConcurrencyEnv value.
const MaxMaxConcurrency = 64

// MaxTableCellWidth caps value and diagnostic cells in result tables.
const MaxTableCellWidth = 60
