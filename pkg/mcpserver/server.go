// Package mcpserver exposes the validation engine as Model Context Protocol
// tools so that agents can check values before submitting them.
package mcpserver

import (
	"context"
	"fmt"

	"github.com/githubnext/fieldcheck/pkg/constants"
	"github.com/githubnext/fieldcheck/pkg/form"
	"github.com/githubnext/fieldcheck/pkg/logger"
	"github.com/githubnext/fieldcheck/pkg/schemafile"
	"github.com/githubnext/fieldcheck/pkg/validation"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var serverLog = logger.New("mcpserver:server")

// ValidateFieldInput is the argument of the validate_field tool.
type ValidateFieldInput struct {
	Spec   schemafile.Spec `json:"spec" jsonschema:"flat validation rules, as in a schema document"`
	Value  any             `json:"value" jsonschema:"the value to check: a string, a number or a list of strings"`
	Inputs map[string]any  `json:"inputs,omitempty" jsonschema:"other answers made available to validFunc checks"`
}

// ValidateFieldOutput is the result of the validate_field tool.
type ValidateFieldOutput struct {
	Valid      bool   `json:"valid"`
	Diagnostic string `json:"diagnostic,omitempty"`
}

// ValidateAnswersInput is the argument of the validate_answers tool.
type ValidateAnswersInput struct {
	Document string         `json:"document" jsonschema:"schema document as YAML or JSON text"`
	Answers  map[string]any `json:"answers" jsonschema:"answers keyed by field name"`
}

// FieldResult is one entry of ValidateAnswersOutput.
type FieldResult struct {
	Name       string `json:"name"`
	Valid      bool   `json:"valid"`
	Diagnostic string `json:"diagnostic,omitempty"`
	Missing    bool   `json:"missing,omitempty"`
}

// ValidateAnswersOutput is the result of the validate_answers tool.
type ValidateAnswersOutput struct {
	Valid  bool          `json:"valid"`
	Fields []FieldResult `json:"fields"`
}

// Server serves the validation tools.
type Server struct {
	engine     *validation.Engine
	predicates map[string]validation.Predicate
	mcp        *mcp.Server
}

// NewServer builds a server whose validFunc names resolve through
// predicates.
func NewServer(engine *validation.Engine, predicates map[string]validation.Predicate, version string) *Server {
	if engine == nil {
		engine = validation.New()
	}
	s := &Server{
		engine:     engine,
		predicates: predicates,
		mcp: mcp.NewServer(&mcp.Implementation{
			Name:    constants.CLIName,
			Version: version,
		}, nil),
	}

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        constants.ValidateFieldTool,
		Description: "Check one value against validation rules and return the first problem found, if any.",
	}, s.validateField)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        constants.ValidateAnswersTool,
		Description: "Check a set of answers against every field of a schema document.",
	}, s.validateAnswers)

	serverLog.Printf("Registered MCP tools for version %s", version)
	return s
}

// MCP returns the underlying server, for custom transports.
func (s *Server) MCP() *mcp.Server {
	return s.mcp
}

// Run serves over stdin/stdout until ctx is done or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	serverLog.Print("Starting MCP server on stdio")
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) validateField(ctx context.Context, _ *mcp.CallToolRequest, in ValidateFieldInput) (*mcp.CallToolResult, ValidateFieldOutput, error) {
	schema, err := in.Spec.Schema(s.predicates)
	if err != nil {
		return nil, ValidateFieldOutput{}, err
	}

	diagnostic, err := s.engine.Validate(ctx, schema, schemafile.NormalizeValue(in.Value), normalizeInputs(in.Inputs))
	if err != nil {
		return nil, ValidateFieldOutput{}, err
	}
	serverLog.Printf("validate_field: valid=%t", diagnostic == "")
	return nil, ValidateFieldOutput{Valid: diagnostic == "", Diagnostic: diagnostic}, nil
}

func (s *Server) validateAnswers(ctx context.Context, _ *mcp.CallToolRequest, in ValidateAnswersInput) (*mcp.CallToolResult, ValidateAnswersOutput, error) {
	doc, err := schemafile.Parse([]byte(in.Document))
	if err != nil {
		return nil, ValidateAnswersOutput{}, err
	}
	answers := normalizeInputs(in.Answers)

	out := ValidateAnswersOutput{Valid: true}
	var fields []form.Field
	var positions []int
	for _, f := range doc.Fields {
		value, ok := answers[f.Name]
		if !ok {
			out.Fields = append(out.Fields, FieldResult{Name: f.Name, Missing: true, Diagnostic: "no answer given"})
			out.Valid = false
			continue
		}
		schema, err := f.Validation.Schema(s.predicates)
		if err != nil {
			return nil, ValidateAnswersOutput{}, fmt.Errorf("field %q: %w", f.Name, err)
		}
		positions = append(positions, len(out.Fields))
		out.Fields = append(out.Fields, FieldResult{Name: f.Name})
		fields = append(fields, form.Field{Name: f.Name, Schema: schema, Value: value})
	}

	results, err := form.Validate(ctx, s.engine, fields, form.Options{Inputs: answers})
	if err != nil {
		return nil, ValidateAnswersOutput{}, err
	}
	for i, r := range results {
		entry := &out.Fields[positions[i]]
		entry.Valid = r.Valid()
		entry.Diagnostic = r.Diagnostic
		if !entry.Valid {
			out.Valid = false
		}
	}
	return nil, out, nil
}

func normalizeInputs(raw map[string]any) validation.Inputs {
	inputs := make(validation.Inputs, len(raw))
	for k, v := range raw {
		inputs[k] = schemafile.NormalizeValue(v)
	}
	return inputs
}
