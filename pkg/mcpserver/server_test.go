//go:build !integration

package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/githubnext/fieldcheck/pkg/predicate"
	"github.com/githubnext/fieldcheck/pkg/schemafile"
	"github.com/githubnext/fieldcheck/pkg/validation"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func newTestServer() *Server {
	return NewServer(validation.New(), predicate.Builtins(), "test")
}

func TestValidateField(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		name  string
		in    ValidateFieldInput
		valid bool
	}{
		{
			name:  "string within length",
			in:    ValidateFieldInput{Spec: schemafile.Spec{MinLength: intPtr(2)}, Value: "abc"},
			valid: true,
		},
		{
			name:  "string too short",
			in:    ValidateFieldInput{Spec: schemafile.Spec{MinLength: intPtr(5)}, Value: "abc"},
			valid: false,
		},
		{
			name:  "json list becomes string array",
			in:    ValidateFieldInput{Spec: schemafile.Spec{MinItems: intPtr(3)}, Value: []any{"a", "b"}},
			valid: false,
		},
		{
			name:  "json number",
			in:    ValidateFieldInput{Spec: schemafile.Spec{Equals: float64(4)}, Value: float64(4)},
			valid: true,
		},
		{
			name:  "builtin predicate",
			in:    ValidateFieldInput{Spec: schemafile.Spec{ValidFunc: predicate.SemVer}, Value: "1.2"},
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := s.validateField(context.Background(), nil, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, out.Valid)
			if tt.valid {
				assert.Empty(t, out.Diagnostic)
			} else {
				assert.NotEmpty(t, out.Diagnostic)
			}
		})
	}
}

func TestValidateField_Errors(t *testing.T) {
	s := newTestServer()

	_, _, err := s.validateField(context.Background(), nil, ValidateFieldInput{Value: true})
	assert.ErrorIs(t, err, validation.ErrUnsupportedValue)

	_, _, err = s.validateField(context.Background(), nil, ValidateFieldInput{
		Spec:  schemafile.Spec{ValidFunc: "does-not-exist"},
		Value: "x",
	})
	assert.ErrorIs(t, err, schemafile.ErrUnknownPredicate)
}

const answersDocument = `
fields:
  - name: name
    validation:
      minLength: 2
  - name: version
    validation:
      validFunc: semver
  - name: tags
    kind: multiselect
    options: [a, b]
    validation:
      enum: [a, b]
`

func TestValidateAnswers(t *testing.T) {
	s := newTestServer()

	_, out, err := s.validateAnswers(context.Background(), nil, ValidateAnswersInput{
		Document: answersDocument,
		Answers: map[string]any{
			"name":    "x",
			"version": "1.0.0",
		},
	})
	require.NoError(t, err)
	assert.False(t, out.Valid)
	require.Len(t, out.Fields, 3)

	assert.Equal(t, "name", out.Fields[0].Name)
	assert.False(t, out.Fields[0].Valid)
	assert.NotEmpty(t, out.Fields[0].Diagnostic)

	assert.Equal(t, "version", out.Fields[1].Name)
	assert.True(t, out.Fields[1].Valid)

	assert.Equal(t, "tags", out.Fields[2].Name)
	assert.True(t, out.Fields[2].Missing)
}

func TestValidateAnswers_AllValid(t *testing.T) {
	s := newTestServer()

	_, out, err := s.validateAnswers(context.Background(), nil, ValidateAnswersInput{
		Document: answersDocument,
		Answers: map[string]any{
			"name":    "demo",
			"version": "v2.1.0",
			"tags":    []any{"b"},
		},
	})
	require.NoError(t, err)
	assert.True(t, out.Valid)
	for _, f := range out.Fields {
		assert.True(t, f.Valid, "field %s should be valid", f.Name)
	}
}

func TestValidateAnswers_BadDocument(t *testing.T) {
	s := newTestServer()

	_, _, err := s.validateAnswers(context.Background(), nil, ValidateAnswersInput{Document: "fields: nope"})
	assert.ErrorIs(t, err, schemafile.ErrInvalidDocument)
}

func TestServer_InMemorySession(t *testing.T) {
	ctx := context.Background()
	s := newTestServer()

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	serverSession, err := s.MCP().Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer serverSession.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer session.Close()

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name: "validate_field",
		Arguments: map[string]any{
			"spec":  map[string]any{"maxLength": 3},
			"value": "toolong",
		},
	})
	require.NoError(t, err)
	require.False(t, res.IsError, "tool call should succeed")

	data, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	var out ValidateFieldOutput
	require.NoError(t, json.Unmarshal(data, &out))
	assert.False(t, out.Valid)
	assert.NotEmpty(t, out.Diagnostic)
}
