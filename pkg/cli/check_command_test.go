//go:build !integration

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/githubnext/fieldcheck/pkg/fileutil"
	"github.com/githubnext/fieldcheck/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const checkSchema = `
fields:
  - name: app-name
    validation:
      minLength: 3
      pattern: "^[a-z-]+$"
  - name: port
    kind: number
    validation:
      minimum: 1024
      maximum: 65535
  - name: version
    validation:
      validFunc: semver
  - name: manifest
    kind: path
    validation:
      exists: true
`

func writeFiles(t *testing.T, schema, answers string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "schema.yaml")
	answersPath := filepath.Join(dir, "answers.yaml")
	require.NoError(t, os.WriteFile(schemaPath, []byte(schema), 0o644))
	require.NoError(t, os.WriteFile(answersPath, []byte(answers), 0o644))
	return schemaPath, answersPath
}

func testEngine() *validation.Engine {
	return validation.New(validation.WithPathChecker(fileutil.FSPathChecker{
		FS: fstest.MapFS{"app/manifest.json": &fstest.MapFile{Data: []byte("{}")}},
	}))
}

// TestNewCheckCommand tests that the check command is created correctly
func TestNewCheckCommand(t *testing.T) {
	cmd := NewCheckCommand()

	require.NotNil(t, cmd, "NewCheckCommand should return a non-nil command")
	assert.Equal(t, "check", cmd.Name())
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	require.NotNil(t, cmd.Flags().Lookup("schema"), "check command should have a --schema flag")
	assert.Equal(t, "s", cmd.Flags().Lookup("schema").Shorthand)
	require.NotNil(t, cmd.Flags().Lookup("answers"), "check command should have an --answers flag")
	assert.Equal(t, "a", cmd.Flags().Lookup("answers").Shorthand)
	require.NotNil(t, cmd.Flags().Lookup("json"))
	assert.Equal(t, "j", cmd.Flags().Lookup("json").Shorthand)
	require.NotNil(t, cmd.Flags().Lookup("fail-fast"))
	require.NotNil(t, cmd.Flags().Lookup("watch"))
}

func TestRunCheck_AllValid(t *testing.T) {
	schemaPath, answersPath := writeFiles(t, checkSchema, `
app-name: my-app
port: 8080
version: 1.4.0
manifest: /app/manifest.json
`)

	var out bytes.Buffer
	report, err := RunCheck(context.Background(), CheckConfig{
		SchemaPath:  schemaPath,
		AnswersPath: answersPath,
		Out:         &out,
		Engine:      testEngine(),
	})
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.True(t, report.Valid)
	assert.Zero(t, report.Invalid)
	assert.Len(t, report.Fields, 4)
	assert.Contains(t, out.String(), "All 4 fields are valid")
}

func TestRunCheck_Invalid(t *testing.T) {
	schemaPath, answersPath := writeFiles(t, checkSchema, `
app-name: My App
port: "80"
manifest: /app/missing.json
`)

	var out bytes.Buffer
	report, err := RunCheck(context.Background(), CheckConfig{
		SchemaPath:  schemaPath,
		AnswersPath: answersPath,
		JSONOutput:  true,
		Out:         &out,
		Engine:      testEngine(),
	})
	require.ErrorIs(t, err, ErrValidationFailed)
	require.NotNil(t, report)
	assert.False(t, report.Valid)
	assert.Equal(t, 4, report.Invalid)

	byName := make(map[string]FieldReport)
	for _, f := range report.Fields {
		byName[f.Name] = f
	}
	assert.NotEmpty(t, byName["app-name"].Diagnostic, "pattern should reject spaces and capitals")
	assert.NotEmpty(t, byName["port"].Diagnostic, "80 is below the minimum")
	assert.True(t, byName["version"].Missing)
	assert.Equal(t, "'/app/missing.json' does not meet condition of existence = true", byName["manifest"].Diagnostic)

	var decoded CheckReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded), "--json output should decode")
	assert.Equal(t, *report, decoded)
}

func TestRunCheck_FieldOrderPreserved(t *testing.T) {
	schemaPath, answersPath := writeFiles(t, checkSchema, "version: 2.0.0\n")

	var out bytes.Buffer
	report, err := RunCheck(context.Background(), CheckConfig{
		SchemaPath:  schemaPath,
		AnswersPath: answersPath,
		Out:         &out,
		Engine:      testEngine(),
	})
	require.ErrorIs(t, err, ErrValidationFailed)

	names := make([]string, 0, len(report.Fields))
	for _, f := range report.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"app-name", "port", "version", "manifest"}, names)
	assert.True(t, report.Fields[2].Valid)
}

func TestRunCheck_LoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := RunCheck(context.Background(), CheckConfig{
		SchemaPath:  filepath.Join(dir, "missing.yaml"),
		AnswersPath: filepath.Join(dir, "answers.yaml"),
		Out:         &bytes.Buffer{},
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrValidationFailed)

	schemaPath, answersPath := writeFiles(t, "fields:\n  - name: a\n    validation:\n      validFunc: nope\n", "a: x\n")
	_, err = RunCheck(context.Background(), CheckConfig{
		SchemaPath:  schemaPath,
		AnswersPath: answersPath,
		Out:         &bytes.Buffer{},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestCheckCommand_Execute(t *testing.T) {
	schemaPath, answersPath := writeFiles(t, "fields:\n  - name: a\n    validation:\n      maxLength: 2\n", "a: abc\n")

	cmd := NewCheckCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--schema", schemaPath, "--answers", answersPath, "--json"})

	err := cmd.Execute()
	require.ErrorIs(t, err, ErrValidationFailed)
	assert.Contains(t, out.String(), `"valid": false`)
}

func TestCheckCommand_RequiresFlags(t *testing.T) {
	cmd := NewCheckCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	assert.EqualError(t, cmd.Execute(), "--schema is required")
}

func TestCheckCommand_RequiresAnswers(t *testing.T) {
	cmd := NewCheckCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--schema", "schema.yaml"})

	assert.EqualError(t, cmd.Execute(), "--answers is required")
}

func TestRequireFlags(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]string
		wantErr string
	}{
		{name: "all set", values: map[string]string{"schema": "s", "answers": "a"}},
		{name: "first missing", values: map[string]string{"answers": "a"}, wantErr: "--schema is required"},
		{name: "second missing", values: map[string]string{"schema": "s"}, wantErr: "--answers is required"},
		{name: "both missing reports first", values: map[string]string{}, wantErr: "--schema is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := requireFlags(tt.values, "schema", "answers")
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
