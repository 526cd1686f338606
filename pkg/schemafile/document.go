// Package schemafile reads questionnaire documents: an ordered list of
// fields, each with a prompt kind and a flat validation spec.
package schemafile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/githubnext/fieldcheck/pkg/logger"
	"github.com/goccy/go-yaml"
	"github.com/google/jsonschema-go/jsonschema"
)

var documentLog = logger.New("schemafile:document")

// Kind selects how a field is asked and how its answer is typed.
type Kind string

const (
	KindText        Kind = "text"
	KindNumber      Kind = "number"
	KindMultiSelect Kind = "multiselect"
	KindPath        Kind = "path"
)

// Kinds lists every valid Kind.
var Kinds = []Kind{KindText, KindNumber, KindMultiSelect, KindPath}

// ErrInvalidDocument wraps every structural problem found by Parse.
var ErrInvalidDocument = errors.New("invalid schema document")

// Document is a questionnaire.
type Document struct {
	Fields []Field `json:"fields" yaml:"fields" jsonschema:"questions in the order they are asked"`
}

// Field is one question.
type Field struct {
	Name        string   `json:"name" yaml:"name" jsonschema:"unique answer key"`
	Title       string   `json:"title,omitempty" yaml:"title,omitempty" jsonschema:"prompt shown to the user"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Kind        Kind     `json:"kind,omitempty" yaml:"kind,omitempty" jsonschema:"text, number, multiselect or path (default text)"`
	Options     []string `json:"options,omitempty" yaml:"options,omitempty" jsonschema:"choices of a multiselect field"`
	Validation  *Spec    `json:"validation,omitempty" yaml:"validation,omitempty"`
}

// EffectiveKind returns the field kind, defaulting to text.
func (f Field) EffectiveKind() Kind {
	if f.Kind == "" {
		return KindText
	}
	return f.Kind
}

// Prompt returns the title, falling back to the name.
func (f Field) Prompt() string {
	if f.Title != "" {
		return f.Title
	}
	return f.Name
}

// Lookup returns the field called name.
func (d *Document) Lookup(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

var documentSchema = sync.OnceValues(func() (*jsonschema.Resolved, error) {
	schema, err := documentJSONSchema()
	if err != nil {
		return nil, err
	}
	return schema.Resolve(nil)
})

func documentJSONSchema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[Document](nil)
	if err != nil {
		return nil, fmt.Errorf("failed to infer document schema: %w", err)
	}

	// Constraints that struct tags cannot express.
	field := schema.Properties["fields"].Items
	minName := 1
	field.Properties["name"].MinLength = &minName
	kinds := make([]any, len(Kinds))
	for i, k := range Kinds {
		kinds[i] = string(k)
	}
	field.Properties["kind"].Enum = kinds
	return schema, nil
}

// DocumentJSONSchema returns the JSON Schema that Parse checks documents
// against, indented for display.
func DocumentJSONSchema() ([]byte, error) {
	schema, err := documentJSONSchema()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(schema, "", "  ")
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	documentLog.Printf("Loading schema document: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema document: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a YAML (or JSON) document and checks its structure.
func Parse(data []byte) (*Document, error) {
	generic, err := yamlToJSON(data)
	if err != nil {
		return nil, err
	}

	var instance any
	if err := json.Unmarshal(generic, &instance); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	resolved, err := documentSchema()
	if err != nil {
		return nil, err
	}
	if err := resolved.Validate(instance); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	var doc Document
	dec := json.NewDecoder(bytes.NewReader(generic))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	if err := doc.check(); err != nil {
		return nil, err
	}
	documentLog.Printf("Parsed schema document with %d fields", len(doc.Fields))
	return &doc, nil
}

func (d *Document) check() error {
	seen := make(map[string]bool, len(d.Fields))
	for i, f := range d.Fields {
		if f.Name == "" {
			return fmt.Errorf("%w: field #%d has no name", ErrInvalidDocument, i+1)
		}
		if !slices.Contains(Kinds, f.EffectiveKind()) {
			return fmt.Errorf("%w: field %q has unknown kind %q", ErrInvalidDocument, f.Name, f.Kind)
		}
		if seen[f.Name] {
			return fmt.Errorf("%w: duplicate field name %q", ErrInvalidDocument, f.Name)
		}
		seen[f.Name] = true

		if f.EffectiveKind() == KindMultiSelect && len(f.Options) == 0 {
			return fmt.Errorf("%w: field %q (#%d) is a multiselect without options", ErrInvalidDocument, f.Name, i+1)
		}
	}
	return nil
}

// yamlToJSON decodes YAML into generic values and re-encodes them as JSON so
// that schema validation and typed decoding see JSON types only.
func yamlToJSON(data []byte) ([]byte, error) {
	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if generic == nil {
		return nil, fmt.Errorf("%w: document is empty", ErrInvalidDocument)
	}
	out, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return out, nil
}
