package schemafile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/githubnext/fieldcheck/pkg/logger"
	"github.com/goccy/go-yaml"
)

var answersLog = logger.New("schemafile:answers")

// LoadAnswers reads a YAML map of field name to answer.
func LoadAnswers(path string) (map[string]any, error) {
	answersLog.Printf("Loading answers: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers: %w", err)
	}
	answers, err := ParseAnswers(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return answers, nil
}

// ParseAnswers decodes a YAML map of answers. Lists of strings become
// []string and numbers become float64; other values are kept as decoded.
func ParseAnswers(data []byte) (map[string]any, error) {
	generic, err := yamlToJSON(data)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := json.Unmarshal(generic, &raw); err != nil {
		return nil, fmt.Errorf("answers must be a map of field name to value: %w", err)
	}
	answers := make(map[string]any, len(raw))
	for name, value := range raw {
		answers[name] = NormalizeValue(value)
	}
	return answers, nil
}

// NormalizeValue converts a decoded JSON value to the shapes the validation
// engine accepts where possible.
func NormalizeValue(value any) any {
	items, ok := value.([]any)
	if !ok {
		return value
	}
	if list, ok := toStrings(items); ok {
		return list
	}
	return value
}

// SaveAnswers writes answers as YAML, keyed in document order. Answers for
// names the document does not define are dropped.
func SaveAnswers(path string, doc *Document, answers map[string]any) error {
	data, err := MarshalAnswers(doc, answers)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write answers: %w", err)
	}
	answersLog.Printf("Wrote %d answers to %s", len(answers), path)
	return nil
}

// MarshalAnswers renders answers as YAML in document order.
func MarshalAnswers(doc *Document, answers map[string]any) ([]byte, error) {
	ordered := yaml.MapSlice{}
	for _, f := range doc.Fields {
		if v, ok := answers[f.Name]; ok {
			ordered = append(ordered, yaml.MapItem{Key: f.Name, Value: v})
		}
	}
	data, err := yaml.Marshal(ordered)
	if err != nil {
		return nil, fmt.Errorf("failed to encode answers: %w", err)
	}
	return data, nil
}
