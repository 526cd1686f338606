package validation

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/githubnext/fieldcheck/pkg/numconv"
)

var _ Schema = (*FileSchema)(nil)

// EmptyPathDiagnostic is reported for an empty path, before any existence check.
const EmptyPathDiagnostic = "file path should not be empty!"

// PathChecker answers whether a path exists. Implementations decide what
// "exists" means for their backing store; errors other than "not found" must
// be returned, not folded into false.
type PathChecker interface {
	PathExists(ctx context.Context, path string) (bool, error)
}

// FileSchema requires the value, read as a path, to exist (Exists true) or to
// be absent (Exists false).
type FileSchema struct {
	Exists bool
}

// FileExists returns a schema that requires the path to exist.
func FileExists() *FileSchema {
	return &FileSchema{Exists: true}
}

// FileAbsent returns a schema that requires the path not to exist.
func FileAbsent() *FileSchema {
	return &FileSchema{Exists: false}
}

func (s *FileSchema) strategy() string { return "file existence" }

func (e *Engine) validateFile(ctx context.Context, s *FileSchema, value any) (string, error) {
	path := pathOf(value)
	if path == "" {
		return EmptyPathDiagnostic, nil
	}
	if e.paths == nil {
		return "", ErrNoPathChecker
	}

	exists, err := e.paths.PathExists(ctx, path)
	if err != nil {
		return "", fmt.Errorf("check path %q: %w", path, err)
	}
	engineLog.Printf("Path %q exists=%v, want %v", path, exists, s.Exists)

	// Spelled "existence"; older tooling emitted "existance" and exact
	// string matches against it will not hit.
	if exists != s.Exists {
		return fmt.Sprintf("'%s' does not meet condition of existence = %t", path, s.Exists), nil
	}
	return "", nil
}

// pathOf reads value as a path. Numbers use their printed form, except 0 and
// NaN which, like an empty string, name no path at all.
func pathOf(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, ",")
	default:
		n := numconv.FromValue(v)
		if n == 0 || math.IsNaN(n) {
			return ""
		}
		return numconv.Format(n)
	}
}
