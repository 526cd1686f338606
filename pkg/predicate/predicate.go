// Package predicate provides the named custom checks that schema documents
// can refer to with validFunc.
package predicate

import (
	"context"
	"fmt"
	"strings"

	"github.com/githubnext/fieldcheck/pkg/fileutil"
	"github.com/githubnext/fieldcheck/pkg/logger"
	"github.com/githubnext/fieldcheck/pkg/validation"
	"golang.org/x/mod/module"
)

var predicateLog = logger.New("predicate:predicate")

// Names of the built-in predicates.
const (
	NonBlank     = "nonblank"
	AbsolutePath = "absolute-path"
	SemVer       = "semver"
	ModulePath   = "module-path"
)

// Builtins returns a fresh registry of the built-in predicates. Callers may
// add their own entries to the returned map.
func Builtins() map[string]validation.Predicate {
	return map[string]validation.Predicate{
		NonBlank:     stringCheck(nonBlank),
		AbsolutePath: stringCheck(absolutePath),
		SemVer:       stringCheck(semVer),
		ModulePath:   stringCheck(modulePath),
	}
}

// stringCheck lifts a string check to a Predicate. Non-string values are
// rejected with a diagnostic.
func stringCheck(check func(string) string) validation.Predicate {
	return validation.PredicateFunc(func(_ context.Context, value any, _ validation.Inputs) (string, error) {
		s, ok := value.(string)
		if !ok {
			return fmt.Sprintf("expected text, got %T", value), nil
		}
		return check(s), nil
	})
}

func nonBlank(s string) string {
	if strings.TrimSpace(s) == "" {
		return "value must not be blank"
	}
	return ""
}

func absolutePath(s string) string {
	if _, err := fileutil.ValidateAbsolutePath(s); err != nil {
		return err.Error()
	}
	return ""
}

func semVer(s string) string {
	if !isSemanticVersion(s) {
		predicateLog.Printf("Rejected version: %s", s)
		return fmt.Sprintf("'%s' is not a semantic version (major.minor.patch)", s)
	}
	return ""
}

func modulePath(s string) string {
	if err := module.CheckPath(s); err != nil {
		return err.Error()
	}
	return ""
}
