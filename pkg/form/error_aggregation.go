// This file collects collaborator errors raised while validating a form so a
// caller sees all of them in one run, or only the first in fail-fast mode.
//
//	collector := NewErrorCollector(failFast)
//	for _, r := range results {
//	    if err := collector.Add(r.Err); err != nil {
//	        return err // fail-fast
//	    }
//	}
//	return collector.FormattedError("field")

package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/githubnext/fieldcheck/pkg/logger"
)

var errorAggregationLog = logger.New("form:error_aggregation")

// ErrorCollector collects errors, optionally stopping at the first one.
type ErrorCollector struct {
	errors   []error
	failFast bool
}

// NewErrorCollector creates a collector. With failFast, Add hands back the
// first error instead of storing it.
func NewErrorCollector(failFast bool) *ErrorCollector {
	return &ErrorCollector{
		errors:   make([]error, 0),
		failFast: failFast,
	}
}

// Add records err. In fail-fast mode it returns err so the caller can stop;
// otherwise it returns nil. A nil err is ignored.
func (c *ErrorCollector) Add(err error) error {
	if err == nil {
		return nil
	}

	errorAggregationLog.Printf("Adding error to collector: %v", err)
	if c.failFast {
		return err
	}
	c.errors = append(c.errors, err)
	return nil
}

// HasErrors reports whether any error was recorded.
func (c *ErrorCollector) HasErrors() bool {
	return len(c.errors) > 0
}

// Count returns the number of recorded errors.
func (c *ErrorCollector) Count() int {
	return len(c.errors)
}

// Error joins the recorded errors with errors.Join, or returns nil.
func (c *ErrorCollector) Error() error {
	switch len(c.errors) {
	case 0:
		return nil
	case 1:
		return c.errors[0]
	default:
		return errors.Join(c.errors...)
	}
}

// FormattedError is like Error but prefixes several errors with a count
// header and one bullet per error. errors.Is still sees every recorded error.
func (c *ErrorCollector) FormattedError(category string) error {
	switch len(c.errors) {
	case 0:
		return nil
	case 1:
		return c.errors[0]
	}

	errorAggregationLog.Printf("Formatting %d %s errors", len(c.errors), category)
	var sb strings.Builder
	fmt.Fprintf(&sb, "found %d %s errors:", len(c.errors), category)
	for _, err := range c.errors {
		sb.WriteString("\n  • ")
		sb.WriteString(err.Error())
	}
	return &aggregateError{message: sb.String(), errs: c.errors}
}

type aggregateError struct {
	message string
	errs    []error
}

func (e *aggregateError) Error() string   { return e.message }
func (e *aggregateError) Unwrap() []error { return e.errs }
