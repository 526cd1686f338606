package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/githubnext/fieldcheck/pkg/console"
	"github.com/githubnext/fieldcheck/pkg/constants"
	"github.com/githubnext/fieldcheck/pkg/numconv"
	"github.com/githubnext/fieldcheck/pkg/stringutil"
)

// FormatValidationError formats an error for console output.
func FormatValidationError(err error) string {
	if err == nil {
		return ""
	}
	return console.FormatErrorMessage(err.Error())
}

// PrintValidationError prints err to stderr with console formatting.
func PrintValidationError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, FormatValidationError(err))
}

// writeReportJSON writes report as indented JSON.
func writeReportJSON(w io.Writer, report *CheckReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// renderReport renders report as a table followed by a summary line.
func renderReport(report *CheckReport) string {
	rows := make([][]string, 0, len(report.Fields))
	for _, f := range report.Fields {
		status := "ok"
		detail := ""
		switch {
		case f.Error != "":
			status = "error"
			detail = f.Error
		case f.Missing:
			status = "missing"
			detail = f.Diagnostic
		case !f.Valid:
			status = "invalid"
			detail = f.Diagnostic
		}
		rows = append(rows, []string{
			f.Name,
			stringutil.Truncate(f.Value, constants.MaxTableCellWidth),
			status,
			stringutil.Truncate(detail, constants.MaxTableCellWidth),
		})
	}

	var sb strings.Builder
	sb.WriteString(console.RenderTable(console.TableConfig{
		Title:   "Validation results",
		Headers: []string{"Field", "Value", "Status", "Diagnostic"},
		Rows:    rows,
	}))

	if report.Valid {
		sb.WriteString(console.FormatSuccessMessage(fmt.Sprintf("All %d fields are valid", len(report.Fields))))
	} else {
		sb.WriteString(console.FormatErrorMessage(fmt.Sprintf("%d of %d fields failed validation", report.Invalid, len(report.Fields))))
	}
	sb.WriteString("\n")
	return sb.String()
}

// displayValue renders an answer for the results table.
func displayValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []string:
		return strings.Join(x, ",")
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return numconv.Format(numconv.FromValue(x))
	default:
		return fmt.Sprintf("%v", v)
	}
}
