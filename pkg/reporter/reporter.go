// Package reporter provides functions for formatting and outputting execution results.
package reporter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"dqv/pkg/executor"
)

// PrintResult formats and prints the run summary to the provided writer.
func PrintResult(result *executor.ExecutionResult, w io.Writer) {
	if result == nil {
		fmt.Fprintln(w, "No result available.")
		return
	}

	// Create colored output helpers
	success := color.New(color.FgGreen).SprintFunc()
	failure := color.New(color.FgRed).SprintFunc()
	highlight := color.New(color.FgCyan).SprintFunc()
	warning := color.New(color.FgYellow).SprintFunc()

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 80))
	fmt.Fprintf(w, "Suite Result: %s\n", result.SuiteID)
	fmt.Fprintf(w, "%s\n\n", strings.Repeat("-", 80))

	statusStr := success("PASSED")
	if !result.Success {
		statusStr = failure("FAILED")
	}
	fmt.Fprintf(w, "Overall Status: %s\n", statusStr)
	fmt.Fprintf(w, "Run ID: %s\n", result.RunID)
	fmt.Fprintf(w, "Dataset: %s\n", highlight(result.DatasetPath))
	fmt.Fprintf(w, "Failure Policy: %s\n", result.Policy)
	fmt.Fprintf(w, "Execution Time: %s\n\n", time.Duration(result.Duration*float64(time.Second)))

	if len(result.CaseResults) > 0 {
		fmt.Fprintf(w, "%s (%d cases):\n", highlight("Checks"), len(result.CaseResults))
		for i, cr := range result.CaseResults {
			printCaseResult(w, i+1, cr, success, failure, warning)
		}
	}

	passed := 0
	for _, cr := range result.CaseResults {
		if cr.Success {
			passed++
		}
	}
	fmt.Fprintf(w, "\n%d held, %d failed", passed, result.Failed())
	if n := result.Swallowed(); n > 0 {
		fmt.Fprintf(w, ", %s", warning(fmt.Sprintf("%d reported as passed", n)))
	}
	fmt.Fprintln(w)

	if result.Error != nil {
		fmt.Fprintf(w, "Error: %s\n", failure(result.Error.Error()))
	}

	fmt.Fprintf(w, "%s\n", strings.Repeat("=", 80))
}

// printCaseResult formats one case line plus its diagnostic.
func printCaseResult(
	w io.Writer,
	n int,
	cr *executor.CaseResult,
	success, failure, warning func(a ...interface{}) string,
) {
	if cr == nil {
		return
	}

	var status string
	switch {
	case cr.Skipped:
		status = warning("-")
	case cr.Success:
		status = success("✓")
	case cr.Swallowed:
		status = warning("!")
	default:
		status = failure("✗")
	}

	fmt.Fprintf(w, "  %s %s\n", status, truncate(fmt.Sprintf("%d. %s", n, cr.Name), 60))

	switch {
	case cr.Skipped:
		fmt.Fprintf(w, "     %s\n", warning("skipped"))
	case !cr.Success:
		fmt.Fprintf(w, "     %s\n", failure(cr.Message))
	}
}

// truncate shortens s to at most limit runes, marking the cut with "...".
func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}
