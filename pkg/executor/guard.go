// Package executor implements the interception policy wrapped around every check case.
package executor

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"dqv/pkg/checks"
	"dqv/pkg/dataset"
)

// FailurePolicy decides what an intercepted failure does to the run.
type FailurePolicy string

const (
	// PolicyContinue prints the diagnostic and reports the case as passed.
	PolicyContinue FailurePolicy = "continue"

	// PolicyFail prints the diagnostic and reports the case as failed.
	PolicyFail FailurePolicy = "fail"
)

// ParseFailurePolicy maps a user supplied name to a FailurePolicy.
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch p := FailurePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", PolicyContinue:
		return PolicyContinue, nil
	case PolicyFail:
		return PolicyFail, nil
	default:
		return "", fmt.Errorf("unknown failure policy '%s' (want %s or %s)", s, PolicyContinue, PolicyFail)
	}
}

// FailureKind classifies an intercepted failure.
type FailureKind string

const (
	KindNone         FailureKind = ""
	KindFileNotFound FailureKind = "file_not_found"
	KindEmptyData    FailureKind = "empty_data"
	KindAssertion    FailureKind = "assertion"
	KindUnclassified FailureKind = "unclassified"
)

// Classify maps an error returned by a load or a check onto a FailureKind.
func Classify(err error) FailureKind {
	if err == nil {
		return KindNone
	}

	var aerr *checks.AssertionError
	switch {
	case errors.Is(err, dataset.ErrFileNotFound):
		return KindFileNotFound
	case errors.Is(err, dataset.ErrEmptyData):
		return KindEmptyData
	case errors.As(err, &aerr), errors.Is(err, checks.ErrColumnNotFound):
		return KindAssertion
	default:
		return KindUnclassified
	}
}

// Diagnostic renders the one-line message printed for an intercepted failure.
func Diagnostic(kind FailureKind, path string, err error) string {
	switch kind {
	case KindFileNotFound:
		return fmt.Sprintf("File not found: %s", path)
	case KindEmptyData:
		return fmt.Sprintf("File is empty: %s", path)
	case KindAssertion:
		return fmt.Sprintf("Assertion failed: %v", err)
	default:
		return fmt.Sprintf("An error occurred: %v", err)
	}
}

// Guard runs op and intercepts whatever it raises, panics included. The
// outcome is printed to out as a single line and returned as a timed
// CaseResult whose Name the caller fills in. Under PolicyContinue a failed
// op still yields Passed=true with Swallowed set.
func Guard(out io.Writer, path string, policy FailurePolicy, op func() (string, error)) (result *CaseResult) {
	result = &CaseResult{StartTime: time.Now()}

	defer func() {
		if r := recover(); r != nil {
			result.Error = fmt.Errorf("panic: %v", r)
		}

		result.EndTime = time.Now()
		result.Duration = result.EndTime.Sub(result.StartTime).Seconds()
		result.Kind = Classify(result.Error)
		result.Success = result.Error == nil

		if result.Success {
			result.Passed = true
			printLine(out, color.New(color.FgGreen), result.Message)
			return
		}

		result.Message = Diagnostic(result.Kind, path, result.Error)
		result.Passed = policy == PolicyContinue
		result.Swallowed = result.Passed
		printLine(out, color.New(color.FgRed), result.Message)

		slog.Warn("Check failure intercepted",
			"kind", result.Kind,
			"path", path,
			"swallowed", result.Swallowed,
			"error", result.Error)
	}()

	result.Message, result.Error = op()
	return result
}

var outputMu sync.Mutex

// printLine writes one diagnostic line. Writes are serialized so cases run
// in parallel never interleave within a line.
func printLine(out io.Writer, c *color.Color, msg string) {
	if out == nil || msg == "" {
		return
	}
	outputMu.Lock()
	defer outputMu.Unlock()
	c.Fprintln(out, msg)
}
