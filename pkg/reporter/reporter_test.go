package reporter

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"dqv/pkg/executor"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestPrintResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	PrintResult(nil, &buf)
	assert.Equal(t, "No result available.\n", buf.String())
}

func TestPrintResult(t *testing.T) {
	result := &executor.ExecutionResult{
		RunID:       "run-1",
		SuiteID:     "etl-sanity-checks",
		DatasetPath: "data.csv",
		Policy:      executor.PolicyContinue,
		Success:     true,
		CaseResults: []*executor.CaseResult{
			{Name: "no_duplicate_rows", Success: true, Passed: true, Message: "No duplicate rows found."},
			{Name: "unique_column[Year]", Passed: true, Swallowed: true, Message: "Assertion failed: Column 'Year' contains duplicate values."},
			{Name: "unique_column[Code]", Skipped: true},
		},
	}

	var buf bytes.Buffer
	PrintResult(result, &buf)
	out := buf.String()

	assert.Contains(t, out, "Suite Result: etl-sanity-checks")
	assert.Contains(t, out, "Overall Status: PASSED")
	assert.Contains(t, out, "Run ID: run-1")
	assert.Contains(t, out, "✓ 1. no_duplicate_rows")
	assert.Contains(t, out, "! 2. unique_column[Year]")
	assert.Contains(t, out, "Column 'Year' contains duplicate values.")
	assert.Contains(t, out, "- 3. unique_column[Code]")
	assert.Contains(t, out, "1 held, 1 failed, 1 reported as passed")
	assert.NotContains(t, out, "No duplicate rows found.")
}

func TestPrintResult_Failed(t *testing.T) {
	result := &executor.ExecutionResult{
		SuiteID: "etl-sanity-checks",
		Policy:  executor.PolicyFail,
		CaseResults: []*executor.CaseResult{
			{Name: "no_null_values[Year]", Message: "Assertion failed: Found 1 null values in column 'Year'."},
		},
		Error: errors.New("1 of 1 checks failed"),
	}

	var buf bytes.Buffer
	PrintResult(result, &buf)
	out := buf.String()

	assert.Contains(t, out, "Overall Status: FAILED")
	assert.Contains(t, out, "✗ 1. no_null_values[Year]")
	assert.Contains(t, out, "Error: 1 of 1 checks failed")
	assert.Contains(t, out, "0 held, 1 failed\n")
}

func TestPrintResult_TruncatesNonASCIINames(t *testing.T) {
	name := "no_null_values[" + strings.Repeat("Année", 12) + "]"
	result := &executor.ExecutionResult{
		SuiteID:     "accents",
		Success:     true,
		CaseResults: []*executor.CaseResult{{Name: name, Success: true, Passed: true}},
	}

	var buf bytes.Buffer
	PrintResult(result, &buf)
	out := buf.String()

	assert.True(t, utf8.ValidString(out))
	assert.Contains(t, out, "✓ 1. no_null_values[Année")
	assert.Contains(t, out, "...\n")
	assert.NotContains(t, out, name)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 60))
	assert.Equal(t, "éééé...", truncate(strings.Repeat("é", 10), 7))
	assert.Equal(t, "ééééééé", truncate(strings.Repeat("é", 7), 7))
}
