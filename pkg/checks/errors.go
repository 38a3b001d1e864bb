package checks

import (
	"fmt"
	"strings"

	"dqv/pkg/dataset"
)

// ErrColumnNotFound is wrapped by the assertion raised when a check names a
// column the dataset does not have.
var ErrColumnNotFound = dataset.ErrColumnNotFound

// AssertionError reports a quality predicate that did not hold.
type AssertionError struct {
	Message     string
	Column      string
	Count       int            // duplicate rows or null cells, when relevant
	NullColumns map[string]int // global null check only
	Err         error
}

// Error implements the error interface
func (e *AssertionError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying sentinel, if any.
func (e *AssertionError) Unwrap() error {
	return e.Err
}

func assertionf(format string, args ...interface{}) *AssertionError {
	return &AssertionError{Message: fmt.Sprintf(format, args...)}
}

// requireColumn fails with a column-not-found assertion when column is absent.
func requireColumn(ds *dataset.Dataset, column string) error {
	if ds.HasColumn(column) {
		return nil
	}
	where := "dataset"
	if src := ds.Source(); src != "" {
		where = src
	}
	return &AssertionError{
		Message: fmt.Sprintf("Column '%s' does not exist in the %s.", column, where),
		Column:  column,
		Err:     ErrColumnNotFound,
	}
}

// formatCounts renders counts in the given column order, e.g. "Year: 1, Code: 2".
func formatCounts(order []string, counts map[string]int) string {
	parts := make([]string, 0, len(counts))
	for _, c := range order {
		if n, ok := counts[c]; ok {
			parts = append(parts, fmt.Sprintf("%s: %d", c, n))
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
