package checks

import (
	"fmt"

	"dqv/pkg/dataset"
	"dqv/pkg/suite"
)

// NoNullValues scans every column. On failure the error carries the null
// count of each column that has at least one null.
func NoNullValues(ds *dataset.Dataset) (string, error) {
	offending := make(map[string]int)
	for col, n := range ds.NullCounts() {
		if n > 0 {
			offending[col] = n
		}
	}

	if len(offending) > 0 {
		err := assertionf("Columns with null values: %s", formatCounts(ds.Columns(), offending))
		err.NullColumns = offending
		return "", err
	}
	return "No null values found in any columns.", nil
}

// NoNullValuesInColumn requires column to exist and to hold no nulls.
func NoNullValuesInColumn(ds *dataset.Dataset, column string) (string, error) {
	if err := requireColumn(ds, column); err != nil {
		return "", err
	}

	n, err := ds.NullCount(column)
	if err != nil {
		return "", err
	}
	if n != 0 {
		aerr := assertionf("Found %d null values in column '%s'.", n, column)
		aerr.Column = column
		aerr.Count = n
		return "", aerr
	}
	return fmt.Sprintf("No null values found in column '%s'.", column), nil
}

// noNullValuesHandler picks the whole-dataset scan when no column is given.
func noNullValuesHandler(ds *dataset.Dataset, _ *suite.Check, column string) (string, error) {
	if column == "" {
		return NoNullValues(ds)
	}
	return NoNullValuesInColumn(ds, column)
}

func init() {
	MustRegisterCheck(suite.TypeNoNullValues, noNullValuesHandler)
}
