package checks

import (
	"fmt"

	"dqv/pkg/dataset"
	"dqv/pkg/suite"
)

// UniqueColumn requires column to exist and every row to hold a distinct,
// non-null value in it.
func UniqueColumn(ds *dataset.Dataset, column string) (string, error) {
	if err := requireColumn(ds, column); err != nil {
		return "", err
	}

	distinct, err := ds.DistinctCount(column)
	if err != nil {
		return "", err
	}
	if distinct != ds.RowCount() {
		aerr := assertionf("Column '%s' contains duplicate values.", column)
		aerr.Column = column
		return "", aerr
	}
	return fmt.Sprintf("All values in column '%s' are unique.", column), nil
}

func uniqueColumnHandler(ds *dataset.Dataset, _ *suite.Check, column string) (string, error) {
	if column == "" {
		return "", fmt.Errorf("%s requires a column", suite.TypeUniqueColumn)
	}
	return UniqueColumn(ds, column)
}

func init() {
	MustRegisterCheck(suite.TypeUniqueColumn, uniqueColumnHandler)
}
