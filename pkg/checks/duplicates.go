package checks

import (
	"log/slog"

	"dqv/pkg/dataset"
	"dqv/pkg/suite"
)

// NoDuplicateRows fails when the dataset is empty or when any row repeats an
// earlier row across all columns. The failure carries the duplicate count.
func NoDuplicateRows(ds *dataset.Dataset) (string, error) {
	if ds.Empty() {
		if src := ds.Source(); src != "" {
			return "", assertionf("The %s file is empty.", src)
		}
		return "", assertionf("The dataset is empty.")
	}

	dups := ds.DuplicateRows()
	slog.Debug("Duplicate rows computed", "path", ds.Path, "rows", ds.RowCount(), "duplicates", len(dups))

	if len(dups) > 0 {
		err := assertionf("Found %d duplicate rows.", len(dups))
		err.Count = len(dups)
		return "", err
	}
	return "No duplicate rows found.", nil
}

func noDuplicateRowsHandler(ds *dataset.Dataset, _ *suite.Check, _ string) (string, error) {
	return NoDuplicateRows(ds)
}

func init() {
	MustRegisterCheck(suite.TypeNoDuplicateRows, noDuplicateRowsHandler)
}
