package dataset

import "errors"

var (
	// ErrFileNotFound is returned when the dataset path does not resolve to a file.
	ErrFileNotFound = errors.New("file not found")

	// ErrEmptyData is returned when the file exists but has no parseable columns.
	ErrEmptyData = errors.New("no columns to parse from file")

	// ErrColumnNotFound is returned when a named column is not in the dataset.
	ErrColumnNotFound = errors.New("column not found")
)
