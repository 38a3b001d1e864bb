// Package suite also handles loading suite definitions from YAML files,
// parsing them into the defined Go structs, and performing basic validation.
package suite

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

const ExpectedVersion = "1.0"

// DefaultDatasetPath is the dataset checked when nothing else is configured.
const DefaultDatasetPath = "./data/in/decadal-deaths-disasters-type.csv"

// Check types understood by the validator.
const (
	TypeNoDuplicateRows = "no_duplicate_rows"
	TypeNoNullValues    = "no_null_values"
	TypeUniqueColumn    = "unique_column"
)

// KnownTypes lists every check type ValidateSuite accepts.
var KnownTypes = []string{TypeNoDuplicateRows, TypeNoNullValues, TypeUniqueColumn}

// DefaultSuite returns the built-in battery: duplicate rows, nulls overall
// and in Year and Code, and uniqueness of Year and Code.
func DefaultSuite(datasetPath string) *Suite {
	if datasetPath == "" {
		datasetPath = DefaultDatasetPath
	}
	return &Suite{
		Metadata: Metadata{
			ID:      "etl-sanity-checks",
			Title:   "ETL sanity checks",
			Version: ExpectedVersion,
		},
		Dataset: Dataset{Path: datasetPath},
		Checks: []Check{
			{Type: TypeNoDuplicateRows, Description: "no row repeats an earlier row"},
			{Type: TypeNoNullValues, Description: "no missing values", Columns: []string{"", "Year", "Code"}},
			{Type: TypeUniqueColumn, Description: "key columns hold distinct values", Columns: []string{"Year", "Code"}},
		},
	}
}

// LoadSuiteFromFile reads a suite definition from a YAML file path,
// unmarshals it and validates it. Both a bare suite and one wrapped in a
// top-level 'suite:' key are accepted.
func LoadSuiteFromFile(filePath string) (*Suite, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file '%s': %w", filePath, err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid suite file '%s': %w", filepath.Base(filePath), err)
	}
	return s, nil
}

// Parse decodes and validates a suite from YAML bytes.
func Parse(data []byte) (*Suite, error) {
	var wrapper SuiteWrapper
	if err := yaml.Unmarshal(data, &wrapper); err == nil && wrapper.Suite.Metadata.ID != "" {
		if err := ValidateSuite(&wrapper.Suite); err != nil {
			return nil, err
		}
		return &wrapper.Suite, nil
	}

	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("YAML parsing error: %w", err)
	}
	if err := ValidateSuite(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ValidateSuite checks a Suite for structural problems.
func ValidateSuite(s *Suite) error {
	if s == nil {
		return fmt.Errorf("nil suite cannot be validated")
	}

	if s.Metadata.ID == "" {
		return fmt.Errorf("metadata.id is required")
	}
	if s.Metadata.Version != ExpectedVersion {
		return fmt.Errorf("unsupported suite version: expected '%s', got '%s'", ExpectedVersion, s.Metadata.Version)
	}

	if s.Dataset.Delimiter != "" && utf8.RuneCountInString(s.Dataset.Delimiter) != 1 {
		return fmt.Errorf("dataset.delimiter must be a single character, got '%s'", s.Dataset.Delimiter)
	}

	if len(s.Checks) == 0 {
		return fmt.Errorf("checks must contain at least one check")
	}

	for i, check := range s.Checks {
		if check.Type == "" {
			return fmt.Errorf("checks[%d].type is required", i)
		}
		if !isKnownType(check.Type) {
			return fmt.Errorf("checks[%d].type '%s' is not one of %v", i, check.Type, KnownTypes)
		}

		switch check.Type {
		case TypeUniqueColumn:
			if len(check.Columns) == 0 {
				return fmt.Errorf("checks[%d].columns is required for %s", i, TypeUniqueColumn)
			}
			for j, col := range check.Columns {
				if col == "" {
					return fmt.Errorf("checks[%d].columns[%d] must name a column for %s", i, j, TypeUniqueColumn)
				}
			}
		case TypeNoDuplicateRows:
			if len(check.Columns) > 0 {
				return fmt.Errorf("checks[%d].columns is not supported for %s", i, TypeNoDuplicateRows)
			}
		}
	}

	return nil
}

func isKnownType(t string) bool {
	for _, k := range KnownTypes {
		if k == t {
			return true
		}
	}
	return false
}

// SaveSuiteToFile serializes a Suite to YAML and writes it to a file.
func SaveSuiteToFile(s *Suite, filePath string, asWrapper bool) error {
	var data []byte
	var err error

	if asWrapper {
		data, err = yaml.Marshal(SuiteWrapper{Suite: *s})
	} else {
		data, err = yaml.Marshal(s)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal suite to YAML: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write to file '%s': %w", filePath, err)
	}
	return nil
}
