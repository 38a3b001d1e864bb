// Package suite defines the Go data structures that describe a battery of
// dataset checks. A suite names the dataset to load and lists the checks to
// run, each optionally parametrized over a list of columns. Suites are read
// from YAML files (see LoadSuiteFromFile) or built in code (see DefaultSuite).
package suite

import "fmt"

// SuiteWrapper represents a file with a top-level 'suite:' key.
type SuiteWrapper struct {
	Suite Suite `yaml:"suite"`
}

// Suite is the top-level check suite definition.
type Suite struct {
	Metadata Metadata `yaml:"metadata"`
	Dataset  Dataset  `yaml:"dataset"`
	Checks   []Check  `yaml:"checks"`
}

// Metadata contains descriptive information about the suite.
type Metadata struct {
	ID      string   `yaml:"id"`
	Title   string   `yaml:"title,omitempty"`
	Version string   `yaml:"version"`
	Tags    []string `yaml:"tags,omitempty"`
}

// Dataset describes where the data under test lives and how to parse it.
type Dataset struct {
	Path        string   `yaml:"path"`
	Format      string   `yaml:"format,omitempty"`
	Delimiter   string   `yaml:"delimiter,omitempty"`
	RecordXPath string   `yaml:"record_xpath,omitempty"`
	NullMarkers []string `yaml:"null_markers,omitempty"`
}

// Check is one entry of the battery. Columns parametrizes the check: it runs
// once per entry, and an empty (or YAML null) entry means "no column". A
// check without Columns runs once with no column.
type Check struct {
	Type        string   `yaml:"type"`
	Description string   `yaml:"description,omitempty"`
	Columns     []string `yaml:"columns,omitempty"`
}

// Case is a single invocation of a check with one column parameter.
type Case struct {
	Check  *Check
	Column string
	Index  int
}

// Name returns a stable identifier like "no_null_values[Year]".
func (c Case) Name() string {
	if c.Check == nil {
		return fmt.Sprintf("case_%d", c.Index)
	}
	if len(c.Check.Columns) == 0 {
		return c.Check.Type
	}
	param := c.Column
	if param == "" {
		param = "None"
	}
	return fmt.Sprintf("%s[%s]", c.Check.Type, param)
}

// Cases expands the suite's parametrization into an ordered list of cases.
func (s *Suite) Cases() []Case {
	var cases []Case
	for i := range s.Checks {
		check := &s.Checks[i]
		if len(check.Columns) == 0 {
			cases = append(cases, Case{Check: check, Index: len(cases)})
			continue
		}
		for _, col := range check.Columns {
			cases = append(cases, Case{Check: check, Column: col, Index: len(cases)})
		}
	}
	return cases
}
