// Package dataset holds the in-memory table that every check runs against.
// A Dataset is built once per check case from a file on disk (see Load) and
// is read-only afterwards. It exposes the handful of descriptive statistics
// the checks need: row count, column names, null counts, distinct counts and
// fully duplicated rows.
package dataset

import (
	"fmt"
	"strings"
)

// DefaultNullMarkers lists the raw cell values treated as missing.
var DefaultNullMarkers = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None", "n/a",
	"nan", "null",
}

// Value is a single cell.
type Value struct {
	Raw  string
	Null bool
}

// Row is one record, aligned with the dataset columns.
type Row []Value

// Dataset is an ordered table with named columns.
type Dataset struct {
	Path    string
	Format  Format // set by Load; empty for datasets built in memory
	columns []string
	index   map[string]int
	rows    []Row
}

// FromRecords builds a Dataset from a header and raw records. Records shorter
// than the header are padded with nulls; longer records are rejected.
// A nil nullMarkers slice means DefaultNullMarkers.
func FromRecords(header []string, records [][]string, nullMarkers []string) (*Dataset, error) {
	return fromRecords(header, records, nil, nullMarkers)
}

// fromRecords is FromRecords with an optional absent mask: absent[i][j] set
// means record i had no field j, which is null whatever the markers say.
func fromRecords(header []string, records [][]string, absent [][]bool, nullMarkers []string) (*Dataset, error) {
	if len(header) == 0 {
		return nil, ErrEmptyData
	}
	if nullMarkers == nil {
		nullMarkers = DefaultNullMarkers
	}
	markers := make(map[string]struct{}, len(nullMarkers))
	for _, m := range nullMarkers {
		markers[m] = struct{}{}
	}

	ds := &Dataset{
		columns: normalizeHeader(header),
		rows:    make([]Row, 0, len(records)),
	}
	ds.index = make(map[string]int, len(ds.columns))
	for i, c := range ds.columns {
		ds.index[c] = i
	}

	for i, rec := range records {
		if len(rec) > len(ds.columns) {
			return nil, fmt.Errorf("record %d: expected %d fields, saw %d", i+1, len(ds.columns), len(rec))
		}
		row := make(Row, len(ds.columns))
		for j := range row {
			if j >= len(rec) || (i < len(absent) && j < len(absent[i]) && absent[i][j]) {
				row[j] = Value{Null: true}
				continue
			}
			_, isNull := markers[rec[j]]
			row[j] = Value{Raw: rec[j], Null: isNull}
		}
		ds.rows = append(ds.rows, row)
	}

	return ds, nil
}

// normalizeHeader names blank columns "Unnamed: i" and suffixes repeated
// names with ".n" so every column can be addressed by name.
func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := h
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			candidate := fmt.Sprintf("%s.%d", name, n+1)
			for {
				if _, taken := seen[candidate]; !taken {
					break
				}
				seen[name]++
				candidate = fmt.Sprintf("%s.%d", name, seen[name])
			}
			name = candidate
		}
		seen[name] = 0
		out[i] = name
	}
	return out
}

// Columns returns the column names in header order.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.columns))
	copy(out, d.columns)
	return out
}

// RowCount returns the number of data rows (the header is not counted).
func (d *Dataset) RowCount() int {
	return len(d.rows)
}

// Empty reports whether the dataset has no rows.
func (d *Dataset) Empty() bool {
	return len(d.rows) == 0
}

// HasColumn reports whether a column with the given name exists.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Source names what the dataset was read from, e.g. "CSV", for messages.
func (d *Dataset) Source() string {
	switch d.Format {
	case FormatCSV, FormatTSV:
		return "CSV"
	case FormatHTML:
		return "HTML"
	case FormatXML:
		return "XML"
	default:
		return ""
	}
}

// Row returns the i-th row.
func (d *Dataset) Row(i int) Row {
	return d.rows[i]
}

func (d *Dataset) columnIndex(name string) (int, error) {
	idx, ok := d.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: '%s'", ErrColumnNotFound, name)
	}
	return idx, nil
}

// NullCount returns the number of null cells in a column.
func (d *Dataset) NullCount(column string) (int, error) {
	idx, err := d.columnIndex(column)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, row := range d.rows {
		if row[idx].Null {
			n++
		}
	}
	return n, nil
}

// NullCounts returns the null count of every column, keyed by column name.
func (d *Dataset) NullCounts() map[string]int {
	counts := make(map[string]int, len(d.columns))
	for _, c := range d.columns {
		counts[c] = 0
	}
	for _, row := range d.rows {
		for i, v := range row {
			if v.Null {
				counts[d.columns[i]]++
			}
		}
	}
	return counts
}

// DistinctCount returns the number of distinct non-null values in a column.
func (d *Dataset) DistinctCount(column string) (int, error) {
	idx, err := d.columnIndex(column)
	if err != nil {
		return 0, err
	}
	seen := make(map[string]struct{}, len(d.rows))
	for _, row := range d.rows {
		if row[idx].Null {
			continue
		}
		seen[row[idx].Raw] = struct{}{}
	}
	return len(seen), nil
}

// DuplicateRows returns the indexes of rows that repeat an earlier row across
// all columns. Nulls compare equal to each other. The first occurrence of a
// repeated row is not included.
func (d *Dataset) DuplicateRows() []int {
	seen := make(map[string]struct{}, len(d.rows))
	var dups []int
	for i, row := range d.rows {
		key := row.key()
		if _, ok := seen[key]; ok {
			dups = append(dups, i)
			continue
		}
		seen[key] = struct{}{}
	}
	return dups
}

// key encodes a row so that equal rows produce equal keys. Each cell is
// length-prefixed, and nulls get their own tag so "" and a null never collide.
func (r Row) key() string {
	var b strings.Builder
	for _, v := range r {
		if v.Null {
			b.WriteString("N;")
			continue
		}
		fmt.Fprintf(&b, "V%d:%s;", len(v.Raw), v.Raw)
	}
	return b.String()
}
