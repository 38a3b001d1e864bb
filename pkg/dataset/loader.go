package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies how a dataset file is parsed.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatHTML Format = "html"
	FormatXML  Format = "xml"
)

// Options controls how Load parses a file. The zero value detects the
// format from the file extension and uses DefaultNullMarkers.
type Options struct {
	Format      Format
	Delimiter   rune
	RecordXPath string
	NullMarkers []string
}

// ParseFormat maps a user supplied name to a Format. An empty name is valid
// and means "detect from extension".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatCSV, FormatTSV, FormatHTML, FormatXML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported dataset format '%s'", s)
	}
}

// DetectFormat picks a Format from the file extension, defaulting to CSV.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".tab":
		return FormatTSV
	case ".html", ".htm":
		return FormatHTML
	case ".xml":
		return FormatXML
	default:
		return FormatCSV
	}
}

// Load reads the dataset at path with default options.
func Load(path string) (*Dataset, error) {
	return LoadWithOptions(path, Options{})
}

// LoadWithOptions reads and parses the dataset at path. The file is closed
// before returning; the Dataset holds no reference to it.
func LoadWithOptions(path string, opts Options) (*Dataset, error) {
	format := opts.Format
	if format == "" {
		format = DetectFormat(path)
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to open dataset '%s': %w", path, err)
	}
	defer file.Close()

	slog.Debug("Loading dataset", "path", path, "format", format)

	var header []string
	var records [][]string
	var absent [][]bool
	r := bufio.NewReader(file)

	switch format {
	case FormatCSV, FormatTSV:
		delim := opts.Delimiter
		if delim == 0 {
			delim = ','
			if format == FormatTSV {
				delim = '\t'
			}
		}
		header, records, err = readDelimited(r, delim)
	case FormatHTML:
		header, records, err = readHTMLTable(r)
	case FormatXML:
		header, records, absent, err = readXMLRecords(r, opts.RecordXPath)
	default:
		err = fmt.Errorf("unsupported dataset format '%s'", format)
	}
	if err != nil {
		if errors.Is(err, ErrEmptyData) {
			return nil, fmt.Errorf("%w: %s", ErrEmptyData, path)
		}
		return nil, fmt.Errorf("failed to parse dataset '%s': %w", path, err)
	}

	ds, err := fromRecords(header, records, absent, opts.NullMarkers)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset '%s': %w", path, err)
	}
	ds.Path = path
	ds.Format = format

	slog.Debug("Dataset loaded", "path", path, "rows", ds.RowCount(), "columns", len(ds.columns))
	return ds, nil
}

// readDelimited reads a header line followed by data records. Blank lines are
// skipped by encoding/csv, so a file of only blank lines has no header.
func readDelimited(r io.Reader, delim rune) ([]string, [][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delim
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, ErrEmptyData
	}
	if err != nil {
		return nil, nil, err
	}
	header = append([]string(nil), header...)
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var records [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		if len(rec) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, nil, fmt.Errorf("line %d: expected %d fields, saw %d", line, len(header), len(rec))
		}
		records = append(records, rec)
	}
	return header, records, nil
}
