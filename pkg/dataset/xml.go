package dataset

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
)

// DefaultRecordXPath selects every child of the document element as a record.
const DefaultRecordXPath = "/*/*"

// readXMLRecords selects records with an XPath expression. Each element child
// of a record is a column; columns are ordered by first appearance. A record
// missing a column is flagged in the returned absent mask so the cell is null.
func readXMLRecords(r io.Reader, xpath string) ([]string, [][]string, [][]bool, error) {
	if xpath == "" {
		xpath = DefaultRecordXPath
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil, nil, ErrEmptyData
	}

	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	nodes, err := xmlquery.QueryAll(doc, xpath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to execute XPath query '%s': %w", xpath, err)
	}

	var header []string
	position := make(map[string]int)
	fields := make([]map[string]string, 0, len(nodes))

	for _, node := range nodes {
		rec := make(map[string]string)
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != xmlquery.ElementNode {
				continue
			}
			if _, ok := position[c.Data]; !ok {
				position[c.Data] = len(header)
				header = append(header, c.Data)
			}
			rec[c.Data] = strings.TrimSpace(c.InnerText())
		}
		fields = append(fields, rec)
	}

	if len(header) == 0 {
		return nil, nil, nil, ErrEmptyData
	}

	records := make([][]string, len(fields))
	absent := make([][]bool, len(fields))
	for i, rec := range fields {
		row := make([]string, len(header))
		missing := make([]bool, len(header))
		for j, name := range header {
			value, ok := rec[name]
			row[j] = value
			missing[j] = !ok
		}
		records[i] = row
		absent[i] = missing
	}
	return header, records, absent, nil
}
