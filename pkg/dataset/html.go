package dataset

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// readHTMLTable reads the first <table> in the document. The first row that
// has cells is the header.
func readHTMLTable(r io.Reader) ([]string, [][]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, nil, ErrEmptyData
	}

	var rows [][]string
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		// Skip rows that belong to a nested table.
		if tr.Closest("table").Get(0) != table.Get(0) {
			return
		}
		var cells []string
		tr.ChildrenFiltered("th, td").Each(func(j int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	})

	if len(rows) == 0 {
		return nil, nil, ErrEmptyData
	}
	return rows[0], rows[1:], nil
}
