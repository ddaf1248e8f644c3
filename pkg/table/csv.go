package table

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/gplotdev/gplot/pkg/errors"
)

// ReadCSV reads a header-first CSV stream into a table. Column types
// are sniffed: a column whose every non-empty value parses as a number
// becomes a Floats column (empty cells become NaN); everything else
// becomes a Strings column.
func ReadCSV(r io.Reader) (*Table, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "reading csv")
	}
	if len(records) == 0 {
		return New(), nil
	}
	header := records[0]
	rows := records[1:]

	t := New()
	for ci, name := range header {
		numeric := true
		for _, row := range rows {
			if ci >= len(row) || row[ci] == "" {
				continue
			}
			if _, err := strconv.ParseFloat(row[ci], 64); err != nil {
				numeric = false
				break
			}
		}
		if numeric {
			col := make(Floats, len(rows))
			for ri, row := range rows {
				if ci >= len(row) || row[ci] == "" {
					col[ri] = nan
					continue
				}
				col[ri], _ = strconv.ParseFloat(row[ci], 64)
			}
			t.Set(name, col)
		} else {
			col := make(Strings, len(rows))
			for ri, row := range rows {
				if ci < len(row) {
					col[ri] = row[ci]
				}
			}
			t.Set(name, col)
		}
	}
	return t, nil
}
