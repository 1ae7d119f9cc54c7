package hdu

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/astrogo/fitsio"
)

// readTable flattens every row of a table HDU into strings, one cell per
// column in the order the columns are declared.
func readTable(tbl *fitsio.Table) (*TableData, error) {
	cols := tbl.Cols()
	names := make([]string, len(cols))
	for i, col := range cols {
		names[i] = col.Name
	}
	data := &TableData{
		Names: names,
		Rows:  make([][]string, 0, int(tbl.NumRows())),
	}

	rows, err := tbl.Read(0, tbl.NumRows())
	if err != nil {
		return nil, fmt.Errorf("could not read table rows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		cells := map[string]interface{}{}
		if err := rows.Scan(&cells); err != nil {
			return nil, fmt.Errorf("could not scan table row %d: %w", len(data.Rows), err)
		}
		row := make([]string, len(names))
		for i, name := range names {
			row[i] = cellString(cells[name])
		}
		data.Rows = append(data.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("table read failed: %w", err)
	}
	return data, nil
}

// cellString renders a single table cell. Character columns arrive either as
// strings or byte slices padded with blanks; both are decoded as text.
func cellString(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimRight(v, " \x00")
	case []byte:
		return strings.TrimRight(string(v), " \x00")
	case bool:
		if v {
			return "T"
		}
		return "F"
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	default:
		// array-valued and complex columns keep their Go rendering
		return fmt.Sprintf("%v", v)
	}
}
