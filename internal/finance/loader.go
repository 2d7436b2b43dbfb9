package finance

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// LoadTable reads the CSV data file at path. dateColumn names the date
// header and is matched case-insensitively; the first match wins.
func LoadTable(path, dateColumn string) (*RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	defer f.Close()
	return ReadTable(f, dateColumn)
}

// ReadTable parses a CSV stream into a RawTable. Rows whose date does not
// parse are dropped and the remaining rows are sorted by date.
func ReadTable(r io.Reader, dateColumn string) (*RawTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyTable
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	dateIdx := -1
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), dateColumn) {
			dateIdx = i
			break
		}
	}
	if dateIdx < 0 {
		return nil, fmt.Errorf("%w: want %q, have %v", ErrDateColumnMissing, dateColumn, header)
	}

	var assetIdx []int
	var columns []string
	seen := map[string]int{}
	for i, h := range header {
		if i == dateIdx {
			continue
		}
		assetIdx = append(assetIdx, i)
		columns = append(columns, uniqueName(strings.TrimSpace(h), seen))
	}

	type record struct {
		date  time.Time
		cells []string
	}
	var records []record
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		if dateIdx >= len(fields) {
			continue
		}
		d, ok := parseDate(fields[dateIdx])
		if !ok {
			continue
		}
		cells := make([]string, len(assetIdx))
		for j, idx := range assetIdx {
			if idx < len(fields) {
				cells[j] = fields[idx]
			}
		}
		records = append(records, record{date: d, cells: cells})
	}

	sort.SliceStable(records, func(i, j int) bool { return records[i].date.Before(records[j].date) })

	t := &RawTable{
		Dates:   make([]time.Time, len(records)),
		Columns: columns,
		cells:   make([][]string, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for c := range columns {
		t.cells[c] = make([]string, len(records))
		t.index[columns[c]] = c
	}
	for i, rec := range records {
		t.Dates[i] = rec.date
		for c, v := range rec.cells {
			t.cells[c][i] = v
		}
	}
	return t, nil
}

// uniqueName suffixes repeated headers with .1, .2, ...
func uniqueName(name string, seen map[string]int) string {
	n, dup := seen[name]
	seen[name] = n + 1
	if !dup {
		return name
	}
	for {
		candidate := name + "." + strconv.Itoa(n)
		if _, taken := seen[candidate]; !taken {
			seen[candidate] = 1
			return candidate
		}
		n++
	}
}

// Len returns the number of dated rows.
func (t *RawTable) Len() int { return len(t.Dates) }

// Column returns the raw cells of an asset column.
func (t *RawTable) Column(asset string) ([]string, bool) {
	c, ok := t.index[asset]
	if !ok {
		return nil, false
	}
	return t.cells[c], true
}

// Resolve maps a user supplied asset name to a column, exact match first.
func (t *RawTable) Resolve(asset string) (string, bool) {
	if _, ok := t.index[asset]; ok {
		return asset, true
	}
	for _, c := range t.Columns {
		if strings.EqualFold(c, strings.TrimSpace(asset)) {
			return c, true
		}
	}
	return "", false
}
