package finance

import (
	"fmt"
)

// BuildSeries extracts one asset from the table and derives returns and the
// calendar annotations used by the seasonal analysis.
func BuildSeries(raw *RawTable, asset string) (*AssetSeries, error) {
	name, ok := raw.Resolve(asset)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAsset, asset)
	}
	cells, _ := raw.Column(name)
	dates, closes := cleanColumn(raw.Dates, cells)

	rows := make([]Row, len(dates))
	type ym struct{ y, m int }
	rank := map[ym]int{}
	current := 0
	for i, d := range dates {
		ret := 0.0
		if i > 0 && closes[i-1] != 0 {
			ret = closes[i]/closes[i-1] - 1
		}
		key := ym{d.Year(), int(d.Month())}
		rank[key]++
		rows[i] = Row{
			Date:       d,
			Close:      closes[i],
			Return:     ret,
			Year:       key.y,
			Month:      key.m,
			Day:        d.Day(),
			TradingDay: rank[key],
		}
		if key.y > current {
			current = key.y
		}
	}
	return &AssetSeries{Asset: name, Rows: rows, CurrentYear: current}, nil
}

// Returns returns the daily returns of the rows.
func Returns(rows []Row) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r.Return
	}
	return out
}

// Closes returns the closing prices of the rows.
func Closes(rows []Row) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r.Close
	}
	return out
}
