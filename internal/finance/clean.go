package finance

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// parseClose coerces a raw cell to a price. Empty, non-numeric and
// non-finite cells are rejected.
func parseClose(cell string) (float64, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// cleanColumn keeps the rows whose cell parses, keeping dates and values aligned.
func cleanColumn(dates []time.Time, cells []string) ([]time.Time, []float64) {
	n := len(dates)
	if len(cells) < n {
		n = len(cells)
	}
	outDates := make([]time.Time, 0, n)
	outClose := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		v, ok := parseClose(cells[i])
		if !ok {
			continue
		}
		outDates = append(outDates, dates[i])
		outClose = append(outClose, v)
	}
	return outDates, outClose
}
