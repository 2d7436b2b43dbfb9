package finance

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// annualise turns a daily standard deviation into an annual percentage.
func annualise(std float64) float64 {
	return std * math.Sqrt(TradingDaysPerYear) * 100
}

// ValidWindow reports whether w is one of VolatilityWindows.
func ValidWindow(w int) bool {
	for _, v := range VolatilityWindows {
		if v == w {
			return true
		}
	}
	return false
}

// RollingVolatility computes the annualised sample standard deviation of
// returns over the trailing window. Points whose window is not full are
// omitted; a window never spans a gap left by the year filter.
func RollingVolatility(v *View, window int) ([]Point, error) {
	if !ValidWindow(window) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, window)
	}
	returns := Returns(v.Rows)
	var out []Point
	for _, run := range v.runs() {
		for end := run[0] + window; end <= run[1]; end++ {
			std := stat.StdDev(returns[end-window:end], nil)
			out = append(out, Point{Date: v.Rows[end-1].Date, Value: annualise(std)})
		}
	}
	return out, nil
}

// AnnualVolatility computes the annualised volatility of each year within the
// lookback. Years with fewer than two observations are left out.
func AnnualVolatility(v *View, lookbackYears int) []YearValue {
	if lookbackYears < 0 {
		lookbackYears = DefaultAnnualLookback
	}
	from := v.CurrentYear - lookbackYears

	var out []YearValue
	var bucket []float64
	year := 0
	flush := func() {
		if len(bucket) >= 2 {
			out = append(out, YearValue{Year: year, Value: annualise(stat.StdDev(bucket, nil))})
		}
		bucket = bucket[:0]
	}
	for _, r := range v.Rows {
		if r.Year < from {
			continue
		}
		if r.Year != year {
			flush()
			year = r.Year
		}
		bucket = append(bucket, r.Return)
	}
	flush()
	return out
}
