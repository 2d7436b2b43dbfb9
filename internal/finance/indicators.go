package finance

import (
	"github.com/markcheno/go-talib"
)

// MovingAverage returns the simple moving average of the closing prices of
// the view. Only points with a full window are returned; windows restart
// after a gap left by the year filter.
func MovingAverage(v *View, period int) []Point {
	if period < 2 {
		return nil
	}
	var out []Point
	for _, run := range v.runs() {
		if run[1]-run[0] < period {
			continue
		}
		rows := v.Rows[run[0]:run[1]]
		sma := talib.Sma(Closes(rows), period)
		for i := period - 1; i < len(rows); i++ {
			out = append(out, Point{Date: rows[i].Date, Value: sma[i]})
		}
	}
	return out
}
