package finance

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// cumulative turns per-ordinal returns into a cumulative curve in percent.
func cumulative(ordinals []int, returns []float64) Curve {
	if len(returns) == 0 {
		return Curve{}
	}
	sums := floats.CumSum(make([]float64, len(returns)), returns)
	points := make([]OrdinalValue, len(sums))
	for i, s := range sums {
		points[i] = OrdinalValue{TradingDay: ordinals[i], Value: s * 100}
	}
	return Curve{Points: points}
}

// averageCurve averages returns by trading day and accumulates them in
// ordinal order.
func averageCurve(rows []Row) Curve {
	byDay := map[int][]float64{}
	for _, r := range rows {
		byDay[r.TradingDay] = append(byDay[r.TradingDay], r.Return)
	}
	ordinals := make([]int, 0, len(byDay))
	for d := range byDay {
		ordinals = append(ordinals, d)
	}
	sort.Ints(ordinals)
	means := make([]float64, len(ordinals))
	for i, d := range ordinals {
		means[i] = stat.Mean(byDay[d], nil)
	}
	return cumulative(ordinals, means)
}

// realisedCurve accumulates the returns of consecutive rows of one month.
func realisedCurve(rows []Row) Curve {
	ordinals := make([]int, len(rows))
	returns := make([]float64, len(rows))
	for i, r := range rows {
		ordinals[i] = r.TradingDay
		returns[i] = r.Return
	}
	return cumulative(ordinals, returns)
}

func monthRows(rows []Row, month int) []Row {
	var out []Row
	for _, r := range rows {
		if r.Month == month {
			out = append(out, r)
		}
	}
	return out
}

// MonthProfileOf computes the seasonal profile of one month. The historical
// curve comes from the view; the current-year overlay is taken from the full
// series so it is shown whatever years are selected.
func MonthProfileOf(v *View, s *AssetSeries, month int, opts ProfileOptions) (*MonthProfile, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}
	p := &MonthProfile{Month: month}

	inMonth := monthRows(v.Rows, month)
	historical := inMonth
	if !opts.IncludeCurrentYear {
		historical = nil
		for _, r := range inMonth {
			if r.Year != v.CurrentYear {
				historical = append(historical, r)
			}
		}
	}
	p.Historical = averageCurve(historical)

	var yearRows []Row
	flush := func() {
		if len(yearRows) > 0 && yearRows[0].Year != v.CurrentYear {
			p.Years = append(p.Years, YearCurve{Year: yearRows[0].Year, Curve: realisedCurve(yearRows)})
		}
		yearRows = nil
	}
	for i, r := range inMonth {
		if i > 0 && r.Year != inMonth[i-1].Year {
			flush()
		}
		yearRows = append(yearRows, r)
	}
	flush()

	var current []Row
	for _, r := range s.Rows {
		if r.Year == s.CurrentYear && r.Month == month {
			current = append(current, r)
		}
	}
	p.CurrentYear = realisedCurve(current)
	return p, nil
}

// FullYearProfileOf lays the twelve monthly historical curves end to end.
// A month without rows takes EmptyMonthWidth positions and has no curve.
func FullYearProfileOf(v *View, opts ProfileOptions) *YearProfile {
	p := &YearProfile{Segments: make([]MonthSegment, 0, 12)}
	x := 0
	for m := 1; m <= 12; m++ {
		rows := monthRows(v.Rows, m)
		if !opts.IncludeCurrentYear {
			kept := rows[:0:0]
			for _, r := range rows {
				if r.Year != v.CurrentYear {
					kept = append(kept, r)
				}
			}
			rows = kept
		}
		seg := MonthSegment{Month: m, Start: x, Width: EmptyMonthWidth}
		if len(rows) > 0 {
			seg.Profile = averageCurve(rows)
			seg.Width = seg.Profile.Len()
		}
		p.Segments = append(p.Segments, seg)
		x += seg.Width
	}
	return p
}
