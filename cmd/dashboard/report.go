package main

import (
	"fmt"
	"io"
	"strconv"

	"seasonalDashboard/internal/finance"
)

func trend(c finance.Curve) string {
	if c.Positive() {
		return "▲"
	}
	return "▼"
}

func writeMonthReport(w io.Writer, snap *finance.Snapshot, locale string) {
	mp := snap.MonthProfile
	fmt.Fprintf(w, "# %s • %s\n\n", snap.Asset, finance.MonthName(locale, mp.Month))
	fmt.Fprintf(w, "Years: %s\n\n", joinYears(snap.SelectedYears))
	if mp.Empty() {
		fmt.Fprintln(w, "No data for this month in the selected years.")
		return
	}
	if mp.Historical.Len() > 0 {
		fmt.Fprintf(w, "Historical mean: **%+.2f%%** %s\n\n", mp.Historical.Final(), trend(mp.Historical))
	} else {
		fmt.Fprint(w, "Historical mean: no data\n\n")
	}

	mean := ordinalValues(mp.Historical)
	current := ordinalValues(mp.CurrentYear)
	width := len(mean)
	if len(current) > width {
		width = len(current)
	}
	fmt.Fprintf(w, "| Day | Mean %% | %d %% |\n|---:|---:|---:|\n", snap.CurrentYear)
	for day := 1; day <= width; day++ {
		fmt.Fprintf(w, "| %d | %s | %s |\n", day, cell(mean, day), cell(current, day))
	}

	if len(mp.Years) > 0 {
		fmt.Fprint(w, "\n| Year | Final % |\n|---:|---:|\n")
		for _, y := range mp.Years {
			fmt.Fprintf(w, "| %d | %+.2f %s |\n", y.Year, y.Curve.Final(), trend(y.Curve))
		}
	}
}

func writeYearReport(w io.Writer, snap *finance.Snapshot, locale string) {
	fmt.Fprintf(w, "# %s • %s\n\n", snap.Asset, finance.MonthName(locale, finance.FullYear))
	fmt.Fprintf(w, "Years: %s\n\n", joinYears(snap.SelectedYears))
	fmt.Fprint(w, "| Month | Days | Mean % |\n|---|---:|---:|\n")
	for _, seg := range snap.YearProfile.Segments {
		name := finance.MonthName(locale, seg.Month)
		if seg.Empty() {
			fmt.Fprintf(w, "| %s | 0 | – |\n", name)
			continue
		}
		fmt.Fprintf(w, "| %s | %d | %+.2f %s |\n", name, seg.Profile.Len(), seg.Profile.Final(), trend(seg.Profile))
	}
}

func writeVolatilityReport(w io.Writer, snap *finance.Snapshot) {
	fmt.Fprintf(w, "# %s • volatility\n\n", snap.Asset)
	fmt.Fprintf(w, "Years: %s\n\n", joinYears(snap.SelectedYears))
	if n := len(snap.Volatility); n > 0 {
		last := snap.Volatility[n-1]
		fmt.Fprintf(w, "Rolling %d days on %s: **%.2f%%**\n\n", snap.Window, last.Date.Format("2006-01-02"), last.Value)
	} else {
		fmt.Fprintf(w, "Rolling %d days: not enough data\n\n", snap.Window)
	}
	if len(snap.AnnualVolatility) == 0 {
		return
	}
	fmt.Fprint(w, "| Year | Annualised % |\n|---:|---:|\n")
	for _, yv := range snap.AnnualVolatility {
		fmt.Fprintf(w, "| %d | %.2f |\n", yv.Year, yv.Value)
	}
}

func ordinalValues(c finance.Curve) map[int]float64 {
	out := make(map[int]float64, c.Len())
	for _, p := range c.Points {
		out[p.TradingDay] = p.Value
	}
	return out
}

func cell(values map[int]float64, day int) string {
	if v, ok := values[day]; ok {
		return fmt.Sprintf("%+.2f", v)
	}
	return ""
}

func joinYears(years []int) string {
	out := ""
	for i, y := range years {
		if i > 0 {
			out += ", "
		}
		out += strconv.Itoa(y)
	}
	return out
}
