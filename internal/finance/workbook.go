package finance

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Workbook sheet names.
const (
	SheetPrice      = "Price"
	SheetVolatility = "Volatility"
	SheetAnnual     = "Annual"
	SheetSeasonal   = "Seasonal"
)

// WriteWorkbook exports the series of a snapshot as an Excel workbook with
// one sheet per chart. Month names in the seasonal sheet follow locale.
func WriteWorkbook(w io.Writer, snap *Snapshot, locale string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetPrice); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	for _, name := range []string{SheetVolatility, SheetAnnual, SheetSeasonal} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", name, err)
		}
	}

	sheets := map[string][][]interface{}{
		SheetPrice:      priceRows(snap),
		SheetVolatility: pointRows("Volatility %", snap.Volatility),
		SheetAnnual:     annualRows(snap.AnnualVolatility),
		SheetSeasonal:   seasonalRows(snap, locale),
	}
	for name, rows := range sheets {
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				return fmt.Errorf("failed to write %s row %d: %w", name, i+1, err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func priceRows(snap *Snapshot) [][]interface{} {
	header := []interface{}{"Date", "Close"}
	sma := map[string]float64{}
	if snap.MovingAveragePeriod > 0 {
		header = append(header, fmt.Sprintf("SMA %d", snap.MovingAveragePeriod))
		for _, p := range snap.MovingAverage {
			sma[p.Date.Format("2006-01-02")] = p.Value
		}
	}
	rows := [][]interface{}{header}
	for _, p := range snap.Price {
		date := p.Date.Format("2006-01-02")
		row := []interface{}{date, p.Value}
		if snap.MovingAveragePeriod > 0 {
			if v, ok := sma[date]; ok {
				row = append(row, v)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func pointRows(label string, points []Point) [][]interface{} {
	rows := [][]interface{}{{"Date", label}}
	for _, p := range points {
		rows = append(rows, []interface{}{p.Date.Format("2006-01-02"), p.Value})
	}
	return rows
}

func annualRows(values []YearValue) [][]interface{} {
	rows := [][]interface{}{{"Year", "Volatility %"}}
	for _, yv := range values {
		rows = append(rows, []interface{}{yv.Year, yv.Value})
	}
	return rows
}

// seasonalRows lays out a month profile by trading day, or the full-year
// profile one month per row.
func seasonalRows(snap *Snapshot, locale string) [][]interface{} {
	if mp := snap.MonthProfile; mp != nil {
		header := []interface{}{"Trading day", historicalLabel(locale), snap.CurrentYear}
		for _, y := range mp.Years {
			header = append(header, y.Year)
		}
		rows := [][]interface{}{header}

		width := mp.Historical.Len()
		if n := mp.CurrentYear.Len(); n > width {
			width = n
		}
		for _, y := range mp.Years {
			if y.Curve.Len() > width {
				width = y.Curve.Len()
			}
		}
		curves := append([]Curve{mp.Historical, mp.CurrentYear}, yearCurves(mp.Years)...)
		for day := 1; day <= width; day++ {
			row := []interface{}{day}
			for _, c := range curves {
				if v, ok := valueAt(c, day); ok {
					row = append(row, v)
				} else {
					row = append(row, nil)
				}
			}
			rows = append(rows, row)
		}
		return rows
	}

	rows := [][]interface{}{{"Month", "Trading days", historicalLabel(locale)}}
	if snap.YearProfile == nil {
		return rows
	}
	for _, seg := range snap.YearProfile.Segments {
		if seg.Empty() {
			rows = append(rows, []interface{}{MonthName(locale, seg.Month), 0, nil})
			continue
		}
		rows = append(rows, []interface{}{MonthName(locale, seg.Month), seg.Profile.Len(), seg.Profile.Final()})
	}
	return rows
}

func yearCurves(years []YearCurve) []Curve {
	out := make([]Curve, len(years))
	for i, y := range years {
		out[i] = y.Curve
	}
	return out
}

func valueAt(c Curve, tradingDay int) (float64, bool) {
	for _, p := range c.Points {
		if p.TradingDay == tradingDay {
			return p.Value, true
		}
	}
	return 0, false
}
