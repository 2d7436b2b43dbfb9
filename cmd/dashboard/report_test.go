package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"seasonalDashboard/internal/finance"
)

func curve(values ...float64) finance.Curve {
	c := finance.Curve{}
	for i, v := range values {
		c.Points = append(c.Points, finance.OrdinalValue{TradingDay: i + 1, Value: v})
	}
	return c
}

func TestWriteMonthReport(t *testing.T) {
	snap := &finance.Snapshot{
		Asset:         "IBOV",
		CurrentYear:   2024,
		SelectedYears: []int{2022, 2023, 2024},
		MonthProfile: &finance.MonthProfile{
			Month:       3,
			Historical:  curve(0.5, 1.25, -0.4),
			CurrentYear: curve(1, 2),
			Years: []finance.YearCurve{
				{Year: 2023, Curve: curve(1, 3)},
				{Year: 2022, Curve: curve(-1, -2)},
			},
		},
	}

	var b strings.Builder
	writeMonthReport(&b, snap, "pt")
	out := b.String()

	assert.Contains(t, out, "# IBOV • Março")
	assert.Contains(t, out, "Years: 2022, 2023, 2024")
	assert.Contains(t, out, "Historical mean: **-0.40%** ▼")
	assert.Contains(t, out, "| 2 | +1.25 | +2.00 |")
	assert.Contains(t, out, "| 3 | -0.40 |  |")
	assert.Contains(t, out, "| 2023 | +3.00 ▲ |")
	assert.Contains(t, out, "| 2022 | -2.00 ▼ |")
}

func TestWriteMonthReport_Empty(t *testing.T) {
	snap := &finance.Snapshot{
		Asset:         "IBOV",
		SelectedYears: []int{2024},
		MonthProfile:  &finance.MonthProfile{Month: 7},
	}

	var b strings.Builder
	writeMonthReport(&b, snap, "en")
	assert.Contains(t, b.String(), "# IBOV • July")
	assert.Contains(t, b.String(), "No data for this month")
}

func TestWriteYearReport(t *testing.T) {
	snap := &finance.Snapshot{
		Asset:         "SPX",
		SelectedYears: []int{2023, 2024},
		YearProfile: &finance.YearProfile{Segments: []finance.MonthSegment{
			{Month: 1, Start: 0, Width: 3, Profile: curve(0.1, 0.2, 0.3)},
			{Month: 2, Start: 3, Width: finance.EmptyMonthWidth},
		}},
	}

	var b strings.Builder
	writeYearReport(&b, snap, "en")
	out := b.String()

	assert.Contains(t, out, "# SPX • Full Year")
	assert.Contains(t, out, "| January | 3 | +0.30 ▲ |")
	assert.Contains(t, out, "| February | 0 | – |")
}

func TestWriteVolatilityReport(t *testing.T) {
	snap := &finance.Snapshot{
		Asset:         "IBOV",
		SelectedYears: []int{2023, 2024},
		Window:        21,
		Volatility: []finance.Point{
			{Date: time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC), Value: 18.1},
			{Date: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), Value: 19.456},
		},
		AnnualVolatility: []finance.YearValue{{Year: 2023, Value: 21.5}},
	}

	var b strings.Builder
	writeVolatilityReport(&b, snap)
	out := b.String()
	assert.Contains(t, out, "Rolling 21 days on 2024-01-31: **19.46%**")
	assert.Contains(t, out, "| 2023 | 21.50 |")

	snap.Volatility = nil
	snap.AnnualVolatility = nil
	b.Reset()
	writeVolatilityReport(&b, snap)
	assert.Contains(t, b.String(), "Rolling 21 days: not enough data")
	assert.NotContains(t, b.String(), "Annualised")
}

func TestJoinYears(t *testing.T) {
	assert.Equal(t, "", joinYears(nil))
	assert.Equal(t, "2024", joinYears([]int{2024}))
	assert.Equal(t, "2022, 2023", joinYears([]int{2022, 2023}))
}

func TestWriteMonthReport_CurrentYearOnly(t *testing.T) {
	snap := &finance.Snapshot{
		Asset:         "IBOV",
		CurrentYear:   2024,
		SelectedYears: []int{2024},
		MonthProfile:  &finance.MonthProfile{Month: 1, CurrentYear: curve(0.5, 0.75)},
	}

	var b strings.Builder
	writeMonthReport(&b, snap, "en")
	out := b.String()
	assert.Contains(t, out, "Historical mean: no data")
	assert.Contains(t, out, "| 1 |  | +0.50 |")
	assert.Contains(t, out, "| 2 |  | +0.75 |")
}
