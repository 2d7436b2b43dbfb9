package finance

import (
	"time"
)

// DateColumn is the canonical name the loader gives to the date column.
const DateColumn = "Date"

// TradingDaysPerYear annualises daily volatility.
const TradingDaysPerYear = 252

// EmptyMonthWidth is the number of x positions a month without data occupies
// in the full-year layout.
const EmptyMonthWidth = 21

// DefaultAnnualLookback is the number of trailing years used by AnnualVolatility.
const DefaultAnnualLookback = 10

// VolatilityWindows lists the accepted rolling windows, in trading days.
var VolatilityWindows = []int{21, 42, 63, 252}

// RawTable is the loaded dataset: one date per row, one raw cell per asset column.
type RawTable struct {
	Dates   []time.Time
	Columns []string
	cells   [][]string // cells[col][row]
	index   map[string]int
}

// Row is one trading day of an asset.
type Row struct {
	Date       time.Time `json:"date"`
	Close      float64   `json:"close"`
	Return     float64   `json:"return"`
	Year       int       `json:"year"`
	Month      int       `json:"month"`
	Day        int       `json:"day"`
	TradingDay int       `json:"trading_day"`
}

// AssetSeries is the cleaned daily series of one asset.
type AssetSeries struct {
	Asset       string
	Rows        []Row
	CurrentYear int
}

// View is the part of an AssetSeries selected for display. Positions holds the
// index of each row in the full series so gaps can be detected.
type View struct {
	Asset       string
	Rows        []Row
	Positions   []int
	CurrentYear int
}

// YearSelection is the year filter chosen by the user. Default is the
// initial state of the dashboard, where every year is selected, and wins over
// the other fields.
type YearSelection struct {
	Default bool
	All     bool
	Years   []int
}

// Point is a dated value.
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// YearValue is a value bucketed by calendar year.
type YearValue struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// OrdinalValue is a value keyed by trading day of month.
type OrdinalValue struct {
	TradingDay int     `json:"trading_day"`
	Value      float64 `json:"value"`
}

// Curve is a cumulative return curve in percent.
type Curve struct {
	Points []OrdinalValue `json:"points"`
}

// Final returns the last cumulative value, or 0 for an empty curve.
func (c Curve) Final() float64 {
	if len(c.Points) == 0 {
		return 0
	}
	return c.Points[len(c.Points)-1].Value
}

// Positive reports whether the curve ends at or above zero.
func (c Curve) Positive() bool { return c.Final() >= 0 }

// Len returns the number of ordinals in the curve.
func (c Curve) Len() int { return len(c.Points) }

// YearCurve is the cumulative curve of one historical year.
type YearCurve struct {
	Year  int   `json:"year"`
	Curve Curve `json:"curve"`
}

// MonthProfile is the seasonal picture of a single month.
type MonthProfile struct {
	Month       int         `json:"month"`
	Historical  Curve       `json:"historical"`
	CurrentYear Curve       `json:"current_year"`
	Years       []YearCurve `json:"years,omitempty"`
}

// Empty reports whether there is nothing to draw: no historical rows in the
// view and no current-year rows.
func (p *MonthProfile) Empty() bool {
	return p.Historical.Len() == 0 && p.CurrentYear.Len() == 0
}

// MonthSegment is one month of the full-year layout.
type MonthSegment struct {
	Month   int   `json:"month"`
	Start   int   `json:"start"`
	Width   int   `json:"width"`
	Profile Curve `json:"profile"`
}

// Empty reports whether the segment is a placeholder.
func (s MonthSegment) Empty() bool { return s.Profile.Len() == 0 }

// Tick returns the x position of the segment label.
func (s MonthSegment) Tick() float64 { return float64(s.Start) + float64(s.Width)/2 }

// YearProfile is the twelve months laid end to end on one axis.
type YearProfile struct {
	Segments []MonthSegment `json:"segments"`
}

// Width returns the total number of x positions.
func (p *YearProfile) Width() int {
	w := 0
	for _, s := range p.Segments {
		w += s.Width
	}
	return w
}

// ProfileOptions tunes the seasonal computation.
type ProfileOptions struct {
	// IncludeCurrentYear keeps the in-progress year in the historical mean.
	IncludeCurrentYear bool
}

// DefaultProfileOptions matches the behaviour of the dashboard.
func DefaultProfileOptions() ProfileOptions {
	return ProfileOptions{IncludeCurrentYear: true}
}
