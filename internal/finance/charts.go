package finance

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vicanso/go-charts/v2"
)

// Chart kinds served by the dashboard.
const (
	ChartPrice      = "price"
	ChartVolatility = "volatility"
	ChartAnnual     = "annual"
	ChartSeasonal   = "seasonal"
)

const (
	chartWidth  = 1000
	chartHeight = 400

	themeSeasonUp   = "seasonal-up"
	themeSeasonDown = "seasonal-down"
	themeFullYear   = "seasonal-full-year"
	themePrice      = "seasonal-price"
	themeVolatility = "seasonal-volatility"
)

var (
	colorBackground = charts.Color{R: 0x1e, G: 0x1e, B: 0x1e, A: 255}
	colorText       = charts.Color{R: 0xe0, G: 0xe0, B: 0xe0, A: 255}
	colorAxis       = charts.Color{R: 0xaa, G: 0xaa, B: 0xaa, A: 255}
	colorGrid       = charts.Color{R: 0x44, G: 0x44, B: 0x44, A: 255}
	colorPositive   = charts.Color{R: 0x00, G: 0xe6, B: 0x76, A: 255}
	colorNegative   = charts.Color{R: 0xff, G: 0x17, B: 0x44, A: 255}
	colorCurrent    = charts.Color{R: 0x29, G: 0x80, B: 0xb9, A: 255}
	colorYear       = charts.Color{R: 0x80, G: 0x80, B: 0x80, A: 110}
	colorPrice      = charts.Color{R: 0x00, G: 0xb8, B: 0x94, A: 255}
	colorAverage    = charts.Color{R: 0xfd, G: 0xcb, B: 0x6e, A: 255}
	colorVolatility = charts.Color{R: 0xff, G: 0x76, B: 0x75, A: 255}
)

// maxYearCurves bounds the grey per-year curves so each one keeps its colour.
const maxYearCurves = 60

func init() {
	dark := func(series ...charts.Color) charts.ThemeOption {
		return charts.ThemeOption{
			IsDarkMode:         true,
			AxisStrokeColor:    colorAxis,
			AxisSplitLineColor: colorGrid,
			BackgroundColor:    colorBackground,
			TextColor:          colorText,
			SeriesColors:       series,
		}
	}
	withYears := func(head ...charts.Color) []charts.Color {
		out := append([]charts.Color{}, head...)
		for i := 0; i < maxYearCurves; i++ {
			out = append(out, colorYear)
		}
		return out
	}
	charts.AddTheme(themeSeasonUp, dark(withYears(colorPositive, colorCurrent)...))
	charts.AddTheme(themeSeasonDown, dark(withYears(colorNegative, colorCurrent)...))
	charts.AddTheme(themeFullYear, dark(colorPositive, colorNegative))
	charts.AddTheme(themePrice, dark(colorPrice, colorAverage))
	charts.AddTheme(themeVolatility, dark(colorVolatility))
}

// Charts renders dashboard snapshots to PNG.
type Charts struct {
	locale string
	light  bool
	cache  *chartCache
}

// NewCharts returns a renderer that labels months in locale and keeps
// rendered images for ttl. theme "light" switches the price and volatility
// charts to the stock light theme; seasonal charts always use the dark one.
func NewCharts(locale, theme string, ttl time.Duration) *Charts {
	return &Charts{locale: locale, light: strings.EqualFold(theme, "light"), cache: newChartCache(ttl)}
}

func (c *Charts) theme(dark string) string {
	if c.light {
		return charts.ThemeLight
	}
	return dark
}

// Render draws one chart kind of the snapshot. key identifies the query for
// caching; an empty key disables the cache.
func (c *Charts) Render(kind string, snap *Snapshot, key string) ([]byte, error) {
	cacheKey := kind + "|" + key
	if key != "" {
		if img, ok := c.cache.get(cacheKey); ok {
			return img, nil
		}
	}
	var (
		img []byte
		err error
	)
	switch kind {
	case ChartPrice:
		img, err = c.Price(snap)
	case ChartVolatility:
		img, err = c.Volatility(snap)
	case ChartAnnual:
		img, err = c.AnnualVolatility(snap)
	case ChartSeasonal:
		img, err = c.Seasonal(snap)
	default:
		return nil, fmt.Errorf("unknown chart %q", kind)
	}
	if err != nil {
		return nil, err
	}
	if key != "" {
		c.cache.set(cacheKey, img)
	}
	return img, nil
}

// Price draws the closing prices of the view, with the moving average when
// the snapshot carries one.
func (c *Charts) Price(snap *Snapshot) ([]byte, error) {
	if len(snap.Price) < 2 {
		return nil, ErrNoData
	}
	x := make([]string, len(snap.Price))
	closes := make([]float64, len(snap.Price))
	for i, p := range snap.Price {
		x[i] = p.Date.Format("2006-01-02")
		closes[i] = p.Value
	}
	values := [][]float64{closes}
	names := []string{snap.Asset}
	if len(snap.MovingAverage) > 0 {
		values = append(values, alignPoints(snap.Price, snap.MovingAverage))
		names = append(names, "SMA")
	}
	yMin, yMax := paddedRange(values...)
	if yMin < 0 {
		yMin = 0
	}

	p, err := charts.LineRender(values,
		charts.TitleTextOptionFunc(snap.Asset, yearsSubtitle(snap)),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: x, BoundaryGap: charts.FalseFlag(), SplitNumber: 10}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.LegendOptionFunc(charts.LegendOption{Data: names, Left: charts.PositionRight}),
		charts.ThemeOptionFunc(c.theme(themePrice)),
		charts.WidthOptionFunc(chartWidth),
		charts.HeightOptionFunc(chartHeight),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return p.Bytes()
}

// Volatility draws the rolling annualised volatility.
func (c *Charts) Volatility(snap *Snapshot) ([]byte, error) {
	if len(snap.Volatility) < 2 {
		return nil, ErrNoData
	}
	x := make([]string, len(snap.Volatility))
	vol := make([]float64, len(snap.Volatility))
	for i, p := range snap.Volatility {
		x[i] = p.Date.Format("2006-01-02")
		vol[i] = p.Value
	}
	yMin, yMax := paddedRange(vol)
	if yMin < 0 {
		yMin = 0
	}
	p, err := charts.LineRender([][]float64{vol},
		charts.TitleTextOptionFunc(fmt.Sprintf("%s • vol %dd", snap.Asset, snap.Window), "annualised %"),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: x, BoundaryGap: charts.FalseFlag(), SplitNumber: 10}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.ThemeOptionFunc(c.theme(themeVolatility)),
		charts.WidthOptionFunc(chartWidth),
		charts.HeightOptionFunc(chartHeight),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return p.Bytes()
}

// AnnualVolatility draws one bar per year.
func (c *Charts) AnnualVolatility(snap *Snapshot) ([]byte, error) {
	if len(snap.AnnualVolatility) == 0 {
		return nil, ErrNoData
	}
	x := make([]string, len(snap.AnnualVolatility))
	vol := make([]float64, len(snap.AnnualVolatility))
	for i, yv := range snap.AnnualVolatility {
		x[i] = strconv.Itoa(yv.Year)
		vol[i] = yv.Value
	}
	p, err := charts.BarRender([][]float64{vol},
		charts.TitleTextOptionFunc(snap.Asset+" • annual volatility", "annualised %"),
		charts.XAxisDataOptionFunc(x),
		charts.ThemeOptionFunc(c.theme(themeVolatility)),
		charts.WidthOptionFunc(chartWidth/2),
		charts.HeightOptionFunc(chartHeight),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return p.Bytes()
}

// Seasonal draws the month profile or the full-year layout, whichever the
// snapshot holds.
func (c *Charts) Seasonal(snap *Snapshot) ([]byte, error) {
	switch {
	case snap.MonthProfile != nil:
		return c.monthChart(snap.Asset, snap.CurrentYear, snap.MonthProfile)
	case snap.YearProfile != nil:
		return c.yearChart(snap.Asset, snap.YearProfile)
	}
	return nil, errors.New("snapshot has no seasonal profile")
}

func (c *Charts) monthChart(asset string, currentYear int, mp *MonthProfile) ([]byte, error) {
	if mp.Empty() {
		return nil, ErrNoData
	}
	width := mp.Historical.Len()
	for _, y := range mp.Years {
		if n := lastOrdinal(y.Curve); n > width {
			width = n
		}
	}
	if n := lastOrdinal(mp.CurrentYear); n > width {
		width = n
	}
	if n := lastOrdinal(mp.Historical); n > width {
		width = n
	}

	x := make([]string, width)
	for i := range x {
		x[i] = strconv.Itoa(i + 1)
	}
	values := [][]float64{spread(mp.Historical, width), spread(mp.CurrentYear, width)}
	names := []string{historicalLabel(c.locale), strconv.Itoa(currentYear)}
	years := mp.Years
	if len(years) > maxYearCurves {
		years = years[len(years)-maxYearCurves:]
	}
	for _, y := range years {
		values = append(values, spread(y.Curve, width))
	}

	theme := themeSeasonUp
	if !mp.Historical.Positive() {
		theme = themeSeasonDown
	}
	yMin, yMax := paddedRange(values...)
	p, err := charts.LineRender(values,
		charts.TitleTextOptionFunc(seasonalityLabel(c.locale)+": "+MonthName(c.locale, mp.Month), asset+" • %"),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: x, BoundaryGap: charts.FalseFlag()}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.LegendOptionFunc(charts.LegendOption{Data: names, Left: charts.PositionLeft}),
		charts.ThemeOptionFunc(theme),
		charts.WidthOptionFunc(chartWidth),
		charts.HeightOptionFunc(chartHeight),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return p.Bytes()
}

// yearChart draws the twelve segments as two series, rising and falling
// months, with null values outside each segment so lines break at the
// placeholders.
func (c *Charts) yearChart(asset string, yp *YearProfile) ([]byte, error) {
	width := yp.Width()
	null := charts.GetNullValue()
	up := make([]float64, width)
	down := make([]float64, width)
	x := make([]string, width)
	initials := MonthInitials(c.locale)
	drawn := 0
	for _, seg := range yp.Segments {
		for i := 0; i < seg.Width; i++ {
			pos := seg.Start + i
			x[pos] = initials[seg.Month-1]
			up[pos], down[pos] = null, null
			if i < seg.Profile.Len() {
				v := seg.Profile.Points[i].Value
				if seg.Profile.Positive() {
					up[pos] = v
				} else {
					down[pos] = v
				}
			}
		}
		if !seg.Empty() {
			drawn++
		}
	}
	if drawn == 0 {
		return nil, ErrNoData
	}
	yMin, yMax := paddedRange(up, down)
	p, err := charts.LineRender([][]float64{up, down},
		charts.TitleTextOptionFunc(seasonalityLabel(c.locale)+": "+MonthName(c.locale, FullYear), asset+" • %"),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: x, BoundaryGap: charts.FalseFlag(), SplitNumber: 12}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.ThemeOptionFunc(themeFullYear),
		charts.WidthOptionFunc(chartWidth),
		charts.HeightOptionFunc(chartHeight),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return p.Bytes()
}

// spread places curve values at their trading-day positions, null elsewhere.
func spread(c Curve, width int) []float64 {
	null := charts.GetNullValue()
	out := make([]float64, width)
	for i := range out {
		out[i] = null
	}
	for _, p := range c.Points {
		if p.TradingDay >= 1 && p.TradingDay <= width {
			out[p.TradingDay-1] = p.Value
		}
	}
	return out
}

func lastOrdinal(c Curve) int {
	if len(c.Points) == 0 {
		return 0
	}
	return c.Points[len(c.Points)-1].TradingDay
}

// alignPoints maps dated values onto the dates of base, null where absent.
func alignPoints(base, values []Point) []float64 {
	null := charts.GetNullValue()
	byDate := make(map[time.Time]float64, len(values))
	for _, p := range values {
		byDate[p.Date] = p.Value
	}
	out := make([]float64, len(base))
	for i, p := range base {
		if v, ok := byDate[p.Date]; ok {
			out[i] = v
		} else {
			out[i] = null
		}
	}
	return out
}

// paddedRange returns the y range of the series with 5% padding, ignoring
// null values.
func paddedRange(series ...[]float64) (float64, float64) {
	null := charts.GetNullValue()
	first := true
	var lo, hi float64
	for _, s := range series {
		for _, v := range s {
			if v == null {
				continue
			}
			if first {
				lo, hi = v, v
				first = false
				continue
			}
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = 1
	}
	return lo - pad, hi + pad
}

func yearsSubtitle(snap *Snapshot) string {
	if len(snap.SelectedYears) == 0 {
		return ""
	}
	parts := make([]string, len(snap.SelectedYears))
	for i, y := range snap.SelectedYears {
		parts[i] = strconv.Itoa(y)
	}
	return strings.Join(parts, ", ")
}

func historicalLabel(locale string) string {
	if strings.EqualFold(locale, "en") {
		return "Historical mean"
	}
	return "Média Histórica"
}

func seasonalityLabel(locale string) string {
	if strings.EqualFold(locale, "en") {
		return "Seasonality"
	}
	return "Sazonalidade"
}
