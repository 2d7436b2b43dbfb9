package finance

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"seasonalDashboard/internal/logger"
)

// Query is the widget state sent by a front-end.
type Query struct {
	Asset         string        `json:"asset" validate:"required"`
	Years         YearSelection `json:"-"`
	Window        int           `json:"window" validate:"oneof=21 42 63 252"`
	Month         int           `json:"month" validate:"min=0,max=12"`
	MovingAverage int           `json:"ma" validate:"min=0,max=252"`
}

// Snapshot holds everything a front-end needs to draw the dashboard.
type Snapshot struct {
	Asset               string        `json:"asset"`
	CurrentYear         int           `json:"current_year"`
	HistoricalYears     []int         `json:"historical_years"`
	SelectedYears       []int         `json:"selected_years"`
	Window              int           `json:"window"`
	Month               int           `json:"month"`
	Price               []Point       `json:"price"`
	MovingAverage       []Point       `json:"moving_average,omitempty"`
	MovingAveragePeriod int           `json:"moving_average_period,omitempty"`
	Volatility          []Point       `json:"volatility"`
	AnnualVolatility    []YearValue   `json:"annual_volatility"`
	MonthProfile        *MonthProfile `json:"month_profile,omitempty"`
	YearProfile         *YearProfile  `json:"year_profile,omitempty"`
}

// YearsInfo describes the year filter choices of an asset.
type YearsInfo struct {
	Asset       string `json:"asset"`
	CurrentYear int    `json:"current_year"`
	Historical  []int  `json:"historical"`
	Default     []int  `json:"default"`
}

// DashboardOptions configures a Dashboard.
type DashboardOptions struct {
	Profile        ProfileOptions
	AnnualLookback int
}

// Dashboard runs the whole pipeline for one interaction.
type Dashboard struct {
	source   *Source
	opts     DashboardOptions
	validate *validator.Validate
	log      zerolog.Logger
}

// NewDashboard returns a Dashboard reading from source.
func NewDashboard(source *Source, opts DashboardOptions, log zerolog.Logger) *Dashboard {
	return &Dashboard{
		source:   source,
		opts:     opts,
		validate: validator.New(),
		log:      logger.Component(log, "dashboard"),
	}
}

// Assets lists the asset columns of the data file.
func (d *Dashboard) Assets(ctx context.Context) ([]string, error) {
	t, err := d.source.Table(ctx)
	if err != nil {
		return nil, err
	}
	return t.Columns, nil
}

// Series builds the series of one asset.
func (d *Dashboard) Series(ctx context.Context, asset string) (*AssetSeries, error) {
	t, err := d.source.Table(ctx)
	if err != nil {
		return nil, err
	}
	return BuildSeries(t, asset)
}

// Years returns the year filter choices of an asset.
func (d *Dashboard) Years(ctx context.Context, asset string) (*YearsInfo, error) {
	s, err := d.Series(ctx, asset)
	if err != nil {
		return nil, err
	}
	return &YearsInfo{
		Asset:       s.Asset,
		CurrentYear: s.CurrentYear,
		Historical:  HistoricalYears(s),
		Default:     DefaultSelection(s).Years,
	}, nil
}

// Validate checks the query parameters.
func (d *Dashboard) Validate(q Query) error {
	if err := d.validate.Struct(q); err != nil {
		return fmt.Errorf("invalid query: %w", err)
	}
	return nil
}

// Snapshot computes every dashboard series for q.
func (d *Dashboard) Snapshot(ctx context.Context, q Query) (*Snapshot, error) {
	if err := d.Validate(q); err != nil {
		return nil, err
	}
	s, err := d.Series(ctx, q.Asset)
	if err != nil {
		return nil, err
	}
	sel := q.Years
	if sel.Default {
		sel = YearSelection{All: true}
	}
	view, err := SelectView(s, sel)
	if err != nil {
		return nil, err
	}
	vol, err := RollingVolatility(view, q.Window)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Asset:            s.Asset,
		CurrentYear:      s.CurrentYear,
		HistoricalYears:  HistoricalYears(s),
		SelectedYears:    view.Years(),
		Window:           q.Window,
		Month:            q.Month,
		Price:            pricePoints(view),
		Volatility:       vol,
		AnnualVolatility: AnnualVolatility(view, d.opts.AnnualLookback),
	}
	if q.MovingAverage > 0 {
		snap.MovingAverage = MovingAverage(view, q.MovingAverage)
		snap.MovingAveragePeriod = q.MovingAverage
	}
	if q.Month == FullYear {
		snap.YearProfile = FullYearProfileOf(view, d.opts.Profile)
	} else {
		snap.MonthProfile, err = MonthProfileOf(view, s, q.Month, d.opts.Profile)
		if err != nil {
			return nil, err
		}
	}

	d.log.Debug().
		Str("asset", s.Asset).
		Ints("years", snap.SelectedYears).
		Int("window", q.Window).
		Int("month", q.Month).
		Int("rows", len(view.Rows)).
		Msg("snapshot computed")
	return snap, nil
}

func pricePoints(v *View) []Point {
	out := make([]Point, len(v.Rows))
	for i, r := range v.Rows {
		out[i] = Point{Date: r.Date, Value: r.Close}
	}
	return out
}
