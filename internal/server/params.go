package server

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"seasonalDashboard/internal/finance"
)

var errInvalidParameter = errors.New("invalid parameter")

// defaultWindow is the rolling volatility window used when none is given.
const defaultWindow = 21

// parseQuery reads the dashboard widget state from the URL query.
//
//	years  absent, "default" or "all": every year;
//	       "none" or "": current year only; "2021,2022": those years
//	window 21, 42, 63 or 252
//	month  0..12 or a selector label such as "3 - Março"
//	ma     moving average period, 0 disables
func parseQuery(asset string, values url.Values) (finance.Query, error) {
	q := finance.Query{Asset: asset, Window: defaultWindow}

	sel, err := parseYears(values)
	if err != nil {
		return q, err
	}
	q.Years = sel

	if raw := values.Get("window"); raw != "" {
		w, err := strconv.Atoi(raw)
		if err != nil || !finance.ValidWindow(w) {
			return q, fmt.Errorf("%w: %q", finance.ErrInvalidWindow, raw)
		}
		q.Window = w
	}

	month, err := finance.ParseMonthChoice(values.Get("month"))
	if err != nil {
		return q, err
	}
	q.Month = month

	if raw := values.Get("ma"); raw != "" {
		ma, err := strconv.Atoi(raw)
		if err != nil {
			return q, fmt.Errorf("%w: ma %q", errInvalidParameter, raw)
		}
		q.MovingAverage = ma
	}
	return q, nil
}

func parseYears(values url.Values) (finance.YearSelection, error) {
	if _, ok := values["years"]; !ok {
		return finance.YearSelection{Default: true}, nil
	}
	return finance.ParseYears(values.Get("years"))
}

// cacheKey identifies a normalised query for the chart cache.
func cacheKey(q finance.Query) string {
	var b strings.Builder
	b.WriteString(q.Asset)
	switch {
	case q.Years.Default:
		b.WriteString("|default")
	case q.Years.All:
		b.WriteString("|all")
	default:
		b.WriteString("|")
		for i, y := range q.Years.Years {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Itoa(y))
		}
	}
	fmt.Fprintf(&b, "|w%d|m%d|ma%d", q.Window, q.Month, q.MovingAverage)
	return b.String()
}
