package finance

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// HistoricalYears lists the years before the current year, most recent first.
func HistoricalYears(s *AssetSeries) []int {
	seen := map[int]bool{}
	var years []int
	for _, r := range s.Rows {
		if r.Year < s.CurrentYear && !seen[r.Year] {
			seen[r.Year] = true
			years = append(years, r.Year)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// DefaultSelection picks the three most recent historical years, the entries
// preselected in the year list once "all years" is unchecked.
func DefaultSelection(s *AssetSeries) YearSelection {
	years := HistoricalYears(s)
	if len(years) > 3 {
		years = years[:3]
	}
	return YearSelection{Years: years}
}

// SelectView keeps the selected years plus the current year, which can never
// be filtered out.
func SelectView(s *AssetSeries, sel YearSelection) (*View, error) {
	want := make(map[int]bool, len(sel.Years))
	for _, y := range sel.Years {
		want[y] = true
	}
	v := &View{Asset: s.Asset, CurrentYear: s.CurrentYear}
	for i, r := range s.Rows {
		if sel.All || want[r.Year] || r.Year == s.CurrentYear {
			v.Rows = append(v.Rows, r)
			v.Positions = append(v.Positions, i)
		}
	}
	if len(v.Rows) == 0 {
		return nil, ErrEmptySelection
	}
	return v, nil
}

// Years lists the distinct years present in the view in ascending order.
func (v *View) Years() []int {
	var years []int
	for i, r := range v.Rows {
		if i == 0 || r.Year != v.Rows[i-1].Year {
			years = append(years, r.Year)
		}
	}
	return years
}

// runs splits the view into stretches of rows adjacent in the full series.
func (v *View) runs() [][2]int {
	if len(v.Positions) != len(v.Rows) {
		return [][2]int{{0, len(v.Rows)}}
	}
	var out [][2]int
	start := 0
	for i := 1; i <= len(v.Rows); i++ {
		if i == len(v.Rows) || v.Positions[i] != v.Positions[i-1]+1 {
			out = append(out, [2]int{start, i})
			start = i
		}
	}
	return out
}

// ParseYears reads a year filter: "default", "all", "none" (or empty) or a
// comma separated list such as "2021,2022".
func ParseYears(raw string) (YearSelection, error) {
	raw = strings.TrimSpace(raw)
	switch strings.ToLower(raw) {
	case "default":
		return YearSelection{Default: true}, nil
	case "all":
		return YearSelection{All: true}, nil
	case "", "none":
		return YearSelection{}, nil
	}
	var sel YearSelection
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		y, err := strconv.Atoi(part)
		if err != nil || y < 1 {
			return YearSelection{}, fmt.Errorf("%w: %q", ErrInvalidYear, part)
		}
		sel.Years = append(sel.Years, y)
	}
	return sel, nil
}
