package finance

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// expectedMean averages returns per trading day over rows of month and
// accumulates them in percent.
func expectedMean(rows []Row, month int, skipYear int) map[int]float64 {
	sums := map[int]float64{}
	counts := map[int]int{}
	for _, r := range rows {
		if r.Month != month || r.Year == skipYear {
			continue
		}
		sums[r.TradingDay] += r.Return
		counts[r.TradingDay]++
	}
	days := make([]int, 0, len(sums))
	for d := range sums {
		days = append(days, d)
	}
	sort.Ints(days)
	out := map[int]float64{}
	acc := 0.0
	for _, d := range days {
		acc += sums[d] / float64(counts[d])
		out[d] = acc * 100
	}
	return out
}

func TestMonthProfile_JanuaryScenario(t *testing.T) {
	s := scenarioSeries(t)
	v, err := SelectView(s, YearSelection{Years: []int{2021, 2022, 2023}})
	require.NoError(t, err)

	p, err := MonthProfileOf(v, s, 1, DefaultProfileOptions())
	require.NoError(t, err)

	// the current year overlay holds only January 2024
	require.Equal(t, 23, p.CurrentYear.Len())
	for i, pt := range p.CurrentYear.Points {
		assert.Equal(t, i+1, pt.TradingDay)
	}

	// the historical mean spans 2021..2024 since the view includes 2024
	want := expectedMean(v.Rows, 1, 0)
	require.Equal(t, 23, p.Historical.Len())
	for _, pt := range p.Historical.Points {
		assert.InDelta(t, want[pt.TradingDay], pt.Value, 1e-9, "day %d", pt.TradingDay)
	}

	require.Len(t, p.Years, 3)
	assert.Equal(t, 2021, p.Years[0].Year)
	assert.Equal(t, 20, p.Years[0].Curve.Len())
	assert.Equal(t, 21, p.Years[1].Curve.Len())
	assert.Equal(t, 22, p.Years[2].Curve.Len())
}

func TestMonthProfile_ExcludeCurrentYear(t *testing.T) {
	s := scenarioSeries(t)
	v, err := SelectView(s, YearSelection{All: true})
	require.NoError(t, err)

	p, err := MonthProfileOf(v, s, 1, ProfileOptions{IncludeCurrentYear: false})
	require.NoError(t, err)

	want := expectedMean(v.Rows, 1, 2024)
	require.Equal(t, 22, p.Historical.Len())
	for _, pt := range p.Historical.Points {
		assert.InDelta(t, want[pt.TradingDay], pt.Value, 1e-9)
	}
	assert.Equal(t, 23, p.CurrentYear.Len())
}

func TestMonthProfile_CurrentYearOnlyIsNotEmpty(t *testing.T) {
	s := scenarioSeries(t)
	v, err := SelectView(s, YearSelection{})
	require.NoError(t, err)

	p, err := MonthProfileOf(v, s, 1, ProfileOptions{IncludeCurrentYear: false})
	require.NoError(t, err)
	assert.Zero(t, p.Historical.Len())
	assert.Equal(t, 23, p.CurrentYear.Len())
	assert.False(t, p.Empty())
}

func TestMonthProfile_CurrentYearIgnoresSelection(t *testing.T) {
	s := scenarioSeries(t)
	v, err := SelectView(s, YearSelection{})
	require.NoError(t, err)

	p, err := MonthProfileOf(v, s, 3, DefaultProfileOptions())
	require.NoError(t, err)
	// March has no 2024 rows
	assert.True(t, p.Empty())
	assert.Zero(t, p.CurrentYear.Len())
	assert.Empty(t, p.Years)
}

func TestMonthProfile_InvalidMonth(t *testing.T) {
	s := scenarioSeries(t)
	v, err := SelectView(s, YearSelection{All: true})
	require.NoError(t, err)

	for _, m := range []int{0, 13, -1} {
		_, err := MonthProfileOf(v, s, m, DefaultProfileOptions())
		assert.ErrorIs(t, err, ErrInvalidMonth)
	}
}

func TestProfiles_ZeroReturns(t *testing.T) {
	dates := businessDays(day(2021, 1, 4), day(2023, 5, 31))
	s := buildSeries(t, dates, flatCloses(len(dates), 50))
	v, err := SelectView(s, YearSelection{All: true})
	require.NoError(t, err)

	for m := 1; m <= 12; m++ {
		p, err := MonthProfileOf(v, s, m, DefaultProfileOptions())
		require.NoError(t, err)
		for _, pt := range p.Historical.Points {
			assert.Zero(t, pt.Value)
		}
		for _, pt := range p.CurrentYear.Points {
			assert.Zero(t, pt.Value)
		}
	}
	for _, seg := range FullYearProfileOf(v, DefaultProfileOptions()).Segments {
		for _, pt := range seg.Profile.Points {
			assert.Zero(t, pt.Value)
		}
	}
}

func TestFullYearProfile_Widths(t *testing.T) {
	// January to April only; May..December are placeholders
	dates := businessDays(day(2023, 1, 2), day(2023, 4, 28))
	s := buildSeries(t, dates, wavyCloses(len(dates)))
	v, err := SelectView(s, YearSelection{All: true})
	require.NoError(t, err)

	p := FullYearProfileOf(v, DefaultProfileOptions())
	require.Len(t, p.Segments, 12)

	want := 0
	start := 0
	for i, seg := range p.Segments {
		assert.Equal(t, i+1, seg.Month)
		assert.Equal(t, start, seg.Start)
		n := 0
		for _, r := range v.Rows {
			if r.Month == seg.Month && r.TradingDay > n {
				n = r.TradingDay
			}
		}
		if n == 0 {
			assert.True(t, seg.Empty())
			assert.Equal(t, EmptyMonthWidth, seg.Width)
			n = EmptyMonthWidth
		} else {
			assert.Equal(t, n, seg.Width)
		}
		want += n
		start += seg.Width
	}
	assert.Equal(t, want, p.Width())
	assert.InDelta(t, float64(p.Segments[4].Start)+10.5, p.Segments[4].Tick(), 1e-9)
}

func TestFullYearProfile_ExcludeCurrentYear(t *testing.T) {
	s := scenarioSeries(t)
	v, err := SelectView(s, YearSelection{All: true})
	require.NoError(t, err)

	with := FullYearProfileOf(v, DefaultProfileOptions())
	without := FullYearProfileOf(v, ProfileOptions{})
	assert.Equal(t, 23, with.Segments[0].Width)
	assert.Equal(t, 22, without.Segments[0].Width)
	assert.Equal(t, with.Segments[1], without.Segments[1].withStart(with.Segments[1].Start))
}

func (s MonthSegment) withStart(start int) MonthSegment {
	s.Start = start
	return s
}
