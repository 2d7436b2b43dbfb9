package finance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSeries(t *testing.T) {
	in := "date,IBOV,SPX\n" +
		"2021-12-30,100,1\n" +
		"2021-12-31,110,1\n" +
		"2022-01-03,x,1\n" +
		"2022-01-04,99,1\n" +
		"2022-01-05,NaN,1\n" +
		"2022-01-06,99,1\n"
	raw, err := ReadTable(strings.NewReader(in), "date")
	require.NoError(t, err)

	s, err := BuildSeries(raw, "ibov")
	require.NoError(t, err)
	assert.Equal(t, "IBOV", s.Asset)
	assert.Equal(t, 2022, s.CurrentYear)
	require.Len(t, s.Rows, 4)

	assert.Equal(t, 0.0, s.Rows[0].Return)
	assert.InDelta(t, 0.1, s.Rows[1].Return, 1e-12)
	assert.InDelta(t, 99.0/110-1, s.Rows[2].Return, 1e-12)
	assert.Equal(t, 0.0, s.Rows[3].Return)

	assert.Equal(t, day(2022, 1, 4), s.Rows[2].Date)
	assert.Equal(t, 2022, s.Rows[2].Year)
	assert.Equal(t, 1, s.Rows[2].Month)
	assert.Equal(t, 4, s.Rows[2].Day)

	// trading day counts surviving rows, not calendar days
	assert.Equal(t, []int{1, 2, 1, 2}, []int{
		s.Rows[0].TradingDay, s.Rows[1].TradingDay, s.Rows[2].TradingDay, s.Rows[3].TradingDay,
	})
}

func TestBuildSeries_DenseTradingDays(t *testing.T) {
	s := scenarioSeries(t)
	type ym struct{ y, m int }
	last := map[ym]int{}
	for _, r := range s.Rows {
		k := ym{r.Year, r.Month}
		assert.Equal(t, last[k]+1, r.TradingDay, "%v", r.Date)
		last[k] = r.TradingDay
	}
	assert.Equal(t, 20, last[ym{2021, 1}])
	assert.Equal(t, 23, last[ym{2024, 1}])
}

func TestBuildSeries_ZeroPreviousClose(t *testing.T) {
	raw, err := ReadTable(strings.NewReader("date,A\n2021-01-04,0\n2021-01-05,5\n"), "date")
	require.NoError(t, err)
	s, err := BuildSeries(raw, "A")
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.Rows[1].Return)
}

func TestBuildSeries_UnknownAsset(t *testing.T) {
	raw, err := ReadTable(strings.NewReader("date,A\n2021-01-04,1\n"), "date")
	require.NoError(t, err)
	_, err = BuildSeries(raw, "B")
	assert.ErrorIs(t, err, ErrUnknownAsset)
}

func TestBuildSeries_AllCellsInvalid(t *testing.T) {
	raw, err := ReadTable(strings.NewReader("date,A\n2021-01-04,\n2021-01-05,-\n"), "date")
	require.NoError(t, err)
	s, err := BuildSeries(raw, "A")
	require.NoError(t, err)
	assert.Empty(t, s.Rows)
	assert.Zero(t, s.CurrentYear)
}

func TestParseClose(t *testing.T) {
	testCases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"100", 100, true},
		{" 1.5e2 ", 150, true},
		{"-3", -3, true},
		{"", 0, false},
		{"1,5", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			v, ok := parseClose(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, v)
		})
	}
}

func TestParseDate_MonthFirst(t *testing.T) {
	d, ok := parseDate("01/02/2021")
	require.True(t, ok)
	assert.Equal(t, day(2021, 1, 2), d)

	d, ok = parseDate("13/01/2021")
	require.True(t, ok)
	assert.Equal(t, day(2021, 1, 13), d)

	d, ok = parseDate("25.12.2021")
	require.True(t, ok)
	assert.Equal(t, day(2021, 12, 25), d)

	_, ok = parseDate("13/13/2021")
	assert.False(t, ok)
}

func TestParseDate(t *testing.T) {
	testCases := []struct {
		in string
		ok bool
	}{
		{"2021-01-04", true},
		{"2021-1-4", true},
		{"2021-01-04 15:30:00", true},
		{"2021-01-04T15:30:00Z", true},
		{"2021-01-04 00:00:00+00:00", true},
		{"2021-01-04 09:00:00-03:00", true},
		{"2021-01-04 00:00:00.000+00:00", true},
		{"2021/01/04", true},
		{"01/04/2021", true},
		{"1/4/2021", true},
		{"01-04-2021", true},
		{"01.04.2021", true},
		{"20210104", true},
		{"", false},
		{"yesterday", false},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			d, ok := parseDate(tc.in)
			require.Equal(t, tc.ok, ok)
			if ok {
				assert.Equal(t, day(2021, 1, 4), d)
			}
		})
	}
}
