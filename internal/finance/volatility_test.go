package finance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleStd is the n-1 standard deviation.
func sampleStd(xs []float64) float64 {
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	ss := 0.0
	for _, x := range xs {
		ss += (x - mean) * (x - mean)
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}

func TestRollingVolatility(t *testing.T) {
	s := scenarioSeries(t)
	v, err := SelectView(s, YearSelection{All: true})
	require.NoError(t, err)

	for _, w := range VolatilityWindows {
		pts, err := RollingVolatility(v, w)
		require.NoError(t, err)
		require.Len(t, pts, len(v.Rows)-w+1, "window %d", w)
		// first defined value sits on row w
		assert.Equal(t, v.Rows[w-1].Date, pts[0].Date)
		assert.Equal(t, v.Rows[len(v.Rows)-1].Date, pts[len(pts)-1].Date)
	}

	pts, err := RollingVolatility(v, 21)
	require.NoError(t, err)
	want := sampleStd(Returns(v.Rows[10:31])) * math.Sqrt(252) * 100
	assert.InDelta(t, want, pts[10].Value, 1e-9)
}

func TestRollingVolatility_ConstantReturns(t *testing.T) {
	dates := businessDays(day(2023, 1, 2), day(2023, 6, 30))
	closes := make([]float64, len(dates))
	p := 100.0
	for i := range closes {
		closes[i] = p
		p *= 1.01
	}
	s := buildSeries(t, dates, closes)
	v, err := SelectView(s, YearSelection{All: true})
	require.NoError(t, err)

	pts, err := RollingVolatility(v, 42)
	require.NoError(t, err)
	// the window holding the initial zero return is the only non-flat one
	for _, p := range pts[1:] {
		assert.InDelta(t, 0, p.Value, 1e-9)
	}
}

func TestRollingVolatility_RestartsAtGaps(t *testing.T) {
	s := scenarioSeries(t)
	v, err := SelectView(s, YearSelection{Years: []int{2021, 2023}})
	require.NoError(t, err)

	n2021 := 0
	for _, r := range v.Rows {
		if r.Year == 2021 {
			n2021++
		}
	}
	n2023 := len(v.Rows) - n2021

	pts, err := RollingVolatility(v, 63)
	require.NoError(t, err)
	assert.Len(t, pts, (n2021-62)+(n2023-62))
	assert.Equal(t, v.Rows[n2021+62].Date, pts[n2021-62].Date)
}

func TestRollingVolatility_ShortView(t *testing.T) {
	dates := businessDays(day(2024, 1, 1), day(2024, 1, 10))
	v, err := SelectView(buildSeries(t, dates, wavyCloses(len(dates))), YearSelection{All: true})
	require.NoError(t, err)

	pts, err := RollingVolatility(v, 21)
	require.NoError(t, err)
	assert.Empty(t, pts)
}

func TestRollingVolatility_InvalidWindow(t *testing.T) {
	v := &View{}
	for _, w := range []int{0, 1, 20, 30, 500} {
		_, err := RollingVolatility(v, w)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	}
}

func TestAnnualVolatility(t *testing.T) {
	s := scenarioSeries(t)
	v, err := SelectView(s, YearSelection{All: true})
	require.NoError(t, err)

	got := AnnualVolatility(v, DefaultAnnualLookback)
	require.Len(t, got, 4)
	assert.Equal(t, []int{2021, 2022, 2023, 2024}, []int{got[0].Year, got[1].Year, got[2].Year, got[3].Year})

	var r2022 []float64
	for _, r := range v.Rows {
		if r.Year == 2022 {
			r2022 = append(r2022, r.Return)
		}
	}
	assert.InDelta(t, sampleStd(r2022)*math.Sqrt(252)*100, got[1].Value, 1e-9)

	got = AnnualVolatility(v, 1)
	require.Len(t, got, 2)
	assert.Equal(t, 2023, got[0].Year)

	assert.Len(t, AnnualVolatility(v, -1), 4)
}

func TestAnnualVolatility_SingleObservationYear(t *testing.T) {
	dates := append(businessDays(day(2023, 11, 1), day(2023, 12, 29)), day(2024, 1, 2))
	v, err := SelectView(buildSeries(t, dates, wavyCloses(len(dates))), YearSelection{All: true})
	require.NoError(t, err)

	got := AnnualVolatility(v, DefaultAnnualLookback)
	require.Len(t, got, 1)
	assert.Equal(t, 2023, got[0].Year)
}
