package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovingAverage(t *testing.T) {
	dates := businessDays(day(2024, 1, 1), day(2024, 1, 12))
	closes := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	v, err := SelectView(buildSeries(t, dates, closes), YearSelection{All: true})
	require.NoError(t, err)

	pts := MovingAverage(v, 3)
	require.Len(t, pts, 8)
	assert.Equal(t, dates[2], pts[0].Date)
	assert.InDelta(t, 2, pts[0].Value, 1e-9)
	assert.InDelta(t, 9, pts[7].Value, 1e-9)
}

func TestMovingAverage_Disabled(t *testing.T) {
	v := &View{Rows: []Row{{Close: 1}, {Close: 2}}}
	assert.Nil(t, MovingAverage(v, 0))
	assert.Nil(t, MovingAverage(v, 1))
	assert.Nil(t, MovingAverage(v, 5))
}

func TestMovingAverage_RestartsAtGaps(t *testing.T) {
	s := scenarioSeries(t)
	v, err := SelectView(s, YearSelection{Years: []int{2021}})
	require.NoError(t, err)

	n2021 := 0
	for _, r := range v.Rows {
		if r.Year == 2021 {
			n2021++
		}
	}
	pts := MovingAverage(v, 20)
	// 2024 January has 23 rows, so its run yields 4 points
	assert.Len(t, pts, (n2021-19)+4)
}
