package finance

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// businessDays lists Monday to Friday dates in [from, to].
func businessDays(from, to time.Time) []time.Time {
	var out []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			out = append(out, d)
		}
	}
	return out
}

// wavyCloses compounds small deterministic returns from 100.
func wavyCloses(n int) []float64 {
	out := make([]float64, n)
	p := 100.0
	for i := range out {
		if i > 0 {
			p *= 1 + 0.01*math.Sin(float64(i))
		}
		out[i] = p
	}
	return out
}

func flatCloses(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func csvText(dates []time.Time, asset string, closes []float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "date,%s\n", asset)
	for i, d := range dates {
		fmt.Fprintf(&b, "%s,%g\n", d.Format("2006-01-02"), closes[i])
	}
	return b.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func buildSeries(t *testing.T, dates []time.Time, closes []float64) *AssetSeries {
	t.Helper()
	raw, err := ReadTable(strings.NewReader(csvText(dates, "IBOV", closes)), "date")
	require.NoError(t, err)
	s, err := BuildSeries(raw, "IBOV")
	require.NoError(t, err)
	return s
}

// scenarioSeries covers 2021-01-04 to 2024-01-31 on business days.
func scenarioSeries(t *testing.T) *AssetSeries {
	t.Helper()
	dates := businessDays(day(2021, 1, 4), day(2024, 1, 31))
	return buildSeries(t, dates, wavyCloses(len(dates)))
}
