package openai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seasonalDashboard/internal/finance"
)

type fakeCompleter struct {
	system, user string
	calls        int
	reply        string
	err          error
}

func (f *fakeCompleter) complete(_ context.Context, system, user string) (string, error) {
	f.calls++
	f.system, f.user = system, user
	return f.reply, f.err
}

func curve(values ...float64) finance.Curve {
	c := finance.Curve{}
	for i, v := range values {
		c.Points = append(c.Points, finance.OrdinalValue{TradingDay: i + 1, Value: v})
	}
	return c
}

func marchSnapshot() *finance.Snapshot {
	return &finance.Snapshot{
		Asset:       "IBOV",
		CurrentYear: 2024,
		Month:       3,
		MonthProfile: &finance.MonthProfile{
			Month:       3,
			Historical:  curve(0, 0.5, 1.25),
			CurrentYear: curve(0, -0.4),
			Years: []finance.YearCurve{
				{Year: 2022, Curve: curve(0, 1, 2)},
				{Year: 2023, Curve: curve(0, -1, -0.5)},
			},
		},
	}
}

func TestBuildPrompt(t *testing.T) {
	p := buildPrompt(marchSnapshot(), "en")

	assert.Contains(t, p, "Asset: IBOV")
	assert.Contains(t, p, "Month: March")
	assert.Contains(t, p, "Trading days: 3")
	assert.Contains(t, p, "Historical mean path (%): 0.00 0.50 1.25")
	assert.Contains(t, p, "Historical mean final: +1.25%")
	assert.Contains(t, p, "Current year 2024 so far (2 days): -0.40%")
	assert.Contains(t, p, "2022: +2.00%, 2023: -0.50%")
	assert.Contains(t, p, "Positive years: 1 of 2")
	assert.NotContains(t, p, "Portuguese")
}

func TestBuildPrompt_Portuguese(t *testing.T) {
	snap := marchSnapshot()
	snap.MonthProfile.CurrentYear = finance.Curve{}

	p := buildPrompt(snap, "pt")
	assert.Contains(t, p, "Month: Março")
	assert.Contains(t, p, "Answer in Portuguese.")
	assert.Contains(t, p, "Current year 2024: no data yet")
}

func TestExplain(t *testing.T) {
	fake := &fakeCompleter{reply: "  **Pattern:** up ![x](http://img) see https://example.com  "}
	c := newCommentator(fake, 100)

	out, err := c.Explain(context.Background(), marchSnapshot(), "en")
	require.NoError(t, err)
	assert.Equal(t, "**Pattern:** up  see", out)
	assert.Equal(t, systemPrompt, fake.system)
	assert.Contains(t, fake.user, "IBOV")
}

func TestExplain_NoProfile(t *testing.T) {
	fake := &fakeCompleter{}
	c := newCommentator(fake, 100)

	_, err := c.Explain(context.Background(), &finance.Snapshot{Asset: "IBOV"}, "en")
	assert.ErrorIs(t, err, finance.ErrNoData)

	_, err = c.Explain(context.Background(), &finance.Snapshot{MonthProfile: &finance.MonthProfile{Month: 1}}, "en")
	assert.ErrorIs(t, err, finance.ErrNoData)

	currentOnly := &finance.MonthProfile{Month: 1, CurrentYear: finance.Curve{Points: []finance.OrdinalValue{{TradingDay: 1, Value: 0.4}}}}
	_, err = c.Explain(context.Background(), &finance.Snapshot{MonthProfile: currentOnly}, "en")
	assert.ErrorIs(t, err, finance.ErrNoData)
	assert.Zero(t, fake.calls)
}

func TestExplain_ClientError(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("boom")}
	c := newCommentator(fake, 100)

	_, err := c.Explain(context.Background(), marchSnapshot(), "en")
	assert.EqualError(t, err, "boom")
}

func TestExplain_RateLimited(t *testing.T) {
	fake := &fakeCompleter{reply: "ok"}
	c := newCommentator(fake, 0.001)

	_, err := c.Explain(context.Background(), marchSnapshot(), "en")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.Explain(ctx, marchSnapshot(), "en")
	assert.Error(t, err)
	assert.Equal(t, 1, fake.calls)
}

func TestSanitize_Truncates(t *testing.T) {
	long := make([]byte, 5000)
	for i := range long {
		long[i] = 'a'
	}
	assert.Len(t, sanitize(string(long)), 3500)
}
