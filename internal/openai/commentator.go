package openai

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	oa "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"golang.org/x/time/rate"

	"seasonalDashboard/internal/finance"
)

const systemPrompt = `You are a concise market analyst commenting on seasonality charts.
You receive the average cumulative return path of one calendar month over several years,
the path of the current year and the final return of each past year.

Reply in at most 120 words with:
**Pattern:** what the historical mean shows (direction, size, when in the month it moves)
**Consistency:** how many of the listed years agree with the mean
**This year:** how the current year compares so far

Do not give trading advice. Do not invent numbers that are not in the input.`

// completer sends one chat completion.
type completer interface {
	complete(ctx context.Context, system, user string) (string, error)
}

type chatClient struct {
	cli   oa.Client
	model string
}

func (c *chatClient) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.cli.Chat.Completions.New(ctx, oa.ChatCompletionNewParams{
		Model: oa.ChatModel(c.model),
		Messages: []oa.ChatCompletionMessageParamUnion{
			oa.SystemMessage(system),
			oa.UserMessage(user),
		},
		MaxTokens: oa.Int(400),
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from OpenAI")
	}
	return resp.Choices[0].Message.Content, nil
}

// Commentator asks a chat model to describe a month profile.
type Commentator struct {
	cli     completer
	limiter *rate.Limiter
}

// NewCommentator returns a commentator allowing rps requests per second.
func NewCommentator(apiKey, model string, rps float64) *Commentator {
	client := oa.NewClient(option.WithAPIKey(apiKey))
	return newCommentator(&chatClient{cli: client, model: model}, rps)
}

func newCommentator(cli completer, rps float64) *Commentator {
	return &Commentator{cli: cli, limiter: rate.NewLimiter(rate.Limit(rps), 1)}
}

// Explain comments on the month profile of snap.
func (c *Commentator) Explain(ctx context.Context, snap *finance.Snapshot, locale string) (string, error) {
	// commentary needs a historical curve
	if snap.MonthProfile == nil || snap.MonthProfile.Historical.Len() == 0 {
		return "", finance.ErrNoData
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("commentary rate limit: %w", err)
	}
	out, err := c.cli.complete(ctx, systemPrompt, buildPrompt(snap, locale))
	if err != nil {
		return "", err
	}
	return sanitize(out), nil
}

// buildPrompt renders the profile as plain text figures.
func buildPrompt(snap *finance.Snapshot, locale string) string {
	mp := snap.MonthProfile
	var b strings.Builder
	fmt.Fprintf(&b, "Asset: %s\n", snap.Asset)
	fmt.Fprintf(&b, "Month: %s\n", finance.MonthName(locale, mp.Month))
	if strings.EqualFold(locale, "pt") {
		b.WriteString("Answer in Portuguese.\n")
	}
	fmt.Fprintf(&b, "Trading days: %d\n", mp.Historical.Len())
	fmt.Fprintf(&b, "Historical mean path (%%): %s\n", joinCurve(mp.Historical))
	fmt.Fprintf(&b, "Historical mean final: %+.2f%%\n", mp.Historical.Final())
	if mp.CurrentYear.Len() > 0 {
		fmt.Fprintf(&b, "Current year %d so far (%d days): %+.2f%%\n",
			snap.CurrentYear, mp.CurrentYear.Len(), mp.CurrentYear.Final())
	} else {
		fmt.Fprintf(&b, "Current year %d: no data yet for this month\n", snap.CurrentYear)
	}
	if len(mp.Years) > 0 {
		up := 0
		parts := make([]string, len(mp.Years))
		for i, y := range mp.Years {
			parts[i] = fmt.Sprintf("%d: %+.2f%%", y.Year, y.Curve.Final())
			if y.Curve.Positive() {
				up++
			}
		}
		fmt.Fprintf(&b, "Past years final: %s\n", strings.Join(parts, ", "))
		fmt.Fprintf(&b, "Positive years: %d of %d\n", up, len(mp.Years))
	}
	return b.String()
}

func joinCurve(c finance.Curve) string {
	parts := make([]string, len(c.Points))
	for i, p := range c.Points {
		parts[i] = strconv.FormatFloat(p.Value, 'f', 2, 64)
	}
	return strings.Join(parts, " ")
}

var (
	reMarkdownImg = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`) // ![alt](url)
	reURL         = regexp.MustCompile(`https?://\S+`)
)

// sanitize strips links and images from model output and caps its length
// below the Telegram message limit.
func sanitize(text string) string {
	text = reMarkdownImg.ReplaceAllString(text, "")
	text = reURL.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)
	if len(text) > 3500 {
		text = text[:3500]
	}
	return text
}
