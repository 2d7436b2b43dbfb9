package telegram

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"seasonalDashboard/internal/finance"
)

var (
	reAssets = regexp.MustCompile(`^/assets(?:@[\w_]+)?$`)
	// /price ASSET [ma]
	rePrice = regexp.MustCompile(`^/price(?:@[\w_]+)?\s+(\S+)(?:\s+(\d{1,3}))?$`)
	// /vol ASSET [21|42|63|252]
	reVol = regexp.MustCompile(`^/vol(?:@[\w_]+)?\s+(\S+)(?:\s+(\d+))?$`)
	// /annual ASSET
	reAnnual = regexp.MustCompile(`^/annual(?:@[\w_]+)?\s+(\S+)$`)
	// /season ASSET [1-12|full]
	reSeason = regexp.MustCompile(`^/season(?:@[\w_]+)?\s+(\S+)(?:\s+(\S+))?$`)
	// /explain ASSET [1-12]
	reExplain = regexp.MustCompile(`^/explain(?:@[\w_]+)?\s+(\S+)(?:\s+(\d{1,2}))?$`)
	reHelp    = regexp.MustCompile(`^/(help|start)(?:@[\w_]+)?$`)
)

// Command kinds.
const (
	cmdAssets  = "assets"
	cmdPrice   = "price"
	cmdVol     = "vol"
	cmdAnnual  = "annual"
	cmdSeason  = "season"
	cmdExplain = "explain"
	cmdHelp    = "help"
)

// command is a parsed chat message.
type command struct {
	kind  string
	query finance.Query
}

// parseCommand maps a message to a command. ok is false for text that is
// not a command of this bot.
func parseCommand(text string, now time.Time) (command, bool, error) {
	txt := strings.TrimSpace(text)
	q := finance.Query{Years: finance.YearSelection{Default: true}, Window: 21, Month: finance.FullYear}

	switch {
	case reHelp.MatchString(txt):
		return command{kind: cmdHelp}, true, nil

	case reAssets.MatchString(txt):
		return command{kind: cmdAssets}, true, nil

	case rePrice.MatchString(txt):
		g := rePrice.FindStringSubmatch(txt)
		q.Asset = g[1]
		if g[2] != "" {
			q.MovingAverage, _ = strconv.Atoi(g[2])
		}
		return command{kind: cmdPrice, query: q}, true, nil

	case reVol.MatchString(txt):
		g := reVol.FindStringSubmatch(txt)
		q.Asset = g[1]
		if g[2] != "" {
			w, _ := strconv.Atoi(g[2])
			if !finance.ValidWindow(w) {
				return command{}, true, fmt.Errorf("%w: %s", finance.ErrInvalidWindow, g[2])
			}
			q.Window = w
		}
		return command{kind: cmdVol, query: q}, true, nil

	case reAnnual.MatchString(txt):
		g := reAnnual.FindStringSubmatch(txt)
		q.Asset = g[1]
		return command{kind: cmdAnnual, query: q}, true, nil

	case reSeason.MatchString(txt):
		g := reSeason.FindStringSubmatch(txt)
		q.Asset = g[1]
		month, err := finance.ParseMonthChoice(g[2])
		if err != nil {
			return command{}, true, err
		}
		q.Month = month
		return command{kind: cmdSeason, query: q}, true, nil

	case reExplain.MatchString(txt):
		g := reExplain.FindStringSubmatch(txt)
		q.Asset = g[1]
		q.Month = int(now.Month())
		if g[2] != "" {
			month, err := finance.ParseMonthChoice(g[2])
			if err != nil || month == finance.FullYear {
				return command{}, true, fmt.Errorf("%w: %s", finance.ErrInvalidMonth, g[2])
			}
			q.Month = month
		}
		return command{kind: cmdExplain, query: q}, true, nil
	}
	return command{}, false, nil
}

// Sender is the part of the Bot API the handlers use.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Commentator writes a short text about a seasonal profile.
type Commentator interface {
	Explain(ctx context.Context, snap *finance.Snapshot, locale string) (string, error)
}

// Deps are the collaborators of the command handlers.
type Deps struct {
	Dashboard   *finance.Dashboard
	Charts      *finance.Charts
	Commentator Commentator // optional
	Locale      string
	Log         zerolog.Logger
	Timeout     time.Duration
}

// Handlers answers chat commands.
type Handlers struct {
	api  Sender
	deps Deps
	now  func() time.Time
}

// NewHandlers returns handlers sending replies through api.
func NewHandlers(api Sender, deps Deps) *Handlers {
	if deps.Timeout <= 0 {
		deps.Timeout = 45 * time.Second
	}
	return &Handlers{api: api, deps: deps, now: time.Now}
}

// HandleMessage runs the command in m, if any.
func (h *Handlers) HandleMessage(m *tgbotapi.Message) {
	cmd, ok, err := parseCommand(m.Text, h.now())
	if !ok {
		return
	}
	if err != nil {
		h.reply(m.Chat.ID, h.text(msgInvalidArgs)+err.Error()+"\n"+h.text(msgSeeHelp))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.deps.Timeout)
	defer cancel()

	switch cmd.kind {
	case cmdHelp:
		h.handleHelp(m.Chat.ID)
	case cmdAssets:
		h.handleAssets(ctx, m.Chat.ID)
	case cmdPrice:
		h.handleChart(ctx, m.Chat.ID, finance.ChartPrice, cmd.query)
	case cmdVol:
		h.handleChart(ctx, m.Chat.ID, finance.ChartVolatility, cmd.query)
	case cmdAnnual:
		h.handleChart(ctx, m.Chat.ID, finance.ChartAnnual, cmd.query)
	case cmdSeason:
		h.handleChart(ctx, m.Chat.ID, finance.ChartSeasonal, cmd.query)
	case cmdExplain:
		h.handleExplain(ctx, m.Chat.ID, cmd.query)
	}
}

func (h *Handlers) handleAssets(ctx context.Context, chatID int64) {
	assets, err := h.deps.Dashboard.Assets(ctx)
	if err != nil {
		h.replyError(chatID, err)
		return
	}
	if len(assets) == 0 {
		h.reply(chatID, h.text(msgNoAssets))
		return
	}
	h.reply(chatID, h.text(msgAssets)+"\n"+strings.Join(assets, "\n"))
}

func (h *Handlers) handleChart(ctx context.Context, chatID int64, kind string, q finance.Query) {
	snap, err := h.deps.Dashboard.Snapshot(ctx, q)
	if err != nil {
		h.replyError(chatID, err)
		return
	}
	img, err := h.deps.Charts.Render(kind, snap, "")
	if err != nil {
		h.replyError(chatID, err)
		return
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: snap.Asset + "_" + kind + ".png", Bytes: img})
	photo.Caption = caption(kind, snap, h.deps.Locale)
	if _, err := h.api.Send(photo); err != nil {
		h.deps.Log.Error().Err(err).Int64("chat_id", chatID).Msg("failed to send chart")
	}
}

func (h *Handlers) handleExplain(ctx context.Context, chatID int64, q finance.Query) {
	if h.deps.Commentator == nil {
		h.reply(chatID, h.text(msgNoCommentator))
		return
	}
	snap, err := h.deps.Dashboard.Snapshot(ctx, q)
	if err != nil {
		h.replyError(chatID, err)
		return
	}
	out, err := h.deps.Commentator.Explain(ctx, snap, h.deps.Locale)
	if err != nil {
		h.deps.Log.Error().Err(err).Str("asset", snap.Asset).Msg("commentary failed")
		h.reply(chatID, h.text(msgCommentFailed)+err.Error())
		return
	}
	msg := tgbotapi.NewMessage(chatID, out)
	msg.ParseMode = "Markdown"
	if _, err := h.api.Send(msg); err != nil {
		h.deps.Log.Error().Err(err).Int64("chat_id", chatID).Msg("failed to send commentary")
	}
}

func (h *Handlers) handleHelp(chatID int64) {
	h.reply(chatID, h.text(msgHelp))
}

func (h *Handlers) text(key string) string { return localized(h.deps.Locale, key) }

// userMessage turns pipeline errors into chat replies in locale.
func userMessage(err error, locale string) string {
	switch {
	case errors.Is(err, finance.ErrFileNotFound):
		return localized(locale, msgFileNotFound)
	case errors.Is(err, finance.ErrDateColumnMissing):
		return localized(locale, msgNoDateColumn)
	case errors.Is(err, finance.ErrUnknownAsset):
		return localized(locale, msgUnknownAsset)
	case errors.Is(err, finance.ErrEmptySelection):
		return localized(locale, msgEmptySelection)
	case errors.Is(err, finance.ErrNoData):
		return localized(locale, msgNoData)
	}
	return localized(locale, msgRequestFailed) + err.Error()
}

func (h *Handlers) replyError(chatID int64, err error) {
	h.deps.Log.Warn().Err(err).Int64("chat_id", chatID).Msg("command failed")
	h.reply(chatID, userMessage(err, h.deps.Locale))
}

func (h *Handlers) reply(chatID int64, text string) {
	if _, err := h.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		h.deps.Log.Error().Err(err).Int64("chat_id", chatID).Msg("failed to send reply")
	}
}

func caption(kind string, snap *finance.Snapshot, locale string) string {
	parts := []string{snap.Asset}
	switch kind {
	case finance.ChartPrice:
		parts = append(parts, "price")
		if snap.MovingAveragePeriod > 0 {
			parts = append(parts, fmt.Sprintf("SMA %d", snap.MovingAveragePeriod))
		}
	case finance.ChartVolatility:
		parts = append(parts, fmt.Sprintf("vol %dd", snap.Window))
	case finance.ChartAnnual:
		parts = append(parts, "annual vol")
	case finance.ChartSeasonal:
		parts = append(parts, finance.MonthName(locale, snap.Month))
		if snap.MonthProfile != nil {
			parts = append(parts, fmt.Sprintf("%+.2f%%", snap.MonthProfile.Historical.Final()))
		}
	}
	years := make([]string, len(snap.SelectedYears))
	for i, y := range snap.SelectedYears {
		years[i] = strconv.Itoa(y)
	}
	if len(years) > 0 {
		parts = append(parts, strings.Join(years, ","))
	}
	return strings.Join(parts, " • ")
}
