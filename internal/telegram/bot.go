package telegram

import (
	"encoding/json"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"seasonalDashboard/internal/logger"
)

// Bot receives Telegram updates through a webhook.
type Bot struct {
	api *tgbotapi.BotAPI
	h   *Handlers
	log zerolog.Logger
}

// NewBot registers the webhook and wires the command handlers.
func NewBot(token, webhookURL string, deps Deps) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	webhook, err := tgbotapi.NewWebhook(webhookURL)
	if err != nil {
		return nil, err
	}
	if _, err := api.Request(webhook); err != nil {
		return nil, err
	}
	log := logger.Component(deps.Log, "telegram")
	log.Info().Str("webhook", webhookURL).Str("bot", api.Self.UserName).Msg("telegram: webhook set")

	deps.Log = log
	return &Bot{api: api, h: NewHandlers(api, deps), log: log}, nil
}

// ServeHTTP handles POST /telegram/webhook.
func (b *Bot) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	serveUpdate(b.h, b.log, w, r)
}

func serveUpdate(h *Handlers, log zerolog.Logger, w http.ResponseWriter, r *http.Request) {
	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "bad update", http.StatusBadRequest)
		return
	}
	if update.Message == nil {
		log.Debug().Int("update_id", update.UpdateID).Msg("webhook: non-message update received")
		w.WriteHeader(http.StatusOK)
		return
	}
	log.Debug().
		Int64("chat_id", update.Message.Chat.ID).
		Str("text", update.Message.Text).
		Msg("webhook: message")
	go h.HandleMessage(update.Message)
	w.WriteHeader(http.StatusOK)
}
