package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"seasonalDashboard/internal/openai"
	"seasonalDashboard/internal/server"
	"seasonalDashboard/internal/telegram"
)

type serveCmd struct {
	data dataFlags
	port int
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the web dashboard and the Telegram webhook" }
func (*serveCmd) Usage() string {
	return `dashboard serve [-data <file>] [-port <port>]

  Serves the HTML dashboard, the JSON and PNG API and /metrics. The Telegram
  webhook is registered when SEASONAL_TELEGRAM_TOKEN and
  SEASONAL_TELEGRAM_WEBHOOK_PUBLIC_URL are set.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	c.data.register(f)
	f.IntVar(&c.port, "port", 0, "HTTP port. Defaults to SEASONAL_PORT.")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp(c.data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.port > 0 {
		a.cfg.Port = c.port
	}

	// warm the cache so a bad data file shows up at start
	if _, err := a.source.Table(ctx); err != nil {
		a.log.Warn().Err(err).Str("path", a.cfg.DataPath).Msg("data file not loaded")
	}

	srvCfg := server.Config{
		Log:             a.log,
		Dashboard:       a.dashboard,
		Charts:          a.charts,
		Metrics:         server.NewMetrics(),
		Locale:          a.cfg.Locale,
		Addr:            a.cfg.Addr(),
		ShutdownTimeout: a.cfg.ShutdownTimeout,
	}

	if a.cfg.Telegram.Enabled() {
		deps := telegram.Deps{
			Dashboard: a.dashboard,
			Charts:    a.charts,
			Locale:    a.cfg.Locale,
			Log:       a.log,
		}
		if a.cfg.OpenAI.Enabled() {
			deps.Commentator = openai.NewCommentator(a.cfg.OpenAI.APIKey, a.cfg.OpenAI.Model, a.cfg.OpenAI.RPS)
		}
		bot, err := telegram.NewBot(a.cfg.Telegram.Token, a.cfg.Telegram.WebhookPublicURL, deps)
		if err != nil {
			a.log.Error().Err(err).Msg("telegram: bot init failed")
			return subcommands.ExitFailure
		}
		srvCfg.Webhook = bot
	}

	if err := server.New(srvCfg).Run(ctx); err != nil {
		a.log.Error().Err(err).Msg("server error")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
