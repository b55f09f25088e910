// Package cryptopallab assembles the Telegram crypto price and news bot.
package cryptopallab

import (
	"context"
	"fmt"

	"github.com/raykavin/cryptopallab/pkg/broadcast"
	"github.com/raykavin/cryptopallab/pkg/core"
	"github.com/raykavin/cryptopallab/pkg/logger"
	"github.com/raykavin/cryptopallab/pkg/market"
	"github.com/raykavin/cryptopallab/pkg/notification"
	"github.com/raykavin/cryptopallab/pkg/plot"
	"github.com/raykavin/cryptopallab/pkg/router"
)

// Transport is a chat platform the bot can run on.
type Transport interface {
	router.Transport
	Register(r *router.Router) error
	Start(ctx context.Context)
}

type Bot struct {
	settings  core.Settings
	log       logger.Logger
	transport Transport
	gateway   router.Gateway
	renderer  router.Renderer

	router    *router.Router
	scheduler *broadcast.Scheduler
}

type Option func(*Bot)

// WithLogger replaces DefaultLog.
func WithLogger(log logger.Logger) Option {
	return func(b *Bot) {
		b.log = log
	}
}

// WithTransport replaces the Telegram transport.
func WithTransport(t Transport) Option {
	return func(b *Bot) {
		b.transport = t
	}
}

// WithGateway replaces the upstream market gateway.
func WithGateway(g router.Gateway) Option {
	return func(b *Bot) {
		b.gateway = g
	}
}

// NewBot wires the router, the broadcast scheduler and the transport from
// settings. The settings are not modified afterwards.
func NewBot(settings core.Settings, options ...Option) (*Bot, error) {
	bot := &Bot{
		settings: settings,
		log:      DefaultLog,
		renderer: plot.NewChart(),
	}
	for _, option := range options {
		option(bot)
	}

	if bot.gateway == nil {
		bot.gateway = market.NewGateway(settings.Market, bot.log)
	}

	if bot.transport == nil {
		telegram, err := notification.NewTelegram(settings.Telegram, bot.log)
		if err != nil {
			return nil, err
		}
		bot.transport = telegram
	}

	bot.router = router.New(settings.Market, bot.gateway, bot.renderer, bot.transport, router.WithLogger(bot.log))
	if err := bot.transport.Register(bot.router); err != nil {
		return nil, fmt.Errorf("register commands: %w", err)
	}

	bot.scheduler = broadcast.New(settings.Broadcast, bot.gateway, bot.transport,
		broadcast.WithLogger(bot.log.WithField("job", "auto-news")),
		broadcast.WithLimit(settings.Market.NewsLimit),
	)

	return bot, nil
}

// Router exposes the command router.
func (b *Bot) Router() *router.Router {
	return b.router
}

// Run serves chat updates and the news broadcast until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.scheduler.Start(ctx)
	defer b.scheduler.Stop()

	b.log.WithFields(map[string]any{
		"broadcast_target":   b.settings.Broadcast.Target,
		"broadcast_interval": b.settings.Broadcast.Interval.String(),
	}).Info("bot started")

	b.transport.Start(ctx)
	return ctx.Err()
}
