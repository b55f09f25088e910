// Package router dispatches chat commands and inline queries to the
// resolve, fetch and format pipeline and sends exactly one reply for each.
package router

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/raykavin/cryptopallab/pkg/coin"
	"github.com/raykavin/cryptopallab/pkg/core"
	"github.com/raykavin/cryptopallab/pkg/format"
	"github.com/raykavin/cryptopallab/pkg/logger"
	"github.com/raykavin/cryptopallab/pkg/logger/zerolog"
	"github.com/raykavin/cryptopallab/pkg/plot"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const (
	defaultNewsLimit = 5
	defaultChartDays = 7
)

// ErrUnknownCommand is returned for commands outside the dispatch table.
var ErrUnknownCommand = errors.New("unknown command")

// Gateway is the market data the router needs.
type Gateway interface {
	Price(ctx context.Context, id core.CoinID) (decimal.Decimal, bool)
	MarketChart(ctx context.Context, id core.CoinID, days int) (core.ChartSeries, bool)
	News(ctx context.Context, limit int) ([]core.NewsItem, error)
}

// Renderer turns a price series into an encoded image.
type Renderer interface {
	Render(title string, series core.ChartSeries) ([]byte, error)
}

// Transport is the outbound side of the chat platform.
type Transport interface {
	core.Sender
	core.InlineAnswerer
}

// Command is an inbound chat command.
type Command struct {
	Name string // with or without the leading slash and @bot suffix
	Args string
	Chat string
}

// InlineQuery is an inbound inline query.
type InlineQuery struct {
	ID   string
	Text string
}

// CommandInfo describes a registered command.
type CommandInfo struct {
	Name        string
	Description string
}

type handlerFunc func(ctx context.Context, cmd Command) error

type Router struct {
	gateway   Gateway
	renderer  Renderer
	transport Transport
	log       logger.Logger
	newsLimit int
	chartDays int
	newID     func() string

	commands []CommandInfo
	handlers map[string]handlerFunc
}

// Option configures a Router.
type Option func(*Router)

func WithLogger(log logger.Logger) Option {
	return func(r *Router) {
		if log != nil {
			r.log = log
		}
	}
}

// WithIDGenerator replaces the inline result id source.
func WithIDGenerator(newID func() string) Option {
	return func(r *Router) {
		r.newID = newID
	}
}

// New builds a Router over the given collaborators.
func New(settings core.MarketSettings, gateway Gateway, renderer Renderer, transport Transport, options ...Option) *Router {
	r := &Router{
		gateway:   gateway,
		renderer:  renderer,
		transport: transport,
		log:       zerolog.Nop(),
		newsLimit: lo.Ternary(settings.NewsLimit > 0, settings.NewsLimit, defaultNewsLimit),
		chartDays: lo.Ternary(settings.ChartDays > 0, settings.ChartDays, defaultChartDays),
		newID:     uuid.NewString,
	}
	for _, option := range options {
		option(r)
	}

	r.register("start", "Show the welcome message", r.help)
	r.register("help", "Show this message", r.help)
	r.register("price", "Current price of a coin (symbol or name)", r.price)
	r.register("top", "Prices of the top coins", r.top)
	r.register("news", "Latest crypto news", r.news)
	r.register("chart", fmt.Sprintf("%d day price chart", r.chartDays), r.chart)

	return r
}

func (r *Router) register(name, description string, h handlerFunc) {
	if r.handlers == nil {
		r.handlers = make(map[string]handlerFunc)
	}
	r.handlers[name] = h
	r.commands = append(r.commands, CommandInfo{Name: name, Description: description})
}

// Commands lists the dispatch table in registration order.
func (r *Router) Commands() []CommandInfo {
	return append([]CommandInfo(nil), r.commands...)
}

// HandleCommand runs the pipeline for cmd and sends its reply.
func (r *Router) HandleCommand(ctx context.Context, cmd Command) error {
	name := commandName(cmd.Name)
	h, ok := r.handlers[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd.Name)
	}

	r.log.WithFields(map[string]any{"command": name, "chat": cmd.Chat}).Debug("handling command")
	cmd.Args = strings.TrimSpace(cmd.Args)
	return h(ctx, cmd)
}

// HandleInline answers an inline query with a single price suggestion.
// Empty queries get no answer at all.
func (r *Router) HandleInline(ctx context.Context, q InlineQuery) error {
	id, ok := coin.Resolve(q.Text)
	if !ok {
		return nil
	}

	price, found := r.gateway.Price(ctx, id)
	result := core.InlineResult{
		ID:    r.newID(),
		Title: strings.ToUpper(q.Text) + " price",
		Text:  format.InlinePrice(q.Text, price, found),
	}
	return r.transport.AnswerInline(ctx, q.ID, []core.InlineResult{result})
}

func (r *Router) help(ctx context.Context, cmd Command) error {
	return r.reply(ctx, cmd.Chat, HelpText(r.commands))
}

func (r *Router) price(ctx context.Context, cmd Command) error {
	if cmd.Args == "" {
		return r.reply(ctx, cmd.Chat, format.PriceUsage)
	}

	id, _ := coin.Resolve(cmd.Args)
	price, ok := r.gateway.Price(ctx, id)
	return r.reply(ctx, cmd.Chat, format.Price(cmd.Args, price, ok))
}

func (r *Router) top(ctx context.Context, cmd Command) error {
	return r.reply(ctx, cmd.Chat, format.Top(FetchQuotes(ctx, r.gateway, coin.TopCoins)))
}

func (r *Router) news(ctx context.Context, cmd Command) error {
	items, err := r.gateway.News(ctx, r.newsLimit)
	return r.reply(ctx, cmd.Chat, format.News(format.NewsHeader, items, err), core.NoPreview)
}

func (r *Router) chart(ctx context.Context, cmd Command) error {
	if cmd.Args == "" {
		return r.reply(ctx, cmd.Chat, format.ChartUsage)
	}

	id, _ := coin.Resolve(cmd.Args)
	series, ok := r.gateway.MarketChart(ctx, id, r.chartDays)
	if !ok || len(series) == 0 {
		return r.reply(ctx, cmd.Chat, format.ChartUnavailable)
	}

	img, err := r.renderer.Render(format.ChartTitle(id, r.chartDays), series)
	if err != nil {
		r.log.WithError(err).WithField("coin", id).Error("chart render failed")
		return r.reply(ctx, cmd.Chat, format.ChartUnavailable)
	}

	caption := plot.Summarize(series).Caption(id, r.chartDays)
	if err := r.transport.SendImage(ctx, cmd.Chat, img, format.ChartFilename(id, r.chartDays), caption); err != nil {
		r.log.WithError(err).WithField("chat", cmd.Chat).Error("failed to send chart")
		return err
	}
	return nil
}

func (r *Router) reply(ctx context.Context, chat, text string, opts ...core.SendOption) error {
	if err := r.transport.SendText(ctx, chat, text, opts...); err != nil {
		r.log.WithError(err).WithField("chat", chat).Error("failed to send reply")
		return err
	}
	return nil
}

// FetchQuotes fetches the price of every id concurrently and returns one
// quote per id in input order.
func FetchQuotes(ctx context.Context, gateway Gateway, ids []core.CoinID) []format.Quote {
	quotes := make([]format.Quote, len(ids))

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id core.CoinID) {
			defer wg.Done()
			price, ok := gateway.Price(ctx, id)
			quotes[i] = format.Quote{ID: id, Price: price, OK: ok}
		}(i, id)
	}
	wg.Wait()

	return quotes
}

// HelpText renders the command list shown by /start and /help.
func HelpText(commands []CommandInfo) string {
	var sb strings.Builder
	sb.WriteString("Welcome to Cryptopallab!\n\nCommands:\n")
	for _, c := range commands {
		usage := "/" + c.Name
		if c.Name == "price" || c.Name == "chart" {
			usage += " <coin>"
		}
		fmt.Fprintf(&sb, "%s - %s\n", usage, c.Description)
	}

	known := lo.Map(coin.KnownIDs(), func(id core.CoinID, _ int) string { return id.String() })
	fmt.Fprintf(&sb, "\nKnown coins: %s\n", strings.Join(known, ", "))
	sb.WriteString("\nInline: type @<bot> <coin> in any chat to get a quick price.")
	return sb.String()
}

// commandName normalizes "/price@MyBot" to "price".
func commandName(name string) string {
	name = strings.TrimPrefix(strings.TrimSpace(name), "/")
	name, _, _ = strings.Cut(name, "@")
	return strings.ToLower(name)
}
