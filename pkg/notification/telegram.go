// Package notification connects the command router to Telegram.
package notification

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/raykavin/cryptopallab/pkg/core"
	"github.com/raykavin/cryptopallab/pkg/logger"
	"github.com/raykavin/cryptopallab/pkg/router"
	"github.com/samber/lo"
	tb "gopkg.in/tucnak/telebot.v2"
)

const defaultPollTimeout = 10 * time.Second

// Telegram implements router.Transport on top of a telebot client.
type Telegram struct {
	client *tb.Bot
	log    logger.Logger

	mu  sync.RWMutex
	ctx context.Context
}

var _ router.Transport = (*Telegram)(nil)

// Option is a function that configures the telebot settings.
type Option func(settings *tb.Settings)

// WithAPIURL points the client at another Bot API server.
func WithAPIURL(url string) Option {
	return func(s *tb.Settings) {
		s.URL = url
	}
}

// WithOffline skips the getMe handshake. Useful in tests.
func WithOffline() Option {
	return func(s *tb.Settings) {
		s.Offline = true
	}
}

// NewTelegram creates the bot client.
func NewTelegram(settings core.TelegramSettings, log logger.Logger, options ...Option) (*Telegram, error) {
	timeout := lo.Ternary(settings.PollTimeout > 0, settings.PollTimeout, defaultPollTimeout)
	poller := &tb.LongPoller{Timeout: timeout}

	tbSettings := tb.Settings{
		Token:  settings.Token,
		Poller: createUpdateFilter(poller, log),
		Reporter: func(err error) {
			log.WithError(err).Error("telegram client error")
		},
	}
	for _, option := range options {
		option(&tbSettings)
	}

	client, err := tb.NewBot(tbSettings)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &Telegram{
		client: client,
		log:    log,
		ctx:    context.Background(),
	}, nil
}

// createUpdateFilter drops updates that carry neither a message nor an
// inline query.
func createUpdateFilter(poller *tb.LongPoller, log logger.Logger) *tb.MiddlewarePoller {
	return tb.NewMiddlewarePoller(poller, func(u *tb.Update) bool {
		if u.Message == nil && u.Query == nil {
			log.WithField("update", u.ID).Debug("ignoring update")
			return false
		}
		return true
	})
}

// Register publishes the command menu and wires every router command and
// the inline query handler.
func (t *Telegram) Register(r *router.Router) error {
	commands := lo.Map(r.Commands(), func(c router.CommandInfo, _ int) tb.Command {
		return tb.Command{Text: c.Name, Description: c.Description}
	})
	if err := t.client.SetCommands(commands); err != nil {
		return fmt.Errorf("failed to set commands: %w", err)
	}

	for _, c := range r.Commands() {
		name := c.Name
		t.client.Handle("/"+name, func(m *tb.Message) {
			cmd := router.Command{Name: name, Args: commandArgs(m.Payload), Chat: chatID(m)}
			if err := r.HandleCommand(t.context(), cmd); err != nil {
				t.log.WithError(err).WithField("command", name).Error("command failed")
			}
		})
	}

	t.client.Handle(tb.OnQuery, func(q *tb.Query) {
		if err := r.HandleInline(t.context(), router.InlineQuery{ID: q.ID, Text: q.Text}); err != nil {
			t.log.WithError(err).Error("inline query failed")
		}
	})

	return nil
}

// Start polls for updates until ctx is cancelled.
func (t *Telegram) Start(ctx context.Context) {
	t.mu.Lock()
	t.ctx = ctx
	t.mu.Unlock()

	go func() {
		<-ctx.Done()
		t.client.Stop()
	}()

	t.log.Info("telegram bot started")
	t.client.Start()
	t.log.Info("telegram bot stopped")
}

func (t *Telegram) context() context.Context {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.ctx
}

// SendText implements core.Sender.
func (t *Telegram) SendText(_ context.Context, to, text string, opts ...core.SendOption) error {
	var options []interface{}
	for _, o := range opts {
		if o == core.NoPreview {
			options = append(options, tb.NoPreview)
		}
	}

	if _, err := t.client.Send(recipient(to), text, options...); err != nil {
		return fmt.Errorf("send message to %s: %w", to, err)
	}
	return nil
}

// SendImage implements core.Sender. The photo is uploaded from memory, so
// filename only appears in logs and errors.
func (t *Telegram) SendImage(_ context.Context, to string, image []byte, filename, caption string) error {
	photo := &tb.Photo{File: tb.FromReader(bytes.NewReader(image)), Caption: caption}
	if _, err := t.client.Send(recipient(to), photo); err != nil {
		return fmt.Errorf("send image %s to %s: %w", filename, to, err)
	}
	t.log.WithFields(map[string]any{"chat": to, "file": filename}).Debug("chart sent")
	return nil
}

// AnswerInline implements core.InlineAnswerer.
func (t *Telegram) AnswerInline(_ context.Context, queryID string, results []core.InlineResult) error {
	tbResults := make(tb.Results, len(results))
	for i, r := range results {
		article := &tb.ArticleResult{Title: r.Title}
		article.SetResultID(r.ID)
		article.SetContent(&tb.InputTextMessageContent{Text: r.Text})
		tbResults[i] = article
	}

	err := t.client.Answer(&tb.Query{ID: queryID}, &tb.QueryResponse{Results: tbResults})
	if err != nil {
		return fmt.Errorf("answer inline query %s: %w", queryID, err)
	}
	return nil
}

// recipient addresses a chat by numeric id or @username.
type recipient string

func (r recipient) Recipient() string { return string(r) }

// commandArgs collapses runs of whitespace in a command payload.
func commandArgs(payload string) string {
	return strings.Join(strings.Fields(payload), " ")
}

func chatID(m *tb.Message) string {
	if m.Chat == nil {
		return ""
	}
	return strconv.FormatInt(m.Chat.ID, 10)
}
