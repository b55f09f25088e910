// Package broadcast periodically pushes a news digest to a fixed chat.
package broadcast

import (
	"context"
	"sync"
	"time"

	"github.com/raykavin/cryptopallab/pkg/core"
	"github.com/raykavin/cryptopallab/pkg/format"
	"github.com/raykavin/cryptopallab/pkg/logger"
	"github.com/raykavin/cryptopallab/pkg/logger/zerolog"
)

const (
	DefaultFirstDelay = 10 * time.Second
	DefaultInterval   = time.Hour

	defaultLimit      = 5
	defaultRunTimeout = time.Minute
)

// NewsSource supplies the headlines for each tick.
type NewsSource interface {
	News(ctx context.Context, limit int) ([]core.NewsItem, error)
}

type Scheduler struct {
	settings   core.BroadcastSettings
	source     NewsSource
	sender     core.Sender
	log        logger.Logger
	limit      int
	runTimeout time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Option configures a Scheduler.
type Option func(*Scheduler)

func WithLogger(log logger.Logger) Option {
	return func(s *Scheduler) {
		if log != nil {
			s.log = log
		}
	}
}

// WithLimit sets how many headlines each broadcast carries.
func WithLimit(limit int) Option {
	return func(s *Scheduler) {
		if limit > 0 {
			s.limit = limit
		}
	}
}

// WithRunTimeout bounds a single tick.
func WithRunTimeout(timeout time.Duration) Option {
	return func(s *Scheduler) {
		if timeout > 0 {
			s.runTimeout = timeout
		}
	}
}

func New(settings core.BroadcastSettings, source NewsSource, sender core.Sender, options ...Option) *Scheduler {
	if settings.FirstDelay <= 0 {
		settings.FirstDelay = DefaultFirstDelay
	}

	s := &Scheduler{
		settings:   settings,
		source:     source,
		sender:     sender,
		log:        zerolog.Nop(),
		limit:      defaultLimit,
		runTimeout: defaultRunTimeout,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Start launches the timer in the background. It fires once after the
// first delay and then on every interval until ctx is cancelled or Stop is
// called. A non-positive interval leaves the scheduler idle.
func (s *Scheduler) Start(ctx context.Context) {
	if !s.settings.Enabled() {
		s.log.Info("news broadcast disabled")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop(ctx)
	}()

	s.log.WithFields(map[string]any{
		"first_delay": s.settings.FirstDelay.String(),
		"interval":    s.settings.Interval.String(),
		"target":      s.settings.Target,
	}).Info("news broadcast scheduled")
}

// Stop cancels the timer and waits for a running tick to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	s.wg.Wait()
	s.log.Info("news broadcast stopped")
}

func (s *Scheduler) loop(ctx context.Context) {
	timer := time.NewTimer(s.settings.FirstDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return
	case <-timer.C:
		s.run(ctx)
	}

	ticker := time.NewTicker(s.settings.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

func (s *Scheduler) run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.runTimeout)
	defer cancel()

	start := time.Now()
	if err := s.Tick(ctx); err != nil {
		s.log.WithError(err).Error("news broadcast failed")
		return
	}
	s.log.WithField("elapsed", time.Since(start).String()).Debug("news broadcast tick done")
}

// Tick runs one broadcast. Without a target it only logs.
func (s *Scheduler) Tick(ctx context.Context) error {
	if s.settings.Target == "" {
		s.log.Info("broadcast target not set; skipping auto news")
		return nil
	}

	items, err := s.source.News(ctx, s.limit)
	text := format.News(format.BroadcastHeader, items, err)
	return s.sender.SendText(ctx, s.settings.Target, text, core.NoPreview)
}
