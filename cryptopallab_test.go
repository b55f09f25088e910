package cryptopallab

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/raykavin/cryptopallab/pkg/core"
	"github.com/raykavin/cryptopallab/pkg/logger/zerolog"
	"github.com/raykavin/cryptopallab/pkg/router"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeTransport struct {
	mu         sync.Mutex
	registered bool
	texts      []string
	started    chan struct{}
}

func (f *fakeTransport) Register(*router.Router) error {
	f.registered = true
	return nil
}

func (f *fakeTransport) Start(ctx context.Context) {
	close(f.started)
	<-ctx.Done()
}

func (f *fakeTransport) SendText(_ context.Context, _ string, text string, _ ...core.SendOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, text)
	return nil
}

func (f *fakeTransport) SendImage(context.Context, string, []byte, string, string) error {
	return nil
}

func (f *fakeTransport) AnswerInline(context.Context, string, []core.InlineResult) error {
	return nil
}

type fakeGateway struct{}

func (fakeGateway) Price(context.Context, core.CoinID) (decimal.Decimal, bool) {
	return decimal.NewFromInt(65000), true
}

func (fakeGateway) MarketChart(context.Context, core.CoinID, int) (core.ChartSeries, bool) {
	return nil, false
}

func (fakeGateway) News(context.Context, int) ([]core.NewsItem, error) {
	return []core.NewsItem{}, nil
}

func TestNewBot_WiresRouter(t *testing.T) {
	transport := &fakeTransport{started: make(chan struct{})}

	bot, err := NewBot(core.Settings{}, WithTransport(transport), WithGateway(fakeGateway{}), WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	require.True(t, transport.registered)

	require.NoError(t, bot.Router().HandleCommand(testContext(t), router.Command{Name: "price", Args: "btc", Chat: "1"}))
	require.Equal(t, []string{"BTC price: $65000"}, transport.texts)
}

func TestBot_RunStopsOnCancel(t *testing.T) {
	transport := &fakeTransport{started: make(chan struct{})}
	bot, err := NewBot(core.Settings{
		Broadcast: core.BroadcastSettings{Interval: time.Hour},
	}, WithTransport(transport), WithGateway(fakeGateway{}), WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(testContext(t))
	done := make(chan error, 1)
	go func() { done <- bot.Run(ctx) }()

	<-transport.started
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("bot did not stop")
	}
}
