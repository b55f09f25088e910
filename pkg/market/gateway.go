package market

import (
	"context"

	"github.com/raykavin/cryptopallab/pkg/core"
	"github.com/raykavin/cryptopallab/pkg/logger"
	"github.com/shopspring/decimal"
)

// Gateway joins the price and news clients behind one value.
type Gateway struct {
	prices *CoinGecko
	news   *CryptoPanic
}

// NewGateway builds both upstream clients from settings.
func NewGateway(settings core.MarketSettings, log logger.Logger, opts ...Option) *Gateway {
	common := append([]Option{WithTimeout(settings.Timeout), WithLogger(log)}, opts...)

	prices := append([]Option{WithBaseURL(settings.CoinGeckoURL)}, common...)
	news := append([]Option{WithBaseURL(settings.CryptoPanicURL)}, common...)

	return &Gateway{
		prices: NewCoinGecko(prices...),
		news:   NewCryptoPanic(settings.NewsAPIKey, news...),
	}
}

func (g *Gateway) Price(ctx context.Context, id core.CoinID) (decimal.Decimal, bool) {
	return g.prices.Price(ctx, id)
}

func (g *Gateway) MarketChart(ctx context.Context, id core.CoinID, days int) (core.ChartSeries, bool) {
	return g.prices.MarketChart(ctx, id, days)
}

func (g *Gateway) News(ctx context.Context, limit int) ([]core.NewsItem, error) {
	return g.news.News(ctx, limit)
}
