package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/raykavin/cryptopallab/pkg/core"
	"github.com/shopspring/decimal"
)

const (
	CoinGeckoURL = "https://api.coingecko.com/api/v3"
	vsCurrency   = "usd"
)

// CoinGecko reads spot prices and price history.
type CoinGecko struct {
	options
}

func NewCoinGecko(opts ...Option) *CoinGecko {
	return &CoinGecko{options: newOptions(CoinGeckoURL, opts)}
}

// Price returns the USD price of id. The second result is false both when
// the request fails and when the response does not carry the id or the
// currency; the two cases are deliberately not told apart.
func (c *CoinGecko) Price(ctx context.Context, id core.CoinID) (decimal.Decimal, bool) {
	query := url.Values{}
	query.Set("ids", id.String())
	query.Set("vs_currencies", vsCurrency)
	endpoint := c.baseURL + "/simple/price?" + query.Encode()

	var body map[string]map[string]json.RawMessage
	if err := c.getJSON(ctx, endpoint, &body); err != nil {
		c.log.WithError(err).WithField("coin", id).Error("price fetch failed")
		return decimal.Zero, false
	}

	raw, ok := body[id.String()][vsCurrency]
	if !ok {
		c.log.WithField("coin", id).Warn("price missing from response")
		return decimal.Zero, false
	}

	price, err := decimal.NewFromString(string(raw))
	if err != nil {
		c.log.WithError(err).WithField("coin", id).Warn("price is not a number")
		return decimal.Zero, false
	}

	return price, true
}

// MarketChart returns the trailing USD price series for id over days. The
// second result is false on any failure or when the series is empty.
func (c *CoinGecko) MarketChart(ctx context.Context, id core.CoinID, days int) (core.ChartSeries, bool) {
	query := url.Values{}
	query.Set("vs_currency", vsCurrency)
	query.Set("days", strconv.Itoa(days))
	endpoint := fmt.Sprintf("%s/coins/%s/market_chart?%s", c.baseURL, url.PathEscape(id.String()), query.Encode())

	var body struct {
		Prices [][]float64 `json:"prices"`
	}
	if err := c.getJSON(ctx, endpoint, &body); err != nil {
		c.log.WithError(err).WithFields(map[string]any{"coin": id, "days": days}).Error("market chart fetch failed")
		return nil, false
	}

	series := make(core.ChartSeries, 0, len(body.Prices))
	for _, p := range body.Prices {
		if len(p) < 2 {
			continue
		}
		series = append(series, core.ChartPoint{
			Time:  time.UnixMilli(int64(p[0])).UTC(),
			Price: p[1],
		})
	}

	if len(series) == 0 {
		c.log.WithField("coin", id).Warn("market chart is empty")
		return nil, false
	}

	return series, true
}
