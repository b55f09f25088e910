// Package format renders gateway results into the text users see.
package format

import (
	"fmt"
	"strings"

	"github.com/raykavin/cryptopallab/pkg/core"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const (
	PriceUnavailable = "Price not available or coin not found."
	NoNews           = "No news found!"
	ChartUnavailable = "Could not fetch chart data."

	PriceUsage = "Usage: /price BTC or /price bitcoin"
	ChartUsage = "Usage: /chart BTC or /chart bitcoin"

	NewsHeader      = "Latest Crypto News:"
	BroadcastHeader = "Auto News Update:"
	TopHeader       = "Top coins:"
)

// Price renders a price reply for the user's original query.
func Price(query string, price decimal.Decimal, ok bool) string {
	if !ok {
		return PriceUnavailable
	}
	return fmt.Sprintf("%s price: $%s", strings.ToUpper(query), price.String())
}

// InlinePrice renders the text of an inline suggestion.
func InlinePrice(query string, price decimal.Decimal, ok bool) string {
	if !ok {
		return query + ": price not available"
	}
	return Price(query, price, true)
}

// Quote is one entry of the top listing.
type Quote struct {
	ID    core.CoinID
	Price decimal.Decimal
	OK    bool
}

// TopLines renders one line per quote, in order. Missing prices become
// "n/a" lines rather than being dropped.
func TopLines(quotes []Quote) []string {
	return lo.Map(quotes, func(q Quote, _ int) string {
		if !q.OK {
			return fmt.Sprintf("%s: n/a", q.ID)
		}
		return fmt.Sprintf("%s: $%s", q.ID, q.Price.String())
	})
}

// Top renders the top-coins reply.
func Top(quotes []Quote) string {
	return TopHeader + "\n" + strings.Join(TopLines(quotes), "\n")
}

// News renders a news fetch outcome under header. Error, empty and
// populated results are mutually exclusive.
func News(header string, items []core.NewsItem, err error) string {
	if err != nil {
		return "Error fetching news: " + err.Error()
	}
	if len(items) == 0 {
		return NoNews
	}

	parts := lo.Map(items, func(item core.NewsItem, _ int) string {
		return item.Title + "\n" + item.URL
	})
	return header + "\n\n" + strings.Join(parts, "\n\n")
}

// ChartFilename names the image produced for a chart request.
func ChartFilename(id core.CoinID, days int) string {
	return fmt.Sprintf("%s_%dd.png", id, days)
}

// ChartTitle is the title drawn on a chart image.
func ChartTitle(id core.CoinID, days int) string {
	return fmt.Sprintf("%s price (last %d days)", id, days)
}
