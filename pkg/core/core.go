// Package core holds the request-scoped domain types and the ports through
// which cryptopallab talks to the chat platform.
package core

import (
	"context"
	"time"
)

// CoinID is the canonical lowercase identifier accepted by the price and
// chart APIs, e.g. "bitcoin".
type CoinID string

func (c CoinID) String() string { return string(c) }

// NewsItem is one headline returned by the news aggregator.
type NewsItem struct {
	Title       string
	URL         string
	Source      string
	PublishedAt string
}

// ChartPoint is a single (timestamp, price) sample.
type ChartPoint struct {
	Time  time.Time
	Price float64
}

// ChartSeries is an ordered price series covering a trailing window.
type ChartSeries []ChartPoint

// Prices returns the price column of the series.
func (s ChartSeries) Prices() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Price
	}
	return out
}

// InlineResult is a selectable suggestion offered in reply to an inline query.
type InlineResult struct {
	ID    string
	Title string
	Text  string
}

// Sender delivers outbound replies to a chat or channel.
type Sender interface {
	SendText(ctx context.Context, to string, text string, opts ...SendOption) error
	SendImage(ctx context.Context, to string, image []byte, filename, caption string) error
}

// InlineAnswerer answers an inline query by id.
type InlineAnswerer interface {
	AnswerInline(ctx context.Context, queryID string, results []InlineResult) error
}

// SendOption tweaks how a text message is delivered.
type SendOption int

const (
	// NoPreview disables link previews for the message.
	NoPreview SendOption = iota + 1
)
