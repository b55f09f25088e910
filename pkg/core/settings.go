package core

import "time"

// Settings is the immutable runtime configuration. It is built once at
// startup and passed by value to the components that need it.
type Settings struct {
	Telegram  TelegramSettings
	Market    MarketSettings
	Broadcast BroadcastSettings
}

// TelegramSettings holds the chat platform credentials.
type TelegramSettings struct {
	Token       string
	PollTimeout time.Duration
}

// MarketSettings configures the upstream price and news APIs.
type MarketSettings struct {
	CoinGeckoURL   string
	CryptoPanicURL string
	NewsAPIKey     string
	Timeout        time.Duration
	NewsLimit      int
	ChartDays      int
}

// BroadcastSettings configures the recurring news broadcast. An empty
// Target keeps the timer running but skips delivery; a non-positive
// Interval disables the timer.
type BroadcastSettings struct {
	Target     string
	Interval   time.Duration
	FirstDelay time.Duration
}

// Enabled reports whether the broadcast timer should run at all.
func (b BroadcastSettings) Enabled() bool {
	return b.Interval > 0
}
