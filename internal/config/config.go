// Package config loads the immutable runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/raykavin/cryptopallab/pkg/broadcast"
	"github.com/raykavin/cryptopallab/pkg/core"
	"github.com/raykavin/cryptopallab/pkg/market"
	"github.com/spf13/viper"
	"github.com/xhit/go-str2duration/v2"
)

const DefaultEnvFile = ".env"

// Environment keys
const (
	KeyTelegramToken     = "TELEGRAM_TOKEN"
	KeyTelegramPoll      = "TELEGRAM_POLL_TIMEOUT"
	KeyNewsAPIKey        = "CRYPTOPANIC_API_KEY"
	KeyCoinGeckoURL      = "COINGECKO_URL"
	KeyCryptoPanicURL    = "CRYPTOPANIC_URL"
	KeyHTTPTimeout       = "HTTP_TIMEOUT"
	KeyNewsLimit         = "NEWS_LIMIT"
	KeyChartDays         = "CHART_DAYS"
	KeyBroadcastTarget   = "BROADCAST_TARGET"
	KeyBroadcastInterval = "BROADCAST_INTERVAL"
	KeyBroadcastDelay    = "BROADCAST_FIRST_DELAY"
)

// ErrMissingToken is returned by RequireToken when no bot token is set.
var ErrMissingToken = errors.New(KeyTelegramToken + " is not set")

// Load reads envFile (when present) into the process environment and
// builds the settings from it. A missing envFile is not an error.
func Load(envFile string) (core.Settings, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return core.Settings{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault(KeyTelegramPoll, "10s")
	v.SetDefault(KeyCoinGeckoURL, market.CoinGeckoURL)
	v.SetDefault(KeyCryptoPanicURL, market.CryptoPanicURL)
	v.SetDefault(KeyHTTPTimeout, market.DefaultTimeout.String())
	v.SetDefault(KeyNewsLimit, market.DefaultNewsLimit)
	v.SetDefault(KeyChartDays, 7)
	v.SetDefault(KeyBroadcastInterval, strconv.Itoa(int(broadcast.DefaultInterval/time.Second)))
	v.SetDefault(KeyBroadcastDelay, broadcast.DefaultFirstDelay.String())

	return FromViper(v)
}

// FromViper builds settings from an already populated viper instance.
func FromViper(v *viper.Viper) (core.Settings, error) {
	poll, err := ParseDuration(v.GetString(KeyTelegramPoll))
	if err != nil {
		return core.Settings{}, fmt.Errorf("%s: %w", KeyTelegramPoll, err)
	}

	timeout, err := ParseDuration(v.GetString(KeyHTTPTimeout))
	if err != nil {
		return core.Settings{}, fmt.Errorf("%s: %w", KeyHTTPTimeout, err)
	}

	interval, err := ParseDuration(v.GetString(KeyBroadcastInterval))
	if err != nil {
		return core.Settings{}, fmt.Errorf("%s: %w", KeyBroadcastInterval, err)
	}

	delay, err := ParseDuration(v.GetString(KeyBroadcastDelay))
	if err != nil {
		return core.Settings{}, fmt.Errorf("%s: %w", KeyBroadcastDelay, err)
	}

	return core.Settings{
		Telegram: core.TelegramSettings{
			Token:       strings.TrimSpace(v.GetString(KeyTelegramToken)),
			PollTimeout: poll,
		},
		Market: core.MarketSettings{
			CoinGeckoURL:   strings.TrimRight(v.GetString(KeyCoinGeckoURL), "/"),
			CryptoPanicURL: strings.TrimRight(v.GetString(KeyCryptoPanicURL), "/"),
			NewsAPIKey:     v.GetString(KeyNewsAPIKey),
			Timeout:        timeout,
			NewsLimit:      v.GetInt(KeyNewsLimit),
			ChartDays:      v.GetInt(KeyChartDays),
		},
		Broadcast: core.BroadcastSettings{
			Target:     strings.TrimSpace(v.GetString(KeyBroadcastTarget)),
			Interval:   interval,
			FirstDelay: delay,
		},
	}, nil
}

// ParseDuration accepts a plain number of seconds ("3600", "-1") or a
// duration string with day and week units ("1h", "1d12h").
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return str2duration.ParseDuration(s)
}

// RequireToken reports whether settings can start the Telegram bot.
func RequireToken(settings core.Settings) error {
	if settings.Telegram.Token == "" {
		return ErrMissingToken
	}
	return nil
}
