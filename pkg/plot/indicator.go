package plot

import (
	"fmt"

	"github.com/markcheno/go-talib"
	"github.com/raykavin/cryptopallab/pkg/core"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SMA returns the simple moving average of prices, aligned with prices.
// It returns nil when period is not positive or the series is too short.
func SMA(prices []float64, period int) []float64 {
	if period <= 1 || len(prices) < period {
		return nil
	}
	return talib.Sma(prices, period)
}

// Summary describes a price series.
type Summary struct {
	Min    float64
	Max    float64
	Mean   float64
	Change float64 // percent, first to last sample
}

// Summarize computes the summary of series. The zero Summary is returned
// for an empty series.
func Summarize(series core.ChartSeries) Summary {
	if len(series) == 0 {
		return Summary{}
	}

	prices := series.Prices()
	s := Summary{
		Min:  floats.Min(prices),
		Max:  floats.Max(prices),
		Mean: stat.Mean(prices, nil),
	}
	if first := prices[0]; first != 0 {
		s.Change = (prices[len(prices)-1] - first) / first * 100
	}
	return s
}

// Caption renders the summary as a one-line photo caption.
func (s Summary) Caption(id core.CoinID, days int) string {
	return fmt.Sprintf("%s %dd: min $%.2f, max $%.2f, avg $%.2f, change %+.2f%%",
		id, days, s.Min, s.Max, s.Mean, s.Change)
}
