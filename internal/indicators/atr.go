package indicators

import (
	"math"

	"niftyOptionsBot/internal/domain"
)

// ATR implements the Average True Range as a simple rolling mean of the true
// range.
type ATR struct {
	cfg Config
}

// NewATR creates a new Average True Range indicator instance.
func NewATR(cfg Config) *ATR {
	return &ATR{cfg: cfg}
}

// Name returns the name of the indicator.
func (a *ATR) Name() string { return "ATR" }

// Series computes one ATR value per input bar; the first period-1 bars are NaN.
func (a *ATR) Series(candles []domain.Candle) []float64 {
	if len(candles) == 0 || a.cfg.Period <= 0 {
		return nanSlice(len(candles))
	}
	return rollingMean(trueRanges(candles), a.cfg.Period)
}

// Last returns the most recent ATR value rounded to 2 decimal places, the
// precision the engine sizes stops with. NaN when fewer than period bars are
// available.
func (a *ATR) Last(candles []domain.Candle) float64 {
	series := a.Series(candles)
	if len(series) == 0 {
		return math.NaN()
	}
	last := series[len(series)-1]
	if math.IsNaN(last) {
		return last
	}
	return math.Round(last*100) / 100
}
