package indicators

import (
	"math"

	"niftyOptionsBot/internal/domain"
)

// epsilon stabilizes the RSI denominator against all-gain windows.
const epsilon = 1e-10

// RSI implements the Relative Strength Index over simple rolling means of
// gains and losses.
type RSI struct {
	cfg Config
}

// NewRSI creates a new RSI indicator instance.
func NewRSI(cfg Config) *RSI {
	return &RSI{cfg: cfg}
}

// Name returns the name of the indicator.
func (r *RSI) Name() string { return "RSI" }

// Series computes one RSI value per input bar. The first period bars are NaN.
// Fewer than period+1 bars yields an all-NaN series rather than an error.
func (r *RSI) Series(candles []domain.Candle) []float64 {
	n := len(candles)
	out := nanSlice(n)
	if n == 0 || r.cfg.Period <= 0 {
		return out
	}

	gains := make([]float64, n)
	losses := make([]float64, n)
	for i := 1; i < n; i++ {
		delta := candles[i].Close - candles[i-1].Close
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}

	avgGain := rollingMean(gains, r.cfg.Period)
	avgLoss := rollingMean(losses, r.cfg.Period)
	for i := 0; i < n; i++ {
		if math.IsNaN(avgGain[i]) || math.IsNaN(avgLoss[i]) {
			continue
		}
		rs := avgGain[i] / (avgLoss[i] + epsilon)
		out[i] = 100 - (100 / (1 + rs))
	}
	return out
}

// Last returns the most recent RSI value, NaN if undefined.
func (r *RSI) Last(candles []domain.Candle) float64 {
	series := r.Series(candles)
	if len(series) == 0 {
		return math.NaN()
	}
	return series[len(series)-1]
}
