package indicators

import (
	"math"

	"niftyOptionsBot/internal/domain"
)

// Config holds common configuration for indicators.
type Config struct {
	Period int
}

// nanSlice returns a slice of the given length filled with NaN.
func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// rollingMean computes a simple rolling mean over the values. The first
// period-1 entries are NaN; a NaN anywhere inside a window propagates into
// its mean.
func rollingMean(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 {
		return out
	}
	for i := period - 1; i < len(values); i++ {
		sum := 0.0
		for j := i - period + 1; j <= i; j++ {
			sum += values[j]
		}
		out[i] = sum / float64(period)
	}
	return out
}

// trueRanges computes the true range per bar: the greatest of high-low,
// |high-prevClose| and |low-prevClose|. The first bar has no previous close,
// so its true range is just high-low.
func trueRanges(candles []domain.Candle) []float64 {
	tr := make([]float64, len(candles))
	for i, c := range candles {
		if i == 0 {
			tr[0] = c.High - c.Low
			continue
		}
		prevClose := candles[i-1].Close
		tr[i] = math.Max(c.High-c.Low, math.Max(math.Abs(c.High-prevClose), math.Abs(c.Low-prevClose)))
	}
	return tr
}
