package indicators

import (
	"math"

	"niftyOptionsBot/internal/domain"
)

// ADX implements the Average Directional Index from rolling means of the true
// range and the directional movements.
type ADX struct {
	cfg Config
}

// NewADX creates a new Average Directional Index indicator instance.
func NewADX(cfg Config) *ADX {
	return &ADX{cfg: cfg}
}

// Name returns the name of the indicator.
func (a *ADX) Name() string { return "ADX" }

// Series computes one ADX value per input bar. The directional quantities
// need a previous bar, so the leading bars are NaN; short series degrade to
// all-NaN rather than an error.
func (a *ADX) Series(candles []domain.Candle) []float64 {
	n := len(candles)
	if n == 0 || a.cfg.Period <= 0 {
		return nanSlice(n)
	}

	tr := nanSlice(n)
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	for i := 1; i < n; i++ {
		cur, prev := candles[i], candles[i-1]
		tr[i] = math.Max(cur.High-cur.Low, math.Max(math.Abs(cur.High-prev.Close), math.Abs(cur.Low-prev.Close)))
		upMove := cur.High - prev.High
		downMove := prev.Low - cur.Low
		if upMove > downMove {
			plusDM[i] = math.Max(upMove, 0)
		} else if downMove > upMove {
			minusDM[i] = math.Max(downMove, 0)
		}
	}

	atr := rollingMean(tr, a.cfg.Period)
	avgPlusDM := rollingMean(plusDM, a.cfg.Period)
	avgMinusDM := rollingMean(minusDM, a.cfg.Period)

	dx := nanSlice(n)
	for i := 0; i < n; i++ {
		if math.IsNaN(atr[i]) || atr[i] == 0 {
			continue
		}
		plusDI := avgPlusDM[i] / atr[i] * 100
		minusDI := avgMinusDM[i] / atr[i] * 100
		sum := plusDI + minusDI
		if sum == 0 {
			continue
		}
		dx[i] = math.Abs(plusDI-minusDI) / sum * 100
	}

	return rollingMean(dx, a.cfg.Period)
}

// Last returns the most recent ADX value, NaN if undefined.
func (a *ADX) Last(candles []domain.Candle) float64 {
	series := a.Series(candles)
	if len(series) == 0 {
		return math.NaN()
	}
	return series[len(series)-1]
}
