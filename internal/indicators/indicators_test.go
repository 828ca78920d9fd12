package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"niftyOptionsBot/internal/domain"
)

func TestATRSeries(t *testing.T) {
	atr := NewATR(Config{Period: 2})
	candles := []domain.Candle{
		{High: 10, Low: 8, Close: 9},
		{High: 11, Low: 9, Close: 10},
		{High: 12, Low: 10, Close: 11},
	}

	series := atr.Series(candles)
	assert.Len(t, series, 3)
	assert.True(t, math.IsNaN(series[0]), "warm-up bar should be NaN")
	assert.InDelta(t, 2.0, series[1], 1e-9)
	assert.InDelta(t, 2.0, series[2], 1e-9)
}

func TestATRLastRounding(t *testing.T) {
	atr := NewATR(Config{Period: 3})
	// True ranges 2, 2 and 3; their mean 2.333... must round to 2.33.
	candles := []domain.Candle{
		{High: 10, Low: 8, Close: 9},
		{High: 11, Low: 9, Close: 10},
		{High: 13, Low: 10, Close: 12},
	}

	assert.InDelta(t, 2.33, atr.Last(candles), 1e-9)
}

func TestATRLastShortInput(t *testing.T) {
	atr := NewATR(Config{Period: 14})

	assert.True(t, math.IsNaN(atr.Last(nil)))
	assert.True(t, math.IsNaN(atr.Last([]domain.Candle{{High: 10, Low: 8, Close: 9}})))
}

func TestRSISeries(t *testing.T) {
	rsi := NewRSI(Config{Period: 2})
	candles := []domain.Candle{
		{Close: 10},
		{Close: 11},
		{Close: 10.5},
		{Close: 11.5},
	}

	series := rsi.Series(candles)
	assert.Len(t, series, 4)
	assert.True(t, math.IsNaN(series[0]))
	// All-gain window: the epsilon denominator keeps RSI just below 100.
	assert.InDelta(t, 100.0, series[1], 1e-6)
	// avgGain 0.5, avgLoss 0.25 over the last two windows.
	assert.InDelta(t, 66.6667, series[2], 1e-4)
	assert.InDelta(t, 66.6667, series[3], 1e-4)
}

func TestRSIShortInput(t *testing.T) {
	rsi := NewRSI(Config{Period: 14})
	candles := []domain.Candle{{Close: 10}, {Close: 11}}

	for _, v := range rsi.Series(candles) {
		assert.True(t, math.IsNaN(v))
	}
	assert.True(t, math.IsNaN(rsi.Last(nil)))
}

func TestADXSeriesTrendingMarket(t *testing.T) {
	period := 14
	adx := NewADX(Config{Period: period})

	// A monotone uptrend: all directional movement is positive, so DX is 100
	// everywhere it is defined and ADX converges to 100.
	var candles []domain.Candle
	for i := 0; i < 30; i++ {
		base := float64(i)
		candles = append(candles, domain.Candle{High: base + 1, Low: base, Close: base + 0.5})
	}

	series := adx.Series(candles)
	assert.Len(t, series, 30)
	// The first bar has no true range, so the ADX window is only complete two
	// full periods in.
	assert.True(t, math.IsNaN(series[2*period-2]))
	assert.InDelta(t, 100.0, series[2*period-1], 1e-6)
	assert.InDelta(t, 100.0, adx.Last(candles), 1e-6)
}

func TestADXShortInput(t *testing.T) {
	adx := NewADX(Config{Period: 14})

	assert.True(t, math.IsNaN(adx.Last(nil)))
	for _, v := range adx.Series([]domain.Candle{{High: 10, Low: 8, Close: 9}, {High: 11, Low: 9, Close: 10}}) {
		assert.True(t, math.IsNaN(v))
	}
}

func TestIndicatorNames(t *testing.T) {
	assert.Equal(t, "ATR", NewATR(Config{Period: 14}).Name())
	assert.Equal(t, "RSI", NewRSI(Config{Period: 14}).Name())
	assert.Equal(t, "ADX", NewADX(Config{Period: 14}).Name())
}
