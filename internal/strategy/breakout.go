package strategy

import (
	"context"
	"time"

	"niftyOptionsBot/internal/domain"
	"niftyOptionsBot/internal/indicators"
	"niftyOptionsBot/internal/ports"
)

// DetectBreakout applies the lagging-bar breakout rule to a 15-minute series:
// the latest close is compared against the high and low of the candle two
// positions before the latest (three bars back), not the immediately
// preceding bar. Fails closed with SignalNone on fewer than 3 candles.
func DetectBreakout(candles []domain.Candle) domain.Signal {
	if len(candles) < 3 {
		return domain.SignalNone
	}
	ref := candles[len(candles)-3]
	currentClose := candles[len(candles)-1].Close

	switch {
	case currentClose > ref.High:
		return domain.SignalBullish
	case currentClose < ref.Low:
		return domain.SignalBearish
	default:
		return domain.SignalNone
	}
}

// Detector scans the index for breakout signals using fresh 15-minute data.
type Detector struct {
	market     ports.MarketDataProvider
	logger     ports.Logger
	indexToken string
	rsi        *indicators.RSI
	adx        *indicators.ADX
}

// NewDetector creates a breakout detector for the given index token. The RSI
// and ADX periods size the momentum snapshot logged alongside each signal.
func NewDetector(market ports.MarketDataProvider, logger ports.Logger, indexToken string, rsiPeriod, adxPeriod int) *Detector {
	return &Detector{
		market:     market,
		logger:     logger,
		indexToken: indexToken,
		rsi:        indicators.NewRSI(indicators.Config{Period: rsiPeriod}),
		adx:        indicators.NewADX(indicators.Config{Period: adxPeriod}),
	}
}

// Scan fetches the 15-minute index candles ending at or before asOf and
// returns the breakout signal. Data gaps degrade to SignalNone.
func (d *Detector) Scan(ctx context.Context, asOf time.Time) domain.Signal {
	candles, err := d.market.Candles(ctx, d.indexToken, domain.IntervalFifteenMinute, domain.ExchangeNSE, asOf)
	if err != nil {
		d.logger.Debug(ctx, "Index candles unavailable for breakout scan", map[string]interface{}{
			"asOf":  asOf,
			"error": err.Error(),
		})
		return domain.SignalNone
	}

	signal := DetectBreakout(candles)
	if signal != domain.SignalNone {
		d.logger.Info(ctx, "Breakout detected", map[string]interface{}{
			"signal": signal,
			"asOf":   asOf,
			"rsi":    d.rsi.Last(candles),
			"adx":    d.adx.Last(candles),
		})
	}
	return signal
}
