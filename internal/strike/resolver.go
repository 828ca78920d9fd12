package strike

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"niftyOptionsBot/internal/domain"
	"niftyOptionsBot/internal/indicators"
	"niftyOptionsBot/internal/ports"
)

// Config holds parameters for option contract resolution.
type Config struct {
	Underlying        string  // e.g., "NIFTY"
	ExpiryYearCode    string  // two-digit year embedded in the symbol, e.g. "25"
	TickStep          int     // strike increment, e.g. 50
	Lot               int     // contract quantity multiplier, e.g. 75
	ATRPeriod         int     // e.g., 14
	StopLossATRMult   float64 // e.g., 1.0
	TakeProfitATRMult float64 // e.g., 3.0
	MaxStrikeChecks   int     // strike search bound, e.g. 10
}

// Resolver maps a breakout signal and spot price to an affordable tradable
// option contract, searching adjacent strikes under the capital constraint.
type Resolver struct {
	cfg    Config
	market ports.MarketDataProvider
	tokens ports.TokenResolver
	logger ports.Logger
	atr    *indicators.ATR
}

// NewResolver creates a strike resolver.
func NewResolver(cfg Config, market ports.MarketDataProvider, tokens ports.TokenResolver, logger ports.Logger) (*Resolver, error) {
	if market == nil || tokens == nil || logger == nil {
		return nil, fmt.Errorf("missing required dependencies for strike resolver")
	}
	if cfg.TickStep <= 0 || cfg.Lot <= 0 || cfg.MaxStrikeChecks <= 0 || cfg.ATRPeriod <= 0 {
		return nil, fmt.Errorf("strike resolver config values must be positive")
	}
	return &Resolver{
		cfg:    cfg,
		market: market,
		tokens: tokens,
		logger: logger,
		atr:    indicators.NewATR(indicators.Config{Period: cfg.ATRPeriod}),
	}, nil
}

// ATMStrike rounds the spot price to the nearest multiple of the tick step.
func (r *Resolver) ATMStrike(spot float64) int {
	return int(math.Round(spot/float64(r.cfg.TickStep))) * r.cfg.TickStep
}

// ExpiryCode returns the weekly expiry code for the evaluation date: the next
// Thursday on or after it (same day when the date is a Thursday), formatted
// as upper-case day+month, e.g. "20JUN".
func ExpiryCode(asOf time.Time) string {
	days := (int(time.Thursday) - int(asOf.Weekday()) + 7) % 7
	expiry := asOf.AddDate(0, 0, days)
	return strings.ToUpper(expiry.Format("02Jan"))
}

// ContractSymbol builds the candidate contract identifier.
func (r *Resolver) ContractSymbol(expiryCode string, strikePrice int, side domain.OptionSide) string {
	return fmt.Sprintf("%s%s%s%d%s", r.cfg.Underlying, expiryCode, r.cfg.ExpiryYearCode, strikePrice, side)
}

// Resolve searches for an affordable contract and returns the opened
// position. The search starts at the at-the-money strike and steps away from
// it (up for calls, down for puts) while the contract cost exceeds the
// available capital, bounded at MaxStrikeChecks candidates.
//
// An unresolved token or an empty candle fetch abandons the whole attempt for
// this step instead of advancing to the next strike; only the unaffordable
// path steps strikes. Exhausting the bound is a normal no-trade outcome
// reported as ErrInsufficientCapital.
func (r *Resolver) Resolve(ctx context.Context, signal domain.Signal, spot float64, asOf time.Time, capital float64) (*domain.Position, error) {
	if signal == domain.SignalNone {
		return nil, fmt.Errorf("cannot resolve a contract without a signal: %w", ports.ErrInvalidRequest)
	}

	side := signal.Side()
	strikePrice := r.ATMStrike(spot)
	expiry := ExpiryCode(asOf)

	for checks := 0; checks < r.cfg.MaxStrikeChecks; checks++ {
		symbol := r.ContractSymbol(expiry, strikePrice, side)

		token, err := r.tokens.ResolveToken(ctx, symbol)
		if err != nil {
			return nil, fmt.Errorf("token lookup for %s: %w", symbol, err)
		}

		candles, err := r.market.Candles(ctx, token, domain.IntervalFiveMinute, domain.ExchangeNFO, asOf)
		if err != nil {
			return nil, fmt.Errorf("candles for %s: %w", symbol, err)
		}
		if len(candles) == 0 {
			return nil, fmt.Errorf("no candles for %s: %w", symbol, ports.ErrDataUnavailable)
		}

		ltp := candles[len(candles)-1].Close
		cost := ltp * float64(r.cfg.Lot)
		if cost > capital {
			r.logger.Debug(ctx, "Contract cost exceeds capital, stepping strike", map[string]interface{}{
				"symbol":  symbol,
				"cost":    cost,
				"capital": capital,
			})
			if side == domain.CallSide {
				strikePrice += r.cfg.TickStep
			} else {
				strikePrice -= r.cfg.TickStep
			}
			continue
		}

		atr := r.atr.Last(candles)
		if math.IsNaN(atr) {
			return nil, fmt.Errorf("not enough candles for ATR of %s: %w", symbol, ports.ErrDataUnavailable)
		}
		sl := ltp - r.cfg.StopLossATRMult*atr
		tp := ltp + r.cfg.TakeProfitATRMult*atr

		pos := &domain.Position{
			Symbol:       symbol,
			Token:        token,
			Direction:    side,
			EntryTime:    asOf,
			EntryPrice:   ltp,
			Quantity:     r.cfg.Lot,
			StopLoss:     sl,
			TakeProfit:   tp,
			TrailingStop: sl,
			MaxPrice:     ltp,
			ATR:          atr,
		}
		r.logger.Info(ctx, "Entered position", map[string]interface{}{
			"symbol":     symbol,
			"entryPrice": ltp,
			"stopLoss":   sl,
			"takeProfit": tp,
			"atr":        atr,
		})
		return pos, nil
	}

	return nil, fmt.Errorf("no affordable strike within %d checks: %w", r.cfg.MaxStrikeChecks, ports.ErrInsufficientCapital)
}
