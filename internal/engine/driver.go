package engine

import (
	"context"
	"fmt"
	"time"

	"niftyOptionsBot/internal/domain"
	"niftyOptionsBot/internal/ports"
)

// SignalScanner produces a breakout signal for the evaluation instant.
type SignalScanner interface {
	Scan(ctx context.Context, asOf time.Time) domain.Signal
}

// EntryResolver finds an affordable option contract for a signal and opens a
// position for it.
type EntryResolver interface {
	Resolve(ctx context.Context, signal domain.Signal, spot float64, asOf time.Time, capital float64) (*domain.Position, error)
}

// Config holds the fixed simulation parameters.
type Config struct {
	StartDate    time.Time      // first calendar day, inclusive
	EndDate      time.Time      // last calendar day, inclusive
	SessionOpen  time.Duration  // session open as offset from midnight, e.g. 9h45m
	SessionClose time.Duration  // session close as offset from midnight, e.g. 15h10m
	Step         time.Duration  // evaluation granularity, 1 minute
	Location     *time.Location // exchange timezone
	IndexToken   string         // instrument token of the index
	HoldTimeout  time.Duration  // maximum holding time before a TIMEOUT exit
}

// Simulator steps simulated time across the session calendar, delegating to
// the signal scanner, the entry resolver and the exit evaluation, and settles
// the capital account at the end of each day.
type Simulator struct {
	cfg      Config
	logger   ports.Logger
	market   ports.MarketDataProvider
	detector SignalScanner
	resolver EntryResolver
	repo     ports.TradeRepository // optional, nil disables persistence
}

// New creates a simulator instance.
func New(cfg Config, logger ports.Logger, market ports.MarketDataProvider, detector SignalScanner, resolver EntryResolver, repo ports.TradeRepository) (*Simulator, error) {
	if logger == nil || market == nil || detector == nil || resolver == nil {
		return nil, fmt.Errorf("missing required dependencies for simulator")
	}
	if cfg.EndDate.Before(cfg.StartDate) {
		return nil, fmt.Errorf("end date %s before start date %s", cfg.EndDate.Format("2006-01-02"), cfg.StartDate.Format("2006-01-02"))
	}
	if cfg.Step <= 0 {
		return nil, fmt.Errorf("step must be positive")
	}
	if cfg.SessionClose < cfg.SessionOpen {
		return nil, fmt.Errorf("session close precedes session open")
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Simulator{
		cfg:      cfg,
		logger:   logger,
		market:   market,
		detector: detector,
		resolver: resolver,
		repo:     repo,
	}, nil
}

// Run executes the simulation over the configured date range, business days
// only. Each day iterates wall-clock time from session open to session close
// inclusive in fixed steps and ends with the account settlement.
func (s *Simulator) Run(ctx context.Context, sess *Session) error {
	if sess == nil {
		return fmt.Errorf("session is required")
	}

	for day := s.cfg.StartDate; !day.After(s.cfg.EndDate); day = day.AddDate(0, 0, 1) {
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		if err := s.runDay(ctx, sess, day); err != nil {
			return err
		}

		sess.Account.Settle()
		s.logger.Info(ctx, "End of day settlement", map[string]interface{}{
			"date":    day.Format("2006-01-02"),
			"capital": sess.Account.Capital,
		})
	}
	return nil
}

func (s *Simulator) runDay(ctx context.Context, sess *Session, day time.Time) error {
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.cfg.Location)
	current := midnight.Add(s.cfg.SessionOpen)
	end := midnight.Add(s.cfg.SessionClose)

	for !current.After(end) {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.step(ctx, sess, current)
		current = current.Add(s.cfg.Step)
	}
	return nil
}

// step performs one evaluation: exit evaluation while a position is open,
// otherwise a breakout scan followed by an entry attempt.
func (s *Simulator) step(ctx context.Context, sess *Session, now time.Time) {
	if sess.HasOpenPosition() {
		s.evaluateExit(ctx, sess, now)
		return
	}

	signal := s.detector.Scan(ctx, now)
	if signal == domain.SignalNone {
		return
	}

	spot, ok := s.latestIndexPrice(ctx, now)
	if !ok {
		return
	}

	pos, err := s.resolver.Resolve(ctx, signal, spot, now, sess.Account.Capital)
	if err != nil {
		// Entry failures are non-fatal: no trade this step, the clock moves on.
		s.logger.Info(ctx, "Entry attempt abandoned", map[string]interface{}{
			"time":   now,
			"signal": signal,
			"reason": err.Error(),
		})
		return
	}
	sess.Position = pos
}

// latestIndexPrice re-fetches the most recent 1-minute index close.
func (s *Simulator) latestIndexPrice(ctx context.Context, now time.Time) (float64, bool) {
	candles, err := s.market.Candles(ctx, s.cfg.IndexToken, domain.IntervalOneMinute, domain.ExchangeNSE, now)
	if err != nil || len(candles) == 0 {
		s.logger.Debug(ctx, "Index spot price unavailable", map[string]interface{}{"time": now})
		return 0, false
	}
	return candles[len(candles)-1].Close, true
}

// evaluateExit checks the open position against its exit rules in priority
// order: stop-loss, take-profit, then holding timeout. A missing candle is a
// transient data gap; the position stays open untouched.
func (s *Simulator) evaluateExit(ctx context.Context, sess *Session, now time.Time) {
	pos := sess.Position

	candles, err := s.market.Candles(ctx, pos.Token, domain.IntervalOneMinute, domain.ExchangeNFO, now)
	if err != nil || len(candles) == 0 {
		s.logger.Debug(ctx, "Contract candles unavailable, holding position", map[string]interface{}{
			"symbol": pos.Symbol,
			"time":   now,
		})
		return
	}
	price := candles[len(candles)-1].Close

	var reason domain.CloseReason
	switch {
	case price <= pos.StopLoss:
		reason = domain.CloseReasonStopLoss
	case price >= pos.TakeProfit:
		reason = domain.CloseReasonTakeProfit
	case pos.HeldFor(now) > s.cfg.HoldTimeout:
		reason = domain.CloseReasonTimeout
	default:
		s.logger.Debug(ctx, "Position still open", map[string]interface{}{
			"symbol":        pos.Symbol,
			"time":          now,
			"unrealizedPNL": pos.UnrealizedPNL(price),
		})
		return
	}

	s.closePosition(ctx, sess, price, now, reason)
}

// closePosition realizes the P&L, applies the ledger rule, appends the trade
// to the session log and clears the open position.
func (s *Simulator) closePosition(ctx context.Context, sess *Session, price float64, now time.Time, reason domain.CloseReason) {
	pos := sess.Position
	pnl := pos.UnrealizedPNL(price)

	sess.Account.Apply(pnl)

	trade := &domain.Trade{
		Symbol:      pos.Symbol,
		Token:       pos.Token,
		Direction:   pos.Direction,
		EntryPrice:  pos.EntryPrice,
		ExitPrice:   price,
		Quantity:    pos.Quantity,
		PNL:         pnl,
		EntryTime:   pos.EntryTime,
		ExitTime:    now,
		CloseReason: reason,
		ATR:         pos.ATR,
		StopLoss:    pos.StopLoss,
		TakeProfit:  pos.TakeProfit,
	}
	sess.Trades = append(sess.Trades, trade)
	sess.Position = nil

	s.logger.Info(ctx, "Position closed", map[string]interface{}{
		"symbol":    trade.Symbol,
		"exitPrice": price,
		"reason":    reason,
		"pnl":       pnl,
		"capital":   sess.Account.Capital,
		"pending":   sess.Account.PendingProfits,
	})

	if s.repo != nil {
		if id, err := s.repo.SaveTrade(ctx, sess.RunID, trade); err != nil {
			// Persistence failures never disturb the simulation state.
			s.logger.Error(ctx, err, "Failed to persist closed trade", map[string]interface{}{"symbol": trade.Symbol})
		} else {
			trade.ID = id
		}
	}
}
