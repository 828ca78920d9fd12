package ports

import (
	"context"
	"time"

	"niftyOptionsBot/internal/domain"
)

// TradeRepository persists backtest runs and their closed trades.
type TradeRepository interface {
	// CreateRun records the start of a backtest run.
	CreateRun(ctx context.Context, run *domain.Run) error
	// FinishRun stamps the run with its final capital and finish time.
	FinishRun(ctx context.Context, runID string, finalCapital float64, finishedAt time.Time) error
	// SaveTrade appends a closed trade to the run's log and returns its ID.
	SaveTrade(ctx context.Context, runID string, trade *domain.Trade) (int64, error)
	// FindTradesByRun retrieves all trades of a run ordered by entry time.
	FindTradesByRun(ctx context.Context, runID string) ([]*domain.Trade, error)
	// LatestRun returns the most recently started run.
	// Returns nil, nil when no run has been recorded.
	LatestRun(ctx context.Context) (*domain.Run, error)
}
