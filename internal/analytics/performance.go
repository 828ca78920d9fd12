package analytics

import (
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"niftyOptionsBot/internal/domain"
)

// PerformanceMetrics holds the performance summary of a backtest run.
type PerformanceMetrics struct {
	TotalTrades          int
	WinningTrades        int
	LosingTrades         int
	WinRate              float64
	TotalPNL             float64
	AverageWin           float64
	AverageLoss          float64
	ProfitFactor         float64
	MaxDrawdown          float64 // fraction of the peak equity
	Expectancy           float64
	PNLStdDev            float64
	AverageTradeDuration time.Duration
	FinalEquity          float64 // starting capital + total PNL
}

// Analyze computes performance metrics over the closed-trade log.
func Analyze(trades []*domain.Trade, startingCapital float64) *PerformanceMetrics {
	metrics := &PerformanceMetrics{FinalEquity: startingCapital}
	if len(trades) == 0 {
		return metrics
	}

	sorted := make([]*domain.Trade, len(trades))
	copy(sorted, trades)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].EntryTime.Before(sorted[j].EntryTime)
	})

	var wins, losses, pnls []float64
	var totalDuration time.Duration
	equity := startingCapital
	peak := startingCapital

	for _, trade := range sorted {
		metrics.TotalTrades++
		pnls = append(pnls, trade.PNL)
		if trade.PNL > 0 {
			metrics.WinningTrades++
			wins = append(wins, trade.PNL)
		} else {
			metrics.LosingTrades++
			losses = append(losses, trade.PNL)
		}

		metrics.TotalPNL += trade.PNL
		equity += trade.PNL
		if equity > peak {
			peak = equity
		} else if peak > 0 {
			if dd := (peak - equity) / peak; dd > metrics.MaxDrawdown {
				metrics.MaxDrawdown = dd
			}
		}

		totalDuration += trade.ExitTime.Sub(trade.EntryTime)
	}

	metrics.WinRate = float64(metrics.WinningTrades) / float64(metrics.TotalTrades)
	metrics.FinalEquity = equity
	metrics.AverageTradeDuration = totalDuration / time.Duration(len(sorted))

	if len(wins) > 0 {
		metrics.AverageWin, _ = stats.Mean(wins)
	}
	if len(losses) > 0 {
		metrics.AverageLoss, _ = stats.Mean(losses)
	}
	if metrics.AverageLoss != 0 {
		metrics.ProfitFactor = metrics.AverageWin / -metrics.AverageLoss
	}
	metrics.Expectancy = metrics.WinRate*metrics.AverageWin + (1-metrics.WinRate)*metrics.AverageLoss
	if len(pnls) > 1 {
		metrics.PNLStdDev, _ = stats.StandardDeviationSample(pnls)
	}

	return metrics
}
