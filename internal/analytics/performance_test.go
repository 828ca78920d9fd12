package analytics

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"niftyOptionsBot/internal/domain"
)

func tradeAt(entry time.Time, held time.Duration, pnl float64) *domain.Trade {
	return &domain.Trade{
		Symbol:    "NIFTY19JUN2525000CE",
		Direction: domain.CallSide,
		PNL:       pnl,
		EntryTime: entry,
		ExitTime:  entry.Add(held),
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	m := Analyze(nil, 10000)

	assert.Zero(t, m.TotalTrades)
	assert.Equal(t, 10000.0, m.FinalEquity)
	assert.Zero(t, m.MaxDrawdown)
}

func TestAnalyze(t *testing.T) {
	day := time.Date(2025, 6, 13, 9, 45, 0, 0, time.UTC)
	trades := []*domain.Trade{
		tradeAt(day, 30*time.Minute, 1000),
		tradeAt(day.Add(time.Hour), 60*time.Minute, -500),
		tradeAt(day.Add(2*time.Hour), 30*time.Minute, -1500),
		tradeAt(day.Add(3*time.Hour), 120*time.Minute, 2000),
	}

	m := Analyze(trades, 10000)

	assert.Equal(t, 4, m.TotalTrades)
	assert.Equal(t, 2, m.WinningTrades)
	assert.Equal(t, 2, m.LosingTrades)
	assert.Equal(t, 0.5, m.WinRate)
	assert.Equal(t, 1000.0, m.TotalPNL)
	assert.Equal(t, 11000.0, m.FinalEquity)
	assert.InDelta(t, 1500.0, m.AverageWin, 1e-9)
	assert.InDelta(t, -1000.0, m.AverageLoss, 1e-9)
	assert.InDelta(t, 1.5, m.ProfitFactor, 1e-9)
	// Peak 11000 after the first win, trough 9000 after the two losses.
	assert.InDelta(t, 2000.0/11000.0, m.MaxDrawdown, 1e-9)
	assert.InDelta(t, 250.0, m.Expectancy, 1e-9)
	assert.Equal(t, 60*time.Minute, m.AverageTradeDuration)
}

func TestAnalyzeSortsByEntryTime(t *testing.T) {
	day := time.Date(2025, 6, 13, 9, 45, 0, 0, time.UTC)
	// Out of order on purpose: drawdown depends on the equity path.
	trades := []*domain.Trade{
		tradeAt(day.Add(time.Hour), 30*time.Minute, 1000),
		tradeAt(day, 30*time.Minute, -2000),
	}

	m := Analyze(trades, 10000)

	// Chronological path: 10000 -> 8000 -> 9000; drawdown hit at 8000.
	assert.InDelta(t, 2000.0/10000.0, m.MaxDrawdown, 1e-9)
	assert.Equal(t, 9000.0, m.FinalEquity)
}

func TestAnalyzeBreakEvenTradeCountsAsLoss(t *testing.T) {
	day := time.Date(2025, 6, 13, 9, 45, 0, 0, time.UTC)
	m := Analyze([]*domain.Trade{tradeAt(day, 30*time.Minute, 0)}, 10000)

	assert.Equal(t, 0, m.WinningTrades)
	assert.Equal(t, 1, m.LosingTrades)
	assert.Zero(t, m.ProfitFactor)
}

func TestWriteTables(t *testing.T) {
	day := time.Date(2025, 6, 13, 9, 45, 0, 0, time.UTC)
	trades := []*domain.Trade{tradeAt(day, 30*time.Minute, 1000)}

	var buf bytes.Buffer
	WriteTradeTable(&buf, trades)
	assert.Contains(t, buf.String(), "NIFTY19JUN2525000CE")

	buf.Reset()
	WriteMetricsTable(&buf, Analyze(trades, 10000))
	assert.Contains(t, buf.String(), "Total trades")
	assert.Contains(t, buf.String(), "11000.00")
}
