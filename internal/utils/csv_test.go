package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"niftyOptionsBot/internal/domain"
)

func TestWriteTradesToCSV(t *testing.T) {
	trades := []*domain.Trade{
		{
			Symbol:      "NIFTY19JUN2525000CE",
			Token:       "42001",
			Direction:   domain.CallSide,
			EntryPrice:  100,
			ExitPrice:   88,
			Quantity:    75,
			PNL:         -900,
			EntryTime:   time.Date(2025, 6, 13, 10, 0, 0, 0, time.UTC),
			ExitTime:    time.Date(2025, 6, 13, 10, 30, 0, 0, time.UTC),
			CloseReason: domain.CloseReasonStopLoss,
		},
	}

	filename := filepath.Join(t.TempDir(), "trades.csv")
	require.NoError(t, WriteTradesToCSV(trades, filename))

	raw, err := os.ReadFile(filename)
	require.NoError(t, err)
	content := string(raw)
	assert.Contains(t, content, "symbol")
	assert.Contains(t, content, "NIFTY19JUN2525000CE")
	assert.Contains(t, content, "SL")
}

func TestWriteTradesToCSVBadPath(t *testing.T) {
	err := WriteTradesToCSV(nil, filepath.Join(t.TempDir(), "missing", "trades.csv"))
	assert.Error(t, err)
}
