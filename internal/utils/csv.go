package utils

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"niftyOptionsBot/internal/domain"
)

// WriteTradesToCSV exports the closed-trade log to a CSV file.
func WriteTradesToCSV(trades []*domain.Trade, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&trades, file); err != nil {
		return fmt.Errorf("failed to write trades to %s: %w", filename, err)
	}
	return nil
}
