package domain

import "time"

// Candle represents a single OHLCV bar. Series are always ordered by
// timestamp ascending and are immutable once fetched.
type Candle struct {
	Timestamp time.Time // Start time of the bar
	Open      float64   // Opening price
	High      float64   // Highest price
	Low       float64   // Lowest price
	Close     float64   // Closing price
	Volume    float64   // Traded volume
}
