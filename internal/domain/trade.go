package domain

import "time"

// Trade is the immutable record of a closed position. The trade log is
// append-only and read back only for reporting.
type Trade struct {
	ID          int64       `csv:"-"`            // Assigned by the repository, 0 until saved
	Symbol      string      `csv:"symbol"`       // Contract symbol
	Token       string      `csv:"token"`        // Instrument token
	Direction   OptionSide  `csv:"direction"`    // CE or PE
	EntryPrice  float64     `csv:"entry_price"`  // Premium at entry
	ExitPrice   float64     `csv:"exit_price"`   // Premium at exit
	Quantity    int         `csv:"quantity"`     // Lot size
	PNL         float64     `csv:"pnl"`          // Realized profit/loss
	EntryTime   time.Time   `csv:"entry_time"`   // Simulated entry instant
	ExitTime    time.Time   `csv:"exit_time"`    // Simulated exit instant
	CloseReason CloseReason `csv:"close_reason"` // SL, TP or TIMEOUT
	ATR         float64     `csv:"atr"`          // Contract ATR at entry
	StopLoss    float64     `csv:"stop_loss"`    // Stop level at entry
	TakeProfit  float64     `csv:"take_profit"`  // Target level at entry
}
