package domain

import "time"

// Position represents the single open option position of a backtest session.
// At most one Position exists at any time; a new one may only be opened after
// the previous one has been closed and logged.
type Position struct {
	Symbol     string     // Contract symbol (e.g., "NIFTY20JUN2525000CE")
	Token      string     // Instrument token resolved from the reference table
	Direction  OptionSide // CE or PE
	EntryTime  time.Time  // Simulated instant the position was entered
	EntryPrice float64    // Option premium at entry
	Quantity   int        // Fixed lot size
	StopLoss   float64    // Exit below this premium
	TakeProfit float64    // Exit at or above this premium

	// Recorded at entry but not consulted by exit evaluation.
	TrailingStop float64 // Initialized to StopLoss
	MaxPrice     float64 // Initialized to EntryPrice
	ATR          float64 // ATR(14) of the contract at entry
}

// UnrealizedPNL returns the mark-to-market profit at the given premium.
func (p *Position) UnrealizedPNL(price float64) float64 {
	return (price - p.EntryPrice) * float64(p.Quantity)
}

// HeldFor returns how long the position has been open at the given instant.
func (p *Position) HeldFor(now time.Time) time.Duration {
	return now.Sub(p.EntryTime)
}
