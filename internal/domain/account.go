package domain

// Account tracks the capital of a backtest session under the recovery-first
// policy: realized gains first refill the shortfall below starting capital;
// only the surplus beyond that is recognized, and it is parked in
// PendingProfits until the end-of-day settlement folds it into capital.
//
// Capital is mutated in exactly two places: Apply (on position close) and
// Settle (once per simulated day).
type Account struct {
	StartingCapital float64
	Capital         float64
	PendingProfits  float64
}

// NewAccount creates an account holding the full starting capital.
func NewAccount(startingCapital float64) *Account {
	return &Account{
		StartingCapital: startingCapital,
		Capital:         startingCapital,
	}
}

// Apply books the realized profit/loss of a closed position.
// Losses reduce capital unconditionally; there is no floor, capital may go
// negative. Gains restore capital up to StartingCapital; anything beyond the
// shortfall accrues to PendingProfits instead of capital.
func (a *Account) Apply(pnl float64) {
	if pnl < 0 {
		a.Capital += pnl
		return
	}
	needed := a.StartingCapital - a.Capital
	if pnl <= needed {
		a.Capital += pnl
		return
	}
	a.Capital = a.StartingCapital
	a.PendingProfits += pnl - needed
}

// Settle performs the end-of-day settlement: pending profits are folded into
// capital and the accumulator is reset. Runs once per simulated day, whether
// or not any trade occurred.
func (a *Account) Settle() {
	a.Capital += a.PendingProfits
	a.PendingProfits = 0
}
