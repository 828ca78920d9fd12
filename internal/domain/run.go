package domain

import "time"

// Run identifies one backtest execution in the trade repository.
type Run struct {
	ID              string    // UUID assigned when the session is created
	StartedAt       time.Time // Wall-clock start of the run
	FinishedAt      time.Time // Wall-clock end (zero while running)
	StartDate       time.Time // First simulated calendar day
	EndDate         time.Time // Last simulated calendar day (inclusive)
	StartingCapital float64
	FinalCapital    float64
}
