package ports

import (
	"context"
	"time"
)

// TokenResolver maps tradable contract symbols to instrument tokens using a
// daily-refreshed reference table keyed by uppercase symbol.
type TokenResolver interface {
	// ResolveToken returns the instrument token for a contract symbol.
	// Returns ErrTokenNotFound if the symbol is absent from the table and
	// ErrReferenceTableUnavailable if Refresh has not succeeded yet.
	ResolveToken(ctx context.Context, symbol string) (string, error)

	// Refresh loads the reference table for the given trading date. It must
	// be called once before the first ResolveToken of a run; the table is
	// cached per calendar day.
	Refresh(ctx context.Context, date time.Time) error
}
