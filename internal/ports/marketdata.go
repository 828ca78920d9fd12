package ports

import (
	"context"
	"time"

	"niftyOptionsBot/internal/domain"
)

// MarketDataProvider supplies historical candles for an instrument token.
// Implementations must return candles ordered by timestamp ascending and
// filtered to timestamps at or before asOf; an empty slice means the data is
// unavailable for this step.
type MarketDataProvider interface {
	Candles(ctx context.Context, token string, interval domain.Interval, exchange domain.Exchange, asOf time.Time) ([]domain.Candle, error)
}

// Authenticator establishes the broker session required before any
// historical data call. The engine treats it as an opaque precondition.
type Authenticator interface {
	Authenticate(ctx context.Context) error
}
