package engine

import (
	"github.com/google/uuid"

	"niftyOptionsBot/internal/domain"
)

// Session holds all mutable state of one backtest run: the capital account,
// the single open position and the closed-trade log. Concurrent runs must
// each own their Session; the Simulator never shares one across runs.
type Session struct {
	RunID    string
	Account  *domain.Account
	Position *domain.Position
	Trades   []*domain.Trade
}

// NewSession creates a fresh session with the full starting capital and a
// unique run ID.
func NewSession(startingCapital float64) *Session {
	return &Session{
		RunID:   uuid.NewString(),
		Account: domain.NewAccount(startingCapital),
	}
}

// HasOpenPosition reports whether a position is currently open.
func (s *Session) HasOpenPosition() bool {
	return s.Position != nil
}
