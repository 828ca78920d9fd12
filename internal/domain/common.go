package domain

// OptionSide represents the side of an option contract (call or put).
type OptionSide string

const (
	CallSide OptionSide = "CE"
	PutSide  OptionSide = "PE"
)

// Signal is the breakout direction detected on the index at an instant.
// It is derived per evaluation step and never stored.
type Signal string

const (
	SignalBullish Signal = "CE"
	SignalBearish Signal = "PE"
	SignalNone    Signal = ""
)

// Side returns the option side traded for the signal.
func (s Signal) Side() OptionSide {
	if s == SignalBearish {
		return PutSide
	}
	return CallSide
}

// CloseReason indicates why a position was closed.
type CloseReason string

const (
	CloseReasonStopLoss   CloseReason = "SL"
	CloseReasonTakeProfit CloseReason = "TP"
	CloseReasonTimeout    CloseReason = "TIMEOUT"
)

// Interval is a candle interval code understood by the historical data API.
type Interval string

const (
	IntervalOneMinute     Interval = "ONE_MINUTE"
	IntervalFiveMinute    Interval = "FIVE_MINUTE"
	IntervalFifteenMinute Interval = "FIFTEEN_MINUTE"
)

// Exchange is an exchange segment code for historical data requests.
type Exchange string

const (
	ExchangeNSE Exchange = "NSE" // cash segment (index spot)
	ExchangeNFO Exchange = "NFO" // derivatives segment (option contracts)
)
