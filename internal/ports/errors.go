package ports

import "errors"

// Standard application-level errors.
// Adapters wrap underlying infrastructure errors with these standard errors
// so the engine can classify failures without knowing the transport.
var (
	// General errors
	ErrUnknown            = errors.New("unknown error occurred")
	ErrInvalidRequest     = errors.New("invalid request parameters or format")
	ErrNotFound           = errors.New("resource not found")
	ErrConfigurationError = errors.New("invalid or missing configuration")

	// Market data / broker errors
	ErrDataUnavailable      = errors.New("historical data unavailable")
	ErrAuthenticationFailed = errors.New("broker authentication failed")
	ErrAPIUnavailable       = errors.New("broker API is unavailable")

	// Instrument reference table errors
	ErrReferenceTableUnavailable = errors.New("instrument reference table not loaded")
	ErrTokenNotFound             = errors.New("instrument token not found for symbol")

	// Trading errors
	ErrInsufficientCapital = errors.New("no affordable contract within strike search bound")

	// Database errors
	ErrDBConnection = errors.New("database connection error")
	ErrQueryFailed  = errors.New("database query failed")
)
