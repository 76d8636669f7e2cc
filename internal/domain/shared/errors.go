package shared

import "errors"

// Business-rule and validation errors surfaced by the ledger engine.
// The HTTP adapter maps these onto status codes.
var (
	ErrInvalidAmount         = errors.New("amount must be a positive integer")
	ErrInvalidIdempotencyKey = errors.New("idempotency key must be a valid version-4 UUID")
	ErrIdempotencyConflict   = errors.New("idempotency key conflict: same key used for a different request")
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrCurrencyMismatch      = errors.New("source and destination wallets must share the same currency")
	ErrSelfTransfer          = errors.New("source and destination wallets must differ")
	ErrInvalidOperationType  = errors.New("invalid operation type")
)
