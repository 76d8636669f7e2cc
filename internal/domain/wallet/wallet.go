package wallet

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrEmptyName             = errors.New("wallet name cannot be empty")
	ErrEmptyOwnerName        = errors.New("owner name cannot be empty")
	ErrInvalidCurrencyFormat = errors.New("currency must be a 3-letter code")
)

// Wallet is an owner's named balance in one currency.
// The balance is stored in minor units and is only ever mutated by the
// ledger engine inside a database transaction.
type Wallet struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	OwnerName   string    `json:"owner_name"`
	Currency    string    `json:"currency"`
	Balance     int64     `json:"balance"` // Minor units, never fractional
	Description string    `json:"description,omitempty"`
	Version     int       `json:"version"` // Bumped on every balance change
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// New creates a wallet with a zero balance. Funds only ever arrive through
// the ledger engine.
func New(name, ownerName, currency, description string) (*Wallet, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if ownerName == "" {
		return nil, ErrEmptyOwnerName
	}
	if len(currency) != 3 {
		return nil, ErrInvalidCurrencyFormat
	}

	now := time.Now()
	return &Wallet{
		ID:          uuid.New(),
		Name:        name,
		OwnerName:   ownerName,
		Currency:    currency,
		Balance:     0,
		Description: description,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// CanWithdraw checks whether the wallet covers the given amount
func (w *Wallet) CanWithdraw(amount int64) bool {
	return w.Balance >= amount
}
