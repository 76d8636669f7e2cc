package wallet

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository defines wallet persistence operations
type Repository interface {
	Create(ctx context.Context, w *Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*Wallet, error)
	List(ctx context.Context, limit, offset int) ([]*Wallet, error)
	Count(ctx context.Context) (int64, error)

	// UpdateDetails changes the wallet's name and description only.
	// Balance and currency are off limits outside the engine.
	UpdateDetails(ctx context.Context, id uuid.UUID, name, description string) (*Wallet, error)

	// AdjustBalance applies a signed delta to the wallet balance and bumps
	// the version. Must run inside the engine's transaction, after
	// LockForUpdate.
	AdjustBalance(ctx context.Context, id uuid.UUID, delta int64, version int) error

	// LockForUpdate acquires a row lock on the wallet for the duration of
	// the surrounding transaction and returns its current state.
	LockForUpdate(ctx context.Context, id uuid.UUID) (*Wallet, error)

	WithTx(tx pgx.Tx) Repository
}

// ErrWalletNotFound indicates a missing wallet
type ErrWalletNotFound struct {
	WalletID uuid.UUID
}

func (e ErrWalletNotFound) Error() string {
	return "wallet not found: " + e.WalletID.String()
}

// Is matches any ErrWalletNotFound when the target carries a nil ID
func (e ErrWalletNotFound) Is(target error) bool {
	t, ok := target.(ErrWalletNotFound)
	if !ok {
		return false
	}
	if t.WalletID == uuid.Nil {
		return true
	}
	return e.WalletID == t.WalletID
}

// ErrConcurrentModification indicates the wallet row changed under us
type ErrConcurrentModification struct {
	WalletID uuid.UUID
}

func (e ErrConcurrentModification) Error() string {
	return "concurrent modification detected for wallet: " + e.WalletID.String()
}
