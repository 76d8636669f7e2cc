package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/multiwallet-ledger/internal/domain/ledger"
	"github.com/multiwallet-ledger/internal/domain/shared"
	"github.com/multiwallet-ledger/internal/domain/transfer"
	"github.com/multiwallet-ledger/internal/domain/wallet"
	"github.com/multiwallet-ledger/internal/engine"
)

// WalletService defines the interface for wallet management
type WalletService interface {
	// CreateWallet creates a new wallet with a zero balance
	CreateWallet(ctx context.Context, name, ownerName, currency, description string) (*wallet.Wallet, error)

	// GetWalletByID retrieves a wallet by its ID.
	// Returns ErrWalletNotFound if the wallet doesn't exist.
	GetWalletByID(ctx context.Context, id uuid.UUID) (*wallet.Wallet, error)

	// ListWallets retrieves a paginated list of wallets plus the total count
	ListWallets(ctx context.Context, page, perPage int) ([]*wallet.Wallet, int64, error)

	// UpdateWalletDetails changes a wallet's name and description
	UpdateWalletDetails(ctx context.Context, id uuid.UUID, name, description string) (*wallet.Wallet, error)
}

// OperationService runs money movements through the ledger engine and
// publishes an event for every freshly applied operation
type OperationService interface {
	Deposit(ctx context.Context, walletID uuid.UUID, amount int64, description, idempotencyKey, correlationID string) (*engine.Outcome, error)
	Withdraw(ctx context.Context, walletID uuid.UUID, amount int64, description, idempotencyKey, correlationID string) (*engine.Outcome, error)
	Transfer(ctx context.Context, fromWalletID, toWalletID uuid.UUID, amount int64, description, idempotencyKey, correlationID string) (*engine.Outcome, error)
}

// QueryService serves read-only views over ledger entries and transfers
type QueryService interface {
	// GetTransactionsByWalletID retrieves paginated ledger entries for a
	// wallet, optionally filtered by direction. Returns entries and the
	// total count.
	GetTransactionsByWalletID(ctx context.Context, walletID uuid.UUID, direction shared.EntryDirection, page, perPage int) ([]*ledger.Entry, int64, error)

	// GetTransferByID retrieves a transfer by its ID.
	// Returns ErrTransferNotFound if the transfer doesn't exist.
	GetTransferByID(ctx context.Context, id uuid.UUID) (*transfer.Transfer, error)
}
