package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/multiwallet-ledger/internal/domain/wallet"
)

// WalletServiceImpl implements the WalletService interface
type WalletServiceImpl struct {
	walletRepo wallet.Repository
}

// NewWalletService creates a new wallet service
func NewWalletService(walletRepo wallet.Repository) WalletService {
	return &WalletServiceImpl{
		walletRepo: walletRepo,
	}
}

// CreateWallet creates a new wallet with a zero balance. Funds arrive only
// through deposits and transfers.
func (s *WalletServiceImpl) CreateWallet(ctx context.Context, name, ownerName, currency, description string) (*wallet.Wallet, error) {
	w, err := wallet.New(name, ownerName, currency, description)
	if err != nil {
		return nil, err
	}

	if err := s.walletRepo.Create(ctx, w); err != nil {
		return nil, err
	}

	return w, nil
}

// GetWalletByID retrieves a wallet by its ID, returns ErrWalletNotFound if missing
func (s *WalletServiceImpl) GetWalletByID(ctx context.Context, id uuid.UUID) (*wallet.Wallet, error) {
	return s.walletRepo.GetByID(ctx, id)
}

// ListWallets retrieves a page of wallets plus the total count
func (s *WalletServiceImpl) ListWallets(ctx context.Context, page, perPage int) ([]*wallet.Wallet, int64, error) {
	offset := (page - 1) * perPage

	wallets, err := s.walletRepo.List(ctx, perPage, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.walletRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return wallets, total, nil
}

// UpdateWalletDetails changes a wallet's name and description only
func (s *WalletServiceImpl) UpdateWalletDetails(ctx context.Context, id uuid.UUID, name, description string) (*wallet.Wallet, error) {
	return s.walletRepo.UpdateDetails(ctx, id, name, description)
}
