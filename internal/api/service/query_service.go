package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/multiwallet-ledger/internal/domain/ledger"
	"github.com/multiwallet-ledger/internal/domain/shared"
	"github.com/multiwallet-ledger/internal/domain/transfer"
)

// QueryServiceImpl implements the QueryService interface
type QueryServiceImpl struct {
	ledgerRepo   ledger.Repository
	transferRepo transfer.Repository
}

// NewQueryService creates a new query service
func NewQueryService(ledgerRepo ledger.Repository, transferRepo transfer.Repository) QueryService {
	return &QueryServiceImpl{
		ledgerRepo:   ledgerRepo,
		transferRepo: transferRepo,
	}
}

// GetTransactionsByWalletID retrieves a page of ledger entries for a wallet
func (s *QueryServiceImpl) GetTransactionsByWalletID(ctx context.Context, walletID uuid.UUID, direction shared.EntryDirection, page, perPage int) ([]*ledger.Entry, int64, error) {
	offset := (page - 1) * perPage

	entries, err := s.ledgerRepo.GetByWalletID(ctx, walletID, direction, perPage, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.ledgerRepo.CountByWalletID(ctx, walletID, direction)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// GetTransferByID retrieves a transfer, returns ErrTransferNotFound if missing
func (s *QueryServiceImpl) GetTransferByID(ctx context.Context, id uuid.UUID) (*transfer.Transfer, error) {
	return s.transferRepo.GetByID(ctx, id)
}
