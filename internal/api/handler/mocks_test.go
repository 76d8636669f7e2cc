package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/multiwallet-ledger/internal/domain/ledger"
	"github.com/multiwallet-ledger/internal/domain/shared"
	"github.com/multiwallet-ledger/internal/domain/transfer"
	"github.com/multiwallet-ledger/internal/domain/wallet"
	"github.com/multiwallet-ledger/internal/engine"
	"github.com/stretchr/testify/mock"
)

type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) CreateWallet(ctx context.Context, name, ownerName, currency, description string) (*wallet.Wallet, error) {
	args := m.Called(ctx, name, ownerName, currency, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletService) GetWalletByID(ctx context.Context, id uuid.UUID) (*wallet.Wallet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletService) ListWallets(ctx context.Context, page, perPage int) ([]*wallet.Wallet, int64, error) {
	args := m.Called(ctx, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*wallet.Wallet), args.Get(1).(int64), args.Error(2)
}

func (m *MockWalletService) UpdateWalletDetails(ctx context.Context, id uuid.UUID, name, description string) (*wallet.Wallet, error) {
	args := m.Called(ctx, id, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

type MockOperationService struct {
	mock.Mock
}

func (m *MockOperationService) Deposit(ctx context.Context, walletID uuid.UUID, amount int64, description, idempotencyKey, correlationID string) (*engine.Outcome, error) {
	args := m.Called(ctx, walletID, amount, description, idempotencyKey, correlationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engine.Outcome), args.Error(1)
}

func (m *MockOperationService) Withdraw(ctx context.Context, walletID uuid.UUID, amount int64, description, idempotencyKey, correlationID string) (*engine.Outcome, error) {
	args := m.Called(ctx, walletID, amount, description, idempotencyKey, correlationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engine.Outcome), args.Error(1)
}

func (m *MockOperationService) Transfer(ctx context.Context, fromWalletID, toWalletID uuid.UUID, amount int64, description, idempotencyKey, correlationID string) (*engine.Outcome, error) {
	args := m.Called(ctx, fromWalletID, toWalletID, amount, description, idempotencyKey, correlationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engine.Outcome), args.Error(1)
}

type MockQueryService struct {
	mock.Mock
}

func (m *MockQueryService) GetTransactionsByWalletID(ctx context.Context, walletID uuid.UUID, direction shared.EntryDirection, page, perPage int) ([]*ledger.Entry, int64, error) {
	args := m.Called(ctx, walletID, direction, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*ledger.Entry), args.Get(1).(int64), args.Error(2)
}

func (m *MockQueryService) GetTransferByID(ctx context.Context, id uuid.UUID) (*transfer.Transfer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transfer.Transfer), args.Error(1)
}
