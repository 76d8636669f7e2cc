package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/multiwallet-ledger/internal/domain/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func storedWallet() *wallet.Wallet {
	now := time.Now()
	return &wallet.Wallet{
		ID:        uuid.New(),
		Name:      "Savings",
		OwnerName: "Jane Doe",
		Currency:  "USD",
		Balance:   1500,
		Version:   2,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestWalletService_CreateWallet(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockRepo := &MockWalletRepo{}
		svc := NewWalletService(mockRepo)

		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(w *wallet.Wallet) bool {
			return w.Name == "Savings" && w.Balance == 0 && w.Version == 1
		})).Return(nil).Once()

		w, err := svc.CreateWallet(ctx, "Savings", "Jane Doe", "USD", "")
		require.NoError(t, err)
		assert.Equal(t, int64(0), w.Balance, "new wallets always start empty")
		mockRepo.AssertExpectations(t)
	})

	t.Run("invalid currency", func(t *testing.T) {
		mockRepo := &MockWalletRepo{}
		svc := NewWalletService(mockRepo)

		_, err := svc.CreateWallet(ctx, "Savings", "Jane Doe", "US", "")
		assert.ErrorIs(t, err, wallet.ErrInvalidCurrencyFormat)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("repository failure", func(t *testing.T) {
		mockRepo := &MockWalletRepo{}
		svc := NewWalletService(mockRepo)

		dbErr := errors.New("db error")
		mockRepo.On("Create", mock.Anything, mock.Anything).Return(dbErr).Once()

		_, err := svc.CreateWallet(ctx, "Savings", "Jane Doe", "USD", "")
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestWalletService_ListWallets(t *testing.T) {
	ctx := context.Background()
	mockRepo := &MockWalletRepo{}
	svc := NewWalletService(mockRepo)

	wallets := []*wallet.Wallet{storedWallet(), storedWallet()}
	mockRepo.On("List", mock.Anything, 10, 20).Return(wallets, nil).Once()
	mockRepo.On("Count", mock.Anything).Return(int64(42), nil).Once()

	got, total, err := svc.ListWallets(ctx, 3, 10)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, int64(42), total)
	mockRepo.AssertExpectations(t)
}

func TestWalletService_UpdateWalletDetails(t *testing.T) {
	ctx := context.Background()
	mockRepo := &MockWalletRepo{}
	svc := NewWalletService(mockRepo)

	w := storedWallet()
	w.Name = "Renamed"

	mockRepo.On("UpdateDetails", mock.Anything, w.ID, "Renamed", "note").Return(w, nil).Once()

	got, err := svc.UpdateWalletDetails(ctx, w.ID, "Renamed", "note")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	mockRepo.AssertExpectations(t)
}
