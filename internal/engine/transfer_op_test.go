package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/multiwallet-ledger/internal/domain/idempotency"
	"github.com/multiwallet-ledger/internal/domain/ledger"
	"github.com/multiwallet-ledger/internal/domain/shared"
	"github.com/multiwallet-ledger/internal/domain/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEngine_Transfer_FreshApply(t *testing.T) {
	ctx := context.Background()
	e, m := newTestEngine()
	src := fundedWallet(1000)
	dst := fundedWallet(50)
	key := idempotency.GenerateKey()

	m.records.On("Get", mock.Anything, key, shared.OperationTransfer).Return(nil, nil).Once()
	m.expectTxBindings()
	m.wallets.On("LockForUpdate", mock.Anything, src.ID).Return(src, nil)
	m.wallets.On("LockForUpdate", mock.Anything, dst.ID).Return(dst, nil)
	m.transfers.On("Create", mock.Anything, mock.MatchedBy(func(tr *transfer.Transfer) bool {
		return tr.FromWalletID == src.ID && tr.ToWalletID == dst.ID && tr.Amount == 400
	})).Return(nil)
	m.entries.On("Create", mock.Anything, mock.MatchedBy(func(entry *ledger.Entry) bool {
		return entry.WalletID == src.ID && entry.Direction == shared.DirectionWithdrawal && entry.Reference != ""
	})).Return(nil)
	m.entries.On("Create", mock.Anything, mock.MatchedBy(func(entry *ledger.Entry) bool {
		return entry.WalletID == dst.ID && entry.Direction == shared.DirectionDeposit && entry.Reference != ""
	})).Return(nil)
	m.wallets.On("AdjustBalance", mock.Anything, src.ID, int64(-400), src.Version).Return(nil)
	m.wallets.On("AdjustBalance", mock.Anything, dst.ID, int64(400), dst.Version).Return(nil)
	m.records.On("Create", mock.Anything, mock.MatchedBy(func(rec *idempotency.Record) bool {
		return rec.OperationType == shared.OperationTransfer && rec.ResourceKind == shared.ResourceTransfer
	})).Return(nil)

	outcome, err := e.Transfer(ctx, src.ID, dst.ID, 400, "", key)
	require.NoError(t, err)
	assert.False(t, outcome.Replayed)
	assert.Equal(t, http.StatusOK, outcome.StatusCode)

	var payload TransferPayload
	require.NoError(t, json.Unmarshal(outcome.Payload, &payload))
	assert.Equal(t, "Transfer completed successfully", payload.Message)
	assert.Equal(t, int64(600), payload.Data.FromWallet.NewBalance)
	assert.Equal(t, int64(450), payload.Data.ToWallet.NewBalance)
	assert.Regexp(t, `^TRF-\d{8}-[0-9A-F]{13}$`, payload.Data.Reference)
	assert.NotEqual(t, payload.Data.Transactions.DebitID, payload.Data.Transactions.CreditID)

	m.assertExpectations(t)
}

func TestEngine_Transfer_LockOrderIsAscending(t *testing.T) {
	ctx := context.Background()
	e, m := newTestEngine()
	src := fundedWallet(1000)
	dst := fundedWallet(0)

	// Force dst to sort before src so the engine must lock out of
	// argument order.
	src.ID = uuid.MustParse("ffffffff-ffff-4fff-8fff-ffffffffffff")
	dst.ID = uuid.MustParse("00000000-0000-4000-8000-000000000001")

	var lockOrder []uuid.UUID
	m.expectTxBindings()
	m.wallets.On("LockForUpdate", mock.Anything, src.ID).Run(func(args mock.Arguments) {
		lockOrder = append(lockOrder, src.ID)
	}).Return(src, nil)
	m.wallets.On("LockForUpdate", mock.Anything, dst.ID).Run(func(args mock.Arguments) {
		lockOrder = append(lockOrder, dst.ID)
	}).Return(dst, nil)
	m.transfers.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.entries.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.wallets.On("AdjustBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.records.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := e.Transfer(ctx, src.ID, dst.ID, 100, "", "")
	require.NoError(t, err)

	require.Len(t, lockOrder, 2)
	assert.True(t, bytes.Compare(lockOrder[0][:], lockOrder[1][:]) < 0, "locks must be taken in ascending wallet ID order")
	m.assertExpectations(t)
}

func TestEngine_Transfer_SelfTransfer(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine()
	id := uuid.New()

	_, err := e.Transfer(ctx, id, id, 100, "", "")
	assert.ErrorIs(t, err, shared.ErrSelfTransfer)
}

func TestEngine_Transfer_CurrencyMismatch(t *testing.T) {
	ctx := context.Background()
	e, m := newTestEngine()
	src := fundedWallet(1000)
	dst := fundedWallet(0)
	dst.Currency = "EUR"

	m.expectTxBindings()
	m.wallets.On("LockForUpdate", mock.Anything, src.ID).Return(src, nil)
	m.wallets.On("LockForUpdate", mock.Anything, dst.ID).Return(dst, nil)

	_, err := e.Transfer(ctx, src.ID, dst.ID, 100, "", "")
	assert.ErrorIs(t, err, shared.ErrCurrencyMismatch)

	m.transfers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.assertExpectations(t)
}

func TestEngine_Transfer_InsufficientFunds(t *testing.T) {
	ctx := context.Background()
	e, m := newTestEngine()
	src := fundedWallet(50)
	dst := fundedWallet(0)

	m.expectTxBindings()
	m.wallets.On("LockForUpdate", mock.Anything, src.ID).Return(src, nil)
	m.wallets.On("LockForUpdate", mock.Anything, dst.ID).Return(dst, nil)

	_, err := e.Transfer(ctx, src.ID, dst.ID, 100, "", "")
	assert.ErrorIs(t, err, shared.ErrInsufficientFunds)

	m.wallets.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.assertExpectations(t)
}

func TestEngine_Transfer_Replay(t *testing.T) {
	ctx := context.Background()
	e, m := newTestEngine()
	fromID := uuid.New()
	toID := uuid.New()
	key := idempotency.GenerateKey()

	fingerprint := idempotency.TransferFingerprint(fromID, toID, 400)
	cached := idempotency.NewRecord(key, shared.OperationTransfer, fingerprint, shared.ResourceTransfer, uuid.New(),
		json.RawMessage(`{"message":"Transfer completed successfully"}`), http.StatusOK)

	m.records.On("Get", mock.Anything, key, shared.OperationTransfer).Return(cached, nil).Once()

	outcome, err := e.Transfer(ctx, fromID, toID, 400, "", key)
	require.NoError(t, err)
	assert.True(t, outcome.Replayed)
	assert.Equal(t, json.RawMessage(cached.Response), outcome.Payload)

	m.wallets.AssertNotCalled(t, "LockForUpdate", mock.Anything, mock.Anything)
	m.assertExpectations(t)
}

func TestEngine_Transfer_DifferentAmountSameKeyConflicts(t *testing.T) {
	ctx := context.Background()
	e, m := newTestEngine()
	fromID := uuid.New()
	toID := uuid.New()
	key := idempotency.GenerateKey()

	fingerprint := idempotency.TransferFingerprint(fromID, toID, 400)
	cached := idempotency.NewRecord(key, shared.OperationTransfer, fingerprint, shared.ResourceTransfer, uuid.New(),
		json.RawMessage(`{}`), http.StatusOK)

	m.records.On("Get", mock.Anything, key, shared.OperationTransfer).Return(cached, nil).Once()

	_, err := e.Transfer(ctx, fromID, toID, 999, "", key)
	assert.ErrorIs(t, err, shared.ErrIdempotencyConflict)
	m.assertExpectations(t)
}
