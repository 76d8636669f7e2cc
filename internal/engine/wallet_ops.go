package engine

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/multiwallet-ledger/internal/domain/idempotency"
	"github.com/multiwallet-ledger/internal/domain/ledger"
	"github.com/multiwallet-ledger/internal/domain/shared"
	"github.com/multiwallet-ledger/internal/domain/wallet"
)

// Deposit credits a wallet. An empty idempotencyKey means the caller did not
// supply one; the engine generates a key and skips the replay lookup.
func (e *Engine) Deposit(ctx context.Context, w *wallet.Wallet, amount int64, description, idempotencyKey string) (*Outcome, error) {
	return e.walletOperation(ctx, w, amount, description, idempotencyKey, shared.OperationDeposit)
}

// Withdraw debits a wallet after checking cover under the row lock
func (e *Engine) Withdraw(ctx context.Context, w *wallet.Wallet, amount int64, description, idempotencyKey string) (*Outcome, error) {
	return e.walletOperation(ctx, w, amount, description, idempotencyKey, shared.OperationWithdrawal)
}

func (e *Engine) walletOperation(ctx context.Context, w *wallet.Wallet, amount int64, description, idempotencyKey string, opType shared.OperationType) (*Outcome, error) {
	if amount <= 0 {
		return nil, shared.ErrInvalidAmount
	}

	key, generated, err := resolveKey(idempotencyKey)
	if err != nil {
		return nil, err
	}

	fingerprint := idempotency.WalletOperationFingerprint(w.ID, amount, description, opType)

	if !generated {
		outcome, err := e.replayIfPresent(ctx, key, opType, fingerprint)
		if err != nil || outcome != nil {
			return outcome, err
		}
	}

	outcome, err := e.applyWalletOperation(ctx, w, amount, description, key, fingerprint, opType)
	if isDuplicateKey(err) {
		// Lost the insert race against an identical concurrent request.
		// Our transaction rolled back; the winner's record is committed.
		return e.replayWinner(ctx, key, opType, fingerprint)
	}
	return outcome, err
}

func (e *Engine) applyWalletOperation(ctx context.Context, w *wallet.Wallet, amount int64, description, key, fingerprint string, opType shared.OperationType) (*Outcome, error) {
	var outcome *Outcome

	err := e.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		wallets := e.wallets.WithTx(tx)
		entries := e.entries.WithTx(tx)
		records := e.records.WithTx(tx)

		locked, err := wallets.LockForUpdate(ctx, w.ID)
		if err != nil {
			return err
		}

		delta := amount
		direction := shared.DirectionDeposit
		message := "Deposit successful"
		if opType == shared.OperationWithdrawal {
			if !locked.CanWithdraw(amount) {
				return shared.ErrInsufficientFunds
			}
			delta = -amount
			direction = shared.DirectionWithdrawal
			message = "Withdrawal successful"
		}

		entry := ledger.NewEntry(locked.ID, direction, amount, description, "")
		if err := entries.Create(ctx, entry); err != nil {
			return err
		}

		if err := wallets.AdjustBalance(ctx, locked.ID, delta, locked.Version); err != nil {
			return err
		}

		payload, err := json.Marshal(WalletOperationPayload{
			Message: message,
			Data: WalletOperationData{
				TransactionID:   entry.ID,
				WalletID:        locked.ID,
				Amount:          amount,
				NewBalance:      locked.Balance + delta,
				TransactionDate: formatTimestamp(entry.TransactionDate),
			},
		})
		if err != nil {
			return err
		}

		rec := idempotency.NewRecord(key, opType, fingerprint, shared.ResourceWallet, locked.ID, payload, http.StatusOK)
		if err := records.Create(ctx, rec); err != nil {
			return err
		}

		outcome = &Outcome{
			StatusCode:     http.StatusOK,
			Payload:        payload,
			IdempotencyKey: key,
			OperationType:  opType,
			ResourceKind:   shared.ResourceWallet,
			ResourceID:     locked.ID,
			Amount:         amount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("Applied wallet operation",
		"operation_type", string(opType),
		"wallet_id", w.ID,
		"amount", amount,
		"idempotency_key", key,
	)
	return outcome, nil
}
