package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/multiwallet-ledger/internal/domain/idempotency"
	"github.com/multiwallet-ledger/internal/domain/ledger"
	"github.com/multiwallet-ledger/internal/domain/shared"
	"github.com/multiwallet-ledger/internal/domain/transfer"
)

// Transfer moves funds between two wallets atomically. Both wallets are
// locked for the duration of the transaction and both ledger legs carry the
// same transfer reference.
func (e *Engine) Transfer(ctx context.Context, fromID, toID uuid.UUID, amount int64, description, idempotencyKey string) (*Outcome, error) {
	if amount <= 0 {
		return nil, shared.ErrInvalidAmount
	}
	if fromID == toID {
		return nil, shared.ErrSelfTransfer
	}

	key, generated, err := resolveKey(idempotencyKey)
	if err != nil {
		return nil, err
	}

	fingerprint := idempotency.TransferFingerprint(fromID, toID, amount)

	if !generated {
		outcome, err := e.replayIfPresent(ctx, key, shared.OperationTransfer, fingerprint)
		if err != nil || outcome != nil {
			return outcome, err
		}
	}

	outcome, err := e.applyTransfer(ctx, fromID, toID, amount, description, key, fingerprint)
	if isDuplicateKey(err) {
		return e.replayWinner(ctx, key, shared.OperationTransfer, fingerprint)
	}
	return outcome, err
}

func (e *Engine) applyTransfer(ctx context.Context, fromID, toID uuid.UUID, amount int64, description, key, fingerprint string) (*Outcome, error) {
	var outcome *Outcome

	err := e.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		wallets := e.wallets.WithTx(tx)
		entries := e.entries.WithTx(tx)
		transfers := e.transfers.WithTx(tx)
		records := e.records.WithTx(tx)

		src, dst, err := lockPair(ctx, wallets, fromID, toID)
		if err != nil {
			return err
		}

		if src.Currency != dst.Currency {
			return shared.ErrCurrencyMismatch
		}
		if !src.CanWithdraw(amount) {
			return shared.ErrInsufficientFunds
		}

		tr := transfer.New(src.ID, dst.ID, amount)
		if err := transfers.Create(ctx, tr); err != nil {
			return err
		}

		debitDesc := description
		creditDesc := description
		if description == "" {
			debitDesc = fmt.Sprintf("Transfer to wallet %s", dst.Name)
			creditDesc = fmt.Sprintf("Transfer from wallet %s", src.Name)
		}

		debit := ledger.NewEntry(src.ID, shared.DirectionWithdrawal, amount, debitDesc, tr.Reference)
		if err := entries.Create(ctx, debit); err != nil {
			return err
		}
		credit := ledger.NewEntry(dst.ID, shared.DirectionDeposit, amount, creditDesc, tr.Reference)
		if err := entries.Create(ctx, credit); err != nil {
			return err
		}

		if err := wallets.AdjustBalance(ctx, src.ID, -amount, src.Version); err != nil {
			return err
		}
		if err := wallets.AdjustBalance(ctx, dst.ID, amount, dst.Version); err != nil {
			return err
		}

		payload, err := json.Marshal(TransferPayload{
			Message: "Transfer completed successfully",
			Data: TransferData{
				TransferID: tr.ID,
				Reference:  tr.Reference,
				FromWallet: TransferWalletData{
					ID:         src.ID,
					Name:       src.Name,
					OwnerName:  src.OwnerName,
					NewBalance: src.Balance - amount,
				},
				ToWallet: TransferWalletData{
					ID:         dst.ID,
					Name:       dst.Name,
					OwnerName:  dst.OwnerName,
					NewBalance: dst.Balance + amount,
				},
				Amount: amount,
				Transactions: TransferLegIDs{
					DebitID:  debit.ID,
					CreditID: credit.ID,
				},
				CompletedAt: formatTimestamp(time.Now()),
			},
		})
		if err != nil {
			return err
		}

		rec := idempotency.NewRecord(key, shared.OperationTransfer, fingerprint, shared.ResourceTransfer, tr.ID, payload, http.StatusOK)
		if err := records.Create(ctx, rec); err != nil {
			return err
		}

		outcome = &Outcome{
			StatusCode:     http.StatusOK,
			Payload:        payload,
			IdempotencyKey: key,
			OperationType:  shared.OperationTransfer,
			ResourceKind:   shared.ResourceTransfer,
			ResourceID:     tr.ID,
			Amount:         amount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("Completed transfer",
		"from_wallet_id", fromID,
		"to_wallet_id", toID,
		"amount", amount,
		"idempotency_key", key,
	)
	return outcome, nil
}
