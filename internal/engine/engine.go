// Package engine implements the idempotent ledger engine. It orchestrates
// validation, idempotency lookup, atomic balance mutation and idempotency
// record persistence for deposits, withdrawals and transfers.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/multiwallet-ledger/internal/domain/idempotency"
	"github.com/multiwallet-ledger/internal/domain/ledger"
	"github.com/multiwallet-ledger/internal/domain/shared"
	"github.com/multiwallet-ledger/internal/domain/transfer"
	"github.com/multiwallet-ledger/internal/domain/wallet"
)

// TxRunner runs a function inside a database transaction. Satisfied by
// persistence.PostgresDB.
type TxRunner interface {
	ExecuteTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// Outcome is what every engine operation hands back to its caller. On a
// replay the payload and status code are returned verbatim from the stored
// idempotency record.
type Outcome struct {
	Replayed       bool
	StatusCode     int
	Payload        json.RawMessage
	IdempotencyKey string

	// Identifies what the operation touched, for event publication.
	// Zero-valued on replays; replays never publish.
	OperationType shared.OperationType
	ResourceKind  shared.ResourceKind
	ResourceID    uuid.UUID
	Amount        int64
}

// Engine applies money movements to wallet balances. All mutations run
// inside a single transaction together with the idempotency record insert.
type Engine struct {
	db        TxRunner
	wallets   wallet.Repository
	entries   ledger.Repository
	transfers transfer.Repository
	records   idempotency.Repository
	logger    *slog.Logger
}

// New wires the engine with its repositories
func New(
	logger *slog.Logger,
	db TxRunner,
	wallets wallet.Repository,
	entries ledger.Repository,
	transfers transfer.Repository,
	records idempotency.Repository,
) *Engine {
	return &Engine{
		db:        db,
		wallets:   wallets,
		entries:   entries,
		transfers: transfers,
		records:   records,
		logger:    logger,
	}
}

// resolveKey validates a client-supplied idempotency key or generates one.
// A generated key can never have been seen before, so its request skips the
// idempotency lookup.
func resolveKey(key string) (resolved string, generated bool, err error) {
	if key == "" {
		return idempotency.GenerateKey(), true, nil
	}
	if !idempotency.IsValidKey(key) {
		return "", false, shared.ErrInvalidIdempotencyKey
	}
	return key, false, nil
}

// replayIfPresent looks up (key, opType). Returns a replayed outcome on a
// fingerprint-matching hit, ErrIdempotencyConflict on a mismatching hit,
// and (nil, nil) on a miss.
func (e *Engine) replayIfPresent(ctx context.Context, key string, opType shared.OperationType, fingerprint string) (*Outcome, error) {
	rec, err := e.records.Get(ctx, key, opType)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	if rec.RequestHash != fingerprint {
		return nil, shared.ErrIdempotencyConflict
	}

	e.logger.Info("Replaying cached outcome",
		"idempotency_key", key,
		"operation_type", string(opType),
		"status_code", rec.StatusCode,
	)

	return &Outcome{
		Replayed:       true,
		StatusCode:     rec.StatusCode,
		Payload:        rec.Response,
		IdempotencyKey: rec.Key,
	}, nil
}

// replayWinner re-reads the record a concurrent duplicate request just
// committed. Called after our own insert lost the (key, opType) uniqueness
// race and the surrounding transaction rolled back.
func (e *Engine) replayWinner(ctx context.Context, key string, opType shared.OperationType, fingerprint string) (*Outcome, error) {
	outcome, err := e.replayIfPresent(ctx, key, opType, fingerprint)
	if err != nil {
		return nil, err
	}
	if outcome == nil {
		return nil, fmt.Errorf("idempotency record for key %s disappeared after duplicate insert", key)
	}
	return outcome, nil
}

// lockPair locks both wallets of a transfer in ascending ID order so two
// opposing transfers between the same pair cannot deadlock.
func lockPair(ctx context.Context, repo wallet.Repository, fromID, toID uuid.UUID) (src, dst *wallet.Wallet, err error) {
	first, second := fromID, toID
	if bytes.Compare(toID[:], fromID[:]) < 0 {
		first, second = toID, fromID
	}

	a, err := repo.LockForUpdate(ctx, first)
	if err != nil {
		return nil, nil, err
	}
	b, err := repo.LockForUpdate(ctx, second)
	if err != nil {
		return nil, nil, err
	}

	if first == fromID {
		return a, b, nil
	}
	return b, a, nil
}

// isDuplicateKey reports whether the transaction failed because a concurrent
// identical request already stored the idempotency record.
func isDuplicateKey(err error) bool {
	return errors.Is(err, idempotency.ErrDuplicateKey{})
}
