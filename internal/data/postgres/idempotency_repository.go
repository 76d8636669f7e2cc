package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/multiwallet-ledger/internal/domain/idempotency"
	"github.com/multiwallet-ledger/internal/domain/shared"
	"github.com/multiwallet-ledger/internal/platform/persistence"
)

// IdempotencyRepository implements the idempotency.Repository interface for
// PostgreSQL. The (key, operation_type) unique constraint is the safety net
// against two concurrent identical retries both passing the lookup miss.
type IdempotencyRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewIdempotencyRepository creates a new PostgreSQL idempotency repository
func NewIdempotencyRepository(logger *slog.Logger, db *persistence.PostgresDB) idempotency.Repository {
	return &IdempotencyRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *IdempotencyRepository) WithTx(tx pgx.Tx) idempotency.Repository {
	return &IdempotencyRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Get returns the record for (key, opType), or nil when no record exists.
// Expiry is deliberately not part of the predicate: an expired record that
// the purger has not yet removed still replays.
func (r *IdempotencyRepository) Get(ctx context.Context, key string, opType shared.OperationType) (*idempotency.Record, error) {
	query := `
		SELECT key, operation_type, request_hash, resource_kind, resource_id, response, status_code, expires_at, created_at
		FROM idempotency_records
		WHERE key = $1 AND operation_type = $2
	`

	var rec idempotency.Record
	err := r.querier.QueryRow(ctx, query, key, opType).Scan(
		&rec.Key,
		&rec.OperationType,
		&rec.RequestHash,
		&rec.ResourceKind,
		&rec.ResourceID,
		&rec.Response,
		&rec.StatusCode,
		&rec.ExpiresAt,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get idempotency record", "key", key, "operation_type", string(opType), "error", err)
		return nil, fmt.Errorf("failed to get idempotency record: %w", err)
	}

	return &rec, nil
}

// Create persists a new record, translating a unique-constraint hit into
// ErrDuplicateKey so the engine can fall back to replaying the winner.
func (r *IdempotencyRepository) Create(ctx context.Context, rec *idempotency.Record) error {
	query := `
		INSERT INTO idempotency_records (key, operation_type, request_hash, resource_kind, resource_id, response, status_code, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.querier.Exec(ctx, query,
		rec.Key,
		rec.OperationType,
		rec.RequestHash,
		rec.ResourceKind,
		rec.ResourceID,
		rec.Response,
		rec.StatusCode,
		rec.ExpiresAt,
		rec.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return idempotency.ErrDuplicateKey{Key: rec.Key, OperationType: rec.OperationType}
		}
		r.logger.Error("Failed to create idempotency record", "key", rec.Key, "error", err)
		return fmt.Errorf("failed to create idempotency record: %w", err)
	}

	return nil
}

// DeleteExpired removes up to limit records that expired before the cutoff
// and reports how many were deleted.
func (r *IdempotencyRepository) DeleteExpired(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	query := `
		DELETE FROM idempotency_records
		WHERE (key, operation_type) IN (
			SELECT key, operation_type
			FROM idempotency_records
			WHERE expires_at < $1
			LIMIT $2
		)
	`

	result, err := r.querier.Exec(ctx, query, cutoff, limit)
	if err != nil {
		r.logger.Error("Failed to delete expired idempotency records", "error", err)
		return 0, fmt.Errorf("failed to delete expired idempotency records: %w", err)
	}

	return result.RowsAffected(), nil
}
