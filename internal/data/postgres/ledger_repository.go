package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/multiwallet-ledger/internal/domain/ledger"
	"github.com/multiwallet-ledger/internal/domain/shared"
	"github.com/multiwallet-ledger/internal/platform/persistence"
)

// LedgerRepository implements the ledger.Repository interface for PostgreSQL.
// Entries are append-only; there are no UPDATE or DELETE statements here.
type LedgerRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewLedgerRepository creates a new PostgreSQL ledger repository
func NewLedgerRepository(logger *slog.Logger, db *persistence.PostgresDB) ledger.Repository {
	return &LedgerRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *LedgerRepository) WithTx(tx pgx.Tx) ledger.Repository {
	return &LedgerRepository{
		querier: tx,
		logger:  r.logger,
	}
}

const entryColumns = "id, wallet_id, direction, amount, description, reference, transaction_date, created_at"

func scanEntry(row pgx.Row) (*ledger.Entry, error) {
	var e ledger.Entry
	err := row.Scan(
		&e.ID,
		&e.WalletID,
		&e.Direction,
		&e.Amount,
		&e.Description,
		&e.Reference,
		&e.TransactionDate,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create appends a ledger entry
func (r *LedgerRepository) Create(ctx context.Context, entry *ledger.Entry) error {
	query := `
		INSERT INTO ledger_entries (id, wallet_id, direction, amount, description, reference, transaction_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.querier.Exec(ctx, query,
		entry.ID,
		entry.WalletID,
		entry.Direction,
		entry.Amount,
		entry.Description,
		entry.Reference,
		entry.TransactionDate,
		entry.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create ledger entry", "id", entry.ID.String(), "error", err)
		return fmt.Errorf("failed to create ledger entry: %w", err)
	}

	return nil
}

// GetByID retrieves a single ledger entry
func (r *LedgerRepository) GetByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE id = $1
	`

	e, err := scanEntry(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ledger.ErrEntryNotFound{EntryID: id}
		}
		r.logger.Error("Failed to get ledger entry", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get ledger entry: %w", err)
	}

	return e, nil
}

// GetByReference retrieves the entries tagged with a transfer reference.
// A committed transfer always yields exactly two.
func (r *LedgerRepository) GetByReference(ctx context.Context, reference string) ([]*ledger.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE reference = $1
		ORDER BY created_at ASC
	`

	rows, err := r.querier.Query(ctx, query, reference)
	if err != nil {
		r.logger.Error("Failed to get ledger entries by reference", "reference", reference, "error", err)
		return nil, fmt.Errorf("failed to get ledger entries by reference: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// GetByWalletID retrieves paginated entries for a wallet, newest first.
// Passing an empty direction returns both deposits and withdrawals.
func (r *LedgerRepository) GetByWalletID(ctx context.Context, walletID uuid.UUID, direction shared.EntryDirection, limit, offset int) ([]*ledger.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE wallet_id = $1 AND ($2 = '' OR direction = $2)
		ORDER BY transaction_date DESC, created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.querier.Query(ctx, query, walletID, string(direction), limit, offset)
	if err != nil {
		r.logger.Error("Failed to get ledger entries", "wallet_id", walletID.String(), "error", err)
		return nil, fmt.Errorf("failed to get ledger entries: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// CountByWalletID counts a wallet's entries, optionally restricted to one direction
func (r *LedgerRepository) CountByWalletID(ctx context.Context, walletID uuid.UUID, direction shared.EntryDirection) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM ledger_entries
		WHERE wallet_id = $1 AND ($2 = '' OR direction = $2)
	`

	var count int64
	if err := r.querier.QueryRow(ctx, query, walletID, string(direction)).Scan(&count); err != nil {
		r.logger.Error("Failed to count ledger entries", "wallet_id", walletID.String(), "error", err)
		return 0, fmt.Errorf("failed to count ledger entries: %w", err)
	}

	return count, nil
}

func collectEntries(rows pgx.Rows) ([]*ledger.Entry, error) {
	var entries []*ledger.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
