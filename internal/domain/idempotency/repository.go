package idempotency

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/multiwallet-ledger/internal/domain/shared"
)

// Repository manages idempotency record persistence. Uniqueness is scoped to
// (key, operation type); the same key may legitimately appear once per
// operation type.
type Repository interface {
	// Get returns the record for (key, opType), or nil when absent.
	// Expired records are still returned; expiry is advisory (see DeleteExpired).
	Get(ctx context.Context, key string, opType shared.OperationType) (*Record, error)

	// Create persists a new record. Returns ErrDuplicateKey when a
	// concurrent request already stored a record for (key, opType).
	Create(ctx context.Context, record *Record) error

	// DeleteExpired removes up to limit records whose expiry lies before
	// the cutoff. Housekeeping only; never called on the request path.
	DeleteExpired(ctx context.Context, cutoff time.Time, limit int) (int64, error)

	WithTx(tx pgx.Tx) Repository
}

// ErrDuplicateKey indicates the (key, operation type) uniqueness constraint
// rejected an insert: a concurrent identical request won the race.
type ErrDuplicateKey struct {
	Key           string
	OperationType shared.OperationType
}

func (e ErrDuplicateKey) Error() string {
	return "idempotency record already exists: " + e.Key + " (" + string(e.OperationType) + ")"
}

// Is matches any ErrDuplicateKey when the target carries an empty key
func (e ErrDuplicateKey) Is(target error) bool {
	t, ok := target.(ErrDuplicateKey)
	if !ok {
		return false
	}
	if t.Key == "" {
		return true
	}
	return e.Key == t.Key && e.OperationType == t.OperationType
}
