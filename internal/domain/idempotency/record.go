package idempotency

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/multiwallet-ledger/internal/domain/shared"
)

// DefaultTTL is how long an idempotency record is kept before the
// housekeeping purger may delete it. Lookup does not consult expiry; an
// un-purged expired record still replays.
const DefaultTTL = 7 * 24 * time.Hour

// Record is the durable mapping from (key, operation type) to a previously
// computed outcome. Records are written once and never mutated.
type Record struct {
	Key           string               `json:"key"`
	OperationType shared.OperationType `json:"operation_type"`
	RequestHash   string               `json:"request_hash"`
	ResourceKind  shared.ResourceKind  `json:"resource_kind"`
	ResourceID    uuid.UUID            `json:"resource_id"`
	Response      json.RawMessage      `json:"response"` // Stored verbatim for exact replay
	StatusCode    int                  `json:"status_code"`
	ExpiresAt     time.Time            `json:"expires_at"`
	CreatedAt     time.Time            `json:"created_at"`
}

// NewRecord builds an idempotency record for a freshly processed operation
func NewRecord(key string, opType shared.OperationType, requestHash string, kind shared.ResourceKind, resourceID uuid.UUID, response json.RawMessage, statusCode int) *Record {
	now := time.Now()
	return &Record{
		Key:           key,
		OperationType: opType,
		RequestHash:   requestHash,
		ResourceKind:  kind,
		ResourceID:    resourceID,
		Response:      response,
		StatusCode:    statusCode,
		ExpiresAt:     now.Add(DefaultTTL),
		CreatedAt:     now,
	}
}

// GenerateKey returns a fresh version-4 UUID for requests that arrive
// without a client-supplied idempotency key
func GenerateKey() string {
	return uuid.New().String()
}

// IsValidKey reports whether the key matches the version-4 UUID grammar
func IsValidKey(key string) bool {
	id, err := uuid.Parse(key)
	if err != nil {
		return false
	}
	return id.Version() == 4 && id.Variant() == uuid.RFC4122
}
