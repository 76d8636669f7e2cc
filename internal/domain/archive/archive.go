// Package archive holds the reporting copy of committed operations. The
// archiver consumes the event feed and stores one document per operation
// event; Postgres stays the system of record.
package archive

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/multiwallet-ledger/internal/domain/shared"
)

// Document is one archived operation event
type Document struct {
	EventID        uuid.UUID            `json:"event_id" bson:"event_id"`
	OperationType  shared.OperationType `json:"operation_type" bson:"operation_type"`
	ResourceKind   shared.ResourceKind  `json:"resource_kind" bson:"resource_kind"`
	ResourceID     uuid.UUID            `json:"resource_id" bson:"resource_id"`
	IdempotencyKey string               `json:"idempotency_key" bson:"idempotency_key"`
	Amount         int64                `json:"amount" bson:"amount"`
	Payload        json.RawMessage      `json:"payload" bson:"payload"`
	CorrelationID  string               `json:"correlation_id,omitempty" bson:"correlation_id,omitempty"`
	OccurredAt     time.Time            `json:"occurred_at" bson:"occurred_at"`
	ArchivedAt     time.Time            `json:"archived_at" bson:"archived_at"`
}

// FromEvent converts a feed event into its archive document
func FromEvent(ev *shared.OperationEvent) *Document {
	return &Document{
		EventID:        ev.EventID,
		OperationType:  ev.OperationType,
		ResourceKind:   ev.ResourceKind,
		ResourceID:     ev.ResourceID,
		IdempotencyKey: ev.IdempotencyKey,
		Amount:         ev.Amount,
		Payload:        ev.Payload,
		CorrelationID:  ev.CorrelationID,
		OccurredAt:     ev.OccurredAt,
		ArchivedAt:     time.Now().UTC(),
	}
}

// Repository manages the operation archive store
type Repository interface {
	// Save stores a document. Returns ErrDuplicateEvent when the event was
	// already archived, so redelivered feed messages are safe to replay.
	Save(ctx context.Context, doc *Document) error

	GetByEventID(ctx context.Context, eventID uuid.UUID) (*Document, error)
	GetByResourceID(ctx context.Context, resourceID uuid.UUID, limit, offset int) ([]*Document, error)
	GetByTimeRange(ctx context.Context, startTime, endTime time.Time, limit, offset int) ([]*Document, error)
	CountByOperationType(ctx context.Context, opType shared.OperationType) (int64, error)
}

// ErrDuplicateEvent indicates the event was already archived
type ErrDuplicateEvent struct {
	EventID uuid.UUID
}

func (e ErrDuplicateEvent) Error() string {
	return "operation event already archived: " + e.EventID.String()
}

// Is matches any ErrDuplicateEvent when the target carries a nil ID
func (e ErrDuplicateEvent) Is(target error) bool {
	t, ok := target.(ErrDuplicateEvent)
	if !ok {
		return false
	}
	if t.EventID == uuid.Nil {
		return true
	}
	return e.EventID == t.EventID
}

// ErrEventNotFound indicates a missing archive document
type ErrEventNotFound struct {
	EventID uuid.UUID
}

func (e ErrEventNotFound) Error() string {
	return "archived operation event not found: " + e.EventID.String()
}

// Is matches any ErrEventNotFound when the target carries a nil ID
func (e ErrEventNotFound) Is(target error) bool {
	t, ok := target.(ErrEventNotFound)
	if !ok {
		return false
	}
	if t.EventID == uuid.Nil {
		return true
	}
	return e.EventID == t.EventID
}
