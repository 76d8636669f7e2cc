package shared

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OperationEvent is published to the event feed after a money movement
// commits. Replays never publish; consumers see each operation exactly once
// per idempotency key.
type OperationEvent struct {
	EventID        uuid.UUID       `json:"event_id" bson:"event_id"`
	OperationType  OperationType   `json:"operation_type" bson:"operation_type"`
	ResourceKind   ResourceKind    `json:"resource_kind" bson:"resource_kind"`
	ResourceID     uuid.UUID       `json:"resource_id" bson:"resource_id"`
	IdempotencyKey string          `json:"idempotency_key" bson:"idempotency_key"`
	Amount         int64           `json:"amount" bson:"amount"`
	Payload        json.RawMessage `json:"payload" bson:"payload"` // Outcome payload as served to the client
	CorrelationID  string          `json:"correlation_id,omitempty" bson:"correlation_id,omitempty"`
	OccurredAt     time.Time       `json:"occurred_at" bson:"occurred_at"`
}

// NewOperationEvent stamps a fresh event for a committed operation
func NewOperationEvent(opType OperationType, kind ResourceKind, resourceID uuid.UUID, idempotencyKey string, amount int64, payload json.RawMessage, correlationID string) *OperationEvent {
	return &OperationEvent{
		EventID:        uuid.New(),
		OperationType:  opType,
		ResourceKind:   kind,
		ResourceID:     resourceID,
		IdempotencyKey: idempotencyKey,
		Amount:         amount,
		Payload:        payload,
		CorrelationID:  correlationID,
		OccurredAt:     time.Now().UTC(),
	}
}
