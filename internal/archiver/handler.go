package archiver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/multiwallet-ledger/internal/domain/shared"
)

// OperationEventHandler handles incoming operation-event messages from Kafka
type OperationEventHandler struct {
	archivingService ArchivingService
	logger           *slog.Logger
}

// NewOperationEventHandler creates a new handler
func NewOperationEventHandler(logger *slog.Logger, archivingService ArchivingService) *OperationEventHandler {
	return &OperationEventHandler{
		archivingService: archivingService,
		logger:           logger,
	}
}

// HandleMessage processes one Kafka message. Returning an error keeps the
// offset uncommitted so the event is redelivered.
func (h *OperationEventHandler) HandleMessage(ctx context.Context, key []byte, value []byte) error {
	var event shared.OperationEvent
	if err := json.Unmarshal(value, &event); err != nil {
		// Malformed events never become parseable; drop rather than
		// wedge the partition on endless redelivery.
		h.logger.Error("Failed to unmarshal operation event, dropping message",
			"error", err,
			"message_key", string(key),
		)
		return nil
	}

	logger := h.logger
	if event.CorrelationID != "" {
		logger = h.logger.With("correlation_id", event.CorrelationID)
	}

	logger.Info("Received operation event for archiving",
		"event_id", event.EventID.String(),
		"operation_type", string(event.OperationType),
		"resource_id", event.ResourceID.String(),
		"amount", event.Amount,
	)

	if err := h.archivingService.ArchiveEvent(ctx, &event); err != nil {
		logger.Error("Failed to archive operation event",
			"event_id", event.EventID.String(),
			"error", err,
		)
		return fmt.Errorf("archiving event %s failed: %w", event.EventID.String(), err)
	}

	return nil
}
