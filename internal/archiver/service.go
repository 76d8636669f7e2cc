// Package archiver consumes the operation-event feed and copies each event
// into the MongoDB archive for reporting.
package archiver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/multiwallet-ledger/internal/domain/archive"
	"github.com/multiwallet-ledger/internal/domain/shared"
)

// ArchivingService stores operation events in the archive
type ArchivingService interface {
	ArchiveEvent(ctx context.Context, event *shared.OperationEvent) error
}

// ArchiveService is the base implementation writing directly to the
// archive repository
type ArchiveService struct {
	repo   archive.Repository
	logger *slog.Logger
}

func NewArchiveService(logger *slog.Logger, repo archive.Repository) *ArchiveService {
	return &ArchiveService{
		repo:   repo,
		logger: logger,
	}
}

// ArchiveEvent stores one event. Redelivered events are treated as success;
// the feed guarantees at-least-once delivery, not exactly-once.
func (s *ArchiveService) ArchiveEvent(ctx context.Context, event *shared.OperationEvent) error {
	doc := archive.FromEvent(event)

	err := s.repo.Save(ctx, doc)
	if err != nil {
		if errors.Is(err, archive.ErrDuplicateEvent{}) {
			s.logger.Debug("Event already archived, skipping",
				"event_id", event.EventID.String(),
			)
			return nil
		}
		return fmt.Errorf("archiving event %s failed: %w", event.EventID.String(), err)
	}

	s.logger.Info("Archived operation event",
		"event_id", event.EventID.String(),
		"operation_type", string(event.OperationType),
		"resource_id", event.ResourceID.String(),
	)
	return nil
}
