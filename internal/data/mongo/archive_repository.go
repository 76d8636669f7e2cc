package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/multiwallet-ledger/internal/domain/archive"
	"github.com/multiwallet-ledger/internal/domain/shared"
)

const (
	// ArchiveCollectionName is the name of the operation archive collection
	ArchiveCollectionName = "operation_archive"
)

// ArchiveRepository implements the archive.Repository interface for MongoDB
type ArchiveRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewArchiveRepository creates a new MongoDB archive repository
func NewArchiveRepository(logger *slog.Logger, db *mongo.Database) archive.Repository {
	return &ArchiveRepository{
		db:     db,
		logger: logger,
	}
}

// Save stores an archive document after checking for duplicates.
// Returns ErrDuplicateEvent if the event was already archived.
func (r *ArchiveRepository) Save(ctx context.Context, doc *archive.Document) error {
	collection := r.db.Collection(ArchiveCollectionName)

	existing, err := r.GetByEventID(ctx, doc.EventID)
	if err != nil && !errors.Is(err, archive.ErrEventNotFound{}) {
		r.logger.Error("Failed to check for existing archive document",
			"event_id", doc.EventID.String(),
			"error", err)
		return fmt.Errorf("failed to check for existing archive document: %w", err)
	}

	if existing != nil {
		return archive.ErrDuplicateEvent{EventID: doc.EventID}
	}

	if _, err := collection.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Failed to save archive document",
			"event_id", doc.EventID.String(),
			"error", err)
		return fmt.Errorf("failed to save archive document: %w", err)
	}

	return nil
}

// GetByEventID retrieves an archive document by its event ID.
// Returns ErrEventNotFound if no document exists for the event.
func (r *ArchiveRepository) GetByEventID(ctx context.Context, eventID uuid.UUID) (*archive.Document, error) {
	collection := r.db.Collection(ArchiveCollectionName)

	filter := bson.M{"event_id": eventID}
	var doc archive.Document
	err := collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, archive.ErrEventNotFound{EventID: eventID}
		}
		r.logger.Error("Failed to get archive document",
			"event_id", eventID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get archive document: %w", err)
	}

	return &doc, nil
}

// GetByResourceID retrieves paginated archive documents for a wallet or
// transfer. Results are sorted newest first.
func (r *ArchiveRepository) GetByResourceID(ctx context.Context, resourceID uuid.UUID, limit, offset int) ([]*archive.Document, error) {
	collection := r.db.Collection(ArchiveCollectionName)

	filter := bson.M{"resource_id": resourceID}
	opts := options.Find().
		SetSort(bson.M{"occurred_at": -1}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to get archive documents",
			"resource_id", resourceID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get archive documents: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*archive.Document
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Failed to decode archive documents",
			"resource_id", resourceID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to decode archive documents: %w", err)
	}

	return docs, nil
}

// GetByTimeRange retrieves paginated archive documents within the specified
// window, sorted newest first.
func (r *ArchiveRepository) GetByTimeRange(ctx context.Context, startTime, endTime time.Time, limit, offset int) ([]*archive.Document, error) {
	collection := r.db.Collection(ArchiveCollectionName)

	filter := bson.M{
		"occurred_at": bson.M{
			"$gte": startTime,
			"$lte": endTime,
		},
	}
	opts := options.Find().
		SetSort(bson.M{"occurred_at": -1}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to get archive documents by time range",
			"start_time", startTime,
			"end_time", endTime,
			"error", err)
		return nil, fmt.Errorf("failed to get archive documents by time range: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*archive.Document
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Failed to decode archive documents",
			"start_time", startTime,
			"end_time", endTime,
			"error", err)
		return nil, fmt.Errorf("failed to decode archive documents: %w", err)
	}

	return docs, nil
}

// CountByOperationType counts archived events of one operation type
func (r *ArchiveRepository) CountByOperationType(ctx context.Context, opType shared.OperationType) (int64, error) {
	collection := r.db.Collection(ArchiveCollectionName)

	filter := bson.M{"operation_type": opType}
	count, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		r.logger.Error("Failed to count archive documents",
			"operation_type", string(opType),
			"error", err)
		return 0, fmt.Errorf("failed to count archive documents: %w", err)
	}

	return count, nil
}
