package archiver

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/multiwallet-ledger/internal/domain/archive"
	"github.com/multiwallet-ledger/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockArchiveRepo struct {
	mock.Mock
}

func (m *MockArchiveRepo) Save(ctx context.Context, doc *archive.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockArchiveRepo) GetByEventID(ctx context.Context, eventID uuid.UUID) (*archive.Document, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*archive.Document), args.Error(1)
}

func (m *MockArchiveRepo) GetByResourceID(ctx context.Context, resourceID uuid.UUID, limit, offset int) ([]*archive.Document, error) {
	args := m.Called(ctx, resourceID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*archive.Document), args.Error(1)
}

func (m *MockArchiveRepo) GetByTimeRange(ctx context.Context, startTime, endTime time.Time, limit, offset int) ([]*archive.Document, error) {
	args := m.Called(ctx, startTime, endTime, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*archive.Document), args.Error(1)
}

func (m *MockArchiveRepo) CountByOperationType(ctx context.Context, opType shared.OperationType) (int64, error) {
	args := m.Called(ctx, opType)
	return args.Get(0).(int64), args.Error(1)
}

func TestArchiveService_ArchiveEvent(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("stores fresh event", func(t *testing.T) {
		mockRepo := &MockArchiveRepo{}
		service := NewArchiveService(logger, mockRepo)
		event := testEvent()

		mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(doc *archive.Document) bool {
			return doc.EventID == event.EventID && doc.Amount == event.Amount
		})).Return(nil).Once()

		assert.NoError(t, service.ArchiveEvent(ctx, event))
		mockRepo.AssertExpectations(t)
	})

	t.Run("redelivered event is a no-op", func(t *testing.T) {
		mockRepo := &MockArchiveRepo{}
		service := NewArchiveService(logger, mockRepo)
		event := testEvent()

		mockRepo.On("Save", mock.Anything, mock.Anything).
			Return(archive.ErrDuplicateEvent{EventID: event.EventID}).Once()

		assert.NoError(t, service.ArchiveEvent(ctx, event), "duplicates count as archived")
		mockRepo.AssertExpectations(t)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		mockRepo := &MockArchiveRepo{}
		service := NewArchiveService(logger, mockRepo)
		event := testEvent()

		storeErr := errors.New("mongo down")
		mockRepo.On("Save", mock.Anything, mock.Anything).Return(storeErr).Once()

		err := service.ArchiveEvent(ctx, event)
		assert.ErrorIs(t, err, storeErr)
		mockRepo.AssertExpectations(t)
	})
}

func TestWorkerPoolArchivingService(t *testing.T) {
	logger := slog.Default()

	t.Run("rejects non-positive pool size", func(t *testing.T) {
		_, err := NewWorkerPoolArchivingService(&ArchiveService{}, WorkerPoolConfig{Size: 0}, logger)
		assert.Error(t, err)
	})

	t.Run("archives through the pool", func(t *testing.T) {
		mockRepo := &MockArchiveRepo{}
		base := NewArchiveService(logger, mockRepo)
		pooled, err := NewWorkerPoolArchivingService(base, WorkerPoolConfig{Size: 4}, logger)
		require.NoError(t, err)
		defer pooled.Shutdown()

		assert.Equal(t, 4, pooled.Capacity())

		var mu sync.Mutex
		seen := make(map[uuid.UUID]bool)
		mockRepo.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			doc := args.Get(1).(*archive.Document)
			mu.Lock()
			seen[doc.EventID] = true
			mu.Unlock()
		}).Return(nil)

		var wg sync.WaitGroup
		events := make([]uuid.UUID, 0, 8)
		for i := 0; i < 8; i++ {
			event := testEvent()
			events = append(events, event.EventID)
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, pooled.ArchiveEvent(context.Background(), event))
			}()
		}
		wg.Wait()

		mu.Lock()
		defer mu.Unlock()
		for _, id := range events {
			assert.True(t, seen[id])
		}
	})
}
