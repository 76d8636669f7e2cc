package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/multiwallet-ledger/internal/domain/shared"
	"github.com/multiwallet-ledger/internal/domain/wallet"
	"github.com/multiwallet-ledger/internal/engine"
	"github.com/multiwallet-ledger/internal/platform/messaging/producers"
)

// ledgerEngine is the slice of the engine the operation service needs.
// Satisfied by *engine.Engine.
type ledgerEngine interface {
	Deposit(ctx context.Context, w *wallet.Wallet, amount int64, description, idempotencyKey string) (*engine.Outcome, error)
	Withdraw(ctx context.Context, w *wallet.Wallet, amount int64, description, idempotencyKey string) (*engine.Outcome, error)
	Transfer(ctx context.Context, fromID, toID uuid.UUID, amount int64, description, idempotencyKey string) (*engine.Outcome, error)
}

// OperationServiceImpl implements the OperationService interface
type OperationServiceImpl struct {
	engine     ledgerEngine
	walletRepo wallet.Repository
	producer   producers.MessagePublisher
	logger     *slog.Logger
}

// NewOperationService creates a new operation service. The producer may be
// nil, in which case no events are published.
func NewOperationService(logger *slog.Logger, eng ledgerEngine, walletRepo wallet.Repository, producer producers.MessagePublisher) OperationService {
	return &OperationServiceImpl{
		engine:     eng,
		walletRepo: walletRepo,
		producer:   producer,
		logger:     logger,
	}
}

// Deposit credits a wallet through the engine
func (s *OperationServiceImpl) Deposit(ctx context.Context, walletID uuid.UUID, amount int64, description, idempotencyKey, correlationID string) (*engine.Outcome, error) {
	w, err := s.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return nil, err
	}

	outcome, err := s.engine.Deposit(ctx, w, amount, description, idempotencyKey)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, outcome, correlationID)
	return outcome, nil
}

// Withdraw debits a wallet through the engine
func (s *OperationServiceImpl) Withdraw(ctx context.Context, walletID uuid.UUID, amount int64, description, idempotencyKey, correlationID string) (*engine.Outcome, error) {
	w, err := s.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return nil, err
	}

	outcome, err := s.engine.Withdraw(ctx, w, amount, description, idempotencyKey)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, outcome, correlationID)
	return outcome, nil
}

// Transfer moves funds between two wallets through the engine
func (s *OperationServiceImpl) Transfer(ctx context.Context, fromWalletID, toWalletID uuid.UUID, amount int64, description, idempotencyKey, correlationID string) (*engine.Outcome, error) {
	outcome, err := s.engine.Transfer(ctx, fromWalletID, toWalletID, amount, description, idempotencyKey)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, outcome, correlationID)
	return outcome, nil
}

// publishEvent emits a feed event for freshly applied outcomes. Publication
// is best effort; the operation already committed, so a feed error must not
// fail the request.
func (s *OperationServiceImpl) publishEvent(ctx context.Context, outcome *engine.Outcome, correlationID string) {
	if s.producer == nil || outcome.Replayed {
		return
	}

	event := shared.NewOperationEvent(
		outcome.OperationType,
		outcome.ResourceKind,
		outcome.ResourceID,
		outcome.IdempotencyKey,
		outcome.Amount,
		outcome.Payload,
		correlationID,
	)

	if err := s.producer.Publish(ctx, outcome.IdempotencyKey, event); err != nil {
		s.logger.Error("Failed to publish operation event",
			"idempotency_key", outcome.IdempotencyKey,
			"operation_type", string(outcome.OperationType),
			"error", err,
		)
	}
}
