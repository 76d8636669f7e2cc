package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/multiwallet-ledger/internal/api/middleware"
	"github.com/multiwallet-ledger/internal/api/service"
	"github.com/multiwallet-ledger/internal/domain/shared"
	"github.com/multiwallet-ledger/internal/domain/wallet"
	"github.com/multiwallet-ledger/internal/engine"
)

const (
	// IdempotencyKeyHeader carries the client's idempotency key on requests
	// and echoes the effective key on responses
	IdempotencyKeyHeader = "Idempotency-Key"

	// IdempotencyStatusHeader reports whether the response was served from
	// a stored outcome ("cached") or freshly applied ("processed")
	IdempotencyStatusHeader = "Idempotency-Status"

	idempotencyStatusCached    = "cached"
	idempotencyStatusProcessed = "processed"
)

// OperationHandler handles deposit and withdrawal requests
type OperationHandler struct {
	operationService service.OperationService
	logger           *slog.Logger
}

// NewOperationHandler creates a new operation handler
func NewOperationHandler(logger *slog.Logger, operationService service.OperationService) *OperationHandler {
	return &OperationHandler{
		operationService: operationService,
		logger:           logger,
	}
}

// Deposit credits the wallet in the :id path parameter
func (h *OperationHandler) Deposit(c *gin.Context) {
	h.walletOperation(c, h.operationService.Deposit)
}

// Withdraw debits the wallet in the :id path parameter
func (h *OperationHandler) Withdraw(c *gin.Context) {
	h.walletOperation(c, h.operationService.Withdraw)
}

func (h *OperationHandler) walletOperation(c *gin.Context, op func(ctx context.Context, walletID uuid.UUID, amount int64, description, idempotencyKey, correlationID string) (*engine.Outcome, error)) {
	id, ok := parseIDParam(c, h.logger, "Invalid wallet ID")
	if !ok {
		return
	}

	var req WalletOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	outcome, err := op(
		c.Request.Context(),
		id,
		req.Amount,
		req.Description,
		resolveIdempotencyKey(c, req.IdempotencyKey),
		middleware.GetCorrelationID(c),
	)
	if err != nil {
		respondOperationError(c, h.logger, err)
		return
	}

	respondOutcome(c, outcome)
}

// resolveIdempotencyKey prefers the Idempotency-Key header over the body field
func resolveIdempotencyKey(c *gin.Context, bodyKey string) string {
	if headerKey := c.GetHeader(IdempotencyKeyHeader); headerKey != "" {
		return headerKey
	}
	return bodyKey
}

// respondOutcome serves an engine outcome: the stored payload bytes verbatim
// with the original status code, plus the idempotency headers
func respondOutcome(c *gin.Context, outcome *engine.Outcome) {
	c.Header(IdempotencyKeyHeader, outcome.IdempotencyKey)
	if outcome.Replayed {
		c.Header(IdempotencyStatusHeader, idempotencyStatusCached)
	} else {
		c.Header(IdempotencyStatusHeader, idempotencyStatusProcessed)
	}
	c.Data(outcome.StatusCode, "application/json", outcome.Payload)
}

// respondOperationError maps engine and domain errors onto HTTP statuses
func respondOperationError(c *gin.Context, logger *slog.Logger, err error) {
	var notFound wallet.ErrWalletNotFound

	switch {
	case errors.Is(err, shared.ErrInvalidAmount),
		errors.Is(err, shared.ErrInvalidIdempotencyKey),
		errors.Is(err, shared.ErrSelfTransfer):
		RespondBadRequest(c, err.Error())
	case errors.Is(err, shared.ErrIdempotencyConflict):
		RespondConflict(c, "Idempotency key reused with a different request")
	case errors.Is(err, shared.ErrInsufficientFunds):
		RespondUnprocessable(c, "INSUFFICIENT_FUNDS", err.Error())
	case errors.Is(err, shared.ErrCurrencyMismatch):
		RespondUnprocessable(c, "CURRENCY_MISMATCH", err.Error())
	case errors.As(err, &notFound):
		RespondNotFound(c, "Wallet not found")
	default:
		logger.Error("Operation failed", "error", err)
		RespondInternalError(c)
	}
}
