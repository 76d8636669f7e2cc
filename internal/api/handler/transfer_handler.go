package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/multiwallet-ledger/internal/api/middleware"
	"github.com/multiwallet-ledger/internal/api/service"
	"github.com/multiwallet-ledger/internal/domain/transfer"
)

// TransferHandler handles HTTP requests for wallet-to-wallet transfers
type TransferHandler struct {
	operationService service.OperationService
	queryService     service.QueryService
	logger           *slog.Logger
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(logger *slog.Logger, operationService service.OperationService, queryService service.QueryService) *TransferHandler {
	return &TransferHandler{
		operationService: operationService,
		queryService:     queryService,
		logger:           logger,
	}
}

// Create executes a transfer between two wallets
func (h *TransferHandler) Create(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	fromID, err := uuid.Parse(req.FromWalletID)
	if err != nil {
		RespondBadRequest(c, "Invalid source wallet ID")
		return
	}
	toID, err := uuid.Parse(req.ToWalletID)
	if err != nil {
		RespondBadRequest(c, "Invalid destination wallet ID")
		return
	}

	outcome, err := h.operationService.Transfer(
		c.Request.Context(),
		fromID,
		toID,
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

// GetByID retrieves a transfer record by its ID, returns 404 if not found
func (h *TransferHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, h.logger, "Invalid transfer ID")
	if !ok {
		return
	}

	tr, err := h.queryService.GetTransferByID(c.Request.Context(), id)
	if err != nil {
		var notFound transfer.ErrTransferNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Transfer not found")
			return
		}
		h.logger.Error("Failed to get transfer", "id", id.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapTransferToResponse(tr))
}

// mapTransferToResponse maps a transfer entity to a transfer response DTO
func mapTransferToResponse(tr *transfer.Transfer) TransferResponse {
	return TransferResponse{
		ID:           tr.ID.String(),
		Reference:    tr.Reference,
		FromWalletID: tr.FromWalletID.String(),
		ToWalletID:   tr.ToWalletID.String(),
		Amount:       tr.Amount,
		CreatedAt:    tr.CreatedAt.Format(time.RFC3339),
	}
}
