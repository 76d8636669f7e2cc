package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/multiwallet-ledger/internal/api/service"
	"github.com/multiwallet-ledger/internal/domain/ledger"
	"github.com/multiwallet-ledger/internal/domain/shared"
	"github.com/multiwallet-ledger/internal/domain/wallet"
)

// WalletHandler handles HTTP requests for wallet management and history
type WalletHandler struct {
	walletService service.WalletService
	queryService  service.QueryService
	logger        *slog.Logger
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(logger *slog.Logger, walletService service.WalletService, queryService service.QueryService) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
		queryService:  queryService,
		logger:        logger,
	}
}

// Create handles creation of a new wallet
func (h *WalletHandler) Create(c *gin.Context) {
	var req CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	w, err := h.walletService.CreateWallet(c.Request.Context(), req.Name, req.OwnerName, req.Currency, req.Description)
	if err != nil {
		if errors.Is(err, wallet.ErrEmptyName) || errors.Is(err, wallet.ErrEmptyOwnerName) || errors.Is(err, wallet.ErrInvalidCurrencyFormat) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to create wallet", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapWalletToResponse(w))
}

// GetByID retrieves a wallet by its ID, returning 404 if not found
func (h *WalletHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, h.logger, "Invalid wallet ID")
	if !ok {
		return
	}

	w, err := h.walletService.GetWalletByID(c.Request.Context(), id)
	if err != nil {
		var notFound wallet.ErrWalletNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Wallet not found")
			return
		}
		h.logger.Error("Failed to get wallet", "id", id.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapWalletToResponse(w))
}

// GetBalance retrieves the current balance view of a wallet
func (h *WalletHandler) GetBalance(c *gin.Context) {
	id, ok := parseIDParam(c, h.logger, "Invalid wallet ID")
	if !ok {
		return
	}

	w, err := h.walletService.GetWalletByID(c.Request.Context(), id)
	if err != nil {
		var notFound wallet.ErrWalletNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Wallet not found")
			return
		}
		h.logger.Error("Failed to get wallet balance", "id", id.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, WalletBalanceResponse{
		WalletID:    w.ID.String(),
		Name:        w.Name,
		OwnerName:   w.OwnerName,
		Balance:     w.Balance,
		Currency:    w.Currency,
		LastUpdated: w.UpdatedAt.Format(time.RFC3339),
	})
}

// List retrieves a paginated list of wallets
func (h *WalletHandler) List(c *gin.Context) {
	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		h.logger.Error("Invalid pagination parameters", "error", err)
		RespondBadRequest(c, "Invalid pagination parameters")
		return
	}

	wallets, total, err := h.walletService.ListWallets(c.Request.Context(), pagination.Page, pagination.PerPage)
	if err != nil {
		h.logger.Error("Failed to list wallets", "error", err)
		RespondInternalError(c)
		return
	}

	responses := make([]WalletResponse, 0, len(wallets))
	for _, w := range wallets {
		responses = append(responses, mapWalletToResponse(w))
	}

	RespondWithPaginatedData(c, http.StatusOK, responses, pagination.Page, pagination.PerPage, int(total))
}

// Update renames a wallet. Balance and currency cannot be changed.
func (h *WalletHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, h.logger, "Invalid wallet ID")
	if !ok {
		return
	}

	var req UpdateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	w, err := h.walletService.UpdateWalletDetails(c.Request.Context(), id, req.Name, req.Description)
	if err != nil {
		var notFound wallet.ErrWalletNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Wallet not found")
			return
		}
		h.logger.Error("Failed to update wallet", "id", id.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapWalletToResponse(w))
}

// GetTransactions retrieves paginated transaction history for a wallet,
// optionally filtered by direction
func (h *WalletHandler) GetTransactions(c *gin.Context) {
	id, ok := parseIDParam(c, h.logger, "Invalid wallet ID")
	if !ok {
		return
	}

	var params TransactionHistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.logger.Error("Invalid history parameters", "error", err)
		RespondBadRequest(c, "Invalid history parameters")
		return
	}

	entries, total, err := h.queryService.GetTransactionsByWalletID(
		c.Request.Context(),
		id,
		shared.EntryDirection(params.Direction),
		params.Page,
		params.PerPage,
	)
	if err != nil {
		h.logger.Error("Failed to get transactions", "wallet_id", id.String(), "error", err)
		RespondInternalError(c)
		return
	}

	transactions := make([]TransactionResponse, 0, len(entries))
	for _, entry := range entries {
		transactions = append(transactions, mapEntryToResponse(entry))
	}

	RespondWithPaginatedData(c, http.StatusOK, transactions, params.Page, params.PerPage, int(total))
}

// parseIDParam parses the :id path parameter as a UUID
func parseIDParam(c *gin.Context, logger *slog.Logger, message string) (uuid.UUID, bool) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		logger.Error("Invalid ID parameter", "id", idParam, "error", err)
		RespondBadRequest(c, message)
		return uuid.Nil, false
	}
	return id, true
}

// mapWalletToResponse maps a wallet entity to a wallet response DTO
func mapWalletToResponse(w *wallet.Wallet) WalletResponse {
	return WalletResponse{
		ID:          w.ID.String(),
		Name:        w.Name,
		OwnerName:   w.OwnerName,
		Currency:    w.Currency,
		Balance:     w.Balance,
		Description: w.Description,
		CreatedAt:   w.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   w.UpdatedAt.Format(time.RFC3339),
	}
}

// mapEntryToResponse maps a ledger entry to a transaction response DTO
func mapEntryToResponse(entry *ledger.Entry) TransactionResponse {
	return TransactionResponse{
		ID:              entry.ID.String(),
		WalletID:        entry.WalletID.String(),
		Direction:       string(entry.Direction),
		Amount:          entry.Amount,
		Description:     entry.Description,
		Reference:       entry.Reference,
		TransactionDate: entry.TransactionDate.Format(time.RFC3339),
		CreatedAt:       entry.CreatedAt.Format(time.RFC3339),
	}
}
