package handler

// CreateWalletRequest represents a request to create a new wallet
type CreateWalletRequest struct {
	Name        string `json:"name" binding:"required"`
	OwnerName   string `json:"owner_name" binding:"required"`
	Currency    string `json:"currency" binding:"required,len=3"`
	Description string `json:"description,omitempty"`
}

// UpdateWalletRequest represents a request to rename a wallet
type UpdateWalletRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
}

// WalletResponse represents a wallet in API responses
type WalletResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	OwnerName   string `json:"owner_name"`
	Currency    string `json:"currency"`
	Balance     int64  `json:"balance"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// WalletBalanceResponse represents the balance view of a wallet
type WalletBalanceResponse struct {
	WalletID    string `json:"wallet_id"`
	Name        string `json:"name"`
	OwnerName   string `json:"owner_name"`
	Balance     int64  `json:"balance"`
	Currency    string `json:"currency"`
	LastUpdated string `json:"last_updated"`
}

// WalletOperationRequest represents a deposit or withdrawal request.
// The idempotency key may arrive in the body or the Idempotency-Key header;
// the header wins when both are set.
type WalletOperationRequest struct {
	Amount         int64  `json:"amount" binding:"required,gt=0"`
	Description    string `json:"description,omitempty"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

// TransferRequest represents a wallet-to-wallet transfer request
type TransferRequest struct {
	FromWalletID   string `json:"from_wallet_id" binding:"required,uuid"`
	ToWalletID     string `json:"to_wallet_id" binding:"required,uuid"`
	Amount         int64  `json:"amount" binding:"required,gt=0"`
	Description    string `json:"description,omitempty"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

// TransferResponse represents a transfer record in API responses
type TransferResponse struct {
	ID           string `json:"id"`
	Reference    string `json:"reference"`
	FromWalletID string `json:"from_wallet_id"`
	ToWalletID   string `json:"to_wallet_id"`
	Amount       int64  `json:"amount"`
	CreatedAt    string `json:"created_at"`
}

// TransactionResponse represents a ledger entry in API responses
type TransactionResponse struct {
	ID              string `json:"id"`
	WalletID        string `json:"wallet_id"`
	Direction       string `json:"direction"`
	Amount          int64  `json:"amount"`
	Description     string `json:"description,omitempty"`
	Reference       string `json:"reference,omitempty"`
	TransactionDate string `json:"transaction_date"`
	CreatedAt       string `json:"created_at"`
}

// PaginationParams represents pagination parameters for list endpoints
type PaginationParams struct {
	Page    int `form:"page,default=1" binding:"min=1"`
	PerPage int `form:"per_page,default=10" binding:"min=1,max=100"`
}

// TransactionHistoryParams adds an optional direction filter to pagination
type TransactionHistoryParams struct {
	PaginationParams
	Direction string `form:"direction" binding:"omitempty,oneof=deposit withdrawal"`
}
