package engine

import (
	"time"

	"github.com/google/uuid"
)

// Payload shapes stored in idempotency records and returned to API clients.
// A replay serves these bytes verbatim, so the shapes are part of the wire
// contract and must stay stable.

type WalletOperationData struct {
	TransactionID   uuid.UUID `json:"transaction_id"`
	WalletID        uuid.UUID `json:"wallet_id"`
	Amount          int64     `json:"amount"`
	NewBalance      int64     `json:"new_balance"`
	TransactionDate string    `json:"transaction_date"`
}

type WalletOperationPayload struct {
	Message string              `json:"message"`
	Data    WalletOperationData `json:"data"`
}

type TransferWalletData struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	OwnerName  string    `json:"owner_name"`
	NewBalance int64     `json:"new_balance"`
}

type TransferLegIDs struct {
	DebitID  uuid.UUID `json:"debit_id"`
	CreditID uuid.UUID `json:"credit_id"`
}

type TransferData struct {
	TransferID   uuid.UUID          `json:"transfer_id"`
	Reference    string             `json:"reference"`
	FromWallet   TransferWalletData `json:"from_wallet"`
	ToWallet     TransferWalletData `json:"to_wallet"`
	Amount       int64              `json:"amount"`
	Transactions TransferLegIDs     `json:"transactions"`
	CompletedAt  string             `json:"completed_at"`
}

type TransferPayload struct {
	Message string       `json:"message"`
	Data    TransferData `json:"data"`
}

func formatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}
