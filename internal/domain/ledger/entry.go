package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/multiwallet-ledger/internal/domain/shared"
)

// Entry records a single balance movement against one wallet. Entries are
// immutable once written; there is no update or delete path.
type Entry struct {
	ID              uuid.UUID             `json:"id" bson:"id"`
	WalletID        uuid.UUID             `json:"wallet_id" bson:"wallet_id"`
	Direction       shared.EntryDirection `json:"direction" bson:"direction"`
	Amount          int64                 `json:"amount" bson:"amount"` // Minor units, always positive
	Description     string                `json:"description,omitempty" bson:"description,omitempty"`
	Reference       string                `json:"reference,omitempty" bson:"reference,omitempty"` // Set for transfer legs
	TransactionDate time.Time             `json:"transaction_date" bson:"transaction_date"`
	CreatedAt       time.Time             `json:"created_at" bson:"created_at"`
}

// NewEntry builds a ledger entry for a single wallet movement
func NewEntry(walletID uuid.UUID, direction shared.EntryDirection, amount int64, description, reference string) *Entry {
	now := time.Now()
	return &Entry{
		ID:              uuid.New(),
		WalletID:        walletID,
		Direction:       direction,
		Amount:          amount,
		Description:     description,
		Reference:       reference,
		TransactionDate: now,
		CreatedAt:       now,
	}
}
