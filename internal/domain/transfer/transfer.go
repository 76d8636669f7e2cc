package transfer

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Transfer groups the two ledger entries produced by a wallet-to-wallet
// movement and carries a globally unique reference. The row is immutable
// except for the optional failure reason.
type Transfer struct {
	ID            uuid.UUID `json:"id"`
	Reference     string    `json:"reference"`
	FromWalletID  uuid.UUID `json:"from_wallet_id"`
	ToWalletID    uuid.UUID `json:"to_wallet_id"`
	Amount        int64     `json:"amount"` // Minor units
	FailureReason string    `json:"failure_reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// New builds a transfer record with a freshly generated reference
func New(fromWalletID, toWalletID uuid.UUID, amount int64) *Transfer {
	now := time.Now()
	return &Transfer{
		ID:           uuid.New(),
		Reference:    NewReference(),
		FromWalletID: fromWalletID,
		ToWalletID:   toWalletID,
		Amount:       amount,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NewReference generates a transfer reference of the form
// TRF-YYYYMMDD-<13 uppercase hex chars>. The random suffix makes collisions
// negligible; the unique constraint on transfers.reference is the final guard.
func NewReference() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:13]
	return "TRF-" + time.Now().Format("20060102") + "-" + suffix
}

// IsSelfTransfer reports whether source and destination are the same wallet
func (t *Transfer) IsSelfTransfer() bool {
	return t.FromWalletID == t.ToWalletID
}
