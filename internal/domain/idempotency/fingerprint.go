package idempotency

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/multiwallet-ledger/internal/domain/shared"
)

// Request fingerprints canonicalize the semantically relevant fields of an
// operation into sorted-key JSON and hash it, so two logically identical
// requests hash identically regardless of how the caller ordered its payload.

type walletOperationFields struct {
	Amount      int64  `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description"`
	WalletID    string `json:"wallet_id"`
}

type transferFields struct {
	Amount       int64  `json:"amount"`
	FromWalletID string `json:"from_wallet_id"`
	ToWalletID   string `json:"to_wallet_id"`
}

// WalletOperationFingerprint hashes the identity of a deposit or withdrawal
// request: wallet, amount, description and operation category.
func WalletOperationFingerprint(walletID uuid.UUID, amount int64, description string, opType shared.OperationType) string {
	return hashFields(walletOperationFields{
		Amount:      amount,
		Category:    string(opType),
		Description: description,
		WalletID:    walletID.String(),
	})
}

// TransferFingerprint hashes the identity of a transfer request:
// both wallets and the amount.
func TransferFingerprint(fromWalletID, toWalletID uuid.UUID, amount int64) string {
	return hashFields(transferFields{
		Amount:       amount,
		FromWalletID: fromWalletID.String(),
		ToWalletID:   toWalletID.String(),
	})
}

// hashFields relies on encoding/json emitting struct fields in declaration
// order; the field structs above are declared in sorted key order to keep
// the representation canonical.
func hashFields(v interface{}) string {
	encoded, err := json.Marshal(v)
	if err != nil {
		// Both field structs are plain data; marshaling cannot fail
		panic(err)
	}
	sum := sha256.Sum256(encoded)
	return hex.EncodeToString(sum[:])
}
