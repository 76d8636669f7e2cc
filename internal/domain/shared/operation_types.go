package shared

// OperationType identifies the kind of money movement an idempotency key scopes
type OperationType string

const (
	OperationDeposit    OperationType = "deposit"
	OperationWithdrawal OperationType = "withdrawal"
	OperationTransfer   OperationType = "transfer"
)

// Valid reports whether the operation type is one the engine knows
func (t OperationType) Valid() bool {
	switch t {
	case OperationDeposit, OperationWithdrawal, OperationTransfer:
		return true
	}
	return false
}

// EntryDirection defines how a ledger entry moves a wallet balance
type EntryDirection string

const (
	DirectionDeposit    EntryDirection = "deposit"    // increases the balance
	DirectionWithdrawal EntryDirection = "withdrawal" // decreases the balance
)

// ResourceKind tags the resource an idempotency record points at
type ResourceKind string

const (
	ResourceWallet   ResourceKind = "wallet"
	ResourceTransfer ResourceKind = "transfer"
)
