package idempotency

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/multiwallet-ledger/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestIsValidKey(t *testing.T) {
	t.Run("generated keys are valid", func(t *testing.T) {
		for i := 0; i < 10; i++ {
			assert.True(t, IsValidKey(GenerateKey()))
		}
	})

	t.Run("rejects non-v4 UUIDs", func(t *testing.T) {
		// Version 1 UUID
		assert.False(t, IsValidKey("c232ab00-9414-11ec-b3c8-9f6bdeced846"))
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		assert.False(t, IsValidKey(""))
		assert.False(t, IsValidKey("not-a-uuid"))
		assert.False(t, IsValidKey("12345678-1234-1234-1234-123456789012x"))
	})
}

func TestNewRecord(t *testing.T) {
	resourceID := uuid.New()
	response := json.RawMessage(`{"message":"Deposit successful"}`)

	rec := NewRecord("some-key", shared.OperationDeposit, "abc123", shared.ResourceWallet, resourceID, response, 200)

	assert.Equal(t, "some-key", rec.Key)
	assert.Equal(t, shared.OperationDeposit, rec.OperationType)
	assert.Equal(t, shared.ResourceWallet, rec.ResourceKind)
	assert.Equal(t, resourceID, rec.ResourceID)
	assert.Equal(t, 200, rec.StatusCode)
	assert.JSONEq(t, string(response), string(rec.Response))
	assert.WithinDuration(t, time.Now().Add(DefaultTTL), rec.ExpiresAt, 5*time.Second)
}
