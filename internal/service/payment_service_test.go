package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/abd-Kabir/cargo-bot/internal/model"
)

func TestDeriveLoadStatus(t *testing.T) {
	cost := decimal.NewFromInt(100)

	assert.Equal(t, model.LoadPaid, deriveLoadStatus(decimal.Zero, cost))
	assert.Equal(t, model.LoadNotPaid, deriveLoadStatus(cost, cost))
	assert.Equal(t, model.LoadPartiallyPaid, deriveLoadStatus(decimal.NewFromInt(40), cost))

	// Debt above the current load cost happens when a new consolidation
	// added balance on top of older unpaid loads; it is still partial.
	assert.Equal(t, model.LoadPartiallyPaid, deriveLoadStatus(decimal.NewFromInt(140), cost))
}

func TestEnsurePending(t *testing.T) {
	pending := &model.Payment{ID: uuid.New()}
	assert.NoError(t, ensurePending(pending))

	status := model.PaymentSuccessful
	resolved := &model.Payment{ID: uuid.New(), Status: &status}
	assert.ErrorIs(t, ensurePending(resolved), ErrAlreadyProcessed)

	declined := model.PaymentDeclined
	resolved.Status = &declined
	assert.ErrorIs(t, ensurePending(resolved), ErrAlreadyProcessed)
}

func TestOperatorSelectableStatuses(t *testing.T) {
	statuses := OperatorSelectableStatuses()
	assert.Len(t, statuses, len(model.AllProductStatuses)-1)
	for _, status := range statuses {
		assert.NotEqual(t, model.ProductNotLoaded, status.Status)
		assert.NotEmpty(t, status.Label)
	}
}
