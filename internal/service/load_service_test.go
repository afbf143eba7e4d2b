package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abd-Kabir/cargo-bot/internal/model"
)

func TestApplyConsolidationCreatesLoad(t *testing.T) {
	customerID := uuid.New()
	operatorID := uuid.New()
	now := time.Now()

	load, created := applyConsolidation(nil, customerID, consolidationEvent{
		increment:  decimal.NewFromInt(50),
		weight:     10,
		operatorID: operatorID,
		at:         now,
	})

	require.True(t, created)
	assert.Equal(t, customerID, load.CustomerID)
	assert.Equal(t, "50", load.Cost.String())
	assert.Equal(t, 10.0, load.Weight)
	assert.Equal(t, 1, load.LoadsCount)
	assert.Equal(t, model.LoadNotPaid, load.Status)
	assert.True(t, load.IsActive)
	require.NotNil(t, load.AcceptedByID)
	assert.Equal(t, operatorID, *load.AcceptedByID)
}

func TestApplyConsolidationExtendsExistingLoad(t *testing.T) {
	customerID := uuid.New()
	existing := &model.Load{
		CustomerID: customerID,
		Cost:       decimal.NewFromInt(50),
		Weight:     10,
		LoadsCount: 1,
		Status:     model.LoadNotPaid,
		IsActive:   true,
	}

	load, created := applyConsolidation(existing, customerID, consolidationEvent{
		increment: decimal.NewFromInt(30),
		weight:    6,
	})

	require.False(t, created)
	assert.Same(t, existing, load)
	assert.Equal(t, "80", load.Cost.String())
	assert.Equal(t, 16.0, load.Weight)
	assert.Equal(t, 2, load.LoadsCount)
	assert.Equal(t, model.LoadNotPaid, load.Status)
}

func TestApplyConsolidationDemotesTouchedLoad(t *testing.T) {
	// Adding unpaid balance to a load a payment already touched drops it
	// back to partially paid.
	for _, status := range []model.LoadStatus{model.LoadPaid, model.LoadPartiallyPaid} {
		existing := &model.Load{
			Cost:       decimal.NewFromInt(100),
			LoadsCount: 2,
			Status:     status,
			IsActive:   true,
		}
		load, _ := applyConsolidation(existing, existing.CustomerID, consolidationEvent{
			increment: decimal.NewFromInt(20),
		})
		assert.Equal(t, model.LoadPartiallyPaid, load.Status, string(status))
	}
}

func deliveredProduct(customerID uuid.UUID, barcode string) model.Product {
	return model.Product{
		ID:         uuid.New(),
		Barcode:    barcode,
		CustomerID: &customerID,
		Status:     model.ProductDelivered,
	}
}

func TestValidateConsolidationExactSet(t *testing.T) {
	customer := &model.Customer{ID: uuid.New(), Prefix: "GG", Code: "0042"}
	delivered := []model.Product{
		deliveredProduct(customer.ID, "B-1"),
		deliveredProduct(customer.ID, "B-2"),
	}
	ids := []uuid.UUID{delivered[0].ID, delivered[1].ID}

	assert.NoError(t, validateConsolidation(customer, delivered, delivered, ids))
}

func TestValidateConsolidationEmptySet(t *testing.T) {
	customer := &model.Customer{ID: uuid.New()}
	err := validateConsolidation(customer, nil, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestValidateConsolidationUnknownProducts(t *testing.T) {
	customer := &model.Customer{ID: uuid.New()}
	delivered := []model.Product{deliveredProduct(customer.ID, "B-1")}
	ids := []uuid.UUID{delivered[0].ID, uuid.New()}

	err := validateConsolidation(customer, delivered, delivered[:1], ids)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestValidateConsolidationPartialSet(t *testing.T) {
	// Loading only part of the delivered products is rejected: the active
	// load is a snapshot of everything waiting in the warehouse.
	customer := &model.Customer{ID: uuid.New()}
	delivered := []model.Product{
		deliveredProduct(customer.ID, "B-1"),
		deliveredProduct(customer.ID, "B-2"),
	}
	submitted := delivered[:1]
	ids := []uuid.UUID{delivered[0].ID}

	err := validateConsolidation(customer, delivered, submitted, ids)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestValidateConsolidationForeignBarcodesCombined(t *testing.T) {
	customer := &model.Customer{ID: uuid.New(), Prefix: "GG", Code: "0042"}
	stranger := uuid.New()
	submitted := []model.Product{
		deliveredProduct(customer.ID, "B-1"),
		deliveredProduct(stranger, "X-7"),
		deliveredProduct(stranger, "X-8"),
	}
	ids := []uuid.UUID{submitted[0].ID, submitted[1].ID, submitted[2].ID}

	err := validateConsolidation(customer, submitted, submitted, ids)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "X-7")
	assert.Contains(t, err.Error(), "X-8")
	assert.Contains(t, err.Error(), "GG0042")
}

func TestValidateConsolidationWrongStatus(t *testing.T) {
	customer := &model.Customer{ID: uuid.New()}
	product := deliveredProduct(customer.ID, "B-1")
	product.Status = model.ProductLoaded
	submitted := []model.Product{product}
	ids := []uuid.UUID{product.ID}

	err := validateConsolidation(customer, submitted, submitted, ids)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
