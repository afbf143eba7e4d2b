package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abd-Kabir/cargo-bot/internal/model"
)

func TestProductStatusChain(t *testing.T) {
	assert.True(t, model.ProductNotLoaded.CanAdvanceTo(model.ProductDelivered))
	assert.True(t, model.ProductDelivered.CanAdvanceTo(model.ProductLoaded))
	assert.True(t, model.ProductLoaded.CanAdvanceTo(model.ProductOnWay))
	assert.True(t, model.ProductOnWay.CanAdvanceTo(model.ProductDone))

	// no skipping, no going back
	assert.False(t, model.ProductNotLoaded.CanAdvanceTo(model.ProductLoaded))
	assert.False(t, model.ProductDelivered.CanAdvanceTo(model.ProductOnWay))
	assert.False(t, model.ProductLoaded.CanAdvanceTo(model.ProductDelivered))
	assert.False(t, model.ProductDone.CanAdvanceTo(model.ProductNotLoaded))
	assert.False(t, model.ProductDone.CanAdvanceTo(model.ProductDone))
}

func TestProductStatusValid(t *testing.T) {
	for _, status := range model.AllProductStatuses {
		assert.True(t, status.Valid(), string(status))
	}
	assert.False(t, model.ProductStatus("SHIPPED").Valid())
	assert.False(t, model.ProductStatus("").Valid())
}

func TestProductStatusDisplayCoversAll(t *testing.T) {
	for _, status := range model.AllProductStatuses {
		display := status.Display()
		require.NotEmpty(t, display.Label, string(status))
		assert.Equal(t, status, display.Status)

		customer := status.CustomerDisplay()
		require.NotEmpty(t, customer.Label, string(status))
	}
}

func TestCustomerDisplayHidesDelivered(t *testing.T) {
	// A product sitting in the Tashkent warehouse reads as not loaded to
	// the customer even though operators see DELIVERED.
	display := model.ProductDelivered.CustomerDisplay()
	assert.Equal(t, model.ProductNotLoaded, display.Status)
	assert.Equal(t, model.ProductNotLoaded.Display().Label, display.Label)

	for _, status := range []model.ProductStatus{
		model.ProductNotLoaded, model.ProductLoaded, model.ProductOnWay, model.ProductDone,
	} {
		assert.Equal(t, status, status.CustomerDisplay().Status, string(status))
	}
}
