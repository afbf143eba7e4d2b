package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abd-Kabir/cargo-bot/internal/config"
	"github.com/abd-Kabir/cargo-bot/internal/model"
	"github.com/abd-Kabir/cargo-bot/internal/pricing"
)

func TestPricePerMode(t *testing.T) {
	resolver := pricing.NewResolver(config.PricingConfig{Auto: 8.5, Avia: 12})

	auto, err := resolver.Price(model.UserTypeAuto)
	require.NoError(t, err)
	assert.Equal(t, "8.5", auto.String())

	avia, err := resolver.Price(model.UserTypeAvia)
	require.NoError(t, err)
	assert.Equal(t, "12", avia.String())
}

func TestPriceNotConfigured(t *testing.T) {
	resolver := pricing.NewResolver(config.PricingConfig{Auto: 0, Avia: 12})

	_, err := resolver.Price(model.UserTypeAuto)
	assert.ErrorIs(t, err, pricing.ErrNotConfigured)

	_, err = resolver.Price(model.UserType("SEA"))
	assert.ErrorIs(t, err, pricing.ErrNotConfigured)
}
