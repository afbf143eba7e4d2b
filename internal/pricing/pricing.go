package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/abd-Kabir/cargo-bot/internal/config"
	"github.com/abd-Kabir/cargo-bot/internal/model"
)

// ErrNotConfigured means no positive price is set for a shipment mode.
// Callers must abort: there is no silent default tariff.
var ErrNotConfigured = errors.New("price is not configured")

// Resolver answers the price per kg for a shipment mode from process-wide
// configuration.
type Resolver struct {
	auto decimal.Decimal
	avia decimal.Decimal
}

func NewResolver(cfg config.PricingConfig) *Resolver {
	return &Resolver{
		auto: decimal.NewFromFloat(cfg.Auto),
		avia: decimal.NewFromFloat(cfg.Avia),
	}
}

func (r *Resolver) Price(mode model.UserType) (decimal.Decimal, error) {
	var price decimal.Decimal
	switch mode {
	case model.UserTypeAuto:
		price = r.auto
	case model.UserTypeAvia:
		price = r.avia
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown shipment mode %q", ErrNotConfigured, mode)
	}

	if price.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: mode %s", ErrNotConfigured, mode)
	}
	return price, nil
}
