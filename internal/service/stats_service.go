package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/abd-Kabir/cargo-bot/internal/model"
	"github.com/abd-Kabir/cargo-bot/internal/repository"
)

type StatsService struct {
	store *repository.Store
}

func NewStatsService(store *repository.Store) *StatsService {
	return &StatsService{store: store}
}

// OperatorDaily counts the operator's work for today: products accepted at
// either warehouse plus consolidation events for Tashkent operators.
func (s *StatsService) OperatorDaily(ctx context.Context, principal model.Principal) (*model.OperatorDailyStats, error) {
	if !principal.IsOperator() {
		return nil, ErrPermissionDenied
	}

	products, err := s.store.CountProductsAcceptedToday(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	stats := &model.OperatorDailyStats{Products: products}

	if principal.Warehouse == model.WarehouseTashkent {
		loads, err := s.store.CountLoadsAcceptedToday(ctx, principal.UserID)
		if err != nil {
			return nil, err
		}
		stats.Loads = loads
	}
	return stats, nil
}

// CustomerSummary is the bot profile card: identity, active load weight,
// product counters and outstanding debt.
func (s *StatsService) CustomerSummary(ctx context.Context, principal model.Principal) (*model.CustomerStats, error) {
	if !principal.IsCustomer() || principal.CustomerID == nil {
		return nil, ErrPermissionDenied
	}

	customer, err := s.store.CustomerByID(ctx, *principal.CustomerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: customer", ErrNotFound)
		}
		return nil, err
	}

	stats := &model.CustomerStats{
		FullName:   customer.FullName,
		CustomerID: customer.FullCode(),
		Debt:       customer.Debt,
	}

	load, err := s.store.ActiveLoad(ctx, customer.ID)
	if err == nil {
		stats.Weight = load.Weight
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	onWay, err := s.store.CountCustomerProducts(ctx, customer.ID, model.ProductOnWay)
	if err != nil {
		return nil, err
	}
	loaded, err := s.store.CountCustomerProducts(ctx, customer.ID, model.ProductLoaded)
	if err != nil {
		return nil, err
	}
	stats.ProductsOnWay = onWay
	stats.ProductsLoaded = loaded
	return stats, nil
}
