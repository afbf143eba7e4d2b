package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/abd-Kabir/cargo-bot/internal/model"
	"github.com/abd-Kabir/cargo-bot/internal/pricing"
	"github.com/abd-Kabir/cargo-bot/internal/repository"
)

type LoadService struct {
	store  *repository.Store
	prices *pricing.Resolver
	log    zerolog.Logger
}

func NewLoadService(store *repository.Store, prices *pricing.Resolver, log zerolog.Logger) *LoadService {
	return &LoadService{store: store, prices: prices, log: log}
}

type ConsolidateInput struct {
	CustomerCode string
	ProductIDs   []uuid.UUID
	Weight       float64
	ImageID      *uuid.UUID
	Principal    model.Principal
}

// Consolidate merges the customer's delivered products into their single
// active load, creating it when none exists. Preconditions are validated
// before any write; everything after runs in one transaction with the
// customer row locked.
func (s *LoadService) Consolidate(ctx context.Context, input ConsolidateInput) (*model.Load, error) {
	if !input.Principal.IsTashkentOperator() {
		return nil, ErrPermissionDenied
	}
	if input.Weight <= 0 {
		return nil, fmt.Errorf("%w: weight must be positive", ErrInvalidInput)
	}

	prefix, code := model.SplitCustomerCode(input.CustomerCode)
	customer, err := s.store.CustomerByCode(ctx, prefix, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: customer %s", ErrNotFound, input.CustomerCode)
		}
		return nil, err
	}

	price, err := s.prices.Price(customer.UserType)
	if err != nil {
		return nil, err
	}
	increment := price.Mul(decimal.NewFromFloat(input.Weight))

	delivered, err := s.store.DeliveredProducts(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	submitted, err := s.store.ProductsByIDs(ctx, input.ProductIDs)
	if err != nil {
		return nil, err
	}
	if err := validateConsolidation(customer, delivered, submitted, input.ProductIDs); err != nil {
		return nil, err
	}

	event := consolidationEvent{
		increment:  increment,
		weight:     input.Weight,
		operatorID: input.Principal.UserID,
		at:         time.Now().UTC(),
	}

	var result *model.Load
	err = s.store.InTransaction(ctx, func(tx *repository.Store) error {
		locked, err := tx.CustomerForUpdate(ctx, customer.ID)
		if err != nil {
			return err
		}

		active, err := tx.ActiveLoadForUpdate(ctx, customer.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		load, created := applyConsolidation(active, customer.ID, event)
		if created {
			if err := tx.CreateLoad(ctx, load); err != nil {
				return err
			}
		} else if err := tx.SaveLoad(ctx, load); err != nil {
			return err
		}

		moved, err := tx.MarkProductsLoaded(ctx, input.ProductIDs, load.ID)
		if err != nil {
			return err
		}
		if moved != int64(len(input.ProductIDs)) {
			return fmt.Errorf("loaded %d of %d products, state changed concurrently", moved, len(input.ProductIDs))
		}

		if err := tx.SaveCustomerDebt(ctx, customer.ID, locked.Debt.Add(event.increment)); err != nil {
			return err
		}

		if err := tx.AppendLoadAccepted(ctx, &model.LoadAccepted{
			LoadID:       load.ID,
			AcceptedByID: event.operatorID,
			AcceptedTime: event.at,
		}); err != nil {
			return err
		}

		if input.ImageID != nil {
			if err := tx.RehomeFileToLoad(ctx, *input.ImageID, load.ID); err != nil {
				return err
			}
		}

		result = load
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConsolidationFailed, err)
	}

	s.log.Info().
		Str("customer", customer.FullCode()).
		Str("load_id", result.ID.String()).
		Int("loads_count", result.LoadsCount).
		Msg("load consolidated")
	return result, nil
}

type consolidationEvent struct {
	increment  decimal.Decimal
	weight     float64
	operatorID uuid.UUID
	at         time.Time
}

// applyConsolidation is the single create-or-extend path. A nil load means
// this is the customer's first consolidation since the last release.
func applyConsolidation(load *model.Load, customerID uuid.UUID, ev consolidationEvent) (*model.Load, bool) {
	created := load == nil
	if created {
		load = &model.Load{
			CustomerID: customerID,
			Cost:       decimal.Zero,
			Status:     model.LoadNotPaid,
			IsActive:   true,
		}
	}

	load.Cost = load.Cost.Add(ev.increment)
	load.Weight += ev.weight
	load.LoadsCount++
	// A fresh or still-unpaid load stays NOT_PAID. Any load touched by a
	// payment before gets demoted to PARTIALLY_PAID because new unpaid
	// balance was just added.
	if load.Status != model.LoadNotPaid {
		load.Status = model.LoadPartiallyPaid
	}
	load.AcceptedByID = &ev.operatorID
	load.AcceptedTime = &ev.at
	return load, created
}

// validateConsolidation checks the submitted set against the customer's
// delivered products without touching anything. The set must be exactly the
// customer's DELIVERED products; ownership violations are collected into one
// combined error rather than failing on the first.
func validateConsolidation(customer *model.Customer, delivered, submitted []model.Product, submittedIDs []uuid.UUID) error {
	if len(submittedIDs) == 0 {
		return fmt.Errorf("%w: no products submitted", ErrInvalidInput)
	}
	if len(submitted) != len(submittedIDs) {
		return fmt.Errorf("%w: %d of %d submitted products are unknown",
			ErrInvalidInput, len(submittedIDs)-len(submitted), len(submittedIDs))
	}
	if len(submittedIDs) != len(delivered) {
		return fmt.Errorf("%w: all delivered products of the customer must be loaded: submitted %d, delivered %d",
			ErrInvalidInput, len(submittedIDs), len(delivered))
	}

	var foreign []string
	for i := range submitted {
		product := &submitted[i]
		if product.CustomerID == nil || *product.CustomerID != customer.ID {
			foreign = append(foreign, product.Barcode)
			continue
		}
		if product.Status != model.ProductDelivered {
			return fmt.Errorf("%w: product %s is not delivered or already loaded",
				ErrInvalidTransition, product.Barcode)
		}
	}
	if len(foreign) > 0 {
		return fmt.Errorf("%w: products %s do not belong to customer %s",
			ErrInvalidInput, strings.Join(foreign, ", "), customer.FullCode())
	}
	return nil
}

type LoadInfo struct {
	LoadCost decimal.Decimal
	Debt     decimal.Decimal
	Products []model.Product
}

// PreviewCost computes what a consolidation of the given weight would cost,
// without mutating anything.
func (s *LoadService) PreviewCost(ctx context.Context, customerCode string, weight float64, principal model.Principal) (*LoadInfo, error) {
	if !principal.IsTashkentOperator() {
		return nil, ErrPermissionDenied
	}
	if weight <= 0 {
		return nil, fmt.Errorf("%w: weight must be positive", ErrInvalidInput)
	}

	prefix, code := model.SplitCustomerCode(customerCode)
	customer, err := s.store.CustomerByCode(ctx, prefix, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: customer %s", ErrNotFound, customerCode)
		}
		return nil, err
	}

	price, err := s.prices.Price(customer.UserType)
	if err != nil {
		return nil, err
	}

	delivered, err := s.store.DeliveredProducts(ctx, customer.ID)
	if err != nil {
		return nil, err
	}

	return &LoadInfo{
		LoadCost: price.Mul(decimal.NewFromFloat(weight)),
		Debt:     customer.Debt,
		Products: delivered,
	}, nil
}

// Dispatch moves every loaded product of the load onto the road:
// LOADED -> ON_WAY.
func (s *LoadService) Dispatch(ctx context.Context, loadID uuid.UUID, principal model.Principal) (*model.Load, error) {
	if !principal.IsOperator() {
		return nil, ErrPermissionDenied
	}

	var load *model.Load
	err := s.store.InTransaction(ctx, func(tx *repository.Store) error {
		var err error
		load, err = tx.LoadByID(ctx, loadID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: load %s", ErrNotFound, loadID)
			}
			return err
		}
		moved, err := tx.AdvanceProductsByLoad(ctx, load.ID, model.ProductLoaded, model.ProductOnWay)
		if err != nil {
			return err
		}
		if moved == 0 {
			return fmt.Errorf("%w: load %s has no loaded products", ErrInvalidTransition, loadID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return load, nil
}

type ReleaseInfo struct {
	Load     *model.Load
	Debt     decimal.Decimal
	Products []model.Product
}

// ReleaseInfo shows the operator the customer's active load before handing
// goods over: open products only, ON_WAY and DONE excluded.
func (s *LoadService) ReleaseInfo(ctx context.Context, customerCode string, principal model.Principal) (*ReleaseInfo, error) {
	if !principal.IsTashkentOperator() {
		return nil, ErrPermissionDenied
	}

	customer, load, err := s.activeLoadByCode(ctx, customerCode)
	if err != nil {
		return nil, err
	}

	products, err := s.store.CustomerProducts(ctx, customer.ID, []model.ProductStatus{
		model.ProductNotLoaded, model.ProductDelivered, model.ProductLoaded,
	})
	if err != nil {
		return nil, err
	}

	return &ReleaseInfo{Load: load, Debt: customer.Debt, Products: products}, nil
}

// Release hands the load over to the customer: only a fully paid load can be
// released; its products go ON_WAY -> DONE and the load stops being active.
func (s *LoadService) Release(ctx context.Context, customerCode string, principal model.Principal) (*model.Load, error) {
	if !principal.IsTashkentOperator() {
		return nil, ErrPermissionDenied
	}

	var released *model.Load
	err := s.store.InTransaction(ctx, func(tx *repository.Store) error {
		prefix, code := model.SplitCustomerCode(customerCode)
		customer, err := tx.CustomerByCode(ctx, prefix, code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: customer %s", ErrNotFound, customerCode)
			}
			return err
		}

		load, err := tx.ActiveLoadForUpdate(ctx, customer.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: customer %s has no active load", ErrNotFound, customerCode)
			}
			return err
		}
		if load.Status != model.LoadPaid {
			return fmt.Errorf("%w: load is not fully paid", ErrInvalidTransition)
		}

		moved, err := tx.AdvanceProductsByLoad(ctx, load.ID, model.ProductOnWay, model.ProductDone)
		if err != nil {
			return err
		}
		if moved == 0 {
			return fmt.Errorf("%w: load %s has no products on the way", ErrInvalidTransition, load.ID)
		}

		load.IsActive = false
		if err := tx.SaveLoad(ctx, load); err != nil {
			return err
		}
		released = load
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("load_id", released.ID.String()).Msg("load released")
	return released, nil
}

type CurrentLoad struct {
	Load     *model.Load
	Status   model.LoadStatus
	Debt     decimal.Decimal
	Products []model.Product
}

// CurrentLoad is the customer's own view of their open load. While a
// customer-submitted payment awaits moderation the load presents the
// synthetic ON_MODERATION status.
func (s *LoadService) CurrentLoad(ctx context.Context, principal model.Principal) (*CurrentLoad, error) {
	customer, err := s.customerOf(ctx, principal)
	if err != nil {
		return nil, err
	}

	load, err := s.store.ActiveLoad(ctx, customer.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no active load", ErrNotFound)
		}
		return nil, err
	}

	status := load.Status
	pending, err := s.store.HasPendingCustomerPayment(ctx, load.ID)
	if err != nil {
		return nil, err
	}
	if pending {
		status = model.LoadOnModeration
	}

	products, err := s.store.CustomerProducts(ctx, customer.ID, []model.ProductStatus{
		model.ProductNotLoaded, model.ProductDelivered, model.ProductLoaded, model.ProductOnWay,
	})
	if err != nil {
		return nil, err
	}

	return &CurrentLoad{Load: load, Status: status, Debt: customer.Debt, Products: products}, nil
}

// LoadHistory lists all of the customer's loads, newest first.
func (s *LoadService) LoadHistory(ctx context.Context, principal model.Principal) ([]model.Load, error) {
	customer, err := s.customerOf(ctx, principal)
	if err != nil {
		return nil, err
	}
	return s.store.CustomerLoads(ctx, customer.ID)
}

func (s *LoadService) AdminLoads(ctx context.Context, principal model.Principal) ([]model.LoadListRow, error) {
	if !principal.IsWebOperator() {
		return nil, ErrPermissionDenied
	}
	return s.store.ListLoads(ctx)
}

func (s *LoadService) AdminLoad(ctx context.Context, id uuid.UUID, principal model.Principal) (*model.Load, []model.Product, error) {
	if !principal.IsWebOperator() {
		return nil, nil, ErrPermissionDenied
	}
	load, err := s.store.LoadByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: load %s", ErrNotFound, id)
		}
		return nil, nil, err
	}
	products, err := s.store.CustomerProducts(ctx, load.CustomerID, nil)
	if err != nil {
		return nil, nil, err
	}
	return load, products, nil
}

func (s *LoadService) activeLoadByCode(ctx context.Context, customerCode string) (*model.Customer, *model.Load, error) {
	prefix, code := model.SplitCustomerCode(customerCode)
	customer, err := s.store.CustomerByCode(ctx, prefix, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: customer %s", ErrNotFound, customerCode)
		}
		return nil, nil, err
	}
	load, err := s.store.ActiveLoad(ctx, customer.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: customer %s has no active load", ErrNotFound, customerCode)
		}
		return nil, nil, err
	}
	return customer, load, nil
}

func (s *LoadService) customerOf(ctx context.Context, principal model.Principal) (*model.Customer, error) {
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
	return customer, nil
}
