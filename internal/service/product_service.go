package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/abd-Kabir/cargo-bot/internal/model"
	"github.com/abd-Kabir/cargo-bot/internal/repository"
)

type ProductService struct {
	store *repository.Store
	log   zerolog.Logger
}

func NewProductService(store *repository.Store, log zerolog.Logger) *ProductService {
	return &ProductService{store: store, log: log}
}

type ConnectBarcodeInput struct {
	Barcode      string
	CustomerCode string
	FileIDs      []uuid.UUID
	Principal    model.Principal
}

// ConnectBarcode registers a product at the China warehouse. An empty or
// zero customer code makes the product homeless until an operator reassigns
// it.
func (s *ProductService) ConnectBarcode(ctx context.Context, input ConnectBarcodeInput) (*model.Product, error) {
	if !input.Principal.IsChinaOperator() {
		return nil, ErrPermissionDenied
	}
	if input.Barcode == "" {
		return nil, fmt.Errorf("%w: barcode is required", ErrInvalidInput)
	}

	if _, err := s.store.ProductByBarcode(ctx, input.Barcode); err == nil {
		return nil, fmt.Errorf("%w: barcode %s is already connected", ErrInvalidInput, input.Barcode)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	product := &model.Product{
		Barcode:           input.Barcode,
		Status:            model.ProductNotLoaded,
		AcceptedByChinaID: &input.Principal.UserID,
		AcceptedTimeChina: &now,
	}

	prefix, code := model.SplitCustomerCode(input.CustomerCode)
	if prefix == "" && (code == "" || code == "0") {
		product.IsHomeless = true
	} else {
		customer, err := s.store.CustomerByCode(ctx, prefix, code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: customer %s", ErrNotFound, input.CustomerCode)
			}
			return nil, err
		}
		product.CustomerID = &customer.ID
	}

	err := s.store.InTransaction(ctx, func(tx *repository.Store) error {
		if err := tx.CreateProduct(ctx, product); err != nil {
			return err
		}
		return tx.AttachFilesToProduct(ctx, input.FileIDs, product.ID)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("barcode", product.Barcode).Bool("homeless", product.IsHomeless).Msg("barcode connected")
	return product, nil
}

// AcceptProduct records arrival at the destination warehouse:
// NOT_LOADED -> DELIVERED, stamping the accepting operator.
func (s *ProductService) AcceptProduct(ctx context.Context, barcode string, principal model.Principal) (*model.Product, error) {
	if !principal.IsTashkentOperator() {
		return nil, ErrPermissionDenied
	}

	product, err := s.store.ProductByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product does not exist or barcode was not provided", ErrInvalidInput)
		}
		return nil, err
	}

	if !product.Status.CanAdvanceTo(model.ProductDelivered) {
		return nil, fmt.Errorf("%w: product %s is %s", ErrInvalidTransition, barcode, product.Status)
	}

	now := time.Now().UTC()
	product.Status = model.ProductDelivered
	product.AcceptedByTashkentID = &principal.UserID
	product.AcceptedTimeTashkent = &now
	if err := s.store.SaveProduct(ctx, product); err != nil {
		return nil, err
	}

	s.log.Info().Str("barcode", barcode).Msg("product accepted")
	return product, nil
}

// AdvanceStatus is the operator-driven transition for the remaining states.
// Only the direct successor is allowed, no skipping, no going back.
func (s *ProductService) AdvanceStatus(ctx context.Context, productID uuid.UUID, target model.ProductStatus, principal model.Principal) (*model.Product, error) {
	if !principal.IsWebOperator() {
		return nil, ErrPermissionDenied
	}
	if !target.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, target)
	}

	var product *model.Product
	err := s.store.InTransaction(ctx, func(tx *repository.Store) error {
		products, err := tx.ProductsByIDs(ctx, []uuid.UUID{productID})
		if err != nil {
			return err
		}
		if len(products) == 0 {
			return fmt.Errorf("%w: product %s", ErrNotFound, productID)
		}
		product = &products[0]

		if !product.Status.CanAdvanceTo(target) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, product.Status, target)
		}
		product.Status = target
		return tx.SaveProduct(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

type TrackedProduct struct {
	Product model.Product
	Display model.StatusDisplay
}

// Track returns the customer-facing view of one product. The product must
// belong to the calling customer.
func (s *ProductService) Track(ctx context.Context, barcode string, principal model.Principal) (*TrackedProduct, error) {
	if !principal.IsCustomer() || principal.CustomerID == nil {
		return nil, ErrPermissionDenied
	}

	product, err := s.store.ProductByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, barcode)
		}
		return nil, err
	}
	if product.CustomerID == nil || *product.CustomerID != *principal.CustomerID {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, barcode)
	}

	return &TrackedProduct{
		Product: *product,
		Display: product.Status.CustomerDisplay(),
	}, nil
}

// ProductsOnWay lists the calling customer's products currently in transit.
func (s *ProductService) ProductsOnWay(ctx context.Context, principal model.Principal) ([]model.Product, error) {
	if !principal.IsCustomer() || principal.CustomerID == nil {
		return nil, ErrPermissionDenied
	}
	return s.store.CustomerProducts(ctx, *principal.CustomerID, []model.ProductStatus{model.ProductOnWay})
}

// OperatorSelectableStatuses lists the statuses a web operator may set.
// NOT_LOADED is the initial state and is excluded.
func OperatorSelectableStatuses() []model.StatusDisplay {
	statuses := make([]model.StatusDisplay, 0, len(model.AllProductStatuses)-1)
	for _, status := range model.AllProductStatuses {
		if status == model.ProductNotLoaded {
			continue
		}
		statuses = append(statuses, status.Display())
	}
	return statuses
}

func (s *ProductService) ListProducts(ctx context.Context, filter repository.ProductFilter, principal model.Principal) ([]model.ProductListRow, error) {
	if !principal.IsWebOperator() {
		return nil, ErrPermissionDenied
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, filter.Status)
	}
	return s.store.ListProducts(ctx, filter)
}
