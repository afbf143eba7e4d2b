package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/abd-Kabir/cargo-bot/internal/config"
	"github.com/abd-Kabir/cargo-bot/internal/db"
	"github.com/abd-Kabir/cargo-bot/internal/model"
	"github.com/abd-Kabir/cargo-bot/internal/pricing"
	"github.com/abd-Kabir/cargo-bot/internal/repository"
)

// These tests need a real postgres because they exercise transactional
// behavior: rollback, the partial unique index on active loads and the
// guarded bulk status update. Set TEST_DB_DSN to run them.

func testStore(t *testing.T) *repository.Store {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN is not set")
	}
	database, err := db.New(&config.Config{DB: config.DBConfig{DSN: dsn}}, zerolog.Nop())
	require.NoError(t, err)
	return repository.NewStore(database)
}

func seedCustomer(t *testing.T, store *repository.Store) *model.Customer {
	t.Helper()
	customer := &model.Customer{
		Prefix:   "IT",
		Code:     fmt.Sprintf("%d", time.Now().UnixNano()),
		Debt:     decimal.Zero,
		Language: "ru",
		UserType: model.UserTypeAuto,
		FullName: "Integration Customer",
		IsActive: true,
	}
	require.NoError(t, store.CreateCustomer(context.Background(), customer))
	return customer
}

func seedDelivered(t *testing.T, store *repository.Store, customerID uuid.UUID) model.Product {
	t.Helper()
	product := model.Product{
		Barcode:    uuid.NewString(),
		CustomerID: &customerID,
		Status:     model.ProductDelivered,
	}
	require.NoError(t, store.CreateProduct(context.Background(), &product))
	return product
}

func tashkentOperator() model.Principal {
	return model.Principal{
		UserID:       uuid.New(),
		Role:         model.RoleOperator,
		OperatorType: model.OperatorTelegram,
		Warehouse:    model.WarehouseTashkent,
	}
}

func TestConsolidateAccumulatesOnActiveLoad(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	customer := seedCustomer(t, store)
	svc := NewLoadService(store, pricing.NewResolver(config.PricingConfig{Auto: 5, Avia: 8}), zerolog.Nop())

	first := seedDelivered(t, store, customer.ID)
	second := seedDelivered(t, store, customer.ID)

	load, err := svc.Consolidate(ctx, ConsolidateInput{
		CustomerCode: customer.FullCode(),
		ProductIDs:   []uuid.UUID{first.ID, second.ID},
		Weight:       10,
		Principal:    tashkentOperator(),
	})
	require.NoError(t, err)
	assert.True(t, load.Cost.Equal(decimal.NewFromInt(50)), load.Cost.String())
	assert.Equal(t, 1, load.LoadsCount)
	assert.Equal(t, model.LoadNotPaid, load.Status)

	products, err := store.ProductsByIDs(ctx, []uuid.UUID{first.ID, second.ID})
	require.NoError(t, err)
	require.Len(t, products, 2)
	for _, product := range products {
		assert.Equal(t, model.ProductLoaded, product.Status)
		require.NotNil(t, product.LoadID)
		assert.Equal(t, load.ID, *product.LoadID)
	}

	updated, err := store.CustomerByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.True(t, updated.Debt.Equal(decimal.NewFromInt(50)), updated.Debt.String())

	// a later delivery extends the same load instead of opening another
	third := seedDelivered(t, store, customer.ID)
	extended, err := svc.Consolidate(ctx, ConsolidateInput{
		CustomerCode: customer.FullCode(),
		ProductIDs:   []uuid.UUID{third.ID},
		Weight:       6,
		Principal:    tashkentOperator(),
	})
	require.NoError(t, err)
	assert.Equal(t, load.ID, extended.ID)
	assert.True(t, extended.Cost.Equal(decimal.NewFromInt(80)), extended.Cost.String())
	assert.Equal(t, 2, extended.LoadsCount)
	assert.Equal(t, model.LoadNotPaid, extended.Status)

	updated, err = store.CustomerByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.True(t, updated.Debt.Equal(decimal.NewFromInt(80)), updated.Debt.String())
}

func TestConsolidationTransactionRollsBackEverything(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	customer := seedCustomer(t, store)
	product := seedDelivered(t, store, customer.ID)

	failure := errors.New("settlement check failed")
	err := store.InTransaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.CustomerForUpdate(ctx, customer.ID); err != nil {
			return err
		}
		if err := tx.SaveCustomerDebt(ctx, customer.ID, decimal.NewFromInt(99)); err != nil {
			return err
		}
		load := &model.Load{CustomerID: customer.ID, Status: model.LoadNotPaid, IsActive: true}
		if err := tx.CreateLoad(ctx, load); err != nil {
			return err
		}
		moved, err := tx.MarkProductsLoaded(ctx, []uuid.UUID{product.ID}, load.ID)
		if err != nil {
			return err
		}
		if moved != 1 {
			return fmt.Errorf("moved %d products", moved)
		}
		return failure
	})
	require.ErrorIs(t, err, failure)

	updated, err := store.CustomerByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.True(t, updated.Debt.IsZero(), updated.Debt.String())

	_, err = store.ActiveLoad(ctx, customer.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	products, err := store.ProductsByIDs(ctx, []uuid.UUID{product.ID})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, model.ProductDelivered, products[0].Status)
	assert.Nil(t, products[0].LoadID)
}

func TestOneActiveLoadPerCustomer(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	customer := seedCustomer(t, store)

	first := &model.Load{CustomerID: customer.ID, Status: model.LoadNotPaid, IsActive: true}
	require.NoError(t, store.CreateLoad(ctx, first))

	second := &model.Load{CustomerID: customer.ID, Status: model.LoadNotPaid, IsActive: true}
	assert.Error(t, store.CreateLoad(ctx, second))

	// released loads do not count against the limit
	released := &model.Load{CustomerID: customer.ID, Status: model.LoadPaid, IsActive: false}
	assert.NoError(t, store.CreateLoad(ctx, released))
}

func TestMarkProductsLoadedSkipsAlreadyLoaded(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	customer := seedCustomer(t, store)

	delivered := seedDelivered(t, store, customer.ID)
	stale := seedDelivered(t, store, customer.ID)

	load := &model.Load{CustomerID: customer.ID, Status: model.LoadNotPaid, IsActive: true}
	require.NoError(t, store.CreateLoad(ctx, load))
	moved, err := store.MarkProductsLoaded(ctx, []uuid.UUID{stale.ID}, load.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, moved)

	// a second submit naming the already loaded product moves only the
	// delivered one, which Consolidate treats as a conflict and rolls back
	moved, err = store.MarkProductsLoaded(ctx, []uuid.UUID{delivered.ID, stale.ID}, load.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, moved)
}
