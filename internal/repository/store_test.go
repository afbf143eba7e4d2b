package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/abd-Kabir/cargo-bot/internal/model"
)

// dryRunStore renders statements without a database so slice binding can be
// checked. A '?' bound to a slice must come out as a parenthesized
// placeholder list with one bind var per element; Postgres rejects anything
// else for multi-row id sets.
func dryRunStore(t *testing.T) (*Store, *[]string) {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=cargo dbname=cargo",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)

	captured := &[]string{}
	capture := func(tx *gorm.DB) {
		*captured = append(*captured, tx.Statement.SQL.String())
	}
	require.NoError(t, db.Callback().Row().After("gorm:row").Register("capture_row_sql", capture))
	require.NoError(t, db.Callback().Raw().After("gorm:raw").Register("capture_raw_sql", capture))

	return NewStore(db), captured
}

func lastSQL(t *testing.T, captured *[]string) string {
	t.Helper()
	require.NotEmpty(t, *captured)
	return (*captured)[len(*captured)-1]
}

func TestProductsByIDsBindsEachID(t *testing.T) {
	store, captured := dryRunStore(t)

	_, err := store.ProductsByIDs(context.Background(), []uuid.UUID{uuid.New(), uuid.New()})
	assert.ErrorIs(t, err, gorm.ErrDryRunModeUnsupported)

	sql := lastSQL(t, captured)
	assert.Contains(t, sql, "WHERE id IN ($1,$2)")
}

func TestProductsByIDsBindsSingleID(t *testing.T) {
	store, captured := dryRunStore(t)

	_, err := store.ProductsByIDs(context.Background(), []uuid.UUID{uuid.New()})
	assert.ErrorIs(t, err, gorm.ErrDryRunModeUnsupported)

	sql := lastSQL(t, captured)
	assert.Contains(t, sql, "WHERE id IN ($1)")
	assert.NotContains(t, sql, "$2")
}

func TestMarkProductsLoadedBindsEachID(t *testing.T) {
	store, captured := dryRunStore(t)

	_, err := store.MarkProductsLoaded(context.Background(),
		[]uuid.UUID{uuid.New(), uuid.New()}, uuid.New())
	require.NoError(t, err)

	// vars: status, load_id, then one per product id
	assert.Contains(t, lastSQL(t, captured), "id IN ($3,$4)")
}

func TestCustomerProductsBindsStatusList(t *testing.T) {
	store, captured := dryRunStore(t)

	_, err := store.CustomerProducts(context.Background(), uuid.New(),
		[]model.ProductStatus{model.ProductLoaded, model.ProductOnWay})
	assert.ErrorIs(t, err, gorm.ErrDryRunModeUnsupported)

	assert.Contains(t, lastSQL(t, captured), "status IN ($2,$3)")
}

func TestAttachFilesBindsEachID(t *testing.T) {
	store, captured := dryRunStore(t)
	fileIDs := []uuid.UUID{uuid.New(), uuid.New()}

	require.NoError(t, store.AttachFilesToPayment(context.Background(), fileIDs, uuid.New()))
	assert.Contains(t, lastSQL(t, captured), "id IN ($2,$3)")

	require.NoError(t, store.AttachFilesToProduct(context.Background(), fileIDs, uuid.New()))
	assert.Contains(t, lastSQL(t, captured), "id IN ($2,$3)")
}
