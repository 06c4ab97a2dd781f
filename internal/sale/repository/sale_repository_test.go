package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradepost/internal/domain"
	"tradepost/internal/errors"
	"tradepost/internal/testutil"
)

// Unit Tests

func TestNewMySQLSaleRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLSaleRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestSaleHeaderPatch_IsEmpty(t *testing.T) {
	assert.True(t, SaleHeaderPatch{}.IsEmpty())

	status := domain.SaleStatusCompleted
	assert.False(t, SaleHeaderPatch{Status: &status}.IsEmpty())

	subtotal := decimal.NewFromFloat(10.00)
	assert.False(t, SaleHeaderPatch{Subtotal: &subtotal}.IsEmpty())
}

// Integration Tests

func insertSale(t *testing.T, db *sql.DB, userID int) uint {
	t.Helper()

	result, err := db.Exec(`
		INSERT INTO Sales (userId, status, subtotal, tax, total)
		VALUES (?, 'PENDING', 100.00, 19.00, 119.00)
	`, userID)
	require.NoError(t, err)

	id, err := result.LastInsertId()
	require.NoError(t, err)

	return uint(id)
}

func TestSaleRepository_InsertAndFindByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLSaleRepository(db)

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	customerID := 42
	id, err := repo.Insert(context.Background(), tx, domain.Sale{
		UserID:     10,
		CustomerID: &customerID,
		Status:     domain.SaleStatusPending,
		Subtotal:   decimal.NewFromFloat(60.00),
		Tax:        decimal.NewFromFloat(6.00),
		Total:      decimal.NewFromFloat(66.00),
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	err = tx.Commit()
	require.NoError(t, err)

	sale, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, sale.ID)
	assert.Equal(t, 10, sale.UserID)
	require.NotNil(t, sale.CustomerID)
	assert.Equal(t, 42, *sale.CustomerID)
	assert.Equal(t, domain.SaleStatusPending, sale.Status)
	assert.True(t, sale.Subtotal.Equal(decimal.NewFromFloat(60.00)))
	assert.True(t, sale.Tax.Equal(decimal.NewFromFloat(6.00)))
	assert.True(t, sale.Total.Equal(decimal.NewFromFloat(66.00)))
}

func TestSaleRepository_FindByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLSaleRepository(db)

	sale, err := repo.FindByID(context.Background(), 9999)
	assert.Error(t, err)
	assert.Nil(t, sale)

	nfe, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
	assert.NotNil(t, nfe)
}

func TestSaleRepository_FindByID_NullCustomer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLSaleRepository(db)
	id := insertSale(t, db, 10)

	sale, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, sale.CustomerID)
}

func TestSaleRepository_FindByIDForUpdate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLSaleRepository(db)
	id := insertSale(t, db, 10)

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	defer tx.Rollback()

	sale, err := repo.FindByIDForUpdate(context.Background(), tx, id)
	require.NoError(t, err)
	assert.Equal(t, id, sale.ID)
	assert.Equal(t, 10, sale.UserID)
}

func TestSaleRepository_FindByIDForUpdate_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLSaleRepository(db)

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	defer tx.Rollback()

	sale, err := repo.FindByIDForUpdate(context.Background(), tx, 9999)
	assert.Error(t, err)
	assert.Nil(t, sale)

	nfe, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
	assert.NotNil(t, nfe)
}

func TestSaleRepository_UpdateHeader_PartialPatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLSaleRepository(db)
	id := insertSale(t, db, 10)

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	status := domain.SaleStatusCompleted
	err = repo.UpdateHeader(context.Background(), tx, id, SaleHeaderPatch{Status: &status})
	require.NoError(t, err)

	err = tx.Commit()
	require.NoError(t, err)

	sale, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.SaleStatusCompleted, sale.Status)
	// Untouched fields keep their values
	assert.True(t, sale.Subtotal.Equal(decimal.NewFromFloat(100.00)))
	assert.True(t, sale.Total.Equal(decimal.NewFromFloat(119.00)))
}

func TestSaleRepository_UpdateHeader_Totals(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLSaleRepository(db)
	id := insertSale(t, db, 10)

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	subtotal := decimal.NewFromFloat(20.00)
	tax := decimal.NewFromFloat(2.00)
	total := decimal.NewFromFloat(22.00)
	err = repo.UpdateHeader(context.Background(), tx, id, SaleHeaderPatch{
		Subtotal: &subtotal,
		Tax:      &tax,
		Total:    &total,
	})
	require.NoError(t, err)

	err = tx.Commit()
	require.NoError(t, err)

	sale, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, sale.Subtotal.Equal(subtotal))
	assert.True(t, sale.Tax.Equal(tax))
	assert.True(t, sale.Total.Equal(total))
}

func TestSaleRepository_UpdateHeader_EmptyPatchIsNoOp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLSaleRepository(db)
	id := insertSale(t, db, 10)

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	defer tx.Rollback()

	err = repo.UpdateHeader(context.Background(), tx, id, SaleHeaderPatch{})
	assert.NoError(t, err)
}

func TestSaleRepository_Delete_Success(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLSaleRepository(db)
	id := insertSale(t, db, 10)

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	err = repo.Delete(context.Background(), tx, id, 10)
	require.NoError(t, err)

	err = tx.Commit()
	require.NoError(t, err)

	_, err = repo.FindByID(context.Background(), id)
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestSaleRepository_Delete_WrongOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLSaleRepository(db)
	id := insertSale(t, db, 10)

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	defer tx.Rollback()

	// Another user's id does not match the owner scope
	err = repo.Delete(context.Background(), tx, id, 99)
	assert.Error(t, err)

	nfe, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
	assert.NotNil(t, nfe)
}

func TestSaleRepository_Delete_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLSaleRepository(db)

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	defer tx.Rollback()

	err = repo.Delete(context.Background(), tx, 9999, 10)
	assert.Error(t, err)

	nfe, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
	assert.NotNil(t, nfe)
}
