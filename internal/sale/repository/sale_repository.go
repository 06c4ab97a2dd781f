package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"tradepost/internal/domain"
	"tradepost/internal/errors"
)

// SaleHeaderPatch carries the mutable header fields of a sale. Nil fields
// are left untouched.
type SaleHeaderPatch struct {
	CustomerID *int
	Status     *string
	Subtotal   *decimal.Decimal
	Tax        *decimal.Decimal
	Total      *decimal.Decimal
}

func (p SaleHeaderPatch) IsEmpty() bool {
	return p.CustomerID == nil && p.Status == nil &&
		p.Subtotal == nil && p.Tax == nil && p.Total == nil
}

type MySQLSaleRepository struct {
	db *sql.DB
}

func NewMySQLSaleRepository(db *sql.DB) *MySQLSaleRepository {
	return &MySQLSaleRepository{db: db}
}

func (r *MySQLSaleRepository) Insert(ctx context.Context, tx *sql.Tx, sale domain.Sale) (uint, error) {
	query := `
		INSERT INTO Sales (userId, customerId, status, subtotal, tax, total)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		sale.UserID, sale.CustomerID, sale.Status, sale.Subtotal, sale.Tax, sale.Total,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting sale: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLSaleRepository) FindByID(ctx context.Context, id uint) (*domain.Sale, error) {
	query := `
		SELECT id, userId, customerId, status, subtotal, tax, total, createdAt, updatedAt
		FROM Sales
		WHERE id = ?
	`

	var sale domain.Sale
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&sale.ID, &sale.UserID, &sale.CustomerID, &sale.Status,
		&sale.Subtotal, &sale.Tax, &sale.Total,
		&sale.CreatedAt, &sale.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("sale with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying sale by id: %w", err)
	}

	return &sale, nil
}

// FindByIDForUpdate locks the sale header row for the duration of the
// transaction so two concurrent edits of the same sale serialize.
func (r *MySQLSaleRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint) (*domain.Sale, error) {
	query := `
		SELECT id, userId, customerId, status, subtotal, tax, total, createdAt, updatedAt
		FROM Sales
		WHERE id = ?
		FOR UPDATE
	`

	var sale domain.Sale
	err := tx.QueryRowContext(ctx, query, id).Scan(
		&sale.ID, &sale.UserID, &sale.CustomerID, &sale.Status,
		&sale.Subtotal, &sale.Tax, &sale.Total,
		&sale.CreatedAt, &sale.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("sale with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying sale by id for update: %w", err)
	}

	return &sale, nil
}

// UpdateHeader applies the non-nil patch fields. Callers verify the sale
// exists within the same transaction first; rows affected is not checked
// here because MySQL reports zero for updates that change nothing.
func (r *MySQLSaleRepository) UpdateHeader(ctx context.Context, tx *sql.Tx, id uint, patch SaleHeaderPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	var sets []string
	var args []interface{}

	if patch.CustomerID != nil {
		sets = append(sets, "customerId = ?")
		args = append(args, *patch.CustomerID)
	}
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *patch.Status)
	}
	if patch.Subtotal != nil {
		sets = append(sets, "subtotal = ?")
		args = append(args, *patch.Subtotal)
	}
	if patch.Tax != nil {
		sets = append(sets, "tax = ?")
		args = append(args, *patch.Tax)
	}
	if patch.Total != nil {
		sets = append(sets, "total = ?")
		args = append(args, *patch.Total)
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE Sales SET %s WHERE id = ?`, strings.Join(sets, ", "))

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("updating sale header: %w", err)
	}

	return nil
}

// Delete removes the sale header, scoped to the owning user so one user
// cannot delete another user's sale even with a guessed id.
func (r *MySQLSaleRepository) Delete(ctx context.Context, tx *sql.Tx, id uint, userID int) error {
	query := `DELETE FROM Sales WHERE id = ? AND userId = ?`

	result, err := tx.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("deleting sale: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("sale with id %d not found for user %d", id, userID))
	}

	return nil
}
