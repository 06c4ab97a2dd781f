package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"tradepost/internal/domain"
)

type MySQLSaleItemRepository struct {
	db *sql.DB
}

func NewMySQLSaleItemRepository(db *sql.DB) *MySQLSaleItemRepository {
	return &MySQLSaleItemRepository{db: db}
}

func (r *MySQLSaleItemRepository) BulkInsert(ctx context.Context, tx *sql.Tx, saleID uint, items []domain.SaleItem) error {
	if len(items) == 0 {
		return nil
	}

	placeholders := make([]string, len(items))
	args := make([]interface{}, 0, len(items)*5)
	for i, item := range items {
		placeholders[i] = "(?, ?, ?, ?, ?)"
		args = append(args, saleID, item.ProductID, item.Quantity, item.UnitPrice, item.TotalPrice)
	}

	query := fmt.Sprintf(
		`INSERT INTO SaleItems (saleId, productId, quantity, unitPrice, totalPrice) VALUES %s`,
		strings.Join(placeholders, ", "),
	)

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting sale items: %w", err)
	}

	return nil
}

func (r *MySQLSaleItemRepository) FindBySaleID(ctx context.Context, saleID uint) ([]domain.SaleItem, error) {
	query := `
		SELECT id, saleId, productId, quantity, unitPrice, totalPrice
		FROM SaleItems
		WHERE saleId = ?
		ORDER BY id
	`

	return r.queryItems(ctx, r.db.QueryContext, query, saleID)
}

// FindBySaleIDForUpdate reads the line items under a row lock so the
// previous set cannot change between the read and the replacement within
// an edit transaction.
func (r *MySQLSaleItemRepository) FindBySaleIDForUpdate(ctx context.Context, tx *sql.Tx, saleID uint) ([]domain.SaleItem, error) {
	query := `
		SELECT id, saleId, productId, quantity, unitPrice, totalPrice
		FROM SaleItems
		WHERE saleId = ?
		ORDER BY id
		FOR UPDATE
	`

	return r.queryItems(ctx, tx.QueryContext, query, saleID)
}

func (r *MySQLSaleItemRepository) DeleteBySaleID(ctx context.Context, tx *sql.Tx, saleID uint) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM SaleItems WHERE saleId = ?`, saleID); err != nil {
		return fmt.Errorf("deleting sale items: %w", err)
	}
	return nil
}

type queryFunc func(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)

func (r *MySQLSaleItemRepository) queryItems(ctx context.Context, query queryFunc, stmt string, saleID uint) ([]domain.SaleItem, error) {
	rows, err := query(ctx, stmt, saleID)
	if err != nil {
		return nil, fmt.Errorf("querying sale items: %w", err)
	}
	defer rows.Close()

	var items []domain.SaleItem
	for rows.Next() {
		var item domain.SaleItem
		err := rows.Scan(
			&item.ID, &item.SaleID, &item.ProductID,
			&item.Quantity, &item.UnitPrice, &item.TotalPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning sale item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sale item rows: %w", err)
	}

	return items, nil
}
