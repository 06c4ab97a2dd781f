package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"tradepost/internal/domain"
	"tradepost/internal/errors"
)

type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

func (r *MySQLRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	query := `
		SELECT id, name, description, price, quantity, minQuantity, createdAt, updatedAt
		FROM Product
		WHERE id = ?
	`

	var p domain.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price,
		&p.Quantity, &p.MinQuantity, &p.CreatedAt, &p.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product by id: %w", err)
	}

	return &p, nil
}

func (r *MySQLRepository) FindByIDs(ctx context.Context, ids []int) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, 0, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}

	query := fmt.Sprintf(`
		SELECT id, name, description, price, quantity, minQuantity, createdAt, updatedAt
		FROM Product
		WHERE id IN (%s)`,
		strings.Join(placeholders, ", "),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price,
			&p.Quantity, &p.MinQuantity, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}

// AdjustQuantity moves a product's on-hand quantity by delta (negative to
// consume, positive to restore) as a single conditional update, so two
// concurrent flows can never lose each other's adjustment and the stored
// quantity can never go below zero.
func (r *MySQLRepository) AdjustQuantity(ctx context.Context, tx *sql.Tx, productID int, delta int) error {
	if delta == 0 {
		return nil
	}

	query := `UPDATE Product SET quantity = quantity + ? WHERE id = ? AND quantity + ? >= 0`

	result, err := tx.ExecContext(ctx, query, delta, productID, delta)
	if err != nil {
		return fmt.Errorf("adjusting product quantity: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		var available int
		err := tx.QueryRowContext(ctx, `SELECT quantity FROM Product WHERE id = ?`, productID).Scan(&available)
		if err == sql.ErrNoRows {
			return errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", productID))
		}
		if err != nil {
			return fmt.Errorf("reading product quantity after rejected adjustment: %w", err)
		}
		return errors.NewInsufficientStockError(productID, -delta, available)
	}

	return nil
}
