package service

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"go.uber.org/zap"

	"tradepost/internal/domain"
	"tradepost/internal/errors"
	"tradepost/internal/sale/repository"
	"tradepost/internal/sale/stock"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type ProductAdjuster interface {
	AdjustQuantity(ctx context.Context, tx *sql.Tx, productID int, delta int) error
}

type SaleStore interface {
	Insert(ctx context.Context, tx *sql.Tx, sale domain.Sale) (uint, error)
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint) (*domain.Sale, error)
	UpdateHeader(ctx context.Context, tx *sql.Tx, id uint, patch repository.SaleHeaderPatch) error
	Delete(ctx context.Context, tx *sql.Tx, id uint, userID int) error
}

type SaleItemStore interface {
	BulkInsert(ctx context.Context, tx *sql.Tx, saleID uint, items []domain.SaleItem) error
	FindBySaleIDForUpdate(ctx context.Context, tx *sql.Tx, saleID uint) ([]domain.SaleItem, error)
	DeleteBySaleID(ctx context.Context, tx *sql.Tx, saleID uint) error
}

// MutationService runs each sale mutation flow inside a single MySQL
// transaction, so a failing step rolls every prior step of the flow back
// instead of leaving the stores partially mutated. Per-product quantity
// adjustments are applied in ascending product-id order; every flow
// locking the same products in the same order keeps deadlocks rare.
type MutationService struct {
	db        TransactionManager
	products  ProductAdjuster
	sales     SaleStore
	saleItems SaleItemStore
	logger    *zap.Logger
	txTimeout time.Duration
}

func NewMutationService(
	db TransactionManager,
	products ProductAdjuster,
	sales SaleStore,
	saleItems SaleItemStore,
	logger *zap.Logger,
	txTimeout time.Duration,
) *MutationService {
	return &MutationService{
		db:        db,
		products:  products,
		sales:     sales,
		saleItems: saleItems,
		logger:    logger,
		txTimeout: txTimeout,
	}
}

// CreateSale inserts the header and line items, then decrements each
// referenced product by its aggregated quantity. Returns the new sale id
// and the applied per-product deltas (all negative).
func (s *MutationService) CreateSale(ctx context.Context, sale domain.Sale, items []domain.SaleItem) (uint, map[int]int, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return 0, nil, err
	}
	// Rollback is a no-op after a successful commit.
	defer tx.Rollback()

	saleID, err := s.sales.Insert(txCtx, tx, sale)
	if err != nil {
		return 0, nil, err
	}

	for i := range items {
		items[i].SaleID = saleID
	}
	if err := s.saleItems.BulkInsert(txCtx, tx, saleID, items); err != nil {
		return 0, nil, err
	}

	deltas := make(map[int]int)
	for productID, qty := range stock.AggregateQuantities(items) {
		deltas[productID] = -qty
	}
	if err := s.applyDeltas(txCtx, tx, deltas); err != nil {
		s.logger.Warn("sale creation rolled back", zap.Uint("saleId", saleID), zap.Error(err))
		return 0, nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit sale creation", zap.Uint("saleId", saleID), zap.Error(err))
		return 0, nil, err
	}

	s.logger.Info("sale created",
		zap.Uint("saleId", saleID), zap.Int("userId", sale.UserID), zap.Int("itemCount", len(items)))
	return saleID, deltas, nil
}

// UpdateSale patches the header and, when replaceItems is set, swaps the
// whole line-item set and moves stock by the net per-product difference
// between the old and new sets. Re-applying the new quantities wholesale
// would double-count what the sale already holds.
func (s *MutationService) UpdateSale(
	ctx context.Context,
	userID int,
	saleID uint,
	patch repository.SaleHeaderPatch,
	items []domain.SaleItem,
	replaceItems bool,
) (map[int]int, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	sale, err := s.sales.FindByIDForUpdate(txCtx, tx, saleID)
	if err != nil {
		return nil, err
	}
	if sale.UserID != userID {
		return nil, errors.NewForbiddenError("sale belongs to another user")
	}

	if err := s.sales.UpdateHeader(txCtx, tx, saleID, patch); err != nil {
		return nil, err
	}

	deltas := map[int]int{}
	if replaceItems {
		previousItems, err := s.saleItems.FindBySaleIDForUpdate(txCtx, tx, saleID)
		if err != nil {
			return nil, err
		}

		if err := s.saleItems.DeleteBySaleID(txCtx, tx, saleID); err != nil {
			return nil, err
		}

		for i := range items {
			items[i].SaleID = saleID
		}
		if err := s.saleItems.BulkInsert(txCtx, tx, saleID, items); err != nil {
			return nil, err
		}

		deltas = stock.ComputeDeltas(previousItems, items)
		if err := s.applyDeltas(txCtx, tx, deltas); err != nil {
			s.logger.Warn("sale update rolled back", zap.Uint("saleId", saleID), zap.Error(err))
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit sale update", zap.Uint("saleId", saleID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("sale updated",
		zap.Uint("saleId", saleID), zap.Int("userId", userID), zap.Bool("itemsReplaced", replaceItems))
	return deltas, nil
}

// DeleteSale restores the aggregated committed quantity of every line
// item (unless restoreStock is false), then removes the line items and
// the header, scoped to the owning user. Restoration runs before row
// deletion so a failure keeps the line items around; the rollback then
// undoes any partial restore as well.
func (s *MutationService) DeleteSale(ctx context.Context, userID int, saleID uint, restoreStock bool) (map[int]int, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	items, err := s.saleItems.FindBySaleIDForUpdate(txCtx, tx, saleID)
	if err != nil {
		return nil, err
	}

	deltas := map[int]int{}
	if restoreStock {
		deltas = stock.ComputeDeltas(items, nil)
		if err := s.applyDeltas(txCtx, tx, deltas); err != nil {
			s.logger.Warn("sale deletion rolled back", zap.Uint("saleId", saleID), zap.Error(err))
			return nil, err
		}
	}

	if err := s.saleItems.DeleteBySaleID(txCtx, tx, saleID); err != nil {
		return nil, err
	}

	if err := s.sales.Delete(txCtx, tx, saleID, userID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit sale deletion", zap.Uint("saleId", saleID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("sale deleted",
		zap.Uint("saleId", saleID), zap.Int("userId", userID), zap.Bool("stockRestored", restoreStock))
	return deltas, nil
}

func (s *MutationService) applyDeltas(ctx context.Context, tx *sql.Tx, deltas map[int]int) error {
	productIDs := make([]int, 0, len(deltas))
	for productID := range deltas {
		productIDs = append(productIDs, productID)
	}
	sort.Ints(productIDs)

	for _, productID := range productIDs {
		if err := s.products.AdjustQuantity(ctx, tx, productID, deltas[productID]); err != nil {
			return err
		}
	}
	return nil
}
