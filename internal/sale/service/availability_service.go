package service

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"tradepost/internal/domain"
	"tradepost/internal/dto"
	"tradepost/internal/errors"
	"tradepost/internal/sale/stock"
)

type ProductReader interface {
	FindByIDs(ctx context.Context, ids []int) ([]domain.Product, error)
}

type SaleReader interface {
	FindByID(ctx context.Context, id uint) (*domain.Sale, error)
}

type SaleItemReader interface {
	FindBySaleID(ctx context.Context, saleID uint) ([]domain.SaleItem, error)
}

// AvailabilityService answers "would this set of line items fit in current
// stock" without mutating anything. It runs strictly before a mutation
// flow; passing a check does not reserve stock.
type AvailabilityService struct {
	products  ProductReader
	sales     SaleReader
	saleItems SaleItemReader
	logger    *zap.Logger
}

func NewAvailabilityService(products ProductReader, sales SaleReader, saleItems SaleItemReader, logger *zap.Logger) *AvailabilityService {
	return &AvailabilityService{
		products:  products,
		sales:     sales,
		saleItems: saleItems,
		logger:    logger,
	}
}

// CheckForCreate verifies every requested product has at least the
// requested aggregated quantity on hand.
func (s *AvailabilityService) CheckForCreate(ctx context.Context, items []domain.SaleItem) (*dto.StockCheckResult, error) {
	requestedTotals := stock.AggregateQuantities(items)
	if len(requestedTotals) == 0 {
		return &dto.StockCheckResult{OK: true}, nil
	}

	products, err := s.readProducts(ctx, requestedTotals)
	if err != nil {
		return nil, err
	}

	var shortfalls []dto.Shortfall
	for _, productID := range sortedIDs(requestedTotals) {
		requested := requestedTotals[productID]
		product := products[productID]
		if product.Quantity < requested {
			shortfalls = append(shortfalls, dto.Shortfall{
				ProductID:   productID,
				ProductName: product.Name,
				Requested:   requested,
				Available:   product.Quantity,
			})
		}
	}

	if len(shortfalls) > 0 {
		s.logger.Info("stock check for create found shortfalls", zap.Int("shortfallCount", len(shortfalls)))
	}

	return &dto.StockCheckResult{OK: len(shortfalls) == 0, Shortfalls: shortfalls}, nil
}

// CheckForUpdate verifies an edit incrementally: only products whose
// committed quantity would increase can cause a shortfall, and only the
// increase itself has to be covered by free stock. Re-checking the full
// new quantities would spuriously reject edits that merely shift units
// between products, since a product's own committed units come back when
// the previous line items are replaced.
func (s *AvailabilityService) CheckForUpdate(ctx context.Context, saleID uint, nextItems []domain.SaleItem) (*dto.StockCheckResult, error) {
	if _, err := s.sales.FindByID(ctx, saleID); err != nil {
		return nil, err
	}

	previousItems, err := s.saleItems.FindBySaleID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	prevTotals := stock.AggregateQuantities(previousItems)
	nextTotals := stock.AggregateQuantities(nextItems)

	additionalNeeded := make(map[int]int)
	for productID, nextQty := range nextTotals {
		if extra := nextQty - prevTotals[productID]; extra > 0 {
			additionalNeeded[productID] = extra
		}
	}

	// Nothing increases, so no product can run short. Skip the product
	// store entirely.
	if len(additionalNeeded) == 0 {
		return &dto.StockCheckResult{OK: true}, nil
	}

	products, err := s.readProducts(ctx, additionalNeeded)
	if err != nil {
		return nil, err
	}

	var shortfalls []dto.Shortfall
	for _, productID := range sortedIDs(additionalNeeded) {
		extra := additionalNeeded[productID]
		product := products[productID]
		if product.Quantity < extra {
			shortfalls = append(shortfalls, dto.Shortfall{
				ProductID:        productID,
				ProductName:      product.Name,
				Requested:        nextTotals[productID],
				Available:        product.Quantity,
				AdditionalNeeded: extra,
			})
		}
	}

	if len(shortfalls) > 0 {
		s.logger.Info("stock check for update found shortfalls",
			zap.Uint("saleId", saleID), zap.Int("shortfallCount", len(shortfalls)))
	}

	return &dto.StockCheckResult{OK: len(shortfalls) == 0, Shortfalls: shortfalls}, nil
}

// readProducts batch-reads every product id in totals and fails with a
// typed not-found error when any id is unknown.
func (s *AvailabilityService) readProducts(ctx context.Context, totals map[int]int) (map[int]domain.Product, error) {
	ids := sortedIDs(totals)

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
		}
	}

	return byID, nil
}

func sortedIDs(totals map[int]int) []int {
	ids := make([]int, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
