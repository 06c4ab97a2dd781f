package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tradepost/internal/dto"
	"tradepost/internal/events"
	"tradepost/internal/sale/repository"
)

// UpdateSaleUseCase patches a sale's header and, when the request carries
// an items slice, replaces the whole line-item set. Stock moves by the net
// per-product difference between the previous and new sets.
type UpdateSaleUseCase struct {
	mutationSvc      MutationService
	saleReader       SaleReader
	itemReader       SaleItemReader
	bus              EventPublisher
	logger           *zap.Logger
	maxRetryAttempts int
	taxRate          decimal.Decimal
}

func NewUpdateSaleUseCase(
	mutationSvc MutationService,
	saleReader SaleReader,
	itemReader SaleItemReader,
	bus EventPublisher,
	logger *zap.Logger,
	maxRetryAttempts int,
	taxRate decimal.Decimal,
) *UpdateSaleUseCase {
	return &UpdateSaleUseCase{
		mutationSvc:      mutationSvc,
		saleReader:       saleReader,
		itemReader:       itemReader,
		bus:              bus,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
		taxRate:          taxRate,
	}
}

func (uc *UpdateSaleUseCase) Execute(ctx context.Context, userID int, saleID uint, req dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	uc.logger.Info("update sale started",
		zap.Uint("saleId", saleID), zap.Int("userId", userID), zap.Bool("itemsReplaced", req.Items != nil))

	patch := repository.SaleHeaderPatch{
		CustomerID: req.CustomerID,
		Status:     req.Status,
	}

	replaceItems := req.Items != nil
	items := buildSaleItems(valueOrEmpty(req.Items))
	if replaceItems {
		subtotal, tax, total := computeTotals(items, uc.taxRate)
		patch.Subtotal = &subtotal
		patch.Tax = &tax
		patch.Total = &total
	}

	var deltas map[int]int
	err := withDeadlockRetry(uc.logger, uc.maxRetryAttempts, func() error {
		var err error
		deltas, err = uc.mutationSvc.UpdateSale(ctx, userID, saleID, patch, items, replaceItems)
		return err
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	uc.bus.Publish(events.SaleUpdatedEvent{
		SaleID:        saleID,
		UserID:        userID,
		ItemsReplaced: replaceItems,
		OccurredAt:    now,
	})
	publishStockEvents(uc.bus, deltas, now)

	updated, err := uc.saleReader.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	updatedItems, err := uc.itemReader.FindBySaleID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	return buildSaleResponse(updated, updatedItems), nil
}

func valueOrEmpty(items *[]dto.SaleItemRequest) []dto.SaleItemRequest {
	if items == nil {
		return nil
	}
	return *items
}
