package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"tradepost/internal/dto"
	"tradepost/internal/events"
)

// DeleteSaleUseCase removes a sale and, by default, restores exactly the
// quantities its persisted line items had committed.
type DeleteSaleUseCase struct {
	mutationSvc      MutationService
	bus              EventPublisher
	logger           *zap.Logger
	maxRetryAttempts int
}

func NewDeleteSaleUseCase(
	mutationSvc MutationService,
	bus EventPublisher,
	logger *zap.Logger,
	maxRetryAttempts int,
) *DeleteSaleUseCase {
	return &DeleteSaleUseCase{
		mutationSvc:      mutationSvc,
		bus:              bus,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
	}
}

func (uc *DeleteSaleUseCase) Execute(ctx context.Context, userID int, saleID uint, restoreStock bool) (*dto.DeleteSaleResponse, error) {
	uc.logger.Info("delete sale started",
		zap.Uint("saleId", saleID), zap.Int("userId", userID), zap.Bool("restoreStock", restoreStock))

	var deltas map[int]int
	err := withDeadlockRetry(uc.logger, uc.maxRetryAttempts, func() error {
		var err error
		deltas, err = uc.mutationSvc.DeleteSale(ctx, userID, saleID, restoreStock)
		return err
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	uc.bus.Publish(events.SaleDeletedEvent{
		SaleID:        saleID,
		UserID:        userID,
		StockRestored: restoreStock,
		OccurredAt:    now,
	})
	publishStockEvents(uc.bus, deltas, now)

	return &dto.DeleteSaleResponse{
		SaleID:        saleID,
		StockRestored: restoreStock,
		Timestamp:     now,
	}, nil
}
