package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tradepost/internal/domain"
	"tradepost/internal/dto"
	"tradepost/internal/events"
)

// CreateSaleUseCase records a new sale and consumes stock for its line
// items. Callers run the create stock check first; the mutation itself
// does not re-run it, but the conditional adjustment still rejects a flow
// that lost the race for the last units.
type CreateSaleUseCase struct {
	mutationSvc      MutationService
	saleReader       SaleReader
	itemReader       SaleItemReader
	bus              EventPublisher
	logger           *zap.Logger
	maxRetryAttempts int
	taxRate          decimal.Decimal
}

func NewCreateSaleUseCase(
	mutationSvc MutationService,
	saleReader SaleReader,
	itemReader SaleItemReader,
	bus EventPublisher,
	logger *zap.Logger,
	maxRetryAttempts int,
	taxRate decimal.Decimal,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		mutationSvc:      mutationSvc,
		saleReader:       saleReader,
		itemReader:       itemReader,
		bus:              bus,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
		taxRate:          taxRate,
	}
}

func (uc *CreateSaleUseCase) Execute(ctx context.Context, userID int, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	uc.logger.Info("create sale started",
		zap.Int("userId", userID), zap.Int("itemCount", len(req.Items)))

	status := req.Status
	if status == "" {
		status = domain.SaleStatusPending
	}

	items := buildSaleItems(req.Items)
	subtotal, tax, total := computeTotals(items, uc.taxRate)

	sale := domain.Sale{
		UserID:     userID,
		CustomerID: req.CustomerID,
		Status:     status,
		Subtotal:   subtotal,
		Tax:        tax,
		Total:      total,
	}

	var saleID uint
	var deltas map[int]int
	err := withDeadlockRetry(uc.logger, uc.maxRetryAttempts, func() error {
		var err error
		saleID, deltas, err = uc.mutationSvc.CreateSale(ctx, sale, items)
		return err
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	uc.bus.Publish(events.SaleCreatedEvent{
		SaleID:     saleID,
		UserID:     userID,
		ItemCount:  len(items),
		OccurredAt: now,
	})
	publishStockEvents(uc.bus, deltas, now)

	created, err := uc.saleReader.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	createdItems, err := uc.itemReader.FindBySaleID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	return buildSaleResponse(created, createdItems), nil
}
