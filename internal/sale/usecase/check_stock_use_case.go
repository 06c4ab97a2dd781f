package usecase

import (
	"context"

	"go.uber.org/zap"

	"tradepost/internal/dto"
)

// CheckStockUseCase exposes the pre-flight availability checks. Both are
// read-only; a passing check reserves nothing.
type CheckStockUseCase struct {
	checker AvailabilityChecker
	logger  *zap.Logger
}

func NewCheckStockUseCase(checker AvailabilityChecker, logger *zap.Logger) *CheckStockUseCase {
	return &CheckStockUseCase{
		checker: checker,
		logger:  logger,
	}
}

func (uc *CheckStockUseCase) CheckForCreate(ctx context.Context, req dto.StockCheckRequest) (*dto.StockCheckResponse, error) {
	result, err := uc.checker.CheckForCreate(ctx, buildSaleItems(req.Items))
	if err != nil {
		return nil, err
	}

	return buildStockCheckResponse(result, false), nil
}

func (uc *CheckStockUseCase) CheckForUpdate(ctx context.Context, saleID uint, req dto.StockCheckRequest) (*dto.StockCheckResponse, error) {
	result, err := uc.checker.CheckForUpdate(ctx, saleID, buildSaleItems(req.Items))
	if err != nil {
		return nil, err
	}

	return buildStockCheckResponse(result, true), nil
}
