package usecase

import (
	"context"

	"go.uber.org/zap"

	"tradepost/internal/dto"
	"tradepost/internal/errors"
)

type GetSaleUseCase struct {
	saleReader SaleReader
	itemReader SaleItemReader
	logger     *zap.Logger
}

func NewGetSaleUseCase(saleReader SaleReader, itemReader SaleItemReader, logger *zap.Logger) *GetSaleUseCase {
	return &GetSaleUseCase{
		saleReader: saleReader,
		itemReader: itemReader,
		logger:     logger,
	}
}

func (uc *GetSaleUseCase) Execute(ctx context.Context, userID int, saleID uint) (*dto.SaleResponse, error) {
	sale, err := uc.saleReader.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	if sale.UserID != userID {
		return nil, errors.NewForbiddenError("sale belongs to another user")
	}

	items, err := uc.itemReader.FindBySaleID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	return buildSaleResponse(sale, items), nil
}
