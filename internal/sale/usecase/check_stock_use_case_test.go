package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tradepost/internal/domain"
	"tradepost/internal/dto"
	apperrors "tradepost/internal/errors"
)

func TestCheckStockForCreate_OK(t *testing.T) {
	checker := &mockAvailabilityChecker{
		CheckForCreateFunc: func(ctx context.Context, items []domain.SaleItem) (*dto.StockCheckResult, error) {
			require.Len(t, items, 1)
			assert.Equal(t, 1, items[0].ProductID)
			assert.Equal(t, 3, items[0].Quantity)
			return &dto.StockCheckResult{OK: true}, nil
		},
	}
	uc := NewCheckStockUseCase(checker, zap.NewNop())

	resp, err := uc.CheckForCreate(context.Background(), dto.StockCheckRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: 1, Quantity: 3, UnitPrice: decimal.NewFromFloat(5.00)},
		},
	})

	require.NoError(t, err)
	assert.True(t, resp.OK)
	assert.Empty(t, resp.Shortfalls)
}

func TestCheckStockForCreate_ShortfallOmitsAdditionalNeeded(t *testing.T) {
	checker := &mockAvailabilityChecker{
		CheckForCreateFunc: func(ctx context.Context, items []domain.SaleItem) (*dto.StockCheckResult, error) {
			return &dto.StockCheckResult{
				OK: false,
				Shortfalls: []dto.Shortfall{
					{ProductID: 1, ProductName: "Mouse", Requested: 7, Available: 5},
				},
			}, nil
		},
	}
	uc := NewCheckStockUseCase(checker, zap.NewNop())

	resp, err := uc.CheckForCreate(context.Background(), dto.StockCheckRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: 1, Quantity: 7, UnitPrice: decimal.NewFromFloat(5.00)},
		},
	})

	require.NoError(t, err)
	assert.False(t, resp.OK)
	require.Len(t, resp.Shortfalls, 1)
	assert.Equal(t, "Mouse", resp.Shortfalls[0].ProductName)
	assert.Equal(t, 7, resp.Shortfalls[0].Requested)
	assert.Equal(t, 5, resp.Shortfalls[0].Available)
	assert.Nil(t, resp.Shortfalls[0].AdditionalNeeded, "additionalNeeded only applies to update checks")
}

func TestCheckStockForUpdate_ShortfallCarriesAdditionalNeeded(t *testing.T) {
	checker := &mockAvailabilityChecker{
		CheckForUpdateFunc: func(ctx context.Context, saleID uint, nextItems []domain.SaleItem) (*dto.StockCheckResult, error) {
			assert.Equal(t, uint(5), saleID)
			return &dto.StockCheckResult{
				OK: false,
				Shortfalls: []dto.Shortfall{
					{ProductID: 1, ProductName: "Mouse", Requested: 7, Available: 2, AdditionalNeeded: 4},
				},
			}, nil
		},
	}
	uc := NewCheckStockUseCase(checker, zap.NewNop())

	resp, err := uc.CheckForUpdate(context.Background(), 5, dto.StockCheckRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: 1, Quantity: 7, UnitPrice: decimal.NewFromFloat(5.00)},
		},
	})

	require.NoError(t, err)
	assert.False(t, resp.OK)
	require.Len(t, resp.Shortfalls, 1)
	require.NotNil(t, resp.Shortfalls[0].AdditionalNeeded)
	assert.Equal(t, 4, *resp.Shortfalls[0].AdditionalNeeded)
}

func TestCheckStockForUpdate_SaleNotFound(t *testing.T) {
	checker := &mockAvailabilityChecker{
		CheckForUpdateFunc: func(ctx context.Context, saleID uint, nextItems []domain.SaleItem) (*dto.StockCheckResult, error) {
			return nil, apperrors.NewNotFoundError("sale not found")
		},
	}
	uc := NewCheckStockUseCase(checker, zap.NewNop())

	_, err := uc.CheckForUpdate(context.Background(), 99, dto.StockCheckRequest{})

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}
