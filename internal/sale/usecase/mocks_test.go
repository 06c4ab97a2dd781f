package usecase

import (
	"context"

	"tradepost/internal/domain"
	"tradepost/internal/dto"
	"tradepost/internal/events"
	"tradepost/internal/sale/repository"
)

type mockMutationService struct {
	CreateSaleFunc func(ctx context.Context, sale domain.Sale, items []domain.SaleItem) (uint, map[int]int, error)
	UpdateSaleFunc func(ctx context.Context, userID int, saleID uint, patch repository.SaleHeaderPatch, items []domain.SaleItem, replaceItems bool) (map[int]int, error)
	DeleteSaleFunc func(ctx context.Context, userID int, saleID uint, restoreStock bool) (map[int]int, error)

	createCalls int
	updateCalls int
	deleteCalls int
}

func (m *mockMutationService) CreateSale(ctx context.Context, sale domain.Sale, items []domain.SaleItem) (uint, map[int]int, error) {
	m.createCalls++
	return m.CreateSaleFunc(ctx, sale, items)
}

func (m *mockMutationService) UpdateSale(ctx context.Context, userID int, saleID uint, patch repository.SaleHeaderPatch, items []domain.SaleItem, replaceItems bool) (map[int]int, error) {
	m.updateCalls++
	return m.UpdateSaleFunc(ctx, userID, saleID, patch, items, replaceItems)
}

func (m *mockMutationService) DeleteSale(ctx context.Context, userID int, saleID uint, restoreStock bool) (map[int]int, error) {
	m.deleteCalls++
	return m.DeleteSaleFunc(ctx, userID, saleID, restoreStock)
}

type mockSaleReader struct {
	FindByIDFunc func(ctx context.Context, id uint) (*domain.Sale, error)
}

func (m *mockSaleReader) FindByID(ctx context.Context, id uint) (*domain.Sale, error) {
	return m.FindByIDFunc(ctx, id)
}

type mockSaleItemReader struct {
	FindBySaleIDFunc func(ctx context.Context, saleID uint) ([]domain.SaleItem, error)
}

func (m *mockSaleItemReader) FindBySaleID(ctx context.Context, saleID uint) ([]domain.SaleItem, error) {
	return m.FindBySaleIDFunc(ctx, saleID)
}

type mockAvailabilityChecker struct {
	CheckForCreateFunc func(ctx context.Context, items []domain.SaleItem) (*dto.StockCheckResult, error)
	CheckForUpdateFunc func(ctx context.Context, saleID uint, nextItems []domain.SaleItem) (*dto.StockCheckResult, error)
}

func (m *mockAvailabilityChecker) CheckForCreate(ctx context.Context, items []domain.SaleItem) (*dto.StockCheckResult, error) {
	return m.CheckForCreateFunc(ctx, items)
}

func (m *mockAvailabilityChecker) CheckForUpdate(ctx context.Context, saleID uint, nextItems []domain.SaleItem) (*dto.StockCheckResult, error) {
	return m.CheckForUpdateFunc(ctx, saleID, nextItems)
}

// recordingBus captures published events in order.
type recordingBus struct {
	published []events.Event
}

func (b *recordingBus) Publish(event events.Event) {
	b.published = append(b.published, event)
}

func saleReaderReturning(sale domain.Sale) *mockSaleReader {
	return &mockSaleReader{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Sale, error) {
			s := sale
			s.ID = id
			return &s, nil
		},
	}
}

func itemReaderReturning(items ...domain.SaleItem) *mockSaleItemReader {
	return &mockSaleItemReader{
		FindBySaleIDFunc: func(ctx context.Context, saleID uint) ([]domain.SaleItem, error) {
			return items, nil
		},
	}
}
