package usecase

import (
	"context"

	"tradepost/internal/domain"
	"tradepost/internal/dto"
	"tradepost/internal/events"
	"tradepost/internal/sale/repository"
)

type MutationService interface {
	CreateSale(ctx context.Context, sale domain.Sale, items []domain.SaleItem) (uint, map[int]int, error)
	UpdateSale(ctx context.Context, userID int, saleID uint, patch repository.SaleHeaderPatch, items []domain.SaleItem, replaceItems bool) (map[int]int, error)
	DeleteSale(ctx context.Context, userID int, saleID uint, restoreStock bool) (map[int]int, error)
}

type AvailabilityChecker interface {
	CheckForCreate(ctx context.Context, items []domain.SaleItem) (*dto.StockCheckResult, error)
	CheckForUpdate(ctx context.Context, saleID uint, nextItems []domain.SaleItem) (*dto.StockCheckResult, error)
}

type SaleReader interface {
	FindByID(ctx context.Context, id uint) (*domain.Sale, error)
}

type SaleItemReader interface {
	FindBySaleID(ctx context.Context, saleID uint) ([]domain.SaleItem, error)
}

type EventPublisher interface {
	Publish(event events.Event)
}
