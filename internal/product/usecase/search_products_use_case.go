package usecase

import (
	"context"

	"tradepost/internal/domain"
	"tradepost/internal/dto"
)

type Service interface {
	GetProductsByIDs(ctx context.Context, ids []int) (found []domain.Product, notFoundIDs []int, err error)
}

type SearchUseCase struct {
	service Service
}

func NewSearchUseCase(service Service) *SearchUseCase {
	return &SearchUseCase{service: service}
}

func (uc *SearchUseCase) SearchProducts(ctx context.Context, req dto.SearchProductsRequest) (*dto.SearchProductsResponse, error) {
	found, notFoundIDs, err := uc.service.GetProductsByIDs(ctx, req.ProductIDs)
	if err != nil {
		return nil, err
	}

	products := make([]dto.ProductDTO, 0, len(found))
	for _, p := range found {
		products = append(products, dto.ProductDTO{
			ID:                p.ID,
			Name:              p.Name,
			Description:       p.Description,
			Price:             p.Price,
			Quantity:          p.Quantity,
			MinQuantity:       p.MinQuantity,
			BelowReorderLevel: p.BelowReorderLevel(),
		})
	}

	if notFoundIDs == nil {
		notFoundIDs = []int{}
	}

	return &dto.SearchProductsResponse{
		Products: products,
		NotFound: notFoundIDs,
	}, nil
}
