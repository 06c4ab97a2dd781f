package dto

import "github.com/shopspring/decimal"

type SearchProductsRequest struct {
	ProductIDs []int `json:"productIds"`
}

type SearchProductsResponse struct {
	Products []ProductDTO `json:"products"`
	NotFound []int        `json:"notFound"`
}

type ProductDTO struct {
	ID                int             `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	Quantity          int             `json:"quantity"`
	MinQuantity       int             `json:"minQuantity"`
	BelowReorderLevel bool            `json:"belowReorderLevel"`
}
