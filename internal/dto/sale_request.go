package dto

import "github.com/shopspring/decimal"

type SaleItemRequest struct {
	ProductID int             `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type CreateSaleRequest struct {
	CustomerID *int              `json:"customerId,omitempty"`
	Status     string            `json:"status,omitempty"`
	Items      []SaleItemRequest `json:"items"`
}

// UpdateSaleRequest patches a sale. Nil fields are left untouched; a
// non-nil Items slice replaces the whole line-item set.
type UpdateSaleRequest struct {
	CustomerID *int               `json:"customerId,omitempty"`
	Status     *string            `json:"status,omitempty"`
	Items      *[]SaleItemRequest `json:"items,omitempty"`
}

type StockCheckRequest struct {
	Items []SaleItemRequest `json:"items"`
}
