package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type SaleItemDTO struct {
	ID         uint            `json:"id"`
	ProductID  int             `json:"productId"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

type SaleResponse struct {
	TraceID    string          `json:"traceId"`
	ID         uint            `json:"id"`
	UserID     int             `json:"userId"`
	CustomerID *int            `json:"customerId,omitempty"`
	Status     string          `json:"status"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	Total      decimal.Decimal `json:"total"`
	Items      []SaleItemDTO   `json:"items"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

type DeleteSaleResponse struct {
	TraceID       string    `json:"traceId"`
	SaleID        uint      `json:"saleId"`
	StockRestored bool      `json:"stockRestored"`
	Timestamp     time.Time `json:"timestamp"`
}

type ShortfallDTO struct {
	ProductID        int    `json:"productId"`
	ProductName      string `json:"productName"`
	Requested        int    `json:"requested"`
	Available        int    `json:"available"`
	AdditionalNeeded *int   `json:"additionalNeeded,omitempty"`
}

type StockCheckResponse struct {
	TraceID    string         `json:"traceId"`
	OK         bool           `json:"ok"`
	Shortfalls []ShortfallDTO `json:"shortfalls"`
	Timestamp  time.Time      `json:"timestamp"`
}

type ErrorResponse struct {
	TraceID   string    `json:"traceId"`
	Status    int       `json:"status"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
