package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Sale struct {
	ID         uint
	UserID     int
	CustomerID *int
	Status     string
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	Total      decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

const (
	SaleStatusPending   = "PENDING"
	SaleStatusCompleted = "COMPLETED"
	SaleStatusCancelled = "CANCELLED"
)

func IsValidSaleStatus(status string) bool {
	switch status {
	case SaleStatusPending, SaleStatusCompleted, SaleStatusCancelled:
		return true
	}
	return false
}
