package domain

import "github.com/shopspring/decimal"

// SaleItem is one product-quantity-price line belonging to a sale. Lines
// are immutable once persisted; editing a sale replaces the whole set.
type SaleItem struct {
	ID         uint
	SaleID     uint
	ProductID  int
	Quantity   int
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
}

// LineTotal computes quantity × unitPrice.
func (i SaleItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
